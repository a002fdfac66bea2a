// Package oriondb is an embeddable, read-optimized chess game database.
// It ties together the on-disk archive (package archive), the in-memory
// index family and its sidecar (package index), and the query layer
// (packages query and cql) behind one open/ingest/close/query lifecycle.
package oriondb

import (
	"io"

	"github.com/oriondb/oriondb/archive"
	"github.com/oriondb/oriondb/cql"
	"github.com/oriondb/oriondb/errs"
	"github.com/oriondb/oriondb/index"
	"github.com/oriondb/oriondb/internal/dbglog"
	"github.com/oriondb/oriondb/pgn"
	"github.com/oriondb/oriondb/query"
)

// IngestOptions selects which indexes are built during ingest (spec §6's
// configuration table): presence of an index in the resulting database
// is a pure function of these flags.
type IngestOptions = index.Options

// DefaultIngestOptions enables every index.
func DefaultIngestOptions() IngestOptions {
	return index.DefaultOptions()
}

// Writer ingests PGN text into a new archive, building every index
// IngestOptions enables. A Writer is not safe for concurrent use (spec
// §5).
type Writer struct {
	archiveWriter *archive.Writer
	builder       *index.Builder
}

// Create writes a fresh archive header to w and returns a Writer ready
// to ingest games. logger may be nil, in which case ingest diagnostics
// go to dbglog.Default.
func Create(w io.WriteSeeker, opts IngestOptions, logger dbglog.Logger) (*Writer, error) {
	aw, err := archive.NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &Writer{archiveWriter: aw, builder: index.NewBuilder(aw, opts, logger)}, nil
}

// IngestPGN parses src as a PGN collection and ingests every recovered
// game (spec §4.7's tolerant parse contract: malformed games are
// skipped, not fatal). It returns the parser's error log and any replay
// errors isolated during indexing.
func (w *Writer) IngestPGN(src string) (parseErrors []*pgn.Error, ingestErrors []*errs.IngestError) {
	games, perrs := pgn.ParseString(src)
	for _, g := range games {
		w.builder.IngestGame(g)
	}
	return perrs, w.builder.Errors()
}

// IngestGame ingests one already-parsed game directly, bypassing the PGN
// parser.
func (w *Writer) IngestGame(g *pgn.Game) (gameID int, err error) {
	return w.builder.IngestGame(g)
}

// GameCount returns the number of games written to the archive so far.
func (w *Writer) GameCount() uint32 {
	return w.archiveWriter.GameCount()
}

// Close flushes the archive (back-patching its game count, spec §4.8)
// and returns the completed index Set for the caller to persist via
// SaveIndex.
func (w *Writer) Close() (*index.Set, error) {
	if err := w.archiveWriter.Close(); err != nil {
		return nil, err
	}
	return w.builder.Set(), nil
}

// SaveIndex serializes set to the sidecar format of spec §4.9.
func SaveIndex(w io.Writer, set *index.Set) error {
	return index.Save(w, set)
}

// LoadIndex deserializes a sidecar written by SaveIndex.
func LoadIndex(r io.Reader) (*index.Set, error) {
	return index.Load(r)
}

// Reader opens an archive and its sidecar index for querying. Per spec
// §5, a Reader may be shared across goroutines only if archiveAt
// performs genuinely positioned reads (an *os.File does).
type Reader struct {
	archiveReader *archive.Reader
	index         *index.Set
}

// Open validates archiveAt's header and loads sidecar (already read into
// memory by the caller, e.g. via LoadIndex) into a queryable Reader.
func Open(archiveAt io.ReaderAt, set *index.Set) (*Reader, error) {
	ar, err := archive.NewReader(archiveAt)
	if err != nil {
		return nil, err
	}
	return &Reader{archiveReader: ar, index: set}, nil
}

// Query returns a fresh query.Builder for this Reader's index set.
func (r *Reader) Query() *query.Builder {
	return query.New()
}

// Execute runs b against this Reader's index and reads the matching
// games from the archive.
func (r *Reader) Execute(b *query.Builder) ([]query.Result, error) {
	return b.Execute(r.index, r.archiveReader)
}

// Count runs b and returns the candidate count without reading games.
func (r *Reader) Count(b *query.Builder) int {
	return b.Count(r.index)
}

// CompileCQL compiles a CQL string (spec §4.11) into a reusable query.
func (r *Reader) CompileCQL(src string) (*cql.Query, error) {
	return cql.Compile(src)
}

// ExecuteCQL runs a compiled CQL query and reads the matching games.
func (r *Reader) ExecuteCQL(q *cql.Query) ([]query.Result, error) {
	return q.Execute(r.index, r.archiveReader)
}

// GameByID resolves gameID to its archive record via the metadata
// index's offset map.
func (r *Reader) GameByID(gameID int) (archive.Record, bool, error) {
	offset, ok := r.index.Metadata.Offset(gameID)
	if !ok {
		return archive.Record{}, false, nil
	}
	rec, err := r.archiveReader.ReadGameAt(offset)
	if err != nil {
		return archive.Record{}, true, err
	}
	return rec, true, nil
}

// Diagnostics reports per-index health counters for the open database.
func (r *Reader) Diagnostics() index.Diagnostics {
	return r.index.Report()
}
