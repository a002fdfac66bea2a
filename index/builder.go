// builder.go orchestrates ingestion: write the game to the archive,
// optionally replay its moves through the board engine, and update every
// enabled index. This is the "index builder" component of spec §4.
package index

import (
	"strconv"

	"github.com/oriondb/oriondb/archive"
	"github.com/oriondb/oriondb/chess"
	"github.com/oriondb/oriondb/errs"
	"github.com/oriondb/oriondb/internal/dbglog"
	"github.com/oriondb/oriondb/pgn"
)

// Builder drives one ingest pass: single-threaded, cooperative, matching
// the "no internal parallelism" scheduling model of spec §5.
type Builder struct {
	writer  *archive.Writer
	set     *Set
	opts    Options
	logger  dbglog.Logger
	nextID  int
	errLog  []*errs.IngestError
}

// NewBuilder returns a Builder that writes games to w and indexes them
// per opts. logger may be nil, in which case dbglog.Default is used.
func NewBuilder(w *archive.Writer, opts Options, logger dbglog.Logger) *Builder {
	if logger == nil {
		logger = dbglog.Default
	}
	set := NewSet()
	if opts.EnablePositionIndexing {
		set.Position = NewPositionIndex()
		set.Material = NewMaterialIndex()
		set.Structure = NewStructureIndex()
	}
	if opts.EnableMoveIndexing {
		set.Move = NewMoveIndex()
	}
	if opts.EnableMotifIndexing {
		set.Motif = NewMotifIndex()
	}
	if opts.EnableCommentIndexing {
		set.Comment = NewCommentIndex()
	}
	return &Builder{writer: w, set: set, opts: opts, logger: logger}
}

// Set returns the index set being built. It is only safe to read after
// ingestion is complete.
func (b *Builder) Set() *Set {
	return b.set
}

// Errors returns every non-fatal error recorded so far.
func (b *Builder) Errors() []*errs.IngestError {
	return b.errLog
}

// IngestGame assigns the next monotonic game ID, writes g to the
// archive, and updates every enabled index. Game IDs are assigned in
// ingest order starting at 0 (spec §3, §5).
func (b *Builder) IngestGame(g *pgn.Game) (gameID int, err error) {
	gameID = b.nextID
	b.nextID++
	g.ID = gameID

	offset, err := b.writer.WriteGame(archive.GameFromPGN(g))
	if err != nil {
		return gameID, err
	}

	tags := extractGameTags(g)
	b.set.Metadata.IndexGame(gameID, offset, tags)

	if b.opts.needsReplay() {
		b.replay(gameID, g)
	}
	return gameID, nil
}

// replay applies each of g's moves in order, indexing the resulting
// position after every successful ply. The first SAN that fails to
// resolve halts replay for the remainder of the game (spec §4.3's
// READY -> HALTED state machine); positions up to that ply stay indexed.
func (b *Builder) replay(gameID int, g *pgn.Game) {
	pos := chess.NewPosition()
	b.indexPosition(gameID, 0, pos, "", "")

	for ply, mv := range g.Moves {
		next, err := chess.Apply(pos, mv.SAN)
		if err != nil {
			ie := &errs.IngestError{GameID: gameID, Ply: ply + 1, Stage: "replay", Err: err}
			b.errLog = append(b.errLog, ie)
			b.logger.Printf("%v", ie)
			return
		}
		pos = next
		b.indexPosition(gameID, ply+1, pos, mv.SAN, mv.Comment)
	}
}

// indexPosition updates the position/material/structure/move/motif/
// comment indexes for one ply of one game's replay. san and comment are
// empty for ply 0 (the starting position, which was not reached by a
// move).
func (b *Builder) indexPosition(gameID, ply int, pos *chess.Position, san, comment string) {
	fen := chess.ToFEN(pos)
	gp := GamePosition{GameID: gameID, Ply: ply, FEN: fen}

	if b.set.Position != nil {
		b.set.Position.Add(chess.Hash(pos), gp)
		b.set.Material.Add(chess.ComputeMaterialSignature(pos), gp)
		b.set.Structure.Add(gp, chess.DetectPawnStructures(pos))
	}
	if b.set.Move != nil && san != "" {
		b.set.Move.Add(san, gp)
	}
	if b.set.Motif != nil {
		b.set.Motif.Add(gp, chess.DetectMotifs(pos))
	}
	if b.set.Comment != nil && comment != "" {
		b.set.Comment.Add(comment, gp)
	}
}

func extractGameTags(g *pgn.Game) GameTags {
	tags := GameTags{}
	if v, ok := g.Tag("White"); ok {
		tags.White = v
	}
	if v, ok := g.Tag("Black"); ok {
		tags.Black = v
	}
	if v, ok := g.Tag("Event"); ok {
		tags.Event = v
	}
	if v, ok := g.Tag("ECO"); ok {
		tags.ECO = v
	}
	if v, ok := g.Tag("Result"); ok {
		tags.Result = v
	}
	if v, ok := g.Tag("Date"); ok {
		tags.Date = v
	}
	if v, ok := g.Tag("WhiteElo"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			tags.WhiteElo = n
			tags.HasWhiteElo = true
		}
	}
	if v, ok := g.Tag("BlackElo"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			tags.BlackElo = n
			tags.HasBlackElo = true
		}
	}
	return tags
}
