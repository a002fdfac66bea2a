package index

import (
	"io"
	"testing"

	"github.com/oriondb/oriondb/archive"
	"github.com/oriondb/oriondb/internal/dbglog"
	"github.com/oriondb/oriondb/pgn"
)

// memFile is a minimal in-memory io.WriteSeeker, standing in for an
// *os.File in tests that only ever need to write an archive.
type memFile struct {
	buf []byte
	pos int64
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.buf)) + offset
	}
	return m.pos, nil
}

func parseOneOrFail(t *testing.T, src string) *pgn.Game {
	t.Helper()
	games, errs := pgn.ParseString(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	return games[0]
}

const shortGame = `[Event "Test"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 c5 2. Nf3 1-0
`

func TestBuilderIngestGameBuildsEveryIndex(t *testing.T) {
	f := &memFile{}
	aw, err := archive.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(aw, DefaultOptions(), dbglog.Discard)

	g := parseOneOrFail(t, shortGame)
	id, err := b.IngestGame(g)
	if err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Errorf("first ingested game ID = %d, want 0", id)
	}

	set := b.Set()
	if set.Metadata.GameCount() != 1 {
		t.Errorf("GameCount() = %d, want 1", set.Metadata.GameCount())
	}
	found := set.Move.FindMove("Nf3")
	if len(found) != 1 {
		t.Fatalf("FindMove(Nf3) = %v, want 1 entry", found)
	}
	if found[0].Ply != 3 {
		t.Errorf("Nf3 ply = %d, want 3", found[0].Ply)
	}
	if len(b.Errors()) != 0 {
		t.Errorf("unexpected ingest errors: %v", b.Errors())
	}
}

func TestBuilderIsolatesReplayFailure(t *testing.T) {
	f := &memFile{}
	aw, err := archive.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(aw, DefaultOptions(), dbglog.Discard)

	g := &pgn.Game{Moves: []pgn.Move{{SAN: "e4"}, {SAN: "Nxq9"}, {SAN: "Nf6"}}}
	id, err := b.IngestGame(g)
	if err != nil {
		t.Fatalf("IngestGame should not fail the whole game on a bad ply: %v", err)
	}
	if id != 0 {
		t.Errorf("game ID = %d, want 0", id)
	}
	if len(b.Errors()) != 1 {
		t.Fatalf("Errors() = %v, want exactly 1 isolated replay error", b.Errors())
	}
	// The game is still archived and metadata-indexed even though replay
	// stopped partway through.
	if b.Set().Metadata.GameCount() != 1 {
		t.Errorf("GameCount() = %d, want 1", b.Set().Metadata.GameCount())
	}
}

func TestBuilderRespectsDisabledOptions(t *testing.T) {
	f := &memFile{}
	aw, err := archive.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(aw, Options{}, nil)
	g := parseOneOrFail(t, shortGame)
	if _, err := b.IngestGame(g); err != nil {
		t.Fatal(err)
	}
	set := b.Set()
	if set.Position != nil || set.Move != nil || set.Motif != nil || set.Comment != nil {
		t.Error("no optional index should be built when every option is disabled")
	}
	if set.Metadata.GameCount() != 1 {
		t.Errorf("metadata index should still be built: GameCount() = %d", set.Metadata.GameCount())
	}
}
