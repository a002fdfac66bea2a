package query

import (
	"io"
	"testing"

	"github.com/oriondb/oriondb/archive"
	"github.com/oriondb/oriondb/index"
	"github.com/oriondb/oriondb/internal/dbglog"
	"github.com/oriondb/oriondb/pgn"
)

// memFile is a minimal in-memory io.WriteSeeker + io.ReaderAt, used to
// build a real archive + index pair for end-to-end query tests.
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

func (m *memFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ingestAll parses src and ingests every recovered game, returning a
// ready-to-query archive.Reader and index.Set.
func ingestAll(t *testing.T, src string) (*archive.Reader, *index.Set) {
	t.Helper()
	f := &memFile{}
	aw, err := archive.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	b := index.NewBuilder(aw, index.DefaultOptions(), dbglog.Discard)

	games, perrs := pgn.ParseString(src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	for _, g := range games {
		if _, err := b.IngestGame(g); err != nil {
			t.Fatal(err)
		}
	}
	if err := aw.Close(); err != nil {
		t.Fatal(err)
	}
	ar, err := archive.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	return ar, b.Set()
}

const carlsenCorpus = `[Event "WCC"]
[Site "?"]
[Date "2021.12.03"]
[Round "6"]
[White "Carlsen, Magnus"]
[Black "Nepomniachtchi, Ian"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0

[Event "Norway Chess"]
[Site "?"]
[Date "2022.06.01"]
[Round "1"]
[White "Carlsen, Magnus"]
[Black "Caruana, Fabiano"]
[Result "1/2-1/2"]

1. d4 d5 2. c4 e6 1/2-1/2

[Event "Candidates"]
[Site "?"]
[Date "2020.03.01"]
[Round "1"]
[White "Caruana, Fabiano"]
[Black "Nepomniachtchi, Ian"]
[Result "0-1"]

1. e4 c5 2. Nf3 d6 0-1
`

func TestExecuteCarlsenWinScenario(t *testing.T) {
	ar, set := ingestAll(t, carlsenCorpus)

	b := New().Player("carlsen, magnus").Result("1-0")
	results, err := b.Execute(set, ar)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	found := false
	for _, tag := range results[0].Tags {
		if tag.Key == "White" && tag.Value == "Carlsen, Magnus" {
			found = true
		}
	}
	if !found {
		t.Errorf("result tags = %v, want White=Carlsen, Magnus", results[0].Tags)
	}
}

func TestExecuteMoveIndexScenario(t *testing.T) {
	ar, set := ingestAll(t, `[Event "E"]
[Site "?"]
[Date "????.??.??"]
[Round "?"]
[White "A"]
[Black "B"]
[Result "*"]

1. e4 c5 2. Nf3 *
`)
	found := set.Move.FindMove("Nf3")
	if len(found) != 1 {
		t.Fatalf("FindMove(Nf3) = %v, want 1 entry", found)
	}
	gp := found[0]
	if gp.Ply != 3 {
		t.Errorf("Nf3 ply = %d, want 3", gp.Ply)
	}

	b := New().SANMove("Nf3")
	results, err := b.Execute(set, ar)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("Execute(SANMove Nf3) = %v, want 1 result", results)
	}
}

func TestCandidatesEmptyBuilderMatchesEverything(t *testing.T) {
	_, set := ingestAll(t, carlsenCorpus)
	b := New()
	if got := b.Count(set); got != 3 {
		t.Errorf("Count() with no predicates = %d, want 3", got)
	}
}

func TestCandidatesMissingPredicateIsEmpty(t *testing.T) {
	_, set := ingestAll(t, carlsenCorpus)
	b := New().Player("nobody, ever")
	if got := b.Count(set); got != 0 {
		t.Errorf("Count() for unknown player = %d, want 0", got)
	}
}

func TestCandidatesIntersectsMultiplePredicates(t *testing.T) {
	_, set := ingestAll(t, carlsenCorpus)
	b := New().Player("carlsen, magnus").Player("nepomniachtchi, ian")
	// Calling Player twice overwrites the slot (single predicate value),
	// so this should behave like the second call alone.
	if got := b.Count(set); got != 2 {
		t.Errorf("Count() = %d, want 2 (both Nepomniachtchi games)", got)
	}

	b2 := New().Event("wcc").Result("1-0")
	if got := b2.Count(set); got != 1 {
		t.Errorf("Count(event+result) = %d, want 1", got)
	}
}
