package pgn

import (
	"strings"
	"testing"
)

const goodGame = `[Event "Test Open"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Carlsen, Magnus"]
[Black "Nepomniachtchi, Ian"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 {the Ruy Lopez} a6 4. Ba4 Nf6 5. O-O 1-0
`

func TestParseStringGoodGame(t *testing.T) {
	games, errs := ParseString(goodGame)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	g := games[0]
	if w, _ := g.Tag("White"); w != "Carlsen, Magnus" {
		t.Errorf("White = %q", w)
	}
	if len(g.Moves) != 9 {
		t.Fatalf("got %d moves, want 9", len(g.Moves))
	}
	if g.Moves[4].Comment != "the Ruy Lopez" {
		t.Errorf("move index 4 (Bb5) comment = %q, want %q", g.Moves[4].Comment, "the Ruy Lopez")
	}
}

func TestSevenTagRosterDefaulted(t *testing.T) {
	src := `[White "Someone"]

1. e4 1-0
`
	games, errs := ParseString(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	g := games[0]
	for _, key := range SevenTagRoster {
		if _, ok := g.Tag(key); !ok {
			t.Errorf("missing roster tag %q", key)
		}
	}
	if result, _ := g.Tag("Result"); result != "*" {
		t.Errorf("defaulted Result = %q, want *", result)
	}
}

func TestParseStringToleratesMalformedGames(t *testing.T) {
	src := goodGame + "\n\nthis is not a pgn game at all, no tags here\n\n" + goodGame
	games, errs := ParseString(src)
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
}

func TestTagsPreservesFirstOccurrenceOrder(t *testing.T) {
	games, _ := ParseString(goodGame)
	tags := games[0].Tags()
	if tags[0].Key != "Event" {
		t.Errorf("first tag = %q, want Event", tags[0].Key)
	}
}

func TestScannerMatchesParseString(t *testing.T) {
	sc := NewScanner(strings.NewReader(goodGame))
	games, errs := sc.ScanAll()
	if len(errs) != 0 || len(games) != 1 {
		t.Fatalf("ScanAll: got %d games, %d errors", len(games), len(errs))
	}
}
