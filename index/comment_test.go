package index

import "testing"

func TestTokenizeLowercasesSplitsAndDropsShortTokens(t *testing.T) {
	toks := Tokenize("The Ruy Lopez, a classical opening!")
	want := []string{"the", "ruy", "lopez", "classical", "opening"}
	if len(toks) != len(want) {
		t.Fatalf("Tokenize() = %v, want %v", toks, want)
	}
	for i, w := range want {
		if toks[i] != w {
			t.Errorf("token %d = %q, want %q", i, toks[i], w)
		}
	}
}

func TestCommentIndexLookup(t *testing.T) {
	ci := NewCommentIndex()
	gp := GamePosition{GameID: 1, Ply: 5, FEN: "f"}
	ci.Add("A brilliant sacrifice", gp)

	if got := ci.Lookup("brilliant"); len(got) != 1 || got[0] != gp {
		t.Errorf("Lookup(brilliant) = %v, want [%v]", got, gp)
	}
	if got := ci.Lookup("BRILLIANT"); len(got) != 1 {
		t.Errorf("Lookup should be case-insensitive: %v", got)
	}
	if got := ci.Lookup("missing"); len(got) != 0 {
		t.Errorf("Lookup(missing) = %v, want empty", got)
	}
}
