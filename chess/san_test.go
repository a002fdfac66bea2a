package chess

import "testing"

func TestParseSANBasics(t *testing.T) {
	m, err := ParseSAN("e4")
	if err != nil {
		t.Fatal(err)
	}
	if m.PieceType != Pawn || m.FromFile != -1 || m.FromRank != -1 {
		t.Errorf("e4 parsed as %+v", m)
	}

	m, err = ParseSAN("Nf3")
	if err != nil {
		t.Fatal(err)
	}
	if m.PieceType != Knight {
		t.Errorf("Nf3: piece type = %v, want Knight", m.PieceType)
	}

	m, err = ParseSAN("Nbd7")
	if err != nil {
		t.Fatal(err)
	}
	if m.FromFile != 1 {
		t.Errorf("Nbd7: from file = %d, want 1 (b-file)", m.FromFile)
	}

	m, err = ParseSAN("R1a3")
	if err != nil {
		t.Fatal(err)
	}
	if m.FromRank != 0 {
		t.Errorf("R1a3: from rank = %d, want 0 (rank 1)", m.FromRank)
	}

	m, err = ParseSAN("exd5")
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsCapture || m.FromFile != 4 {
		t.Errorf("exd5 parsed as %+v", m)
	}

	m, err = ParseSAN("e8=Q+")
	if err != nil {
		t.Fatal(err)
	}
	if m.Promotion != Queen || !m.IsCheck {
		t.Errorf("e8=Q+ parsed as %+v", m)
	}

	m, err = ParseSAN("Qh7#")
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsMate {
		t.Errorf("Qh7#: IsMate = false, want true")
	}
}

func TestParseSANCastling(t *testing.T) {
	m, err := ParseSAN("O-O")
	if err != nil {
		t.Fatal(err)
	}
	if m.CastleSide != KingSide {
		t.Errorf("O-O: castle side = %v, want KingSide", m.CastleSide)
	}

	m, err = ParseSAN("O-O-O")
	if err != nil {
		t.Fatal(err)
	}
	if m.CastleSide != QueenSide {
		t.Errorf("O-O-O: castle side = %v, want QueenSide", m.CastleSide)
	}
}

func TestParseSANRejectsMalformed(t *testing.T) {
	cases := []string{"", "+", "Z4", "e9", "O-O-O-O", "Ke9=Q"}
	for _, s := range cases {
		if _, err := ParseSAN(s); err == nil {
			t.Errorf("ParseSAN(%q) succeeded, want error", s)
		}
	}
}
