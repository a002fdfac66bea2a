package index

import (
	"testing"

	"github.com/oriondb/oriondb/chess"
)

func TestMaterialIndexBySignatureAndImbalance(t *testing.T) {
	mi := NewMaterialIndex()
	sig := chess.ComputeMaterialSignature(chess.NewPosition())
	gp := GamePosition{GameID: 1, Ply: 0, FEN: chess.StartFEN}
	mi.Add(sig, gp)

	if got := mi.BySignature(sig); len(got) != 1 || got[0] != gp {
		t.Errorf("BySignature(start) = %v, want [%v]", got, gp)
	}

	imb := sig.Imbalance()
	if got := mi.ImbalanceRange(imb, imb); len(got) != 1 {
		t.Errorf("ImbalanceRange(%d,%d) = %v, want 1 entry", imb, imb, got)
	}
	if got := mi.ImbalanceRange(imb+1, imb+100); len(got) != 0 {
		t.Errorf("ImbalanceRange outside bounds = %v, want empty", got)
	}
}
