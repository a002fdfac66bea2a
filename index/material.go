package index

import "github.com/oriondb/oriondb/chess"

// MaterialIndex maps a MaterialSignature to every matching GamePosition,
// plus an ordered index over imbalance for range scans (spec §4.9).
type MaterialIndex struct {
	bySignature map[chess.MaterialSignature][]GamePosition
	byImbalance *orderedMap[int, GamePosition]
}

// NewMaterialIndex returns an empty MaterialIndex.
func NewMaterialIndex() *MaterialIndex {
	return &MaterialIndex{
		bySignature: make(map[chess.MaterialSignature][]GamePosition),
		byImbalance: newOrderedMap[int, GamePosition](),
	}
}

// Add records gp under sig and under its imbalance value.
func (mi *MaterialIndex) Add(sig chess.MaterialSignature, gp GamePosition) {
	mi.bySignature[sig] = append(mi.bySignature[sig], gp)
	mi.byImbalance.add(sig.Imbalance(), gp)
}

// BySignature returns every GamePosition matching sig exactly.
func (mi *MaterialIndex) BySignature(sig chess.MaterialSignature) []GamePosition {
	return mi.bySignature[sig]
}

// ImbalanceRange returns every GamePosition whose imbalance lies in
// [lo, hi].
func (mi *MaterialIndex) ImbalanceRange(lo, hi int) []GamePosition {
	return mi.byImbalance.Range(lo, hi)
}
