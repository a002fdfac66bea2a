package index

import "github.com/oriondb/oriondb/chess"

// MotifIndex maps each TacticalMotif to the set of GamePositions where
// it was detected, plus a per-game ply->motifs lookup (spec §4.9).
type MotifIndex struct {
	postings map[chess.TacticalMotif]set[GamePosition]
	byGame   map[int]map[int]set[chess.TacticalMotif]
}

// NewMotifIndex returns an empty MotifIndex.
func NewMotifIndex() *MotifIndex {
	return &MotifIndex{
		postings: make(map[chess.TacticalMotif]set[GamePosition]),
		byGame:   make(map[int]map[int]set[chess.TacticalMotif]),
	}
}

// Add records gp under every motif in motifs.
func (mx *MotifIndex) Add(gp GamePosition, motifs []chess.TacticalMotif) {
	for _, m := range motifs {
		s, ok := mx.postings[m]
		if !ok {
			s = newSet[GamePosition]()
			mx.postings[m] = s
		}
		s.add(gp)

		byPly, ok := mx.byGame[gp.GameID]
		if !ok {
			byPly = make(map[int]set[chess.TacticalMotif])
			mx.byGame[gp.GameID] = byPly
		}
		ms, ok := byPly[gp.Ply]
		if !ok {
			ms = newSet[chess.TacticalMotif]()
			byPly[gp.Ply] = ms
		}
		ms.add(m)
	}
}

// Lookup returns every GamePosition tagged with motif.
func (mx *MotifIndex) Lookup(motif chess.TacticalMotif) []GamePosition {
	return mx.postings[motif].toSlice()
}

// ByPly returns the motifs detected at gameID/ply.
func (mx *MotifIndex) ByPly(gameID, ply int) []chess.TacticalMotif {
	byPly, ok := mx.byGame[gameID]
	if !ok {
		return nil
	}
	return byPly[ply].toSlice()
}
