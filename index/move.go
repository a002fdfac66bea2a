package index

import "sort"

// MoveRecord is one entry in a game's move sequence, as recorded for
// the move index's per-game lookup (spec §4.9).
type MoveRecord struct {
	SAN string
	Ply int
	FEN string
}

// MoveIndex maps a SAN string to the set of GamePositions it was played
// at, plus an ordered per-game move sequence for replay-style lookups.
type MoveIndex struct {
	bySAN  map[string]set[GamePosition]
	byGame map[int][]MoveRecord
}

// NewMoveIndex returns an empty MoveIndex.
func NewMoveIndex() *MoveIndex {
	return &MoveIndex{
		bySAN:  make(map[string]set[GamePosition]),
		byGame: make(map[int][]MoveRecord),
	}
}

// Add records that san was played at gp (ply is the post-move ply, and
// fen is the resulting position).
func (mx *MoveIndex) Add(san string, gp GamePosition) {
	s, ok := mx.bySAN[san]
	if !ok {
		s = newSet[GamePosition]()
		mx.bySAN[san] = s
	}
	s.add(gp)

	mx.byGame[gp.GameID] = append(mx.byGame[gp.GameID], MoveRecord{SAN: san, Ply: gp.Ply, FEN: gp.FEN})
}

// FindMove returns every GamePosition where san was played.
func (mx *MoveIndex) FindMove(san string) []GamePosition {
	return mx.bySAN[san].toSlice()
}

// GameMoves returns gameID's moves ordered by ply.
func (mx *MoveIndex) GameMoves(gameID int) []MoveRecord {
	recs := append([]MoveRecord(nil), mx.byGame[gameID]...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].Ply < recs[j].Ply })
	return recs
}
