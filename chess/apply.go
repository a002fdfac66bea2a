// apply.go implements the board engine: resolving a parsed SAN move
// against a Position and producing the next Position. The ray-walking and
// jump-offset techniques follow the reference engine's attack table
// generation (engine/attack.go), adapted from bitboard jump tables to
// direct square-offset loops over the array board.

package chess

import "fmt"

// ApplyError reports that a SAN move could not be resolved or applied to
// a Position. Per spec §4.3, this is non-fatal: callers replaying a game
// stop at the offending ply and keep everything indexed up to it.
type ApplyError struct {
	SAN string
	Msg string
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("chess: cannot apply %q: %s", e.SAN, e.Msg)
}

var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	bishopDirs    = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirs      = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirs     = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// Apply resolves san against pos for the side to move and returns the
// resulting Position. san is the raw SAN token as read from PGN; it is
// also quoted in any returned ApplyError.
func Apply(pos *Position, san string) (*Position, error) {
	m, err := ParseSAN(san)
	if err != nil {
		return nil, &ApplyError{SAN: san, Msg: err.Error()}
	}
	return ApplyParsed(pos, san, m)
}

// ApplyParsed resolves an already-parsed SANMove against pos. sanText is
// carried through only for error reporting.
func ApplyParsed(pos *Position, sanText string, m SANMove) (*Position, error) {
	if m.CastleSide != NoCastleSide {
		return applyCastle(pos, sanText, m)
	}

	from, err := resolveSource(pos, m)
	if err != nil {
		return nil, &ApplyError{SAN: sanText, Msg: err.Error()}
	}

	next := pos.Clone()
	us := pos.sideToMove
	them := us.Opposite()

	destOccupied := pos.Get(m.To) != NoPiece
	isEnPassant := m.PieceType == Pawn && m.To == pos.enPassant && pos.enPassant != NoSquare

	next.Put(from, NoPiece)
	movingPiece := NewPiece(us, m.PieceType)
	if m.Promotion != NoPieceType {
		movingPiece = NewPiece(us, m.Promotion)
	}
	next.Put(m.To, movingPiece)

	if isEnPassant {
		capSq := RankFile(from.Rank(), m.To.File())
		next.Put(capSq, NoPiece)
	}

	// New en passant square: the square between from and to on a pawn
	// double push, else none.
	next.enPassant = NoSquare
	if m.PieceType == Pawn {
		dr := m.To.Rank() - from.Rank()
		if dr == 2 || dr == -2 {
			next.enPassant = RankFile((from.Rank()+m.To.Rank())/2, from.File())
		}
	}

	// Half-move clock resets on a pawn move or any capture (including en
	// passant); the reference implementation reads the destination square
	// after overwriting it, which can misclassify a capture as quiet. We
	// check the pre-move destination occupancy instead.
	if m.PieceType == Pawn || destOccupied || isEnPassant {
		next.halfMoveClock = 0
	} else {
		next.halfMoveClock = pos.halfMoveClock + 1
	}
	if us == Black {
		next.fullMoveNumber = pos.fullMoveNumber + 1
	}

	next.castlingRights = updatedCastlingRights(pos.castlingRights, from, m.To)
	next.sideToMove = them

	return next, nil
}

func applyCastle(pos *Position, sanText string, m SANMove) (*Position, error) {
	us := pos.sideToMove
	homeRank := 0
	if us == Black {
		homeRank = 7
	}
	kingFrom := RankFile(homeRank, 4)
	var kingTo, rookFrom, rookTo Square
	var clearedRights Castle
	if m.CastleSide == KingSide {
		kingTo = RankFile(homeRank, 6)
		rookFrom = RankFile(homeRank, 7)
		rookTo = RankFile(homeRank, 5)
	} else {
		kingTo = RankFile(homeRank, 2)
		rookFrom = RankFile(homeRank, 0)
		rookTo = RankFile(homeRank, 3)
	}
	if us == White {
		clearedRights = WhiteOO | WhiteOOO
	} else {
		clearedRights = BlackOO | BlackOOO
	}

	next := pos.Clone()
	next.Put(kingFrom, NoPiece)
	next.Put(rookFrom, NoPiece)
	next.Put(kingTo, NewPiece(us, King))
	next.Put(rookTo, NewPiece(us, Rook))
	next.enPassant = NoSquare
	next.halfMoveClock = pos.halfMoveClock + 1
	if us == Black {
		next.fullMoveNumber = pos.fullMoveNumber + 1
	}
	next.castlingRights = pos.castlingRights &^ clearedRights
	next.sideToMove = us.Opposite()
	return next, nil
}

// resolveSource finds the single square holding the piece that can make
// move m. Zero or multiple candidates is a failure (spec §4.3).
func resolveSource(pos *Position, m SANMove) (Square, error) {
	us := pos.sideToMove
	wantPiece := NewPiece(us, m.PieceType)

	var candidates []Square
	for sq := Square(0); sq < 64; sq++ {
		if pos.Get(sq) != wantPiece {
			continue
		}
		if m.FromFile != -1 && sq.File() != m.FromFile {
			continue
		}
		if m.FromRank != -1 && sq.Rank() != m.FromRank {
			continue
		}
		if canReach(pos, sq, m) {
			candidates = append(candidates, sq)
		}
	}

	if len(candidates) == 0 {
		return NoSquare, fmt.Errorf("no %s can reach %s", m.PieceType, m.To)
	}
	if len(candidates) > 1 {
		return NoSquare, fmt.Errorf("ambiguous move: %d pieces can reach %s", len(candidates), m.To)
	}
	return candidates[0], nil
}

// canReach reports whether the piece on from can pseudo-legally reach
// m.To, per the type-specific reachability rules of spec §4.3.
func canReach(pos *Position, from Square, m SANMove) bool {
	switch m.PieceType {
	case Pawn:
		return pawnCanReach(pos, from, m.To)
	case Knight:
		return offsetReach(from, m.To, knightOffsets[:])
	case Bishop:
		return rayReach(pos, from, m.To, bishopDirs[:])
	case Rook:
		return rayReach(pos, from, m.To, rookDirs[:])
	case Queen:
		return rayReach(pos, from, m.To, queenDirs[:])
	case King:
		return offsetReach(from, m.To, kingOffsets[:])
	}
	return false
}

func pawnCanReach(pos *Position, from, to Square) bool {
	us := pos.sideToMove
	dir := 1
	homeRank := 1
	if us == Black {
		dir = -1
		homeRank = 6
	}

	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()

	if df == 0 {
		// Straight push onto an empty square.
		if dr == dir && pos.Get(to) == NoPiece {
			return true
		}
		if dr == 2*dir && from.Rank() == homeRank {
			mid := RankFile(from.Rank()+dir, from.File())
			return pos.Get(mid) == NoPiece && pos.Get(to) == NoPiece
		}
		return false
	}

	if (df == 1 || df == -1) && dr == dir {
		if to == pos.enPassant && pos.enPassant != NoSquare {
			return true
		}
		target := pos.Get(to)
		return target != NoPiece && target.Color() != us
	}
	return false
}

func offsetReach(from, to Square, offsets [][2]int) bool {
	fr, ff := from.Rank(), from.File()
	tr, tf := to.Rank(), to.File()
	for _, o := range offsets {
		if fr+o[0] == tr && ff+o[1] == tf {
			return true
		}
	}
	return false
}

func rayReach(pos *Position, from, to Square, dirs [][2]int) bool {
	fr, ff := from.Rank(), from.File()
	for _, d := range dirs {
		r, f := fr+d[0], ff+d[1]
		for onBoard(r, f) {
			sq := RankFile(r, f)
			if sq == to {
				return true
			}
			if pos.Get(sq) != NoPiece {
				break
			}
			r, f = r+d[0], f+d[1]
		}
	}
	return false
}

// updatedCastlingRights drops rights implied by a king or rook moving
// from or to a home square (spec §4.3).
func updatedCastlingRights(rights Castle, from, to Square) Castle {
	rights &^= lostRights(from)
	rights &^= lostRights(to)
	return rights
}

func lostRights(sq Square) Castle {
	switch sq {
	case RankFile(0, 4):
		return WhiteOO | WhiteOOO
	case RankFile(0, 0):
		return WhiteOOO
	case RankFile(0, 7):
		return WhiteOO
	case RankFile(7, 4):
		return BlackOO | BlackOOO
	case RankFile(7, 0):
		return BlackOOO
	case RankFile(7, 7):
		return BlackOO
	}
	return NoCastle
}
