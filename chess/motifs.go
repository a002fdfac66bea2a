// motifs.go detects tactical motifs directly on the Position board,
// reusing the ray-walk and jump-offset helpers from apply.go the same
// way the reference engine shares its attack-table generation between
// move generation and static-exchange evaluation (engine/see.go).

package chess

import "strings"

// TacticalMotif is a closed enumeration of tactical patterns. Variants
// with no defined detector are kept for sidecar forward compatibility.
type TacticalMotif int

const (
	MotifNone TacticalMotif = iota
	MotifPin
	MotifFork
	MotifSkewer
	MotifDiscoveredAttack
	MotifDoubleAttack
	MotifSacrifice
	MotifDeflection
	MotifDecoy
	MotifRemovalOfDefender
	MotifInterference
	MotifOverloading
	MotifZugzwang
)

func (m TacticalMotif) String() string {
	switch m {
	case MotifPin:
		return "PIN"
	case MotifFork:
		return "FORK"
	case MotifSkewer:
		return "SKEWER"
	case MotifDiscoveredAttack:
		return "DISCOVERED_ATTACK"
	case MotifDoubleAttack:
		return "DOUBLE_ATTACK"
	case MotifSacrifice:
		return "SACRIFICE"
	case MotifDeflection:
		return "DEFLECTION"
	case MotifDecoy:
		return "DECOY"
	case MotifRemovalOfDefender:
		return "REMOVAL_OF_DEFENDER"
	case MotifInterference:
		return "INTERFERENCE"
	case MotifOverloading:
		return "OVERLOADING"
	case MotifZugzwang:
		return "ZUGZWANG"
	}
	return "NONE"
}

// ParseTacticalMotif reverse-looks-up a TacticalMotif by its String name
// (case-insensitive), for the CQL compiler's `motif` field.
func ParseTacticalMotif(name string) (TacticalMotif, bool) {
	for m := MotifNone; m <= MotifZugzwang; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return MotifNone, false
}

var slidingDirs = map[PieceType][][2]int{
	Bishop: {{-1, -1}, {-1, 1}, {1, -1}, {1, 1}},
	Rook:   {{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	Queen:  {{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}},
}

// DetectMotifs returns the union of every tactical motif triggered on
// pos, per the detectors defined in spec §4.6.
func DetectMotifs(pos *Position) []TacticalMotif {
	var tags []TacticalMotif
	if DetectPin(pos) {
		tags = append(tags, MotifPin)
	}
	if DetectSkewer(pos) {
		tags = append(tags, MotifSkewer)
	}
	if DetectFork(pos) {
		tags = append(tags, MotifFork)
	}
	if DetectDoubleAttack(pos) {
		tags = append(tags, MotifDoubleAttack)
	}
	if len(tags) == 0 {
		return []TacticalMotif{MotifNone}
	}
	return tags
}

// DetectPin reports whether any sliding piece pins an enemy piece to a
// more valuable piece behind it.
func DetectPin(pos *Position) bool {
	found := false
	walkSlidingRays(pos, func(attacker Piece, front, back Piece) {
		if front.Color() != back.Color() || front.Color() == attacker.Color() {
			return
		}
		if front.Value() < back.Value() {
			found = true
		}
	})
	return found
}

// DetectSkewer reports whether any sliding piece skewers a more
// valuable enemy piece in front of a less valuable one, with the front
// piece worth at least a minor piece.
func DetectSkewer(pos *Position) bool {
	found := false
	walkSlidingRays(pos, func(attacker Piece, front, back Piece) {
		if front.Color() != back.Color() || front.Color() == attacker.Color() {
			return
		}
		if front.Value() > back.Value() && front.Value() >= 3 {
			found = true
		}
	})
	return found
}

// walkSlidingRays calls fn for every sliding attacker's ray that hits
// two pieces before leaving the board, passing the attacker and the
// first two pieces encountered (front, then back).
func walkSlidingRays(pos *Position, fn func(attacker, front, back Piece)) {
	pos.forEachPiece(func(sq Square, attacker Piece) {
		pt := attacker.Type()
		dirs, ok := slidingDirs[pt]
		if !ok {
			return
		}
		fr, ff := sq.Rank(), sq.File()
		for _, d := range dirs {
			var hit []Piece
			r, f := fr+d[0], ff+d[1]
			for onBoard(r, f) && len(hit) < 2 {
				pi := pos.Get(RankFile(r, f))
				if pi != NoPiece {
					hit = append(hit, pi)
				}
				r, f = r+d[0], f+d[1]
			}
			if len(hit) == 2 {
				fn(attacker, hit[0], hit[1])
			}
		}
	})
}

// DetectFork reports whether some piece attacks at least two enemy
// pieces, each at least as valuable as the attacker.
func DetectFork(pos *Position) bool {
	found := false
	pos.forEachPiece(func(sq Square, attacker Piece) {
		if found {
			return
		}
		targets := attackedSquares(pos, sq, attacker)
		count := 0
		for _, t := range targets {
			victim := pos.Get(t)
			if victim != NoPiece && victim.Color() != attacker.Color() && victim.Value() >= attacker.Value() {
				count++
			}
		}
		if count >= 2 {
			found = true
		}
	})
	return found
}

// DetectDoubleAttack reports whether some square holds an enemy piece
// attacked by at least two same-side pieces.
func DetectDoubleAttack(pos *Position) bool {
	attackers := map[Square]map[Color]int{}
	pos.forEachPiece(func(sq Square, pi Piece) {
		for _, t := range attackedSquares(pos, sq, pi) {
			if attackers[t] == nil {
				attackers[t] = map[Color]int{}
			}
			attackers[t][pi.Color()]++
		}
	})
	for sq, byColor := range attackers {
		victim := pos.Get(sq)
		if victim == NoPiece {
			continue
		}
		if byColor[victim.Color().Opposite()] >= 2 {
			return true
		}
	}
	return false
}

// attackedSquares returns the pseudo-legal attack set of the piece pi
// standing on sq: sliding attacks stop at (and include) the first
// occupied square; knight and king use their standard offsets; pawns
// attack diagonally forward only.
func attackedSquares(pos *Position, sq Square, pi Piece) []Square {
	switch pi.Type() {
	case Pawn:
		return pawnAttacks(sq, pi.Color())
	case Knight:
		return jumpTargets(sq, knightOffsets[:])
	case King:
		return jumpTargets(sq, kingOffsets[:])
	case Bishop:
		return rayTargets(pos, sq, bishopDirs[:])
	case Rook:
		return rayTargets(pos, sq, rookDirs[:])
	case Queen:
		return rayTargets(pos, sq, queenDirs[:])
	}
	return nil
}

func pawnAttacks(sq Square, c Color) []Square {
	dir := 1
	if c == Black {
		dir = -1
	}
	r, f := sq.Rank(), sq.File()
	var out []Square
	for _, df := range [2]int{-1, 1} {
		if onBoard(r+dir, f+df) {
			out = append(out, RankFile(r+dir, f+df))
		}
	}
	return out
}

func jumpTargets(sq Square, offsets [][2]int) []Square {
	r, f := sq.Rank(), sq.File()
	var out []Square
	for _, o := range offsets {
		if onBoard(r+o[0], f+o[1]) {
			out = append(out, RankFile(r+o[0], f+o[1]))
		}
	}
	return out
}

func rayTargets(pos *Position, sq Square, dirs [][2]int) []Square {
	r, f := sq.Rank(), sq.File()
	var out []Square
	for _, d := range dirs {
		rr, ff := r+d[0], f+d[1]
		for onBoard(rr, ff) {
			t := RankFile(rr, ff)
			out = append(out, t)
			if pos.Get(t) != NoPiece {
				break
			}
			rr, ff = rr+d[0], ff+d[1]
		}
	}
	return out
}
