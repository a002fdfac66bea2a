package chess

// pieceValue mirrors Piece.Value but keyed by PieceType for the
// MaterialSignature's imbalance computation (spec §3).
var pieceValue = [...]int{Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9}

// MaterialSignature is the 10-tuple of piece counts (Q,R,B,N,P) for each
// color, plus its derived imbalance and endgame flag.
type MaterialSignature struct {
	WhiteQueens, WhiteRooks, WhiteBishops, WhiteKnights, WhitePawns int
	BlackQueens, BlackRooks, BlackBishops, BlackKnights, BlackPawns int
}

// ComputeMaterialSignature derives the material signature of pos.
func ComputeMaterialSignature(pos *Position) MaterialSignature {
	var sig MaterialSignature
	pos.forEachPiece(func(_ Square, pi Piece) {
		white := pi.Color() == White
		switch pi.Type() {
		case Queen:
			if white {
				sig.WhiteQueens++
			} else {
				sig.BlackQueens++
			}
		case Rook:
			if white {
				sig.WhiteRooks++
			} else {
				sig.BlackRooks++
			}
		case Bishop:
			if white {
				sig.WhiteBishops++
			} else {
				sig.BlackBishops++
			}
		case Knight:
			if white {
				sig.WhiteKnights++
			} else {
				sig.BlackKnights++
			}
		case Pawn:
			if white {
				sig.WhitePawns++
			} else {
				sig.BlackPawns++
			}
		}
	})
	return sig
}

// Imbalance returns sum(white piece values) - sum(black piece values).
func (m MaterialSignature) Imbalance() int {
	white := m.WhiteQueens*pieceValue[Queen] + m.WhiteRooks*pieceValue[Rook] +
		m.WhiteBishops*pieceValue[Bishop] + m.WhiteKnights*pieceValue[Knight] + m.WhitePawns*pieceValue[Pawn]
	black := m.BlackQueens*pieceValue[Queen] + m.BlackRooks*pieceValue[Rook] +
		m.BlackBishops*pieceValue[Bishop] + m.BlackKnights*pieceValue[Knight] + m.BlackPawns*pieceValue[Pawn]
	return white - black
}

// IsEndgame reports whether total non-king pieces are at most 10.
func (m MaterialSignature) IsEndgame() bool {
	total := m.WhiteQueens + m.WhiteRooks + m.WhiteBishops + m.WhiteKnights + m.WhitePawns +
		m.BlackQueens + m.BlackRooks + m.BlackBishops + m.BlackKnights + m.BlackPawns
	return total <= 10
}

// Counts returns the 10 piece counts in a fixed order, for callers that
// need to serialize a MaterialSignature without reaching into its named
// fields (the sidecar encoder).
func (m MaterialSignature) Counts() [10]int {
	return [10]int{
		m.WhiteQueens, m.WhiteRooks, m.WhiteBishops, m.WhiteKnights, m.WhitePawns,
		m.BlackQueens, m.BlackRooks, m.BlackBishops, m.BlackKnights, m.BlackPawns,
	}
}

// MaterialSignatureFromCounts rebuilds a MaterialSignature from the
// fixed-order counts produced by Counts.
func MaterialSignatureFromCounts(counts []int) MaterialSignature {
	return MaterialSignature{
		WhiteQueens: counts[0], WhiteRooks: counts[1], WhiteBishops: counts[2], WhiteKnights: counts[3], WhitePawns: counts[4],
		BlackQueens: counts[5], BlackRooks: counts[6], BlackBishops: counts[7], BlackKnights: counts[8], BlackPawns: counts[9],
	}
}
