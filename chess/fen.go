// fen.go implements the Forsyth-Edwards Notation codec, generalizing the
// field-splitting and piece-placement routines of the reference engine's
// ParsePiecePlacement/FormatPiecePlacement to the array-based Position.

package chess

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	symbolToPiece = map[byte]Piece{
		'P': NewPiece(White, Pawn), 'N': NewPiece(White, Knight),
		'B': NewPiece(White, Bishop), 'R': NewPiece(White, Rook),
		'Q': NewPiece(White, Queen), 'K': NewPiece(White, King),
		'p': NewPiece(Black, Pawn), 'n': NewPiece(Black, Knight),
		'b': NewPiece(Black, Bishop), 'r': NewPiece(Black, Rook),
		'q': NewPiece(Black, Queen), 'k': NewPiece(Black, King),
	}
	pieceToSymbol = func() map[Piece]byte {
		m := make(map[Piece]byte, len(symbolToPiece))
		for s, p := range symbolToPiece {
			m[p] = s
		}
		return m
	}()
)

// PositionFromFEN parses fen into a Position. fen must have the standard
// six space-separated fields; the codec must round-trip any Position
// (spec §4.1, §8).
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("chess: fen %q: expected 6 fields, got %d", fen, len(fields))
	}

	pos := &Position{enPassant: NoSquare}
	for sq := range pos.board {
		pos.board[sq] = NoPiece
	}
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, err
	}
	if err := parseSideToMove(fields[1], pos); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(fields[2], pos); err != nil {
		return nil, err
	}
	if err := parseEnPassant(fields[3], pos); err != nil {
		return nil, err
	}
	clock, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("chess: fen %q: bad halfmove clock: %w", fen, err)
	}
	move, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("chess: fen %q: bad fullmove number: %w", fen, err)
	}
	pos.halfMoveClock = clock
	pos.fullMoveNumber = move
	return pos, nil
}

// ToFEN renders pos in Forsyth-Edwards Notation.
func ToFEN(pos *Position) string {
	var b strings.Builder
	b.WriteString(formatPiecePlacement(pos))
	b.WriteByte(' ')
	b.WriteString(pos.sideToMove.String())
	b.WriteByte(' ')
	b.WriteString(pos.castlingRights.String())
	b.WriteByte(' ')
	b.WriteString(pos.enPassant.String())
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.halfMoveClock))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.fullMoveNumber))
	return b.String()
}

func parsePiecePlacement(str string, pos *Position) error {
	ranks := strings.Split(str, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("chess: expected 8 ranks, got %d", len(ranks))
	}
	for i, rank := range ranks {
		r := 7 - i // FEN lists rank 8 first.
		f := 0
		for j := 0; j < len(rank); j++ {
			ch := rank[j]
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			pi, ok := symbolToPiece[ch]
			if !ok {
				return fmt.Errorf("chess: invalid piece symbol %q", string(ch))
			}
			if f >= 8 {
				return fmt.Errorf("chess: rank %d overflows 8 files", r+1)
			}
			pos.Put(RankFile(r, f), pi)
			f++
		}
		if f != 8 {
			return fmt.Errorf("chess: rank %d has %d files, want 8", r+1, f)
		}
	}
	return nil
}

func formatPiecePlacement(pos *Position) string {
	var b strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte('0' + byte(empty))
				empty = 0
			}
			b.WriteByte(pieceToSymbol[pi])
		}
		if empty > 0 {
			b.WriteByte('0' + byte(empty))
		}
		if r != 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

func parseSideToMove(str string, pos *Position) error {
	switch str {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return fmt.Errorf("chess: invalid side to move %q", str)
	}
	return nil
}

func parseCastlingRights(str string, pos *Position) error {
	if str == "-" {
		pos.castlingRights = NoCastle
		return nil
	}
	var rights Castle
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case 'K':
			rights |= WhiteOO
		case 'Q':
			rights |= WhiteOOO
		case 'k':
			rights |= BlackOO
		case 'q':
			rights |= BlackOOO
		default:
			return fmt.Errorf("chess: invalid castling rights %q", str)
		}
	}
	pos.castlingRights = rights
	return nil
}

func parseEnPassant(str string, pos *Position) error {
	if str == "-" {
		pos.enPassant = NoSquare
		return nil
	}
	sq, err := SquareFromString(str)
	if err != nil {
		return fmt.Errorf("chess: invalid en passant square %q: %w", str, err)
	}
	pos.enPassant = sq
	return nil
}
