// zobrist.go contains the Zobrist hashing keys, generated once from a
// fixed seed so hashes are stable across runs. Generalizes the reference
// engine's ZobristPiece/ZobristCastle/ZobristEnpassant/ZobristColor
// tables (engine/zobrist.go) to the spec's 4-bit Piece/Castle encoding.

package chess

import "math/rand"

// zobristSeed is fixed so that two implementations using the same
// key-generation algorithm and seed produce identical hashes for the
// same Position (spec §4.4's determinism contract).
const zobristSeed = 1070372

var (
	// ZobristPieceSquare holds one key per (piece code 0..15, square 0..63).
	ZobristPieceSquare [16][64]uint64
	// ZobristBlackToMove is XORed in when side to move is Black.
	ZobristBlackToMove uint64
	// ZobristCastling holds one key per castling-rights mask value 0..15.
	ZobristCastling [16]uint64
	// ZobristEnPassantFile holds one key per file 0..7.
	ZobristEnPassantFile [8]uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	rand64 := func() uint64 {
		return uint64(r.Int63())<<32 ^ uint64(r.Int63())
	}
	for p := 0; p < 16; p++ {
		for sq := 0; sq < 64; sq++ {
			ZobristPieceSquare[p][sq] = rand64()
		}
	}
	ZobristBlackToMove = rand64()
	for c := 0; c < 16; c++ {
		ZobristCastling[c] = rand64()
	}
	for f := 0; f < 8; f++ {
		ZobristEnPassantFile[f] = rand64()
	}
}

// Hash computes the Zobrist hash of pos from scratch: the XOR of every
// occupied square's piece-square key, the side-to-move key if Black is
// to move, the castling-rights key and the en-passant file key.
func Hash(pos *Position) uint64 {
	var h uint64
	pos.forEachPiece(func(sq Square, pi Piece) {
		h ^= ZobristPieceSquare[pi][sq]
	})
	if pos.sideToMove == Black {
		h ^= ZobristBlackToMove
	}
	h ^= ZobristCastling[pos.castlingRights]
	if pos.enPassant != NoSquare {
		h ^= ZobristEnPassantFile[pos.enPassant.File()]
	}
	return h
}
