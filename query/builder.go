// Package query implements the fluent predicate builder and execution
// engine of spec §4.10: a conjunction of filters over distinct predicate
// slots, each resolved against an index.Set and intersected to a
// candidate game-ID set before resolving to archive records.
package query

import (
	"github.com/oriondb/oriondb/chess"
	"github.com/oriondb/oriondb/index"
)

// Builder accumulates predicate slots. Each setter returns the Builder
// for chaining; a Builder with no predicates set matches every ingested
// game.
type Builder struct {
	player, event, eco, result         string
	hasPlayer, hasEvent, hasECO, hasResult bool

	hasElo         bool
	minElo, maxElo int

	hasDate              bool
	startDate, endDate string

	hasFEN bool
	fen    string

	hasStructure bool
	structure    chess.PawnStructure

	hasCommentary bool
	commentary    string

	hasSANMove bool
	sanMove    string

	hasMotif bool
	motif    chess.TacticalMotif
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{minElo: index.MinElo, maxElo: index.MaxElo, startDate: index.MinDate, endDate: index.MaxDate}
}

// Player filters on either side's player name (case-insensitive, trimmed).
func (b *Builder) Player(name string) *Builder {
	b.player, b.hasPlayer = name, true
	return b
}

// Event filters on the Event tag (case-insensitive, trimmed).
func (b *Builder) Event(name string) *Builder {
	b.event, b.hasEvent = name, true
	return b
}

// ECO filters on the ECO opening code (case-insensitive).
func (b *Builder) ECO(code string) *Builder {
	b.eco, b.hasECO = code, true
	return b
}

// Result filters on the literal Result tag value.
func (b *Builder) Result(result string) *Builder {
	b.result, b.hasResult = result, true
	return b
}

// MinElo raises the Elo range's lower bound (spec §4.10: unspecified
// bounds default to the full Elo domain).
func (b *Builder) MinElo(v int) *Builder {
	b.hasElo, b.minElo = true, v
	return b
}

// MaxElo lowers the Elo range's upper bound.
func (b *Builder) MaxElo(v int) *Builder {
	b.hasElo, b.maxElo = true, v
	return b
}

// StartDate raises the date range's lower bound (lexicographic ISO-like
// "YYYY.MM.DD").
func (b *Builder) StartDate(v string) *Builder {
	b.hasDate, b.startDate = true, v
	return b
}

// EndDate lowers the date range's upper bound.
func (b *Builder) EndDate(v string) *Builder {
	b.hasDate, b.endDate = true, v
	return b
}

// FEN filters on positions reached during replay matching fen exactly
// (resolved via the position index's Zobrist hash, with an exact FEN
// comparison to discard hash collisions).
func (b *Builder) FEN(fen string) *Builder {
	b.fen, b.hasFEN = fen, true
	return b
}

// Structure filters on a detected PawnStructure tag.
func (b *Builder) Structure(tag chess.PawnStructure) *Builder {
	b.structure, b.hasStructure = tag, true
	return b
}

// Commentary filters on move comments containing every token of text
// (tokenized the same way the comment index tokenizes at ingest).
func (b *Builder) Commentary(text string) *Builder {
	b.commentary, b.hasCommentary = text, true
	return b
}

// SANMove filters on games in which san was played at some ply.
func (b *Builder) SANMove(san string) *Builder {
	b.sanMove, b.hasSANMove = san, true
	return b
}

// Motif filters on a detected TacticalMotif tag.
func (b *Builder) Motif(tag chess.TacticalMotif) *Builder {
	b.motif, b.hasMotif = tag, true
	return b
}
