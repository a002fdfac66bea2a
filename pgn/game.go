// Package pgn implements an error-tolerant PGN parser. It reads the whole
// input before splitting it into games, one game text at a time. It is
// total: every input yields a (possibly empty) list of games plus an
// error log, the same contract the reference PGN libraries in this
// corpus (e.g. chessnote's lax parsing mode) offer for malformed input.
package pgn

// SevenTagRoster lists the PGN tags every Game is guaranteed to carry,
// defaulted when absent from the source text.
var SevenTagRoster = [...]string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

var sevenTagDefaults = map[string]string{
	"Event":  "?",
	"Site":   "?",
	"Date":   "????.??.??",
	"Round":  "?",
	"White":  "?",
	"Black":  "?",
	"Result": "*",
}

// Move is a single ply as read from movetext: the verbatim SAN token and
// the most recent brace comment that followed it, if any.
type Move struct {
	SAN     string
	Comment string
}

// Game is one parsed PGN game. ID is assigned by the caller (the ingest
// counter); the parser itself does not number games.
type Game struct {
	ID int

	// tagOrder preserves the order tags were first seen in source text,
	// plus any Seven Tag Roster defaults appended at the end.
	tagOrder []string
	tags     map[string]string

	Moves []Move
}

// newGame returns a Game with the Seven Tag Roster defaulted.
func newGame() *Game {
	g := &Game{tags: make(map[string]string)}
	for _, k := range SevenTagRoster {
		g.setTag(k, sevenTagDefaults[k])
	}
	return g
}

// setTag sets tag k to v, recording first-occurrence order. A later call
// with the same key overwrites the value without changing its position.
func (g *Game) setTag(k, v string) {
	if _, ok := g.tags[k]; !ok {
		g.tagOrder = append(g.tagOrder, k)
	}
	g.tags[k] = v
}

// Tag returns the value of tag k, and whether it was present.
func (g *Game) Tag(k string) (string, bool) {
	v, ok := g.tags[k]
	return v, ok
}

// Tags returns the tag pairs in order of first occurrence.
func (g *Game) Tags() []TagPair {
	out := make([]TagPair, 0, len(g.tagOrder))
	for _, k := range g.tagOrder {
		out = append(out, TagPair{Key: k, Value: g.tags[k]})
	}
	return out
}

// TagPair is one ordered (key, value) PGN tag.
type TagPair struct {
	Key, Value string
}

// Error describes one non-fatal parse failure: the parser records it and
// continues with the next game (spec §4.7, §7).
type Error struct {
	GameIndex int // 0-based index among games attempted, including failures
	Offset    int // byte offset into the source text
	Msg       string
}

func (e *Error) Error() string {
	return e.Msg
}
