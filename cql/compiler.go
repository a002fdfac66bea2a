package cql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oriondb/oriondb/archive"
	"github.com/oriondb/oriondb/chess"
	"github.com/oriondb/oriondb/index"
	"github.com/oriondb/oriondb/query"
)

// CompileError reports a field the compiler does not recognize, or an
// operator that field does not support (spec §7: "unknown operator on a
// field is a compile error").
type CompileError struct {
	Field, Msg string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("cql: compile error on field %q: %s", e.Field, e.Msg)
}

// Query is a compiled CQL expression: every AND/OR node combines its two
// sides' candidate game-ID sets rather than sharing a single
// query.Builder, since OR cannot be expressed by one builder (spec
// §4.11's documented union strategy). This keeps AND and OR uniform: an
// AND node intersects, an OR node unions.
type Query struct {
	leaf     *query.Builder
	op       TokenKind // TokAnd or TokOr, set when leaf == nil
	left, right *Query
}

// Compile parses src and lowers it to a Query. Field names are
// lower-cased before matching the slot table of spec §4.11.
func Compile(src string) (*Query, error) {
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return compileExpr(expr)
}

func compileExpr(e *Expr) (*Query, error) {
	if e.Comparison != nil {
		b, err := compileComparison(e.Comparison)
		if err != nil {
			return nil, err
		}
		return &Query{leaf: b}, nil
	}
	left, err := compileExpr(e.BinaryOp.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileExpr(e.BinaryOp.Right)
	if err != nil {
		return nil, err
	}
	return &Query{op: e.BinaryOp.Op, left: left, right: right}, nil
}

func compileComparison(c *Comparison) (*query.Builder, error) {
	field := strings.ToLower(c.Field)
	b := query.New()

	isEq := c.Op == TokOp && c.OpText == "="
	requireEq := func() error {
		if !isEq {
			return &CompileError{c.Field, fmt.Sprintf("operator %q not supported on this field", c.OpText)}
		}
		return nil
	}
	requireString := func() (string, error) {
		if c.Value.IsNumber {
			return "", &CompileError{c.Field, "expected a string value"}
		}
		return c.Value.Str, nil
	}

	switch field {
	case "player":
		if err := requireEq(); err != nil {
			return nil, err
		}
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		b.Player(s)
	case "event":
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		if c.Op == TokContains {
			b.Commentary(s)
		} else if err := requireEq(); err != nil {
			return nil, err
		} else {
			b.Event(s)
		}
	case "eco":
		if err := requireEq(); err != nil {
			return nil, err
		}
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		b.ECO(s)
	case "result":
		if err := requireEq(); err != nil {
			return nil, err
		}
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		b.Result(s)
	case "fen":
		if err := requireEq(); err != nil {
			return nil, err
		}
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		b.FEN(s)
	case "structure":
		if err := requireEq(); err != nil {
			return nil, err
		}
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		tag, ok := chess.ParsePawnStructure(s)
		if !ok {
			return nil, &CompileError{c.Field, fmt.Sprintf("unknown pawn structure %q", s)}
		}
		b.Structure(tag)
	case "commentary":
		if c.Op != TokContains {
			return nil, &CompileError{c.Field, "only CONTAINS is supported on this field"}
		}
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		b.Commentary(s)
	case "move":
		if err := requireEq(); err != nil {
			return nil, err
		}
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		b.SANMove(s)
	case "motif":
		if err := requireEq(); err != nil {
			return nil, err
		}
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		tag, ok := chess.ParseTacticalMotif(s)
		if !ok {
			return nil, &CompileError{c.Field, fmt.Sprintf("unknown tactical motif %q", s)}
		}
		b.Motif(tag)
	case "date":
		s, err := requireString()
		if err != nil {
			return nil, err
		}
		switch c.OpText {
		case "=":
			b.StartDate(s)
			b.EndDate(s)
		case ">=":
			b.StartDate(s)
		case "<=":
			b.EndDate(s)
		default:
			return nil, &CompileError{c.Field, fmt.Sprintf("operator %q not supported on this field", c.OpText)}
		}
	case "elo":
		if !c.Value.IsNumber {
			return nil, &CompileError{c.Field, "expected a numeric value"}
		}
		n := int(c.Value.Num)
		switch c.OpText {
		case "=":
			b.MinElo(n)
			b.MaxElo(n)
		case ">":
			b.MinElo(n + 1)
		case ">=":
			b.MinElo(n)
		case "<":
			b.MaxElo(n - 1)
		case "<=":
			b.MaxElo(n)
		default:
			return nil, &CompileError{c.Field, fmt.Sprintf("operator %q not supported on this field", c.OpText)}
		}
	default:
		return nil, &CompileError{c.Field, "unknown field"}
	}
	return b, nil
}

// CandidateIDs resolves q against set, combining AND nodes by
// intersection and OR nodes by union.
func (q *Query) CandidateIDs(set *index.Set) []int {
	if q.leaf != nil {
		return q.leaf.CandidateIDs(set)
	}
	left := q.left.CandidateIDs(set)
	right := q.right.CandidateIDs(set)
	if q.op == TokOr {
		return union(left, right)
	}
	return intersectIDs(left, right)
}

// Count returns the candidate count without reading any game record.
func (q *Query) Count(set *index.Set) int {
	return len(q.CandidateIDs(set))
}

// Execute resolves q and reads every candidate's record through reader.
func (q *Query) Execute(set *index.Set, reader *archive.Reader) ([]query.Result, error) {
	ids := q.CandidateIDs(set)
	sort.Ints(ids)

	out := make([]query.Result, 0, len(ids))
	for _, id := range ids {
		offset, ok := set.Metadata.Offset(id)
		if !ok {
			continue
		}
		rec, err := reader.ReadGameAt(offset)
		if err != nil {
			continue
		}
		out = append(out, query.Result{GameID: id, Tags: rec.Tags, Moves: rec.Moves})
	}
	return out, nil
}

func intersectIDs(a, b []int) []int {
	set := make(map[int]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	var out []int
	for _, id := range b {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func union(a, b []int) []int {
	set := make(map[int]struct{}, len(a)+len(b))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		set[id] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
