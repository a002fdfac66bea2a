package query

import (
	"sort"

	"github.com/oriondb/oriondb/archive"
	"github.com/oriondb/oriondb/chess"
	"github.com/oriondb/oriondb/index"
	"github.com/oriondb/oriondb/pgn"
)

// Result is one resolved game: its ingest-assigned ID plus the archive
// record decoded at its offset.
type Result struct {
	GameID int
	Tags   []pgn.TagPair
	Moves  []pgn.Move
}

// idSet is an unordered set of game IDs, the unit every predicate
// resolves to before intersection.
type idSet map[int]struct{}

func newIDSet(ids []int) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func gamePositionIDs(gps []index.GamePosition) idSet {
	s := make(idSet, len(gps))
	for _, gp := range gps {
		s[gp.GameID] = struct{}{}
	}
	return s
}

func intersect(a, b idSet) idSet {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	out := make(idSet, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// candidates resolves every active predicate slot to an idSet against
// set, per spec §4.10 step 1-2: any empty active predicate short-circuits
// the whole query to the empty set. A Builder with no active predicates
// matches every ingested game.
func (b *Builder) candidates(set *index.Set) idSet {
	var active []idSet

	add := func(ids []int) bool {
		s := newIDSet(ids)
		if len(s) == 0 {
			return false
		}
		active = append(active, s)
		return true
	}
	addGP := func(gps []index.GamePosition) bool {
		s := gamePositionIDs(gps)
		if len(s) == 0 {
			return false
		}
		active = append(active, s)
		return true
	}

	if b.hasPlayer && !add(set.Metadata.Player(b.player)) {
		return nil
	}
	if b.hasEvent && !add(set.Metadata.Event(b.event)) {
		return nil
	}
	if b.hasECO && !add(set.Metadata.ECO(b.eco)) {
		return nil
	}
	if b.hasResult && !add(set.Metadata.Result(b.result)) {
		return nil
	}
	if b.hasElo && !add(set.Metadata.EloRange(b.minElo, b.maxElo)) {
		return nil
	}
	if b.hasDate && !add(set.Metadata.DateRange(b.startDate, b.endDate)) {
		return nil
	}

	if b.hasFEN {
		if set.Position == nil {
			return nil
		}
		pos, err := chess.PositionFromFEN(b.fen)
		if err != nil {
			return nil
		}
		hash := chess.Hash(pos)
		var matches []index.GamePosition
		for _, gp := range set.Position.Lookup(hash) {
			if gp.FEN == b.fen {
				matches = append(matches, gp)
			}
		}
		if !addGP(matches) {
			return nil
		}
	}
	if b.hasStructure {
		if set.Structure == nil || !addGP(set.Structure.Lookup(b.structure)) {
			return nil
		}
	}
	if b.hasCommentary {
		if set.Comment == nil {
			return nil
		}
		tokens := index.Tokenize(b.commentary)
		var tokenSet idSet
		for i, tok := range tokens {
			s := gamePositionIDs(set.Comment.Lookup(tok))
			if i == 0 {
				tokenSet = s
			} else {
				tokenSet = intersect(tokenSet, s)
			}
			if len(tokenSet) == 0 {
				return nil
			}
		}
		if tokenSet == nil {
			return nil
		}
		active = append(active, tokenSet)
	}
	if b.hasSANMove {
		if set.Move == nil || !addGP(set.Move.FindMove(b.sanMove)) {
			return nil
		}
	}
	if b.hasMotif {
		if set.Motif == nil || !addGP(set.Motif.Lookup(b.motif)) {
			return nil
		}
	}

	if len(active) == 0 {
		return newIDSet(set.Metadata.AllGameIDs())
	}
	result := active[0]
	for _, s := range active[1:] {
		result = intersect(result, s)
		if len(result) == 0 {
			return nil
		}
	}
	return result
}

// CandidateIDs resolves the query against set and returns the matching
// game IDs, in no particular order. It is the building block the cql
// compiler uses to union OR branches that a single Builder cannot
// express (spec §4.11: "an implementation may evaluate OR by computing
// both sides' intersections and returning their union").
func (b *Builder) CandidateIDs(set *index.Set) []int {
	ids := b.candidates(set)
	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}

// Count resolves the query and returns the candidate count without
// reading any game record (spec §4.10: "count operations ... return its
// size without reading games").
func (b *Builder) Count(set *index.Set) int {
	return len(b.candidates(set))
}

// Execute resolves the query, reads every candidate's record through
// reader, and returns the results. Game IDs with no resolvable offset or
// a failed archive read are logged-equivalent (simply skipped), per spec
// §4.10 step 3 and §7's "read errors do not abort the query".
func (b *Builder) Execute(set *index.Set, reader *archive.Reader) ([]Result, error) {
	ids := b.candidates(set)
	sorted := make([]int, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)

	out := make([]Result, 0, len(sorted))
	for _, id := range sorted {
		offset, ok := set.Metadata.Offset(id)
		if !ok {
			continue
		}
		rec, err := reader.ReadGameAt(offset)
		if err != nil {
			continue
		}
		out = append(out, Result{GameID: id, Tags: rec.Tags, Moves: rec.Moves})
	}
	return out, nil
}
