package index

import "strings"

// CommentIndex is a simple in-memory inverted token index over move
// comments. Spec §1 scopes out a full external full-text engine; this is
// the minimal contract an implementer may swap a richer engine behind.
type CommentIndex struct {
	postings map[string]set[GamePosition]
}

// NewCommentIndex returns an empty CommentIndex.
func NewCommentIndex() *CommentIndex {
	return &CommentIndex{postings: make(map[string]set[GamePosition])}
}

// Add tokenizes comment and records gp under every surviving token.
func (ci *CommentIndex) Add(comment string, gp GamePosition) {
	for _, tok := range Tokenize(comment) {
		s, ok := ci.postings[tok]
		if !ok {
			s = newSet[GamePosition]()
			ci.postings[tok] = s
		}
		s.add(gp)
	}
}

// Lookup returns every GamePosition whose comment contained token.
func (ci *CommentIndex) Lookup(token string) []GamePosition {
	return ci.postings[strings.ToLower(token)].toSlice()
}

// Tokenize lowercases s and splits on whitespace and [,.!?;:], dropping
// tokens of length <= 2 (spec §4.9).
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', '.', '!', '?', ';', ':':
			return true
		}
		return false
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}
