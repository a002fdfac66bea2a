package pgn

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	tagPairRe  = regexp.MustCompile(`\[\s*(\w+)\s*"([^"]*)"\s*\]`)
	moveNumRe  = regexp.MustCompile(`\d+\.+`)
	nagRe      = regexp.MustCompile(`\$\d+`)
	commentRe  = regexp.MustCompile(`\{[^}]*\}`)
	moveTokRe  = regexp.MustCompile(`[NBRQK]?[a-h]?[1-8]?x?[a-h][1-8](?:=[NBRQ])?[+#]?|O-O(?:-O)?[+#]?`)
	resultRe   = regexp.MustCompile(`^(1-0|0-1|1/2-1/2|\*)$`)
)

// Parse reads PGN text from r and returns every game it could recover,
// plus the log of errors recorded along the way. Parse never returns a
// non-nil error itself; it is total over its input (spec §4.7).
func Parse(r io.Reader) ([]*Game, []*Error) {
	text, _ := io.ReadAll(r)
	return ParseString(string(text))
}

// ParseString parses an in-memory PGN collection. Game boundaries are
// detected per spec §4.7: a game begins at the first tag pair, and ends
// at a movetext result token or when a new tag pair opens after a
// blank-line gap while content is already buffered.
func ParseString(src string) ([]*Game, []*Error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")

	var games []*Game
	var errs []*Error

	var buf strings.Builder
	var offset int
	bufStart := 0
	sawTagInBuf := false
	blankRun := 0
	gameIndex := 0

	flush := func(end int) {
		text := buf.String()
		buf.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		g, err := parseOneGame(text, bufStart)
		if err != nil {
			errs = append(errs, &Error{GameIndex: gameIndex, Offset: bufStart, Msg: err.Error()})
		} else {
			games = append(games, g)
		}
		gameIndex++
		sawTagInBuf = false
		bufStart = end
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		isTagLine := strings.HasPrefix(trimmed, "[")

		if isTagLine && buf.Len() > 0 && blankRun > 0 {
			// A new tag pair opened after a blank-line gap: close the
			// buffered game text first.
			flush(offset)
		}

		if trimmed == "" {
			blankRun++
		} else {
			blankRun = 0
		}

		if isTagLine {
			sawTagInBuf = true
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		offset += len(line) + 1

		if !isTagLine && sawTagInBuf {
			for _, tok := range strings.Fields(trimmed) {
				tok = strings.Trim(tok, ".")
				if resultRe.MatchString(tok) {
					flush(offset)
					break
				}
			}
		}
	}
	if buf.Len() > 0 {
		flush(offset)
	}

	return games, errs
}

// parseOneGame extracts tags and moves from a single game's raw text.
func parseOneGame(text string, baseOffset int) (*Game, error) {
	g := newGame()

	sawTag := false
	for _, m := range tagPairRe.FindAllStringSubmatch(text, -1) {
		sawTag = true
		g.setTag(m[1], m[2])
	}
	if !sawTag {
		return nil, fmt.Errorf("pgn: no tag pairs found at offset %d", baseOffset)
	}

	movetext := tagPairRe.ReplaceAllString(text, "")
	movetext = stripVariations(movetext)
	movetext = moveNumRe.ReplaceAllString(movetext, " ")
	movetext = nagRe.ReplaceAllString(movetext, " ")

	comments, movetext := extractComments(movetext)

	tokens := moveTokRe.FindAllStringIndex(movetext, -1)
	moves := make([]Move, 0, len(tokens))
	ends := make([]int, len(tokens))
	for i, idx := range tokens {
		moves = append(moves, Move{SAN: movetext[idx[0]:idx[1]]})
		ends[i] = idx[1]
	}
	for _, c := range comments {
		if i, ok := precedingMove(ends, c.offset); ok {
			moves[i].Comment = c.text
		}
	}
	g.Moves = moves
	return g, nil
}

type positionedComment struct {
	offset int
	text   string
}

// extractComments pulls out every brace comment, recording its byte
// position in the (post-tag-stripped) text, and returns the text with
// comments removed.
func extractComments(s string) ([]positionedComment, string) {
	var comments []positionedComment
	var b strings.Builder
	last := 0
	for _, loc := range commentRe.FindAllStringIndex(s, -1) {
		b.WriteString(s[last:loc[0]])
		inner := strings.Trim(s[loc[0]+1:loc[1]-1], " \t\n")
		comments = append(comments, positionedComment{offset: b.Len(), text: inner})
		last = loc[1]
	}
	b.WriteString(s[last:])
	return comments, b.String()
}

// precedingMove returns the index of the move token whose end offset
// (ends[i]) is the greatest value <= pos: the move immediately preceding
// a comment recorded at pos. Later comments following the same move
// overwrite earlier ones, so a move keeps the most recent of several
// consecutive trailing comments (spec §4.7 step 4: "associate each
// comment with the most recent preceding move").
func precedingMove(ends []int, pos int) (int, bool) {
	best := -1
	bestEnd := -1
	for i, end := range ends {
		if end <= pos && end > bestEnd {
			bestEnd = end
			best = i
		}
	}
	return best, best != -1
}

// stripVariations removes the text inside balanced parentheses, to
// arbitrary nesting depth.
func stripVariations(s string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteByte(s[i])
			}
		}
	}
	return b.String()
}

// Scanner reads PGN text from r line by line and applies ParseString's
// boundary detection. It does not stream: ScanAll collects the whole
// input in memory before parsing, and games are not returned one at a
// time.
type Scanner struct {
	scanner *bufio.Scanner
	pending []*Game
	errs    []*Error
	done    bool
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(r)}
}

// ScanAll drains the underlying reader and returns every recovered game
// plus the accumulated error log. Scanner exists for callers who prefer
// an incremental read loop over buffering; ScanAll performs the same
// total parse as Parse/ParseString.
func (s *Scanner) ScanAll() ([]*Game, []*Error) {
	s.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var sb strings.Builder
	for s.scanner.Scan() {
		sb.WriteString(s.scanner.Text())
		sb.WriteByte('\n')
	}
	return ParseString(sb.String())
}
