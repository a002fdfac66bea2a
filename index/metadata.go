package index

import (
	"strings"
)

// Elo range domain defaults (spec §4.10): unspecified bounds cover the
// full domain.
const (
	MinElo = 0
	MaxElo = 3000

	MinDate = "0000.00.00"
	MaxDate = "9999.99.99"
)

// MetadataIndex implements the metadata inverted and range indexes of
// spec §4.9: game offsets, player/event/eco/result lookups, and ordered
// Elo/date range scans.
type MetadataIndex struct {
	gameOffset map[int]uint64

	playerIdx map[string]set[int]
	eventIdx  map[string]set[int]
	ecoIdx    map[string]set[int]
	resultIdx map[string]set[int]

	eloIdx  *orderedMap[int, int]
	dateIdx *orderedMap[string, int]
}

// NewMetadataIndex returns an empty MetadataIndex.
func NewMetadataIndex() *MetadataIndex {
	return &MetadataIndex{
		gameOffset: make(map[int]uint64),
		playerIdx:  make(map[string]set[int]),
		eventIdx:   make(map[string]set[int]),
		ecoIdx:     make(map[string]set[int]),
		resultIdx:  make(map[string]set[int]),
		eloIdx:     newOrderedMap[int, int](),
		dateIdx:    newOrderedMap[string, int](),
	}
}

// GameTags is the subset of a Game's tags the metadata indexer reads.
type GameTags struct {
	White, Black string
	Event        string
	ECO          string
	Result       string
	WhiteElo     int
	BlackElo     int
	HasWhiteElo  bool
	HasBlackElo  bool
	Date         string
}

// IndexGame records gameID's archive offset and updates every metadata
// posting list from tags. Player and event keys are lowercased and
// trimmed, ECO is uppercased, result is kept literal (spec §4.9).
func (mi *MetadataIndex) IndexGame(gameID int, offset uint64, tags GameTags) {
	mi.gameOffset[gameID] = offset

	addTo := func(idx map[string]set[int], key string) {
		if key == "" {
			return
		}
		s, ok := idx[key]
		if !ok {
			s = newSet[int]()
			idx[key] = s
		}
		s.add(gameID)
	}

	addTo(mi.playerIdx, normalizePlayer(tags.White))
	addTo(mi.playerIdx, normalizePlayer(tags.Black))
	addTo(mi.eventIdx, normalizeEvent(tags.Event))
	addTo(mi.ecoIdx, strings.ToUpper(strings.TrimSpace(tags.ECO)))
	addTo(mi.resultIdx, tags.Result)

	if tags.HasWhiteElo {
		mi.eloIdx.add(tags.WhiteElo, gameID)
	}
	if tags.HasBlackElo {
		mi.eloIdx.add(tags.BlackElo, gameID)
	}
	if tags.Date != "" {
		mi.dateIdx.add(tags.Date, gameID)
	}
}

func normalizePlayer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeEvent(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Offset returns the archive offset for gameID.
func (mi *MetadataIndex) Offset(gameID int) (uint64, bool) {
	off, ok := mi.gameOffset[gameID]
	return off, ok
}

// Player returns the posting set for a (lowercased, trimmed) player name.
func (mi *MetadataIndex) Player(name string) []int {
	return mi.playerIdx[normalizePlayer(name)].toSlice()
}

// Event returns the posting set for a (lowercased, trimmed) event name.
func (mi *MetadataIndex) Event(name string) []int {
	return mi.eventIdx[normalizeEvent(name)].toSlice()
}

// ECO returns the posting set for an (uppercased) ECO code.
func (mi *MetadataIndex) ECO(code string) []int {
	return mi.ecoIdx[strings.ToUpper(strings.TrimSpace(code))].toSlice()
}

// Result returns the posting set for a literal result string.
func (mi *MetadataIndex) Result(result string) []int {
	return mi.resultIdx[result].toSlice()
}

// EloRange returns every game ID with at least one Elo tag in [lo, hi].
func (mi *MetadataIndex) EloRange(lo, hi int) []int {
	return mi.eloIdx.Range(lo, hi)
}

// DateRange returns every game ID whose Date tag lies in [lo, hi]
// lexicographically (ISO-like "YYYY.MM.DD" strings sort correctly).
func (mi *MetadataIndex) DateRange(lo, hi string) []int {
	return mi.dateIdx.Range(lo, hi)
}

// GameCount returns the number of games indexed.
func (mi *MetadataIndex) GameCount() int {
	return len(mi.gameOffset)
}

// AllGameIDs returns every ingested game ID, in no particular order. It
// is the base candidate set for a query with no active predicates.
func (mi *MetadataIndex) AllGameIDs() []int {
	ids := make([]int, 0, len(mi.gameOffset))
	for id := range mi.gameOffset {
		ids = append(ids, id)
	}
	return ids
}
