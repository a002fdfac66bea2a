package index

// PositionIndex maps a Zobrist hash to every GamePosition that produced
// it. Collisions (distinct FEN sharing a bucket) are tolerated; the
// index tracks how many it has seen for diagnostics (spec §4.9).
type PositionIndex struct {
	postings   map[uint64][]GamePosition
	collisions int
}

// NewPositionIndex returns an empty PositionIndex.
func NewPositionIndex() *PositionIndex {
	return &PositionIndex{postings: make(map[uint64][]GamePosition)}
}

// Add records that hash was observed at gp.
func (pi *PositionIndex) Add(hash uint64, gp GamePosition) {
	bucket := pi.postings[hash]
	for _, existing := range bucket {
		if existing.FEN != gp.FEN {
			pi.collisions++
			break
		}
	}
	pi.postings[hash] = append(bucket, gp)
}

// Lookup returns every GamePosition recorded under hash.
func (pi *PositionIndex) Lookup(hash uint64) []GamePosition {
	return pi.postings[hash]
}

// Collisions returns the number of distinct-FEN collisions observed
// across all buckets, for diagnostics.
func (pi *PositionIndex) Collisions() int {
	return pi.collisions
}
