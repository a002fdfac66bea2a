package index

import "github.com/oriondb/oriondb/chess"

// StructureIndex maps each PawnStructure tag to the set of
// GamePositions where it was detected (spec §4.9).
type StructureIndex struct {
	postings map[chess.PawnStructure]set[GamePosition]
}

// NewStructureIndex returns an empty StructureIndex.
func NewStructureIndex() *StructureIndex {
	return &StructureIndex{postings: make(map[chess.PawnStructure]set[GamePosition])}
}

// Add records gp under every tag in tags.
func (si *StructureIndex) Add(gp GamePosition, tags []chess.PawnStructure) {
	for _, tag := range tags {
		s, ok := si.postings[tag]
		if !ok {
			s = newSet[GamePosition]()
			si.postings[tag] = s
		}
		s.add(gp)
	}
}

// Lookup returns every GamePosition tagged with structure.
func (si *StructureIndex) Lookup(structure chess.PawnStructure) []GamePosition {
	return si.postings[structure].toSlice()
}
