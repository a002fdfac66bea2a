package index

// Set bundles every index built during ingest. Which members are
// populated depends on the IngestOptions passed to the Builder (spec
// §6): the query layer must treat a nil index as "no postings" rather
// than failing, per spec §7's error-propagation policy.
type Set struct {
	Metadata  *MetadataIndex
	Position  *PositionIndex
	Material  *MaterialIndex
	Structure *StructureIndex
	Move      *MoveIndex
	Motif     *MotifIndex
	Comment   *CommentIndex
}

// NewSet returns a Set with at least the Metadata index present; the
// position/material/structure/move/motif/comment indexes are added by
// the Builder according to the enabled options.
func NewSet() *Set {
	return &Set{Metadata: NewMetadataIndex()}
}

// Diagnostics reports per-index health counters an operator can log
// after ingest, modeled on the reference engine's EPD diagnostics
// struct (engine/epd.go's Comment map carries free-form annotations in
// the same spirit).
type Diagnostics struct {
	GameCount         int
	PositionBuckets   int
	PositionCollisions int
}

// Report computes a Diagnostics snapshot of the current index set.
func (s *Set) Report() Diagnostics {
	d := Diagnostics{GameCount: s.Metadata.GameCount()}
	if s.Position != nil {
		d.PositionCollisions = s.Position.Collisions()
		d.PositionBuckets = len(s.Position.postings)
	}
	return d
}
