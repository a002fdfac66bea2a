package index

// Options selects which indexes a Builder maintains during ingest (spec
// §6). The presence of an index in the resulting Set is a pure function
// of these flags.
type Options struct {
	EnablePositionIndexing bool
	EnableCommentIndexing  bool
	EnableMoveIndexing     bool
	EnableMotifIndexing    bool
}

// DefaultOptions enables every index.
func DefaultOptions() Options {
	return Options{
		EnablePositionIndexing: true,
		EnableCommentIndexing:  true,
		EnableMoveIndexing:     true,
		EnableMotifIndexing:    true,
	}
}

// needsReplay reports whether any option requires replaying a game's
// moves through the board engine (spec §6: move and motif indexing both
// require position indexing to replay).
func (o Options) needsReplay() bool {
	return o.EnablePositionIndexing || o.EnableMoveIndexing || o.EnableMotifIndexing
}
