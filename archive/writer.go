package archive

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer appends games to a new archive file. A Writer is not safe for
// concurrent use (spec §5: "writers are not shareable across threads").
type Writer struct {
	w         io.WriteSeeker
	bw        *bufio.Writer
	offset    int64
	gameCount uint32
	closed    bool
}

// NewWriter writes the archive header to w and returns a Writer ready to
// accept games. w must also support Seek so Close can back-patch the
// reserved game-count field.
func NewWriter(w io.WriteSeeker) (*Writer, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(Magic[:]); err != nil {
		return nil, fmt.Errorf("archive: writing magic: %w", err)
	}
	if err := binary.Write(bw, binary.BigEndian, Version); err != nil {
		return nil, fmt.Errorf("archive: writing version: %w", err)
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(0)); err != nil {
		return nil, fmt.Errorf("archive: writing reserved field: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("archive: flushing header: %w", err)
	}
	return &Writer{w: w, bw: bw, offset: headerSize}, nil
}

// headerSize is magic[4] + version[4] + reserved[4].
const headerSize = 12

// WriteGame appends rec and returns its starting offset, inclusive of
// the game_length prefix (spec §4.8), for the caller to record in the
// metadata index.
func (wr *Writer) WriteGame(rec Record) (offset uint64, err error) {
	body, err := encodeRecord(rec)
	if err != nil {
		return 0, fmt.Errorf("archive: encoding game: %w", err)
	}

	start := wr.offset
	if err := binary.Write(wr.bw, binary.BigEndian, uint32(len(body))); err != nil {
		return 0, fmt.Errorf("archive: writing game length: %w", err)
	}
	if _, err := wr.bw.Write(body); err != nil {
		return 0, fmt.Errorf("archive: writing game body: %w", err)
	}
	wr.offset += 4 + int64(len(body))
	wr.gameCount++
	return uint64(start), nil
}

// GameCount returns the number of games written so far.
func (wr *Writer) GameCount() uint32 {
	return wr.gameCount
}

// Close flushes buffered output and back-patches the reserved header
// field with the final game count. Readers must not require this field
// to be nonzero (spec §4.8), so a writer that never reaches Close still
// leaves a readable, if uncounted, archive.
func (wr *Writer) Close() error {
	if wr.closed {
		return nil
	}
	wr.closed = true
	if err := wr.bw.Flush(); err != nil {
		return fmt.Errorf("archive: flushing: %w", err)
	}
	if _, err := wr.w.Seek(8, io.SeekStart); err != nil {
		return fmt.Errorf("archive: seeking to reserved field: %w", err)
	}
	if err := binary.Write(wr.w, binary.BigEndian, wr.gameCount); err != nil {
		return fmt.Errorf("archive: back-patching game count: %w", err)
	}
	if _, err := wr.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("archive: seeking to end: %w", err)
	}
	return nil
}
