package archive

import (
	"io"
	"testing"

	"github.com/oriondb/oriondb/pgn"
)

// memFile is a minimal in-memory io.WriteSeeker + io.ReaderAt, standing
// in for an *os.File in tests.
type memFile struct {
	buf []byte
	pos int64
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.buf)) + offset
	}
	return m.pos, nil
}

func (m *memFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func sampleRecord() Record {
	return Record{
		Tags:  []pgn.TagPair{{Key: "White", Value: "Carlsen, Magnus"}, {Key: "Result", Value: "1-0"}},
		Moves: []pgn.Move{{SAN: "e4"}, {SAN: "e5", Comment: "classical"}},
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}

	offsets := make([]uint64, 3)
	for i := range offsets {
		off, err := w.WriteGame(sampleRecord())
		if err != nil {
			t.Fatal(err)
		}
		offsets[i] = off
	}
	if w.GameCount() != 3 {
		t.Fatalf("GameCount() = %d, want 3", w.GameCount())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	for i, off := range offsets {
		rec, err := r.ReadGameAt(off)
		if err != nil {
			t.Fatalf("game %d: %v", i, err)
		}
		if len(rec.Tags) != 2 || rec.Tags[0].Value != "Carlsen, Magnus" {
			t.Errorf("game %d: tags = %v", i, rec.Tags)
		}
		if len(rec.Moves) != 2 || rec.Moves[1].Comment != "classical" {
			t.Errorf("game %d: moves = %v", i, rec.Moves)
		}
	}
}

func TestReaderRejectsBadMagic(t *testing.T) {
	f := &memFile{buf: []byte("XXXX\x00\x00\x00\x01\x00\x00\x00\x00")}
	if _, err := NewReader(f); err == nil {
		t.Error("expected FormatError on bad magic")
	}
}

func TestReaderRejectsUnsupportedVersion(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	w.Close()
	// Corrupt the version field in place.
	f.buf[7] = 99
	if _, err := NewReader(f); err == nil {
		t.Error("expected FormatError on unsupported version")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteGame(sampleRecord()); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close returned an error: %v", err)
	}
}
