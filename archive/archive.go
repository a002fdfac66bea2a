// Package archive implements the on-disk game file: a write-once,
// read-many binary format (spec §4.8). The big-endian length-prefixed
// record layout follows the same "reserve a header field, back-patch on
// close" idiom the reference engine uses for its fixed-size hash table
// (engine/hash_table.go sizes its table up front and fills it lazily).
package archive

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/oriondb/oriondb/pgn"
)

// Magic and Version identify the archive format (spec §6).
var Magic = [4]byte{'O', 'R', 'D', 'B'}

const Version uint32 = 1

// FormatError reports a corrupt or unsupported archive: bad magic,
// unsupported version, or a truncated record. It is fatal — the reader
// handle that returns it is unusable (spec §7).
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return "archive: " + e.Msg
}

// Record is the decoded form of one archive entry: tags in source order
// plus moves, matching pgn.Game's shape without the assigned ID (spec
// §4.8: "the game ID returned by the reader is not stored in the
// record").
type Record struct {
	Tags  []pgn.TagPair
	Moves []pgn.Move
}

// GameFromPGN converts a parsed pgn.Game into the Record shape the
// archive stores.
func GameFromPGN(g *pgn.Game) Record {
	return Record{Tags: g.Tags(), Moves: g.Moves}
}

func writeString(w *bufio.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// encodeRecord serializes rec into the on-disk record body (everything
// after the game_length prefix).
func encodeRecord(rec Record) ([]byte, error) {
	var body bufWriter
	w := bufio.NewWriter(&body)

	if err := binary.Write(w, binary.BigEndian, uint32(len(rec.Tags))); err != nil {
		return nil, err
	}
	for _, t := range rec.Tags {
		if err := writeString(w, t.Key); err != nil {
			return nil, err
		}
		if err := writeString(w, t.Value); err != nil {
			return nil, err
		}
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(rec.Moves))); err != nil {
		return nil, err
	}
	for _, m := range rec.Moves {
		if err := writeString(w, m.SAN); err != nil {
			return nil, err
		}
		if err := writeString(w, m.Comment); err != nil {
			return nil, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return body.Bytes(), nil
}

// decodeRecord reads one record body of exactly length bytes from r.
func decodeRecord(r io.Reader, length uint32) (Record, error) {
	lr := io.LimitReader(r, int64(length))

	var tagCount uint32
	if err := binary.Read(lr, binary.BigEndian, &tagCount); err != nil {
		return Record{}, &FormatError{Msg: fmt.Sprintf("truncated record: %v", err)}
	}
	tags := make([]pgn.TagPair, 0, tagCount)
	for i := uint32(0); i < tagCount; i++ {
		k, err := readString(lr)
		if err != nil {
			return Record{}, &FormatError{Msg: fmt.Sprintf("truncated tag key: %v", err)}
		}
		v, err := readString(lr)
		if err != nil {
			return Record{}, &FormatError{Msg: fmt.Sprintf("truncated tag value: %v", err)}
		}
		tags = append(tags, pgn.TagPair{Key: k, Value: v})
	}

	var moveCount uint32
	if err := binary.Read(lr, binary.BigEndian, &moveCount); err != nil {
		return Record{}, &FormatError{Msg: fmt.Sprintf("truncated record: %v", err)}
	}
	moves := make([]pgn.Move, 0, moveCount)
	for i := uint32(0); i < moveCount; i++ {
		san, err := readString(lr)
		if err != nil {
			return Record{}, &FormatError{Msg: fmt.Sprintf("truncated move san: %v", err)}
		}
		comment, err := readString(lr)
		if err != nil {
			return Record{}, &FormatError{Msg: fmt.Sprintf("truncated move comment: %v", err)}
		}
		moves = append(moves, pgn.Move{SAN: san, Comment: comment})
	}
	return Record{Tags: tags, Moves: moves}, nil
}

// bufWriter is an in-memory io.Writer used to size a record before
// writing its game_length prefix.
type bufWriter struct {
	buf []byte
}

func (b *bufWriter) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *bufWriter) Bytes() []byte {
	return b.buf
}
