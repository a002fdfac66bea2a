// sidecar.go serializes an index Set to the on-disk sidecar format of
// spec §4.9: "logically an ordered concatenation of named sections".
// The encoding mirrors the archive package's big-endian length-prefixed
// record style (archive/archive.go) so the two on-disk formats share one
// idiom instead of two.
package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/oriondb/oriondb/chess"
)

// SidecarMagic and SidecarVersion identify the sidecar format.
var SidecarMagic = [4]byte{'O', 'I', 'D', 'X'}

const SidecarVersion uint32 = 1

// section names, written in a fixed order so Save/Load stay in lockstep.
const (
	sectionMetadata  = "metadata"
	sectionPosition  = "position"
	sectionMaterial  = "material"
	sectionStructure = "structure"
	sectionMove      = "move"
	sectionMotif     = "motif"
	sectionComment   = "comment"
)

// Save writes set to w as the sidecar format. Every section is written in
// the fixed order above; an unpopulated index (a nil member, per the
// IngestOptions that built set) is written as an empty section flagged
// absent, and Load leaves the corresponding Set member nil, preserving Save as a pure function of archive contents plus
// configuration flags (spec §6).
func Save(w io.Writer, set *Set) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(SidecarMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, SidecarVersion); err != nil {
		return err
	}

	if err := writeSection(bw, sectionMetadata, true, func(w *bufio.Writer) error {
		return writeMetadata(w, set.Metadata)
	}); err != nil {
		return err
	}
	if err := writeSection(bw, sectionPosition, set.Position != nil, func(w *bufio.Writer) error {
		return writePosition(w, set.Position)
	}); err != nil {
		return err
	}
	if err := writeSection(bw, sectionMaterial, set.Material != nil, func(w *bufio.Writer) error {
		return writeMaterial(w, set.Material)
	}); err != nil {
		return err
	}
	if err := writeSection(bw, sectionStructure, set.Structure != nil, func(w *bufio.Writer) error {
		return writeStructure(w, set.Structure)
	}); err != nil {
		return err
	}
	if err := writeSection(bw, sectionMove, set.Move != nil, func(w *bufio.Writer) error {
		return writeMove(w, set.Move)
	}); err != nil {
		return err
	}
	if err := writeSection(bw, sectionMotif, set.Motif != nil, func(w *bufio.Writer) error {
		return writeMotif(w, set.Motif)
	}); err != nil {
		return err
	}
	if err := writeSection(bw, sectionComment, set.Comment != nil, func(w *bufio.Writer) error {
		return writeComment(w, set.Comment)
	}); err != nil {
		return err
	}
	return bw.Flush()
}

// Load reads a sidecar written by Save and reconstructs its index Set.
func Load(r io.Reader) (*Set, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, &sidecarError{"reading magic", err}
	}
	if magic != SidecarMagic {
		return nil, &sidecarError{"bad magic", fmt.Errorf("got %q", magic)}
	}
	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, &sidecarError{"reading version", err}
	}
	if version != SidecarVersion {
		return nil, &sidecarError{"unsupported version", fmt.Errorf("got %d", version)}
	}

	set := &Set{}
	for {
		name, present, body, err := readSection(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		switch name {
		case sectionMetadata:
			set.Metadata, err = readMetadata(body)
		case sectionPosition:
			set.Position, err = readPosition(body)
		case sectionMaterial:
			set.Material, err = readMaterial(body)
		case sectionStructure:
			set.Structure, err = readStructure(body)
		case sectionMove:
			set.Move, err = readMove(body)
		case sectionMotif:
			set.Motif, err = readMotif(body)
		case sectionComment:
			set.Comment, err = readComment(body)
		default:
			err = fmt.Errorf("unknown section %q", name)
		}
		if err != nil {
			return nil, &sidecarError{"decoding section " + name, err}
		}
	}
	if set.Metadata == nil {
		set.Metadata = NewMetadataIndex()
	}
	return set, nil
}

type sidecarError struct {
	stage string
	err   error
}

func (e *sidecarError) Error() string { return fmt.Sprintf("sidecar: %s: %v", e.stage, e.err) }
func (e *sidecarError) Unwrap() error { return e.err }

// --- framing ---

func writeSection(w *bufio.Writer, name string, present bool, body func(w *bufio.Writer) error) error {
	if err := writeStr(w, name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, boolByte(present)); err != nil {
		return err
	}
	if !present {
		if err := binary.Write(w, binary.BigEndian, uint32(0)); err != nil {
			return err
		}
		return nil
	}

	var buf bufCollector
	bw := bufio.NewWriter(&buf)
	if err := body(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(buf.b))); err != nil {
		return err
	}
	_, err := w.Write(buf.b)
	return err
}

func readSection(r io.Reader) (name string, present bool, body io.Reader, err error) {
	name, err = readStr(r)
	if err == io.EOF {
		return "", false, nil, io.EOF
	}
	if err != nil {
		return "", false, nil, &sidecarError{"reading section name", err}
	}
	var pb byte
	if err := binary.Read(r, binary.BigEndian, &pb); err != nil {
		return "", false, nil, &sidecarError{"reading section presence", err}
	}
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", false, nil, &sidecarError{"reading section length", err}
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", false, nil, &sidecarError{"reading section body", err}
	}
	return name, pb != 0, newByteReader(buf), nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

type bufCollector struct{ b []byte }

func (b *bufCollector) Write(p []byte) (int, error) {
	b.b = append(b.b, p...)
	return len(p), nil
}

type byteReader struct {
	buf []byte
	pos int
}

func newByteReader(b []byte) *byteReader { return &byteReader{buf: b} }

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

func writeStr(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readStr(r io.Reader) (string, error) {
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

func writeGamePosition(w io.Writer, gp GamePosition) error {
	if err := binary.Write(w, binary.BigEndian, int64(gp.GameID)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int64(gp.Ply)); err != nil {
		return err
	}
	return writeStr(w, gp.FEN)
}

func readGamePosition(r io.Reader) (GamePosition, error) {
	var gameID, ply int64
	if err := binary.Read(r, binary.BigEndian, &gameID); err != nil {
		return GamePosition{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &ply); err != nil {
		return GamePosition{}, err
	}
	fen, err := readStr(r)
	if err != nil {
		return GamePosition{}, err
	}
	return GamePosition{GameID: int(gameID), Ply: int(ply), FEN: fen}, nil
}

// --- metadata ---

func writeMetadata(w io.Writer, mi *MetadataIndex) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(mi.gameOffset))); err != nil {
		return err
	}
	for id, off := range mi.gameOffset {
		if err := binary.Write(w, binary.BigEndian, int64(id)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, off); err != nil {
			return err
		}
	}
	if err := writeStringIntSetIdx(w, mi.playerIdx); err != nil {
		return err
	}
	if err := writeStringIntSetIdx(w, mi.eventIdx); err != nil {
		return err
	}
	if err := writeStringIntSetIdx(w, mi.ecoIdx); err != nil {
		return err
	}
	if err := writeStringIntSetIdx(w, mi.resultIdx); err != nil {
		return err
	}
	if err := writeOrderedIntInt(w, mi.eloIdx); err != nil {
		return err
	}
	return writeOrderedStringInt(w, mi.dateIdx)
}

func readMetadata(r io.Reader) (*MetadataIndex, error) {
	mi := NewMetadataIndex()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		var id int64
		var off uint64
		if err := binary.Read(r, binary.BigEndian, &id); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &off); err != nil {
			return nil, err
		}
		mi.gameOffset[int(id)] = off
	}
	var err error
	if mi.playerIdx, err = readStringIntSetIdx(r); err != nil {
		return nil, err
	}
	if mi.eventIdx, err = readStringIntSetIdx(r); err != nil {
		return nil, err
	}
	if mi.ecoIdx, err = readStringIntSetIdx(r); err != nil {
		return nil, err
	}
	if mi.resultIdx, err = readStringIntSetIdx(r); err != nil {
		return nil, err
	}
	if mi.eloIdx, err = readOrderedIntInt(r); err != nil {
		return nil, err
	}
	if mi.dateIdx, err = readOrderedStringInt(r); err != nil {
		return nil, err
	}
	return mi, nil
}

func writeStringIntSetIdx(w io.Writer, idx map[string]set[int]) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(idx))); err != nil {
		return err
	}
	for k, s := range idx {
		if err := writeStr(w, k); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
			return err
		}
		for v := range s {
			if err := binary.Write(w, binary.BigEndian, int64(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func readStringIntSetIdx(r io.Reader) (map[string]set[int], error) {
	out := make(map[string]set[int])
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		k, err := readStr(r)
		if err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		s := newSet[int]()
		for j := uint32(0); j < cnt; j++ {
			var v int64
			if err := binary.Read(r, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			s.add(int(v))
		}
		out[k] = s
	}
	return out, nil
}

func writeOrderedIntInt(w io.Writer, m *orderedMap[int, int]) error {
	keys := m.Keys()
	if err := binary.Write(w, binary.BigEndian, uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := binary.Write(w, binary.BigEndian, int64(k)); err != nil {
			return err
		}
		vals := m.At(k)
		if err := binary.Write(w, binary.BigEndian, uint32(len(vals))); err != nil {
			return err
		}
		for _, v := range vals {
			if err := binary.Write(w, binary.BigEndian, int64(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func readOrderedIntInt(r io.Reader) (*orderedMap[int, int], error) {
	m := newOrderedMap[int, int]()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		var k int64
		if err := binary.Read(r, binary.BigEndian, &k); err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		for j := uint32(0); j < cnt; j++ {
			var v int64
			if err := binary.Read(r, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			m.add(int(k), int(v))
		}
	}
	return m, nil
}

func writeOrderedStringInt(w io.Writer, m *orderedMap[string, int]) error {
	keys := m.Keys()
	if err := binary.Write(w, binary.BigEndian, uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := writeStr(w, k); err != nil {
			return err
		}
		vals := m.At(k)
		if err := binary.Write(w, binary.BigEndian, uint32(len(vals))); err != nil {
			return err
		}
		for _, v := range vals {
			if err := binary.Write(w, binary.BigEndian, int64(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func readOrderedStringInt(r io.Reader) (*orderedMap[string, int], error) {
	m := newOrderedMap[string, int]()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		k, err := readStr(r)
		if err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		for j := uint32(0); j < cnt; j++ {
			var v int64
			if err := binary.Read(r, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			m.add(k, int(v))
		}
	}
	return m, nil
}

// --- position ---

func writePosition(w io.Writer, pi *PositionIndex) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(pi.postings))); err != nil {
		return err
	}
	for hash, list := range pi.postings {
		if err := binary.Write(w, binary.BigEndian, hash); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(list))); err != nil {
			return err
		}
		for _, gp := range list {
			if err := writeGamePosition(w, gp); err != nil {
				return err
			}
		}
	}
	return binary.Write(w, binary.BigEndian, int64(pi.collisions))
}

func readPosition(r io.Reader) (*PositionIndex, error) {
	pi := NewPositionIndex()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		var hash uint64
		if err := binary.Read(r, binary.BigEndian, &hash); err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		list := make([]GamePosition, 0, cnt)
		for j := uint32(0); j < cnt; j++ {
			gp, err := readGamePosition(r)
			if err != nil {
				return nil, err
			}
			list = append(list, gp)
		}
		pi.postings[hash] = list
	}
	var collisions int64
	if err := binary.Read(r, binary.BigEndian, &collisions); err != nil {
		return nil, err
	}
	pi.collisions = int(collisions)
	return pi, nil
}

// --- material ---

func writeMaterial(w io.Writer, mi *MaterialIndex) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(mi.bySignature))); err != nil {
		return err
	}
	for sig, list := range mi.bySignature {
		if err := writeMaterialSignature(w, sig); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(list))); err != nil {
			return err
		}
		for _, gp := range list {
			if err := writeGamePosition(w, gp); err != nil {
				return err
			}
		}
	}
	return writeOrderedIntGamePosition(w, mi.byImbalance)
}

func readMaterial(r io.Reader) (*MaterialIndex, error) {
	mi := NewMaterialIndex()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		sig, err := readMaterialSignature(r)
		if err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		list := make([]GamePosition, 0, cnt)
		for j := uint32(0); j < cnt; j++ {
			gp, err := readGamePosition(r)
			if err != nil {
				return nil, err
			}
			list = append(list, gp)
		}
		mi.bySignature[sig] = list
	}
	byImbalance, err := readOrderedIntGamePosition(r)
	if err != nil {
		return nil, err
	}
	mi.byImbalance = byImbalance
	return mi, nil
}

func writeMaterialSignature(w io.Writer, sig chess.MaterialSignature) error {
	fields := sig.Counts()
	for _, f := range fields {
		if err := binary.Write(w, binary.BigEndian, int32(f)); err != nil {
			return err
		}
	}
	return nil
}

func readMaterialSignature(r io.Reader) (chess.MaterialSignature, error) {
	var fields [10]int32
	for i := range fields {
		if err := binary.Read(r, binary.BigEndian, &fields[i]); err != nil {
			return chess.MaterialSignature{}, err
		}
	}
	counts := make([]int, len(fields))
	for i, f := range fields {
		counts[i] = int(f)
	}
	return chess.MaterialSignatureFromCounts(counts), nil
}

func writeOrderedIntGamePosition(w io.Writer, m *orderedMap[int, GamePosition]) error {
	keys := m.Keys()
	if err := binary.Write(w, binary.BigEndian, uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := binary.Write(w, binary.BigEndian, int64(k)); err != nil {
			return err
		}
		vals := m.At(k)
		if err := binary.Write(w, binary.BigEndian, uint32(len(vals))); err != nil {
			return err
		}
		for _, gp := range vals {
			if err := writeGamePosition(w, gp); err != nil {
				return err
			}
		}
	}
	return nil
}

func readOrderedIntGamePosition(r io.Reader) (*orderedMap[int, GamePosition], error) {
	m := newOrderedMap[int, GamePosition]()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		var k int64
		if err := binary.Read(r, binary.BigEndian, &k); err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		for j := uint32(0); j < cnt; j++ {
			gp, err := readGamePosition(r)
			if err != nil {
				return nil, err
			}
			m.add(int(k), gp)
		}
	}
	return m, nil
}

// --- structure ---

func writeStructure(w io.Writer, si *StructureIndex) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(si.postings))); err != nil {
		return err
	}
	for tag, s := range si.postings {
		if err := binary.Write(w, binary.BigEndian, int32(tag)); err != nil {
			return err
		}
		list := s.toSlice()
		if err := binary.Write(w, binary.BigEndian, uint32(len(list))); err != nil {
			return err
		}
		for _, gp := range list {
			if err := writeGamePosition(w, gp); err != nil {
				return err
			}
		}
	}
	return nil
}

func readStructure(r io.Reader) (*StructureIndex, error) {
	si := NewStructureIndex()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		var tag int32
		if err := binary.Read(r, binary.BigEndian, &tag); err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		for j := uint32(0); j < cnt; j++ {
			gp, err := readGamePosition(r)
			if err != nil {
				return nil, err
			}
			si.Add(gp, []chess.PawnStructure{chess.PawnStructure(tag)})
		}
	}
	return si, nil
}

// --- move ---

func writeMove(w io.Writer, mx *MoveIndex) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(mx.byGame))); err != nil {
		return err
	}
	for gameID, recs := range mx.byGame {
		if err := binary.Write(w, binary.BigEndian, int64(gameID)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(recs))); err != nil {
			return err
		}
		for _, rec := range recs {
			if err := writeStr(w, rec.SAN); err != nil {
				return err
			}
			if err := binary.Write(w, binary.BigEndian, int64(rec.Ply)); err != nil {
				return err
			}
			if err := writeStr(w, rec.FEN); err != nil {
				return err
			}
		}
	}
	return nil
}

func readMove(r io.Reader) (*MoveIndex, error) {
	mx := NewMoveIndex()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		var gameID int64
		if err := binary.Read(r, binary.BigEndian, &gameID); err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		for j := uint32(0); j < cnt; j++ {
			san, err := readStr(r)
			if err != nil {
				return nil, err
			}
			var ply int64
			if err := binary.Read(r, binary.BigEndian, &ply); err != nil {
				return nil, err
			}
			fen, err := readStr(r)
			if err != nil {
				return nil, err
			}
			mx.Add(san, GamePosition{GameID: int(gameID), Ply: int(ply), FEN: fen})
		}
	}
	return mx, nil
}

// --- motif ---

func writeMotif(w io.Writer, mx *MotifIndex) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(mx.byGame))); err != nil {
		return err
	}
	for gameID, byPly := range mx.byGame {
		if err := binary.Write(w, binary.BigEndian, int64(gameID)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(byPly))); err != nil {
			return err
		}
		for ply, motifs := range byPly {
			if err := binary.Write(w, binary.BigEndian, int64(ply)); err != nil {
				return err
			}
			list := motifs.toSlice()
			if err := binary.Write(w, binary.BigEndian, uint32(len(list))); err != nil {
				return err
			}
			for _, m := range list {
				if err := binary.Write(w, binary.BigEndian, int32(m)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func readMotif(r io.Reader) (*MotifIndex, error) {
	mx := NewMotifIndex()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		var gameID int64
		if err := binary.Read(r, binary.BigEndian, &gameID); err != nil {
			return nil, err
		}
		var plyCount uint32
		if err := binary.Read(r, binary.BigEndian, &plyCount); err != nil {
			return nil, err
		}
		for j := uint32(0); j < plyCount; j++ {
			var ply int64
			if err := binary.Read(r, binary.BigEndian, &ply); err != nil {
				return nil, err
			}
			var cnt uint32
			if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
				return nil, err
			}
			motifs := make([]chess.TacticalMotif, 0, cnt)
			for k := uint32(0); k < cnt; k++ {
				var m int32
				if err := binary.Read(r, binary.BigEndian, &m); err != nil {
					return nil, err
				}
				motifs = append(motifs, chess.TacticalMotif(m))
			}
			gp := GamePosition{GameID: int(gameID), Ply: int(ply)}
			mx.Add(gp, motifs)
		}
	}
	return mx, nil
}

// --- comment ---

func writeComment(w io.Writer, ci *CommentIndex) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(ci.postings))); err != nil {
		return err
	}
	for tok, s := range ci.postings {
		if err := writeStr(w, tok); err != nil {
			return err
		}
		list := s.toSlice()
		if err := binary.Write(w, binary.BigEndian, uint32(len(list))); err != nil {
			return err
		}
		for _, gp := range list {
			if err := writeGamePosition(w, gp); err != nil {
				return err
			}
		}
	}
	return nil
}

func readComment(r io.Reader) (*CommentIndex, error) {
	ci := NewCommentIndex()
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		tok, err := readStr(r)
		if err != nil {
			return nil, err
		}
		var cnt uint32
		if err := binary.Read(r, binary.BigEndian, &cnt); err != nil {
			return nil, err
		}
		s := newSet[GamePosition]()
		for j := uint32(0); j < cnt; j++ {
			gp, err := readGamePosition(r)
			if err != nil {
				return nil, err
			}
			s.add(gp)
		}
		ci.postings[tok] = s
	}
	return ci, nil
}
