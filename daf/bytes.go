// Package daf implements the NAIF Double-precision Array File container: the
// byte view, file record, summary block walk, and typed SPK/BPC summary
// records (spec.md components C1-C4).
package daf

import (
	"encoding/binary"
	"hash/crc32"
	"math"

	"github.com/hallorbit/spicekernel/kernelerr"
)

// recordLen is the fixed DAF record size in bytes.
const recordLen = 1024

// byteView owns the kernel's byte buffer and yields bounds-checked,
// fixed-size structured reads. It never panics on a short buffer.
type byteView struct {
	buf []byte
}

func newByteView(buf []byte) *byteView { return &byteView{buf: buf} }

func (b *byteView) len() int { return len(b.buf) }

func (b *byteView) slice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(b.buf) {
		return nil, &kernelerr.InaccessibleBytes{Start: start, End: end, Size: len(b.buf)}
	}
	return b.buf[start:end], nil
}

func (b *byteView) float64At(offset int) (float64, error) {
	bs, err := b.slice(offset, offset+8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(bs)), nil
}

func (b *byteView) int32At(offset int) (int32, error) {
	bs, err := b.slice(offset, offset+4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(bs)), nil
}

// float64Slice reads count consecutive float64s starting at byte offset
// start, in host (little) endianness.
func (b *byteView) float64Slice(start, count int) ([]float64, error) {
	bs, err := b.slice(start, start+count*8)
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(bs[i*8 : i*8+8]))
	}
	return out, nil
}

// crc32IEEE computes the CRC32 (IEEE polynomial) of the whole buffer, used
// by CheckThenParse to seal/verify kernel integrity.
func (b *byteView) crc32IEEE() uint32 {
	return crc32.ChecksumIEEE(b.buf)
}
