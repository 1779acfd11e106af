package daf

import (
	"math"
	"strings"

	"github.com/hallorbit/spicekernel/kernelerr"
)

// DAF is a typed, endian-checked, read-only view over a loaded kernel's
// bytes: either an SPK (position/velocity) or a BPC (orientation).
type DAF struct {
	bv          *byteView
	fr          FileRecord
	summarySize int
}

// Parse validates header and name-record readability and returns a DAF, or
// a FileRecordError per spec.md §4.1.
func Parse(buf []byte) (*DAF, error) {
	if len(buf) < 2*recordLen {
		return nil, &kernelerr.InaccessibleBytes{Start: 0, End: 2 * recordLen, Size: len(buf)}
	}
	bv := newByteView(buf)
	fr, err := parseFileRecord(bv)
	if err != nil {
		return nil, err
	}
	d := &DAF{
		bv:          bv,
		fr:          fr,
		summarySize: int(fr.ND) + (int(fr.NI)+1)/2,
	}
	if fr.Forward <= 0 {
		return nil, kernelerr.ErrEmptyRecord
	}
	if _, err := d.NameRecord(int(fr.Forward)); err != nil {
		return nil, err
	}
	return d, nil
}

// CheckThenParse verifies the buffer's CRC32 against expected before
// parsing. Rejects with ChecksumInvalid on mismatch.
func CheckThenParse(buf []byte, expected uint32) (*DAF, error) {
	computed := newByteView(buf).crc32IEEE()
	if computed != expected {
		return nil, &kernelerr.ChecksumInvalid{Expected: expected, Computed: computed}
	}
	return Parse(buf)
}

// Checksum returns the CRC32 (IEEE) of the underlying buffer.
func (d *DAF) Checksum() uint32 { return d.bv.crc32IEEE() }

// FileRecord returns the parsed first block. Pure read.
func (d *DAF) FileRecord() FileRecord { return d.fr }

// Kind reports whether this DAF is an SPK or a BPC.
func (d *DAF) Kind() kernelerr.Kind { return d.fr.Kind }

// SummarySize returns ND + ceil(NI/2), the number of doubles one summary
// entry occupies.
func (d *DAF) SummarySize() int { return d.summarySize }

func recordOffset(blockIdx int) int { return (blockIdx - 1) * recordLen }

// SummaryHeader is the {next,prev,nsum} triple at the start of a summary
// block.
type SummaryHeader struct {
	Next int32
	Prev int32
	NSum int32
}

// resolveBlock returns fr.Forward when blockIdx is the zero-value sentinel
// (spec's block_idx=None default), else blockIdx unchanged.
func (d *DAF) resolveBlock(blockIdx int) int {
	if blockIdx == 0 {
		return int(d.fr.Forward)
	}
	return blockIdx
}

// DAFSummary reads {next,prev,nsum} from the block at blockIdx (0 means
// default to the first summary block, fr.Forward).
func (d *DAF) DAFSummary(blockIdx int) (SummaryHeader, error) {
	blockIdx = d.resolveBlock(blockIdx)
	off := recordOffset(blockIdx)
	next, err := d.bv.float64At(off)
	if err != nil {
		return SummaryHeader{}, err
	}
	prev, err := d.bv.float64At(off + 8)
	if err != nil {
		return SummaryHeader{}, err
	}
	nsum, err := d.bv.float64At(off + 16)
	if err != nil {
		return SummaryHeader{}, err
	}
	return SummaryHeader{Next: int32(next), Prev: int32(prev), NSum: int32(nsum)}, nil
}

// DataSummaries returns the raw summary entries of the block at blockIdx (0
// for the default block), a zero-copy-equivalent reinterpretation of the
// bytes immediately following the summary header.
func (d *DAF) DataSummaries(blockIdx int) ([]RawSummary, error) {
	blockIdx = d.resolveBlock(blockIdx)
	hdr, err := d.DAFSummary(blockIdx)
	if err != nil {
		return nil, err
	}
	return d.rawSummariesAt(blockIdx, hdr)
}

func (d *DAF) rawSummariesAt(blockIdx int, hdr SummaryHeader) ([]RawSummary, error) {
	off := recordOffset(blockIdx) + 24 // past {next,prev,nsum}
	nd := int(d.fr.ND)
	ni := int(d.fr.NI)
	out := make([]RawSummary, 0, hdr.NSum)
	for i := 0; i < int(hdr.NSum); i++ {
		entryOff := off + i*d.summarySize*8
		doubles, err := d.bv.float64Slice(entryOff, nd)
		if err != nil {
			return nil, err
		}
		packed, err := d.bv.float64Slice(entryOff+nd*8, (ni+1)/2)
		if err != nil {
			return nil, err
		}
		ints := make([]int32, 0, ni)
		for _, p := range packed {
			bits := uint64ToInts(p)
			ints = append(ints, bits[0])
			if len(ints) < ni {
				ints = append(ints, bits[1])
			}
		}
		out = append(out, RawSummary{Doubles: doubles, Ints: ints[:ni]})
	}
	return out, nil
}

// uint64ToInts reinterprets the 8 bytes backing a float64 as two packed
// little-endian int32s, the DAF's scheme for fitting NI integers into
// ceil(NI/2) double-wide slots.
func uint64ToInts(f float64) [2]int32 {
	bits := math.Float64bits(f)
	return [2]int32{int32(uint32(bits)), int32(uint32(bits >> 32))}
}

// NameRecord returns the summary names for the block at blockIdx (0 for
// default), read from the record immediately following the summary block
// being read, per spec.md's fix of the reference's inconsistent offset.
func (d *DAF) NameRecord(blockIdx int) ([]string, error) {
	blockIdx = d.resolveBlock(blockIdx)
	hdr, err := d.DAFSummary(blockIdx)
	if err != nil {
		return nil, err
	}
	nameBlock := blockIdx + 1
	off := recordOffset(nameBlock)
	bs, err := d.bv.slice(off, off+recordLen)
	if err != nil {
		return nil, err
	}
	nameLen := 8 * d.summarySize
	names := make([]string, hdr.NSum)
	for i := range names {
		start := i * nameLen
		end := start + nameLen
		if end > len(bs) {
			return nil, &kernelerr.InaccessibleBytes{Start: off + start, End: off + end, Size: d.bv.len()}
		}
		names[i] = strings.TrimSpace(string(bs[start:end]))
	}
	return names, nil
}

// SummaryBlock bundles one summary block's header, raw summaries, and
// parallel name record.
type SummaryBlock struct {
	BlockIndex int
	Header     SummaryHeader
	Summaries  []RawSummary
	Names      []string
}

// IterSummaryBlocks walks the linked list of summary blocks from fr.Forward
// until next==0, detecting cycles: a block index seen twice stops iteration
// with an error instead of looping forever.
func (d *DAF) IterSummaryBlocks() ([]SummaryBlock, error) {
	var blocks []SummaryBlock
	seen := make(map[int]bool)
	idx := int(d.fr.Forward)
	for idx != 0 {
		if seen[idx] {
			return blocks, kernelerr.ErrCorruptedData
		}
		seen[idx] = true

		hdr, err := d.DAFSummary(idx)
		if err != nil {
			return blocks, err
		}
		raws, err := d.rawSummariesAt(idx, hdr)
		if err != nil {
			return blocks, err
		}
		names, err := d.NameRecord(idx)
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, SummaryBlock{BlockIndex: idx, Header: hdr, Summaries: raws, Names: names})
		idx = int(hdr.Next)
	}
	return blocks, nil
}

// SPKSummaries decodes every summary across every block as an SPK summary.
func (d *DAF) SPKSummaries() ([]SPKSummary, error) {
	blocks, err := d.IterSummaryBlocks()
	if err != nil {
		return nil, err
	}
	var out []SPKSummary
	for _, b := range blocks {
		for i, raw := range b.Summaries {
			s, err := raw.AsSPK(b.Names[i])
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	}
	return out, nil
}

// BPCSummaries decodes every summary across every block as a BPC summary.
func (d *DAF) BPCSummaries() ([]BPCSummary, error) {
	blocks, err := d.IterSummaryBlocks()
	if err != nil {
		return nil, err
	}
	var out []BPCSummary
	for _, b := range blocks {
		for i, raw := range b.Summaries {
			s, err := raw.AsBPC(b.Names[i])
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	}
	return out, nil
}

// DataDoubles returns the 1-indexed inclusive double range
// [startIdx, endIdx] from the data area, reinterpreted as float64s.
func (d *DAF) DataDoubles(startIdx, endIdx int32) ([]float64, error) {
	if startIdx < 1 || endIdx < startIdx {
		return nil, kernelerr.ErrCorruptedData
	}
	start := int(startIdx-1) * 8
	count := int(endIdx-startIdx) + 1
	return d.bv.float64Slice(start, count)
}

// Comments concatenates records 2..fwrd-1 as text, replacing NUL with
// newline and trimming whitespace. Returns ok=false if the result is empty
// (no comment area, or fwrd<=2).
func (d *DAF) Comments() (text string, ok bool) {
	fwrd := int(d.fr.Forward)
	if fwrd <= 2 {
		return "", false
	}
	var sb strings.Builder
	for rec := 2; rec < fwrd; rec++ {
		off := recordOffset(rec)
		bs, err := d.bv.slice(off, off+recordLen)
		if err != nil {
			break
		}
		for _, b := range bs {
			if b == 0 {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(b)
			}
		}
	}
	s := strings.TrimSpace(sb.String())
	if s == "" {
		return "", false
	}
	return s, true
}
