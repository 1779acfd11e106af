package daf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/hallorbit/spicekernel/kernelerr"
)

// buildSPKBuffer constructs a minimal, hand-built DAF buffer holding a
// single SPK Type 2 segment (target=399, center=10, one Chebyshev record of
// degree 0), laid out: file record (1), summary block (2), name record (3),
// segment data starting in record (4).
func buildSPKBuffer(t *testing.T) []byte {
	t.Helper()
	const nd, ni = 2, 6
	summarySize := nd + (ni+1)/2 // 2 + 3 = 5

	buf := make([]byte, 4*recordLen)
	putStr := func(off int, s string, width int) {
		copy(buf[off:off+width], []byte(s))
		for i := len(s); i < width; i++ {
			buf[off+i] = ' '
		}
	}
	putF64 := func(off int, v float64) {
		binary.LittleEndian.PutUint64(buf[off:off+8], math.Float64bits(v))
	}
	putI32 := func(off int, v int32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(v))
	}

	// File record.
	putStr(offID, idSPK, lenID)
	putI32(offND, nd)
	putI32(offNI, ni)
	putStr(offFilename, "TEST", lenFilename)
	putI32(offForward, 2)
	putI32(offBackward, 2)
	putI32(offFreeAddr, 0)
	putStr(offEndian, hostEndianTag, lenEndian)

	// Segment data: record(5 doubles) + metadata(4 doubles).
	// record = {midpoint, radius, x0, y0, z0}; metadata = {init, intervalLen, rsize, numRecords}.
	segData := []float64{0, 43200, 1.0, 2.0, 3.0, 0, 86400, 5, 1}
	dataOff := 3 * recordLen // record 4
	startIdx := int32(dataOff/8) + 1
	endIdx := startIdx + int32(len(segData)) - 1
	for i, v := range segData {
		putF64(dataOff+i*8, v)
	}

	// Summary block (record 2).
	sumOff := recordLen
	putF64(sumOff+0, 0) // next
	putF64(sumOff+8, 0) // prev
	putF64(sumOff+16, 1) // nsum
	entryOff := sumOff + 24
	putF64(entryOff+0, 0)     // startET
	putF64(entryOff+8, 86400) // endET
	intOff := entryOff + nd*8
	putI32(intOff+0, 399)     // target
	putI32(intOff+4, 10)      // center
	putI32(intOff+8, 1)       // frame (J2000)
	putI32(intOff+12, 2)      // data type
	putI32(intOff+16, startIdx)
	putI32(intOff+20, endIdx)

	// Name record (record 3).
	nameOff := 2 * recordLen
	nameLen := 8 * summarySize
	putStr(nameOff, "EARTH", nameLen)

	return buf
}

func TestParseAndSPKSummaries(t *testing.T) {
	buf := buildSPKBuffer(t)
	d, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Kind() != kernelerr.SPK {
		t.Fatalf("Kind = %v, want SPK", d.Kind())
	}
	sums, err := d.SPKSummaries()
	if err != nil {
		t.Fatalf("SPKSummaries: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("len(sums) = %d, want 1", len(sums))
	}
	s := sums[0]
	if s.Name != "EARTH" || s.Target != 399 || s.Center != 10 || s.DataType != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}

	data, err := d.DataDoubles(s.StartIdx, s.EndIdx)
	if err != nil {
		t.Fatalf("DataDoubles: %v", err)
	}
	if len(data) != 9 {
		t.Fatalf("len(data) = %d, want 9", len(data))
	}
	if data[2] != 1.0 || data[3] != 2.0 || data[4] != 3.0 {
		t.Errorf("unexpected coefficient data: %v", data)
	}
}

func TestCheckThenParseRejectsBitFlip(t *testing.T) {
	buf := buildSPKBuffer(t)
	good := newByteView(buf).crc32IEEE()
	if _, err := CheckThenParse(buf, good); err != nil {
		t.Fatalf("CheckThenParse with correct checksum: %v", err)
	}
	buf[100] ^= 0xFF
	_, err := CheckThenParse(buf, good)
	var mismatch *kernelerr.ChecksumInvalid
	if err == nil {
		t.Fatal("expected ChecksumInvalid after bit flip")
	}
	if !asChecksumInvalid(err, &mismatch) {
		t.Fatalf("expected *ChecksumInvalid, got %T: %v", err, err)
	}
}

func asChecksumInvalid(err error, target **kernelerr.ChecksumInvalid) bool {
	if e, ok := err.(*kernelerr.ChecksumInvalid); ok {
		*target = e
		return true
	}
	return false
}

func TestParseRejectsNonDAF(t *testing.T) {
	buf := make([]byte, 2*recordLen)
	copy(buf, []byte("garbage!"))
	if _, err := Parse(buf); err == nil {
		t.Fatal("expected an error for a non-DAF buffer")
	}
}

func TestParseRejectsWrongEndian(t *testing.T) {
	buf := buildSPKBuffer(t)
	copy(buf[offEndian:offEndian+lenEndian], []byte("BIG-IEEE"))
	_, err := Parse(buf)
	if err != kernelerr.ErrWrongEndian {
		t.Fatalf("err = %v, want ErrWrongEndian", err)
	}
}
