package pathsolve

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/hallorbit/spicekernel/bodies"
	"github.com/hallorbit/spicekernel/kernel"
	"github.com/hallorbit/spicekernel/kernelerr"
	"github.com/hallorbit/spicekernel/planetary"
)

const recordLen = 1024

func putStr(buf []byte, off int, s string, width int) {
	copy(buf[off:off+width], []byte(s))
	for i := len(s); i < width; i++ {
		buf[off+i] = ' '
	}
}

func putF64(buf []byte, off int, v float64) {
	binary.LittleEndian.PutUint64(buf[off:off+8], math.Float64bits(v))
}

func putI32(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(v))
}

// buildSPK builds a minimal single-segment SPK DAF buffer for target wrt
// center, covering [startET,endET).
func buildSPK(t *testing.T, target, center int32, startET, endET float64) []byte {
	t.Helper()
	const nd, ni = 2, 6
	summarySize := nd + (ni+1)/2

	buf := make([]byte, 4*recordLen)
	putStr(buf, 0, "DAF/SPK ", 8)
	putI32(buf, 8, nd)
	putI32(buf, 12, ni)
	putStr(buf, 16, "TEST", 60)
	putI32(buf, 76, 2)
	putI32(buf, 80, 2)
	putI32(buf, 84, 0)
	putStr(buf, 88, "LTL-IEEE", 8)

	segData := []float64{0, (endET - startET) / 2, 1, 0, 0, startET, endET - startET, 5, 1}
	dataOff := 3 * recordLen
	startIdx := int32(dataOff/8) + 1
	endIdx := startIdx + int32(len(segData)) - 1
	for i, v := range segData {
		putF64(buf, dataOff+i*8, v)
	}

	sumOff := recordLen
	putF64(buf, sumOff+0, 0)
	putF64(buf, sumOff+8, 0)
	putF64(buf, sumOff+16, 1)
	entryOff := sumOff + 24
	putF64(buf, entryOff+0, startET)
	putF64(buf, entryOff+8, endET)
	intOff := entryOff + nd*8
	putI32(buf, intOff+0, target)
	putI32(buf, intOff+4, center)
	putI32(buf, intOff+8, 1)
	putI32(buf, intOff+12, 2)
	putI32(buf, intOff+16, startIdx)
	putI32(buf, intOff+20, endIdx)

	nameOff := 2 * recordLen
	putStr(buf, nameOff, "BODY", 8*summarySize)
	return buf
}

// buildBPC builds a minimal single-segment BPC DAF buffer for frame wrt
// inertialFrame, covering [startET,endET).
func buildBPC(t *testing.T, frame, inertialFrame int32, startET, endET float64) []byte {
	t.Helper()
	const nd, ni = 2, 5
	summarySize := nd + (ni+1)/2

	buf := make([]byte, 4*recordLen)
	putStr(buf, 0, "DAF/PCK ", 8)
	putI32(buf, 8, nd)
	putI32(buf, 12, ni)
	putStr(buf, 16, "TEST", 60)
	putI32(buf, 76, 2)
	putI32(buf, 80, 2)
	putI32(buf, 84, 0)
	putStr(buf, 88, "LTL-IEEE", 8)

	segData := []float64{0, 0, 0, startET, endET - startET, 5, 1}
	dataOff := 3 * recordLen
	startIdx := int32(dataOff/8) + 1
	endIdx := startIdx + int32(len(segData)) - 1
	for i, v := range segData {
		putF64(buf, dataOff+i*8, v)
	}

	sumOff := recordLen
	putF64(buf, sumOff+0, 0)
	putF64(buf, sumOff+8, 0)
	putF64(buf, sumOff+16, 1)
	entryOff := sumOff + 24
	putF64(buf, entryOff+0, startET)
	putF64(buf, entryOff+8, endET)
	intOff := entryOff + nd*8
	putI32(buf, intOff+0, frame)
	putI32(buf, intOff+4, inertialFrame)
	putI32(buf, intOff+8, 2)
	putI32(buf, intOff+12, startIdx)
	putI32(buf, intOff+16, endIdx)

	nameOff := 2 * recordLen
	putStr(buf, nameOff, "BODY", 8*summarySize)
	return buf
}

func newSolver() (*Solver, *kernel.Registry) {
	reg := &kernel.Registry{}
	s := &Solver{Kernels: reg, Planets: planetary.NewStore(), Fixed: planetary.NewFixedFrameStore()}
	return s, reg
}

func TestFindEphemerisRootMinAbsCenter(t *testing.T) {
	s, reg := newSolver()
	reg.LoadAs(kernelerr.SPK, buildSPK(t, 399, 10, 0, 86400), "a")
	reg.LoadAs(kernelerr.SPK, buildSPK(t, 10, bodies.SSB, 0, 86400), "b")
	root, err := s.FindEphemerisRoot()
	if err != nil {
		t.Fatalf("FindEphemerisRoot: %v", err)
	}
	if root != bodies.SSB {
		t.Errorf("root = %d, want %d", root, bodies.SSB)
	}
}

func TestFindEphemerisRootNoKernelsLoaded(t *testing.T) {
	s, _ := newSolver()
	if _, err := s.FindEphemerisRoot(); err != kernelerr.ErrNoEphemerisLoaded {
		t.Errorf("err = %v, want ErrNoEphemerisLoaded", err)
	}
}

func TestEphemerisPathToRootWalksChain(t *testing.T) {
	s, reg := newSolver()
	reg.LoadAs(kernelerr.SPK, buildSPK(t, 399, 10, 0, 86400), "earth")
	reg.LoadAs(kernelerr.SPK, buildSPK(t, 10, bodies.SSB, 0, 86400), "sun")
	path, err := s.EphemerisPathToRoot(399, bodies.SSB, 100)
	if err != nil {
		t.Fatalf("EphemerisPathToRoot: %v", err)
	}
	want := []int32{10, bodies.SSB}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %d, want %d", i, path[i], want[i])
		}
	}
}

func TestEphemerisPathToRootTrivialWhenAlreadyRoot(t *testing.T) {
	s, _ := newSolver()
	path, err := s.EphemerisPathToRoot(bodies.SSB, bodies.SSB, 0)
	if err != nil || path != nil {
		t.Errorf("path = %v, err = %v, want nil, nil", path, err)
	}
}

func TestEphemerisPathToRootMaxDepthOnSelfLoop(t *testing.T) {
	s, reg := newSolver()
	reg.LoadAs(kernelerr.SPK, buildSPK(t, 5, 5, 0, 86400), "loop")
	if _, err := s.EphemerisPathToRoot(5, bodies.SSB, 100); err != kernelerr.ErrMaxRecursionDepth {
		t.Errorf("err = %v, want ErrMaxRecursionDepth", err)
	}
}

func TestFindOrientationRootCollapsesEclipJ2000(t *testing.T) {
	s, reg := newSolver()
	reg.LoadAs(kernelerr.BPC, buildBPC(t, 3000, bodies.ECLIPJ2000, 0, 86400), "a")
	root, err := s.FindOrientationRoot()
	if err != nil {
		t.Fatalf("FindOrientationRoot: %v", err)
	}
	if root != bodies.J2000 {
		t.Errorf("root = %d, want %d (J2000, via ECLIPJ2000 collapse)", root, bodies.J2000)
	}
}

func TestFindOrientationRootNoneLoaded(t *testing.T) {
	s, _ := newSolver()
	if _, err := s.FindOrientationRoot(); err != kernelerr.ErrNoOrientationsLoaded {
		t.Errorf("err = %v, want ErrNoOrientationsLoaded", err)
	}
}

func TestOrientationParentAtBuiltinEclipJ2000Edge(t *testing.T) {
	s, _ := newSolver()
	parent, err := s.orientationParentAt(bodies.ECLIPJ2000, 0)
	if err != nil {
		t.Fatalf("orientationParentAt: %v", err)
	}
	if parent != bodies.J2000 {
		t.Errorf("parent = %d, want %d", parent, bodies.J2000)
	}
}

func TestOrientationParentAtFallsBackToPlanetaryStore(t *testing.T) {
	s, _ := newSolver()
	s.Planets.Add(planetary.Datum{ID: 499, ParentID: bodies.MarsBarycenter})
	parent, err := s.orientationParentAt(499, 0)
	if err != nil {
		t.Fatalf("orientationParentAt: %v", err)
	}
	if parent != bodies.MarsBarycenter {
		t.Errorf("parent = %d, want %d", parent, bodies.MarsBarycenter)
	}
}

func TestOrientationParentAtFallsBackToFixedFrameStore(t *testing.T) {
	s, _ := newSolver()
	s.Fixed.Add(planetary.FixedFrame{ID: 2000, ParentID: bodies.J2000, Rotation: planetary.Quat{W: 1}})
	parent, err := s.orientationParentAt(2000, 0)
	if err != nil {
		t.Fatalf("orientationParentAt: %v", err)
	}
	if parent != bodies.J2000 {
		t.Errorf("parent = %d, want %d", parent, bodies.J2000)
	}
}

func TestOrientationParentAtUnresolvedIsHardError(t *testing.T) {
	s, _ := newSolver()
	if _, err := s.orientationParentAt(42, 0); err == nil {
		t.Error("expected an error when id is unresolved in both BPC and planetary/fixed stores")
	}
}

func TestOrientationParentAtWrongEpochIsHardErrorNotFallback(t *testing.T) {
	s, reg := newSolver()
	reg.LoadAs(kernelerr.BPC, buildBPC(t, 3000, bodies.J2000, 0, 1000), "a")
	// 3000 also has a fallback entry in the planetary store, which must NOT
	// be used: the id is found in BPC, just not at this epoch.
	s.Planets.Add(planetary.Datum{ID: 3000, ParentID: bodies.J2000})
	if _, err := s.orientationParentAt(3000, 5000); err == nil {
		t.Error("expected a hard error for an id found in BPC but not at this epoch")
	} else if _, ok := err.(*kernelerr.SummaryIdAtEpochError); !ok {
		t.Errorf("err = %T, want *SummaryIdAtEpochError", err)
	}
}

func TestCommonPathBothAlreadyAtRoot(t *testing.T) {
	cp := commonPath(bodies.SSB, bodies.SSB, nil, nil)
	if cp.LCA != bodies.SSB || cp.FromHops != nil || cp.ToHops != nil {
		t.Errorf("unexpected CommonPath: %+v", cp)
	}
}

func TestCommonPathFromIsAncestorOfTo(t *testing.T) {
	pathTo := []int32{10, bodies.SSB}
	cp := commonPath(10, 399, nil, pathTo)
	if cp.LCA != 10 {
		t.Errorf("LCA = %d, want 10", cp.LCA)
	}
	if len(cp.ToHops) != 1 || cp.ToHops[0] != 10 {
		t.Errorf("ToHops = %v, want [10]", cp.ToHops)
	}
}

func TestCommonPathSameID(t *testing.T) {
	cp := commonPath(399, 399, []int32{10, bodies.SSB}, []int32{10, bodies.SSB})
	if cp.LCA != 399 {
		t.Errorf("LCA = %d, want 399", cp.LCA)
	}
}

func TestCommonPathGeneralCaseFindsSharedAncestor(t *testing.T) {
	// 399 -> 10 -> SSB, 301 -> 3 -> SSB: LCA should be SSB.
	pathFrom := []int32{10, bodies.SSB}
	pathTo := []int32{bodies.EarthMoonBary, bodies.SSB}
	cp := commonPath(399, 301, pathFrom, pathTo)
	if cp.LCA != bodies.SSB {
		t.Errorf("LCA = %d, want %d", cp.LCA, bodies.SSB)
	}
}

func TestCommonPathSharesIntermediateAncestor(t *testing.T) {
	// 399 -> 3 -> SSB, 301 -> 3 -> SSB: LCA should be 3 (Earth-Moon barycenter).
	pathFrom := []int32{bodies.EarthMoonBary, bodies.SSB}
	pathTo := []int32{bodies.EarthMoonBary, bodies.SSB}
	cp := commonPath(399, 301, pathFrom, pathTo)
	if cp.LCA != bodies.EarthMoonBary {
		t.Errorf("LCA = %d, want %d", cp.LCA, bodies.EarthMoonBary)
	}
	if len(cp.FromHops) != 1 || len(cp.ToHops) != 1 {
		t.Errorf("expected both hop lists trimmed to the shared ancestor: %+v", cp)
	}
}
