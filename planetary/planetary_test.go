package planetary

import (
	"math"
	"testing"

	"github.com/hallorbit/spicekernel/bodies"
	"github.com/hallorbit/spicekernel/kernelerr"
	"github.com/hallorbit/spicekernel/spacetime"
)

func orthonormal(t *testing.T, m spacetime.Matrix3, tol float64) {
	t.Helper()
	got := m.Mul(m.Transpose())
	want := spacetime.Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(got[i][j]-want[i][j]) > tol {
				t.Errorf("M*M^T[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestEulerDCMOrthonormal(t *testing.T) {
	dcm := EulerDCM(0.4, -0.2, 1.1, 0, 0, 0)
	orthonormal(t, dcm.Rot, 1e-12)
}

func TestEulerDCMRateMatchesFiniteDifference(t *testing.T) {
	raDot, decDot, wDot := 1e-6, -2e-7, 3e-6
	ra0, dec0, w0 := 0.3, 0.6, 2.0
	h := 1.0

	dcm := EulerDCM(ra0, dec0, w0, raDot, decDot, wDot)
	plus := EulerDCM(ra0+raDot*h, dec0+decDot*h, w0+wDot*h, raDot, decDot, wDot)
	minus := EulerDCM(ra0-raDot*h, dec0-decDot*h, w0-wDot*h, raDot, decDot, wDot)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			fd := (plus.Rot[i][j] - minus.Rot[i][j]) / (2 * h)
			if math.Abs(dcm.RotDT[i][j]-fd) > 1e-6 {
				t.Errorf("RotDT[%d][%d] = %v, want ~%v (finite difference)", i, j, dcm.RotDT[i][j], fd)
			}
		}
	}
}

func TestPoleAnglesAppliesNutationCorrection(t *testing.T) {
	body := Datum{ID: 499, ParentID: 4, RA: Poly{10}, Dec: Poly{20}, PM: Poly{30}}
	parentNoTerms := Datum{ID: 4}
	parentWithTerm := Datum{ID: 4, NutationPrecession: []NutationTerm{
		{Offset: 90, Rate: 0, Coeff: 0.5},
	}}

	raBase, decBase, _, _, _, _ := poleAngles(body, parentNoTerms, 0)
	raCorrected, decCorrected, _, _, _, _ := poleAngles(body, parentWithTerm, 0)

	theta := 90 * deg2rad
	wantRA := raBase + 0.5*deg2rad*math.Sin(theta)
	wantDec := decBase + 0.5*deg2rad*math.Cos(theta)
	if math.Abs(raCorrected-wantRA) > 1e-12 {
		t.Errorf("RA correction = %v, want %v", raCorrected-raBase, wantRA-raBase)
	}
	if math.Abs(decCorrected-wantDec) > 1e-12 {
		t.Errorf("Dec correction = %v, want %v", decCorrected-decBase, wantDec-decBase)
	}
	if math.Abs(raCorrected-raBase) < 1e-9 {
		t.Error("expected a nonzero RA correction from the nutation term")
	}
}

func TestStoreDCMToParentUnknownID(t *testing.T) {
	s := NewStore()
	_, err := s.DCMToParent(999, 0)
	var target *kernelerr.SummaryIdError
	if e, ok := err.(*kernelerr.SummaryIdError); ok {
		target = e
	}
	if target == nil {
		t.Fatalf("expected *SummaryIdError, got %v", err)
	}
}

func TestStoreDCMToParentWithoutParentDatum(t *testing.T) {
	s := NewStore()
	s.Add(Datum{ID: 399, ParentID: 10, RA: Poly{0}, Dec: Poly{90}, PM: Poly{190.147}})
	dcm, err := s.DCMToParent(399, 0)
	if err != nil {
		t.Fatalf("DCMToParent: %v", err)
	}
	orthonormal(t, dcm.Rot, 1e-9)
	if dcm.From != 399 || dcm.To != 10 {
		t.Errorf("From/To = %d/%d, want 399/10", dcm.From, dcm.To)
	}
}

func TestAddDefaultsSatelliteParentToBarycenter(t *testing.T) {
	s := NewStore()
	s.Add(Datum{ID: bodies.Earth})
	parent, ok := s.ParentOf(bodies.Earth)
	if !ok {
		t.Fatal("ParentOf(Earth) not found")
	}
	if want := int32(bodies.Earth / 100); parent != want {
		t.Errorf("default ParentID = %d, want %d (system barycenter)", parent, want)
	}
}

func TestAddDefaultsNonSatelliteParentToJ2000(t *testing.T) {
	s := NewStore()
	s.Add(Datum{ID: bodies.Moon})
	parent, ok := s.ParentOf(bodies.Moon)
	if !ok {
		t.Fatal("ParentOf(Moon) not found")
	}
	if parent != bodies.J2000 {
		t.Errorf("default ParentID = %d, want %d (J2000)", parent, bodies.J2000)
	}
}

func TestAddExplicitParentIDOverridesDefault(t *testing.T) {
	s := NewStore()
	s.Add(Datum{ID: bodies.Earth, ParentID: 42})
	parent, _ := s.ParentOf(bodies.Earth)
	if parent != 42 {
		t.Errorf("explicit ParentID = %d, want 42 (not overridden)", parent)
	}
}

func TestAllParentIDs(t *testing.T) {
	s := NewStore()
	s.Add(Datum{ID: 399, ParentID: 3})
	s.Add(Datum{ID: 301, ParentID: 3})
	ids := s.AllParentIDs()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 3 {
		t.Errorf("AllParentIDs = %v, want [3 3]", ids)
	}
}

func TestQuatIdentityProducesIdentityDCM(t *testing.T) {
	q := Quat{W: 1}
	dcm := q.DCM(10, 1)
	if dcm.Rot != spacetime.Identity3() {
		t.Errorf("identity quaternion DCM = %v, want identity", dcm.Rot)
	}
}

func TestQuatMulConjugateIsIdentity(t *testing.T) {
	q := Quat{W: 0.5, X: 0.5, Y: 0.5, Z: 0.5}
	prod := q.Mul(q.Conjugate())
	if math.Abs(prod.W-1) > 1e-12 || math.Abs(prod.X) > 1e-12 ||
		math.Abs(prod.Y) > 1e-12 || math.Abs(prod.Z) > 1e-12 {
		t.Errorf("q * conj(q) = %+v, want {1,0,0,0}", prod)
	}
}

func TestFixedFrameDCMToParentNormalizesAndShortWay(t *testing.T) {
	s := NewFixedFrameStore()
	// An unnormalized quaternion with W<0: should be flipped to the short way
	// and renormalized before conversion.
	s.Add(FixedFrame{ID: 2000, ParentID: 1, Rotation: Quat{W: -2, X: 0, Y: 0, Z: 0}})
	dcm, err := s.DCMToParent(2000)
	if err != nil {
		t.Fatalf("DCMToParent: %v", err)
	}
	if dcm.Rot != spacetime.Identity3() {
		t.Errorf("DCM = %v, want identity (W=-2,0,0,0 normalizes to W=1)", dcm.Rot)
	}
}

func TestEclipJ2000DCMOrthonormalAndLabeled(t *testing.T) {
	dcm := EclipJ2000DCM()
	orthonormal(t, dcm.Rot, 1e-12)
	if dcm.From != bodies.ECLIPJ2000 || dcm.To != bodies.J2000 {
		t.Errorf("From/To = %d/%d, want %d/%d", dcm.From, dcm.To, bodies.ECLIPJ2000, bodies.J2000)
	}
	if dcm.RotDT != spacetime.Zero3() {
		t.Errorf("RotDT = %v, want zero", dcm.RotDT)
	}
	if dcm.Rot[1][1] != eclipObliquityCos || dcm.Rot[1][2] != eclipObliquitySin {
		t.Errorf("Rot = %v, want row 1 = [0 %v %v]", dcm.Rot, eclipObliquityCos, eclipObliquitySin)
	}
}

func TestFixedFrameDCMToParentUnknownID(t *testing.T) {
	s := NewFixedFrameStore()
	if _, err := s.DCMToParent(12345); err == nil {
		t.Error("expected an error for an unregistered fixed frame id")
	}
}
