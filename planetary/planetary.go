// Package planetary implements the planetary rotation and fixed-frame
// store (spec.md C7): pole orientation polynomials with nutation-precession
// corrections, and the NAIF-convention DCM-to-parent builder with its
// analytical rate, plus Euler (quaternion) fixed frames.
package planetary

import (
	"math"

	"github.com/hallorbit/spicekernel/bodies"
	"github.com/hallorbit/spicekernel/kernelerr"
	"github.com/hallorbit/spicekernel/spacetime"
)

const (
	deg2rad   = math.Pi / 180.0
	secPerDay = 86400.0
)

// Poly is a polynomial in reduced time t (days past J2000), evaluated and
// differentiated with Horner's method.
type Poly []float64

func (p Poly) eval(t float64) float64 {
	if len(p) == 0 {
		return 0
	}
	v := p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		v = v*t + p[i]
	}
	return v
}

func (p Poly) derivative(t float64) float64 {
	if len(p) < 2 {
		return 0
	}
	v := float64(len(p)-1) * p[len(p)-1]
	for i := len(p) - 2; i >= 1; i-- {
		v = v*t + float64(i)*p[i]
	}
	return v
}

// NutationTerm is one nutation-precession correction term: a coefficient
// multiplying sin or cos of a linearly growing angle theta(t) = offset +
// rate*t (degrees).
type NutationTerm struct {
	Offset float64 // degrees
	Rate   float64 // degrees/day
	Coeff  float64 // degrees, added to RA/PM (sin) or Dec (cos)
}

func (n NutationTerm) angle(t float64) float64 { return (n.Offset + n.Rate*t) * deg2rad }

// Datum is one body's IAU pole/shape/rotation model: polynomials for pole
// right ascension, declination, and prime meridian, plus the sequence of
// nutation-precession correction terms supplied by the *parent* body (per
// spec.md §4.4, the corrections for an object's orientation come from its
// parent's angle sequence).
type Datum struct {
	ID          int32
	ParentID    int32
	Mu          float64 // km^3/s^2, GM
	Radii       spacetime.Vec3
	RA          Poly
	Dec         Poly
	PM          Poly
	NutationPrecession []NutationTerm
}

// Store holds the loaded planetary data sets, keyed by body id.
type Store struct {
	datums map[int32]Datum
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{datums: make(map[int32]Datum)} }

// Add registers or replaces a body's datum. A zero ParentID is taken to mean
// "not explicitly set" and is defaulted per spec.md §4.4: satellites (*99
// NAIF codes) parent to their system barycenter, everything else to J2000.
func (s *Store) Add(d Datum) {
	if d.ParentID == 0 {
		d.ParentID = defaultParentID(d.ID)
	}
	s.datums[d.ID] = d
}

// defaultParentID applies the *99-parents-to-barycenter convention
// (bodies.ParentsToBarycenter) a caller didn't override explicitly.
func defaultParentID(id int32) int32 {
	if bodies.ParentsToBarycenter(id) {
		abs := id
		if abs < 0 {
			abs = -abs
		}
		return abs / 100
	}
	return bodies.J2000
}

// Lookup returns the datum for id, if loaded.
func (s *Store) Lookup(id int32) (Datum, bool) {
	d, ok := s.datums[id]
	return d, ok
}

// ParentOf reports id's parent orientation id, if id is in the store.
func (s *Store) ParentOf(id int32) (int32, bool) {
	d, ok := s.datums[id]
	if !ok {
		return 0, false
	}
	return d.ParentID, true
}

// Len reports how many datums are loaded.
func (s *Store) Len() int { return len(s.datums) }

// AllParentIDs returns every loaded datum's parent orientation id, used by
// the path solver's orientation root-finding.
func (s *Store) AllParentIDs() []int32 {
	out := make([]int32, 0, len(s.datums))
	for _, d := range s.datums {
		out = append(out, d.ParentID)
	}
	return out
}

func reducedTime(et float64) float64 { return et / secPerDay }

// poleAngles evaluates an object's RA, Dec, and PM (radians) and their
// time derivatives (radians/sec) at et, applying the parent's
// nutation-precession correction sequence per spec.md §4.4 step 2: sin for
// RA and PM, cos for Dec.
func poleAngles(d Datum, parent Datum, et float64) (ra, dec, pm, raDot, decDot, pmDot float64) {
	t := reducedTime(et)
	ra = d.RA.eval(t) * deg2rad
	dec = d.Dec.eval(t) * deg2rad
	pm = d.PM.eval(t) * deg2rad
	raDot = d.RA.derivative(t) * deg2rad / secPerDay
	decDot = d.Dec.derivative(t) * deg2rad / secPerDay
	pmDot = d.PM.derivative(t) * deg2rad / secPerDay

	for _, n := range parent.NutationPrecession {
		theta := n.angle(t)
		thetaDot := n.Rate * deg2rad / secPerDay
		c := n.Coeff * deg2rad
		ra += c * math.Sin(theta)
		raDot += c * math.Cos(theta) * thetaDot
		pm += c * math.Sin(theta)
		pmDot += c * math.Cos(theta) * thetaDot
		dec += c * math.Cos(theta)
		decDot += -c * math.Sin(theta) * thetaDot
	}
	return
}

// r3 is the elementary rotation about the z-axis by angle, and r3Dot its
// time derivative given angleDot.
func r3(angle float64) spacetime.Matrix3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return spacetime.Matrix3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

func r3Dot(angle, angleDot float64) spacetime.Matrix3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return spacetime.Matrix3{
		{-s * angleDot, c * angleDot, 0},
		{-c * angleDot, -s * angleDot, 0},
		{0, 0, 0},
	}
}

func r1(angle float64) spacetime.Matrix3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return spacetime.Matrix3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

func r1Dot(angle, angleDot float64) spacetime.Matrix3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return spacetime.Matrix3{
		{0, 0, 0},
		{0, -s * angleDot, c * angleDot},
		{0, -c * angleDot, -s * angleDot},
	}
}

// EulerDCM builds the NAIF-convention DCM = R3(w) * R1(pi/2 - dec) *
// R3(pi/2 + ra) and its analytical time derivative by the product rule
// across all three factors, given the pole angles and their rates
// (radians, radians/sec). This is shared by DCMToParent (pole polynomial
// evaluation) and by callers evaluating a BPC Type 2 angle-triple segment
// directly.
func EulerDCM(ra, dec, w, raDot, decDot, wDot float64) spacetime.DCM {
	a1 := r3(w)
	a1Dot := r3Dot(w, wDot)
	a2 := r1(math.Pi/2 - dec)
	a2Dot := r1Dot(math.Pi/2-dec, -decDot)
	a3 := r3(math.Pi/2 + ra)
	a3Dot := r3Dot(math.Pi/2+ra, raDot)

	a2a3 := a2.Mul(a3)
	a2a3Dot := a2Dot.Mul(a3).Add(a2.Mul(a3Dot))

	rot := a1.Mul(a2a3)
	rate := a1Dot.Mul(a2a3).Add(a1.Mul(a2a3Dot))
	return spacetime.DCM{Rot: rot, RotDT: rate}
}

// DCMToParent builds the rotation from id's body-fixed frame to its
// parent's frame at et, following spec.md §4.4 step 3.
func (s *Store) DCMToParent(id int32, et float64) (spacetime.DCM, error) {
	d, ok := s.datums[id]
	if !ok {
		return spacetime.DCM{}, &kernelerr.SummaryIdError{Kind: kernelerr.BPC, ID: id}
	}
	parent := Datum{}
	if p, ok := s.datums[d.ParentID]; ok {
		parent = p
	}
	ra, dec, pm, raDot, decDot, pmDot := poleAngles(d, parent, et)
	dcm := EulerDCM(ra, dec, pm, raDot, decDot, pmDot)
	dcm.From, dcm.To = id, d.ParentID
	return dcm, nil
}
