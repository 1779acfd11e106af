package planetary

import (
	"math"

	"github.com/hallorbit/spicekernel/bodies"
	"github.com/hallorbit/spicekernel/kernelerr"
	"github.com/hallorbit/spicekernel/spacetime"
)

// J2000 mean obliquity (84381.448 arcseconds, Lieske 1979), carried as the
// sin/cos pair rather than the raw angle to match the reference constants
// bit for bit instead of round-tripping through math.Sin/math.Cos.
const (
	eclipObliquitySin = 0.3977771559319137062
	eclipObliquityCos = 0.9174820620691818140
)

// EclipJ2000DCM returns the fixed, time-invariant rotation for the
// ECLIPJ2000/J2000 edge: spec.md §3 calls out ECLIPJ2000 (orientation id 17)
// as a hard-coded rotation to J2000 at the obliquity of date, independent of
// any loaded BPC or planetary datum. Zero rate: the obliquity used here is a
// fixed constant, not a time-varying precession model.
func EclipJ2000DCM() spacetime.DCM {
	rot := spacetime.Matrix3{
		{1, 0, 0},
		{0, eclipObliquityCos, eclipObliquitySin},
		{0, -eclipObliquitySin, eclipObliquityCos},
	}
	return spacetime.DCM{Rot: rot, RotDT: spacetime.Zero3(), From: bodies.ECLIPJ2000, To: bodies.J2000}
}

// Quat is a unit quaternion {w,x,y,z} representing a fixed (time-invariant)
// rotation, the Euler-parameter form spec.md §4.4 names for fixed frames.
type Quat struct {
	W, X, Y, Z float64
}

// Mul composes quaternions: q then r, i.e. r.Mul applied after q (Hamilton
// product r*q, matching the DCM composition order used elsewhere).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: r.W*q.W - r.X*q.X - r.Y*q.Y - r.Z*q.Z,
		X: r.W*q.X + r.X*q.W + r.Y*q.Z - r.Z*q.Y,
		Y: r.W*q.Y - r.X*q.Z + r.Y*q.W + r.Z*q.X,
		Z: r.W*q.Z + r.X*q.Y - r.Y*q.X + r.Z*q.W,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat { return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z} }

// DCM converts q to a direction cosine matrix (zero rate: fixed frames are
// time-invariant).
func (q Quat) DCM(from, to int32) spacetime.DCM {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	rot := spacetime.Matrix3{
		{1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y)},
		{2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x)},
		{2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y)},
	}
	return spacetime.DCM{Rot: rot, RotDT: spacetime.Zero3(), From: from, To: to}
}

// FixedFrame is one Euler fixed-frame definition: a frame id, its parent
// orientation id, and the unit quaternion rotating frame vectors into the
// parent frame.
type FixedFrame struct {
	ID       int32
	ParentID int32
	Rotation Quat
}

// FixedFrameStore holds loaded Euler fixed frames, keyed by frame id.
type FixedFrameStore struct {
	frames map[int32]FixedFrame
}

// NewFixedFrameStore returns an empty FixedFrameStore.
func NewFixedFrameStore() *FixedFrameStore {
	return &FixedFrameStore{frames: make(map[int32]FixedFrame)}
}

// Add registers or replaces a fixed frame.
func (s *FixedFrameStore) Add(f FixedFrame) { s.frames[f.ID] = f }

// Lookup returns the fixed frame for id, if loaded.
func (s *FixedFrameStore) Lookup(id int32) (FixedFrame, bool) {
	f, ok := s.frames[id]
	return f, ok
}

// ParentOf reports id's parent orientation id, if id is a known fixed
// frame.
func (s *FixedFrameStore) ParentOf(id int32) (int32, bool) {
	f, ok := s.frames[id]
	if !ok {
		return 0, false
	}
	return f.ParentID, true
}

// DCMToParent returns the fixed-frame rotation to id's parent, shortest-way
// normalized (w >= 0) per the convention multiplication-order check in
// spec.md §4.4 relies on.
func (s *FixedFrameStore) DCMToParent(id int32) (spacetime.DCM, error) {
	f, ok := s.frames[id]
	if !ok {
		return spacetime.DCM{}, &kernelerr.SummaryIdError{Kind: kernelerr.BPC, ID: id}
	}
	q := f.Rotation
	if q.W < 0 {
		q = Quat{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
	}
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n > 0 {
		q.W, q.X, q.Y, q.Z = q.W/n, q.X/n, q.Y/n, q.Z/n
	}
	return q.DCM(id, f.ParentID), nil
}
