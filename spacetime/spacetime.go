// Package spacetime holds the small value types shared across spicekernel:
// epochs, frame identifiers, 3-vectors, 3x3 matrices, and the Cartesian/DCM
// results the composition engine produces. Conversions between time scales
// (UTC/TAI/TDB) are an external collaborator per spec; Epoch is already TDB.
package spacetime

import "math"

// Epoch is a TDB instant, expressed in seconds past J2000 (2000-01-01
// 12:00:00 TDB), matching the DAF native time scale.
type Epoch float64

// J2000 is the epoch origin: zero seconds past J2000 TDB.
const J2000 Epoch = 0

// Frame identifies a reference frame by its NAIF ephemeris (center) id and
// orientation id.
type Frame struct {
	EphemerisID   int32
	OrientationID int32
}

// TranslationEqual reports whether f and g share an ephemeris center.
func (f Frame) TranslationEqual(g Frame) bool { return f.EphemerisID == g.EphemerisID }

// RotationEqual reports whether f and g share an orientation.
func (f Frame) RotationEqual(g Frame) bool { return f.OrientationID == g.OrientationID }

// Vec3 is a 3-element vector in km (position) or km/s (velocity).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{s * a[0], s * a[1], s * a[2]} }
func (a Vec3) Dot(b Vec3) float64   { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func (a Vec3) Norm() float64        { return math.Sqrt(a.Dot(a)) }

// Finite reports whether every component of a is finite (not NaN or Inf).
func (a Vec3) Finite() bool {
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Matrix3 is a row-major 3x3 matrix, used for direction cosine matrices.
type Matrix3 [3][3]float64

// Identity3 is the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Zero3 is the 3x3 zero matrix, used for rate matrices with no motion.
func Zero3() Matrix3 {
	return Matrix3{}
}

// MulVec multiplies m by the column vector v.
func (m Matrix3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Mul computes the matrix product m*n.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m[i][k] * n[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

// Add computes the element-wise sum m+n.
func (m Matrix3) Add(n Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}
	return out
}

// Transpose returns m^T.
func (m Matrix3) Transpose() Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Finite reports whether every element of m is finite.
func (m Matrix3) Finite() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}

// Cartesian is a position/velocity pair expressed in a named frame at an
// epoch. Position is in km, velocity in km/s.
type Cartesian struct {
	Position Vec3
	Velocity Vec3
	Epoch    Epoch
	Frame    Frame
}

// DCM is a direction cosine matrix together with its time derivative, and
// the frame labels the rotation maps between (From -> To).
type DCM struct {
	Rot   Matrix3
	RotDT Matrix3
	From  int32
	To    int32
}

// IdentityDCM returns the identity rotation with zero rate, labeled id->id.
func IdentityDCM(id int32) DCM {
	return DCM{Rot: Identity3(), RotDT: Zero3(), From: id, To: id}
}

// Transpose returns the inverse rotation (transpose of an orthonormal DCM),
// applying the transport theorem to the rate: d/dt(Rᵀ) = (dR/dt)ᵀ.
func (d DCM) Transpose() DCM {
	return DCM{Rot: d.Rot.Transpose(), RotDT: d.RotDT.Transpose(), From: d.To, To: d.From}
}

// Compose returns the rotation that results from applying d then next
// (next.Rot * d.Rot), propagating the rate via the transport theorem:
// d/dt(A*B) = Ȧ*B + A*Ḃ. next.From must equal d.To.
func (d DCM) Compose(next DCM) DCM {
	rot := next.Rot.Mul(d.Rot)
	rate := next.RotDT.Mul(d.Rot).Add(next.Rot.Mul(d.RotDT))
	return DCM{Rot: rot, RotDT: rate, From: d.From, To: next.To}
}
