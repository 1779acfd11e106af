package spacetime

import (
	"math"
	"testing"
)

func TestVec3Arith(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := (Vec3{3, 4, 0}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %v, want 5", got)
	}
	if !a.Finite() {
		t.Error("a should be finite")
	}
	if (Vec3{math.NaN(), 0, 0}).Finite() {
		t.Error("NaN vector should not be finite")
	}
}

func TestMatrix3IdentityAndMul(t *testing.T) {
	id := Identity3()
	m := Matrix3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	if got := id.Mul(m); got != m {
		t.Errorf("identity*m = %v, want %v", got, m)
	}
	v := Vec3{1, 0, 0}
	if got := id.MulVec(v); got != v {
		t.Errorf("identity*v = %v, want %v", got, v)
	}
}

func TestMatrix3Transpose(t *testing.T) {
	m := Matrix3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	tr := m.Transpose()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if tr[j][i] != m[i][j] {
				t.Fatalf("transpose mismatch at %d,%d", i, j)
			}
		}
	}
}

func TestDCMComposeWithIdentity(t *testing.T) {
	d := DCM{Rot: Matrix3{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}}, RotDT: Zero3(), From: 1, To: 2}
	id := IdentityDCM(2)
	id.From, id.To = 2, 3
	composed := d.Compose(id)
	if composed.Rot != d.Rot {
		t.Errorf("composing with identity should be a no-op on Rot: got %v", composed.Rot)
	}
	if composed.From != 1 || composed.To != 3 {
		t.Errorf("composed labels = %d->%d, want 1->3", composed.From, composed.To)
	}
}

func TestDCMTransposeRoundTrip(t *testing.T) {
	d := DCM{Rot: Matrix3{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}}, RotDT: Zero3(), From: 1, To: 2}
	back := d.Transpose().Transpose()
	if back.Rot != d.Rot || back.From != d.From || back.To != d.To {
		t.Errorf("double transpose should round-trip, got %+v", back)
	}
}
