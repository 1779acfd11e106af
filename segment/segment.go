// Package segment implements the typed evaluators over a DAF segment's
// float range (spec.md C5): Chebyshev Types 2/3/14, Lagrange Types 8/9,
// Hermite Type 13, and the BPC Type 2 angle-triple variant. Each evaluator
// is built once from a data type code and the segment's raw float64 slice
// (spec.md's "data area"), then evaluated repeatedly at different epochs.
package segment

import (
	"math"

	"github.com/hallorbit/spicekernel/kernelerr"
	"github.com/hallorbit/spicekernel/spacetime"
)

// supportedSPKTypes is the explicit set of supported SPK data types.
var supportedSPKTypes = map[int32]bool{2: true, 3: true, 8: true, 9: true, 13: true, 14: true}

// SupportedSPKType reports whether dtype is one of {2,3,8,9,13,14}.
func SupportedSPKType(dtype int32) bool { return supportedSPKTypes[dtype] }

// SupportedBPCType reports whether dtype is the one BPC type this core
// implements (Type 2).
func SupportedBPCType(dtype int32) bool { return dtype == 2 }

// Evaluator is implemented by every segment type. Position segments
// (SPK) return km/km-s triples; orientation segments (BPC) return
// radians/radians-per-second angle triples. Both shapes fit Vec3.
type Evaluator interface {
	// Evaluate returns the (value, rate) pair at et, e.g. (position,
	// velocity) or (angles, angle-rates).
	Evaluate(et float64) (value, rate spacetime.Vec3, err error)
	StartEpoch() float64
	EndEpoch() float64
	// CheckIntegrity scans every coefficient for NaN/Inf up front.
	CheckIntegrity() error
}

// New builds an Evaluator for an SPK segment's data type. data is the
// segment's raw float64 range, exactly as read from the DAF ([start_idx,
// end_idx] inclusive, 1-indexed, already 0-indexed into data).
func New(dataType int32, startET, endET float64, data []float64) (Evaluator, error) {
	switch dataType {
	case 2:
		return newChebyshev(data, startET, endET, false)
	case 3:
		return newChebyshev(data, startET, endET, true)
	case 14:
		return newChebyshev14(data, startET, endET)
	case 8:
		return newLagrange8(data, startET, endET)
	case 9:
		return newLagrange9(data, startET, endET)
	case 13:
		return newHermite13(data, startET, endET)
	default:
		return nil, &kernelerr.UnsupportedDatatype{Dtype: dataType, Kind: kernelerr.SPK}
	}
}

// NewBPC builds an Evaluator for a BPC segment's data type.
func NewBPC(dataType int32, startET, endET float64, data []float64) (Evaluator, error) {
	switch dataType {
	case 2:
		return newChebyshev(data, startET, endET, false)
	default:
		return nil, &kernelerr.UnsupportedDatatype{Dtype: dataType, Kind: kernelerr.BPC}
	}
}

func finiteSlice(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func subNormalErr(dataset string) error {
	return &kernelerr.SubNormal{Dataset: dataset, Variable: "coefficients"}
}

func invalidValue(dataset, variable string, value float64, reason string) error {
	return &kernelerr.InvalidValue{Dataset: dataset, Variable: variable, Value: value, Reason: reason}
}

func noInterpolationData() error {
	return kernelerr.ErrNoInterpolationData
}

// clenshaw evaluates a Chebyshev series sum_i coeffs[i]*T_i(s) at s in
// [-1,1] via the Clenshaw recurrence (no monomial expansion).
func clenshaw(coeffs []float64, s float64) float64 {
	n := len(coeffs)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return coeffs[0]
	}
	s2 := 2.0 * s
	w0 := coeffs[n-1]
	w1 := 0.0
	for i := n - 2; i >= 1; i-- {
		w0, w1 = coeffs[i]+s2*w0-w1, w0
	}
	return coeffs[0] + s*w0 - w1
}

// clenshawDerivative evaluates d/ds of the Chebyshev series at s in [-1,1],
// via the standard derivative-coefficient recurrence followed by Clenshaw.
func clenshawDerivative(coeffs []float64, s float64) float64 {
	n := len(coeffs)
	if n < 2 {
		return 0
	}
	m := n - 1
	dc := make([]float64, m)
	for j := m - 1; j >= 1; j-- {
		var djp2 float64
		if j+2 < m {
			djp2 = dc[j+2]
		}
		dc[j] = djp2 + 2.0*float64(j+1)*coeffs[j+1]
	}
	var d2 float64
	if m > 2 {
		d2 = dc[2]
	}
	dc[0] = (d2 + 2.0*coeffs[1]) / 2.0
	return clenshaw(dc, s)
}
