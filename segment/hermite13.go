package segment

import "github.com/hallorbit/spicekernel/spacetime"

// hermite13 implements unequal-step Hermite segments: the same state+epoch
// layout as Type 9, but interpolated with a window of 2*(degree/2+1) samples
// so that both position and velocity samples constrain the fit, per
// spec.md §4.2.5.
type hermite13 struct {
	degree     int
	numRecords int
	states     []float64 // numRecords*6
	epochs     []float64 // numRecords
	directory  []float64
	startET    float64
	endET      float64
}

func newHermite13(data []float64, startET, endET float64) (*hermite13, error) {
	n := len(data)
	if n < 2 {
		return nil, subNormalErr("hermite13")
	}
	degree := int(data[n-2])
	numRecords := int(data[n-1])
	if numRecords <= 0 {
		return nil, invalidValue("hermite13", "num_records", float64(numRecords), "must be positive")
	}
	body := data[:n-2]
	statesLen := numRecords * 6
	if len(body) < statesLen+numRecords {
		return nil, subNormalErr("hermite13")
	}
	states := body[:statesLen]
	epochs := body[statesLen : statesLen+numRecords]
	directory := body[statesLen+numRecords:]
	if !finiteSlice(states) || !finiteSlice(epochs) || !finiteSlice(directory) {
		return nil, subNormalErr("hermite13")
	}
	return &hermite13{
		degree: degree, numRecords: numRecords, states: states, epochs: epochs,
		directory: directory, startET: startET, endET: endET,
	}, nil
}

func (h *hermite13) StartEpoch() float64 { return h.startET }
func (h *hermite13) EndEpoch() float64   { return h.endET }

func (h *hermite13) CheckIntegrity() error {
	if !finiteSlice(h.states) {
		return subNormalErr("hermite13")
	}
	return nil
}

func (h *hermite13) record(i int) []float64 { return h.states[i*6 : i*6+6] }

// windowSize is 2*(degree/2+1) samples: degree/2+1 points, each contributing
// a position and a velocity sample (one doubled node per point in the
// underlying Hermite fit).
func (h *hermite13) windowSize() int {
	points := h.degree/2 + 1
	return 2 * points
}

func (h *hermite13) Evaluate(et float64) (spacetime.Vec3, spacetime.Vec3, error) {
	first, last := h.epochs[0], h.epochs[h.numRecords-1]
	if et < first-unequalStepTolSec || et > last+unequalStepTolSec {
		return spacetime.Vec3{}, spacetime.Vec3{}, noInterpolationData()
	}
	insert := locateIndex(h.epochs, h.directory, et)

	size := h.windowSize() / 2
	if size > h.numRecords {
		size = h.numRecords
	}
	lo, hi := window(float64(insert), size-1, h.numRecords)

	xs := make([]float64, hi-lo)
	comps := make([][]float64, 6)
	dComps := make([][]float64, 3)
	for c := range comps {
		comps[c] = make([]float64, hi-lo)
	}
	for c := range dComps {
		dComps[c] = make([]float64, hi-lo)
	}
	for i := lo; i < hi; i++ {
		xs[i-lo] = h.epochs[i]
		rec := h.record(i)
		for c := 0; c < 6; c++ {
			comps[c][i-lo] = rec[c]
		}
		for c := 0; c < 3; c++ {
			dComps[c][i-lo] = rec[3+c]
		}
	}

	var pos, vel spacetime.Vec3
	for c := 0; c < 3; c++ {
		value, deriv := hermiteValueAndDerivative(xs, comps[c], dComps[c], et)
		pos[c] = value
		vel[c] = deriv
	}
	if !pos.Finite() || !vel.Finite() {
		return spacetime.Vec3{}, spacetime.Vec3{}, subNormalErr("hermite13")
	}
	return pos, vel, nil
}
