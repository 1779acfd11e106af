package segment

import (
	"math"

	"github.com/hallorbit/spicekernel/spacetime"
)

// lagrange8 implements equal-step Lagrange position-velocity segments.
type lagrange8 struct {
	firstEpoch float64
	step       float64
	degree     int
	numRecords int
	data       []float64 // numRecords*6
	startET    float64
	endET      float64
}

func newLagrange8(data []float64, startET, endET float64) (*lagrange8, error) {
	n := len(data)
	if n < 4 {
		return nil, subNormalErr("lagrange8")
	}
	meta := data[n-4:]
	firstEpoch, step, degreeF, numRecordsF := meta[0], meta[1], meta[2], meta[3]
	degree := int(degreeF)
	numRecords := int(numRecordsF)
	if step <= 0 {
		return nil, invalidValue("lagrange8", "step_s", step, "must be positive")
	}
	body := data[:n-4]
	if len(body) < numRecords*6 {
		return nil, subNormalErr("lagrange8")
	}
	if !finiteSlice(meta) || !finiteSlice(body) {
		return nil, subNormalErr("lagrange8")
	}
	return &lagrange8{
		firstEpoch: firstEpoch, step: step, degree: degree, numRecords: numRecords,
		data: body, startET: startET, endET: endET,
	}, nil
}

func (l *lagrange8) StartEpoch() float64 { return l.startET }
func (l *lagrange8) EndEpoch() float64   { return l.endET }

func (l *lagrange8) CheckIntegrity() error {
	if !finiteSlice(l.data) {
		return subNormalErr("lagrange8")
	}
	return nil
}

func (l *lagrange8) record(i int) []float64 { return l.data[i*6 : i*6+6] }

// window centers a (degree+1)-sample window on idxF, then clips to
// [0, N-(degree+1)], the SPICE-compatible rule spec.md adopts as
// authoritative over the reference's inconsistent clipping formulas.
func window(idxF float64, degree, n int) (lo, hi int) {
	size := degree + 1
	if size > n {
		size = n
	}
	center := int(math.Round(idxF)) - size/2
	if center < 0 {
		center = 0
	}
	if center > n-size {
		center = n - size
	}
	return center, center + size
}

func (l *lagrange8) Evaluate(et float64) (spacetime.Vec3, spacetime.Vec3, error) {
	idxF := (et - l.firstEpoch) / l.step
	nearest := math.Round(idxF)
	if math.Abs(idxF-nearest) < 1e-12 {
		i := int(nearest)
		if i < 0 {
			i = 0
		}
		if i >= l.numRecords {
			i = l.numRecords - 1
		}
		rec := l.record(i)
		pos := spacetime.Vec3{rec[0], rec[1], rec[2]}
		vel := spacetime.Vec3{rec[3], rec[4], rec[5]}
		return pos, vel, nil
	}

	lo, hi := window(idxF, l.degree, l.numRecords)
	xs := make([]float64, hi-lo)
	comps := make([][]float64, 6)
	for c := range comps {
		comps[c] = make([]float64, hi-lo)
	}
	for i := lo; i < hi; i++ {
		xs[i-lo] = l.firstEpoch + float64(i)*l.step
		rec := l.record(i)
		for c := 0; c < 6; c++ {
			comps[c][i-lo] = rec[c]
		}
	}
	var pos, vel spacetime.Vec3
	for c := 0; c < 3; c++ {
		pos[c] = neville(xs, comps[c], et)
	}
	for c := 0; c < 3; c++ {
		vel[c] = neville(xs, comps[3+c], et)
	}
	if !pos.Finite() || !vel.Finite() {
		return spacetime.Vec3{}, spacetime.Vec3{}, subNormalErr("lagrange8")
	}
	return pos, vel, nil
}

// lagrange9 implements unequal-step Lagrange position-velocity segments.
type lagrange9 struct {
	degree     int
	numRecords int
	states     []float64 // numRecords*6
	epochs     []float64 // numRecords
	directory  []float64
	startET    float64
	endET      float64
}

func newLagrange9(data []float64, startET, endET float64) (*lagrange9, error) {
	n := len(data)
	if n < 2 {
		return nil, subNormalErr("lagrange9")
	}
	degree := int(data[n-2])
	numRecords := int(data[n-1])
	if numRecords <= 0 {
		return nil, invalidValue("lagrange9", "num_records", float64(numRecords), "must be positive")
	}
	body := data[:n-2]
	statesLen := numRecords * 6
	if len(body) < statesLen+numRecords {
		return nil, subNormalErr("lagrange9")
	}
	states := body[:statesLen]
	epochs := body[statesLen : statesLen+numRecords]
	directory := body[statesLen+numRecords:]
	if !finiteSlice(states) || !finiteSlice(epochs) || !finiteSlice(directory) {
		return nil, subNormalErr("lagrange9")
	}
	return &lagrange9{
		degree: degree, numRecords: numRecords, states: states, epochs: epochs,
		directory: directory, startET: startET, endET: endET,
	}, nil
}

func (l *lagrange9) StartEpoch() float64 { return l.startET }
func (l *lagrange9) EndEpoch() float64   { return l.endET }

func (l *lagrange9) CheckIntegrity() error {
	if !finiteSlice(l.states) {
		return subNormalErr("lagrange9")
	}
	return nil
}

func (l *lagrange9) record(i int) []float64 { return l.states[i*6 : i*6+6] }

const unequalStepTolSec = 1e-7

func (l *lagrange9) Evaluate(et float64) (spacetime.Vec3, spacetime.Vec3, error) {
	first, last := l.epochs[0], l.epochs[l.numRecords-1]
	if et < first-unequalStepTolSec || et > last+unequalStepTolSec {
		return spacetime.Vec3{}, spacetime.Vec3{}, noInterpolationData()
	}
	insert := locateIndex(l.epochs, l.directory, et)
	lo, hi := window(float64(insert), l.degree, l.numRecords)

	xs := make([]float64, hi-lo)
	comps := make([][]float64, 6)
	for c := range comps {
		comps[c] = make([]float64, hi-lo)
	}
	for i := lo; i < hi; i++ {
		xs[i-lo] = l.epochs[i]
		rec := l.record(i)
		for c := 0; c < 6; c++ {
			comps[c][i-lo] = rec[c]
		}
	}
	var pos, vel spacetime.Vec3
	for c := 0; c < 3; c++ {
		pos[c] = neville(xs, comps[c], et)
	}
	for c := 0; c < 3; c++ {
		vel[c] = neville(xs, comps[3+c], et)
	}
	if !pos.Finite() || !vel.Finite() {
		return spacetime.Vec3{}, spacetime.Vec3{}, subNormalErr("lagrange9")
	}
	return pos, vel, nil
}
