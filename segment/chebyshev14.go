package segment

import "github.com/hallorbit/spicekernel/spacetime"

// chebyshev14 implements unequal-step Chebyshev Type 14 segments: records
// have the Type 3 shape (per-record midpoint, radius, position and
// velocity coefficients) but each carries its own midpoint/radius, located
// via a binary search over trailing endpoint doubles (plus an optional
// every-100th-entry directory), per spec.md §4.2.2.
type chebyshev14 struct {
	rsize      int
	numRecords int
	nCoeffs    int
	records    []float64 // numRecords*rsize
	epochs     []float64 // numRecords, ascending end-of-record boundaries
	directory  []float64 // optional acceleration directory
	startET    float64
	endET      float64
}

func newChebyshev14(data []float64, startET, endET float64) (*chebyshev14, error) {
	n := len(data)
	if n < 2 {
		return nil, subNormalErr("chebyshev14")
	}
	rsize := int(data[n-2])
	numRecords := int(data[n-1])
	if rsize <= 2 || numRecords <= 0 {
		return nil, invalidValue("chebyshev14", "num_records", float64(numRecords), "must be positive")
	}
	body := data[:n-2]
	recordsLen := rsize * numRecords
	if len(body) < recordsLen+numRecords {
		return nil, subNormalErr("chebyshev14")
	}
	records := body[:recordsLen]
	epochs := body[recordsLen : recordsLen+numRecords]
	directory := body[recordsLen+numRecords:]
	if !finiteSlice(records) || !finiteSlice(epochs) || !finiteSlice(directory) {
		return nil, subNormalErr("chebyshev14")
	}
	nCoeffs := (rsize - 2) / 6
	return &chebyshev14{
		rsize: rsize, numRecords: numRecords, nCoeffs: nCoeffs,
		records: records, epochs: epochs, directory: directory,
		startET: startET, endET: endET,
	}, nil
}

func (c *chebyshev14) StartEpoch() float64 { return c.startET }
func (c *chebyshev14) EndEpoch() float64   { return c.endET }

func (c *chebyshev14) CheckIntegrity() error {
	if !finiteSlice(c.records) {
		return subNormalErr("chebyshev14")
	}
	return nil
}

func (c *chebyshev14) Evaluate(et float64) (spacetime.Vec3, spacetime.Vec3, error) {
	idx := locateIndex(c.epochs, c.directory, et)
	if idx >= c.numRecords {
		idx = c.numRecords - 1
	}
	recStart := idx * c.rsize
	midpoint := c.records[recStart]
	radius := c.records[recStart+1]
	if radius == 0 {
		return spacetime.Vec3{}, spacetime.Vec3{}, invalidValue("chebyshev14", "radius_s", radius, "must be non-zero")
	}
	tau := (et - midpoint) / radius

	var pos, vel spacetime.Vec3
	for comp := 0; comp < 3; comp++ {
		cStart := recStart + 2 + comp*c.nCoeffs
		pos[comp] = clenshaw(c.records[cStart:cStart+c.nCoeffs], tau)
	}
	for comp := 0; comp < 3; comp++ {
		cStart := recStart + 2 + (3+comp)*c.nCoeffs
		vel[comp] = clenshaw(c.records[cStart:cStart+c.nCoeffs], tau)
	}
	if !pos.Finite() || !vel.Finite() {
		return spacetime.Vec3{}, spacetime.Vec3{}, subNormalErr("chebyshev14")
	}
	return pos, vel, nil
}
