package segment

import "github.com/hallorbit/spicekernel/spacetime"

// chebyshev23 implements equal-step Chebyshev Type 2 (position only) and
// Type 3 (position+velocity) segments.
type chebyshev23 struct {
	initEpoch   float64
	intervalLen float64
	rsize       int
	numRecords  int
	nCoeffs     int
	hasVelocity bool // Type 3
	data        []float64
	startET     float64
	endET       float64
}

func newChebyshev(data []float64, startET, endET float64, hasVelocity bool) (*chebyshev23, error) {
	if len(data) < 4 {
		return nil, subNormalErr("chebyshev2/3")
	}
	n := len(data)
	meta := data[n-4:]
	initEpoch, intervalLen, rsizeF, numRecordsF := meta[0], meta[1], meta[2], meta[3]
	if intervalLen <= 0 {
		return nil, invalidValue("chebyshev2/3", "interval_length_s", intervalLen, "must be positive")
	}
	rsize := int(rsizeF)
	numRecords := int(numRecordsF)
	k := 3
	if hasVelocity {
		k = 6
	}
	nCoeffs := (rsize - 2) / k
	body := data[:n-4]
	if !finiteSlice(meta) || !finiteSlice(body) {
		return nil, subNormalErr("chebyshev2/3")
	}
	if len(body) < rsize*numRecords {
		return nil, subNormalErr("chebyshev2/3")
	}
	return &chebyshev23{
		initEpoch:   initEpoch,
		intervalLen: intervalLen,
		rsize:       rsize,
		numRecords:  numRecords,
		nCoeffs:     nCoeffs,
		hasVelocity: hasVelocity,
		data:        body,
		startET:     startET,
		endET:       endET,
	}, nil
}

func (c *chebyshev23) StartEpoch() float64 { return c.startET }
func (c *chebyshev23) EndEpoch() float64   { return c.endET }

func (c *chebyshev23) CheckIntegrity() error {
	if !finiteSlice(c.data) {
		return subNormalErr("chebyshev2/3")
	}
	return nil
}

func (c *chebyshev23) recordIndex(et float64) int {
	idx := int((et - c.initEpoch) / c.intervalLen)
	if idx < 0 {
		idx = 0
	}
	if idx >= c.numRecords {
		idx = c.numRecords - 1
	}
	return idx
}

func (c *chebyshev23) Evaluate(et float64) (spacetime.Vec3, spacetime.Vec3, error) {
	idx := c.recordIndex(et)
	recStart := idx * c.rsize
	midpoint := c.data[recStart]
	radius := c.data[recStart+1]
	if radius == 0 {
		return spacetime.Vec3{}, spacetime.Vec3{}, invalidValue("chebyshev2/3", "radius_s", radius, "must be non-zero")
	}
	tau := (et - midpoint) / radius

	var pos, vel spacetime.Vec3
	for comp := 0; comp < 3; comp++ {
		cStart := recStart + 2 + comp*c.nCoeffs
		coeffs := c.data[cStart : cStart+c.nCoeffs]
		pos[comp] = clenshaw(coeffs, tau)
	}
	if c.hasVelocity {
		for comp := 0; comp < 3; comp++ {
			cStart := recStart + 2 + (3+comp)*c.nCoeffs
			coeffs := c.data[cStart : cStart+c.nCoeffs]
			vel[comp] = clenshaw(coeffs, tau)
		}
	} else {
		scale := 1.0 / radius
		for comp := 0; comp < 3; comp++ {
			cStart := recStart + 2 + comp*c.nCoeffs
			coeffs := c.data[cStart : cStart+c.nCoeffs]
			vel[comp] = clenshawDerivative(coeffs, tau) * scale
		}
	}
	if !pos.Finite() || !vel.Finite() {
		return spacetime.Vec3{}, spacetime.Vec3{}, subNormalErr("chebyshev2/3")
	}
	return pos, vel, nil
}
