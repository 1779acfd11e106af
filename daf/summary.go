package daf

import "github.com/hallorbit/spicekernel/kernelerr"

// RawSummary is the untyped decode of one summary entry: ND doubles
// followed by NI packed int32s, as laid out in the DAF (spec.md §3).
type RawSummary struct {
	Doubles []float64
	Ints    []int32
}

// SPKSummary is the typed SPK-shape summary (ND=2, NI=6).
type SPKSummary struct {
	Name     string
	StartET  float64
	EndET    float64
	Target   int32
	Center   int32
	Frame    int32
	DataType int32
	StartIdx int32
	EndIdx   int32
}

// BPCSummary is the typed BPC-shape summary (ND=2, NI=5).
type BPCSummary struct {
	Name            string
	StartET         float64
	EndET           float64
	Frame           int32
	InertialFrame   int32
	DataType        int32
	StartIdx        int32
	EndIdx          int32
}

// AsSPK interprets r as an SPK summary.
func (r RawSummary) AsSPK(name string) (SPKSummary, error) {
	if len(r.Doubles) < 2 || len(r.Ints) < 6 {
		return SPKSummary{}, kernelerr.ErrCorruptedData
	}
	return SPKSummary{
		Name:     name,
		StartET:  r.Doubles[0],
		EndET:    r.Doubles[1],
		Target:   r.Ints[0],
		Center:   r.Ints[1],
		Frame:    r.Ints[2],
		DataType: r.Ints[3],
		StartIdx: r.Ints[4],
		EndIdx:   r.Ints[5],
	}, nil
}

// AsBPC interprets r as a BPC summary.
func (r RawSummary) AsBPC(name string) (BPCSummary, error) {
	if len(r.Doubles) < 2 || len(r.Ints) < 5 {
		return BPCSummary{}, kernelerr.ErrCorruptedData
	}
	return BPCSummary{
		Name:          name,
		StartET:       r.Doubles[0],
		EndET:         r.Doubles[1],
		Frame:         r.Ints[0],
		InertialFrame: r.Ints[1],
		DataType:      r.Ints[2],
		StartIdx:      r.Ints[3],
		EndIdx:        r.Ints[4],
	}, nil
}
