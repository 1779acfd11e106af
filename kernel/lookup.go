package kernel

import "github.com/hallorbit/spicekernel/kernelerr"

const epochToleranceSec = 100e-9 // 100 ns, matching reference toolkit boundary slack

// SPKMatch is one SPK summary found by a registry search, together with
// its position: RegistryIndex counts from oldest load (0 = first loaded),
// WithinIndex is the summary's position within that DAF's own summary list.
type SPKMatch struct {
	Summary       SPKSummaryRef
	RegistryIndex int
	WithinIndex   int
}

// SPKSummaryRef names the fields callers need without re-exporting the daf
// package's SPKSummary type directly, keeping kernel's public surface
// independent of daf's internal layout.
type SPKSummaryRef struct {
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

// BPCMatch is the BPC counterpart of SPKMatch.
type BPCMatch struct {
	Summary       BPCSummaryRef
	RegistryIndex int
	WithinIndex   int
}

// BPCSummaryRef is the BPC counterpart of SPKSummaryRef.
type BPCSummaryRef struct {
	Name          string
	StartET       float64
	EndET         float64
	Frame         int32
	InertialFrame int32
	DataType      int32
	StartIdx      int32
	EndIdx        int32
}

func withinEpoch(start, end, et float64) bool {
	return et >= start-epochToleranceSec && et <= end+epochToleranceSec
}

// SummaryFromID searches loaded SPK kernels in reverse insertion order
// (most recently loaded first) for a summary whose target id is id,
// returning the first match regardless of epoch coverage.
func (r *Registry) SummaryFromID(id int32) (SPKMatch, error) {
	n := len(r.spk)
	for i := n - 1; i >= 0; i-- {
		sums, err := r.spk[i].d.SPKSummaries()
		if err != nil {
			return SPKMatch{}, err
		}
		for j, s := range sums {
			if s.Target == id {
				return SPKMatch{Summary: toSPKRef(s), RegistryIndex: n - 1 - i, WithinIndex: j}, nil
			}
		}
	}
	return SPKMatch{}, &kernelerr.SummaryIdError{Kind: kernelerr.SPK, ID: id}
}

// SummaryFromName is the name-keyed counterpart of SummaryFromID.
func (r *Registry) SummaryFromName(name string) (SPKMatch, error) {
	n := len(r.spk)
	for i := n - 1; i >= 0; i-- {
		sums, err := r.spk[i].d.SPKSummaries()
		if err != nil {
			return SPKMatch{}, err
		}
		for j, s := range sums {
			if s.Name == name {
				return SPKMatch{Summary: toSPKRef(s), RegistryIndex: n - 1 - i, WithinIndex: j}, nil
			}
		}
	}
	return SPKMatch{}, &kernelerr.SummaryNameError{Kind: kernelerr.SPK, Name: name}
}

// SummaryFromIDAtEpoch narrows SummaryFromID to summaries that cover et
// (within a 100 ns tolerance). If id exists but never at et, the error
// reports the coverage of the last matching summary the reverse search
// visited, which is not necessarily the one nearest to et.
func (r *Registry) SummaryFromIDAtEpoch(id int32, et float64) (SPKMatch, error) {
	n := len(r.spk)
	var knownStart, knownEnd float64
	known := false
	for i := n - 1; i >= 0; i-- {
		sums, err := r.spk[i].d.SPKSummaries()
		if err != nil {
			return SPKMatch{}, err
		}
		for j, s := range sums {
			if s.Target != id {
				continue
			}
			known = true
			knownStart, knownEnd = s.StartET, s.EndET
			if withinEpoch(s.StartET, s.EndET, et) {
				return SPKMatch{Summary: toSPKRef(s), RegistryIndex: n - 1 - i, WithinIndex: j}, nil
			}
		}
	}
	if !known {
		return SPKMatch{}, &kernelerr.SummaryIdError{Kind: kernelerr.SPK, ID: id}
	}
	return SPKMatch{}, &kernelerr.SummaryIdAtEpochError{
		Kind: kernelerr.SPK, ID: id, Epoch: et, Start: knownStart, End: knownEnd, CoverageKnown: true,
	}
}

// SummaryFromNameAtEpoch is the name-keyed counterpart of
// SummaryFromIDAtEpoch.
func (r *Registry) SummaryFromNameAtEpoch(name string, et float64) (SPKMatch, error) {
	n := len(r.spk)
	found := false
	for i := n - 1; i >= 0; i-- {
		sums, err := r.spk[i].d.SPKSummaries()
		if err != nil {
			return SPKMatch{}, err
		}
		for j, s := range sums {
			if s.Name != name {
				continue
			}
			found = true
			if withinEpoch(s.StartET, s.EndET, et) {
				return SPKMatch{Summary: toSPKRef(s), RegistryIndex: n - 1 - i, WithinIndex: j}, nil
			}
		}
	}
	if !found {
		return SPKMatch{}, &kernelerr.SummaryNameError{Kind: kernelerr.SPK, Name: name}
	}
	return SPKMatch{}, &kernelerr.SummaryNameAtEpochError{Kind: kernelerr.SPK, Name: name, Epoch: et}
}

// BPCSummaryFromIDAtEpoch is the BPC counterpart of SummaryFromIDAtEpoch,
// keyed by the BPC summary's own frame id.
func (r *Registry) BPCSummaryFromIDAtEpoch(frameID int32, et float64) (BPCMatch, error) {
	n := len(r.bpc)
	var knownStart, knownEnd float64
	known := false
	for i := n - 1; i >= 0; i-- {
		sums, err := r.bpc[i].d.BPCSummaries()
		if err != nil {
			return BPCMatch{}, err
		}
		for j, s := range sums {
			if s.Frame != frameID {
				continue
			}
			known = true
			knownStart, knownEnd = s.StartET, s.EndET
			if withinEpoch(s.StartET, s.EndET, et) {
				return BPCMatch{Summary: toBPCRef(s), RegistryIndex: n - 1 - i, WithinIndex: j}, nil
			}
		}
	}
	if !known {
		return BPCMatch{}, &kernelerr.SummaryIdError{Kind: kernelerr.BPC, ID: frameID}
	}
	return BPCMatch{}, &kernelerr.SummaryIdAtEpochError{
		Kind: kernelerr.BPC, ID: frameID, Epoch: et, Start: knownStart, End: knownEnd, CoverageKnown: true,
	}
}

// Domain returns the union of coverage [earliest_start, latest_end] for id
// across every loaded SPK summary naming it as target.
func (r *Registry) Domain(id int32) (start, end float64, err error) {
	found := false
	for _, e := range r.spk {
		sums, err := e.d.SPKSummaries()
		if err != nil {
			return 0, 0, err
		}
		for _, s := range sums {
			if s.Target != id {
				continue
			}
			if !found || s.StartET < start {
				start = s.StartET
			}
			if !found || s.EndET > end {
				end = s.EndET
			}
			found = true
		}
	}
	if !found {
		return 0, 0, &kernelerr.SummaryIdError{Kind: kernelerr.SPK, ID: id}
	}
	return start, end, nil
}

// Domains unions coverage across every loaded SPK summary, keyed by target
// id.
func (r *Registry) Domains() (map[int32][2]float64, error) {
	out := make(map[int32][2]float64)
	for _, e := range r.spk {
		sums, err := e.d.SPKSummaries()
		if err != nil {
			return nil, err
		}
		for _, s := range sums {
			cur, ok := out[s.Target]
			if !ok {
				out[s.Target] = [2]float64{s.StartET, s.EndET}
				continue
			}
			if s.StartET < cur[0] {
				cur[0] = s.StartET
			}
			if s.EndET > cur[1] {
				cur[1] = s.EndET
			}
			out[s.Target] = cur
		}
	}
	return out, nil
}
