package kernel

// AllSPKSummaries flattens every summary of every loaded SPK in reverse
// insertion order (most recently loaded first), the traversal order the
// path solver's root-finding relies on.
func (r *Registry) AllSPKSummaries() ([]SPKSummaryRef, error) {
	var out []SPKSummaryRef
	for i := len(r.spk) - 1; i >= 0; i-- {
		sums, err := r.spk[i].d.SPKSummaries()
		if err != nil {
			return nil, err
		}
		for _, s := range sums {
			out = append(out, toSPKRef(s))
		}
	}
	return out, nil
}

// AllBPCSummaries is the BPC counterpart of AllSPKSummaries.
func (r *Registry) AllBPCSummaries() ([]BPCSummaryRef, error) {
	var out []BPCSummaryRef
	for i := len(r.bpc) - 1; i >= 0; i-- {
		sums, err := r.bpc[i].d.BPCSummaries()
		if err != nil {
			return nil, err
		}
		for _, s := range sums {
			out = append(out, toBPCRef(s))
		}
	}
	return out, nil
}

// HasSPK reports whether any SPK kernel is loaded.
func (r *Registry) HasSPK() bool { return len(r.spk) > 0 }

// HasBPC reports whether any BPC kernel is loaded.
func (r *Registry) HasBPC() bool { return len(r.bpc) > 0 }
