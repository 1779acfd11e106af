package kernel

import "github.com/hallorbit/spicekernel/segment"

func (r *Registry) spkEntryAt(regIndex int) *entry {
	n := len(r.spk)
	return r.spk[n-1-regIndex]
}

func (r *Registry) bpcEntryAt(regIndex int) *entry {
	n := len(r.bpc)
	return r.bpc[n-1-regIndex]
}

// EvaluatorForSPK builds the typed segment.Evaluator backing an SPK match,
// reading its [start_idx,end_idx] float range from the owning DAF.
func (r *Registry) EvaluatorForSPK(m SPKMatch) (segment.Evaluator, error) {
	e := r.spkEntryAt(m.RegistryIndex)
	data, err := e.d.DataDoubles(m.Summary.StartIdx, m.Summary.EndIdx)
	if err != nil {
		return nil, err
	}
	return segment.New(m.Summary.DataType, m.Summary.StartET, m.Summary.EndET, data)
}

// EvaluatorForBPC is the BPC counterpart of EvaluatorForSPK.
func (r *Registry) EvaluatorForBPC(m BPCMatch) (segment.Evaluator, error) {
	e := r.bpcEntryAt(m.RegistryIndex)
	data, err := e.d.DataDoubles(m.Summary.StartIdx, m.Summary.EndIdx)
	if err != nil {
		return nil, err
	}
	return segment.NewBPC(m.Summary.DataType, m.Summary.StartET, m.Summary.EndET, data)
}
