package kernel

import "github.com/hallorbit/spicekernel/daf"

func toSPKRef(s daf.SPKSummary) SPKSummaryRef {
	return SPKSummaryRef{
		Name: s.Name, StartET: s.StartET, EndET: s.EndET,
		Target: s.Target, Center: s.Center, Frame: s.Frame,
		DataType: s.DataType, StartIdx: s.StartIdx, EndIdx: s.EndIdx,
	}
}

func toBPCRef(s daf.BPCSummary) BPCSummaryRef {
	return BPCSummaryRef{
		Name: s.Name, StartET: s.StartET, EndET: s.EndET,
		Frame: s.Frame, InertialFrame: s.InertialFrame,
		DataType: s.DataType, StartIdx: s.StartIdx, EndIdx: s.EndIdx,
	}
}
