package almanac

import (
	"github.com/hallorbit/spicekernel/bodies"
	"github.com/hallorbit/spicekernel/kernelerr"
	"github.com/hallorbit/spicekernel/planetary"
	"github.com/hallorbit/spicekernel/spacetime"
)

// translateToParent evaluates id's SPK segment at et and returns its
// position/velocity relative to its summary's center, together with that
// center's id, the single hop the composition loops accumulate.
func (a *Almanac) translateToParent(id int32, et float64) (spacetime.Vec3, spacetime.Vec3, int32, error) {
	m, err := a.Kernels.SummaryFromIDAtEpoch(id, et)
	if err != nil {
		return spacetime.Vec3{}, spacetime.Vec3{}, 0, err
	}
	ev, err := a.Kernels.EvaluatorForSPK(m)
	if err != nil {
		return spacetime.Vec3{}, spacetime.Vec3{}, 0, err
	}
	pos, vel, err := ev.Evaluate(et)
	if err != nil {
		return spacetime.Vec3{}, spacetime.Vec3{}, 0, err
	}
	return pos, vel, m.Summary.Center, nil
}

// accumulateToLCA walks up to hopCount hops from start toward lca via
// translateToParent, summing position and velocity along the way. It stops
// early if it reaches lca before exhausting hopCount, and reports the node
// it actually stopped at so callers can detect a disjoint path.
func (a *Almanac) accumulateToLCA(start, lca int32, hopCount int, et float64) (spacetime.Vec3, spacetime.Vec3, int32, error) {
	var pos, vel spacetime.Vec3
	cur := start
	for i := 0; i < hopCount; i++ {
		if cur == lca {
			break
		}
		p, v, parent, err := a.translateToParent(cur, et)
		if err != nil {
			return spacetime.Vec3{}, spacetime.Vec3{}, cur, err
		}
		pos = pos.Add(p)
		vel = vel.Add(v)
		cur = parent
	}
	return pos, vel, cur, nil
}

// Translate computes the position/velocity of from relative to to at et,
// per spec.md §4.6's accumulate-to-least-common-ancestor algorithm.
// Aberration beyond AberrationNone is recorded but not applied (§4.6).
func (a *Almanac) Translate(from, to spacetime.Frame, et float64, _ Aberration) (spacetime.Cartesian, error) {
	if from.TranslationEqual(to) {
		return spacetime.Cartesian{Epoch: spacetime.Epoch(et), Frame: to}, nil
	}
	cp, err := a.paths.EphemerisCommonPath(from.EphemerisID, to.EphemerisID, et)
	if err != nil {
		return spacetime.Cartesian{}, err
	}
	fwdPos, fwdVel, fwdEnd, err := a.accumulateToLCA(from.EphemerisID, cp.LCA, len(cp.FromHops), et)
	if err != nil {
		return spacetime.Cartesian{}, err
	}
	bwdPos, bwdVel, bwdEnd, err := a.accumulateToLCA(to.EphemerisID, cp.LCA, len(cp.ToHops), et)
	if err != nil {
		return spacetime.Cartesian{}, err
	}
	if fwdEnd != cp.LCA || bwdEnd != cp.LCA {
		return spacetime.Cartesian{}, &kernelerr.TranslationOrigin{From: from.EphemerisID, To: to.EphemerisID, Epoch: et}
	}
	return spacetime.Cartesian{
		Position: fwdPos.Sub(bwdPos),
		Velocity: fwdVel.Sub(bwdVel),
		Epoch:    spacetime.Epoch(et),
		Frame:    to,
	}, nil
}

// rotationToParent resolves id's rotation to its orientation parent at et.
// ECLIPJ2000 is a builtin edge, checked first since no loaded BPC or
// planetary datum can ever supply it (mirrors pathsolve's
// orientationParentAt, which short-circuits the same id for path-finding).
// Otherwise it tries a loaded BPC angle-triple segment, then the planetary
// pole model, then an Euler fixed frame. An id resolved by none of these is
// a hard error (mirrors pathsolve's orientationParentAt fallback order).
func (a *Almanac) rotationToParent(id int32, et float64) (spacetime.DCM, error) {
	if id == bodies.ECLIPJ2000 {
		return planetary.EclipJ2000DCM(), nil
	}
	if dcm, ok, err := a.bpcRotationToParent(id, et); ok || err != nil {
		return dcm, err
	}
	if dcm, err := a.Planets.DCMToParent(id, et); err == nil {
		return dcm, nil
	}
	return a.Fixed.DCMToParent(id)
}

func (a *Almanac) bpcRotationToParent(id int32, et float64) (spacetime.DCM, bool, error) {
	m, err := a.Kernels.BPCSummaryFromIDAtEpoch(id, et)
	if err != nil {
		return spacetime.DCM{}, false, nil
	}
	ev, err := a.Kernels.EvaluatorForBPC(m)
	if err != nil {
		return spacetime.DCM{}, true, err
	}
	angles, rates, err := ev.Evaluate(et)
	if err != nil {
		return spacetime.DCM{}, true, err
	}
	dcm := eulerDCMFromAngles(angles, rates)
	dcm.From, dcm.To = id, m.Summary.InertialFrame
	return dcm, true, nil
}

// rotateAccumulateToLCA composes hopCount rotation hops from start toward
// lca, using the transport theorem via spacetime.DCM.Compose.
func (a *Almanac) rotateAccumulateToLCA(start, lca int32, hopCount int, et float64) (spacetime.DCM, error) {
	dcm := spacetime.IdentityDCM(start)
	cur := start
	for i := 0; i < hopCount; i++ {
		if cur == lca {
			break
		}
		hop, err := a.rotationToParent(cur, et)
		if err != nil {
			return spacetime.DCM{}, err
		}
		dcm = dcm.Compose(hop)
		cur = hop.To
	}
	if cur != lca {
		return spacetime.DCM{}, &kernelerr.RotationOrigin{From: start, To: lca, Epoch: et}
	}
	return dcm, nil
}

// Rotate computes the DCM (and its rate) from from's orientation to to's,
// mirroring Translate's accumulate-to-LCA structure but composing via the
// transport theorem: fwd maps from->lca, bwd maps to->lca, and the result
// is fwd composed with bwd's inverse (transpose). Every hop is already
// labeled child->parent, so the only label check is at the join: if fwd.To
// and bwd.To differ, the result is InvalidRotation.
func (a *Almanac) Rotate(from, to spacetime.Frame, et float64) (spacetime.DCM, error) {
	if from.RotationEqual(to) {
		return spacetime.IdentityDCM(to.OrientationID), nil
	}
	cp, err := a.paths.OrientationCommonPath(from.OrientationID, to.OrientationID, et)
	if err != nil {
		return spacetime.DCM{}, err
	}
	fwd, err := a.rotateAccumulateToLCA(from.OrientationID, cp.LCA, len(cp.FromHops), et)
	if err != nil {
		return spacetime.DCM{}, err
	}
	bwd, err := a.rotateAccumulateToLCA(to.OrientationID, cp.LCA, len(cp.ToHops), et)
	if err != nil {
		return spacetime.DCM{}, err
	}
	if fwd.To != bwd.To {
		return spacetime.DCM{}, &kernelerr.InvalidRotation{
			Action: "rotate", From1: fwd.From, To1: fwd.To, From2: bwd.From, To2: bwd.To,
		}
	}
	return fwd.Compose(bwd.Transpose()), nil
}

// Transform composes Translate then Rotate: the resulting Cartesian's
// position/velocity are rotated into to's orientation.
func (a *Almanac) Transform(from, to spacetime.Frame, et float64, ab Aberration) (spacetime.Cartesian, error) {
	lin, err := a.Translate(from, to, et, ab)
	if err != nil {
		return spacetime.Cartesian{}, err
	}
	dcm, err := a.Rotate(from, to, et)
	if err != nil {
		return spacetime.Cartesian{}, err
	}
	pos := dcm.Rot.MulVec(lin.Position)
	vel := dcm.Rot.MulVec(lin.Velocity).Add(dcm.RotDT.MulVec(lin.Position))
	return spacetime.Cartesian{Position: pos, Velocity: vel, Epoch: spacetime.Epoch(et), Frame: to}, nil
}
