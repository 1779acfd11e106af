// Package pathsolve implements the frame-graph root-finding and
// least-common-ancestor algorithms (C8): two independent trees, one over
// ephemeris centers (SPK summaries), one over orientation parents (BPC
// summaries plus the planetary/fixed-frame store), both bounded to depth 8.
package pathsolve

import (
	"errors"
	"math"

	"github.com/hallorbit/spicekernel/bodies"
	"github.com/hallorbit/spicekernel/kernel"
	"github.com/hallorbit/spicekernel/kernelerr"
	"github.com/hallorbit/spicekernel/planetary"
)

// MaxDepth bounds every path-to-root walk, per spec.md §4.5.
const MaxDepth = 8

// Solver resolves frame-graph paths against a live kernel registry and
// planetary/fixed-frame store. It holds no state of its own besides these
// pointers, so paths are always recomputed against current loads.
type Solver struct {
	Kernels *kernel.Registry
	Planets *planetary.Store
	Fixed   *planetary.FixedFrameStore
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// FindEphemerisRoot iterates every loaded SPK summary and returns the
// minimum absolute center id seen, short-circuiting at 0 (SSB).
func (s *Solver) FindEphemerisRoot() (int32, error) {
	sums, err := s.Kernels.AllSPKSummaries()
	if err != nil {
		return 0, err
	}
	if len(sums) == 0 {
		return 0, kernelerr.ErrNoEphemerisLoaded
	}
	root := int32(math.MaxInt32)
	for _, sum := range sums {
		c := absInt32(sum.Center)
		if c < root {
			root = c
		}
		if root == 0 {
			break
		}
	}
	return root, nil
}

// FindOrientationRoot iterates every loaded BPC summary's inertial frame id
// and every planetary datum's parent orientation id, returning the minimum
// absolute id seen, short-circuiting at 1 (J2000). ECLIPJ2000 collapses to
// J2000 before comparison since that edge is builtin.
func (s *Solver) FindOrientationRoot() (int32, error) {
	found := false
	root := int32(math.MaxInt32)
	consider := func(id int32) {
		if id == bodies.ECLIPJ2000 {
			id = bodies.J2000
		}
		a := absInt32(id)
		if !found || a < root {
			root = a
		}
		found = true
	}

	bsums, err := s.Kernels.AllBPCSummaries()
	if err != nil {
		return 0, err
	}
	for _, b := range bsums {
		consider(b.InertialFrame)
		if root == bodies.J2000 {
			break
		}
	}
	if root != bodies.J2000 {
		for _, id := range s.Planets.AllParentIDs() {
			consider(id)
			if root == bodies.J2000 {
				break
			}
		}
	}
	if !found {
		return 0, kernelerr.ErrNoOrientationsLoaded
	}
	return root, nil
}

// EphemerisPathToRoot walks source's center-id chain at et until it reaches
// root, returning the sequence of centers visited (root included last). An
// empty, nil-error result means source is already the root.
func (s *Solver) EphemerisPathToRoot(source, root int32, et float64) ([]int32, error) {
	if source == root {
		return nil, nil
	}
	var path []int32
	cur := source
	for depth := 0; depth < MaxDepth; depth++ {
		m, err := s.Kernels.SummaryFromIDAtEpoch(cur, et)
		if err != nil {
			return nil, err
		}
		next := m.Summary.Center
		path = append(path, next)
		if next == root {
			return path, nil
		}
		cur = next
	}
	return nil, kernelerr.ErrMaxRecursionDepth
}

// orientationParentAt resolves id's parent orientation id at et, trying the
// BPC registry first and falling back to the planetary/fixed-frame store
// only when id is not found as a subject in any loaded summary. An id
// unresolved in both sources is a hard error.
func (s *Solver) orientationParentAt(id int32, et float64) (int32, error) {
	if id == bodies.ECLIPJ2000 {
		return bodies.J2000, nil
	}
	m, err := s.Kernels.BPCSummaryFromIDAtEpoch(id, et)
	if err == nil {
		return m.Summary.InertialFrame, nil
	}
	var notFound *kernelerr.SummaryIdError
	if !errors.As(err, &notFound) {
		return 0, err
	}
	if parent, ok := s.Planets.ParentOf(id); ok {
		return parent, nil
	}
	if parent, ok := s.Fixed.ParentOf(id); ok {
		return parent, nil
	}
	return 0, &kernelerr.SummaryIdError{Kind: kernelerr.BPC, ID: id}
}

// OrientationPathToRoot is the orientation-tree counterpart of
// EphemerisPathToRoot.
func (s *Solver) OrientationPathToRoot(source, root int32, et float64) ([]int32, error) {
	if source == root {
		return nil, nil
	}
	var path []int32
	cur := source
	for depth := 0; depth < MaxDepth; depth++ {
		next, err := s.orientationParentAt(cur, et)
		if err != nil {
			return nil, err
		}
		path = append(path, next)
		if next == root {
			return path, nil
		}
		cur = next
	}
	return nil, kernelerr.ErrMaxRecursionDepth
}
