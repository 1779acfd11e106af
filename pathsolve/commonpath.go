package pathsolve

// CommonPath is the result of the least-common-ancestor search: the number
// of hops in each direction is implied by len(FromHops)/len(ToHops);
// FromHops holds the from-path nodes up to and including the LCA, ToHops the
// to-path nodes likewise, and LCA names the shared id.
type CommonPath struct {
	FromHops []int32
	ToHops   []int32
	LCA      int32
}

// commonPath implements spec.md §4.5's common-path algorithm given the two
// full paths-to-root (each ending in the tree's root). It handles the four
// trivial cases explicitly, then the general scan.
func commonPath(fromID, toID int32, pathFrom, pathTo []int32) CommonPath {
	if len(pathFrom) == 0 && len(pathTo) == 0 {
		// Both frames are already the root (or each other).
		return CommonPath{LCA: fromID}
	}
	if len(pathFrom) == 0 {
		// fromID is itself an ancestor somewhere on pathTo, or is the root.
		return CommonPath{ToHops: trimTo(pathTo, fromID), LCA: fromID}
	}
	if len(pathTo) == 0 {
		return CommonPath{FromHops: trimTo(pathFrom, toID), LCA: toID}
	}
	if fromID == toID {
		return CommonPath{LCA: fromID}
	}

	for _, node := range pathTo {
		if node == fromID {
			return CommonPath{ToHops: trimTo(pathTo, fromID), LCA: fromID}
		}
	}
	for _, node := range pathFrom {
		if node == toID {
			return CommonPath{FromHops: trimTo(pathFrom, toID), LCA: toID}
		}
	}

	var buf []int32
	for _, node := range pathFrom {
		buf = append(buf, node)
		for _, other := range pathTo {
			if node == other {
				return CommonPath{FromHops: buf, ToHops: trimTo(pathTo, node), LCA: node}
			}
		}
	}
	// Both paths terminate at the tree root; the root is the LCA.
	root := pathFrom[len(pathFrom)-1]
	return CommonPath{FromHops: pathFrom, ToHops: pathTo, LCA: root}
}

// trimTo returns the prefix of path up to and including target.
func trimTo(path []int32, target int32) []int32 {
	for i, node := range path {
		if node == target {
			return path[:i+1]
		}
	}
	return path
}

// EphemerisCommonPath computes the least-common-ancestor split for
// translating between two ephemeris ids at et.
func (s *Solver) EphemerisCommonPath(fromID, toID int32, et float64) (CommonPath, error) {
	root, err := s.FindEphemerisRoot()
	if err != nil {
		return CommonPath{}, err
	}
	pathFrom, err := s.EphemerisPathToRoot(fromID, root, et)
	if err != nil {
		return CommonPath{}, err
	}
	pathTo, err := s.EphemerisPathToRoot(toID, root, et)
	if err != nil {
		return CommonPath{}, err
	}
	return commonPath(fromID, toID, pathFrom, pathTo), nil
}

// OrientationCommonPath is the orientation-tree counterpart of
// EphemerisCommonPath.
func (s *Solver) OrientationCommonPath(fromID, toID int32, et float64) (CommonPath, error) {
	root, err := s.FindOrientationRoot()
	if err != nil {
		return CommonPath{}, err
	}
	pathFrom, err := s.OrientationPathToRoot(fromID, root, et)
	if err != nil {
		return CommonPath{}, err
	}
	pathTo, err := s.OrientationPathToRoot(toID, root, et)
	if err != nil {
		return CommonPath{}, err
	}
	return commonPath(fromID, toID, pathFrom, pathTo), nil
}
