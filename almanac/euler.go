package almanac

import (
	"github.com/hallorbit/spicekernel/planetary"
	"github.com/hallorbit/spicekernel/spacetime"
)

// eulerDCMFromAngles converts a BPC Type 2 segment's (RA, Dec, W) angle
// triple and rates (radians, radians/s) into a DCM via the shared
// NAIF-convention builder, per spec.md §4.2.6/§4.4.
func eulerDCMFromAngles(angles, rates spacetime.Vec3) spacetime.DCM {
	return planetary.EulerDCM(angles[0], angles[1], angles[2], rates[0], rates[1], rates[2])
}
