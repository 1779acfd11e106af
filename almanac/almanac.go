// Package almanac is the top-level facade (C9): it assembles a
// kernel.Registry, a planetary.Store and planetary.FixedFrameStore, and a
// pathsolve.Solver into the small public surface spec.md §6 names —
// load/unload/swap and translate/rotate/transform/domain — and implements
// the translation and rotation composition engine.
package almanac

import (
	"github.com/hallorbit/spicekernel/kernel"
	"github.com/hallorbit/spicekernel/kernelerr"
	"github.com/hallorbit/spicekernel/pathsolve"
	"github.com/hallorbit/spicekernel/planetary"
)

// Aberration selects the light-time/stellar aberration correction applied
// to a translate/transform query. This core implements only geometric:
// any other value is accepted and recorded but produces the geometric
// result, per spec.md §4.6.
type Aberration int

const (
	AberrationNone Aberration = iota
	AberrationLightTime
	AberrationLightTimeStellar
)

// Almanac is the assembled core: a kernel registry plus the orientation
// side-stores, wired into a path solver. The zero value is not usable;
// construct with New.
type Almanac struct {
	Kernels *kernel.Registry
	Planets *planetary.Store
	Fixed   *planetary.FixedFrameStore
	paths   *pathsolve.Solver
}

// New assembles an Almanac with fresh, empty stores.
func New() *Almanac {
	a := &Almanac{
		Kernels: &kernel.Registry{},
		Planets: planetary.NewStore(),
		Fixed:   planetary.NewFixedFrameStore(),
	}
	a.paths = &pathsolve.Solver{Kernels: a.Kernels, Planets: a.Planets, Fixed: a.Fixed}
	return a
}

// LoadSPK loads an SPK DAF under alias (see kernel.Registry.LoadAs).
func (a *Almanac) LoadSPK(data []byte, alias string) error {
	return a.Kernels.LoadAs(kernelerr.SPK, data, alias)
}

// LoadBPC loads a BPC DAF under alias.
func (a *Almanac) LoadBPC(data []byte, alias string) error {
	return a.Kernels.LoadAs(kernelerr.BPC, data, alias)
}

// Unload removes alias from the registry of the given kind.
func (a *Almanac) Unload(kind kernelerr.Kind, alias string) error {
	return a.Kernels.Unload(kind, alias)
}

// Swap replaces alias's bytes, reusing its buffer per the high-water-mark
// policy, and renames it to newAlias.
func (a *Almanac) Swap(kind kernelerr.Kind, alias string, newBytes []byte, newAlias string) error {
	return a.Kernels.Swap(kind, alias, newBytes, newAlias)
}

// Domain returns the union of coverage for id across all loaded SPKs.
func (a *Almanac) Domain(id int32) (start, end float64, err error) {
	return a.Kernels.Domain(id)
}

// Domains unions coverage for every id across all loaded SPKs.
func (a *Almanac) Domains() (map[int32][2]float64, error) {
	return a.Kernels.Domains()
}
