// Package kernel implements the ordered, aliased SPK/BPC registries (C6):
// load/unload/swap with order-preserving removal and high-water-mark
// buffer reuse, reverse-insertion-order summary lookup (so the most
// recently loaded kernel shadows earlier ones), and per-id coverage
// domains.
package kernel

import (
	"fmt"
	"os"
	"time"

	"github.com/hallorbit/spicekernel/daf"
	"github.com/hallorbit/spicekernel/kernelerr"
)

// entry is one loaded kernel: its alias, its high-water-mark buffer, and
// the parsed DAF view over it. buf may be larger than the DAF actually
// needs; d always views buf[:len] at the time it was parsed.
type entry struct {
	alias string
	buf   []byte
	d     *daf.DAF
}

// Registry holds the two ordered kernel maps (spec.md §4.3): one for SPK
// (ephemeris) kernels, one for BPC (orientation) kernels. The zero value
// is a usable, empty registry.
type Registry struct {
	spk []*entry
	bpc []*entry
}

func (r *Registry) slice(kind kernelerr.Kind) *[]*entry {
	if kind == kernelerr.SPK {
		return &r.spk
	}
	return &r.bpc
}

func indexOfAlias(entries []*entry, alias string) int {
	for i, e := range entries {
		if e.alias == alias {
			return i
		}
	}
	return -1
}

// LoadAs parses data as a DAF of the given kind and inserts it under alias
// (defaulting to the current wall-clock time, RFC3339Nano, when alias is
// empty). Replacing an existing alias logs a warning to stderr and
// replaces the old entry at the same position, rather than moving it.
func (r *Registry) LoadAs(kind kernelerr.Kind, data []byte, alias string) error {
	d, err := daf.Parse(data)
	if err != nil {
		return err
	}
	if d.Kind() != kind {
		return &kernelerr.UnsupportedIdentifier{Loci: string(d.Kind())}
	}
	if alias == "" {
		alias = time.Now().Format(time.RFC3339Nano)
	}
	es := r.slice(kind)
	e := &entry{alias: alias, buf: data, d: d}
	if i := indexOfAlias(*es, alias); i >= 0 {
		fmt.Fprintf(os.Stderr, "kernel: alias %q already loaded, replacing\n", alias)
		(*es)[i] = e
		return nil
	}
	*es = append(*es, e)
	return nil
}

// Unload removes alias from the registry, preserving the insertion order
// of the remaining entries.
func (r *Registry) Unload(kind kernelerr.Kind, alias string) error {
	es := r.slice(kind)
	i := indexOfAlias(*es, alias)
	if i < 0 {
		return &kernelerr.AliasNotFound{Alias: alias}
	}
	*es = append((*es)[:i], (*es)[i+1:]...)
	return nil
}

// Swap replaces the bytes backing alias with newBytes and renames it to
// newAlias, reusing the existing buffer when it is large enough
// ("high-water-mark": the buffer never shrinks below the largest size it
// has held) and preserving the entry's position via order-preserving
// removal and re-insertion at the same index.
func (r *Registry) Swap(kind kernelerr.Kind, alias string, newBytes []byte, newAlias string) error {
	es := r.slice(kind)
	i := indexOfAlias(*es, alias)
	if i < 0 {
		return &kernelerr.AliasNotFound{Alias: alias}
	}
	old := (*es)[i]
	var buf []byte
	if cap(old.buf) >= len(newBytes) {
		buf = old.buf[:len(newBytes)]
	} else {
		buf = make([]byte, len(newBytes))
	}
	copy(buf, newBytes)
	d, err := daf.Parse(buf)
	if err != nil {
		return err
	}
	if newAlias == "" {
		newAlias = alias
	}
	(*es)[i] = &entry{alias: newAlias, buf: buf, d: d}
	return nil
}

// Len reports how many kernels of kind are currently loaded.
func (r *Registry) Len(kind kernelerr.Kind) int { return len(*r.slice(kind)) }
