package shaper

import (
	"sync"

	"github.com/npillmayer/glyphing"
	"github.com/npillmayer/glyphing/harfbuzz"
	"github.com/npillmayer/glyphing/monospace"
)

// The set of shaper backends is fixed at build time and published lazily:
// the table and its name list are created at most once, on first use, and
// are immutable afterwards. Readers share the same slices without locking.

var shaperTableCreation sync.Once

var shaperTable []glyphing.Shaper // compiled-in backends, in priority order
var shaperNames []string          // published backend names, same order

func shapers() []glyphing.Shaper {
	shaperTableCreation.Do(func() {
		shaperTable = []glyphing.Shaper{
			harfbuzz.Shaper(),
			monospace.Shaper(0, nil),
		}
		names := make([]string, 0, len(shaperTable))
		for _, sh := range shaperTable {
			names = append(names, sh.Name())
		}
		shaperNames = names
		tracer().Infof("shaper backends: %v", shaperNames)
	})
	return shaperTable
}

// ListShapers retrieves the list of shaper backends compiled into the
// module, in priority order. The returned slice is shared and read-only;
// an empty list means no backends are available.
func ListShapers() []string {
	shapers()
	return shaperNames
}

// resolveShapers maps backend names to their registry instances, preserving
// the given order. Unknown names are skipped.
func resolveShapers(names []string) []glyphing.Shaper {
	table := shapers()
	order := make([]glyphing.Shaper, 0, len(names))
	for _, name := range names {
		found := false
		for _, sh := range table {
			if sh.Name() == name {
				order = append(order, sh)
				found = true
				break
			}
		}
		if !found {
			tracer().Infof("ignoring unknown shaper backend %q", name)
		}
	}
	return order
}
