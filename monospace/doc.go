/*
Package monospace implements a simple shaper backend for monospace output.

It is the universal fallback backend: it applies to any segment properties
and cannot fail, which makes it the last entry of the default backend order.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphing.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("glyphing.glyphs")
}
