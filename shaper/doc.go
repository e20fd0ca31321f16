/*
Package shaper orchestrates shaping of text buffers over a set of
interchangeable shaper backends.

Shaping a buffer selects a shape plan, derived from the buffer's segment
properties, the typecase, the requested features and the backend order.
Plans are cached process-wide: repeated calls with equal parameters reuse
the plan built for the first call. Executing a plan tries the backends of
its order one at a time; the first backend which is applicable to the
segment and shapes without failure wins.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shaper

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphing.shape'.
func tracer() tracing.Trace {
	return tracing.Select("glyphing.shape")
}
