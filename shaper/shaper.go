package shaper

import (
	"github.com/npillmayer/glyphing"
	"github.com/npillmayer/glyphing/core/dimen"
	"github.com/npillmayer/glyphing/core/font"
)

// ShapeFull shapes a buffer using a typecase, turning its Unicode content
// to positioned glyphs. If shaperList is non-nil, the named backends will
// be tried in the given order; otherwise the full backend list (see
// ListShapers) is used. An explicit empty list means no backend is tried
// and shaping fails.
//
// The buffer is mutated in place. On failure, its state is whatever the
// last attempted backend left it in; callers must not assume the pre-call
// content has been restored.
//
// Returns false if all backends failed (or none was tried), true otherwise.
func ShapeFull(typecase *font.TypeCase, buf *glyphing.Buffer, features []glyphing.FeatureRange, shaperList []string) bool {
	if typecase == nil || buf == nil {
		return false
	}
	order := shaperList
	if order == nil {
		order = ListShapers()
	}
	key := planKey(typecase, buf.Props, features, order)
	plan := globalPlanCache.acquire(key, func() *shapePlan {
		return &shapePlan{order: resolveShapers(order)}
	})
	defer globalPlanCache.release(plan)
	return plan.execute(typecase, buf, features)
}

// Shape shapes a buffer using a typecase with the default backend order.
// Shaping is best effort: callers who need to know whether it succeeded
// must use ShapeFull.
//
// If features is non-empty, it controls the features applied during
// shaping. If two features have the same tag but overlapping ranges, the
// value of the feature with the higher index takes precedence.
func Shape(typecase *font.TypeCase, buf *glyphing.Buffer, features []glyphing.FeatureRange) {
	ShapeFull(typecase, buf, features, nil)
}

// Justify shapes a buffer (see Shape for details) and splits the shaped
// output into lines bounded by targets, as groundwork for per-line
// justification. Lines break at the glyph the typecase maps the space
// character to. If the shaped buffer takes more lines than there are
// target lengths, splitting continues with the last value from targets.
//
// An empty targets slice opts out of splitting; the buffer is then left
// exactly as a plain Shape call would leave it.
func Justify(typecase *font.TypeCase, buf *glyphing.Buffer, targets []dimen.DU, features []glyphing.FeatureRange) {
	// First pass: ordinary shaping without justification
	if ok := ShapeFull(typecase, buf, features, nil); !ok {
		return
	}
	if len(targets) == 0 {
		return
	}
	space, ok := typecase.NominalGlyph(' ')
	if !ok {
		tracer().Infof("typecase has no space glyph, lines will break hard")
		space = font.NoGlyph // must not match .notdef glyphs
	}
	glyphing.SplitLines(buf, targets, space)
	// TODO(justification): redistribute inter-glyph spacing per line so that
	// each line matches its target length
}
