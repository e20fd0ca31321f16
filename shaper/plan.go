package shaper

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/glyphing"
	"github.com/npillmayer/glyphing/core/font"
)

// A shapePlan binds the non-buffer parameters of a shaping request to an
// ordered backend attempt sequence. Plans are opaque to callers and shared:
// the cache deduplicates plans per equal key, and ownership follows an
// acquire/release protocol. Every acquisition must be balanced by exactly
// one release, on every exit path.
type shapePlan struct {
	key   string
	order []glyphing.Shaper
	refs  int32
}

// execute runs the plan against a live typecase and buffer. Backends are
// tried sequentially in the plan's order; the first one that is applicable
// to the buffer's segment properties and shapes without failure wins.
// Returns false if every backend declined or failed.
func (sp *shapePlan) execute(typecase *font.TypeCase, buf *glyphing.Buffer, features []glyphing.FeatureRange) bool {
	for _, sh := range sp.order {
		if !sh.WorksFor(buf.Props) {
			tracer().Debugf("shaper %s does not work for %v", sh.Name(), buf.Props)
			continue
		}
		if err := sh.Shape(typecase, buf, features); err != nil {
			tracer().Infof("shaper %s failed: %v", sh.Name(), err)
			continue
		}
		tracer().Debugf("buffer shaped by %s", sh.Name())
		return true
	}
	return false
}

// --- Plan cache ------------------------------------------------------------

// planCache is a content-addressed cache of shape plans. At most one plan
// is built per unique key, even under concurrent acquisition for the same
// key (per-entry single flight). The cache itself holds one reference to
// every plan it stores, so cached plans survive their clients.
type planCache struct {
	sync.Mutex
	plans *linkedhashmap.Map // plan key ⇒ *planEntry
}

type planEntry struct {
	building sync.Once
	plan     *shapePlan
}

func newPlanCache() *planCache {
	return &planCache{plans: linkedhashmap.New()}
}

var globalPlanCache = newPlanCache()

// acquire returns the plan for a key, building it via mk if the cache does
// not contain one yet. Acquire is idempotent per equal key: concurrent and
// repeated calls converge on the same plan instance.
func (pc *planCache) acquire(key string, mk func() *shapePlan) *shapePlan {
	pc.Lock()
	var entry *planEntry
	if e, ok := pc.plans.Get(key); ok {
		entry = e.(*planEntry)
	} else {
		entry = &planEntry{}
		pc.plans.Put(key, entry)
	}
	pc.Unlock()
	entry.building.Do(func() {
		entry.plan = mk()
		entry.plan.key = key
		entry.plan.refs = 1 // the cache's own reference
		tracer().Debugf("built shape plan for key %s", key)
	})
	atomic.AddInt32(&entry.plan.refs, 1)
	return entry.plan
}

// release gives up one acquisition of a plan. The plan stays cached; a
// release without matching acquire is a usage error.
func (pc *planCache) release(sp *shapePlan) {
	if sp == nil {
		return
	}
	if refs := atomic.AddInt32(&sp.refs, -1); refs < 1 {
		tracer().Errorf("shape plan released more often than acquired")
	}
}

// planKey derives the cache key for a shaping request: face identity,
// segment properties, features by value, the typecase's variation
// coordinates, and the effective backend order.
func planKey(typecase *font.TypeCase, props glyphing.SegmentProps, features []glyphing.FeatureRange, order []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%p", typecase.ScalableFontParent()) // face identity
	fmt.Fprintf(&sb, "|%v", props)
	for _, frng := range features {
		fmt.Fprintf(&sb, "|f:%s=%d@%d:%d", frng.Feature, frng.Value(), frng.Start, frng.End)
	}
	for _, coord := range typecase.VariationCoords() {
		fmt.Fprintf(&sb, "|c:%g", coord)
	}
	sb.WriteString("|")
	sb.WriteString(strings.Join(order, ","))
	return sb.String()
}
