package glyphing

import (
	"testing"

	"github.com/npillmayer/glyphing/core/dimen"
	"github.com/npillmayer/glyphing/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const brk font.GlyphIndex = 999 // stand-in for a space glyph

// testBuffer builds a shaped buffer from a pattern string: every rune
// becomes a glyph of advance 10, a blank becomes the break glyph.
func testBuffer(pattern string) *Buffer {
	buf := NewBuffer(SegmentProps{})
	buf.AddString(pattern)
	glyphs := make([]ShapedGlyph, 0, len(pattern))
	var w dimen.DU
	for i, r := range pattern {
		g := ShapedGlyph{ClusterID: i, CodePoint: r, XAdvance: 10, GID: font.GlyphIndex(r)}
		if r == ' ' {
			g.GID = brk
		}
		glyphs = append(glyphs, g)
		w += g.XAdvance
	}
	buf.SetGlyphs(glyphs, w, 0, 0)
	return buf
}

func TestSplitNoTargets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	buf := testBuffer("aa bb")
	segs := SplitLines(buf, nil, brk)
	if segs != nil {
		t.Errorf("expected no segments for empty target list, have %v", segs)
	}
	if buf.Lines() != nil {
		t.Errorf("expected buffer lines to stay unset, have %v", buf.Lines())
	}
}

func TestSplitAtBreakGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	// advances: 10 each; cumulative advance crosses the target exactly at
	// the break glyph (30 at index 2)
	buf := testBuffer("aa aa aa")
	segs := SplitLines(buf, []dimen.DU{30}, brk)
	if len(segs) != 3 {
		t.Fatalf("expected 3 lines, have %d: %v", len(segs), segs)
	}
	if segs[0] != (LineSegment{0, 3}) {
		t.Errorf("expected line 1 to end right after the break glyph, is %v", segs[0])
	}
	if segs[1] != (LineSegment{3, 6}) {
		t.Errorf("expected line 2 to end right after the break glyph, is %v", segs[1])
	}
	if segs[2] != (LineSegment{6, 8}) {
		t.Errorf("expected line 3 to hold the remainder, is %v", segs[2])
	}
}

func TestSplitBackOffToBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	// target 45 overflows in the middle of the second word; the cut has to
	// back off to the break glyph at index 2
	buf := testBuffer("aa bbbb")
	segs := SplitLines(buf, []dimen.DU{45}, brk)
	if len(segs) != 2 {
		t.Fatalf("expected 2 lines, have %d: %v", len(segs), segs)
	}
	if segs[0] != (LineSegment{0, 3}) {
		t.Errorf("expected back-off to the break glyph, line 1 is %v", segs[0])
	}
	if segs[1] != (LineSegment{3, 7}) {
		t.Errorf("expected line 2 to hold the second word, is %v", segs[1])
	}
}

func TestSplitHardBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	// no break opportunity anywhere: degrade to hard cuts at the overflow
	// points
	buf := testBuffer("aaaaa")
	segs := SplitLines(buf, []dimen.DU{25}, brk)
	if len(segs) != 3 {
		t.Fatalf("expected 3 lines, have %d: %v", len(segs), segs)
	}
	if segs[0] != (LineSegment{0, 2}) || segs[1] != (LineSegment{2, 4}) || segs[2] != (LineSegment{4, 5}) {
		t.Errorf("expected hard cuts after every 2 glyphs, have %v", segs)
	}
}

func TestSplitLastTargetRepeats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	// two targets, buffer requires 4 lines: lines 3 and 4 must reuse the
	// last target length
	buf := testBuffer("aaaaaa")
	segs := SplitLines(buf, []dimen.DU{30, 15}, brk)
	if len(segs) != 4 {
		t.Fatalf("expected 4 lines, have %d: %v", len(segs), segs)
	}
	want := []LineSegment{{0, 3}, {3, 4}, {4, 5}, {5, 6}}
	for i, seg := range segs {
		if seg != want[i] {
			t.Errorf("expected line %d to be %v, is %v", i+1, want[i], seg)
		}
	}
	if buf.Lines() == nil {
		t.Error("expected segments to be stored on the buffer")
	}
}

func TestSplitBreakAtOverflowPoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	// the glyph whose advance overflows the target is itself the break
	// glyph (index 3, cumulative advance 40 > 35): it is a break
	// opportunity and must end line 1, not start line 2
	buf := testBuffer("aaa b")
	segs := SplitLines(buf, []dimen.DU{35}, brk)
	if len(segs) != 2 {
		t.Fatalf("expected 2 lines, have %d: %v", len(segs), segs)
	}
	if segs[0] != (LineSegment{0, 4}) {
		t.Errorf("expected line 1 to end at the overflowing break glyph, is %v", segs[0])
	}
	if segs[1] != (LineSegment{4, 5}) {
		t.Errorf("expected line 2 to hold the second word, is %v", segs[1])
	}
}

func TestSplitVertical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	// a top-to-bottom buffer advances in y (downwards, so negative); the
	// splitter must accumulate y-advance magnitudes
	buf := NewBuffer(SegmentProps{Direction: TopToBottom})
	buf.AddString("aaaaa")
	glyphs := make([]ShapedGlyph, 0, 5)
	for i, r := range "aaaaa" {
		glyphs = append(glyphs, ShapedGlyph{
			ClusterID: i,
			CodePoint: r,
			YAdvance:  -10,
			GID:       font.GlyphIndex(r),
		})
	}
	buf.SetGlyphs(glyphs, 0, 50, 0)
	segs := SplitLines(buf, []dimen.DU{25}, brk)
	if len(segs) != 3 {
		t.Fatalf("expected 3 lines, have %d: %v", len(segs), segs)
	}
	if segs[0] != (LineSegment{0, 2}) || segs[1] != (LineSegment{2, 4}) || segs[2] != (LineSegment{4, 5}) {
		t.Errorf("expected hard cuts after every 2 glyphs, have %v", segs)
	}
}

func TestSplitOversizedGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	// a single glyph wider than the target must still produce progress
	buf := testBuffer("ab")
	segs := SplitLines(buf, []dimen.DU{5}, brk)
	if len(segs) != 2 {
		t.Fatalf("expected 2 lines, have %d: %v", len(segs), segs)
	}
	if segs[0] != (LineSegment{0, 1}) || segs[1] != (LineSegment{1, 2}) {
		t.Errorf("expected one glyph per line, have %v", segs)
	}
}
