package glyphing

import (
	"fmt"

	"github.com/npillmayer/glyphing/core/dimen"
	"github.com/npillmayer/glyphing/core/font"
)

// LineSegment is a half-open index range [Start,End) into the glyph content
// of a shaped buffer, denoting one line.
type LineSegment struct {
	Start, End int
}

func (seg LineSegment) String() string {
	return fmt.Sprintf("[%d,%d)", seg.Start, seg.End)
}

// SplitLines partitions the glyph content of a shaped buffer into lines,
// bounded by a sequence of target lengths. Lines break at occurrences of
// breakGlyph, which ends its line. targets are consumed one per line; once
// exhausted, the last target length is used for every subsequent line.
//
// When a line's running advance would exceed its target length, the line is
// cut at the most recent occurrence of breakGlyph at or before the overflow
// point. If the line contains no break opportunity, it is cut hard at the
// overflow point.
//
// The advance accumulated per glyph follows the buffer's direction: x-advances
// for horizontal text, y-advance magnitudes for vertical text.
//
// An empty targets slice is an explicit opt-out: the buffer is left
// untouched and nil is returned. Otherwise the produced segments are stored
// on the buffer and returned. No glyph data is copied or altered.
func SplitLines(buf *Buffer, targets []dimen.DU, breakGlyph font.GlyphIndex) []LineSegment {
	if buf == nil || len(targets) == 0 || !buf.IsShaped() {
		return nil
	}
	glyphs := buf.Glyphs()
	if len(glyphs) == 0 {
		return nil
	}
	target := func(n int) dimen.DU {
		if n < len(targets) {
			return targets[n]
		}
		return targets[len(targets)-1] // last target repeats
	}
	advance := func(g ShapedGlyph) dimen.DU {
		if buf.Props.Direction.IsVertical() {
			if g.YAdvance < 0 {
				return -g.YAdvance
			}
			return g.YAdvance
		}
		return g.XAdvance
	}
	var segs []LineSegment
	start, line := 0, 0
	running := dimen.Zero
	lastBreak := -1
	i := 0
	for i < len(glyphs) {
		g := glyphs[i]
		if g.GID == breakGlyph {
			lastBreak = i // a break right at the overflow point still counts
		}
		if running+advance(g) > target(line) && i > start {
			end := i // hard cut at overflow point
			if lastBreak >= start {
				end = lastBreak + 1 // break glyph ends the line
			}
			segs = append(segs, LineSegment{Start: start, End: end})
			start = end
			line++
			running = 0
			lastBreak = -1
			i = start // glyphs after the cut belong to the next line
			continue
		}
		running += advance(g)
		i++
	}
	segs = append(segs, LineSegment{Start: start, End: len(glyphs)})
	buf.lines = segs
	return segs
}
