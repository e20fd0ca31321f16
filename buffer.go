package glyphing

import (
	"fmt"
	"strings"

	"github.com/npillmayer/glyphing/core/dimen"
	"golang.org/x/text/language"
)

// SegmentProps are the properties shared by all code-points of one shaping
// call: script, direction and language.
type SegmentProps struct {
	Script    language.Script // 4-letter ISO 15924 script identifier
	Direction Direction       // writing direction
	Language  language.Tag    // BCP 47 language tag
}

func (props SegmentProps) String() string {
	return fmt.Sprintf("[%s/%v/%s]", props.Script, props.Direction, props.Language)
}

// A Buffer holds a segment of text together with its segment properties.
// Shaping transitions the buffer's content in place from code-points to
// positioned glyphs. A buffer is not safe for concurrent use.
type Buffer struct {
	Props  SegmentProps
	runes  []rune
	glyphs []ShapedGlyph
	w      dimen.DU // width of bounding box
	h      dimen.DU // height of bounding box
	d      dimen.DU // depth of bounding box
	lines  []LineSegment
	shaped bool
}

// NewBuffer creates an empty buffer with given segment properties.
func NewBuffer(props SegmentProps) *Buffer {
	return &Buffer{Props: props}
}

// AddRunes appends code-points to the buffer's text content.
// Adding text to an already shaped buffer reverts it to text content.
func (b *Buffer) AddRunes(runes []rune) *Buffer {
	if b.shaped {
		b.glyphs = nil
		b.lines = nil
		b.w, b.h, b.d = 0, 0, 0
		b.shaped = false
	}
	b.runes = append(b.runes, runes...)
	return b
}

// AddString appends the code-points of s to the buffer's text content.
func (b *Buffer) AddString(s string) *Buffer {
	return b.AddRunes([]rune(s))
}

// Runes returns the buffer's text content.
func (b *Buffer) Runes() []rune {
	return b.runes
}

// IsShaped returns true if the buffer content has transitioned from
// code-points to glyphs.
func (b *Buffer) IsShaped() bool {
	return b.shaped
}

// SetGlyphs transitions the buffer to glyph content. It is meant to be
// called by shaper backends; w, h and d describe the bounding box of the
// shaped output.
func (b *Buffer) SetGlyphs(glyphs []ShapedGlyph, w, h, d dimen.DU) {
	b.glyphs = glyphs
	b.w, b.h, b.d = w, h, d
	b.lines = nil
	b.shaped = true
}

// Glyphs returns the buffer's glyph content, or nil if the buffer has not
// been shaped yet.
func (b *Buffer) Glyphs() []ShapedGlyph {
	if !b.shaped {
		return nil
	}
	return b.glyphs
}

// BoundingBox returns width, height and depth of the shaped output.
func (b *Buffer) BoundingBox() (w dimen.DU, h dimen.DU, d dimen.DU) {
	return b.w, b.h, b.d
}

// Lines returns the buffer's line segments, if SplitLines has partitioned
// the shaped output, nil otherwise.
func (b *Buffer) Lines() []LineSegment {
	return b.lines
}

// Reset clears the buffer's content, keeping its segment properties.
func (b *Buffer) Reset() {
	b.runes = nil
	b.glyphs = nil
	b.lines = nil
	b.w, b.h, b.d = 0, 0, 0
	b.shaped = false
}

func (b *Buffer) String() string {
	if !b.shaped {
		return fmt.Sprintf("buffer %v %q", b.Props, string(b.runes))
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("buffer %v #glyphs=%d", b.Props, len(b.glyphs)))
	return sb.String()
}
