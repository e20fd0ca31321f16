/*
Package glyphing converts text to sequences of positioned glyphs.

Shaping operates on buffers: sequences of Unicode code-points which use the
same font and share text direction, script and language. After shaping, a
buffer contains output glyphs and their positions.

The package itself holds neutral types only. Concrete shaping is done by
interchangeable shaper backends (sub-packages harfbuzz and monospace);
orchestration over the backends lives in sub-package shaper.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–21 Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphing

import (
	"fmt"

	"github.com/npillmayer/glyphing/core/dimen"
	"github.com/npillmayer/glyphing/core/font"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "LeftToRight"
	case RightToLeft:
		return "RightToLeft"
	case TopToBottom:
		return "TopToBottom"
	case BottomToTop:
		return "BottomToTop"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// IsVertical is true for the top-to-bottom and bottom-to-top directions.
func (d Direction) IsVertical() bool {
	return d == TopToBottom || d == BottomToTop
}

// Tag is a 4-letter identifier for an OpenType feature, script or language
// system, packed into 32 bits.
type Tag uint32

// MakeTag creates a tag from the first 4 bytes of a string, padding with
// spaces if the string is shorter.
func MakeTag(s string) Tag {
	b := []byte{' ', ' ', ' ', ' '}
	copy(b, s)
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// A ShapedGlyph lives in design space (result from the shaper, which lives in
// design space as well, at least its interface).
type ShapedGlyph struct {
	ClusterID int             // position of code-point(s) for this glyph in original string
	XAdvance  dimen.DU        // advance after glyph has been set, in design units
	YAdvance  dimen.DU        //
	XOffset   dimen.DU        // position of anchor dot for glyph, in design units
	YOffset   dimen.DU        //
	GID       font.GlyphIndex // glyph index within font
	CodePoint rune            // code-point of first rune to produce this glyph
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, advance=%s)", g.GID, g.XAdvance)
}

// FeatureRange tells a shaper to turn a certain OpenType feature on or off
// for a run of code-points.
//
// Features are applied in list order. If two entries carry the same feature
// tag and their ranges overlap, the later entry takes precedence for the
// overlapping positions, regardless of which shaper backend executes.
type FeatureRange struct {
	Feature    Tag  // 4-letter feature tag
	Arg        int  // optional argument for this feature
	On         bool // turn it on or off?
	Start, End int  // position of code-points to apply feature for
}

// Value returns the feature value a shaper should apply: 0 for an entry
// turning the feature off, otherwise the entry's argument (at least 1).
func (frng FeatureRange) Value() uint32 {
	if !frng.On {
		return 0
	}
	if frng.Arg > 0 {
		return uint32(frng.Arg)
	}
	return 1
}

// ActiveFeatureValue resolves the effective value of a feature tag at a
// code-point position. Entries are scanned in list order and the last entry
// covering pos wins. The second return value is false if no entry covers pos.
func ActiveFeatureValue(features []FeatureRange, tag Tag, pos int) (uint32, bool) {
	var value uint32
	found := false
	for _, frng := range features {
		if frng.Feature != tag {
			continue
		}
		if pos < frng.Start || pos >= frng.End {
			continue
		}
		value = frng.Value()
		found = true
	}
	return value, found
}

// A Shaper creates a sequence of glyphs from a sequence of Unicode
// code-points. Glyphs are taken from a font, given in a specific point-size.
//
// Shapers form a closed set of interchangeable backends: each one declares
// by name and by WorksFor whether it is applicable to a buffer's segment
// properties, and Shape performs the text-to-glyph transition in place.
type Shaper interface {
	Name() string
	WorksFor(props SegmentProps) bool
	Shape(typecase *font.TypeCase, buf *Buffer, features []FeatureRange) error
}
