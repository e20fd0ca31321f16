/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/glyphing"
	"github.com/npillmayer/glyphing/core/dimen"
	"github.com/npillmayer/glyphing/core/font"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'glyphing.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("glyphing.glyphs")
}

// ErrNoFont flags a shaping call without a typecase. HarfBuzz cannot shape
// without font tables; clients will have to fall back to a different shaper.
var ErrNoFont = errors.New("harfbuzz: no font given to shape with")

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB makes a typecast from an OpenType feature tag to a HarfBuzz
// truetype tag.
func Feature4HB(t glyphing.Tag) hbtt.Tag {
	return hbtt.Tag(t)
}

// FeatureRange4HB converts a feature range struct to a HarfBuzz Feature
// switch.
func FeatureRange4HB(frng glyphing.FeatureRange) hb.Feature {
	return hb.Feature{
		Tag:   Feature4HB(frng.Feature),
		Value: frng.Value(),
		Start: frng.Start,
		End:   frng.End,
	}
}

// --- Shaper backend --------------------------------------------------------

type hbshape struct {
	fonts sync.Map // *font.ScalableFont ⇒ *hb.Font
}

// Shaper creates a shaper backend delegating to HarfBuzz.
//
// HarfBuzz selects a shape strategy based on the properties of the input
// buffer, including the selected font. If features are given, they control
// the OpenType features applied during shaping. If two features have the
// same tag but overlapping ranges, the value of the feature with the higher
// index takes precedence.
//
// Parsed HarfBuzz faces are cached per scalable font, as parsing the binary
// is considerably more expensive than shaping a buffer with it.
func Shaper() glyphing.Shaper {
	return &hbshape{}
}

// Name returns "harfbuzz".
func (hs *hbshape) Name() string {
	return "harfbuzz"
}

// WorksFor returns true for every segment: HarfBuzz covers simple and
// complex scripts in either direction.
func (hs *hbshape) WorksFor(props glyphing.SegmentProps) bool {
	return true
}

// Shape calls the HarfBuzz shaper, turning the buffer's Unicode content to
// positioned glyphs. A typecase must be given, otherwise no output is
// created and clients should fall back to a different shaper backend.
func (hs *hbshape) Shape(typecase *font.TypeCase, buf *glyphing.Buffer, features []glyphing.FeatureRange) error {
	if buf == nil {
		return nil
	}
	if typecase == nil || typecase.ScalableFontParent() == nil {
		return ErrNoFont
	}
	hbFont, err := hs.hbFont(typecase.ScalableFontParent())
	if err != nil {
		return err
	}
	f := *hbFont // shallow copy; Ptem is per typecase
	f.Ptem = float32(typecase.PtSize())
	// Prepare shaping parameters
	var hbSeqProps hb.SegmentProperties
	convertProps(&hbSeqProps, buf.Props)
	hbFeatures := make([]hb.Feature, 0, len(features))
	for _, feat := range features {
		hbFeatures = append(hbFeatures, FeatureRange4HB(feat))
	}
	// Prepare HarfBuzz buffer
	runes := buf.Runes()
	hbBuf := hb.NewBuffer()
	hbBuf.Props = hbSeqProps
	hbBuf.AddRunes(runes, 0, len(runes))
	hbBuf.Shape(&f, hbFeatures)
	// Move HarfBuzz output to the buffer's glyph content
	glyphs := make([]glyphing.ShapedGlyph, len(hbBuf.Info))
	var w dimen.DU
	for i, ginfo := range hbBuf.Info {
		gpos := &hbBuf.Pos[i]
		tracer().Debugf("[%3d] %q", i, ginfo.String())
		g := &glyphs[i]
		g.ClusterID = ginfo.Cluster
		g.GID = font.GlyphIndex(ginfo.Glyph)
		g.XAdvance = dimen.DU(gpos.XAdvance)
		g.YAdvance = dimen.DU(gpos.YAdvance)
		g.XOffset = dimen.DU(gpos.XOffset)
		g.YOffset = dimen.DU(gpos.YOffset)
		if g.ClusterID >= 0 && g.ClusterID < len(runes) {
			g.CodePoint = runes[g.ClusterID]
		}
		w += g.XAdvance
	}
	buf.SetGlyphs(glyphs, w, 0, 0)
	return nil
}

// hbFont returns the cached HarfBuzz font for a scalable font, parsing the
// font's binary on first use.
func (hs *hbshape) hbFont(sf *font.ScalableFont) (*hb.Font, error) {
	if f, ok := hs.fonts.Load(sf); ok {
		return f.(*hb.Font), nil
	}
	hbFace, err := hbtt.Parse(bytes.NewReader(sf.Binary), true)
	if err != nil {
		return nil, fmt.Errorf("harfbuzz cannot parse font %s: %w", sf.Fontname, err)
	}
	hbFont := hb.NewFont(hbFace)
	f, _ := hs.fonts.LoadOrStore(sf, hbFont)
	return f.(*hb.Font), nil
}

// convertProps is a helper function to convert segment properties to
// HarfBuzz's format.
func convertProps(hbSeqProps *hb.SegmentProperties, props glyphing.SegmentProps) {
	if props.Language != language.Und {
		hbSeqProps.Language = Lang4HB(props.Language)
	}
	var none language.Script
	if props.Script != none {
		hbSeqProps.Script = Script4HB(props.Script)
	}
	hbSeqProps.Direction = Direction4HB(props.Direction)
}
