package monospace

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/glyphing"
	"github.com/npillmayer/glyphing/core/dimen"
	"github.com/npillmayer/glyphing/core/font"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
)

// OpenType width features honored by the monospace shaper. A full-width entry
// forces a grapheme to occupy two cells, a half-width entry one cell.
var (
	fullWidth = glyphing.MakeTag("fwid")
	halfWidth = glyphing.MakeTag("hwid")
)

type msshape struct {
	em      dimen.DU
	context *uax11.Context
}

// Shaper creates a shaper for monospace typesetting.
// An em-dimension may be given which will then be used for shaping text.
// If it is zero, the em will be derived from the typecase handed to Shape,
// or default to 10pt.
func Shaper(em dimen.DU, context *uax11.Context) glyphing.Shaper {
	sh := &msshape{em: em}
	if context == nil {
		sh.context = uax11.LatinContext
	} else {
		sh.context = context
	}
	grapheme.SetupGraphemeClasses()
	return sh
}

// Name returns "monospace".
func (ms *msshape) Name() string {
	return "monospace"
}

// WorksFor returns true: monospace shaping is a universal fallback and
// applies to any segment properties.
func (ms *msshape) WorksFor(props glyphing.SegmentProps) bool {
	return true
}

// Shape creates a glyph sequence from the buffer's text, one fixed-width
// cell per grapheme (wide graphemes occupy two cells, following UAX#11).
// Features fwid and hwid override a grapheme's natural cell count.
func (ms *msshape) Shape(typecase *font.TypeCase, buf *glyphing.Buffer, features []glyphing.FeatureRange) error {
	if buf == nil {
		return nil
	}
	em := ms.em
	if em == 0 {
		if typecase != nil {
			em = dimen.DU(typecase.PtSize()) * dimen.PT
		} else {
			em = 10 * dimen.PT
		}
	}
	// Segmenters keep state; use a fresh one per call so a shaper instance
	// can be shared between concurrent shaping calls.
	onGraphemes := grapheme.NewBreaker(1)
	graphemeSplitter := segment.NewSegmenter(onGraphemes)
	graphemeSplitter.Init(strings.NewReader(string(buf.Runes())))
	glyphs := make([]glyphing.ShapedGlyph, 0, len(buf.Runes()))
	var w dimen.DU
	i := 0
	for graphemeSplitter.Next() {
		grphm := graphemeSplitter.Bytes()
		cells := uax11.Width(grphm, ms.context)
		if v, ok := glyphing.ActiveFeatureValue(features, fullWidth, i); ok && v > 0 {
			cells = 2
		} else if v, ok := glyphing.ActiveFeatureValue(features, halfWidth, i); ok && v > 0 {
			cells = 1
		}
		codepoint, _ := utf8.DecodeRune(grphm)
		g := glyphing.ShapedGlyph{
			XAdvance:  dimen.DU(cells) * em,
			ClusterID: i,
			CodePoint: codepoint,
		}
		if typecase != nil {
			if gid, ok := typecase.NominalGlyph(codepoint); ok {
				g.GID = gid
			}
		}
		glyphs = append(glyphs, g)
		w += g.XAdvance
		i++
	}
	tracer().Debugf("monospace-shaped %d graphemes, width=%s", len(glyphs), w)
	buf.SetGlyphs(glyphs, w, em*3/5, em*2/5)
	return nil
}
