package font

import (
	"path"
	"strings"

	"github.com/flopp/go-findfont"
	xfont "golang.org/x/image/font"
)

// LocateFont searches the system's font directories for a font matching a
// name pattern, style and weight, and loads it. Name matching is
// case-insensitive and tolerant of style/weight suffixes in filenames.
//
// If no system font matches, LocateFont falls back to the packaged
// fallback font (see FallbackFont) and returns an error from the
// underlying search.
func LocateFont(pattern string, style xfont.Style, weight xfont.Weight) (*ScalableFont, error) {
	fpath, err := findfont.Find(pattern)
	if err == nil && Matches(fpath, pattern, style, weight) {
		tracer().Infof("found system font %s", fpath)
		return LoadOpenTypeFont(fpath)
	}
	if err == nil {
		// findfont returned a file, but style/weight disagree; keep it as a
		// second choice before falling back
		if sf, lerr := LoadOpenTypeFont(fpath); lerr == nil {
			tracer().Infof("found system font %s (style/weight mismatch)", fpath)
			return sf, nil
		}
	}
	tracer().Infof("no system font for pattern %q, using fallback", pattern)
	return FallbackFont(), err
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := path.Base(fontfilename)
	basename = basename[:len(basename)-len(path.Ext(basename))]
	basename = strings.ToLower(basename)
	tracer().Debugf("basename of font = %s", basename)
	if !strings.Contains(basename, strings.ToLower(pattern)) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	if s == style && w == weight {
		return true
	}
	return false
}
