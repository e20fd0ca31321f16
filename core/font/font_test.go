package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	xfont "golang.org/x/image/font"
)

type sw struct {
	s xfont.Style
	w xfont.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.fonts")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":               {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                       {xfont.StyleNormal, xfont.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		t.Logf("style = %d, weight = %d", style, weight)
		if style != v.s || weight != v.w {
			t.Errorf("expected different style or weight for %s", k)
		}
	}
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.fonts")
	defer teardown()
	//
	if !Matches("fonts/Clarendon-bold.ttf",
		"clarendon", xfont.StyleNormal, xfont.WeightBold) {
		t.Errorf("expected match for Clarendon, haven't")
	}
	if !Matches("Microsoft/Gill Sans MT Bold Italic.ttf",
		"gill sans", xfont.StyleItalic, xfont.WeightBold) {
		t.Errorf("expected match for Gill, haven't")
	}
	if !Matches("Cambria Math.ttf",
		"cambria", xfont.StyleNormal, xfont.WeightNormal) {
		t.Errorf("expected match for Cambria Math, haven't")
	}
}

func TestFallbackTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.fonts")
	defer teardown()
	//
	f := FallbackFont()
	if f == nil {
		t.Fatal("expected fallback font to be present")
	}
	tc, err := f.PrepareCase(12.0)
	if err != nil {
		t.Fatal(err)
	}
	if tc.PtSize() != 12.0 {
		t.Errorf("expected typecase size 12pt, is %.1f", tc.PtSize())
	}
	if tc.ScalableFontParent() != f {
		t.Error("expected typecase to point back to its scalable font")
	}
}

func TestNominalGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.fonts")
	defer teardown()
	//
	tc, err := FallbackFont().PrepareCase(10.0)
	if err != nil {
		t.Fatal(err)
	}
	gid, ok := tc.NominalGlyph(' ')
	if !ok || gid == 0 {
		t.Errorf("expected Go Sans to map U+0020 to a glyph, got %d", gid)
	}
	gid2, ok2 := tc.NominalGlyph(' ')
	if !ok2 || gid2 != gid {
		t.Errorf("expected nominal glyph lookup to be stable, %d != %d", gid, gid2)
	}
}

func TestRegistryTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	reg.StoreFont(FallbackFont())
	tc, err := reg.TypeCase("Go Sans", 11.0)
	if err != nil {
		t.Fatal(err)
	}
	tc2, err := reg.TypeCase("Go Sans", 11.0)
	if err != nil {
		t.Fatal(err)
	}
	if tc != tc2 {
		t.Error("expected registry to cache typecases")
	}
}

func TestVariationCoords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.fonts")
	defer teardown()
	//
	tc, _ := FallbackFont().PrepareCase(10.0)
	coords := []float32{400.0, 100.0}
	tc.SetVariationCoords(coords)
	coords[0] = 700.0 // typecase must have taken a copy
	if got := tc.VariationCoords(); len(got) != 2 || got[0] != 400.0 {
		t.Errorf("expected typecase to copy variation coords, got %v", got)
	}
}
