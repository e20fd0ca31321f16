package harfbuzz_test

import (
	"fmt"
	"testing"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/glyphing"
	"github.com/npillmayer/glyphing/core/font"
	"github.com/npillmayer/glyphing/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/text/language"
)

func TestHBScript(t *testing.T) {
	id := "Plrd"
	script := language.MustParseScript(id)
	hbScript := harfbuzz.Script4HB(script)
	hstr := fmt.Sprintf("%x", uint32(hbScript))
	if hstr != "706c7264" {
		t.Logf("script %q: %x => %x", id, script, uint32(hbScript))
		t.Errorf("expected HB script of 706c7264, is %s", hstr)
	}
}

func TestHBLang(t *testing.T) {
	l := "de_DE"
	langT, err := language.Parse(l)
	if err != nil {
		t.Error(err)
	}
	h := harfbuzz.Lang4HB(langT)
	if h != "de-de" {
		t.Logf("Go lang = %v", langT)
		t.Logf("HB lang = %v, expected de-de", h)
		t.Fail()
	}
}

func TestHBDir(t *testing.T) {
	var d glyphing.Direction = glyphing.TopToBottom
	dir := harfbuzz.Direction4HB(d)
	if dir != hb.TopToBottom {
		t.Errorf("expected dir to be %d, is %d", hb.TopToBottom, dir)
	}
}

func TestHBShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	input := "Hello"
	buf := glyphing.NewBuffer(glyphing.SegmentProps{})
	buf.AddString(input)
	typecase := loadGoFont(t)
	sh := harfbuzz.Shaper()
	if err := sh.Shape(typecase, buf, nil); err != nil {
		t.Error(err)
	}
	if !buf.IsShaped() {
		t.Fatal("expected shaping output to be non-nil")
	}
	if len(buf.Glyphs()) != len(input) {
		t.Errorf("expected %d output glyphs, have %d", len(input), len(buf.Glyphs()))
	}
	w, _, _ := buf.BoundingBox()
	if w <= 0 {
		t.Errorf("expected positive advance width, is %s", w)
	}
}

func TestHBShapeWithoutFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphing.glyphs")
	defer teardown()
	//
	buf := glyphing.NewBuffer(glyphing.SegmentProps{})
	buf.AddString("Hello")
	sh := harfbuzz.Shaper()
	if err := sh.Shape(nil, buf, nil); err == nil {
		t.Error("expected shaping without a font to fail")
	}
	if buf.IsShaped() {
		t.Error("expected buffer to be left unshaped")
	}
}

// ---------------------------------------------------------------------------

func loadGoFont(t *testing.T) *font.TypeCase {
	typecase, err := font.FallbackFont().PrepareCase(12.0)
	if err != nil {
		t.Fatal(err)
	}
	return typecase
}
