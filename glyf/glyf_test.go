package glyf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tesserfont/sfnt/fontdata"
)

func TestSimpleGlyphRoundTrip(t *testing.T) {
	g := &Glyph{
		XMin: 0, YMin: 0, XMax: 500, YMax: 700,
		Outline: &SimpleGlyph{
			EndPtsOfContours: []uint16{3},
			OnCurve:          []bool{true, true, false, true},
			X:                []int16{0, 500, 500, 0},
			Y:                []int16{0, 0, 700, 700},
		},
	}
	glyphs := []*Glyph{g}
	data, offsets := EncodeGlyf(glyphs)

	decoded, err := DecodeGlyf(fontdata.New(data), offsets)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d glyphs, want 1", len(decoded))
	}
	out := decoded[0]
	if out.XMin != g.XMin || out.YMin != g.YMin || out.XMax != g.XMax || out.YMax != g.YMax {
		t.Fatalf("bounding box mismatch: got %+v, want %+v", out, g)
	}
	simple, ok := out.Outline.(*SimpleGlyph)
	if !ok {
		t.Fatalf("Outline is %T, want *SimpleGlyph", out.Outline)
	}
	orig := g.Outline.(*SimpleGlyph)
	if diff := cmp.Diff(orig, simple); diff != "" {
		t.Fatalf("outline changed (-want +got):\n%s", diff)
	}
}

func TestEmptyGlyphDecodesToNil(t *testing.T) {
	offsets := []uint32{0, 0, 12}
	decoded, err := DecodeGlyf(fontdata.New(make([]byte, 12)), offsets)
	if err != nil {
		t.Fatal(err)
	}
	if decoded[0] != nil {
		t.Fatal("a zero-length loca run should decode to a nil glyph")
	}
}

func TestCompositeGlyphDecode(t *testing.T) {
	buf := fontdata.NewGrowable(32)
	_, _ = buf.WriteShort(0, -1) // numContours < 0 marks a composite glyph
	_, _ = buf.WriteShort(2, 0)
	_, _ = buf.WriteShort(4, 0)
	_, _ = buf.WriteShort(6, 100)
	_, _ = buf.WriteShort(8, 100)

	flags := uint16(compArgsAreWords | compArgsAreXY)
	_, _ = buf.WriteUShort(10, flags)
	_, _ = buf.WriteUShort(12, 7) // glyphIndex
	_, _ = buf.WriteShort(14, 10) // dx
	_, _ = buf.WriteShort(16, 20) // dy

	g, err := decodeGlyph(fontdata.New(buf.Bytes()[:18]))
	if err != nil {
		t.Fatal(err)
	}
	comp, ok := g.Outline.(*CompositeGlyph)
	if !ok {
		t.Fatalf("Outline is %T, want *CompositeGlyph", g.Outline)
	}
	if len(comp.Components) != 1 {
		t.Fatalf("got %d components, want 1", len(comp.Components))
	}
	if comp.Components[0].GlyphIndex != 7 {
		t.Fatalf("GlyphIndex = %d, want 7", comp.Components[0].GlyphIndex)
	}
	if len(comp.Components[0].Args) != 4 {
		t.Fatalf("Args length = %d, want 4", len(comp.Components[0].Args))
	}
}

func TestBoundsAndFontBounds(t *testing.T) {
	a := &Glyph{XMin: -10, YMin: 0, XMax: 100, YMax: 200}
	b := &Glyph{XMin: 5, YMin: -20, XMax: 50, YMax: 300}
	r := FontBounds([]*Glyph{a, nil, b})
	if r.LLx != -10 || r.LLy != -20 || r.URx != 100 || r.URy != 300 {
		t.Fatalf("FontBounds = %+v, want {-10 -20 100 300}", r)
	}
}
