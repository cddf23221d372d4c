package bitmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tesserfont/sfnt/fontdata"
)

func TestGlyphFormat1SmallMetrics(t *testing.T) {
	total := smallGlyphMetricsSize + 3
	buf := fontdata.NewGrowable(total)
	_, _ = buf.WriteUByte(0, 10)  // height
	_, _ = buf.WriteUByte(1, 8)   // width
	_, _ = buf.WriteByte(2, 1)    // bearingX
	_, _ = buf.WriteByte(3, 0xFE) // bearingY
	_, _ = buf.WriteUByte(4, 9)   // advance
	_, _ = buf.WriteBytes(5, []byte{0xFF, 0x00, 0xAA})

	ebdt := DecodeEBDT(fontdata.New(buf.Bytes()))
	g, err := ebdt.Glyph(0, 0, total, 1)
	if err != nil {
		t.Fatal(err)
	}
	if g.SmallMetrics == nil {
		t.Fatal("format 1 should decode SmallMetrics")
	}
	if g.SmallMetrics.Height != 10 || g.SmallMetrics.Width != 8 || g.SmallMetrics.Advance != 9 {
		t.Fatalf("SmallMetrics = %+v, unexpected", g.SmallMetrics)
	}
	if diff := cmp.Diff([]byte{0xFF, 0x00, 0xAA}, g.Data); diff != "" {
		t.Fatalf("Data mismatch (-want +got):\n%s", diff)
	}
}

func TestGlyphFormat5RawData(t *testing.T) {
	pixels := []byte{0x01, 0x02, 0x03, 0x04}
	ebdt := DecodeEBDT(fontdata.New(pixels))
	g, err := ebdt.Glyph(0, 0, len(pixels), 5)
	if err != nil {
		t.Fatal(err)
	}
	if g.SmallMetrics != nil || g.BigMetrics != nil {
		t.Fatal("format 5 has no per-glyph metrics header, it comes from the index subtable")
	}
	if diff := cmp.Diff(pixels, g.Data); diff != "" {
		t.Fatalf("Data mismatch (-want +got):\n%s", diff)
	}
}

func TestGlyphFormat8Composite(t *testing.T) {
	total := smallGlyphMetricsSize + 1 + 2 + 4*2
	buf := fontdata.NewGrowable(total)
	_, _ = buf.WriteUByte(0, 12)
	_, _ = buf.WriteUByte(1, 12)
	_, _ = buf.WriteByte(2, 0)
	_, _ = buf.WriteByte(3, 0)
	_, _ = buf.WriteUByte(4, 12)
	pos := smallGlyphMetricsSize + 1 // pad byte
	_, _ = buf.WriteUShort(pos, 2)   // numComponents
	pos += 2
	_, _ = buf.WriteUShort(pos, 5) // glyphID
	_, _ = buf.WriteByte(pos+2, 3)
	_, _ = buf.WriteByte(pos+3, 0xFF)
	pos += 4
	_, _ = buf.WriteUShort(pos, 6)
	_, _ = buf.WriteByte(pos+2, 0)
	_, _ = buf.WriteByte(pos+3, 5)

	ebdt := DecodeEBDT(fontdata.New(buf.Bytes()))
	g, err := ebdt.Glyph(0, 0, total, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Components) != 2 {
		t.Fatalf("got %d components, want 2", len(g.Components))
	}
	if g.Components[0].GlyphID != 5 || g.Components[0].XOffset != 3 || g.Components[0].YOffset != -1 {
		t.Fatalf("Components[0] = %+v, unexpected", g.Components[0])
	}
	if g.Components[1].GlyphID != 6 || g.Components[1].YOffset != 5 {
		t.Fatalf("Components[1] = %+v, unexpected", g.Components[1])
	}
}
