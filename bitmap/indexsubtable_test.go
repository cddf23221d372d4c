package bitmap

import (
	"testing"

	"github.com/tesserfont/sfnt/fontdata"
)

func TestIndexSubTableFormat1GlyphOffset(t *testing.T) {
	// three glyphs (5,6,7) plus a trailing sentinel offset
	buf := fontdata.NewGrowable(16)
	_, _ = buf.WriteULong(0, 0)
	_, _ = buf.WriteULong(4, 20)
	_, _ = buf.WriteULong(8, 50)
	_, _ = buf.WriteULong(12, 50)
	h := header{indexFormat: 1, firstGlyph: 5, lastGlyph: 7}
	sub := &IndexSubTableFormat1{header: h, data: fontdata.New(buf.Bytes())}

	start, length, found, err := sub.GlyphOffset(6)
	if err != nil || !found || start != 20 || length != 30 {
		t.Fatalf("GlyphOffset(6) = %d, %d, %v, %v; want 20, 30, true, nil", start, length, found, err)
	}

	if _, _, _, err := sub.GlyphOffset(9); err == nil {
		t.Fatal("expected GlyphOutOfRange for a glyph past lastGlyph")
	}
}

func TestIndexSubTableFormat2FixedSize(t *testing.T) {
	buf := fontdata.NewWritable(make([]byte, 4+bigGlyphMetricsSize))
	_, _ = buf.WriteULong(0, 40) // imageSize
	h := header{indexFormat: 2, firstGlyph: 10, lastGlyph: 12}
	sub, err := decodeFormat2(h, fontdata.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	start, length, found, err := sub.GlyphOffset(11)
	if err != nil || !found || start != 40 || length != 40 {
		t.Fatalf("GlyphOffset(11) = %d, %d, %v, %v; want 40, 40, true, nil", start, length, found, err)
	}
}

func TestIndexSubTableFormat4SparseSearch(t *testing.T) {
	// glyphs 10 and 15 present, 11-14 missing; sentinel closes the range
	buf := fontdata.NewGrowable(4 + 3*4)
	_, _ = buf.WriteULong(0, 2) // numGlyphs
	_, _ = buf.WriteUShort(4, 10)
	_, _ = buf.WriteUShort(6, 0)
	_, _ = buf.WriteUShort(8, 15)
	_, _ = buf.WriteUShort(10, 30)
	_, _ = buf.WriteUShort(12, 0) // sentinel glyphID (unused)
	_, _ = buf.WriteUShort(14, 60)
	h := header{indexFormat: 4, firstGlyph: 10, lastGlyph: 15}
	sub, err := decodeFormat4(h, fontdata.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	start, length, found, err := sub.GlyphOffset(15)
	if err != nil || !found || start != 30 || length != 30 {
		t.Fatalf("GlyphOffset(15) = %d, %d, %v, %v; want 30, 30, true, nil", start, length, found, err)
	}

	_, _, found, err = sub.GlyphOffset(12)
	if err != nil || found {
		t.Fatalf("GlyphOffset(12) should be an in-range gap: found=%v, err=%v", found, err)
	}
}
