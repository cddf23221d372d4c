package bitmap

import (
	"testing"

	"github.com/tesserfont/sfnt/fontdata"
)

func TestDecodeEBSCOneScale(t *testing.T) {
	total := ebscHeaderSize + bitmapScaleTableSize
	buf := fontdata.NewGrowable(total)
	_, _ = buf.WriteULong(0, 0x00020000) // version
	_, _ = buf.WriteULong(4, 1)          // numSizes

	base := ebscHeaderSize
	_, _ = buf.WriteByte(base, 10)     // hori.Ascender
	_, _ = buf.WriteByte(base+1, 0xFE) // hori.Descender
	_, _ = buf.WriteByte(base+24, 12)  // ppemX
	_, _ = buf.WriteByte(base+25, 12)  // ppemY
	_, _ = buf.WriteByte(base+26, 9)   // substitutePpemX
	_, _ = buf.WriteByte(base+27, 9)   // substitutePpemY

	e, err := DecodeEBSC(fontdata.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Scales) != 1 {
		t.Fatalf("got %d scales, want 1", len(e.Scales))
	}
	s := e.Scales[0]
	if s.Hori.Ascender != 10 || s.Hori.Descender != -2 {
		t.Fatalf("Hori = %+v, unexpected", s.Hori)
	}
	if s.PpemX != 12 || s.SubstitutePpemX != 9 {
		t.Fatalf("scale = %+v, unexpected", s)
	}
}

func TestDecodeEBSCRejectsTruncatedTable(t *testing.T) {
	buf := fontdata.NewGrowable(ebscHeaderSize)
	_, _ = buf.WriteULong(0, 0x00020000)
	_, _ = buf.WriteULong(4, 3) // claims 3 scales but the buffer has none
	if _, err := DecodeEBSC(fontdata.New(buf.Bytes())); err == nil {
		t.Fatal("expected an error for a truncated bitmapScaleTable array")
	}
}
