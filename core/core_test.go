package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tesserfont/sfnt/fontdata"
)

func TestHeadRoundTrip(t *testing.T) {
	h := &Head{
		MajorVersion: 1, MinorVersion: 0, FontRevision: 0x00010000,
		MagicNumber: MagicNumber, UnitsPerEm: 1000,
		XMin: -100, YMin: -200, XMax: 900, YMax: 1000,
		IndexToLocFormat: 1,
	}
	decoded, err := DecodeHead(fontdata.New(EncodeHead(h)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(h, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadTooShort(t *testing.T) {
	if _, err := DecodeHead(fontdata.New(make([]byte, 10))); err == nil {
		t.Fatal("expected an error decoding a truncated head table")
	}
}

func TestHheaRoundTrip(t *testing.T) {
	h := &Hhea{
		MajorVersion: 1, Ascender: 800, Descender: -200, LineGap: 90,
		AdvanceWidthMax: 1500, NumberOfHMetrics: 42,
	}
	decoded, err := DecodeHhea(fontdata.New(EncodeHhea(h)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(h, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMaxpVersion05(t *testing.T) {
	m := &Maxp{NumGlyphs: 300}
	decoded, err := DecodeMaxp(fontdata.New(EncodeMaxp(m)))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.TTF != nil {
		t.Fatal("version 0.5 maxp should not decode a TTF block")
	}
	if decoded.NumGlyphs != 300 {
		t.Fatalf("NumGlyphs = %d, want 300", decoded.NumGlyphs)
	}
}

func TestMaxpVersion10(t *testing.T) {
	m := &Maxp{NumGlyphs: 12, TTF: &MaxpTTF{MaxPoints: 50, MaxContours: 3, MaxZones: 2}}
	decoded, err := DecodeMaxp(fontdata.New(EncodeMaxp(m)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHmtxRoundTripWithReuse(t *testing.T) {
	h := &Hmtx{
		Metrics:          []LongHorMetric{{AdvanceWidth: 500, Lsb: 10}, {AdvanceWidth: 600, Lsb: 20}},
		LeftSideBearings: []int16{5, -3},
	}
	decoded, err := DecodeHmtx(fontdata.New(EncodeHmtx(h)), len(h.Metrics), len(h.Metrics)+len(h.LeftSideBearings))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(h, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if decoded.AdvanceWidth(0) != 500 || decoded.AdvanceWidth(1) != 600 {
		t.Fatal("advance widths for the explicit run are wrong")
	}
	// glyphs beyond the explicit run reuse the last metric's advance width
	if decoded.AdvanceWidth(3) != 600 {
		t.Fatalf("AdvanceWidth(3) = %d, want 600 (reused)", decoded.AdvanceWidth(3))
	}
	if decoded.LeftSideBearing(2) != 5 || decoded.LeftSideBearing(3) != -3 {
		t.Fatal("left side bearings past the explicit run are wrong")
	}
}

func TestHmtxRejectsInconsistentCounts(t *testing.T) {
	if _, err := DecodeHmtx(fontdata.New(make([]byte, 4)), 5, 2); err == nil {
		t.Fatal("expected an error when numberOfHMetrics exceeds numGlyphs")
	}
}

func TestHmtxBuilderLifecycle(t *testing.T) {
	h := &Hmtx{Metrics: []LongHorMetric{{AdvanceWidth: 500, Lsb: 0}}}
	b := NewHmtxBuilder(fontdata.New(EncodeHmtx(h)), 1, 1)
	if !b.ReadyToSerialize() {
		t.Fatal("a pristine builder should be ready to serialize")
	}
	m, err := b.Model()
	if err != nil {
		t.Fatal(err)
	}
	m.Metrics = append(m.Metrics, LongHorMetric{AdvanceWidth: 700, Lsb: 1})
	b.SetModel(m)
	if b.numGlyphs != 2 {
		t.Fatalf("SetModel should recompute numGlyphs, got %d", b.numGlyphs)
	}
	out := fontdata.NewGrowable(8)
	n, err := b.Serialize(out)
	if err != nil {
		t.Fatal(err)
	}
	if n != b.DataSizeToSerialize() {
		t.Fatalf("Serialize wrote %d bytes, DataSizeToSerialize reported %d", n, b.DataSizeToSerialize())
	}
}

func TestOS2RoundTripEachVersion(t *testing.T) {
	for _, version := range []uint16{0, 1, 2, 5} {
		o := &OS2{
			Version: version, UsWeightClass: 400, UsWidthClass: 5,
			AchVendID: [4]byte{'G', 'O', 'O', 'G'},
		}
		if version >= 1 {
			o.UlCodePageRange1 = 1
		}
		if version >= 2 {
			o.SCapHeight = 700
		}
		if version >= 5 {
			o.UsLowerOpticalPointSize = 8
		}
		decoded, err := DecodeOS2(fontdata.New(EncodeOS2(o)))
		if err != nil {
			t.Fatalf("version %d: %v", version, err)
		}
		if diff := cmp.Diff(o, decoded); diff != "" {
			t.Fatalf("version %d round trip mismatch (-want +got):\n%s", version, diff)
		}
	}
}

func TestNameRoundTripAndLookup(t *testing.T) {
	n := &Name{
		Format: 0,
		Records: []NameRecord{
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x409, NameID: 1, Value: utf16be("Roboto")},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x409, NameID: 4, Value: utf16be("Roboto Regular")},
		},
	}
	decoded, err := DecodeName(fontdata.New(EncodeName(n)))
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(decoded.Records))
	}
	rec, ok := decoded.Get(3, 1, 0x409, 1)
	if !ok {
		t.Fatal("Get failed to find the family-name record")
	}
	if rec.String() != "Roboto" {
		t.Fatalf("String() = %q, want %q", rec.String(), "Roboto")
	}
}

func TestNameSharesDuplicateStrings(t *testing.T) {
	n := &Name{Records: []NameRecord{
		{PlatformID: 0, NameID: 1, Value: utf16be("Same")},
		{PlatformID: 3, NameID: 1, Value: utf16be("Same")},
	}}
	encoded := EncodeName(n)
	decoded, err := DecodeName(fontdata.New(encoded))
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(decoded.Records))
	}
	if decoded.Records[0].String() != "Same" || decoded.Records[1].String() != "Same" {
		t.Fatal("interned string didn't decode back correctly for both records")
	}
}

func utf16be(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}

func TestPostVersion1UsesMacGlyphOrder(t *testing.T) {
	p := &Post{Version: postVersion1, Names: append([]string(nil), macGlyphOrder...)}
	encoded := EncodePost(p)
	decoded, err := DecodePost(fontdata.New(encoded))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Version != postVersion1 {
		t.Fatalf("expected version 1.0 to round trip as itself, got %#x", decoded.Version)
	}
	if diff := cmp.Diff(p.Names, decoded.Names); diff != "" {
		t.Fatalf("mac glyph order round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPostVersion2WithCustomNames(t *testing.T) {
	p := &Post{Version: postVersion2, Names: []string{".notdef", "space", "myGlyph", "myGlyph"}}
	decoded, err := DecodePost(fontdata.New(EncodePost(p)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p.Names, decoded.Names); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPostVersion3HasNoNames(t *testing.T) {
	p := &Post{Version: postVersion3, ItalicAngle: -0x00060000}
	decoded, err := DecodePost(fontdata.New(EncodePost(p)))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Names != nil {
		t.Fatal("version 3.0 should decode with no glyph names")
	}
	if decoded.ItalicAngle != p.ItalicAngle {
		t.Fatalf("ItalicAngle = %#x, want %#x", decoded.ItalicAngle, p.ItalicAngle)
	}
}
