package cmap

import (
	"testing"

	"github.com/tesserfont/sfnt/fontdata"
)

func TestTableRoundTrip(t *testing.T) {
	f0 := &Format0{}
	f0.GlyphIDArray['A'] = 5
	f0.GlyphIDArray['B'] = 6

	f12 := &Format12{Groups: []group12{
		{StartCharCode: 0x1F600, EndCharCode: 0x1F602, StartGlyphID: 100},
	}}

	orig := Table{
		{PlatformID: 1, EncodingID: 0}: f0,
		{PlatformID: 3, EncodingID: 10}: f12,
	}

	encoded := Encode(orig)
	decoded, err := Decode(fontdata.New(encoded))
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("Decode: got %d subtables, want %d", len(decoded), len(orig))
	}

	sub, ok := decoded[Key{PlatformID: 1, EncodingID: 0}]
	if !ok || sub.Format() != 0 {
		t.Fatalf("missing or wrong format for (1,0) subtable")
	}
	if g, ok := sub.Lookup('A'); !ok || g != 5 {
		t.Fatalf("format 0 lookup of 'A' = %d, %v, want 5, true", g, ok)
	}

	sub12, ok := decoded[Key{PlatformID: 3, EncodingID: 10}]
	if !ok || sub12.Format() != 12 {
		t.Fatalf("missing or wrong format for (3,10) subtable")
	}
	if g, ok := sub12.Lookup(0x1F601); !ok || g != 101 {
		t.Fatalf("format 12 lookup of U+1F601 = %d, %v, want 101, true", g, ok)
	}
	if _, ok := sub12.Lookup(0x1F603); ok {
		t.Fatal("lookup of a code past the group's end should fail")
	}
}

func TestBestPrefersWindowsUnicode(t *testing.T) {
	table := Table{
		{PlatformID: 1, EncodingID: 0}: &Format0{},
		{PlatformID: 3, EncodingID: 1}: &Format4{},
	}
	best, ok := table.Best()
	if !ok || best.Format() != 4 {
		t.Fatalf("Best() should prefer the Windows BMP subtable over Macintosh Roman")
	}
}

func TestFormat2LookupSingleAndTwoByteCodes(t *testing.T) {
	f := &Format2{
		SubHeaders: []subHeader2{
			// subHeader 0: single-byte codes
			{FirstCode: 0x41, EntryCount: 2, BaseIndex: 0},
			// subHeader 1: selected by high byte 0x82
			{FirstCode: 0x30, EntryCount: 1, BaseIndex: 2, IDDelta: 100},
		},
		GlyphIndexArray: []uint16{10, 11, 5},
	}
	f.SubHeaderKeys[0x82] = 1

	// single-byte code: high byte 0, resolved against subHeader 0's
	// FirstCode/EntryCount using the low byte
	if g, ok := f.Lookup(0x41); !ok || g != 10 {
		t.Fatalf("Lookup(0x41) = %d, %v, want 10, true", g, ok)
	}
	if g, ok := f.Lookup(0x42); !ok || g != 11 {
		t.Fatalf("Lookup(0x42) = %d, %v, want 11, true", g, ok)
	}
	if _, ok := f.Lookup(0x43); ok {
		t.Fatal("Lookup(0x43) should miss: past subHeader 0's EntryCount")
	}

	// two-byte code: high byte 0x82 selects subHeader 1, low byte 0x30
	// resolved against it
	if g, ok := f.Lookup(0x8230); !ok || g != 105 {
		t.Fatalf("Lookup(0x8230) = %d, %v, want 105, true", g, ok)
	}
	if _, ok := f.Lookup(0x8231); ok {
		t.Fatal("Lookup(0x8231) should miss: past subHeader 1's EntryCount")
	}
}

func TestFormat2EncodeDecodeRoundTrip(t *testing.T) {
	f := &Format2{
		SubHeaders: []subHeader2{
			{FirstCode: 0x41, EntryCount: 2, BaseIndex: 0},
		},
		GlyphIndexArray: []uint16{10, 11},
	}
	encoded := f.Encode(0)
	decoded, err := decodeFormat2(fontdata.New(encoded), 0)
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := decoded.Lookup(0x41); !ok || g != 10 {
		t.Fatalf("round-tripped Lookup(0x41) = %d, %v, want 10, true", g, ok)
	}
	if g, ok := decoded.Lookup(0x42); !ok || g != 11 {
		t.Fatalf("round-tripped Lookup(0x42) = %d, %v, want 11, true", g, ok)
	}
}

func TestFormat4OutOfRangeIdRangeOffset(t *testing.T) {
	// One segment [65,65] whose idRangeOffset points past the end of
	// glyphIdArray, which is empty here: endCode[0]@14, pad@16,
	// startCode[0]@18, idDelta[0]@20, idRangeOffset[0]@22, glyphIdArray
	// starts at 24.
	buf := fontdata.NewGrowable(24)
	_, _ = buf.WriteUShort(0, 4)
	_, _ = buf.WriteUShort(2, 24)
	_, _ = buf.WriteUShort(4, 0)
	_, _ = buf.WriteUShort(6, 2)
	_, _ = buf.WriteUShort(14, 65) // endCode[0]
	_, _ = buf.WriteUShort(16, 0)  // reservedPad
	_, _ = buf.WriteUShort(18, 65) // startCode[0]
	_, _ = buf.WriteShort(20, 0)   // idDelta[0]
	_, _ = buf.WriteUShort(22, 100)

	StrictMode = false
	sub, err := decodeFormat4(fontdata.New(buf.Bytes()), 0)
	if err != nil {
		t.Fatalf("lenient decode should not error, got %v", err)
	}
	if g, ok := sub.(Format4)[65]; ok {
		t.Fatalf("expected code 65 to be unmapped in lenient mode, got glyph %d", g)
	}

	StrictMode = true
	defer func() { StrictMode = false }()
	if _, err := decodeFormat4(fontdata.New(buf.Bytes()), 0); err == nil {
		t.Fatal("strict mode should reject an out-of-range idRangeOffset")
	}
}

func TestFormat4EncodeDecodeRoundTrip(t *testing.T) {
	f := Format4{'A': 10, 'B': 11, 'C': 12, 'Z': 99}
	encoded := f.Encode(0)
	decoded, err := decodeFormat4(fontdata.New(encoded), 0)
	if err != nil {
		t.Fatal(err)
	}
	got := decoded.(Format4)
	for code, want := range f {
		if got[code] != want {
			t.Errorf("round trip of code %d: got %d, want %d", code, got[code], want)
		}
	}
}
