package glyf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tesserfont/sfnt/fontdata"
)

func TestLocaRoundTripShortFormat(t *testing.T) {
	offsets := []uint32{0, 20, 20, 100}
	data, format := EncodeLoca(offsets)
	if format != 0 {
		t.Fatalf("expected short format for small offsets, got %d", format)
	}
	decoded, err := DecodeLoca(fontdata.New(data), format, len(offsets)-1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(offsets, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLocaRoundTripLongFormat(t *testing.T) {
	offsets := []uint32{0, 0x20000, 0x40000}
	data, format := EncodeLoca(offsets)
	if format != 1 {
		t.Fatalf("expected long format for large offsets, got %d", format)
	}
	decoded, err := DecodeLoca(fontdata.New(data), format, len(offsets)-1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(offsets, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLocaRejectsDecreasingOffsets(t *testing.T) {
	buf := fontdata.NewGrowable(8)
	_, _ = buf.WriteUShort(0, 10)
	_, _ = buf.WriteUShort(2, 5)
	if _, err := DecodeLoca(fontdata.New(buf.Bytes()), 0, 1); err == nil {
		t.Fatal("expected an error for decreasing loca offsets")
	}
}

func TestLocaBuilderLifecycle(t *testing.T) {
	offsets := []uint32{0, 10, 30}
	data, format := EncodeLoca(offsets)
	b := NewLocaBuilder(fontdata.New(data), format, len(offsets)-1)
	if !b.ReadyToSerialize() {
		t.Fatal("a pristine builder should be ready to serialize")
	}
	got, err := b.Model()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(offsets, got); diff != "" {
		t.Fatalf("Model() mismatch (-want +got):\n%s", diff)
	}

	b.SetModel([]uint32{0, 0x20000, 0x40000})
	out := fontdata.NewGrowable(16)
	n, err := b.Serialize(out)
	if err != nil {
		t.Fatal(err)
	}
	if b.IndexToLocFormat() != 1 {
		t.Fatalf("expected the format to be upgraded to long, got %d", b.IndexToLocFormat())
	}
	if n != b.DataSizeToSerialize() {
		t.Fatalf("Serialize wrote %d bytes, DataSizeToSerialize reported %d", n, b.DataSizeToSerialize())
	}
}

func TestGlyfBuilderLifecycle(t *testing.T) {
	g := &Glyph{
		XMin: 0, YMin: 0, XMax: 10, YMax: 10,
		Outline: &SimpleGlyph{
			EndPtsOfContours: []uint16{3},
			OnCurve:          []bool{true, true, true, true},
			X:                []int16{0, 10, 10, 0},
			Y:                []int16{0, 0, 10, 10},
		},
	}
	data, offsets := EncodeGlyf([]*Glyph{g})
	b := NewGlyfBuilder(fontdata.New(data), offsets)
	if !b.ReadyToSerialize() {
		t.Fatal("a pristine builder should be ready to serialize")
	}
	glyphs, err := b.Model()
	if err != nil {
		t.Fatal(err)
	}
	if len(glyphs) != 1 {
		t.Fatalf("got %d glyphs, want 1", len(glyphs))
	}

	glyphs = append(glyphs, &Glyph{XMin: 1, YMin: 1, XMax: 5, YMax: 5})
	b.SetModel(glyphs)
	if b.Offsets() == nil {
		t.Fatal("Offsets() should be recomputed after SetModel")
	}
	out := fontdata.NewGrowable(64)
	n, err := b.Serialize(out)
	if err != nil {
		t.Fatal(err)
	}
	if n != b.DataSizeToSerialize() {
		t.Fatalf("Serialize wrote %d bytes, DataSizeToSerialize reported %d", n, b.DataSizeToSerialize())
	}
	if len(b.Offsets()) != 3 {
		t.Fatalf("Offsets() has %d entries, want 3 (numGlyphs+1)", len(b.Offsets()))
	}
}
