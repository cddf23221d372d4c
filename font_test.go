package sfnt_test

import (
	"bytes"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/tesserfont/sfnt"
	"github.com/tesserfont/sfnt/debug"
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/table"
)

func TestLoadGoRegular(t *testing.T) {
	f := debug.GoRegular()
	if f.NumTables() == 0 {
		t.Fatal("expected at least one table")
	}
	head, err := f.Head()
	if err != nil || head == nil {
		t.Fatalf("Head() = %v, %v", head, err)
	}
	maxp, err := f.Maxp()
	if err != nil || maxp == nil {
		t.Fatalf("Maxp() = %v, %v", maxp, err)
	}
	if maxp.NumGlyphs == 0 {
		t.Fatal("expected a nonzero glyph count")
	}
}

func TestSerializeRoundTripUnedited(t *testing.T) {
	f := debug.GoRegular()
	out, err := f.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	f2, err := sfnt.Load(fontdata.New(out))
	if err != nil {
		t.Fatal(err)
	}
	if f2.NumTables() != f.NumTables() {
		t.Fatalf("round trip changed table count: got %d, want %d", f2.NumTables(), f.NumTables())
	}
	for _, tab := range f.Tables() {
		got, ok := f2.Table(tab.Header.Tag)
		if !ok {
			t.Fatalf("table %q missing after round trip", tab.Header.Tag)
		}
		if got.Header.Length != tab.Header.Length {
			t.Fatalf("table %q length changed: got %d, want %d", tab.Header.Tag, got.Header.Length, tab.Header.Length)
		}
	}

	// goregular.TTF lays out its tables in recommended, not tag-sorted,
	// order; Serialize must preserve that layout for an unedited font, so
	// the output should be byte-identical to the source, not merely
	// equivalent table-by-table.
	if !bytes.Equal(out, goregular.TTF) {
		t.Fatalf("Serialize(Load(goregular.TTF)) is not byte-identical to goregular.TTF (got %d bytes, want %d)", len(out), len(goregular.TTF))
	}
}

func TestBuilderFromFontPreservesUneditedTables(t *testing.T) {
	f := debug.GoRegular()
	b := sfnt.FromFont(f)
	if _, ok := b.TableBuilder(table.TagHead); !ok {
		t.Fatal("FromFont should install a builder for every table")
	}
	f2, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if f2.NumTables() != f.NumTables() {
		t.Fatalf("Build() changed table count: got %d, want %d", f2.NumTables(), f.NumTables())
	}
}
