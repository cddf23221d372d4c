package table

import (
	"encoding/binary"
	"testing"

	"github.com/tesserfont/sfnt/fontdata"
)

func decodeCounter(d *fontdata.Data) (int, error) {
	v, err := d.ReadULong(0)
	return int(v), err
}

func encodeCounter(v int) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return b[:]
}

func TestModelBuilderPristinePassthrough(t *testing.T) {
	data := fontdata.New(encodeCounter(7))
	b := NewModelBuilder(Tag(0), data, decodeCounter, encodeCounter)

	if b.ModelChanged() {
		t.Fatal("a pristine builder should not report modelChanged")
	}
	out := fontdata.NewGrowable(b.DataSizeToSerialize())
	if _, err := b.Serialize(out); err != nil {
		t.Fatal(err)
	}
	if got := out.Bytes(); string(got) != string(encodeCounter(7)) {
		t.Fatalf("pristine Serialize should reproduce the input bytes, got % x", got)
	}
}

func TestModelBuilderEditedReSerializes(t *testing.T) {
	data := fontdata.New(encodeCounter(7))
	b := NewModelBuilder(Tag(0), data, decodeCounter, encodeCounter)

	if err := b.Mutate(func(v *int) { *v = 99 }); err != nil {
		t.Fatal(err)
	}
	if !b.ModelChanged() {
		t.Fatal("Mutate should raise modelChanged")
	}

	out := fontdata.NewGrowable(b.DataSizeToSerialize())
	if _, err := b.Serialize(out); err != nil {
		t.Fatal(err)
	}
	got, err := fontdata.New(out.Bytes()).ReadULong(0)
	if err != nil || got != 99 {
		t.Fatalf("Serialize after Mutate: got %d, %v, want 99", got, err)
	}
}

func TestModelBuilderFromScratchNeedsModel(t *testing.T) {
	b := NewModelBuilder[int](Tag(0), nil, decodeCounter, encodeCounter)
	if b.ReadyToSerialize() {
		t.Fatal("a from-scratch builder with no model set should not be ready")
	}
	b.SetModel(3)
	if !b.ReadyToSerialize() {
		t.Fatal("SetModel should make the builder ready")
	}
}
