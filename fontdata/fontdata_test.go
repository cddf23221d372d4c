package fontdata

import "testing"

func TestReadWriteRoundTrip(t *testing.T) {
	d := NewGrowable(8)
	if _, err := d.WriteULong(0, 0x01020304); err != nil {
		t.Fatal(err)
	}
	if _, err := d.WriteUShort(4, 0xBEEF); err != nil {
		t.Fatal(err)
	}
	v, err := d.ReadULong(0)
	if err != nil || v != 0x01020304 {
		t.Fatalf("ReadULong: got %#x, %v", v, err)
	}
	u, err := d.ReadUShort(4)
	if err != nil || u != 0xBEEF {
		t.Fatalf("ReadUShort: got %#x, %v", u, err)
	}
}

func TestSliceSharesBackingArray(t *testing.T) {
	buf := make([]byte, 16)
	d := NewWritable(buf)
	sub, err := d.Slice(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !sub.Writable() {
		t.Fatal("slice of a writable window should be writable")
	}
	if _, err := sub.WriteULong(0, 0xCAFEBABE); err != nil {
		t.Fatal(err)
	}
	if got, _ := d.ReadULong(4); got != 0xCAFEBABE {
		t.Fatalf("write through slice not visible in parent: got %#x", got)
	}
}

func TestSliceOutOfBounds(t *testing.T) {
	d := New(make([]byte, 10))
	if _, err := d.Slice(8, 4); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
	if _, err := d.Slice(-1, 4); err == nil {
		t.Fatal("expected out-of-bounds error for negative offset")
	}
}

func TestReadOnlyRejectsWrite(t *testing.T) {
	d := New(make([]byte, 4))
	if _, err := d.WriteUByte(0, 1); err == nil {
		t.Fatal("expected write to read-only window to fail")
	}
}

func TestGrowableExtendsOnWrite(t *testing.T) {
	d := NewGrowable(0)
	if _, err := d.WriteULong(4, 42); err != nil {
		t.Fatal(err)
	}
	if d.Length() != 8 {
		t.Fatalf("Length() = %d, want 8", d.Length())
	}
	if got, _ := d.ReadULong(4); got != 42 {
		t.Fatalf("readback = %d, want 42", got)
	}
}

func TestChecksum(t *testing.T) {
	// two whole words, sum of the words mod 2^32
	d := New([]byte{0, 0, 0, 1, 0, 0, 0, 2})
	if got, want := d.Checksum(), uint32(3); got != want {
		t.Fatalf("Checksum() = %d, want %d", got, want)
	}

	// a trailing partial word is zero-padded, not ignored
	padded := New([]byte{0, 0, 0, 1, 0, 0, 1})
	if got, want := padded.Checksum(), uint32(1)+uint32(1)<<8; got != want {
		t.Fatalf("Checksum() with partial word = %#x, want %#x", got, want)
	}
}

func TestReadULongAsIntRejectsTopBit(t *testing.T) {
	d := New([]byte{0x80, 0, 0, 0})
	if _, err := d.ReadULongAsInt(0); err == nil {
		t.Fatal("expected error for value with top bit set")
	}
}

func TestSearchUShort(t *testing.T) {
	starts := []uint16{0, 10, 20, 50}
	ends := []uint16{5, 15, 30, 70}
	buf := NewGrowable(16)
	for i, v := range starts {
		_, _ = buf.WriteUShort(i*2, v)
	}
	for i, v := range ends {
		_, _ = buf.WriteUShort(8+i*2, v)
	}

	cases := []struct {
		key  uint16
		want int
	}{
		{25, 2},
		{7, -1},
		{100, -1},
		{10, 1},
		{15, 1},
	}
	for _, c := range cases {
		if got := buf.SearchUShort(0, 2, 8, 2, len(starts), c.key); got != c.want {
			t.Errorf("SearchUShort(%d) = %d, want %d", c.key, got, c.want)
		}
	}
}

func TestSearchULong(t *testing.T) {
	starts := []uint32{0, 10, 20, 50}
	ends := []uint32{5, 15, 30, 70}
	buf := NewGrowable(32)
	for i, v := range starts {
		_, _ = buf.WriteULong(i*4, v)
	}
	for i, v := range ends {
		_, _ = buf.WriteULong(16+i*4, v)
	}

	cases := []struct {
		key  uint32
		want int
	}{
		{25, 2},
		{7, -1},
		{100, -1},
		{10, 1},
		{15, 1},
	}
	for _, c := range cases {
		if got := buf.SearchULong(0, 4, 16, 4, len(starts), c.key); got != c.want {
			t.Errorf("SearchULong(%d) = %d, want %d", c.key, got, c.want)
		}
	}
}
