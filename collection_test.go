package sfnt

import (
	"testing"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/table"
)

// buildTestCollection assembles a two-font ttc by hand: font A has tables
// "aaaa" (unique) and "bbbb" (shared with font B); font B has "bbbb" and
// "cccc" (unique). Each font's directory is already in sorted-tag order.
func buildTestCollection(t *testing.T) []byte {
	t.Helper()

	const (
		fontAOffset = ttcHeaderSize + 2*4                              // 20
		dirSize     = offsetTableSize + 2*recordSize                   // 44
		fontBOffset = fontAOffset + dirSize                            // 64
		dataOffset  = fontBOffset + dirSize                            // 108
		sharedLen   = 8
		aaaaOffset  = dataOffset + sharedLen
		aaaaLen     = 4
		ccccOffset  = aaaaOffset + aaaaLen
		ccccLen     = 4
	)
	total := ccccOffset + ccccLen
	buf := fontdata.NewGrowable(total)

	_, _ = buf.WriteULong(0, ScalerTypeTTC)
	_, _ = buf.WriteUShort(4, 1) // majorVersion
	_, _ = buf.WriteUShort(6, 0) // minorVersion
	_, _ = buf.WriteULong(8, 2)  // numFonts
	_, _ = buf.WriteULong(ttcHeaderSize, uint32(fontAOffset))
	_, _ = buf.WriteULong(ttcHeaderSize+4, uint32(fontBOffset))

	writeRecord := func(dirBase, i int, tag table.Tag, offset, length uint32) {
		pos := dirBase + offsetTableSize + i*recordSize
		_, _ = buf.WriteULong(pos, uint32(tag))
		_, _ = buf.WriteULong(pos+4, 0)
		_, _ = buf.WriteULong(pos+8, offset)
		_, _ = buf.WriteULong(pos+12, length)
	}

	_, _ = buf.WriteULong(fontAOffset, 0x00010000)
	_, _ = buf.WriteUShort(fontAOffset+4, 2)
	writeRecord(fontAOffset, 0, table.ParseTag("aaaa"), aaaaOffset, aaaaLen)
	writeRecord(fontAOffset, 1, table.ParseTag("bbbb"), dataOffset, sharedLen)

	_, _ = buf.WriteULong(fontBOffset, 0x00010000)
	_, _ = buf.WriteUShort(fontBOffset+4, 2)
	writeRecord(fontBOffset, 0, table.ParseTag("bbbb"), dataOffset, sharedLen)
	writeRecord(fontBOffset, 1, table.ParseTag("cccc"), ccccOffset, ccccLen)

	_, _ = buf.WriteBytes(dataOffset, []byte("SHARED!!"))
	_, _ = buf.WriteBytes(aaaaOffset, []byte("aaaa"))
	_, _ = buf.WriteBytes(ccccOffset, []byte("cccc"))

	return buf.Bytes()
}

func TestLoadCollectionDedupesSharedTables(t *testing.T) {
	raw := buildTestCollection(t)
	c, err := LoadCollection(fontdata.New(raw))
	if err != nil {
		t.Fatal(err)
	}
	if c.NumFonts() != 2 {
		t.Fatalf("NumFonts() = %d, want 2", c.NumFonts())
	}

	fontA, fontB := c.Font(0), c.Font(1)
	tA, ok := fontA.Table(table.ParseTag("bbbb"))
	if !ok {
		t.Fatal("font A missing shared table bbbb")
	}
	tB, ok := fontB.Table(table.ParseTag("bbbb"))
	if !ok {
		t.Fatal("font B missing shared table bbbb")
	}
	if tA != tB {
		t.Fatal("shared table range should decode to the same *table.Table for both fonts")
	}

	uniqueA, ok := fontA.Table(table.ParseTag("aaaa"))
	if !ok || string(uniqueA.Data.Bytes()) != "aaaa" {
		t.Fatalf("font A's unique table wrong: %+v, ok=%v", uniqueA, ok)
	}
	uniqueC, ok := fontB.Table(table.ParseTag("cccc"))
	if !ok || string(uniqueC.Data.Bytes()) != "cccc" {
		t.Fatalf("font B's unique table wrong: %+v, ok=%v", uniqueC, ok)
	}
	if string(tA.Data.Bytes()) != "SHARED!!" {
		t.Fatalf("shared table bytes wrong: %q", tA.Data.Bytes())
	}
}
