// Package bitmap implements the embedded-bitmap location, data, and scale
// tables ("EBLC", "EBDT", "EBSC"), grounded on the retrieved
// IndexSubTable/EbscTable sources and generalizing the same
// format-dispatch and binary-search patterns cmap's segmented formats
// already establish.
package bitmap

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

const eblcHeaderSize = 4 + 4 // version Fixed, numSizes uint32

const bitmapSizeTableSize = 24 + 12 + 4 + 1 + 1 + 2 // indexSubTableArrayOffset..ppemY/bitDepth/flags

// SbitLineMetrics mirrors the OpenType sbitLineMetrics record used by
// hori/vert in a bitmapSizeTable.
type SbitLineMetrics struct {
	Ascender              int8
	Descender             int8
	WidthMax              uint8
	CaretSlopeNumerator   int8
	CaretSlopeDenominator int8
	CaretOffset           int8
	MinOriginSB           int8
	MinAdvanceSB          int8
	MaxBeforeBL           int8
	MinAfterBL            int8
	Pad1, Pad2            int8
}

func decodeSbitLineMetrics(data *fontdata.Data, offset int) (SbitLineMetrics, error) {
	var m SbitLineMetrics
	raw := make([]int8, 12)
	for i := range raw {
		b, err := data.ReadByte(offset + i)
		if err != nil {
			return m, err
		}
		raw[i] = int8(b)
	}
	m.Ascender, m.Descender, m.WidthMax = raw[0], raw[1], uint8(raw[2])
	m.CaretSlopeNumerator, m.CaretSlopeDenominator, m.CaretOffset = raw[3], raw[4], raw[5]
	m.MinOriginSB, m.MinAdvanceSB, m.MaxBeforeBL, m.MinAfterBL = raw[6], raw[7], raw[8], raw[9]
	m.Pad1, m.Pad2 = raw[10], raw[11]
	return m, nil
}

func encodeSbitLineMetrics(buf *fontdata.Data, offset int, m SbitLineMetrics) {
	vals := []int8{
		m.Ascender, m.Descender, int8(m.WidthMax),
		m.CaretSlopeNumerator, m.CaretSlopeDenominator, m.CaretOffset,
		m.MinOriginSB, m.MinAdvanceSB, m.MaxBeforeBL, m.MinAfterBL,
		m.Pad1, m.Pad2,
	}
	for i, v := range vals {
		_, _ = buf.WriteByte(offset+i, byte(v))
	}
}

// BitmapSize is one entry of the "EBLC" table: the strike (a fixed
// point-size rendering) described by its line metrics, glyph range, and
// pixels-per-em/bit-depth, plus the index subtables that locate its
// glyph bitmaps within "EBDT".
type BitmapSize struct {
	Hori, Vert      SbitLineMetrics
	StartGlyphIndex uint16
	EndGlyphIndex   uint16
	PpemX, PpemY    uint8
	BitDepth        uint8
	Flags           int8
	IndexSubTables  []IndexSubTable
}

// EBLC is the decoded "EBLC" table: one BitmapSize per supported strike.
type EBLC struct {
	Version uint32 // Fixed 16.16, always 0x00020000 on the wire
	Sizes   []BitmapSize
}

// DecodeEBLC parses an "EBLC" table.
func DecodeEBLC(data *fontdata.Data) (*EBLC, error) {
	if data.Length() < eblcHeaderSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagEBLC.String(), Reason: "EBLC shorter than its header"}
	}
	version, err := data.ReadULong(0)
	if err != nil {
		return nil, err
	}
	numSizes, err := data.ReadULongAsInt(4)
	if err != nil {
		return nil, err
	}
	if data.Length() < eblcHeaderSize+numSizes*bitmapSizeTableSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagEBLC.String(), Reason: "EBLC shorter than its bitmapSizeTable array"}
	}

	e := &EBLC{Version: version, Sizes: make([]BitmapSize, numSizes)}
	for i := range e.Sizes {
		base := eblcHeaderSize + i*bitmapSizeTableSize
		indexSubTableArrayOffset, err := data.ReadULongAsInt(base)
		if err != nil {
			return nil, err
		}
		numberOfIndexSubTables, err := data.ReadULongAsInt(base + 4)
		if err != nil {
			return nil, err
		}
		hori, err := decodeSbitLineMetrics(data, base+12)
		if err != nil {
			return nil, err
		}
		vert, err := decodeSbitLineMetrics(data, base+24)
		if err != nil {
			return nil, err
		}
		startGlyph, err := data.ReadUShort(base + 36)
		if err != nil {
			return nil, err
		}
		endGlyph, err := data.ReadUShort(base + 38)
		if err != nil {
			return nil, err
		}
		ppemX, err := data.ReadUByte(base + 40)
		if err != nil {
			return nil, err
		}
		ppemY, err := data.ReadUByte(base + 41)
		if err != nil {
			return nil, err
		}
		bitDepth, err := data.ReadUByte(base + 42)
		if err != nil {
			return nil, err
		}
		flags, err := data.ReadByte(base + 43)
		if err != nil {
			return nil, err
		}

		subtables, err := decodeIndexSubTables(data, indexSubTableArrayOffset, numberOfIndexSubTables)
		if err != nil {
			return nil, err
		}

		e.Sizes[i] = BitmapSize{
			Hori: hori, Vert: vert,
			StartGlyphIndex: startGlyph, EndGlyphIndex: endGlyph,
			PpemX: ppemX, PpemY: ppemY, BitDepth: bitDepth, Flags: int8(flags),
			IndexSubTables: subtables,
		}
	}
	return e, nil
}

const indexSubTableEntrySize = 8 // firstGlyphIndex, lastGlyphIndex uint16; additionalOffsetToIndexSubtable uint32

func decodeIndexSubTables(data *fontdata.Data, arrayOffset, count int) ([]IndexSubTable, error) {
	out := make([]IndexSubTable, count)
	for i := range out {
		entryBase := arrayOffset + i*indexSubTableEntrySize
		firstGlyph, err := data.ReadUShort(entryBase)
		if err != nil {
			return nil, err
		}
		lastGlyph, err := data.ReadUShort(entryBase + 2)
		if err != nil {
			return nil, err
		}
		addlOffset, err := data.ReadULongAsInt(entryBase + 4)
		if err != nil {
			return nil, err
		}
		sub, err := decodeIndexSubTable(data, arrayOffset+addlOffset, int(firstGlyph), int(lastGlyph))
		if err != nil {
			return nil, err
		}
		out[i] = sub
	}
	return out, nil
}
