package bitmap

import (
	"slices"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

const indexSubHeaderSize = 8 // indexFormat, imageFormat uint16; imageDataOffset uint32

// IndexSubTable locates the "EBDT" byte range for each glyph in one
// bitmap size's [FirstGlyphIndex, LastGlyphIndex] range. Formats 4 and 5
// enumerate a sparse subset of that range; a glyph inside the range but
// not enumerated is "missing", reported by GlyphOffset returning found
// == false rather than an error.
type IndexSubTable interface {
	IndexFormat() uint16
	ImageFormat() uint16
	ImageDataOffset() uint32
	FirstGlyphIndex() uint16
	LastGlyphIndex() uint16

	// GlyphOffset returns the byte range of glyphId's bitmap within
	// "EBDT", as (start, length), relative to ImageDataOffset. found is
	// false if glyphId is inside the range but not enumerated.
	GlyphOffset(glyphID int) (start, length int, found bool, err error)
}

type header struct {
	indexFormat     uint16
	imageFormat     uint16
	imageDataOffset uint32
	firstGlyph      uint16
	lastGlyph       uint16
}

func (h header) IndexFormat() uint16     { return h.indexFormat }
func (h header) ImageFormat() uint16     { return h.imageFormat }
func (h header) ImageDataOffset() uint32 { return h.imageDataOffset }
func (h header) FirstGlyphIndex() uint16 { return h.firstGlyph }
func (h header) LastGlyphIndex() uint16  { return h.lastGlyph }

func decodeHeader(data *fontdata.Data, offset, first, last int) (header, error) {
	indexFormat, err := data.ReadUShort(offset)
	if err != nil {
		return header{}, err
	}
	imageFormat, err := data.ReadUShort(offset + 2)
	if err != nil {
		return header{}, err
	}
	imageDataOffset, err := data.ReadULong(offset + 4)
	if err != nil {
		return header{}, err
	}
	return header{
		indexFormat: indexFormat, imageFormat: imageFormat, imageDataOffset: imageDataOffset,
		firstGlyph: uint16(first), lastGlyph: uint16(last),
	}, nil
}

func checkGlyphRange(h header, glyphID int) error {
	if glyphID < int(h.firstGlyph) || glyphID > int(h.lastGlyph) {
		return &sfnterror.GlyphOutOfRange{Tag: table.TagEBLC.String(), GlyphID: glyphID, First: int(h.firstGlyph), Last: int(h.lastGlyph)}
	}
	return nil
}

func decodeIndexSubTable(data *fontdata.Data, offset, first, last int) (IndexSubTable, error) {
	h, err := decodeHeader(data, offset, first, last)
	if err != nil {
		return nil, err
	}
	sub, err := data.Slice(offset+indexSubHeaderSize, data.Length()-offset-indexSubHeaderSize)
	if err != nil {
		return nil, err
	}
	switch h.indexFormat {
	case 1:
		return &IndexSubTableFormat1{header: h, data: sub}, nil
	case 2:
		return decodeFormat2(h, sub)
	case 3:
		return &IndexSubTableFormat3{header: h, data: sub}, nil
	case 4:
		return decodeFormat4(h, sub)
	case 5:
		return decodeFormat5(h, sub)
	default:
		return nil, &sfnterror.UnknownFormat{Tag: table.TagEBLC.String(), Format: h.indexFormat}
	}
}

// IndexSubTableFormat1 stores one uint32 offset per glyph plus a
// trailing sentinel, so length is a simple subtraction of adjacent
// entries.
type IndexSubTableFormat1 struct {
	header
	data *fontdata.Data // offsetArray, uint32 per entry
}

func (t *IndexSubTableFormat1) GlyphOffset(glyphID int) (int, int, bool, error) {
	if err := checkGlyphRange(t.header, glyphID); err != nil {
		return 0, 0, false, err
	}
	i := glyphID - int(t.firstGlyph)
	start, err := t.data.ReadULong(4 * i)
	if err != nil {
		return 0, 0, false, err
	}
	end, err := t.data.ReadULong(4 * (i + 1))
	if err != nil {
		return 0, 0, false, err
	}
	return int(start), int(end - start), true, nil
}

// IndexSubTableFormat2 gives every glyph in range the same fixed
// imageSize, so no offset array is stored at all.
type IndexSubTableFormat2 struct {
	header
	imageSize  uint32
	bigMetrics BigGlyphMetrics
}

func decodeFormat2(h header, data *fontdata.Data) (*IndexSubTableFormat2, error) {
	imageSize, err := data.ReadULong(0)
	if err != nil {
		return nil, err
	}
	metrics, err := decodeBigGlyphMetrics(data, 4)
	if err != nil {
		return nil, err
	}
	return &IndexSubTableFormat2{header: h, imageSize: imageSize, bigMetrics: metrics}, nil
}

func (t *IndexSubTableFormat2) ImageSize() uint32        { return t.imageSize }
func (t *IndexSubTableFormat2) Metrics() BigGlyphMetrics { return t.bigMetrics }

func (t *IndexSubTableFormat2) GlyphOffset(glyphID int) (int, int, bool, error) {
	if err := checkGlyphRange(t.header, glyphID); err != nil {
		return 0, 0, false, err
	}
	i := glyphID - int(t.firstGlyph)
	return i * int(t.imageSize), int(t.imageSize), true, nil
}

// IndexSubTableFormat3 is Format1 with uint16 offsets, halving the array
// size for fonts under 64KB of bitmap data.
type IndexSubTableFormat3 struct {
	header
	data *fontdata.Data // offsetArray, uint16 per entry
}

func (t *IndexSubTableFormat3) GlyphOffset(glyphID int) (int, int, bool, error) {
	if err := checkGlyphRange(t.header, glyphID); err != nil {
		return 0, 0, false, err
	}
	i := glyphID - int(t.firstGlyph)
	start, err := t.data.ReadUShort(2 * i)
	if err != nil {
		return 0, 0, false, err
	}
	end, err := t.data.ReadUShort(2 * (i + 1))
	if err != nil {
		return 0, 0, false, err
	}
	return int(start), int(end) - int(start), true, nil
}

type codeOffsetPair struct {
	glyphID uint16
	offset  uint32
}

// IndexSubTableFormat4 is a sparse, sorted-by-glyphId array of
// (glyphId, offset) pairs plus a trailing sentinel pair, for strikes
// whose glyph coverage has gaps.
type IndexSubTableFormat4 struct {
	header
	pairs []codeOffsetPair // len == numGlyphs+1; pairs[numGlyphs] is the sentinel
}

func decodeFormat4(h header, data *fontdata.Data) (*IndexSubTableFormat4, error) {
	numGlyphs, err := data.ReadULongAsInt(0)
	if err != nil {
		return nil, err
	}
	pairs := make([]codeOffsetPair, numGlyphs+1)
	for i := range pairs {
		base := 4 + i*4
		gid, err := data.ReadUShort(base)
		if err != nil {
			return nil, err
		}
		off, err := data.ReadUShort(base + 2)
		if err != nil {
			return nil, err
		}
		pairs[i] = codeOffsetPair{glyphID: gid, offset: uint32(off)}
	}
	return &IndexSubTableFormat4{header: h, pairs: pairs}, nil
}

func (t *IndexSubTableFormat4) GlyphOffset(glyphID int) (int, int, bool, error) {
	if err := checkGlyphRange(t.header, glyphID); err != nil {
		return 0, 0, false, err
	}
	n := len(t.pairs) - 1
	i, ok := slices.BinarySearchFunc(t.pairs[:n], uint16(glyphID), func(p codeOffsetPair, id uint16) int {
		return int(p.glyphID) - int(id)
	})
	if !ok {
		return 0, 0, false, nil
	}
	start := t.pairs[i].offset
	end := t.pairs[i+1].offset
	return int(start), int(end - start), true, nil
}

// IndexSubTableFormat5 combines Format4's sparse coverage with Format2's
// fixed imageSize: a sorted glyphId array with no offsets at all, since
// every entry's bitmap is the same size.
type IndexSubTableFormat5 struct {
	header
	imageSize  uint32
	bigMetrics BigGlyphMetrics
	glyphIDs   []uint16 // sorted
}

func decodeFormat5(h header, data *fontdata.Data) (*IndexSubTableFormat5, error) {
	imageSize, err := data.ReadULong(0)
	if err != nil {
		return nil, err
	}
	metrics, err := decodeBigGlyphMetrics(data, 4)
	if err != nil {
		return nil, err
	}
	numGlyphs, err := data.ReadULongAsInt(4 + bigGlyphMetricsSize)
	if err != nil {
		return nil, err
	}
	base := 4 + bigGlyphMetricsSize + 4
	ids := make([]uint16, numGlyphs)
	for i := range ids {
		v, err := data.ReadUShort(base + 2*i)
		if err != nil {
			return nil, err
		}
		ids[i] = v
	}
	return &IndexSubTableFormat5{header: h, imageSize: imageSize, bigMetrics: metrics, glyphIDs: ids}, nil
}

func (t *IndexSubTableFormat5) ImageSize() uint32        { return t.imageSize }
func (t *IndexSubTableFormat5) Metrics() BigGlyphMetrics { return t.bigMetrics }

func (t *IndexSubTableFormat5) GlyphOffset(glyphID int) (int, int, bool, error) {
	if err := checkGlyphRange(t.header, glyphID); err != nil {
		return 0, 0, false, err
	}
	i, ok := slices.BinarySearchFunc(t.glyphIDs, uint16(glyphID), func(id, target uint16) int {
		return int(id) - int(target)
	})
	if !ok {
		return 0, 0, false, nil
	}
	return i * int(t.imageSize), int(t.imageSize), true, nil
}
