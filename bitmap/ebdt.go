package bitmap

import "github.com/tesserfont/sfnt/fontdata"

const bigGlyphMetricsSize = 8
const smallGlyphMetricsSize = 5

// BigGlyphMetrics is the per-glyph metrics header used by image formats
// 6, 7 and 9 (and by the fixed-size Format2/Format5 index subtables, which
// store it once for the whole strike rather than per glyph).
type BigGlyphMetrics struct {
	Height, Width              uint8
	HoriBearingX, HoriBearingY int8
	HoriAdvance                uint8
	VertBearingX, VertBearingY int8
	VertAdvance                uint8
}

func decodeBigGlyphMetrics(data *fontdata.Data, offset int) (BigGlyphMetrics, error) {
	var m BigGlyphMetrics
	vals := make([]byte, bigGlyphMetricsSize)
	for i := range vals {
		b, err := data.ReadByte(offset + i)
		if err != nil {
			return m, err
		}
		vals[i] = b
	}
	m.Height, m.Width = vals[0], vals[1]
	m.HoriBearingX, m.HoriBearingY = int8(vals[2]), int8(vals[3])
	m.HoriAdvance = vals[4]
	m.VertBearingX, m.VertBearingY = int8(vals[5]), int8(vals[6])
	m.VertAdvance = vals[7]
	return m, nil
}

// SmallGlyphMetrics is the per-glyph metrics header used by image formats
// 1-4 and 8: a single advance/bearing pair, shared between the horizontal and
// vertical axes.
type SmallGlyphMetrics struct {
	Height, Width uint8
	BearingX      int8
	BearingY      int8
	Advance       uint8
}

func decodeSmallGlyphMetrics(data *fontdata.Data, offset int) (SmallGlyphMetrics, error) {
	var m SmallGlyphMetrics
	vals := make([]byte, smallGlyphMetricsSize)
	for i := range vals {
		b, err := data.ReadByte(offset + i)
		if err != nil {
			return m, err
		}
		vals[i] = b
	}
	m.Height, m.Width = vals[0], vals[1]
	m.BearingX, m.BearingY = int8(vals[2]), int8(vals[3])
	m.Advance = vals[4]
	return m, nil
}

// Glyph is a decoded "EBDT" glyph image: its metrics header (small or
// big, depending on ImageFormat) plus the payload appropriate to that
// format. Formats 1-7 (byte-aligned, bit-aligned, or fixed-size
// bitmaps) carry a raw pixel Data blob; formats 8 and 9 are composite
// bitmaps assembled from other glyphs via Components.
type Glyph struct {
	ImageFormat  uint16
	SmallMetrics *SmallGlyphMetrics
	BigMetrics   *BigGlyphMetrics
	Data         []byte
	Components   []Component
}

// Component is one entry of a composite bitmap glyph (image formats 8
// and 9): another glyph placed at a fixed integer offset.
type Component struct {
	GlyphID uint16
	XOffset int8
	YOffset int8
}

// EBDT is the raw "EBDT" table: a data block with no directory of its
// own. Every glyph is reached via the (offset, length) an "EBLC"
// IndexSubTable resolves for it.
type EBDT struct {
	data *fontdata.Data
}

// DecodeEBDT wraps "EBDT" bytes; per-glyph access is on demand via Glyph.
func DecodeEBDT(data *fontdata.Data) *EBDT {
	return &EBDT{data: data}
}

// Glyph decodes the glyph image at byte range [start, start+length)
// relative to imageDataOffset, dispatching its metrics header and
// payload layout on imageFormat.
func (t *EBDT) Glyph(imageDataOffset uint32, start, length int, imageFormat uint16) (*Glyph, error) {
	sub, err := t.data.Slice(int(imageDataOffset)+start, length)
	if err != nil {
		return nil, err
	}

	g := &Glyph{ImageFormat: imageFormat}
	switch imageFormat {
	case 1, 2, 3, 4:
		m, err := decodeSmallGlyphMetrics(sub, 0)
		if err != nil {
			return nil, err
		}
		g.SmallMetrics = &m
		rest, err := sub.Slice(smallGlyphMetricsSize, sub.Length()-smallGlyphMetricsSize)
		if err != nil {
			return nil, err
		}
		g.Data = append([]byte(nil), rest.Bytes()...)
	case 6, 7:
		m, err := decodeBigGlyphMetrics(sub, 0)
		if err != nil {
			return nil, err
		}
		g.BigMetrics = &m
		rest, err := sub.Slice(bigGlyphMetricsSize, sub.Length()-bigGlyphMetricsSize)
		if err != nil {
			return nil, err
		}
		g.Data = append([]byte(nil), rest.Bytes()...)
	case 5:
		g.Data = append([]byte(nil), sub.Bytes()...)
	case 8:
		m, err := decodeSmallGlyphMetrics(sub, 0)
		if err != nil {
			return nil, err
		}
		g.SmallMetrics = &m
		comps, err := decodeComponents(sub, smallGlyphMetricsSize+1) // +1: pad byte after small metrics
		if err != nil {
			return nil, err
		}
		g.Components = comps
	case 9:
		m, err := decodeBigGlyphMetrics(sub, 0)
		if err != nil {
			return nil, err
		}
		g.BigMetrics = &m
		comps, err := decodeComponents(sub, bigGlyphMetricsSize)
		if err != nil {
			return nil, err
		}
		g.Components = comps
	default:
		g.Data = append([]byte(nil), sub.Bytes()...)
	}
	return g, nil
}

func decodeComponents(data *fontdata.Data, offset int) ([]Component, error) {
	numComponents, err := data.ReadUShort(offset)
	if err != nil {
		return nil, err
	}
	offset += 2
	comps := make([]Component, numComponents)
	for i := range comps {
		base := offset + i*4
		gid, err := data.ReadUShort(base)
		if err != nil {
			return nil, err
		}
		xOff, err := data.ReadByte(base + 2)
		if err != nil {
			return nil, err
		}
		yOff, err := data.ReadByte(base + 3)
		if err != nil {
			return nil, err
		}
		comps[i] = Component{GlyphID: gid, XOffset: int8(xOff), YOffset: int8(yOff)}
	}
	return comps, nil
}
