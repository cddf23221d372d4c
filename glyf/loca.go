// Package glyf implements the "loca" glyph-location table and the
// "glyf" glyph-outline table it indexes: loca offset decoding and
// composite glyph flag dispatch, extended to fully decode simple-glyph
// point flags and coordinates rather than keeping them as an opaque
// tail.
package glyf

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// DecodeLoca reads a "loca" table, returning numGlyphs+1 byte offsets
// into "glyf": glyph i's outline runs from offsets[i] to offsets[i+1].
// indexToLocFormat comes from "head" (0 = offsets stored /2 as uint16,
// 1 = offsets stored directly as uint32).
func DecodeLoca(data *fontdata.Data, indexToLocFormat int16, numGlyphs int) ([]uint32, error) {
	count := numGlyphs + 1
	offsets := make([]uint32, count)
	var prev uint32
	switch indexToLocFormat {
	case 0:
		if data.Length() < 2*count {
			return nil, &sfnterror.CorruptTable{Tag: table.TagLoca.String(), Reason: "short loca table too small for numGlyphs"}
		}
		for i := range offsets {
			v, err := data.ReadUShort(2 * i)
			if err != nil {
				return nil, err
			}
			pos := uint32(v) * 2
			if pos < prev {
				return nil, &sfnterror.CorruptTable{Tag: table.TagLoca.String(), Reason: "loca offsets are not non-decreasing"}
			}
			offsets[i] = pos
			prev = pos
		}
	case 1:
		if data.Length() < 4*count {
			return nil, &sfnterror.CorruptTable{Tag: table.TagLoca.String(), Reason: "long loca table too small for numGlyphs"}
		}
		for i := range offsets {
			v, err := data.ReadULong(4 * i)
			if err != nil {
				return nil, err
			}
			if v < prev {
				return nil, &sfnterror.CorruptTable{Tag: table.TagLoca.String(), Reason: "loca offsets are not non-decreasing"}
			}
			offsets[i] = v
			prev = v
		}
	default:
		return nil, &sfnterror.UnknownFormat{Tag: table.TagLoca.String(), Format: uint16(indexToLocFormat)}
	}
	return offsets, nil
}

// EncodeLoca writes offsets back to their wire form, choosing the short
// format when every offset fits (halved) in a uint16 and the long format
// otherwise.
func EncodeLoca(offsets []uint32) (data []byte, indexToLocFormat int16) {
	max := offsets[len(offsets)-1]
	if max <= 0x1FFFE {
		buf := fontdata.NewGrowable(2 * len(offsets))
		for i, off := range offsets {
			_, _ = buf.WriteUShort(2*i, uint16(off/2))
		}
		return buf.Bytes(), 0
	}
	buf := fontdata.NewGrowable(4 * len(offsets))
	for i, off := range offsets {
		_, _ = buf.WriteULong(4*i, off)
	}
	return buf.Bytes(), 1
}

// LocaBuilder is the editable builder for a "loca" table. Decoding needs
// indexToLocFormat from "head" and numGlyphs from "maxp"; the builder
// captures them at construction rather than back-referencing the Font.
type LocaBuilder struct {
	table.Base
	indexToLocFormat int16
	numGlyphs        int
	model            []uint32
	hasModel         bool
	cached           []byte
}

// NewLocaBuilder wraps pristine "loca" bytes in a builder.
func NewLocaBuilder(data *fontdata.Data, indexToLocFormat int16, numGlyphs int) *LocaBuilder {
	return &LocaBuilder{Base: table.NewBase(table.TagLoca, data), indexToLocFormat: indexToLocFormat, numGlyphs: numGlyphs}
}

// Model returns the decoded offsets.
func (b *LocaBuilder) Model() ([]uint32, error) {
	if b.hasModel {
		return b.model, nil
	}
	if b.Data() == nil {
		return nil, nil
	}
	m, err := DecodeLoca(b.Data(), b.indexToLocFormat, b.numGlyphs)
	if err != nil {
		return nil, err
	}
	b.model = m
	b.hasModel = true
	return m, nil
}

// SetModel replaces the decoded offsets and raises modelChanged.
func (b *LocaBuilder) SetModel(offsets []uint32) {
	b.model = offsets
	b.hasModel = true
	b.numGlyphs = len(offsets) - 1
	b.cached = nil
	b.SetModelChanged()
}

func (b *LocaBuilder) ReadyToSerialize() bool { return b.Data() != nil || b.hasModel }

func (b *LocaBuilder) bytesToWrite() ([]byte, int16, error) {
	if !b.ModelChanged() && b.Data() != nil {
		return b.Data().Bytes(), b.indexToLocFormat, nil
	}
	m, err := b.Model()
	if err != nil {
		return nil, 0, err
	}
	if b.cached == nil {
		bs, format := EncodeLoca(m)
		b.cached = bs
		b.indexToLocFormat = format
	}
	return b.cached, b.indexToLocFormat, nil
}

func (b *LocaBuilder) DataSizeToSerialize() int {
	bs, _, err := b.bytesToWrite()
	if err != nil {
		return 0
	}
	return len(bs)
}

func (b *LocaBuilder) Serialize(out *fontdata.Data) (int, error) {
	bs, _, err := b.bytesToWrite()
	if err != nil {
		return 0, err
	}
	return out.WriteBytes(0, bs)
}

// IndexToLocFormat reports the format the next Serialize call will emit,
// for the caller to write back into "head".
func (b *LocaBuilder) IndexToLocFormat() int16 { return b.indexToLocFormat }
