package glyf

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/table"
)

// GlyfBuilder is the editable builder for a "glyf" table. Decoding needs
// the offsets that "loca" decodes, so a GlyfBuilder is constructed with
// them already resolved rather than back-referencing the Font.
type GlyfBuilder struct {
	table.Base
	offsets  []uint32
	model    []*Glyph
	hasModel bool
	cached   []byte
}

// NewGlyfBuilder wraps pristine "glyf" bytes in a builder. offsets is the
// numGlyphs+1 array decoded from "loca".
func NewGlyfBuilder(data *fontdata.Data, offsets []uint32) *GlyfBuilder {
	return &GlyfBuilder{Base: table.NewBase(table.TagGlyf, data), offsets: offsets}
}

// Model returns the decoded glyphs, one per loca entry.
func (b *GlyfBuilder) Model() ([]*Glyph, error) {
	if b.hasModel {
		return b.model, nil
	}
	if b.Data() == nil {
		return nil, nil
	}
	m, err := DecodeGlyf(b.Data(), b.offsets)
	if err != nil {
		return nil, err
	}
	b.model = m
	b.hasModel = true
	return m, nil
}

// SetModel replaces the decoded glyphs and raises modelChanged. The
// caller is responsible for writing the resulting Offsets() back into the
// font's "loca" builder.
func (b *GlyfBuilder) SetModel(glyphs []*Glyph) {
	b.model = glyphs
	b.hasModel = true
	b.cached = nil
	b.offsets = nil
	b.SetModelChanged()
}

func (b *GlyfBuilder) ReadyToSerialize() bool { return b.Data() != nil || b.hasModel }

func (b *GlyfBuilder) bytesToWrite() ([]byte, []uint32, error) {
	if !b.ModelChanged() && b.Data() != nil {
		return b.Data().Bytes(), b.offsets, nil
	}
	m, err := b.Model()
	if err != nil {
		return nil, nil, err
	}
	if b.cached == nil {
		bs, offsets := EncodeGlyf(m)
		b.cached = bs
		b.offsets = offsets
	}
	return b.cached, b.offsets, nil
}

func (b *GlyfBuilder) DataSizeToSerialize() int {
	bs, _, err := b.bytesToWrite()
	if err != nil {
		return 0
	}
	return len(bs)
}

func (b *GlyfBuilder) Serialize(out *fontdata.Data) (int, error) {
	bs, _, err := b.bytesToWrite()
	if err != nil {
		return 0, err
	}
	return out.WriteBytes(0, bs)
}

// Offsets reports the loca offsets the next Serialize call will emit, for
// the caller to write back into the font's "loca" builder.
func (b *GlyfBuilder) Offsets() []uint32 {
	_, offsets, _ := b.bytesToWrite()
	return offsets
}
