package sfnt

import (
	"github.com/tesserfont/sfnt/bitmap"
	"github.com/tesserfont/sfnt/cmap"
	"github.com/tesserfont/sfnt/core"
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/glyf"
	"github.com/tesserfont/sfnt/opentype"
	"github.com/tesserfont/sfnt/table"
)

func init() {
	registerSimpleBuilder(table.TagHead, func(d *fontdata.Data) table.Builder { return core.NewHeadBuilder(d) })
	registerSimpleBuilder(table.TagHhea, func(d *fontdata.Data) table.Builder { return core.NewHheaBuilder(d) })
	registerSimpleBuilder(table.TagMaxp, func(d *fontdata.Data) table.Builder { return core.NewMaxpBuilder(d) })
	registerSimpleBuilder(table.TagOS2, func(d *fontdata.Data) table.Builder { return core.NewOS2Builder(d) })
	registerSimpleBuilder(table.TagName, func(d *fontdata.Data) table.Builder { return core.NewNameBuilder(d) })
	registerSimpleBuilder(table.TagPost, func(d *fontdata.Data) table.Builder { return core.NewPostBuilder(d) })
	registerSimpleBuilder(table.TagCmap, func(d *fontdata.Data) table.Builder { return cmap.NewBuilder(d) })
}

// Cmap decodes and returns the font's "cmap" table.
func (f *Font) Cmap() (cmap.Table, error) {
	t, ok := f.tables[table.TagCmap]
	if !ok {
		return nil, nil
	}
	return cmap.Decode(t.Data)
}

// Head decodes and returns the font's "head" table.
func (f *Font) Head() (*core.Head, error) {
	t, ok := f.tables[table.TagHead]
	if !ok {
		return nil, nil
	}
	return core.DecodeHead(t.Data)
}

// Hhea decodes and returns the font's "hhea" table.
func (f *Font) Hhea() (*core.Hhea, error) {
	t, ok := f.tables[table.TagHhea]
	if !ok {
		return nil, nil
	}
	return core.DecodeHhea(t.Data)
}

// Maxp decodes and returns the font's "maxp" table.
func (f *Font) Maxp() (*core.Maxp, error) {
	t, ok := f.tables[table.TagMaxp]
	if !ok {
		return nil, nil
	}
	return core.DecodeMaxp(t.Data)
}

// OS2 decodes and returns the font's "OS/2" table.
func (f *Font) OS2() (*core.OS2, error) {
	t, ok := f.tables[table.TagOS2]
	if !ok {
		return nil, nil
	}
	return core.DecodeOS2(t.Data)
}

// Name decodes and returns the font's "name" table.
func (f *Font) Name() (*core.Name, error) {
	t, ok := f.tables[table.TagName]
	if !ok {
		return nil, nil
	}
	return core.DecodeName(t.Data)
}

// Post decodes and returns the font's "post" table.
func (f *Font) Post() (*core.Post, error) {
	t, ok := f.tables[table.TagPost]
	if !ok {
		return nil, nil
	}
	return core.DecodePost(t.Data)
}

// Hmtx decodes and returns the font's "hmtx" table, resolving its
// numberOfHMetrics and numGlyphs dependencies from "hhea" and "maxp"
// rather than through a back-pointer.
func (f *Font) Hmtx() (*core.Hmtx, error) {
	t, ok := f.tables[table.TagHmtx]
	if !ok {
		return nil, nil
	}
	hhea, err := f.Hhea()
	if err != nil {
		return nil, err
	}
	maxp, err := f.Maxp()
	if err != nil {
		return nil, err
	}
	if hhea == nil || maxp == nil {
		return nil, nil
	}
	return core.DecodeHmtx(t.Data, int(hhea.NumberOfHMetrics), maxp.NumGlyphs)
}

// HmtxBuilder returns an editable builder for the "hmtx" table, resolving
// its cross-table dependencies from the receiver's own "hhea" and "maxp"
// tables. Callers that need those values from a Builder in progress
// instead should construct core.NewHmtxBuilder directly.
func (f *Font) HmtxBuilder() (*core.HmtxBuilder, error) {
	t, ok := f.tables[table.TagHmtx]
	if !ok {
		return nil, nil
	}
	hhea, err := f.Hhea()
	if err != nil {
		return nil, err
	}
	maxp, err := f.Maxp()
	if err != nil {
		return nil, err
	}
	if hhea == nil || maxp == nil {
		return nil, nil
	}
	return core.NewHmtxBuilder(t.Data, int(hhea.NumberOfHMetrics), maxp.NumGlyphs), nil
}

// Loca decodes and returns the font's "loca" offsets, resolving
// indexToLocFormat and numGlyphs from "head" and "maxp".
func (f *Font) Loca() ([]uint32, error) {
	t, ok := f.tables[table.TagLoca]
	if !ok {
		return nil, nil
	}
	head, err := f.Head()
	if err != nil {
		return nil, err
	}
	maxp, err := f.Maxp()
	if err != nil {
		return nil, err
	}
	if head == nil || maxp == nil {
		return nil, nil
	}
	return glyf.DecodeLoca(t.Data, head.IndexToLocFormat, maxp.NumGlyphs)
}

// LocaBuilder returns an editable builder for the "loca" table.
func (f *Font) LocaBuilder() (*glyf.LocaBuilder, error) {
	t, ok := f.tables[table.TagLoca]
	if !ok {
		return nil, nil
	}
	head, err := f.Head()
	if err != nil {
		return nil, err
	}
	maxp, err := f.Maxp()
	if err != nil {
		return nil, err
	}
	if head == nil || maxp == nil {
		return nil, nil
	}
	return glyf.NewLocaBuilder(t.Data, head.IndexToLocFormat, maxp.NumGlyphs), nil
}

// Glyf decodes and returns the font's glyph outlines, resolving its loca
// offsets from the receiver's own "loca" table.
func (f *Font) Glyf() ([]*glyf.Glyph, error) {
	t, ok := f.tables[table.TagGlyf]
	if !ok {
		return nil, nil
	}
	offsets, err := f.Loca()
	if err != nil {
		return nil, err
	}
	if offsets == nil {
		return nil, nil
	}
	return glyf.DecodeGlyf(t.Data, offsets)
}

// GlyfBuilder returns an editable builder for the "glyf" table.
func (f *Font) GlyfBuilder() (*glyf.GlyfBuilder, error) {
	t, ok := f.tables[table.TagGlyf]
	if !ok {
		return nil, nil
	}
	offsets, err := f.Loca()
	if err != nil {
		return nil, err
	}
	if offsets == nil {
		return nil, nil
	}
	return glyf.NewGlyfBuilder(t.Data, offsets), nil
}

// EBLC decodes and returns the font's embedded-bitmap location table.
func (f *Font) EBLC() (*bitmap.EBLC, error) {
	t, ok := f.tables[table.TagEBLC]
	if !ok {
		return nil, nil
	}
	return bitmap.DecodeEBLC(t.Data)
}

// EBDT returns a byte-range accessor over the font's embedded-bitmap
// data block. Individual glyph images are reached through the
// IndexSubTable entries EBLC resolves.
func (f *Font) EBDT() (*bitmap.EBDT, error) {
	t, ok := f.tables[table.TagEBDT]
	if !ok {
		return nil, nil
	}
	return bitmap.DecodeEBDT(t.Data), nil
}

// EBSC decodes and returns the font's bitmap-scale table, a pass-through
// view with no editable model (see bitmap.EBSC).
func (f *Font) EBSC() (*bitmap.EBSC, error) {
	t, ok := f.tables[table.TagEBSC]
	if !ok {
		return nil, nil
	}
	return bitmap.DecodeEBSC(t.Data)
}

// GSUB decodes and returns the font's glyph-substitution layout table's
// script/feature/lookup list headers, without interpreting any lookup.
func (f *Font) GSUB() (*opentype.GSUB, error) {
	t, ok := f.tables[table.TagGSUB]
	if !ok {
		return nil, nil
	}
	return opentype.DecodeGSUB(t.Data)
}

// GPOS decodes and returns the font's glyph-positioning layout table's
// script/feature/lookup list headers, without interpreting any lookup.
func (f *Font) GPOS() (*opentype.GPOS, error) {
	t, ok := f.tables[table.TagGPOS]
	if !ok {
		return nil, nil
	}
	return opentype.DecodeGPOS(t.Data)
}

// GDEF decodes and returns the font's glyph-definition table's class
// definitions.
func (f *Font) GDEF() (*opentype.GDEF, error) {
	t, ok := f.tables[table.TagGDEF]
	if !ok {
		return nil, nil
	}
	return opentype.DecodeGDEF(t.Data)
}
