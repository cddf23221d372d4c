// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cmap

import (
	"slices"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// UnicodeRange is one entry of a Format14 default-UVS table: a run of
// AdditionalCount+1 consecutive code points that use their normal cmap
// mapping when combined with the owning variation selector.
type UnicodeRange struct {
	StartUnicodeValue uint32
	AdditionalCount   uint8
}

// UVSMapping is one entry of a Format14 non-default-UVS table: a single
// code point that maps to an explicit glyph when combined with the
// owning variation selector.
type UVSMapping struct {
	UnicodeValue uint32
	GlyphID      GlyphID
}

// VariationSelectorRecord groups the default and non-default UVS tables
// for one variation selector.
type VariationSelectorRecord struct {
	VarSelector   uint32 // 24-bit
	DefaultUVS    []UnicodeRange
	NonDefaultUVS []UVSMapping
}

// Format14 is a Unicode-variation-sequences subtable. Unlike the other
// formats it does not map plain character codes to glyphs; it resolves
// (base character, variation selector) pairs, via LookupVariant.
type Format14 struct {
	Records []VariationSelectorRecord
}

func (f *Format14) Format() uint16 { return 14 }

// Lookup always fails: Format14 is only meaningful through
// LookupVariant.
func (f *Format14) Lookup(code uint32) (GlyphID, bool) { return 0, false }

func (f *Format14) CodeRange() (low, high uint32) { return 0, 0 }

// LookupVariant resolves a (base, selector) variation sequence. useBase
// reports that the sequence is registered but uses the base character's
// normal cmap mapping rather than an explicit glyph.
func (f *Format14) LookupVariant(base, selector rune) (gid GlyphID, useBase bool, found bool) {
	for _, rec := range f.Records {
		if rune(rec.VarSelector) != selector {
			continue
		}
		for _, m := range rec.NonDefaultUVS {
			if rune(m.UnicodeValue) == base {
				return m.GlyphID, false, true
			}
		}
		_, ok := slices.BinarySearchFunc(rec.DefaultUVS, uint32(base), func(r UnicodeRange, base uint32) int {
			switch {
			case r.StartUnicodeValue+uint32(r.AdditionalCount) < base:
				return -1
			case r.StartUnicodeValue > base:
				return 1
			default:
				return 0
			}
		})
		if ok {
			return 0, true, true
		}
		return 0, false, false
	}
	return 0, false, false
}

func read24(data *fontdata.Data, offset int) (uint32, error) {
	b0, err := data.ReadUByte(offset)
	if err != nil {
		return 0, err
	}
	b1, err := data.ReadUByte(offset + 1)
	if err != nil {
		return 0, err
	}
	b2, err := data.ReadUByte(offset + 2)
	if err != nil {
		return 0, err
	}
	return uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2), nil
}

func write24(buf *fontdata.Data, offset int, v uint32) {
	_, _ = buf.WriteUByte(offset, byte(v>>16))
	_, _ = buf.WriteUByte(offset+1, byte(v>>8))
	_, _ = buf.WriteUByte(offset+2, byte(v))
}

func decodeFormat14(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() < 10 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 14 subtable shorter than its header"}
	}
	numRecords, err := data.ReadULongAsInt(6)
	if err != nil {
		return nil, err
	}
	if data.Length() < 10+11*numRecords {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 14 subtable shorter than its selector records"}
	}

	f := &Format14{Records: make([]VariationSelectorRecord, numRecords)}
	for i := range f.Records {
		base := 10 + i*11
		varSelector, err := read24(data, base)
		if err != nil {
			return nil, err
		}
		defaultOff, err := data.ReadULongAsInt(base + 3)
		if err != nil {
			return nil, err
		}
		nonDefaultOff, err := data.ReadULongAsInt(base + 7)
		if err != nil {
			return nil, err
		}

		rec := VariationSelectorRecord{VarSelector: varSelector}
		if defaultOff != 0 {
			n, err := data.ReadULongAsInt(defaultOff)
			if err != nil {
				return nil, err
			}
			rec.DefaultUVS = make([]UnicodeRange, n)
			for j := range rec.DefaultUVS {
				rBase := defaultOff + 4 + j*4
				start, err := read24(data, rBase)
				if err != nil {
					return nil, err
				}
				count, err := data.ReadUByte(rBase + 3)
				if err != nil {
					return nil, err
				}
				rec.DefaultUVS[j] = UnicodeRange{StartUnicodeValue: start, AdditionalCount: count}
			}
		}
		if nonDefaultOff != 0 {
			n, err := data.ReadULongAsInt(nonDefaultOff)
			if err != nil {
				return nil, err
			}
			rec.NonDefaultUVS = make([]UVSMapping, n)
			for j := range rec.NonDefaultUVS {
				mBase := nonDefaultOff + 4 + j*5
				uv, err := read24(data, mBase)
				if err != nil {
					return nil, err
				}
				gid, err := data.ReadUShort(mBase + 3)
				if err != nil {
					return nil, err
				}
				rec.NonDefaultUVS[j] = UVSMapping{UnicodeValue: uv, GlyphID: GlyphID(gid)}
			}
		}
		f.Records[i] = rec
	}
	return f, nil
}

func (f *Format14) Encode(_ uint16) []byte {
	headerSize := 10 + 11*len(f.Records)
	size := headerSize
	tableOffsets := make([]struct{ def, nonDef int }, len(f.Records))
	for i, rec := range f.Records {
		if len(rec.DefaultUVS) > 0 {
			tableOffsets[i].def = size
			size += 4 + 4*len(rec.DefaultUVS)
		}
		if len(rec.NonDefaultUVS) > 0 {
			tableOffsets[i].nonDef = size
			size += 4 + 5*len(rec.NonDefaultUVS)
		}
	}

	buf := fontdata.NewGrowable(size)
	_, _ = buf.WriteUShort(0, 14)
	_, _ = buf.WriteULong(2, uint32(size))
	_, _ = buf.WriteULong(6, uint32(len(f.Records)))
	for i, rec := range f.Records {
		base := 10 + i*11
		write24(buf, base, rec.VarSelector)
		_, _ = buf.WriteULong(base+3, uint32(tableOffsets[i].def))
		_, _ = buf.WriteULong(base+7, uint32(tableOffsets[i].nonDef))

		if off := tableOffsets[i].def; off != 0 {
			_, _ = buf.WriteULong(off, uint32(len(rec.DefaultUVS)))
			for j, r := range rec.DefaultUVS {
				rBase := off + 4 + j*4
				write24(buf, rBase, r.StartUnicodeValue)
				_, _ = buf.WriteUByte(rBase+3, r.AdditionalCount)
			}
		}
		if off := tableOffsets[i].nonDef; off != 0 {
			_, _ = buf.WriteULong(off, uint32(len(rec.NonDefaultUVS)))
			for j, m := range rec.NonDefaultUVS {
				mBase := off + 4 + j*5
				write24(buf, mBase, m.UnicodeValue)
				_, _ = buf.WriteUShort(mBase+3, uint16(m.GlyphID))
			}
		}
	}
	return buf.Bytes()
}
