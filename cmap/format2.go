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
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// subHeader2 is one entry of a Format2 subHeaderArray. BaseIndex is the
// index into GlyphIndexArray that FirstCode maps to (already resolved
// from the wire idRangeOffset's self-relative byte pointer), or -1 if
// the subHeader maps nothing.
type subHeader2 struct {
	FirstCode  uint16
	EntryCount uint16
	IDDelta    int16
	BaseIndex  int
}

// Format2 is a high-byte-mapping-through-table subtable, used by legacy
// mixed 8/16-bit CJK encodings. The high byte selects a subHeader via
// SubHeaderKeys; a high byte that selects subHeader 0 denotes a
// single-byte code (low byte 0). In every case it is the low byte that
// is resolved against the selected subHeader's FirstCode/EntryCount/
// IDDelta, the same delta/offset resolution Format4 uses for 16-bit
// segments.
type Format2 struct {
	SubHeaderKeys   [256]uint16 // subHeader index for each possible high byte
	SubHeaders      []subHeader2
	GlyphIndexArray []uint16
}

func (f *Format2) Format() uint16 { return 2 }

func (f *Format2) Lookup(code uint32) (GlyphID, bool) {
	if code > 0xFFFF {
		return 0, false
	}
	highByte := uint8(code >> 8)
	lowByte := uint8(code)
	shIdx := f.SubHeaderKeys[highByte]
	if int(shIdx) >= len(f.SubHeaders) {
		return 0, false
	}
	sh := f.SubHeaders[shIdx]

	charCode := uint16(lowByte)
	if sh.EntryCount == 0 || charCode < sh.FirstCode || charCode >= sh.FirstCode+sh.EntryCount || sh.BaseIndex < 0 {
		return 0, false
	}
	idx := sh.BaseIndex + int(charCode-sh.FirstCode)
	if idx < 0 || idx >= len(f.GlyphIndexArray) {
		return 0, false
	}
	g := f.GlyphIndexArray[idx]
	if g == 0 {
		return 0, false
	}
	return GlyphID(uint16(int(g) + int(sh.IDDelta))), true
}

func (f *Format2) CodeRange() (low, high uint32) {
	found := false
	for code := uint32(0); code <= 0xFFFF; code++ {
		if _, ok := f.Lookup(code); ok {
			if !found {
				low = code
				found = true
			}
			high = code
		}
	}
	return
}

const format2HeaderSize = 6 + 512 // format,length,language + 256 subHeaderKeys

func decodeFormat2(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() < format2HeaderSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 2 subtable shorter than subHeaderKeys array"}
	}
	f := &Format2{}
	numSubHeaders := 0
	for i := range f.SubHeaderKeys {
		v, err := data.ReadUShort(6 + 2*i)
		if err != nil {
			return nil, err
		}
		idx := v / 8
		f.SubHeaderKeys[i] = idx
		if int(idx)+1 > numSubHeaders {
			numSubHeaders = int(idx) + 1
		}
	}

	subHeadersStart := format2HeaderSize
	glyphArrayStart := subHeadersStart + numSubHeaders*8
	if data.Length() < glyphArrayStart {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 2 subtable shorter than subHeaderArray"}
	}

	f.SubHeaders = make([]subHeader2, numSubHeaders)
	for i := range f.SubHeaders {
		base := subHeadersStart + i*8
		firstCode, err := data.ReadUShort(base)
		if err != nil {
			return nil, err
		}
		entryCount, err := data.ReadUShort(base + 2)
		if err != nil {
			return nil, err
		}
		idDelta, err := data.ReadShort(base + 4)
		if err != nil {
			return nil, err
		}
		idRangeOffset, err := data.ReadUShort(base + 6)
		if err != nil {
			return nil, err
		}
		baseIndex := -1
		if idRangeOffset != 0 {
			fieldOffset := base + 6
			pointerTarget := fieldOffset + int(idRangeOffset)
			baseIndex = (pointerTarget - glyphArrayStart) / 2
		}
		f.SubHeaders[i] = subHeader2{FirstCode: firstCode, EntryCount: entryCount, IDDelta: idDelta, BaseIndex: baseIndex}
	}

	count := (data.Length() - glyphArrayStart) / 2
	f.GlyphIndexArray = make([]uint16, count)
	for i := range f.GlyphIndexArray {
		v, err := data.ReadUShort(glyphArrayStart + 2*i)
		if err != nil {
			return nil, err
		}
		f.GlyphIndexArray[i] = v
	}
	return f, nil
}

func (f *Format2) Encode(language uint16) []byte {
	subHeadersStart := format2HeaderSize
	glyphArrayStart := subHeadersStart + len(f.SubHeaders)*8
	length := glyphArrayStart + 2*len(f.GlyphIndexArray)

	buf := fontdata.NewGrowable(length)
	_, _ = buf.WriteUShort(0, 2)
	_, _ = buf.WriteUShort(2, uint16(length))
	_, _ = buf.WriteUShort(4, language)
	for i, idx := range f.SubHeaderKeys {
		_, _ = buf.WriteUShort(6+2*i, idx*8)
	}
	for i, sh := range f.SubHeaders {
		base := subHeadersStart + i*8
		var idRangeOffset uint16
		if sh.BaseIndex >= 0 {
			fieldOffset := base + 6
			pointerTarget := glyphArrayStart + 2*sh.BaseIndex
			idRangeOffset = uint16(pointerTarget - fieldOffset)
		}
		_, _ = buf.WriteUShort(base, sh.FirstCode)
		_, _ = buf.WriteUShort(base+2, sh.EntryCount)
		_, _ = buf.WriteShort(base+4, sh.IDDelta)
		_, _ = buf.WriteUShort(base+6, idRangeOffset)
	}
	for i, g := range f.GlyphIndexArray {
		_, _ = buf.WriteUShort(glyphArrayStart+2*i, g)
	}
	return buf.Bytes()
}
