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

// Format6 is a trimmed-table-mapping subtable: a dense array of glyph
// IDs for a contiguous run of character codes starting at FirstCode.
type Format6 struct {
	FirstCode    uint16
	GlyphIDArray []GlyphID
}

func (f *Format6) Format() uint16 { return 6 }

func (f *Format6) Lookup(code uint32) (GlyphID, bool) {
	if code < uint32(f.FirstCode) || code >= uint32(f.FirstCode)+uint32(len(f.GlyphIDArray)) {
		return 0, false
	}
	g := f.GlyphIDArray[code-uint32(f.FirstCode)]
	return g, g != 0
}

func (f *Format6) CodeRange() (low, high uint32) {
	i := 0
	for i < len(f.GlyphIDArray) && f.GlyphIDArray[i] == 0 {
		i++
	}
	if i == len(f.GlyphIDArray) {
		return 0, 0
	}
	j := len(f.GlyphIDArray) - 1
	for f.GlyphIDArray[j] == 0 {
		j--
	}
	return uint32(f.FirstCode) + uint32(i), uint32(f.FirstCode) + uint32(j)
}

func decodeFormat6(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() < 10 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 6 subtable shorter than 10 bytes"}
	}
	firstCode, err := data.ReadUShort(6)
	if err != nil {
		return nil, err
	}
	count, err := data.ReadUShort(8)
	if err != nil {
		return nil, err
	}
	if data.Length() < 10+2*int(count) {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 6 subtable shorter than its glyphIdArray"}
	}
	f := &Format6{FirstCode: firstCode, GlyphIDArray: make([]GlyphID, count)}
	for i := range f.GlyphIDArray {
		v, err := data.ReadUShort(10 + 2*i)
		if err != nil {
			return nil, err
		}
		f.GlyphIDArray[i] = GlyphID(v)
	}
	return f, nil
}

func (f *Format6) Encode(language uint16) []byte {
	length := 10 + 2*len(f.GlyphIDArray)
	buf := fontdata.NewGrowable(length)
	_, _ = buf.WriteUShort(0, 6)
	_, _ = buf.WriteUShort(2, uint16(length))
	_, _ = buf.WriteUShort(4, language)
	_, _ = buf.WriteUShort(6, f.FirstCode)
	_, _ = buf.WriteUShort(8, uint16(len(f.GlyphIDArray)))
	for i, g := range f.GlyphIDArray {
		_, _ = buf.WriteUShort(10+2*i, uint16(g))
	}
	return buf.Bytes()
}
