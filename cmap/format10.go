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

const format10HeaderSize = 2 + 2 + 4 + 4 + 4 + 4

// Format10 is a trimmed-array subtable over a (potentially non-BMP)
// contiguous run of character codes, the 32-bit-code-point analogue of
// Format6.
type Format10 struct {
	StartCharCode uint32
	Glyphs        []GlyphID
}

func (f *Format10) Format() uint16 { return 10 }

func (f *Format10) Lookup(code uint32) (GlyphID, bool) {
	if code < f.StartCharCode || code-f.StartCharCode >= uint32(len(f.Glyphs)) {
		return 0, false
	}
	g := f.Glyphs[code-f.StartCharCode]
	return g, g != 0
}

func (f *Format10) CodeRange() (low, high uint32) {
	i := 0
	for i < len(f.Glyphs) && f.Glyphs[i] == 0 {
		i++
	}
	if i == len(f.Glyphs) {
		return 0, 0
	}
	j := len(f.Glyphs) - 1
	for f.Glyphs[j] == 0 {
		j--
	}
	return f.StartCharCode + uint32(i), f.StartCharCode + uint32(j)
}

func decodeFormat10(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() < format10HeaderSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 10 subtable shorter than its header"}
	}
	startCharCode, err := data.ReadULong(12)
	if err != nil {
		return nil, err
	}
	numChars, err := data.ReadULongAsInt(16)
	if err != nil {
		return nil, err
	}
	if data.Length() < format10HeaderSize+2*numChars {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 10 subtable shorter than its glyph array"}
	}
	f := &Format10{StartCharCode: startCharCode, Glyphs: make([]GlyphID, numChars)}
	for i := range f.Glyphs {
		v, err := data.ReadUShort(format10HeaderSize + 2*i)
		if err != nil {
			return nil, err
		}
		f.Glyphs[i] = GlyphID(v)
	}
	return f, nil
}

func (f *Format10) Encode(language uint16) []byte {
	length := format10HeaderSize + 2*len(f.Glyphs)
	buf := fontdata.NewGrowable(length)
	_, _ = buf.WriteUShort(0, 10)
	_, _ = buf.WriteUShort(2, 0)
	_, _ = buf.WriteULong(4, uint32(length))
	_, _ = buf.WriteULong(8, uint32(language))
	_, _ = buf.WriteULong(12, f.StartCharCode)
	_, _ = buf.WriteULong(16, uint32(len(f.Glyphs)))
	for i, g := range f.Glyphs {
		_, _ = buf.WriteUShort(format10HeaderSize+2*i, uint16(g))
	}
	return buf.Bytes()
}
