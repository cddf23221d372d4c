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

// Format0 is a byte-encoding-table subtable: a flat 256-entry array
// indexed directly by character code, for single-byte encodings.
type Format0 struct {
	GlyphIDArray [256]uint8
}

func (f *Format0) Format() uint16 { return 0 }

func (f *Format0) Lookup(code uint32) (GlyphID, bool) {
	if code >= 256 {
		return 0, false
	}
	g := f.GlyphIDArray[code]
	return GlyphID(g), g != 0
}

func (f *Format0) CodeRange() (low, high uint32) {
	found := false
	for i, g := range f.GlyphIDArray {
		if g == 0 {
			continue
		}
		if !found {
			low = uint32(i)
			found = true
		}
		high = uint32(i)
	}
	return
}

func (f *Format0) Encode(language uint16) []byte {
	buf := fontdata.NewGrowable(6 + 256)
	_, _ = buf.WriteUShort(0, 0)
	_, _ = buf.WriteUShort(2, 6+256)
	_, _ = buf.WriteUShort(4, language)
	for i, g := range f.GlyphIDArray {
		_, _ = buf.WriteUByte(6+i, g)
	}
	return buf.Bytes()
}

func decodeFormat0(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() != 6+256 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 0 subtable must be exactly 262 bytes"}
	}
	f := &Format0{}
	for i := range f.GlyphIDArray {
		b, err := data.ReadUByte(6 + i)
		if err != nil {
			return nil, err
		}
		f.GlyphIDArray[i] = b
	}
	return f, nil
}
