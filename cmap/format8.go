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

// format8Is32Size is the byte size of the is32 bitfield: one bit per
// 16-bit code unit, marking which are the lead surrogate of a 32-bit
// code.
const format8Is32Size = 8192

const format8HeaderSize = 2 + 2 + 4 + 4 + format8Is32Size + 4

// Format8 is a mixed 16-bit-and-32-bit-coverage subtable: an is32
// bitfield distinguishing single UTF-16 code units from surrogate pairs,
// followed by segmented-coverage groups over the resulting code points.
type Format8 struct {
	Is32   [format8Is32Size]byte
	Groups []group12
}

func (f *Format8) Format() uint16 { return 8 }

func (f *Format8) Lookup(code uint32) (GlyphID, bool) {
	i := findGroup12(f.Groups, code)
	if i < 0 {
		return 0, false
	}
	return GlyphID(f.Groups[i].StartGlyphID + (code - f.Groups[i].StartCharCode)), true
}

func (f *Format8) CodeRange() (low, high uint32) {
	if len(f.Groups) == 0 {
		return 0, 0
	}
	return f.Groups[0].StartCharCode, f.Groups[len(f.Groups)-1].EndCharCode
}

// IsSurrogatePair reports whether the given 16-bit code unit is the lead
// of a surrogate pair, per the is32 bitfield.
func (f *Format8) IsSurrogatePair(codeUnit uint16) bool {
	return f.Is32[codeUnit/8]&(1<<(7-codeUnit%8)) != 0
}

func decodeFormat8(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() < format8HeaderSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 8 subtable shorter than its header"}
	}
	f := &Format8{}
	for i := range f.Is32 {
		b, err := data.ReadUByte(12 + i)
		if err != nil {
			return nil, err
		}
		f.Is32[i] = b
	}
	groups, err := decodeGroups12(data, format8HeaderSize)
	if err != nil {
		return nil, err
	}
	f.Groups = groups
	return f, nil
}

func (f *Format8) Encode(language uint16) []byte {
	length := format8HeaderSize + len(f.Groups)*12
	buf := fontdata.NewGrowable(length)
	_, _ = buf.WriteUShort(0, 8)
	_, _ = buf.WriteUShort(2, 0)
	_, _ = buf.WriteULong(4, uint32(length))
	_, _ = buf.WriteULong(8, uint32(language))
	for i, b := range f.Is32 {
		_, _ = buf.WriteUByte(12+i, b)
	}
	_, _ = buf.WriteULong(12+format8Is32Size, uint32(len(f.Groups)))
	for i, g := range f.Groups {
		base := format8HeaderSize + i*12
		_, _ = buf.WriteULong(base, g.StartCharCode)
		_, _ = buf.WriteULong(base+4, g.EndCharCode)
		_, _ = buf.WriteULong(base+8, g.StartGlyphID)
	}
	return buf.Bytes()
}
