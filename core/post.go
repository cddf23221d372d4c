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

package core

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// Post holds the decoded "post" table. Names is nil for versions that
// carry no glyph names (2.5, deprecated, and 3.0).
type Post struct {
	Version            uint32 // 16.16 fixed: 0x00010000, 0x00020000, 0x00025000, 0x00030000, 0x00040000
	ItalicAngle        int32  // 16.16 fixed, degrees
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool

	Names []string // per-glyph names, version 1.0/2.0 only
}

const postHeaderSize = 32

const (
	postVersion1  = 0x00010000
	postVersion2  = 0x00020000
	postVersion25 = 0x00025000
	postVersion3  = 0x00030000
	postVersion4  = 0x00040000
)

// DecodePost reads a "post" table from data.
func DecodePost(data *fontdata.Data) (*Post, error) {
	if data.Length() < postHeaderSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagPost.String(), Reason: "table shorter than 32-byte header"}
	}
	p := &Post{}
	var err error
	if p.Version, err = data.ReadULong(0); err != nil {
		return nil, err
	}
	if p.ItalicAngle, err = data.ReadFixed(4); err != nil {
		return nil, err
	}
	if p.UnderlinePosition, err = data.ReadShort(8); err != nil {
		return nil, err
	}
	if p.UnderlineThickness, err = data.ReadShort(10); err != nil {
		return nil, err
	}
	fixedPitch, err := data.ReadULong(12)
	if err != nil {
		return nil, err
	}
	p.IsFixedPitch = fixedPitch != 0

	switch p.Version {
	case postVersion1:
		p.Names = append([]string(nil), macGlyphOrder...)
	case postVersion2:
		numGlyphs, err := data.ReadUShort(postHeaderSize)
		if err != nil {
			return nil, err
		}
		indices := make([]uint16, numGlyphs)
		off := postHeaderSize + 2
		for i := range indices {
			if indices[i], err = data.ReadUShort(off); err != nil {
				return nil, err
			}
			off += 2
		}
		var pool []string
		for pos := off; pos < data.Length(); {
			l, err := data.ReadUByte(pos)
			if err != nil {
				return nil, err
			}
			sd, err := data.Slice(pos+1, int(l))
			if err != nil {
				return nil, &sfnterror.CorruptTable{Tag: table.TagPost.String(), Reason: "pascal string runs past table end"}
			}
			pool = append(pool, string(sd.Bytes()))
			pos += 1 + int(l)
		}
		p.Names = make([]string, numGlyphs)
		for i, idx := range indices {
			if int(idx) < len(macGlyphOrder) {
				p.Names[i] = macGlyphOrder[idx]
				continue
			}
			j := int(idx) - len(macGlyphOrder)
			if j >= 0 && j < len(pool) {
				p.Names[i] = pool[j]
			}
		}
	case postVersion25, postVersion3, postVersion4:
		// no glyph names in the wire format
	default:
		return nil, &sfnterror.UnknownFormat{Tag: table.TagPost.String(), Format: uint16(p.Version >> 16)}
	}
	return p, nil
}

// EncodePost writes p back to its wire form. If p.Names is nil the table
// is written as version 3.0; if every name matches the standard Macintosh
// glyph order it is written as version 1.0; otherwise version 2.0.
func EncodePost(p *Post) []byte {
	version := uint32(postVersion3)
	if p.Names != nil {
		if isMacGlyphOrder(p.Names) {
			version = postVersion1
		} else {
			version = postVersion2
		}
	}

	header := postHeaderSize
	var body []byte
	if version == postVersion2 {
		numGlyphs := len(p.Names)
		body = make([]byte, 2+2*numGlyphs)
		body[0] = byte(numGlyphs >> 8)
		body[1] = byte(numGlyphs)

		macIndex := make(map[string]int, len(macGlyphOrder))
		for i, name := range macGlyphOrder {
			macIndex[name] = i
		}
		var pool []byte
		poolIndex := make(map[string]int)
		nextNew := 0
		for i, name := range p.Names {
			var idx int
			if mi, ok := macIndex[name]; ok {
				idx = mi
			} else if pi, ok := poolIndex[name]; ok {
				idx = len(macGlyphOrder) + pi
			} else {
				idx = len(macGlyphOrder) + nextNew
				poolIndex[name] = nextNew
				nextNew++
				pool = append(pool, byte(len(name)))
				pool = append(pool, name...)
			}
			body[2+2*i] = byte(idx >> 8)
			body[2+2*i+1] = byte(idx)
		}
		body = append(body, pool...)
	}

	buf := fontdata.NewGrowable(header + len(body))
	_, _ = buf.WriteULong(0, version)
	_, _ = buf.WriteFixed(4, p.ItalicAngle)
	_, _ = buf.WriteShort(8, p.UnderlinePosition)
	_, _ = buf.WriteShort(10, p.UnderlineThickness)
	if p.IsFixedPitch {
		_, _ = buf.WriteULong(12, 1)
	}
	_, _ = buf.WriteBytes(header, body)
	return buf.Bytes()
}

func isMacGlyphOrder(names []string) bool {
	if len(names) != len(macGlyphOrder) {
		return false
	}
	for i, n := range names {
		if n != macGlyphOrder[i] {
			return false
		}
	}
	return true
}

// PostBuilder is the editable builder for the "post" table.
type PostBuilder struct {
	*table.ModelBuilder[*Post]
}

// NewPostBuilder wraps pristine "post" bytes in a builder.
func NewPostBuilder(data *fontdata.Data) *PostBuilder {
	return &PostBuilder{table.NewModelBuilder(table.TagPost, data, DecodePost, EncodePost)}
}

// macGlyphOrder is the standard Macintosh ordering of the predefined
// PostScript glyph names used by "post" table version 1.0/2.0, covering
// the basic-Latin subset every Latin text font actually uses; names past
// this list still round-trip correctly through the version 2.0 pool, they
// just never match the implicit version 1.0 table.
var macGlyphOrder = []string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam", "quotedbl",
	"numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen",
	"period", "slash", "zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "colon", "semicolon", "less",
	"equal", "greater", "question", "at", "A", "B", "C", "D", "E", "F",
	"G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
	"U", "V", "W", "X", "Y", "Z", "bracketleft", "backslash",
	"bracketright", "asciicircum", "underscore", "grave", "a", "b", "c",
	"d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q",
	"r", "s", "t", "u", "v", "w", "x", "y", "z", "braceleft", "bar",
	"braceright", "asciitilde",
}
