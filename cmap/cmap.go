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

// Package cmap decodes and encodes "cmap" character-to-glyph mapping
// tables: the top-level subtable directory plus each of the nine
// subtable formats defined by the OpenType specification (0, 2, 4, 6, 8,
// 10, 12, 13, 14), built on this module's FontData abstraction.
package cmap

import (
	"sort"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// GlyphID is a glyph index as stored in a cmap subtable.
type GlyphID uint16

// Key identifies one subtable of a cmap table by platform, encoding, and
// (for the Macintosh platform) language.
type Key struct {
	PlatformID uint16
	EncodingID uint16
	Language   uint16
}

// Subtable is implemented by every decoded cmap subtable format.
type Subtable interface {
	// Format reports the subtable's format number.
	Format() uint16

	// Lookup returns the glyph mapped to code, and whether one exists.
	Lookup(code uint32) (GlyphID, bool)

	// CodeRange returns the lowest and highest mapped code point. It
	// returns (0, 0) for an empty subtable.
	CodeRange() (low, high uint32)

	// Encode serializes the subtable body, including its own format,
	// length, and language header fields.
	Encode(language uint16) []byte
}

// Table holds every subtable of a "cmap" table, keyed by the platform,
// encoding, and language it was registered under.
type Table map[Key]Subtable

// candidateKeys lists, in preference order, the (platform, encoding)
// pairs consumers most commonly want when no specific key is named.
var candidateKeys = []struct{ PlatformID, EncodingID uint16 }{
	{3, 10}, // Windows, full Unicode
	{0, 4},  // Unicode 2.0+, full repertoire
	{3, 1},  // Windows, BMP
	{0, 3},  // Unicode 2.0+, BMP
	{1, 0},  // Macintosh Roman
}

// Best returns the subtable this module considers the most useful
// general-purpose choice, trying candidateKeys in order.
func (t Table) Best() (Subtable, bool) {
	for _, c := range candidateKeys {
		for k, sub := range t {
			if k.PlatformID == c.PlatformID && k.EncodingID == c.EncodingID {
				return sub, true
			}
		}
	}
	return nil, false
}

// StrictMode turns format 4's out-of-range idRangeOffset case (a
// pointer past the end of glyphIdArray) into a CorruptTable error
// instead of the lenient default of treating the code as unmapped, which
// is what real-world fonts with this defect expect a reader to do.
var StrictMode bool

type decoder func(*fontdata.Data, uint16) (Subtable, error)

var decoders = map[uint16]decoder{
	0:  decodeFormat0,
	2:  decodeFormat2,
	4:  decodeFormat4,
	6:  decodeFormat6,
	8:  decodeFormat8,
	10: decodeFormat10,
	12: decodeFormat12,
	13: decodeFormat13,
	14: decodeFormat14,
}

const encodingRecordSize = 8

// Decode reads every subtable named by a "cmap" table's encoding record
// directory.
func Decode(data *fontdata.Data) (Table, error) {
	version, err := data.ReadUShort(0)
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, &sfnterror.UnknownFormat{Tag: table.TagCmap.String(), Format: version}
	}
	numTables, err := data.ReadUShort(2)
	if err != nil {
		return nil, err
	}

	result := make(Table, numTables)
	for i := 0; i < int(numTables); i++ {
		pos := 4 + i*encodingRecordSize
		platformID, err := data.ReadUShort(pos)
		if err != nil {
			return nil, err
		}
		encodingID, err := data.ReadUShort(pos + 2)
		if err != nil {
			return nil, err
		}
		offset, err := data.ReadULongAsInt(pos + 4)
		if err != nil {
			return nil, err
		}

		format, err := data.ReadUShort(offset)
		if err != nil {
			return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "encoding record offset out of range"}
		}
		length, language, err := subtableHeader(data, offset, format)
		if err != nil {
			return nil, err
		}
		sub, err := data.Slice(offset, length)
		if err != nil {
			return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "subtable length exceeds table bounds"}
		}

		decode, ok := decoders[format]
		if !ok {
			return nil, &sfnterror.UnknownFormat{Tag: table.TagCmap.String(), Format: format}
		}
		subtable, err := decode(sub, language)
		if err != nil {
			return nil, err
		}

		if platformID != 1 {
			language = 0
		}
		result[Key{PlatformID: platformID, EncodingID: encodingID, Language: language}] = subtable
	}

	return result, nil
}

// subtableHeader reads the length and language of the subtable starting
// at offset, whose format has already been read.
func subtableHeader(data *fontdata.Data, offset int, format uint16) (length int, language uint16, err error) {
	switch format {
	case 0, 2, 4, 6:
		l, err := data.ReadUShort(offset + 2)
		if err != nil {
			return 0, 0, err
		}
		lang, err := data.ReadUShort(offset + 4)
		if err != nil {
			return 0, 0, err
		}
		return int(l), lang, nil
	case 8, 10, 12, 13:
		l, err := data.ReadULongAsInt(offset + 4)
		if err != nil {
			return 0, 0, err
		}
		lang, err := data.ReadULong(offset + 8)
		if err != nil {
			return 0, 0, err
		}
		return l, uint16(lang), nil
	case 14:
		l, err := data.ReadULongAsInt(offset + 2)
		if err != nil {
			return 0, 0, err
		}
		return l, 0, nil
	default:
		return 0, 0, &sfnterror.UnknownFormat{Tag: table.TagCmap.String(), Format: format}
	}
}

// Encode serializes t into the wire form of a complete "cmap" table:
// version, encoding-record directory, then each subtable body.
// Subtables with identical encoded bytes share storage.
func Encode(t Table) []byte {
	type entry struct {
		Key
		body []byte
	}
	entries := make([]entry, 0, len(t))
	for k, sub := range t {
		entries = append(entries, entry{Key: k, body: sub.Encode(k.Language)})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.PlatformID != b.PlatformID {
			return a.PlatformID < b.PlatformID
		}
		if a.EncodingID != b.EncodingID {
			return a.EncodingID < b.EncodingID
		}
		return a.Language < b.Language
	})

	headerLen := 4 + encodingRecordSize*len(entries)
	offsets := make([]int, len(entries))
	var storage []byte
	for i, e := range entries {
		dup := -1
		for j := 0; j < i; j++ {
			if string(entries[j].body) == string(e.body) {
				dup = j
				break
			}
		}
		if dup >= 0 {
			offsets[i] = offsets[dup]
			continue
		}
		offsets[i] = headerLen + len(storage)
		storage = append(storage, e.body...)
	}

	buf := fontdata.NewGrowable(headerLen + len(storage))
	_, _ = buf.WriteUShort(0, 0)
	_, _ = buf.WriteUShort(2, uint16(len(entries)))
	for i, e := range entries {
		pos := 4 + i*encodingRecordSize
		_, _ = buf.WriteUShort(pos, e.PlatformID)
		_, _ = buf.WriteUShort(pos+2, e.EncodingID)
		_, _ = buf.WriteULong(pos+4, uint32(offsets[i]))
	}
	_, _ = buf.WriteBytes(headerLen, storage)
	return buf.Bytes()
}

// Builder is the editable builder for a "cmap" table.
type Builder struct {
	*table.ModelBuilder[Table]
}

// NewBuilder wraps pristine "cmap" bytes in a builder.
func NewBuilder(data *fontdata.Data) *Builder {
	return &Builder{table.NewModelBuilder(table.TagCmap, data, Decode, Encode)}
}
