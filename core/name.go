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
	"sort"
	"unicode/utf16"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// NameRecord is one entry of the "name" table: a localized string
// identified by platform/encoding/language and a semantic NameID (family
// name, copyright, and so on).
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      []byte // raw bytes, in the record's own encoding
}

// String decodes Value using the two encodings this module understands:
// UTF-16BE for the Windows platform (3) and Unicode-BMP/full-Unicode
// encodings (0), and a Latin-1-compatible pass-through otherwise (covers
// Macintosh Roman for the ASCII subset every font in practice uses).
func (r NameRecord) String() string {
	if r.PlatformID == 3 || r.PlatformID == 0 {
		if len(r.Value)%2 != 0 {
			return string(r.Value)
		}
		u16 := make([]uint16, len(r.Value)/2)
		for i := range u16 {
			u16[i] = uint16(r.Value[2*i])<<8 | uint16(r.Value[2*i+1])
		}
		return string(utf16.Decode(u16))
	}
	return string(r.Value)
}

// LangTagRecord is a format-1 language-tag record: an IETF BCP 47 tag
// string stored in the same trailing storage area as the name strings.
type LangTagRecord struct {
	Tag string
}

// Name holds the decoded "name" table.
type Name struct {
	Format   uint16 // 0 or 1
	Records  []NameRecord
	LangTags []LangTagRecord // format 1 only
}

// Get returns the first record matching the given key, and whether one
// was found.
func (n *Name) Get(platformID, encodingID, languageID, nameID uint16) (NameRecord, bool) {
	for _, r := range n.Records {
		if r.PlatformID == platformID && r.EncodingID == encodingID &&
			r.LanguageID == languageID && r.NameID == nameID {
			return r, true
		}
	}
	return NameRecord{}, false
}

// DecodeName reads a "name" table from data.
func DecodeName(data *fontdata.Data) (*Name, error) {
	if data.Length() < 6 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagName.String(), Reason: "table shorter than 6 bytes"}
	}
	format, err := data.ReadUShort(0)
	if err != nil {
		return nil, err
	}
	if format > 1 {
		return nil, &sfnterror.UnknownFormat{Tag: table.TagName.String(), Format: format}
	}
	count, err := data.ReadUShort(2)
	if err != nil {
		return nil, err
	}
	storageOffset, err := data.ReadUShort(4)
	if err != nil {
		return nil, err
	}

	n := &Name{Format: format}
	recBase := 6
	for i := 0; i < int(count); i++ {
		pos := recBase + i*12
		platformID, err := data.ReadUShort(pos)
		if err != nil {
			return nil, err
		}
		encodingID, err := data.ReadUShort(pos + 2)
		if err != nil {
			return nil, err
		}
		languageID, err := data.ReadUShort(pos + 4)
		if err != nil {
			return nil, err
		}
		nameID, err := data.ReadUShort(pos + 6)
		if err != nil {
			return nil, err
		}
		length, err := data.ReadUShort(pos + 8)
		if err != nil {
			return nil, err
		}
		strOffset, err := data.ReadUShort(pos + 10)
		if err != nil {
			return nil, err
		}
		strData, err := data.Slice(int(storageOffset)+int(strOffset), int(length))
		if err != nil {
			return nil, &sfnterror.CorruptTable{Tag: table.TagName.String(), Reason: "name record points outside storage area"}
		}
		buf := make([]byte, length)
		copy(buf, strData.Bytes())
		n.Records = append(n.Records, NameRecord{
			PlatformID: platformID, EncodingID: encodingID,
			LanguageID: languageID, NameID: nameID, Value: buf,
		})
	}

	if format == 1 {
		langBase := recBase + 12*int(count)
		langCount, err := data.ReadUShort(langBase)
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(langCount); i++ {
			pos := langBase + 2 + i*4
			length, err := data.ReadUShort(pos)
			if err != nil {
				return nil, err
			}
			off, err := data.ReadUShort(pos + 2)
			if err != nil {
				return nil, err
			}
			tagData, err := data.Slice(int(storageOffset)+int(off), int(length))
			if err != nil {
				return nil, &sfnterror.CorruptTable{Tag: table.TagName.String(), Reason: "lang tag record points outside storage area"}
			}
			u16 := make([]uint16, length/2)
			b := tagData.Bytes()
			for j := range u16 {
				u16[j] = uint16(b[2*j])<<8 | uint16(b[2*j+1])
			}
			n.LangTags = append(n.LangTags, LangTagRecord{Tag: string(utf16.Decode(u16))})
		}
	}

	return n, nil
}

// EncodeName writes n back to its wire form. Records are emitted in
// (platformID, encodingID, languageID, nameID) order, as recommended by
// the OpenType specification; identical string values are deduplicated
// against the shared storage area.
func EncodeName(n *Name) []byte {
	recs := append([]NameRecord(nil), n.Records...)
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.PlatformID != b.PlatformID {
			return a.PlatformID < b.PlatformID
		}
		if a.EncodingID != b.EncodingID {
			return a.EncodingID < b.EncodingID
		}
		if a.LanguageID != b.LanguageID {
			return a.LanguageID < b.LanguageID
		}
		return a.NameID < b.NameID
	})

	headerLen := 6 + 12*len(recs)
	if n.Format == 1 {
		headerLen += 2 + 4*len(n.LangTags)
	}

	buf := fontdata.NewGrowable(headerLen)
	_, _ = buf.WriteUShort(0, n.Format)
	_, _ = buf.WriteUShort(2, uint16(len(recs)))
	_, _ = buf.WriteUShort(4, uint16(headerLen))

	var storage []byte
	seen := make(map[string]int)
	internString := func(b []byte) int {
		if off, ok := seen[string(b)]; ok {
			return off
		}
		off := len(storage)
		seen[string(b)] = off
		storage = append(storage, b...)
		return off
	}

	for i, r := range recs {
		pos := 6 + i*12
		strOff := internString(r.Value)
		_, _ = buf.WriteUShort(pos, r.PlatformID)
		_, _ = buf.WriteUShort(pos+2, r.EncodingID)
		_, _ = buf.WriteUShort(pos+4, r.LanguageID)
		_, _ = buf.WriteUShort(pos+6, r.NameID)
		_, _ = buf.WriteUShort(pos+8, uint16(len(r.Value)))
		_, _ = buf.WriteUShort(pos+10, uint16(strOff))
	}

	if n.Format == 1 {
		langBase := 6 + 12*len(recs)
		_, _ = buf.WriteUShort(langBase, uint16(len(n.LangTags)))
		for i, lt := range n.LangTags {
			u16 := utf16.Encode([]rune(lt.Tag))
			b := make([]byte, len(u16)*2)
			for j, u := range u16 {
				b[2*j] = byte(u >> 8)
				b[2*j+1] = byte(u)
			}
			off := internString(b)
			pos := langBase + 2 + i*4
			_, _ = buf.WriteUShort(pos, uint16(len(b)))
			_, _ = buf.WriteUShort(pos+2, uint16(off))
		}
	}

	_, _ = buf.WriteBytes(headerLen, storage)
	return buf.Bytes()
}

// NameBuilder is the editable builder for the "name" table.
type NameBuilder struct {
	*table.ModelBuilder[*Name]
}

// NewNameBuilder wraps pristine "name" bytes in a builder.
func NewNameBuilder(data *fontdata.Data) *NameBuilder {
	return &NameBuilder{table.NewModelBuilder(table.TagName, data, DecodeName, EncodeName)}
}
