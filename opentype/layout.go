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

package opentype

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// Layout is the shared header every "GSUB"/"GPOS" table starts with:
// version, then offsets to ScriptList, FeatureList, and LookupList
// (version 1.1 adds a FeatureVariations offset, decoded but not
// interpreted further).
type Layout struct {
	MajorVersion, MinorVersion uint16
	ScriptList                 ScriptList
	FeatureList                FeatureList
	LookupList                 LookupList
	FeatureVariationsOffset    uint32 // 0 if absent (version 1.0)
}

func decodeLayout(tag table.Tag, data *fontdata.Data) (*Layout, error) {
	if data.Length() < 10 {
		return nil, &sfnterror.CorruptTable{Tag: tag.String(), Reason: "layout table shorter than its header"}
	}
	major, err := data.ReadUShort(0)
	if err != nil {
		return nil, err
	}
	minor, err := data.ReadUShort(2)
	if err != nil {
		return nil, err
	}
	scriptListOffset, err := data.ReadUShort(4)
	if err != nil {
		return nil, err
	}
	featureListOffset, err := data.ReadUShort(6)
	if err != nil {
		return nil, err
	}
	lookupListOffset, err := data.ReadUShort(8)
	if err != nil {
		return nil, err
	}

	l := &Layout{MajorVersion: major, MinorVersion: minor}
	if minor == 1 {
		fvOffset, err := data.ReadULong(10)
		if err != nil {
			return nil, err
		}
		l.FeatureVariationsOffset = fvOffset
	}

	l.ScriptList, err = DecodeScriptList(data, int(scriptListOffset))
	if err != nil {
		return nil, err
	}
	l.FeatureList, err = DecodeFeatureList(data, int(featureListOffset))
	if err != nil {
		return nil, err
	}
	l.LookupList, err = DecodeLookupList(data, int(lookupListOffset))
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GSUB is the decoded record-level skeleton of a "GSUB" table.
type GSUB struct{ Layout }

// DecodeGSUB parses a "GSUB" table's script/feature/lookup list headers.
func DecodeGSUB(data *fontdata.Data) (*GSUB, error) {
	l, err := decodeLayout(table.TagGSUB, data)
	if err != nil {
		return nil, err
	}
	return &GSUB{Layout: *l}, nil
}

// GPOS is the decoded record-level skeleton of a "GPOS" table.
type GPOS struct{ Layout }

// DecodeGPOS parses a "GPOS" table's script/feature/lookup list headers.
func DecodeGPOS(data *fontdata.Data) (*GPOS, error) {
	l, err := decodeLayout(table.TagGPOS, data)
	if err != nil {
		return nil, err
	}
	return &GPOS{Layout: *l}, nil
}

// GDEF is the decoded "GDEF" table's glyph class and mark attachment
// class definitions. Each of the two is independently optional. The
// attachment point and ligature caret lists are not decoded.
type GDEF struct {
	MajorVersion, MinorVersion uint16
	GlyphClassDef              ClassDef // nil if absent
	MarkAttachClassDef         ClassDef // nil if absent
}

// DecodeGDEF parses a "GDEF" table's class-definition headers.
func DecodeGDEF(data *fontdata.Data) (*GDEF, error) {
	if data.Length() < 12 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagGDEF.String(), Reason: "GDEF shorter than its header"}
	}
	major, err := data.ReadUShort(0)
	if err != nil {
		return nil, err
	}
	minor, err := data.ReadUShort(2)
	if err != nil {
		return nil, err
	}
	g := &GDEF{MajorVersion: major, MinorVersion: minor}

	glyphClassDefOffset, err := data.ReadUShort(4)
	if err != nil {
		return nil, err
	}
	if glyphClassDefOffset != 0 {
		g.GlyphClassDef, err = DecodeClassDef(data, int(glyphClassDefOffset))
		if err != nil {
			return nil, err
		}
	}

	markAttachClassDefOffset, err := data.ReadUShort(10)
	if err != nil {
		return nil, err
	}
	if markAttachClassDefOffset != 0 {
		g.MarkAttachClassDef, err = DecodeClassDef(data, int(markAttachClassDefOffset))
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}
