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
)

// LangSys is one Script's LangSysRecord: the feature indices active for
// a given script/language combination, into the owning table's
// FeatureList.
type LangSys struct {
	RequiredFeatureIndex uint16 // 0xFFFF if none
	FeatureIndices       []uint16
}

// Script is one ScriptRecord: a default LangSys plus any
// language-specific overrides, keyed by their 4-byte tag.
type Script struct {
	DefaultLangSys *LangSys
	LangSys        map[string]*LangSys
}

// ScriptList is the decoded ScriptList table, keyed by script tag.
type ScriptList map[string]*Script

// DecodeScriptList reads a ScriptList table at offset within data.
func DecodeScriptList(data *fontdata.Data, offset int) (ScriptList, error) {
	count, err := data.ReadUShort(offset)
	if err != nil {
		return nil, err
	}
	list := make(ScriptList, count)
	for i := 0; i < int(count); i++ {
		base := offset + 2 + 6*i
		tagBytes := make([]byte, 4)
		for j := range tagBytes {
			b, err := data.ReadUByte(base + j)
			if err != nil {
				return nil, err
			}
			tagBytes[j] = b
		}
		scriptOffset, err := data.ReadUShort(base + 4)
		if err != nil {
			return nil, err
		}
		script, err := decodeScriptTable(data, offset+int(scriptOffset))
		if err != nil {
			return nil, err
		}
		list[string(tagBytes)] = script
	}
	return list, nil
}

func decodeScriptTable(data *fontdata.Data, offset int) (*Script, error) {
	defaultLangSysOffset, err := data.ReadUShort(offset)
	if err != nil {
		return nil, err
	}
	langSysCount, err := data.ReadUShort(offset + 2)
	if err != nil {
		return nil, err
	}

	s := &Script{LangSys: make(map[string]*LangSys, langSysCount)}
	if defaultLangSysOffset != 0 {
		ls, err := decodeLangSys(data, offset+int(defaultLangSysOffset))
		if err != nil {
			return nil, err
		}
		s.DefaultLangSys = ls
	}
	for i := 0; i < int(langSysCount); i++ {
		base := offset + 4 + 6*i
		tagBytes := make([]byte, 4)
		for j := range tagBytes {
			b, err := data.ReadUByte(base + j)
			if err != nil {
				return nil, err
			}
			tagBytes[j] = b
		}
		langSysOffset, err := data.ReadUShort(base + 4)
		if err != nil {
			return nil, err
		}
		ls, err := decodeLangSys(data, offset+int(langSysOffset))
		if err != nil {
			return nil, err
		}
		s.LangSys[string(tagBytes)] = ls
	}
	return s, nil
}

func decodeLangSys(data *fontdata.Data, offset int) (*LangSys, error) {
	// lookupOrderOffset (reserved, always 0) at offset+0
	requiredFeatureIndex, err := data.ReadUShort(offset + 2)
	if err != nil {
		return nil, err
	}
	featureCount, err := data.ReadUShort(offset + 4)
	if err != nil {
		return nil, err
	}
	ls := &LangSys{RequiredFeatureIndex: requiredFeatureIndex, FeatureIndices: make([]uint16, featureCount)}
	for i := range ls.FeatureIndices {
		v, err := data.ReadUShort(offset + 6 + 2*i)
		if err != nil {
			return nil, err
		}
		ls.FeatureIndices[i] = v
	}
	return ls, nil
}
