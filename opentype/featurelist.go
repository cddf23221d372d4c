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

import "github.com/tesserfont/sfnt/fontdata"

// Feature is one FeatureRecord: a feature tag plus the lookup indices it
// activates, into the owning table's LookupList.
type Feature struct {
	Tag           string
	LookupIndices []uint16
}

// FeatureList is the decoded FeatureList table, in on-disk order (the
// order LangSys.FeatureIndices refers into).
type FeatureList []*Feature

// DecodeFeatureList reads a FeatureList table at offset within data.
func DecodeFeatureList(data *fontdata.Data, offset int) (FeatureList, error) {
	count, err := data.ReadUShort(offset)
	if err != nil {
		return nil, err
	}
	list := make(FeatureList, count)
	for i := range list {
		base := offset + 2 + 6*i
		tagBytes := make([]byte, 4)
		for j := range tagBytes {
			b, err := data.ReadUByte(base + j)
			if err != nil {
				return nil, err
			}
			tagBytes[j] = b
		}
		featureOffset, err := data.ReadUShort(base + 4)
		if err != nil {
			return nil, err
		}
		f, err := decodeFeatureTable(data, offset+int(featureOffset), string(tagBytes))
		if err != nil {
			return nil, err
		}
		list[i] = f
	}
	return list, nil
}

func decodeFeatureTable(data *fontdata.Data, offset int, tag string) (*Feature, error) {
	// featureParamsOffset at offset+0, unused by any lookup type this
	// module supports.
	lookupCount, err := data.ReadUShort(offset + 2)
	if err != nil {
		return nil, err
	}
	f := &Feature{Tag: tag, LookupIndices: make([]uint16, lookupCount)}
	for i := range f.LookupIndices {
		v, err := data.ReadUShort(offset + 4 + 2*i)
		if err != nil {
			return nil, err
		}
		f.LookupIndices[i] = v
	}
	return f, nil
}
