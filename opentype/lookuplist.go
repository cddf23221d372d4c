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

const useMarkFilteringSet = 0x0010

// Lookup is one LookupList entry: its type, flags, and the (uninspected)
// offsets of its subtables. Interpreting a subtable's body is a lookup
// type's shaping semantics, out of scope here; SubtableOffsets lets a
// caller slice out a subtable's bytes and dispatch on Type itself if it
// needs to.
type Lookup struct {
	Type             uint16
	Flag             uint16
	SubtableOffsets  []uint16 // relative to the Lookup table's own start
	MarkFilteringSet uint16   // valid only when Flag&useMarkFilteringSet != 0
}

// LookupList is the decoded LookupList table, in on-disk order (the
// order Feature.LookupIndices refers into).
type LookupList []*Lookup

// DecodeLookupList reads a LookupList table at offset within data.
func DecodeLookupList(data *fontdata.Data, offset int) (LookupList, error) {
	count, err := data.ReadUShort(offset)
	if err != nil {
		return nil, err
	}
	list := make(LookupList, count)
	for i := range list {
		lookupOffset, err := data.ReadUShort(offset + 2 + 2*i)
		if err != nil {
			return nil, err
		}
		l, err := decodeLookupTable(data, offset+int(lookupOffset))
		if err != nil {
			return nil, err
		}
		list[i] = l
	}
	return list, nil
}

func decodeLookupTable(data *fontdata.Data, offset int) (*Lookup, error) {
	lookupType, err := data.ReadUShort(offset)
	if err != nil {
		return nil, err
	}
	lookupFlag, err := data.ReadUShort(offset + 2)
	if err != nil {
		return nil, err
	}
	subtableCount, err := data.ReadUShort(offset + 4)
	if err != nil {
		return nil, err
	}
	l := &Lookup{Type: lookupType, Flag: lookupFlag, SubtableOffsets: make([]uint16, subtableCount)}
	for i := range l.SubtableOffsets {
		v, err := data.ReadUShort(offset + 6 + 2*i)
		if err != nil {
			return nil, err
		}
		l.SubtableOffsets[i] = v
	}
	if lookupFlag&useMarkFilteringSet != 0 {
		v, err := data.ReadUShort(offset + 6 + 2*int(subtableCount))
		if err != nil {
			return nil, err
		}
		l.MarkFilteringSet = v
	}
	return l, nil
}
