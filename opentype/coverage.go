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

// Package opentype implements the record-level skeleton shared by the
// "GSUB", "GPOS", and "GDEF" layout tables: script list, feature list,
// and lookup list headers, plus the Coverage and ClassDef table formats
// those lists' lookups reference. It stops short of interpreting any
// lookup's subtable body — glyph substitution/positioning execution is
// shaping, out of scope here.
package opentype

import (
	"sort"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
)

// GlyphID is a glyph index as it appears in a layout table.
type GlyphID uint16

// Coverage maps a covered glyph to its coverage index, an integer in
// [0, len(Coverage)) assigned in increasing glyph-id order.
type Coverage map[GlyphID]int

// Contains reports whether gid is covered.
func (c Coverage) Contains(gid GlyphID) bool {
	_, ok := c[gid]
	return ok
}

// Glyphs returns the covered glyphs in increasing order.
func (c Coverage) Glyphs() []GlyphID {
	out := make([]GlyphID, 0, len(c))
	for gid := range c {
		out = append(out, gid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DecodeCoverage reads a Coverage table at offset within data.
func DecodeCoverage(data *fontdata.Data, offset int) (Coverage, error) {
	format, err := data.ReadUShort(offset)
	if err != nil {
		return nil, err
	}
	cov := make(Coverage)
	switch format {
	case 1:
		count, err := data.ReadUShort(offset + 2)
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(count); i++ {
			gid, err := data.ReadUShort(offset + 4 + 2*i)
			if err != nil {
				return nil, err
			}
			cov[GlyphID(gid)] = i
		}
	case 2:
		rangeCount, err := data.ReadUShort(offset + 2)
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(rangeCount); i++ {
			base := offset + 4 + 6*i
			start, err := data.ReadUShort(base)
			if err != nil {
				return nil, err
			}
			end, err := data.ReadUShort(base + 2)
			if err != nil {
				return nil, err
			}
			startCoverageIndex, err := data.ReadUShort(base + 4)
			if err != nil {
				return nil, err
			}
			idx := int(startCoverageIndex)
			for gid := start; gid <= end; gid++ {
				cov[GlyphID(gid)] = idx
				idx++
				if gid == 0xFFFF {
					break
				}
			}
		}
	default:
		return nil, &sfnterror.UnknownFormat{Tag: "coverage", Format: format}
	}
	return cov, nil
}

// Encode serializes a Coverage table, choosing whichever of formats 1/2
// is smaller.
func (c Coverage) Encode() []byte {
	rev := make([]GlyphID, len(c))
	for gid, i := range c {
		rev[i] = gid
	}

	format1Len := 4 + 2*len(rev)
	rangeCount := 0
	prev := -1
	for _, gid := range rev {
		if int(gid) != prev+1 {
			rangeCount++
		}
		prev = int(gid)
	}
	format2Len := 4 + 6*rangeCount

	if format1Len <= format2Len {
		buf := fontdata.NewGrowable(format1Len)
		_, _ = buf.WriteUShort(0, 1)
		_, _ = buf.WriteUShort(2, uint16(len(rev)))
		for i, gid := range rev {
			_, _ = buf.WriteUShort(4+2*i, uint16(gid))
		}
		return buf.Bytes()
	}

	buf := fontdata.NewGrowable(format2Len)
	_, _ = buf.WriteUShort(0, 2)
	_, _ = buf.WriteUShort(2, uint16(rangeCount))
	pos := 4
	var startGID GlyphID
	var startIdx int
	prev = -1
	flush := func(i int) {
		if i == 0 {
			return
		}
		_, _ = buf.WriteUShort(pos, uint16(startGID))
		_, _ = buf.WriteUShort(pos+2, uint16(prev))
		_, _ = buf.WriteUShort(pos+4, uint16(startIdx))
		pos += 6
	}
	for i, gid := range rev {
		if int(gid) != prev+1 {
			flush(i)
			startGID = gid
			startIdx = i
		}
		prev = int(gid)
	}
	flush(len(rev))
	return buf.Bytes()
}
