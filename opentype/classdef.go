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
	"sort"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
)

// ClassDef assigns each glyph an integer class; glyphs absent from the
// map are implicitly class 0.
type ClassDef map[GlyphID]uint16

// NumClasses returns the number of classes, including class 0.
func (c ClassDef) NumClasses() int {
	var max uint16
	for _, class := range c {
		if class > max {
			max = class
		}
	}
	return int(max) + 1
}

// Glyphs groups glyphs by class; index 0 (the implicit class) is always
// nil.
func (c ClassDef) Glyphs() [][]GlyphID {
	out := make([][]GlyphID, c.NumClasses())
	for gid, class := range c {
		out[class] = append(out[class], gid)
	}
	for i := 1; i < len(out); i++ {
		sort.Slice(out[i], func(a, b int) bool { return out[i][a] < out[i][b] })
	}
	return out
}

// DecodeClassDef reads a ClassDef table at offset within data.
func DecodeClassDef(data *fontdata.Data, offset int) (ClassDef, error) {
	format, err := data.ReadUShort(offset)
	if err != nil {
		return nil, err
	}
	c := make(ClassDef)
	switch format {
	case 1:
		startGlyphID, err := data.ReadUShort(offset + 2)
		if err != nil {
			return nil, err
		}
		glyphCount, err := data.ReadUShort(offset + 4)
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(glyphCount); i++ {
			classValue, err := data.ReadUShort(offset + 6 + 2*i)
			if err != nil {
				return nil, err
			}
			if classValue != 0 {
				c[GlyphID(int(startGlyphID)+i)] = classValue
			}
		}
	case 2:
		classRangeCount, err := data.ReadUShort(offset + 2)
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(classRangeCount); i++ {
			base := offset + 4 + 6*i
			start, err := data.ReadUShort(base)
			if err != nil {
				return nil, err
			}
			end, err := data.ReadUShort(base + 2)
			if err != nil {
				return nil, err
			}
			classValue, err := data.ReadUShort(base + 4)
			if err != nil {
				return nil, err
			}
			if classValue != 0 {
				for gid := start; gid <= end; gid++ {
					c[GlyphID(gid)] = classValue
					if gid == 0xFFFF {
						break
					}
				}
			}
		}
	default:
		return nil, &sfnterror.UnknownFormat{Tag: "classDef", Format: format}
	}
	return c, nil
}

// Encode serializes a ClassDef table, choosing whichever of formats 1/2
// is smaller.
func (c ClassDef) Encode() []byte {
	if len(c) == 0 {
		buf := fontdata.NewGrowable(6)
		_, _ = buf.WriteUShort(0, 1)
		_, _ = buf.WriteUShort(2, 0)
		_, _ = buf.WriteUShort(4, 0)
		return buf.Bytes()
	}

	var minGid, maxGid GlyphID = 0xFFFF, 0
	for gid := range c {
		if gid < minGid {
			minGid = gid
		}
		if gid > maxGid {
			maxGid = gid
		}
	}
	format1Len := 6 + 2*(int(maxGid-minGid)+1)

	sortedGids := make([]GlyphID, 0, len(c))
	for gid := range c {
		sortedGids = append(sortedGids, gid)
	}
	sort.Slice(sortedGids, func(i, j int) bool { return sortedGids[i] < sortedGids[j] })

	rangeCount := 0
	prevGid, prevClass := GlyphID(0xFFFF), uint16(0xFFFF)
	for _, gid := range sortedGids {
		if gid != prevGid+1 || c[gid] != prevClass {
			rangeCount++
		}
		prevGid, prevClass = gid, c[gid]
	}
	format2Len := 4 + 6*rangeCount

	if format1Len <= format2Len {
		buf := fontdata.NewGrowable(format1Len)
		_, _ = buf.WriteUShort(0, 1)
		_, _ = buf.WriteUShort(2, uint16(minGid))
		count := int(maxGid-minGid) + 1
		_, _ = buf.WriteUShort(4, uint16(count))
		for i := 0; i < count; i++ {
			_, _ = buf.WriteUShort(6+2*i, c[minGid+GlyphID(i)])
		}
		return buf.Bytes()
	}

	buf := fontdata.NewGrowable(format2Len)
	_, _ = buf.WriteUShort(0, 2)
	_, _ = buf.WriteUShort(2, uint16(rangeCount))
	pos := 4
	var startGid GlyphID
	var startClass uint16
	prevGid, prevClass = GlyphID(0xFFFF), uint16(0xFFFF)
	flush := func() {
		_, _ = buf.WriteUShort(pos, uint16(startGid))
		_, _ = buf.WriteUShort(pos+2, uint16(prevGid))
		_, _ = buf.WriteUShort(pos+4, startClass)
		pos += 6
	}
	first := true
	for _, gid := range sortedGids {
		class := c[gid]
		if gid != prevGid+1 || class != prevClass {
			if !first {
				flush()
			}
			startGid, startClass = gid, class
			first = false
		}
		prevGid, prevClass = gid, class
	}
	if !first {
		flush()
	}
	return buf.Bytes()
}
