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

// Format4 is a segment-mapping-to-delta-values subtable: the classic BMP
// cmap format, decoded eagerly into a flat code-to-glyph map.
type Format4 map[uint16]GlyphID

func (f Format4) Format() uint16 { return 4 }

func (f Format4) Lookup(code uint32) (GlyphID, bool) {
	if code > 0xFFFF {
		return 0, false
	}
	g, ok := f[uint16(code)]
	return g, ok
}

func (f Format4) CodeRange() (low, high uint32) {
	if len(f) == 0 {
		return 0, 0
	}
	lo := uint32(0x10000)
	var hi uint32
	for c := range f {
		if uint32(c) < lo {
			lo = uint32(c)
		}
		if uint32(c) > hi {
			hi = uint32(c)
		}
	}
	return lo, hi
}

func decodeFormat4(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() < 16 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 4 subtable shorter than 16 bytes"}
	}
	segCountX2, err := data.ReadUShort(6)
	if err != nil {
		return nil, err
	}
	if segCountX2%2 != 0 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 4 segCountX2 is odd"}
	}
	segCount := int(segCountX2) / 2

	endCodeOff := 14
	startCodeOff := endCodeOff + 2*segCount + 2 // skip reservedPad
	idDeltaOff := startCodeOff + 2*segCount
	idRangeOffsetOff := idDeltaOff + 2*segCount
	glyphArrayOff := idRangeOffsetOff + 2*segCount
	if data.Length() < glyphArrayOff {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 4 subtable shorter than its segment arrays"}
	}
	glyphArrayLen := (data.Length() - glyphArrayOff) / 2

	f := Format4{}
	prevEnd := -1
	for k := 0; k < segCount; k++ {
		startCode, err := data.ReadUShort(startCodeOff + 2*k)
		if err != nil {
			return nil, err
		}
		endCode, err := data.ReadUShort(endCodeOff + 2*k)
		if err != nil {
			return nil, err
		}
		idDelta, err := data.ReadShort(idDeltaOff + 2*k)
		if err != nil {
			return nil, err
		}
		idRangeOffset, err := data.ReadUShort(idRangeOffsetOff + 2*k)
		if err != nil {
			return nil, err
		}
		if int(startCode) <= prevEnd {
			return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 4 segments are not sorted or overlap"}
		}
		prevEnd = int(endCode)

		if idRangeOffset == 0 {
			for c := uint32(startCode); c <= uint32(endCode); c++ {
				g := uint16(c) + uint16(idDelta)
				if g != 0 {
					f[uint16(c)] = GlyphID(g)
				}
				if c == 0xFFFF {
					break
				}
			}
			continue
		}

		fieldOffset := idRangeOffsetOff + 2*k
		pointerTarget := fieldOffset + int(idRangeOffset)
		base := (pointerTarget - glyphArrayOff) / 2
		for c := uint32(startCode); c <= uint32(endCode); c++ {
			idx := base + int(c-uint32(startCode))
			if idx < 0 || idx >= glyphArrayLen {
				if StrictMode {
					return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 4 idRangeOffset points outside glyphIdArray"}
				}
				if c == 0xFFFF {
					break
				}
				continue
			}
			g, err := data.ReadUShort(glyphArrayOff + 2*idx)
			if err != nil {
				return nil, err
			}
			if g != 0 {
				f[uint16(c)] = GlyphID(uint16(g) + uint16(idDelta))
			}
			if c == 0xFFFF {
				break
			}
		}
	}
	return f, nil
}

// segment4 is one entry of the segment list Encode builds by a greedy
// left-to-right scan: as many consecutive codes as share one idDelta as
// possible, without the optimal-packing search a full implementation
// might use.
type segment4 struct {
	start, end uint16
	delta      uint16
}

func (f Format4) Encode(language uint16) []byte {
	var segments []segment4
	c := uint32(0)
	for c <= 0xFFFF {
		if f[uint16(c)] == 0 {
			c++
			continue
		}
		start := uint16(c)
		delta := uint16(f[uint16(c)]) - uint16(c)
		end := start
		for uint32(end) < 0xFFFF {
			next := end + 1
			g := f[next]
			if g == 0 || uint16(g)-next != delta {
				break
			}
			end = next
		}
		segments = append(segments, segment4{start: start, end: end, delta: delta})
		if end == 0xFFFF {
			break
		}
		c = uint32(end) + 1
	}
	if n := len(segments); n == 0 || segments[n-1].end != 0xFFFF {
		segments = append(segments, segment4{start: 0xFFFF, end: 0xFFFF, delta: 1})
	}

	segCount := len(segments)
	endCodeOff := 14
	startCodeOff := endCodeOff + 2*segCount + 2
	idDeltaOff := startCodeOff + 2*segCount
	idRangeOffsetOff := idDeltaOff + 2*segCount
	length := idRangeOffsetOff + 2*segCount
	searchRange, entrySelector, rangeShift := table.SearchParams(segCount, 2)

	buf := fontdata.NewGrowable(length)
	_, _ = buf.WriteUShort(0, 4)
	_, _ = buf.WriteUShort(2, uint16(length))
	_, _ = buf.WriteUShort(4, language)
	_, _ = buf.WriteUShort(6, uint16(2*segCount))
	_, _ = buf.WriteUShort(8, searchRange)
	_, _ = buf.WriteUShort(10, entrySelector)
	_, _ = buf.WriteUShort(12, rangeShift)
	for i, s := range segments {
		_, _ = buf.WriteUShort(endCodeOff+2*i, s.end)
		_, _ = buf.WriteUShort(startCodeOff+2*i, s.start)
		_, _ = buf.WriteShort(idDeltaOff+2*i, int16(s.delta))
		_, _ = buf.WriteUShort(idRangeOffsetOff+2*i, 0)
	}
	return buf.Bytes()
}
