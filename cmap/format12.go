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
	"slices"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// findGroup12 returns the index of the group whose [StartCharCode,
// EndCharCode] range covers code, or -1 if none does. Groups are sorted
// and non-overlapping (enforced at decode time), so a search on
// EndCharCode alone finds the only candidate.
func findGroup12(groups []group12, code uint32) int {
	i, _ := slices.BinarySearchFunc(groups, code, func(g group12, code uint32) int {
		switch {
		case g.EndCharCode < code:
			return -1
		case g.StartCharCode > code:
			return 1
		default:
			return 0
		}
	})
	if i == len(groups) || groups[i].StartCharCode > code || groups[i].EndCharCode < code {
		return -1
	}
	return i
}

// group12 is one segmented-coverage group: a contiguous run of character
// codes mapped to consecutively increasing glyph IDs starting at
// StartGlyphID.
type group12 struct {
	StartCharCode uint32
	EndCharCode   uint32
	StartGlyphID  uint32
}

// Format12 is a segmented-coverage subtable, the 32-bit-capable
// counterpart to Format4, used to cover the full Unicode code space.
type Format12 struct {
	Groups []group12
}

func (f *Format12) Format() uint16 { return 12 }

func (f *Format12) Lookup(code uint32) (GlyphID, bool) {
	i := findGroup12(f.Groups, code)
	if i < 0 {
		return 0, false
	}
	return GlyphID(f.Groups[i].StartGlyphID + (code - f.Groups[i].StartCharCode)), true
}

func (f *Format12) CodeRange() (low, high uint32) {
	if len(f.Groups) == 0 {
		return 0, 0
	}
	return f.Groups[0].StartCharCode, f.Groups[len(f.Groups)-1].EndCharCode
}

const segmentedCoverageHeaderSize = 16

func decodeGroups12(data *fontdata.Data, headerSize int) ([]group12, error) {
	numGroups, err := data.ReadULongAsInt(headerSize - 4)
	if err != nil {
		return nil, err
	}
	if data.Length() < headerSize+numGroups*12 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "segmented coverage subtable shorter than its group array"}
	}
	groups := make([]group12, numGroups)
	prevEnd := int64(-1)
	for i := range groups {
		base := headerSize + i*12
		start, err := data.ReadULong(base)
		if err != nil {
			return nil, err
		}
		end, err := data.ReadULong(base + 4)
		if err != nil {
			return nil, err
		}
		gid, err := data.ReadULong(base + 8)
		if err != nil {
			return nil, err
		}
		if int64(start) <= prevEnd || end < start {
			return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "segmented coverage groups are not sorted or overlap"}
		}
		prevEnd = int64(end)
		groups[i] = group12{StartCharCode: start, EndCharCode: end, StartGlyphID: gid}
	}
	return groups, nil
}

func encodeGroups12(format uint16, language uint16, groups []group12) []byte {
	length := segmentedCoverageHeaderSize + len(groups)*12
	buf := fontdata.NewGrowable(length)
	_, _ = buf.WriteUShort(0, format)
	_, _ = buf.WriteUShort(2, 0)
	_, _ = buf.WriteULong(4, uint32(length))
	_, _ = buf.WriteULong(8, uint32(language))
	_, _ = buf.WriteULong(12, uint32(len(groups)))
	for i, g := range groups {
		base := segmentedCoverageHeaderSize + i*12
		_, _ = buf.WriteULong(base, g.StartCharCode)
		_, _ = buf.WriteULong(base+4, g.EndCharCode)
		_, _ = buf.WriteULong(base+8, g.StartGlyphID)
	}
	return buf.Bytes()
}

func decodeFormat12(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() < segmentedCoverageHeaderSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 12 subtable shorter than its header"}
	}
	groups, err := decodeGroups12(data, segmentedCoverageHeaderSize)
	if err != nil {
		return nil, err
	}
	return &Format12{Groups: groups}, nil
}

func (f *Format12) Encode(language uint16) []byte {
	return encodeGroups12(12, language, f.Groups)
}

// Format13 is a many-to-one-range-mapping subtable: like Format12, but
// every code in a group maps to the same GlyphID (used for large runs of
// codes that all render the notdef glyph, or similar).
type Format13 struct {
	Groups []group12
}

func (f *Format13) Format() uint16 { return 13 }

func (f *Format13) Lookup(code uint32) (GlyphID, bool) {
	i := findGroup12(f.Groups, code)
	if i < 0 {
		return 0, false
	}
	return GlyphID(f.Groups[i].StartGlyphID), true
}

func (f *Format13) CodeRange() (low, high uint32) {
	if len(f.Groups) == 0 {
		return 0, 0
	}
	return f.Groups[0].StartCharCode, f.Groups[len(f.Groups)-1].EndCharCode
}

func decodeFormat13(data *fontdata.Data, _ uint16) (Subtable, error) {
	if data.Length() < segmentedCoverageHeaderSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagCmap.String(), Reason: "format 13 subtable shorter than its header"}
	}
	groups, err := decodeGroups12(data, segmentedCoverageHeaderSize)
	if err != nil {
		return nil, err
	}
	return &Format13{Groups: groups}, nil
}

func (f *Format13) Encode(language uint16) []byte {
	return encodeGroups12(13, language, f.Groups)
}
