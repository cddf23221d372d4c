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
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// Maxp holds the decoded "maxp" table. TTF is nil for version 0.5 tables
// (CFF-outline fonts).
type Maxp struct {
	NumGlyphs int
	TTF       *MaxpTTF
}

// MaxpTTF carries the TrueType-specific instruction/zone limits present
// only in "maxp" version 1.0.
type MaxpTTF struct {
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

const (
	maxpVersion05 = 0x00005000
	maxpVersion10 = 0x00010000
)

// DecodeMaxp reads a "maxp" table from data.
func DecodeMaxp(data *fontdata.Data) (*Maxp, error) {
	if data.Length() < 6 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagMaxp.String(), Reason: "table shorter than 6 bytes"}
	}
	version, err := data.ReadULong(0)
	if err != nil {
		return nil, err
	}
	if version != maxpVersion05 && version != maxpVersion10 {
		return nil, &sfnterror.UnknownFormat{Tag: table.TagMaxp.String(), Format: uint16(version >> 16)}
	}
	numGlyphs, err := data.ReadUShort(4)
	if err != nil {
		return nil, err
	}
	m := &Maxp{NumGlyphs: int(numGlyphs)}
	if version == maxpVersion05 {
		return m, nil
	}

	if data.Length() < 32 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagMaxp.String(), Reason: "version 1.0 table shorter than 32 bytes"}
	}
	ttf := &MaxpTTF{}
	fields := []*uint16{
		&ttf.MaxPoints, &ttf.MaxContours, &ttf.MaxCompositePoints, &ttf.MaxCompositeContours,
		&ttf.MaxZones, &ttf.MaxTwilightPoints, &ttf.MaxStorage, &ttf.MaxFunctionDefs,
		&ttf.MaxInstructionDefs, &ttf.MaxStackElements, &ttf.MaxSizeOfInstructions,
		&ttf.MaxComponentElements, &ttf.MaxComponentDepth,
	}
	off := 6
	for _, f := range fields {
		v, err := data.ReadUShort(off)
		if err != nil {
			return nil, err
		}
		*f = v
		off += 2
	}
	m.TTF = ttf
	return m, nil
}

// EncodeMaxp writes m back to its wire form.
func EncodeMaxp(m *Maxp) []byte {
	if m.TTF == nil {
		buf := fontdata.NewGrowable(6)
		_, _ = buf.WriteULong(0, maxpVersion05)
		_, _ = buf.WriteUShort(4, uint16(m.NumGlyphs))
		return buf.Bytes()
	}

	buf := fontdata.NewGrowable(32)
	_, _ = buf.WriteULong(0, maxpVersion10)
	_, _ = buf.WriteUShort(4, uint16(m.NumGlyphs))
	ttf := m.TTF
	fields := []uint16{
		ttf.MaxPoints, ttf.MaxContours, ttf.MaxCompositePoints, ttf.MaxCompositeContours,
		ttf.MaxZones, ttf.MaxTwilightPoints, ttf.MaxStorage, ttf.MaxFunctionDefs,
		ttf.MaxInstructionDefs, ttf.MaxStackElements, ttf.MaxSizeOfInstructions,
		ttf.MaxComponentElements, ttf.MaxComponentDepth,
	}
	off := 6
	for _, v := range fields {
		_, _ = buf.WriteUShort(off, v)
		off += 2
	}
	return buf.Bytes()
}

// MaxpBuilder is the editable builder for the "maxp" table.
type MaxpBuilder struct {
	*table.ModelBuilder[*Maxp]
}

// NewMaxpBuilder wraps pristine "maxp" bytes in a builder.
func NewMaxpBuilder(data *fontdata.Data) *MaxpBuilder {
	return &MaxpBuilder{table.NewModelBuilder(table.TagMaxp, data, DecodeMaxp, EncodeMaxp)}
}
