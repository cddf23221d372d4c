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

// Package core implements the "head", "hhea", "hmtx", "maxp", "OS/2",
// "name", and "post" tables — the font-wide metrics and identification
// tables every sfnt font carries, built on the FontData/builder model
// this module uses throughout.
package core

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// MagicNumber is the required value of the "head" table's magicNumber
// field.
const MagicNumber = 0x5F0F3CF5

// Head holds the decoded "head" table.
type Head struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       int32 // 16.16 fixed
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64 // seconds since 1904-01-01
	Modified           int64
	XMin, YMin         int16
	XMax, YMax         int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16 // 0 = short loca, 1 = long loca
	GlyphDataFormat    int16
}

const headSize = 54

// DecodeHead reads a "head" table from data.
func DecodeHead(data *fontdata.Data) (*Head, error) {
	if data.Length() < headSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagHead.String(), Reason: "table shorter than 54 bytes"}
	}
	h := &Head{}
	var err error
	if h.MajorVersion, err = data.ReadUShort(0); err != nil {
		return nil, err
	}
	if h.MinorVersion, err = data.ReadUShort(2); err != nil {
		return nil, err
	}
	if h.FontRevision, err = data.ReadFixed(4); err != nil {
		return nil, err
	}
	if h.CheckSumAdjustment, err = data.ReadULong(8); err != nil {
		return nil, err
	}
	if h.MagicNumber, err = data.ReadULong(12); err != nil {
		return nil, err
	}
	if h.Flags, err = data.ReadUShort(16); err != nil {
		return nil, err
	}
	if h.UnitsPerEm, err = data.ReadUShort(18); err != nil {
		return nil, err
	}
	if h.Created, err = data.ReadLongDateTime(20); err != nil {
		return nil, err
	}
	if h.Modified, err = data.ReadLongDateTime(28); err != nil {
		return nil, err
	}
	if h.XMin, err = data.ReadShort(36); err != nil {
		return nil, err
	}
	if h.YMin, err = data.ReadShort(38); err != nil {
		return nil, err
	}
	if h.XMax, err = data.ReadShort(40); err != nil {
		return nil, err
	}
	if h.YMax, err = data.ReadShort(42); err != nil {
		return nil, err
	}
	if h.MacStyle, err = data.ReadUShort(44); err != nil {
		return nil, err
	}
	if h.LowestRecPPEM, err = data.ReadUShort(46); err != nil {
		return nil, err
	}
	if h.FontDirectionHint, err = data.ReadShort(48); err != nil {
		return nil, err
	}
	if h.IndexToLocFormat, err = data.ReadShort(50); err != nil {
		return nil, err
	}
	if h.GlyphDataFormat, err = data.ReadShort(52); err != nil {
		return nil, err
	}
	return h, nil
}

// EncodeHead writes h back to its wire form.
func EncodeHead(h *Head) []byte {
	buf := fontdata.NewGrowable(headSize)
	_, _ = buf.WriteUShort(0, h.MajorVersion)
	_, _ = buf.WriteUShort(2, h.MinorVersion)
	_, _ = buf.WriteFixed(4, h.FontRevision)
	_, _ = buf.WriteULong(8, h.CheckSumAdjustment)
	_, _ = buf.WriteULong(12, h.MagicNumber)
	_, _ = buf.WriteUShort(16, h.Flags)
	_, _ = buf.WriteUShort(18, h.UnitsPerEm)
	_, _ = buf.WriteLongDateTime(20, h.Created)
	_, _ = buf.WriteLongDateTime(28, h.Modified)
	_, _ = buf.WriteShort(36, h.XMin)
	_, _ = buf.WriteShort(38, h.YMin)
	_, _ = buf.WriteShort(40, h.XMax)
	_, _ = buf.WriteShort(42, h.YMax)
	_, _ = buf.WriteUShort(44, h.MacStyle)
	_, _ = buf.WriteUShort(46, h.LowestRecPPEM)
	_, _ = buf.WriteShort(48, h.FontDirectionHint)
	_, _ = buf.WriteShort(50, h.IndexToLocFormat)
	_, _ = buf.WriteShort(52, h.GlyphDataFormat)
	return buf.Bytes()
}

// HeadBuilder is the editable builder for the "head" table.
type HeadBuilder struct {
	*table.ModelBuilder[*Head]
}

// NewHeadBuilder wraps pristine "head" bytes in a builder.
func NewHeadBuilder(data *fontdata.Data) *HeadBuilder {
	return &HeadBuilder{table.NewModelBuilder(table.TagHead, data, DecodeHead, EncodeHead)}
}
