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

// Hhea holds the decoded "hhea" table.
type Hhea struct {
	MajorVersion         uint16
	MinorVersion         uint16
	Ascender             int16
	Descender            int16
	LineGap              int16
	AdvanceWidthMax      uint16
	MinLeftSideBearing   int16
	MinRightSideBearing  int16
	XMaxExtent           int16
	CaretSlopeRise       int16
	CaretSlopeRun        int16
	CaretOffset          int16
	MetricDataFormat     int16
	NumberOfHMetrics     uint16
}

const hheaSize = 36

// DecodeHhea reads an "hhea" table from data.
func DecodeHhea(data *fontdata.Data) (*Hhea, error) {
	if data.Length() < hheaSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagHhea.String(), Reason: "table shorter than 36 bytes"}
	}
	h := &Hhea{}
	var err error
	if h.MajorVersion, err = data.ReadUShort(0); err != nil {
		return nil, err
	}
	if h.MinorVersion, err = data.ReadUShort(2); err != nil {
		return nil, err
	}
	if h.Ascender, err = data.ReadShort(4); err != nil {
		return nil, err
	}
	if h.Descender, err = data.ReadShort(6); err != nil {
		return nil, err
	}
	if h.LineGap, err = data.ReadShort(8); err != nil {
		return nil, err
	}
	if h.AdvanceWidthMax, err = data.ReadUShort(10); err != nil {
		return nil, err
	}
	if h.MinLeftSideBearing, err = data.ReadShort(12); err != nil {
		return nil, err
	}
	if h.MinRightSideBearing, err = data.ReadShort(14); err != nil {
		return nil, err
	}
	if h.XMaxExtent, err = data.ReadShort(16); err != nil {
		return nil, err
	}
	if h.CaretSlopeRise, err = data.ReadShort(18); err != nil {
		return nil, err
	}
	if h.CaretSlopeRun, err = data.ReadShort(20); err != nil {
		return nil, err
	}
	if h.CaretOffset, err = data.ReadShort(22); err != nil {
		return nil, err
	}
	// bytes 24..32 are four reserved int16 fields, always zero.
	if h.MetricDataFormat, err = data.ReadShort(32); err != nil {
		return nil, err
	}
	if h.NumberOfHMetrics, err = data.ReadUShort(34); err != nil {
		return nil, err
	}
	return h, nil
}

// EncodeHhea writes h back to its wire form.
func EncodeHhea(h *Hhea) []byte {
	buf := fontdata.NewGrowable(hheaSize)
	_, _ = buf.WriteUShort(0, h.MajorVersion)
	_, _ = buf.WriteUShort(2, h.MinorVersion)
	_, _ = buf.WriteShort(4, h.Ascender)
	_, _ = buf.WriteShort(6, h.Descender)
	_, _ = buf.WriteShort(8, h.LineGap)
	_, _ = buf.WriteUShort(10, h.AdvanceWidthMax)
	_, _ = buf.WriteShort(12, h.MinLeftSideBearing)
	_, _ = buf.WriteShort(14, h.MinRightSideBearing)
	_, _ = buf.WriteShort(16, h.XMaxExtent)
	_, _ = buf.WriteShort(18, h.CaretSlopeRise)
	_, _ = buf.WriteShort(20, h.CaretSlopeRun)
	_, _ = buf.WriteShort(22, h.CaretOffset)
	for _, off := range []int{24, 26, 28, 30} {
		_, _ = buf.WriteShort(off, 0)
	}
	_, _ = buf.WriteShort(32, h.MetricDataFormat)
	_, _ = buf.WriteUShort(34, h.NumberOfHMetrics)
	return buf.Bytes()
}

// HheaBuilder is the editable builder for the "hhea" table.
type HheaBuilder struct {
	*table.ModelBuilder[*Hhea]
}

// NewHheaBuilder wraps pristine "hhea" bytes in a builder.
func NewHheaBuilder(data *fontdata.Data) *HheaBuilder {
	return &HheaBuilder{table.NewModelBuilder(table.TagHhea, data, DecodeHhea, EncodeHhea)}
}
