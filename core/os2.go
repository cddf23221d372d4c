package core

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// OS2 holds the decoded "OS/2" table across its six wire versions (0-5). Fields
// that a lower version does not carry keep their zero value.
type OS2 struct {
	Version             uint16
	XAvgCharWidth       int16
	UsWeightClass       uint16
	UsWidthClass        uint16
	FsType              uint16
	YSubscriptXSize     int16
	YSubscriptYSize     int16
	YSubscriptXOffset   int16
	YSubscriptYOffset   int16
	YSuperscriptXSize   int16
	YSuperscriptYSize   int16
	YSuperscriptXOffset int16
	YSuperscriptYOffset int16
	YStrikeoutSize      int16
	YStrikeoutPosition  int16
	SFamilyClass        int16
	Panose              [10]byte
	UlUnicodeRange1     uint32
	UlUnicodeRange2     uint32
	UlUnicodeRange3     uint32
	UlUnicodeRange4     uint32
	AchVendID           [4]byte
	FsSelection         uint16
	UsFirstCharIndex    uint16
	UsLastCharIndex     uint16
	STypoAscender       int16
	STypoDescender      int16
	STypoLineGap        int16
	UsWinAscent         uint16
	UsWinDescent        uint16

	// version >= 1
	UlCodePageRange1 uint32
	UlCodePageRange2 uint32

	// version >= 2
	SxHeight      int16
	SCapHeight    int16
	UsDefaultChar uint16
	UsBreakChar   uint16
	UsMaxContext  uint16

	// version 5
	UsLowerOpticalPointSize uint16
	UsUpperOpticalPointSize uint16
}

const (
	os2SizeV0 = 78
	os2SizeV1 = 86
	os2SizeV2 = 96
	os2SizeV5 = 100
)

// DecodeOS2 reads an "OS/2" table from data, dispatching on its version
// field to know which trailing fields are present.
func DecodeOS2(data *fontdata.Data) (*OS2, error) {
	if data.Length() < os2SizeV0 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagOS2.String(), Reason: "table shorter than version 0 layout (78 bytes)"}
	}
	o := &OS2{}
	var err error
	if o.Version, err = data.ReadUShort(0); err != nil {
		return nil, err
	}
	if o.XAvgCharWidth, err = data.ReadShort(2); err != nil {
		return nil, err
	}
	if o.UsWeightClass, err = data.ReadUShort(4); err != nil {
		return nil, err
	}
	if o.UsWidthClass, err = data.ReadUShort(6); err != nil {
		return nil, err
	}
	if o.FsType, err = data.ReadUShort(8); err != nil {
		return nil, err
	}
	shortFields := []*int16{
		&o.YSubscriptXSize, &o.YSubscriptYSize, &o.YSubscriptXOffset, &o.YSubscriptYOffset,
		&o.YSuperscriptXSize, &o.YSuperscriptYSize, &o.YSuperscriptXOffset, &o.YSuperscriptYOffset,
		&o.YStrikeoutSize, &o.YStrikeoutPosition, &o.SFamilyClass,
	}
	off := 10
	for _, f := range shortFields {
		if *f, err = data.ReadShort(off); err != nil {
			return nil, err
		}
		off += 2
	}
	for i := range o.Panose {
		if o.Panose[i], err = data.ReadUByte(off + i); err != nil {
			return nil, err
		}
	}
	off += 10
	if o.UlUnicodeRange1, err = data.ReadULong(off); err != nil {
		return nil, err
	}
	if o.UlUnicodeRange2, err = data.ReadULong(off + 4); err != nil {
		return nil, err
	}
	if o.UlUnicodeRange3, err = data.ReadULong(off + 8); err != nil {
		return nil, err
	}
	if o.UlUnicodeRange4, err = data.ReadULong(off + 12); err != nil {
		return nil, err
	}
	off += 16
	for i := range o.AchVendID {
		if o.AchVendID[i], err = data.ReadUByte(off + i); err != nil {
			return nil, err
		}
	}
	off += 4
	if o.FsSelection, err = data.ReadUShort(off); err != nil {
		return nil, err
	}
	if o.UsFirstCharIndex, err = data.ReadUShort(off + 2); err != nil {
		return nil, err
	}
	if o.UsLastCharIndex, err = data.ReadUShort(off + 4); err != nil {
		return nil, err
	}
	if o.STypoAscender, err = data.ReadShort(off + 6); err != nil {
		return nil, err
	}
	if o.STypoDescender, err = data.ReadShort(off + 8); err != nil {
		return nil, err
	}
	if o.STypoLineGap, err = data.ReadShort(off + 10); err != nil {
		return nil, err
	}
	if o.UsWinAscent, err = data.ReadUShort(off + 12); err != nil {
		return nil, err
	}
	if o.UsWinDescent, err = data.ReadUShort(off + 14); err != nil {
		return nil, err
	}
	off += 16 // now at 78

	if o.Version < 1 {
		return o, nil
	}
	if data.Length() < os2SizeV1 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagOS2.String(), Reason: "table shorter than version 1 layout (86 bytes)"}
	}
	if o.UlCodePageRange1, err = data.ReadULong(off); err != nil {
		return nil, err
	}
	if o.UlCodePageRange2, err = data.ReadULong(off + 4); err != nil {
		return nil, err
	}
	off += 8 // now at 86

	if o.Version < 2 {
		return o, nil
	}
	if data.Length() < os2SizeV2 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagOS2.String(), Reason: "table shorter than version 2 layout (96 bytes)"}
	}
	if o.SxHeight, err = data.ReadShort(off); err != nil {
		return nil, err
	}
	if o.SCapHeight, err = data.ReadShort(off + 2); err != nil {
		return nil, err
	}
	if o.UsDefaultChar, err = data.ReadUShort(off + 4); err != nil {
		return nil, err
	}
	if o.UsBreakChar, err = data.ReadUShort(off + 6); err != nil {
		return nil, err
	}
	if o.UsMaxContext, err = data.ReadUShort(off + 8); err != nil {
		return nil, err
	}
	off += 10 // now at 96

	if o.Version < 5 {
		return o, nil
	}
	if data.Length() < os2SizeV5 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagOS2.String(), Reason: "table shorter than version 5 layout (100 bytes)"}
	}
	if o.UsLowerOpticalPointSize, err = data.ReadUShort(off); err != nil {
		return nil, err
	}
	if o.UsUpperOpticalPointSize, err = data.ReadUShort(off + 2); err != nil {
		return nil, err
	}
	return o, nil
}

// EncodeOS2 writes o back to its wire form, sized according to o.Version.
func EncodeOS2(o *OS2) []byte {
	size := os2SizeV0
	switch {
	case o.Version >= 5:
		size = os2SizeV5
	case o.Version >= 2:
		size = os2SizeV2
	case o.Version >= 1:
		size = os2SizeV1
	}

	buf := fontdata.NewGrowable(size)
	_, _ = buf.WriteUShort(0, o.Version)
	_, _ = buf.WriteShort(2, o.XAvgCharWidth)
	_, _ = buf.WriteUShort(4, o.UsWeightClass)
	_, _ = buf.WriteUShort(6, o.UsWidthClass)
	_, _ = buf.WriteUShort(8, o.FsType)
	shortFields := []int16{
		o.YSubscriptXSize, o.YSubscriptYSize, o.YSubscriptXOffset, o.YSubscriptYOffset,
		o.YSuperscriptXSize, o.YSuperscriptYSize, o.YSuperscriptXOffset, o.YSuperscriptYOffset,
		o.YStrikeoutSize, o.YStrikeoutPosition, o.SFamilyClass,
	}
	off := 10
	for _, v := range shortFields {
		_, _ = buf.WriteShort(off, v)
		off += 2
	}
	for i, b := range o.Panose {
		_, _ = buf.WriteUByte(off+i, b)
	}
	off += 10
	_, _ = buf.WriteULong(off, o.UlUnicodeRange1)
	_, _ = buf.WriteULong(off+4, o.UlUnicodeRange2)
	_, _ = buf.WriteULong(off+8, o.UlUnicodeRange3)
	_, _ = buf.WriteULong(off+12, o.UlUnicodeRange4)
	off += 16
	for i, b := range o.AchVendID {
		_, _ = buf.WriteUByte(off+i, b)
	}
	off += 4
	_, _ = buf.WriteUShort(off, o.FsSelection)
	_, _ = buf.WriteUShort(off+2, o.UsFirstCharIndex)
	_, _ = buf.WriteUShort(off+4, o.UsLastCharIndex)
	_, _ = buf.WriteShort(off+6, o.STypoAscender)
	_, _ = buf.WriteShort(off+8, o.STypoDescender)
	_, _ = buf.WriteShort(off+10, o.STypoLineGap)
	_, _ = buf.WriteUShort(off+12, o.UsWinAscent)
	_, _ = buf.WriteUShort(off+14, o.UsWinDescent)
	off += 16

	if o.Version >= 1 {
		_, _ = buf.WriteULong(off, o.UlCodePageRange1)
		_, _ = buf.WriteULong(off+4, o.UlCodePageRange2)
		off += 8
	}
	if o.Version >= 2 {
		_, _ = buf.WriteShort(off, o.SxHeight)
		_, _ = buf.WriteShort(off+2, o.SCapHeight)
		_, _ = buf.WriteUShort(off+4, o.UsDefaultChar)
		_, _ = buf.WriteUShort(off+6, o.UsBreakChar)
		_, _ = buf.WriteUShort(off+8, o.UsMaxContext)
		off += 10
	}
	if o.Version >= 5 {
		_, _ = buf.WriteUShort(off, o.UsLowerOpticalPointSize)
		_, _ = buf.WriteUShort(off+2, o.UsUpperOpticalPointSize)
	}
	return buf.Bytes()
}

// OS2Builder is the editable builder for the "OS/2" table.
type OS2Builder struct {
	*table.ModelBuilder[*OS2]
}

// NewOS2Builder wraps pristine "OS/2" bytes in a builder.
func NewOS2Builder(data *fontdata.Data) *OS2Builder {
	return &OS2Builder{table.NewModelBuilder(table.TagOS2, data, DecodeOS2, EncodeOS2)}
}
