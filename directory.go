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

package sfnt

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// Scaler types recognized in the offset table's first field.
const (
	ScalerTypeTrueType uint32 = 0x00010000
	ScalerTypeOpenType uint32 = 0x4F54544F // "OTTO"
	ScalerTypeApple    uint32 = 0x74727565 // "true"
	ScalerTypeTTC      uint32 = 0x74746366 // "ttcf", collection header
)

// offsetTableSize is the size of the sfnt header preceding the table
// directory: sfntVersion, numTables, searchRange, entrySelector,
// rangeShift.
const offsetTableSize = 12

// recordSize is the size of a single table-directory record.
const recordSize = 16

// checksumAdjustmentMagic is the constant every well-formed font's whole
// checksum plus its "head" checkSumAdjustment field must sum to.
const checksumAdjustmentMagic = 0xB1B0AFBA

// readDirectory parses the offset table and table records starting at
// offset 0 of data, validating the directory: it must be sorted by tag,
// contain no duplicate tag, and every record's range must lie within
// data's bounds. It does not validate the contents of any table.
func readDirectory(data *fontdata.Data) (sfntVersion uint32, records []table.Record, err error) {
	sfntVersion, err = data.ReadULong(0)
	if err != nil {
		return 0, nil, err
	}
	numTables, err := data.ReadUShort(4)
	if err != nil {
		return 0, nil, err
	}

	records = make([]table.Record, numTables)
	for i := range records {
		pos := offsetTableSize + i*recordSize
		tag, err := data.ReadULong(pos)
		if err != nil {
			return 0, nil, err
		}
		checksum, err := data.ReadULong(pos + 4)
		if err != nil {
			return 0, nil, err
		}
		offset, err := data.ReadULong(pos + 8)
		if err != nil {
			return 0, nil, err
		}
		length, err := data.ReadULong(pos + 12)
		if err != nil {
			return 0, nil, err
		}
		records[i] = table.Record{Tag: table.Tag(tag), CheckSum: checksum, Offset: offset, Length: length}
	}

	for i, r := range records {
		if uint64(r.Offset)+uint64(r.Length) > uint64(data.Length()) {
			return 0, nil, &sfnterror.CorruptTable{Tag: r.Tag.String(), Reason: "table range exceeds font bounds"}
		}
		if i > 0 {
			if records[i-1].Tag == r.Tag {
				return 0, nil, &sfnterror.CorruptTable{Tag: r.Tag.String(), Reason: "duplicate table tag in directory"}
			}
			if records[i-1].Tag > r.Tag {
				return 0, nil, &sfnterror.CorruptTable{Tag: r.Tag.String(), Reason: "table directory is not sorted by tag"}
			}
		}
	}

	return sfntVersion, records, nil
}

// writeDirectory serializes the offset table and table directory. tags
// gives the directory record order (already sorted by tag, per the
// on-disk requirement readDirectory enforces); bodyOrder gives the order
// table bodies are laid out in the trailing data region, which need not
// match tags. bodies holds each tag's unpadded body; each offset advances
// by the preceding body's length rounded up to a 4-byte boundary, and each
// record's length is the unpadded length. It returns the complete header
// bytes.
func writeDirectory(sfntVersion uint32, tags, bodyOrder []table.Tag, bodies map[table.Tag][]byte) []byte {
	n := len(tags)
	searchRange, entrySelector, rangeShift := table.SearchParams(n, recordSize)

	out := fontdata.NewGrowable(offsetTableSize + n*recordSize)
	_, _ = out.WriteULong(0, sfntVersion)
	_, _ = out.WriteUShort(4, uint16(n))
	_, _ = out.WriteUShort(6, searchRange)
	_, _ = out.WriteUShort(8, entrySelector)
	_, _ = out.WriteUShort(10, rangeShift)

	offsets := make(map[table.Tag]uint32, n)
	offset := uint32(offsetTableSize + n*recordSize)
	for _, tag := range bodyOrder {
		offsets[tag] = offset
		offset += uint32(pad4(len(bodies[tag])))
	}

	for i, tag := range tags {
		body := bodies[tag]
		pos := offsetTableSize + i*recordSize
		_, _ = out.WriteULong(pos, uint32(tag))
		_, _ = out.WriteULong(pos+4, fontdata.New(body).Checksum())
		_, _ = out.WriteULong(pos+8, offsets[tag])
		_, _ = out.WriteULong(pos+12, uint32(len(body)))
	}
	return out.Bytes()
}

// pad4 rounds n up to the next multiple of 4.
func pad4(n int) int {
	return (n + 3) &^ 3
}
