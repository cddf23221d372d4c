package sfnt

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// ttcHeaderSize is the fixed part of a TTC header: ttcTag, majorVersion,
// minorVersion, numFonts. The version-2 DSIG fields that may follow the
// offset table are not needed for reading individual fonts out and are
// left unparsed.
const ttcHeaderSize = 12

// tableRange identifies a table's byte range within the collection's
// backing storage, used to detect tables shared between member fonts.
type tableRange struct {
	offset, length uint32
}

// Collection is a TrueType/OpenType collection ("ttc") file: several
// fonts sharing a single byte stream, each with its own table directory
// but often pointing at the same table bytes (typically "glyf", "loca",
// and other glyph-data tables shared across weights or scripts). Loading
// a Collection decodes each distinct {offset, length} table range once
// and shares the resulting *table.Table between every font whose
// directory names it, rather than re-slicing and re-checksumming
// duplicate ranges per font.
type Collection struct {
	fonts []*Font
}

// NumFonts reports how many fonts the collection contains.
func (c *Collection) NumFonts() int {
	return len(c.fonts)
}

// Font returns the i'th font in the collection.
func (c *Collection) Font(i int) *Font {
	return c.fonts[i]
}

// Fonts returns every font in the collection, in header order.
func (c *Collection) Fonts() []*Font {
	return append([]*Font(nil), c.fonts...)
}

// LoadCollection parses a "ttcf" collection from data. Each member font's
// table directory is read exactly as Load reads a single font's, except
// that a table range already seen (identical offset and length, hence
// necessarily identical bytes) is resolved to the previously built
// *table.Table instead of being sliced and wrapped again.
func LoadCollection(data *fontdata.Data) (*Collection, error) {
	tag, err := data.ReadULong(0)
	if err != nil {
		return nil, err
	}
	if tag != ScalerTypeTTC {
		return nil, &sfnterror.CorruptTable{Tag: "ttcf", Reason: "not a TrueType collection"}
	}
	numFonts, err := data.ReadULongAsInt(8)
	if err != nil {
		return nil, err
	}
	if data.Length() < ttcHeaderSize+4*numFonts {
		return nil, &sfnterror.CorruptTable{Tag: "ttcf", Reason: "collection shorter than its offset table"}
	}

	seen := make(map[tableRange]*table.Table)
	fonts := make([]*Font, numFonts)
	for i := range fonts {
		fontOffset, err := data.ReadULongAsInt(ttcHeaderSize + 4*i)
		if err != nil {
			return nil, err
		}

		sfntVersion, records, err := readDirectoryAt(data, fontOffset)
		if err != nil {
			return nil, err
		}

		tables := make(map[table.Tag]*table.Table, len(records))
		for _, r := range records {
			key := tableRange{offset: r.Offset, length: r.Length}
			if t, ok := seen[key]; ok {
				tables[r.Tag] = t
				continue
			}
			body, err := data.Slice(int(r.Offset), int(r.Length))
			if err != nil {
				return nil, &sfnterror.CorruptTable{Tag: r.Tag.String(), Reason: "table range exceeds font bounds"}
			}
			t := &table.Table{Header: r, Data: body}
			seen[key] = t
			tables[r.Tag] = t
		}

		fonts[i] = &Font{sfntVersion: sfntVersion, tables: tables}
	}

	return &Collection{fonts: fonts}, nil
}

// readDirectoryAt parses the offset table and table records of a member
// font whose directory starts at base within data, validating each
// record's range against data's own bounds. Unlike readDirectory, base
// need not be zero: a ttc member font's directory offsets are always
// absolute within the collection, not relative to the font's own
// directory, so a plain byte-range slice of the font's header (the way
// readDirectory itself is used for a bare single-font file) cannot be
// reused here without misreading those offsets against the wrong base.
func readDirectoryAt(data *fontdata.Data, base int) (sfntVersion uint32, records []table.Record, err error) {
	sfntVersion, err = data.ReadULong(base)
	if err != nil {
		return 0, nil, err
	}
	numTables, err := data.ReadUShort(base + 4)
	if err != nil {
		return 0, nil, err
	}

	records = make([]table.Record, numTables)
	for i := range records {
		pos := base + offsetTableSize + i*recordSize
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
			return 0, nil, &sfnterror.CorruptTable{Tag: r.Tag.String(), Reason: "table range exceeds collection bounds"}
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
