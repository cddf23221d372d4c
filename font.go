// Package sfnt implements the top-level Font container, its builder
// lifecycle, and the table directory that locates each table's bytes
// within an sfnt (TrueType/OpenType) font file, per ISO/IEC 14496-22.
//
// The lower layers live in sibling packages: fontdata (the FontData byte
// buffer abstraction), table (the tag/record types and the generic
// builder-lifecycle helper), and the per-table-family packages core,
// cmap, glyf, bitmap, and opentype.
package sfnt

import (
	"sort"

	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// Font is an immutable, fully directory-resolved sfnt font: a set of
// tables keyed by tag, each already sliced out of the source bytes. Font
// values are safe for concurrent read as long as the backing bytes are
// not mutated.
type Font struct {
	sfntVersion uint32
	tables      map[table.Tag]*table.Table
}

// SfntVersion returns the raw sfntVersion / scaler type field from the
// offset table.
func (f *Font) SfntVersion() uint32 {
	return f.sfntVersion
}

// Table returns the table with the given tag, and whether it exists.
func (f *Font) Table(tag table.Tag) (*table.Table, bool) {
	t, ok := f.tables[tag]
	return t, ok
}

// Tables returns every table in the font, ordered by tag.
func (f *Font) Tables() []*table.Table {
	out := make([]*table.Table, 0, len(f.tables))
	for _, t := range f.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Header.Tag < out[j].Header.Tag })
	return out
}

// NumTables reports how many tables the font has.
func (f *Font) NumTables() int {
	return len(f.tables)
}

// sortedTags returns the keys of tables in ascending tag order.
func sortedTags(tables map[table.Tag]*table.Table) []table.Tag {
	tags := make([]table.Tag, 0, len(tables))
	for t := range tables {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Load parses a single sfnt font (not a collection) from data, whose
// offset table starts at data's byte 0. It validates the
// table directory only — per bad table contents surface later, on typed
// access, as CorruptTable or OutOfBounds errors.
func Load(data *fontdata.Data) (*Font, error) {
	sfntVersion, records, err := readDirectory(data)
	if err != nil {
		return nil, err
	}

	tables := make(map[table.Tag]*table.Table, len(records))
	for _, r := range records {
		body, err := data.Slice(int(r.Offset), int(r.Length))
		if err != nil {
			return nil, &sfnterror.CorruptTable{Tag: r.Tag.String(), Reason: "table range exceeds font bounds"}
		}
		tables[r.Tag] = &table.Table{Header: r, Data: body}
	}

	return &Font{sfntVersion: sfntVersion, tables: tables}, nil
}

// Serialize writes the font back to its binary form: offset table,
// directory, and each table body padded to a 4-byte boundary. If a "head"
// table is present its checkSumAdjustment is recomputed so that the
// whole-font checksum plus the adjustment equals 0xB1B0AFBA. The
// directory itself is always written in sorted tag order, but table
// bodies are laid out by their original Header.Offset (stable, ties
// broken by tag), so that a font loaded via Load and never edited
// round-trips to identical bytes even when its tables were not stored in
// tag order on disk. Tables with no original offset (added by a
// Builder) sort after everything with a nonzero one, in tag order.
func (f *Font) Serialize() ([]byte, error) {
	tags := sortedTags(f.tables)
	bodies := make(map[table.Tag][]byte, len(tags))
	for _, tag := range tags {
		bodies[tag] = append([]byte(nil), f.tables[tag].Data.Bytes()...)
	}

	if head, ok := bodies[table.TagHead]; ok && len(head) >= 12 {
		head[8], head[9], head[10], head[11] = 0, 0, 0, 0
	}

	bodyOrder := append([]table.Tag(nil), tags...)
	sort.SliceStable(bodyOrder, func(i, j int) bool {
		oi := f.tables[bodyOrder[i]].Header.Offset
		oj := f.tables[bodyOrder[j]].Header.Offset
		if oi == 0 || oj == 0 {
			return oi != 0 && oj == 0
		}
		return oi < oj
	})

	header := writeDirectory(f.sfntVersion, tags, bodyOrder, bodies)

	var total uint32
	total += fontdata.New(header).Checksum()
	for _, tag := range bodyOrder {
		total += fontdata.New(padBytes(bodies[tag])).Checksum()
	}

	if head, ok := bodies[table.TagHead]; ok && len(head) >= 12 {
		adjustment := checksumAdjustmentMagic - total
		head[8] = byte(adjustment >> 24)
		head[9] = byte(adjustment >> 16)
		head[10] = byte(adjustment >> 8)
		head[11] = byte(adjustment)
	}

	out := append([]byte(nil), header...)
	for _, tag := range bodyOrder {
		out = append(out, padBytes(bodies[tag])...)
	}
	return out, nil
}

func padBytes(b []byte) []byte {
	n := pad4(len(b))
	if n == len(b) {
		return b
	}
	padded := make([]byte, n)
	copy(padded, b)
	return padded
}

// Builder is an editable font under construction: a table.Builder per
// tag, following the Pristine/Edited/ReSerialized state machine each
// builder implements. Build walks the builders in tag order, refusing to
// proceed if any reports ReadyToSerialize() == false.
type Builder struct {
	sfntVersion uint32
	builders    map[table.Tag]table.Builder
}

// NewBuilder starts an empty Builder for the given sfnt version
// (typically ScalerTypeTrueType or ScalerTypeOpenType).
func NewBuilder(sfntVersion uint32) *Builder {
	return &Builder{sfntVersion: sfntVersion, builders: make(map[table.Tag]table.Builder)}
}

// FromFont starts a Builder from an existing Font, wrapping each table's
// raw bytes in the typed builder the registry names for its tag (falling
// back to an opaque pass-through for tags this module does not decode).
func FromFont(f *Font) *Builder {
	b := NewBuilder(f.sfntVersion)
	for tag, t := range f.tables {
		if ctor, ok := simpleBuilders[tag]; ok {
			b.builders[tag] = ctor(t.Data)
		} else {
			b.builders[tag] = table.NewOpaqueBuilder(tag, t.Data)
		}
	}
	return b
}

// SetTable installs bl as the builder for its own Tag(), replacing
// whatever was there (including an opaque pass-through created by
// FromFont).
func (b *Builder) SetTable(bl table.Builder) {
	b.builders[bl.Tag()] = bl
}

// TableBuilder returns the builder currently installed for tag, if any.
func (b *Builder) TableBuilder(tag table.Tag) (table.Builder, bool) {
	bl, ok := b.builders[tag]
	return bl, ok
}

// RemoveTable drops tag from the builder entirely; it will not appear in
// the built Font.
func (b *Builder) RemoveTable(tag table.Tag) {
	delete(b.builders, tag)
}

// Build materializes every table builder into a new immutable Font. It
// fails with NotReadyForSerialization if any installed builder is not
// ready.
func (b *Builder) Build() (*Font, error) {
	tables := make(map[table.Tag]*table.Table, len(b.builders))
	tags := make([]table.Tag, 0, len(b.builders))
	for tag := range b.builders {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	for _, tag := range tags {
		bl := b.builders[tag]
		if !bl.ReadyToSerialize() {
			return nil, &sfnterror.NotReadyForSerialization{Tag: tag.String()}
		}
		size := bl.DataSizeToSerialize()
		out := fontdata.NewGrowable(size)
		if _, err := bl.Serialize(out); err != nil {
			return nil, err
		}
		d := fontdata.New(out.Bytes())
		tables[tag] = &table.Table{
			Header: table.Record{Tag: tag, Length: uint32(d.Length()), CheckSum: d.Checksum()},
			Data:   d,
		}
	}
	return &Font{sfntVersion: b.sfntVersion, tables: tables}, nil
}

// simpleBuilders maps a tag to the constructor for tables whose builder
// needs nothing beyond its own raw bytes to decode (no cross-table
// dependency at construction time). Tables that do need one — hmtx
// (numberOfHMetrics, numGlyphs), loca (indexToLocFormat, numGlyphs), glyf
// (loca) — are wired explicitly by callers via SetTable instead of
// through this registry; see the accessor methods in accessors.go.
var simpleBuilders = map[table.Tag]func(*fontdata.Data) table.Builder{}

func registerSimpleBuilder(tag table.Tag, ctor func(*fontdata.Data) table.Builder) {
	simpleBuilders[tag] = ctor
}
