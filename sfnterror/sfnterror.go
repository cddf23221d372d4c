// Package sfnterror defines the error conditions raised by the table
// decoders and builders in this module.
//
// Each condition is a distinct type rather than a single sentinel, so that
// callers can recover the offending tag or format with errors.As instead of
// parsing a message string.
package sfnterror

import "fmt"

// OutOfBounds is returned when a read, write, or slice operation on a
// fontdata.Data buffer would exceed the buffer's bounds.
type OutOfBounds struct {
	Op     string // "read", "write", or "slice"
	Offset int
	Length int
	Bound  int
}

func (e *OutOfBounds) Error() string {
	return fmt.Sprintf("sfnt: %s out of bounds: offset %d, length %d, bound %d",
		e.Op, e.Offset, e.Length, e.Bound)
}

// CorruptTable is returned when a table's internal structure violates an
// invariant the format requires, discovered while materializing an
// editable model.
type CorruptTable struct {
	Tag    string
	Reason string
}

func (e *CorruptTable) Error() string {
	return fmt.Sprintf("sfnt: corrupt %q table: %s", e.Tag, e.Reason)
}

// UnknownFormat is returned when a subtable's format discriminator is not
// one this module recognizes. The table is preserved as opaque bytes; only
// typed access fails.
type UnknownFormat struct {
	Tag    string
	Format uint16
}

func (e *UnknownFormat) Error() string {
	return fmt.Sprintf("sfnt: %q table: unrecognized subtable format %d", e.Tag, e.Format)
}

// NotReadyForSerialization is returned by a Font builder when a table's
// builder cannot yet produce bytes (see table.Builder.ReadyToSerialize).
type NotReadyForSerialization struct {
	Tag string
}

func (e *NotReadyForSerialization) Error() string {
	return fmt.Sprintf("sfnt: table %q is not ready for serialization", e.Tag)
}

// GlyphOutOfRange is returned by a bitmap index subtable when a glyph id
// falls outside the subtable's [firstGlyphIndex, lastGlyphIndex] range.
type GlyphOutOfRange struct {
	Tag     string
	GlyphID int
	First   int
	Last    int
}

func (e *GlyphOutOfRange) Error() string {
	return fmt.Sprintf("sfnt: %q table: glyph %d outside range [%d, %d]", e.Tag, e.GlyphID, e.First, e.Last)
}

// ChecksumMismatch is reported by opt-in verification; it is never fatal to
// loading or serialization.
type ChecksumMismatch struct {
	Tag  string
	Want uint32
	Got  uint32
}

func (e *ChecksumMismatch) Error() string {
	return fmt.Sprintf("sfnt: table %q checksum mismatch: directory says %#08x, computed %#08x",
		e.Tag, e.Want, e.Got)
}
