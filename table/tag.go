// Package table defines the tag encoding, directory record layout, and the
// generic Pristine/Edited/ReSerialized builder-lifecycle discipline shared
// by every table decoder in this module.
package table

import "fmt"

// Tag is a 4-byte ASCII table identifier, encoded as callers see it on the
// wire: a big-endian uint32 whose bytes are the ASCII characters in order.
type Tag uint32

// MakeTag builds a Tag from its four ASCII bytes, e.g. MakeTag('c','m','a','p').
func MakeTag(a, b, c, d byte) Tag {
	return Tag(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// ParseTag builds a Tag from a 4-character string, padding with spaces if
// s is shorter than 4 bytes.
func ParseTag(s string) Tag {
	var b [4]byte
	for i := range b {
		b[i] = ' '
	}
	copy(b[:], s)
	return MakeTag(b[0], b[1], b[2], b[3])
}

// String renders the tag as its 4-character ASCII form.
func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// Well-known tags for the tables this module decodes directly.
var (
	TagHead = ParseTag("head")
	TagHhea = ParseTag("hhea")
	TagHmtx = ParseTag("hmtx")
	TagMaxp = ParseTag("maxp")
	TagName = ParseTag("name")
	TagOS2  = ParseTag("OS/2")
	TagPost = ParseTag("post")
	TagCmap = ParseTag("cmap")
	TagGlyf = ParseTag("glyf")
	TagLoca = ParseTag("loca")
	TagEBLC = ParseTag("EBLC")
	TagEBDT = ParseTag("EBDT")
	TagEBSC = ParseTag("EBSC")
	TagGSUB = ParseTag("GSUB")
	TagGPOS = ParseTag("GPOS")
	TagGDEF = ParseTag("GDEF")
)

// Record is a single table-directory entry.
type Record struct {
	Tag      Tag
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

func (r Record) String() string {
	return fmt.Sprintf("%s@%d+%d (sum %#08x)", r.Tag, r.Offset, r.Length, r.CheckSum)
}
