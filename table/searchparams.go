package table

import "math/bits"

// SearchParams computes the OpenType binary-search acceleration fields
// shared by the table directory and by cmap format 4: searchRange,
// entrySelector, and rangeShift for n entries of the given unit size (16
// for a directory record, 2 for a format 4 segment).
func SearchParams(n, unit int) (searchRange, entrySelector, rangeShift uint16) {
	if n > 0 {
		entrySelector = uint16(bits.Len(uint(n)) - 1)
	}
	searchRange = (1 << entrySelector) * uint16(unit)
	rangeShift = uint16(n)*uint16(unit) - searchRange
	return
}
