// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package fontdata implements the byte-buffer abstraction shared by every
// table decoder and encoder in this module: bounded big-endian reads and
// writes, reference-sharing slices, and the table checksum every sfnt
// table directory record carries.
//
// A Data value is a window, defined by an (offset, length) pair, over a
// backing []byte. Slicing produces a new window over the same backing
// array; writes through a writable slice are visible through the parent,
// matching the aliasing semantics a Go slice already gives for free.
package fontdata

import (
	"encoding/binary"

	"github.com/tesserfont/sfnt/sfnterror"
)

// Data is a bounded, big-endian view over a byte buffer. The zero value is
// not usable; construct one with New or Slice.
type Data struct {
	buf      []byte // shared backing storage
	offset   int    // start of this window within buf
	length   int    // number of bytes visible through this window
	writable bool
	growable bool // writes past length extend buf (builder output only)
}

// New wraps buf in a read-only Data window covering the whole slice.
func New(buf []byte) *Data {
	return &Data{buf: buf, offset: 0, length: len(buf)}
}

// NewWritable wraps buf in a writable Data window covering the whole
// slice. Writes are visible to any reader sharing buf's backing array.
func NewWritable(buf []byte) *Data {
	return &Data{buf: buf, offset: 0, length: len(buf), writable: true}
}

// NewGrowable returns an empty writable Data window that extends its
// backing array on writes past the current length, for use as builder
// output. Capacity is pre-reserved to size hint.
func NewGrowable(sizeHint int) *Data {
	return &Data{buf: make([]byte, 0, sizeHint), writable: true, growable: true}
}

// Length reports the number of bytes visible through this window.
func (d *Data) Length() int {
	return d.length
}

// Bytes returns the bytes of this window. The caller must not retain or
// mutate the result if the window is writable and shared.
func (d *Data) Bytes() []byte {
	return d.buf[d.offset : d.offset+d.length]
}

// Writable reports whether writes are permitted through this window.
func (d *Data) Writable() bool {
	return d.writable
}

func (d *Data) checkRead(offset, size int) error {
	if offset < 0 || size < 0 || offset+size > d.length {
		return &sfnterror.OutOfBounds{Op: "read", Offset: offset, Length: size, Bound: d.length}
	}
	return nil
}

// Slice returns a bounded subview of d starting at offset with the given
// length; the subview shares d's backing array. It fails with OutOfBounds
// if offset+length exceeds d's length.
func (d *Data) Slice(offset, length int) (*Data, error) {
	if offset < 0 || length < 0 || offset+length > d.length {
		return nil, &sfnterror.OutOfBounds{Op: "slice", Offset: offset, Length: length, Bound: d.length}
	}
	return &Data{
		buf:      d.buf,
		offset:   d.offset + offset,
		length:   length,
		writable: d.writable,
	}, nil
}

// --- scalar reads ---

// ReadByte reads a raw byte at offset.
func (d *Data) ReadByte(offset int) (byte, error) {
	if err := d.checkRead(offset, 1); err != nil {
		return 0, err
	}
	return d.buf[d.offset+offset], nil
}

// ReadUByte reads an unsigned 8-bit integer at offset.
func (d *Data) ReadUByte(offset int) (uint8, error) {
	b, err := d.ReadByte(offset)
	return uint8(b), err
}

// ReadShort reads a signed, big-endian 16-bit integer at offset.
func (d *Data) ReadShort(offset int) (int16, error) {
	v, err := d.ReadUShort(offset)
	return int16(v), err
}

// ReadUShort reads an unsigned, big-endian 16-bit integer at offset.
func (d *Data) ReadUShort(offset int) (uint16, error) {
	if err := d.checkRead(offset, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(d.buf[d.offset+offset:]), nil
}

// ReadLong reads a signed, big-endian 32-bit integer at offset.
func (d *Data) ReadLong(offset int) (int32, error) {
	v, err := d.readULong(offset)
	return int32(v), err
}

func (d *Data) readULong(offset int) (uint32, error) {
	if err := d.checkRead(offset, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(d.buf[d.offset+offset:]), nil
}

// ReadULong reads an unsigned, big-endian 32-bit integer at offset.
func (d *Data) ReadULong(offset int) (uint32, error) {
	return d.readULong(offset)
}

// ReadULongAsInt reads an unsigned 32-bit value and returns it as a signed
// host integer, failing with OutOfBounds if the top bit is set (the value
// would not fit in a 31-bit-plus-sign result).
func (d *Data) ReadULongAsInt(offset int) (int, error) {
	v, err := d.readULong(offset)
	if err != nil {
		return 0, err
	}
	if v > 0x7FFFFFFF {
		return 0, &sfnterror.OutOfBounds{Op: "read", Offset: offset, Length: 4, Bound: d.length}
	}
	return int(v), nil
}

// ReadFixed reads a 16.16 fixed-point value at offset.
func (d *Data) ReadFixed(offset int) (int32, error) {
	return d.ReadLong(offset)
}

// ReadF2Dot14 reads a 2.14 fixed-point value at offset, returning the
// decoded float64.
func (d *Data) ReadF2Dot14(offset int) (float64, error) {
	v, err := d.ReadShort(offset)
	if err != nil {
		return 0, err
	}
	return float64(v) / (1 << 14), nil
}

// ReadLongDateTime reads a signed 64-bit big-endian timestamp (seconds
// since 1904-01-01 00:00:00 UTC) at offset.
func (d *Data) ReadLongDateTime(offset int) (int64, error) {
	if err := d.checkRead(offset, 8); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(d.buf[d.offset+offset:])), nil
}

// --- scalar writes ---

func (d *Data) ensureWritable(offset, size int) error {
	if !d.writable {
		return &sfnterror.OutOfBounds{Op: "write", Offset: offset, Length: size, Bound: d.length}
	}
	if offset < 0 || size < 0 {
		return &sfnterror.OutOfBounds{Op: "write", Offset: offset, Length: size, Bound: d.length}
	}
	need := offset + size
	if need <= d.length {
		return nil
	}
	if !d.growable {
		return &sfnterror.OutOfBounds{Op: "write", Offset: offset, Length: size, Bound: d.length}
	}
	if d.offset+need > cap(d.buf) {
		grown := make([]byte, d.offset+need)
		copy(grown, d.buf)
		d.buf = grown
	} else if d.offset+need > len(d.buf) {
		d.buf = d.buf[:d.offset+need]
	}
	d.length = need
	return nil
}

// WriteByte writes a raw byte at offset and returns the number of bytes
// written.
func (d *Data) WriteByte(offset int, v byte) (int, error) {
	if err := d.ensureWritable(offset, 1); err != nil {
		return 0, err
	}
	d.buf[d.offset+offset] = v
	return 1, nil
}

// WriteUByte writes an unsigned 8-bit integer at offset.
func (d *Data) WriteUByte(offset int, v uint8) (int, error) {
	return d.WriteByte(offset, byte(v))
}

// WriteShort writes a signed, big-endian 16-bit integer at offset.
func (d *Data) WriteShort(offset int, v int16) (int, error) {
	return d.WriteUShort(offset, uint16(v))
}

// WriteUShort writes an unsigned, big-endian 16-bit integer at offset.
func (d *Data) WriteUShort(offset int, v uint16) (int, error) {
	if err := d.ensureWritable(offset, 2); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint16(d.buf[d.offset+offset:], v)
	return 2, nil
}

// WriteLong writes a signed, big-endian 32-bit integer at offset.
func (d *Data) WriteLong(offset int, v int32) (int, error) {
	return d.WriteULong(offset, uint32(v))
}

// WriteULong writes an unsigned, big-endian 32-bit integer at offset.
func (d *Data) WriteULong(offset int, v uint32) (int, error) {
	if err := d.ensureWritable(offset, 4); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(d.buf[d.offset+offset:], v)
	return 4, nil
}

// WriteFixed writes a 16.16 fixed-point value at offset.
func (d *Data) WriteFixed(offset int, v int32) (int, error) {
	return d.WriteLong(offset, v)
}

// WriteLongDateTime writes a signed 64-bit big-endian timestamp at offset.
func (d *Data) WriteLongDateTime(offset int, v int64) (int, error) {
	if err := d.ensureWritable(offset, 8); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint64(d.buf[d.offset+offset:], uint64(v))
	return 8, nil
}

// WriteBytes copies src into d starting at offset and returns the number
// of bytes written.
func (d *Data) WriteBytes(offset int, src []byte) (int, error) {
	if err := d.ensureWritable(offset, len(src)); err != nil {
		return 0, err
	}
	return copy(d.buf[d.offset+offset:], src), nil
}

// SearchUShort binary-searches count ranges of uint16 values for the one
// containing key, and returns its index or -1 if none contains it. Range
// i covers [start, end] inclusive, where start is read at
// startOffset+i*startStride and end at endOffset+i*endStride; ends must
// be non-decreasing in i. Errors reading past d's bounds are treated as
// a search miss.
func (d *Data) SearchUShort(startOffset, startStride, endOffset, endStride, count int, key uint16) int {
	lo, hi := 0, count
	for lo < hi {
		mid := (lo + hi) / 2
		end, err := d.ReadUShort(endOffset + mid*endStride)
		if err != nil {
			return -1
		}
		if end < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= count {
		return -1
	}
	start, err := d.ReadUShort(startOffset + lo*startStride)
	if err != nil {
		return -1
	}
	end, err := d.ReadUShort(endOffset + lo*endStride)
	if err != nil {
		return -1
	}
	if key < start || key > end {
		return -1
	}
	return lo
}

// SearchULong is SearchUShort's uint32 counterpart.
func (d *Data) SearchULong(startOffset, startStride, endOffset, endStride, count int, key uint32) int {
	lo, hi := 0, count
	for lo < hi {
		mid := (lo + hi) / 2
		end, err := d.ReadULong(endOffset + mid*endStride)
		if err != nil {
			return -1
		}
		if end < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= count {
		return -1
	}
	start, err := d.ReadULong(startOffset + lo*startStride)
	if err != nil {
		return -1
	}
	end, err := d.ReadULong(endOffset + lo*endStride)
	if err != nil {
		return -1
	}
	if key < start || key > end {
		return -1
	}
	return lo
}

// Checksum computes the OpenType table checksum: the sum of the buffer
// interpreted as big-endian uint32 words, with the final partial word
// zero-padded.
func (d *Data) Checksum() uint32 {
	buf := d.Bytes()
	var sum uint32
	full := len(buf) / 4 * 4
	for i := 0; i < full; i += 4 {
		sum += binary.BigEndian.Uint32(buf[i:])
	}
	if rem := len(buf) - full; rem > 0 {
		var last [4]byte
		copy(last[:], buf[full:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}
