// Package rle implements the hybrid run-length/bit-packing encoding used by
// Parquet for definition levels, repetition levels, and dictionary indices.
//
// The stream is a concatenation of runs, each introduced by an unsigned
// LEB128 indicator. When the indicator's low bit is set the run is
// bit-packed: the upper bits count 8-value groups, and group-count*8 values
// follow at the configured bit width. When the low bit is clear the run is
// RLE: the upper bits are the run length, and the repeated value follows in
// ceil8(bitWidth) bytes, little-endian.
package rle

import (
	"github.com/segmentio/parquet-core/encoding/bitpack"
	"github.com/segmentio/parquet-core/encoding/leb128"
	"github.com/segmentio/parquet-core/internal/bits"
)

// Kind distinguishes the two run variants a Decoder can yield.
type Kind int

const (
	BitPacked Kind = iota
	Repeated
)

// Run is one token of a decoded hybrid RLE stream. For a BitPacked run,
// Data holds the raw bit-packed bytes (consumers feed them back through
// package bitpack at the stream's bit width) and Count is the number of
// values the group count implies, which may include trailing padding past
// the logical length. For a Repeated run, Data holds the little-endian,
// ceil8(bitWidth)-byte repeated value and Count is the run length.
type Run struct {
	Kind  Kind
	Data  []byte
	Count int
}

// Decoder walks a hybrid RLE byte stream at a fixed bit width, yielding one
// Run per call to Next.
type Decoder struct {
	buf      []byte
	bitWidth uint
}

// NewDecoder returns a Decoder reading runs from buf at the given bit width.
func NewDecoder(buf []byte, bitWidth uint) *Decoder {
	return &Decoder{buf: buf, bitWidth: bitWidth}
}

// Reset rebinds the decoder to a new buffer and bit width.
func (d *Decoder) Reset(buf []byte, bitWidth uint) {
	d.buf, d.bitWidth = buf, bitWidth
}

// Next returns the next run in the stream, or false once the buffer is
// exhausted.
func (d *Decoder) Next() (Run, bool) {
	if len(d.buf) == 0 {
		return Run{}, false
	}

	indicator, n := leb128.Uvarint(d.buf)
	if n <= 0 {
		d.buf = nil
		return Run{}, false
	}
	d.buf = d.buf[n:]

	if indicator&1 == 1 {
		groups := int(indicator >> 1)
		n := groups * bitpack.ByteCount(8, d.bitWidth)
		if n > len(d.buf) {
			n = len(d.buf)
		}
		data := d.buf[:n]
		d.buf = d.buf[n:]
		return Run{Kind: BitPacked, Data: data, Count: groups * 8}, true
	}

	runLength := int(indicator >> 1)
	width := bits.ByteCount(d.bitWidth)
	if width > len(d.buf) {
		width = len(d.buf)
	}
	data := d.buf[:width]
	d.buf = d.buf[width:]
	return Run{Kind: Repeated, Data: data, Count: runLength}, true
}

// DecodeUint32 decodes count values at the given bit width from a hybrid
// RLE stream into dst, which must have length >= count.
func DecodeUint32(dst []uint32, src []byte, bitWidth uint, count int) int {
	d := NewDecoder(src, bitWidth)
	decoded := 0

	for decoded < count {
		run, ok := d.Next()
		if !ok {
			break
		}

		remaining := count - decoded
		n := run.Count
		if n > remaining {
			n = remaining
		}

		switch run.Kind {
		case BitPacked:
			bitpack.Decode(dst[decoded:decoded+n], run.Data, bitWidth, n)
		case Repeated:
			v := decodeLittleEndian(run.Data, bitWidth)
			for i := 0; i < n; i++ {
				dst[decoded+i] = v
			}
		}
		decoded += n
	}

	return decoded
}

// AppendEncodeUint32 appends the hybrid RLE encoding of src to dst, using
// only the bit-packed run variant (equal-value runs are not compressed),
// at the given bit width.
func AppendEncodeUint32(dst []byte, src []uint32, bitWidth uint) []byte {
	groups := (len(src) + 7) / 8
	padded := src
	if rem := len(src) % 8; rem != 0 {
		padded = make([]uint32, groups*8)
		copy(padded, src)
	}

	indicator := uint64(groups)<<1 | 1
	dst = leb128.AppendUvarint(dst, indicator)
	return bitpack.AppendEncode(dst, padded, bitWidth)
}

// AppendEncodeLevelsV1 appends a V1 data page level section: a 4-byte
// little-endian length prefix followed by the hybrid RLE encoding of src at
// bitWidth.
func AppendEncodeLevelsV1(dst []byte, src []uint32, bitWidth uint) []byte {
	lengthOffset := len(dst)
	dst = append(dst, 0, 0, 0, 0)
	start := len(dst)
	dst = AppendEncodeUint32(dst, src, bitWidth)
	bits.PutLength(dst[lengthOffset:], uint32(len(dst)-start))
	return dst
}

// DecodeLevelsV1 reads a V1 data page level section (4-byte length prefix
// then hybrid RLE payload) from the front of src, decoding count values at
// bitWidth into dst. It returns the number of bytes of src consumed,
// including the length prefix.
func DecodeLevelsV1(dst []uint32, src []byte, bitWidth uint, count int) int {
	if len(src) < 4 {
		return 0
	}
	length := bits.GetLength(src)
	payload := src[4:]
	if int(length) < len(payload) {
		payload = payload[:length]
	}
	DecodeUint32(dst, payload, bitWidth, count)
	return 4 + int(length)
}

func decodeLittleEndian(buf []byte, bitWidth uint) uint32 {
	var v uint32
	for i, b := range buf {
		v |= uint32(b) << (8 * uint(i))
	}
	if bitWidth < 32 {
		v &= (uint32(1) << bitWidth) - 1
	}
	return v
}
