// Package bitpack implements the fixed-bit-width integer packing codec that
// the hybrid RLE encoding composes from: values laid out low-index-first,
// low-bit-first within the byte stream, at a declared width in [0, 32].
package bitpack

import "github.com/segmentio/parquet-core/internal/bits"

// ByteCount returns the number of bytes needed to hold count values packed
// at the given bit width.
func ByteCount(count int, width uint) int {
	return bits.ByteCount(uint(count) * width)
}

// AppendEncode appends the bit-packed encoding of src at the given width to
// dst and returns the extended slice. The final byte is zero-padded up to
// the next byte boundary when count*width is not a multiple of 8.
func AppendEncode(dst []byte, src []uint32, width uint) []byte {
	if width == 0 {
		return dst
	}
	off := len(dst)
	dst = append(dst, make([]byte, ByteCount(len(src), width))...)
	buf := dst[off:]

	var acc uint64
	var accBits uint
	pos := 0

	for _, v := range src {
		acc |= uint64(v&mask(width)) << accBits
		accBits += width
		for accBits >= 8 {
			buf[pos] = byte(acc)
			acc >>= 8
			accBits -= 8
			pos++
		}
	}
	if accBits > 0 {
		buf[pos] = byte(acc)
	}
	return dst
}

// Decode unpacks count values of the given bit width from src into dst,
// which must have length >= count. It returns the number of bytes of src
// consumed.
func Decode(dst []uint32, src []byte, width uint, count int) int {
	if width == 0 {
		for i := 0; i < count; i++ {
			dst[i] = 0
		}
		return 0
	}

	var acc uint64
	var accBits uint
	pos := 0

	for i := 0; i < count; i++ {
		for accBits < width {
			acc |= uint64(src[pos]) << accBits
			accBits += 8
			pos++
		}
		dst[i] = uint32(acc) & mask(width)
		acc >>= width
		accBits -= width
	}
	return pos
}

func mask(width uint) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << width) - 1
}
