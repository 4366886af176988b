// Package leb128 implements the unsigned LEB128 and zigzag varint codecs
// used for RLE run headers, page/column lengths, and other small integers
// scattered across the Parquet wire format.
package leb128

import "encoding/binary"

// AppendUvarint appends the LEB128 encoding of u to dst and returns the
// extended slice. The wire format is the same one encoding/binary already
// implements, so we reuse it rather than hand-roll the byte loop.
func AppendUvarint(dst []byte, u uint64) []byte {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], u)
	return append(dst, b[:n]...)
}

// Uvarint reads a LEB128-encoded uint64 from the front of src and returns
// the decoded value along with the number of bytes consumed. It returns
// n <= 0 under the same conditions as encoding/binary.Uvarint: 0 means buf
// too small, negative means overflow (-n is the number of bytes read).
func Uvarint(src []byte) (u uint64, n int) {
	return binary.Uvarint(src)
}

// EncodeZigZag maps a signed integer to an unsigned one so that small
// magnitude values (positive or negative) encode to small LEB128 runs:
// 0, -1, 1, -2, 2, ... maps to 0, 1, 2, 3, 4, ...
func EncodeZigZag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// DecodeZigZag is the inverse of EncodeZigZag.
func DecodeZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// AppendZigZag appends the zigzag+LEB128 encoding of v to dst.
func AppendZigZag(dst []byte, v int64) []byte {
	return AppendUvarint(dst, EncodeZigZag(v))
}

// ZigZag reads a zigzag+LEB128-encoded int64 from the front of src,
// returning the decoded value and the number of bytes consumed.
func ZigZag(src []byte) (v int64, n int) {
	u, n := Uvarint(src)
	if n <= 0 {
		return 0, n
	}
	return DecodeZigZag(u), n
}
