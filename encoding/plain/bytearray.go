package plain

import (
	"github.com/segmentio/parquet-core/internal/bits"
)

// AppendByteArray appends a single PLAIN-encoded variable-length byte array
// value (its 4-byte little-endian length prefix, then the bytes) to dst.
func AppendByteArray(dst, value []byte) []byte {
	off := len(dst)
	dst = append(dst, make([]byte, 4)...)
	bits.PutLength(dst[off:], uint32(len(value)))
	return append(dst, value...)
}

// ByteArrayLength reads the 4-byte little-endian length prefix of the byte
// array value at the front of buf.
func ByteArrayLength(buf []byte) int {
	return int(bits.GetLength(buf))
}

// RangeByteArray walks count length-prefixed byte array values at the front
// of buf, calling fn with each value's raw bytes (excluding its length
// prefix). It returns the number of bytes consumed.
func RangeByteArray(buf []byte, count int, fn func(value []byte)) (n int, err error) {
	off := 0
	for i := 0; i < count; i++ {
		if len(buf[off:]) < 4 {
			return off, errTruncated("BYTE_ARRAY length prefix")
		}
		size := ByteArrayLength(buf[off:])
		off += 4
		if len(buf[off:]) < size {
			return off, errTruncated("BYTE_ARRAY value")
		}
		fn(buf[off : off+size])
		off += size
	}
	return off, nil
}

// ByteArrayOffsets decodes count length-prefixed byte array values from buf
// into a shared values buffer and cumulative offsets, following the page
// dictionary materialisation layout: offsets has length count+1 and
// offsets[0] == 0.
func ByteArrayOffsets(buf []byte, count int) (values []byte, offsets []uint32, err error) {
	offsets = make([]uint32, count+1)
	values = make([]byte, 0, len(buf))

	i := 0
	_, err = RangeByteArray(buf, count, func(value []byte) {
		values = append(values, value...)
		i++
		offsets[i] = uint32(len(values))
	})
	return values, offsets, err
}

// FixedLenByteArray reinterprets buf as count back-to-back byte array
// values of the given width.
func FixedLenByteArray(buf []byte, width, count int) []byte {
	n := width * count
	if n > len(buf) {
		n = len(buf)
	}
	return buf[:n]
}

func errTruncated(what string) error {
	return &truncatedError{what}
}

type truncatedError struct{ what string }

func (e *truncatedError) Error() string { return "plain: truncated " + e.what }
