// Package plain implements the PLAIN encoding: fixed-width primitives as
// little-endian byte images, length-prefixed variable-length byte arrays,
// back-to-back fixed-length byte arrays, and bit-packed booleans using
// Parquet's non-standard bit ordering.
package plain

import (
	"encoding/binary"
	"math"

	"github.com/segmentio/parquet-core/deprecated"
)

// Int32 decodes a buffer of little-endian int32 values.
func Int32(src []byte) []int32 {
	dst := make([]int32, len(src)/4)
	DecodeInt32(dst, src)
	return dst
}

// DecodeInt32 decodes len(dst) little-endian int32 values from the front of
// src into dst.
func DecodeInt32(dst []int32, src []byte) {
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(src[i*4:]))
	}
}

// AppendInt32 appends the little-endian encoding of src to dst.
func AppendInt32(dst []byte, src []int32) []byte {
	off := len(dst)
	dst = append(dst, make([]byte, len(src)*4)...)
	buf := dst[off:]
	for i, v := range src {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return dst
}

// Int64 decodes a buffer of little-endian int64 values.
func Int64(src []byte) []int64 {
	dst := make([]int64, len(src)/8)
	DecodeInt64(dst, src)
	return dst
}

// DecodeInt64 decodes len(dst) little-endian int64 values from the front of
// src into dst.
func DecodeInt64(dst []int64, src []byte) {
	for i := range dst {
		dst[i] = int64(binary.LittleEndian.Uint64(src[i*8:]))
	}
}

// AppendInt64 appends the little-endian encoding of src to dst.
func AppendInt64(dst []byte, src []int64) []byte {
	off := len(dst)
	dst = append(dst, make([]byte, len(src)*8)...)
	buf := dst[off:]
	for i, v := range src {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return dst
}

// DecodeInt96 decodes len(dst) 12-byte little-endian INT96 values from the
// front of src into dst.
func DecodeInt96(dst []deprecated.Int96, src []byte) {
	for i := range dst {
		b := src[i*12:]
		dst[i] = deprecated.Int96{
			binary.LittleEndian.Uint32(b[0:4]),
			binary.LittleEndian.Uint32(b[4:8]),
			binary.LittleEndian.Uint32(b[8:12]),
		}
	}
}

// AppendInt96 appends the little-endian encoding of src to dst.
func AppendInt96(dst []byte, src []deprecated.Int96) []byte {
	off := len(dst)
	dst = append(dst, make([]byte, len(src)*12)...)
	buf := dst[off:]
	for i, v := range src {
		b := buf[i*12:]
		binary.LittleEndian.PutUint32(b[0:4], v[0])
		binary.LittleEndian.PutUint32(b[4:8], v[1])
		binary.LittleEndian.PutUint32(b[8:12], v[2])
	}
	return dst
}

// Float32 decodes a buffer of little-endian float32 values.
func Float32(src []byte) []float32 {
	dst := make([]float32, len(src)/4)
	DecodeFloat32(dst, src)
	return dst
}

// DecodeFloat32 decodes len(dst) little-endian float32 values from the
// front of src into dst.
func DecodeFloat32(dst []float32, src []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
}

// AppendFloat32 appends the little-endian encoding of src to dst.
func AppendFloat32(dst []byte, src []float32) []byte {
	off := len(dst)
	dst = append(dst, make([]byte, len(src)*4)...)
	buf := dst[off:]
	for i, v := range src {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return dst
}

// Float64 decodes a buffer of little-endian float64 values.
func Float64(src []byte) []float64 {
	dst := make([]float64, len(src)/8)
	DecodeFloat64(dst, src)
	return dst
}

// DecodeFloat64 decodes len(dst) little-endian float64 values from the
// front of src into dst.
func DecodeFloat64(dst []float64, src []byte) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
	}
}

// AppendFloat64 appends the little-endian encoding of src to dst.
func AppendFloat64(dst []byte, src []float64) []byte {
	off := len(dst)
	dst = append(dst, make([]byte, len(src)*8)...)
	buf := dst[off:]
	for i, v := range src {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return dst
}
