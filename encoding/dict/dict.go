// Package dict materialises a dictionary page's decompressed body into a
// typed in-memory dictionary, keyed by the column's physical type.
package dict

import (
	"github.com/segmentio/parquet-core/deprecated"
	"github.com/segmentio/parquet-core/encoding/plain"
)

// PhysicalType enumerates the Parquet physical types a dictionary can hold.
type PhysicalType int

const (
	Boolean PhysicalType = iota
	Int32
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
)

// Dict is a materialised page dictionary. Exactly one of the typed vector
// accessors is valid, determined by PhysicalType.
type Dict struct {
	physicalType PhysicalType

	int32s  []int32
	int64s  []int64
	int96s  []deprecated.Int96
	floats  []float32
	doubles []float64

	values  []byte
	offsets []uint32 // ByteArray only

	width int // FixedLenByteArray only
}

func (d *Dict) PhysicalType() PhysicalType { return d.physicalType }

func (d *Dict) Int32() []int32           { return d.int32s }
func (d *Dict) Int64() []int64           { return d.int64s }
func (d *Dict) Int96() []deprecated.Int96 { return d.int96s }
func (d *Dict) Float() []float32         { return d.floats }
func (d *Dict) Double() []float64        { return d.doubles }

// ByteArray returns the shared values buffer and cumulative offsets: the
// i-th value is values[offsets[i]:offsets[i+1]].
func (d *Dict) ByteArray() (values []byte, offsets []uint32) { return d.values, d.offsets }

// FixedLenByteArray returns the shared, width-byte-stride values buffer.
func (d *Dict) FixedLenByteArray() (values []byte, width int) { return d.values, d.width }

// Len returns the number of entries in the dictionary.
func (d *Dict) Len() int {
	switch d.physicalType {
	case Int32:
		return len(d.int32s)
	case Int64:
		return len(d.int64s)
	case Int96:
		return len(d.int96s)
	case Float:
		return len(d.floats)
	case Double:
		return len(d.doubles)
	case ByteArray:
		return len(d.offsets) - 1
	case FixedLenByteArray:
		if d.width == 0 {
			return 0
		}
		return len(d.values) / d.width
	default:
		return 0
	}
}

// ErrBooleanDictionary is returned by Decode when asked to materialise a
// dictionary for the Boolean physical type, which Parquet does not permit.
var ErrBooleanDictionary = dictError("BOOLEAN physical type cannot be dictionary-encoded")

type dictError string

func (e dictError) Error() string { return "dict: " + string(e) }

// Decode materialises buf, the decompressed body of a dictionary page
// holding numValues entries of the given physical type.
func Decode(buf []byte, numValues int, physicalType PhysicalType) (*Dict, error) {
	switch physicalType {
	case Boolean:
		return nil, ErrBooleanDictionary

	case Int32:
		dst := make([]int32, numValues)
		plain.DecodeInt32(dst, buf)
		return &Dict{physicalType: Int32, int32s: dst}, nil

	case Int64:
		dst := make([]int64, numValues)
		plain.DecodeInt64(dst, buf)
		return &Dict{physicalType: Int64, int64s: dst}, nil

	case Int96:
		dst := make([]deprecated.Int96, numValues)
		plain.DecodeInt96(dst, buf)
		return &Dict{physicalType: Int96, int96s: dst}, nil

	case Float:
		dst := make([]float32, numValues)
		plain.DecodeFloat32(dst, buf)
		return &Dict{physicalType: Float, floats: dst}, nil

	case Double:
		dst := make([]float64, numValues)
		plain.DecodeFloat64(dst, buf)
		return &Dict{physicalType: Double, doubles: dst}, nil

	case ByteArray:
		values, offsets, err := plain.ByteArrayOffsets(buf, numValues)
		if err != nil {
			return nil, err
		}
		return &Dict{physicalType: ByteArray, values: values, offsets: offsets}, nil

	case FixedLenByteArray:
		return nil, dictError("FixedLenByteArray dictionaries must be decoded with DecodeFixedLenByteArray")

	default:
		return nil, dictError("unsupported physical type")
	}
}

// DecodeFixedLenByteArray materialises a FixedLenByteArray(width) dictionary
// from buf, holding numValues entries.
func DecodeFixedLenByteArray(buf []byte, numValues, width int) *Dict {
	values := plain.FixedLenByteArray(buf, width, numValues)
	return &Dict{physicalType: FixedLenByteArray, values: values, width: width}
}
