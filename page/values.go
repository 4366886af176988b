package page

import (
	"github.com/segmentio/parquet-core/deprecated"
	"github.com/segmentio/parquet-core/format"
)

// Values is the decoded, densely-packed (no nulls) value vector produced by
// reading a data page: exactly one field is populated, selected by
// Physical. Position i here corresponds to the i-th non-null logical
// position, as determined by walking DataPage.DefinitionLevels.
type Values struct {
	Physical format.Type

	Boolean []bool
	Int32   []int32
	Int64   []int64
	Int96   []deprecated.Int96
	Float   []float32
	Double  []float64

	// ByteArray: the i-th value is ByteArrayValues[ByteArrayOffsets[i]:ByteArrayOffsets[i+1]].
	ByteArrayValues []byte
	ByteArrayOffsets []uint32

	// FixedLenByteArray: the i-th value is FixedLenByteArrayValues[i*Width:(i+1)*Width].
	FixedLenByteArrayValues []byte
	Width                   int
}

// Len returns the number of non-null values held.
func (v *Values) Len() int {
	switch v.Physical {
	case format.Boolean:
		return len(v.Boolean)
	case format.Int32:
		return len(v.Int32)
	case format.Int64:
		return len(v.Int64)
	case format.Int96:
		return len(v.Int96)
	case format.Float:
		return len(v.Float)
	case format.Double:
		return len(v.Double)
	case format.ByteArray:
		if len(v.ByteArrayOffsets) == 0 {
			return 0
		}
		return len(v.ByteArrayOffsets) - 1
	case format.FixedLenByteArray:
		if v.Width == 0 {
			return 0
		}
		return len(v.FixedLenByteArrayValues) / v.Width
	default:
		return 0
	}
}
