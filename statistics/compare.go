package statistics

import (
	"bytes"

	"github.com/segmentio/parquet-core/deprecated"
	"github.com/segmentio/parquet-core/encoding/plain"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/schema"
)

// LessFunc returns the ordering predicate Merge needs for physical, applied
// to the plain-encoded bytes of a single value of that type.
func LessFunc(physical schema.PhysicalType) func(a, b []byte) bool {
	switch physical.Kind {
	case format.Boolean:
		return func(a, b []byte) bool { return a[0] == 0 && b[0] != 0 }
	case format.Int32:
		return func(a, b []byte) bool { return plain.Int32(a)[0] < plain.Int32(b)[0] }
	case format.Int64:
		return func(a, b []byte) bool { return plain.Int64(a)[0] < plain.Int64(b)[0] }
	case format.Int96:
		return func(a, b []byte) bool {
			x := make([]deprecated.Int96, 1)
			y := make([]deprecated.Int96, 1)
			plain.DecodeInt96(x, a)
			plain.DecodeInt96(y, b)
			return x[0].Less(y[0])
		}
	case format.Float:
		return func(a, b []byte) bool { return plain.Float32(a)[0] < plain.Float32(b)[0] }
	case format.Double:
		return func(a, b []byte) bool { return plain.Float64(a)[0] < plain.Float64(b)[0] }
	default: // ByteArray, FixedLenByteArray
		return func(a, b []byte) bool { return bytes.Compare(a, b) < 0 }
	}
}
