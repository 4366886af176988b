// Package statistics represents the per-page and per-column-chunk min/max/
// null-count/distinct-count statistics blob, parsed from and built into the
// format.Statistics wire struct.
package statistics

import (
	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/schema"
)

// Statistics holds the optional statistics for one physical type. Min/Max
// are kept as raw plain-encoded bytes; use the schema.PhysicalType to
// interpret them (package plain decodes them into typed values).
type Statistics struct {
	Physical      schema.PhysicalType
	NullCount     *int64
	DistinctCount *int64
	Min           []byte
	Max           []byte
}

// fixedWidth returns the plain-encoded byte width of t, or 0 for ByteArray
// (which imposes no width check).
func fixedWidth(t schema.PhysicalType) int {
	switch t.Kind {
	case format.Boolean:
		return 1
	case format.Int32, format.Float:
		return 4
	case format.Int64, format.Double:
		return 8
	case format.Int96:
		return 12
	case format.FixedLenByteArray:
		return int(t.Length)
	default: // format.ByteArray
		return 0
	}
}

// Parse builds a Statistics from the wire representation, validating that
// Min/Max (when present) have the byte width the physical type demands.
// ByteArray columns are unconstrained.
func Parse(v *format.Statistics, physical schema.PhysicalType) (*Statistics, error) {
	if v == nil {
		return &Statistics{Physical: physical}, nil
	}

	min, max := v.MinValue, v.MaxValue
	// Older writers only populate the deprecated Min/Max fields.
	if min == nil {
		min = v.Min
	}
	if max == nil {
		max = v.Max
	}

	if width := fixedWidth(physical); width > 0 {
		if min != nil && len(min) != width {
			return nil, parquet.NewOutOfSpecError("Parse", "statistics min value has %d bytes, expected %d for %s", len(min), width, physical)
		}
		if max != nil && len(max) != width {
			return nil, parquet.NewOutOfSpecError("Parse", "statistics max value has %d bytes, expected %d for %s", len(max), width, physical)
		}
	}

	return &Statistics{
		Physical:      physical,
		NullCount:     v.NullCount,
		DistinctCount: v.DistinctCount,
		Min:           min,
		Max:           max,
	}, nil
}

// Build serialises s into the wire representation. Only the MinValue/
// MaxValue fields are populated; the deprecated Min/Max fields are left
// unset, matching modern writers.
func (s *Statistics) Build() *format.Statistics {
	if s == nil {
		return nil
	}
	return &format.Statistics{
		NullCount:     s.NullCount,
		DistinctCount: s.DistinctCount,
		MinValue:      s.Min,
		MaxValue:      s.Max,
	}
}

// Merge folds other into s: null/distinct counts sum, min/max reduce to the
// overall extremes using less, which must order two plain-encoded values of
// s.Physical's width (or variable-length ByteArray bytes).
func (s *Statistics) Merge(other *Statistics, less func(a, b []byte) bool) {
	if other == nil {
		return
	}
	s.NullCount = addCounts(s.NullCount, other.NullCount)
	s.DistinctCount = addCounts(s.DistinctCount, other.DistinctCount)

	if other.Min != nil && (s.Min == nil || less(other.Min, s.Min)) {
		s.Min = other.Min
	}
	if other.Max != nil && (s.Max == nil || less(s.Max, other.Max)) {
		s.Max = other.Max
	}
}

func addCounts(a, b *int64) *int64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		sum := *a + *b
		return &sum
	}
}
