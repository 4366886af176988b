// Package page implements Parquet page assembly and disassembly: splitting
// a data page's decompressed buffer into repetition levels, definition
// levels and values (read path), and the reverse (write path), plus
// dictionary-page materialisation via the encoding/dict package.
package page

import (
	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/deprecated"
	"github.com/segmentio/parquet-core/encoding/dict"
	"github.com/segmentio/parquet-core/encoding/plain"
	"github.com/segmentio/parquet-core/encoding/rle"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/internal/bits"
	"github.com/segmentio/parquet-core/schema"
	"github.com/segmentio/parquet-core/statistics"
)

// DataPage is the decoded form of a V1 or V2 data page: the repetition and
// definition level sequences (one entry per logical position) and the
// densely-packed, null-free value vector.
type DataPage struct {
	RepetitionLevels []uint32
	DefinitionLevels []uint32
	Values           Values
	Statistics       *statistics.Statistics
}

// NumValues returns the page's logical length, including nulls.
func (p *DataPage) NumValues() int { return len(p.DefinitionLevels) }

// Decode splits and decompresses the raw (on-disk) bytes of a data page
// described by header, according to descriptor and the chunk's compression
// codec. pageDict must be non-nil when the page's encoding is
// PLAIN_DICTIONARY or RLE_DICTIONARY.
func Decode(header *format.PageHeader, raw []byte, descriptor *schema.ColumnDescriptor, codec compress.Codec, pageDict *dict.Dict) (*DataPage, error) {
	switch header.Type {
	case format.DataPage:
		return decodeV1(header.DataPageHeader, raw, descriptor, codec, pageDict)
	case format.DataPageV2:
		return decodeV2(header.DataPageHeaderV2, raw, descriptor, codec, pageDict)
	default:
		return nil, parquet.NewOutOfSpecError("Decode", "page type %s is not a data page", header.Type)
	}
}

func decodeV1(h *format.DataPageHeader, raw []byte, descriptor *schema.ColumnDescriptor, codec compress.Codec, pageDict *dict.Dict) (*DataPage, error) {
	buf, err := decompress(raw, codec)
	if err != nil {
		return nil, parquet.WrapIOError("DecodePageV1", err)
	}

	numValues := int(h.NumValues)

	repLevels, buf, err := readLevelSectionV1(buf, descriptor.MaxRepLevel, numValues)
	if err != nil {
		return nil, err
	}
	defLevels, buf, err := readLevelSectionV1(buf, descriptor.MaxDefLevel, numValues)
	if err != nil {
		return nil, err
	}

	nonNull := countNonNull(defLevels, descriptor.MaxDefLevel, numValues)

	values, err := decodeValues(buf, h.Encoding, nonNull, descriptor, pageDict)
	if err != nil {
		return nil, err
	}

	var stats *statistics.Statistics
	if h.Statistics != nil {
		stats, err = statistics.Parse(h.Statistics, descriptor.Physical())
		if err != nil {
			return nil, err
		}
	}

	return &DataPage{RepetitionLevels: repLevels, DefinitionLevels: defLevels, Values: values, Statistics: stats}, nil
}

func decodeV2(h *format.DataPageHeaderV2, raw []byte, descriptor *schema.ColumnDescriptor, codec compress.Codec, pageDict *dict.Dict) (*DataPage, error) {
	repLen := int(h.RepetitionLevelsByteLength)
	defLen := int(h.DefinitionLevelsByteLength)
	if repLen+defLen > len(raw) {
		return nil, parquet.NewOutOfSpecError("DecodePageV2", "level section length %d exceeds page buffer of %d bytes", repLen+defLen, len(raw))
	}

	levels := raw[:repLen+defLen]
	valuesRegion := raw[repLen+defLen:]

	isCompressed := h.IsCompressed == nil || *h.IsCompressed
	if isCompressed {
		var err error
		valuesRegion, err = decompress(valuesRegion, codec)
		if err != nil {
			return nil, parquet.WrapIOError("DecodePageV2", err)
		}
	}

	numValues := int(h.NumValues)

	repBuf, levels := levels[:repLen], levels[repLen:]
	defBuf := levels[:defLen]

	repLevels := readLevelSectionV2(repBuf, descriptor.MaxRepLevel, numValues)
	defLevels := readLevelSectionV2(defBuf, descriptor.MaxDefLevel, numValues)

	nonNull := numValues - int(h.NumNulls)

	values, err := decodeValues(valuesRegion, h.Encoding, nonNull, descriptor, pageDict)
	if err != nil {
		return nil, err
	}

	var stats *statistics.Statistics
	if h.Statistics != nil {
		stats, err = statistics.Parse(h.Statistics, descriptor.Physical())
		if err != nil {
			return nil, err
		}
	}

	return &DataPage{RepetitionLevels: repLevels, DefinitionLevels: defLevels, Values: values, Statistics: stats}, nil
}

func decompress(raw []byte, codec compress.Codec) ([]byte, error) {
	if codec == nil || codec.CompressionCodec() == format.Uncompressed {
		return raw, nil
	}
	return compress.Decode(nil, raw, codec)
}

// readLevelSectionV1 reads a V1 level section: absent when maxLevel is 0,
// otherwise a 4-byte length prefix followed by a hybrid RLE stream.
func readLevelSectionV1(buf []byte, maxLevel int16, numValues int) (levels []uint32, rest []byte, err error) {
	if maxLevel == 0 {
		return make([]uint32, numValues), buf, nil
	}
	bitWidth := uint(bits.Log2(uint32(maxLevel) + 1))
	dst := make([]uint32, numValues)
	n := rle.DecodeLevelsV1(dst, buf, bitWidth, numValues)
	if n <= 0 || n > len(buf) {
		return nil, nil, parquet.NewOutOfSpecError("DecodePage", "truncated level section")
	}
	return dst, buf[n:], nil
}

// readLevelSectionV2 reads a V2 level section: exactly len(buf) bytes of
// hybrid RLE payload with no length prefix, absent (all zero) when maxLevel
// is 0.
func readLevelSectionV2(buf []byte, maxLevel int16, numValues int) []uint32 {
	dst := make([]uint32, numValues)
	if maxLevel == 0 {
		return dst
	}
	bitWidth := uint(bits.Log2(uint32(maxLevel) + 1))
	rle.DecodeUint32(dst, buf, bitWidth, numValues)
	return dst
}

func countNonNull(defLevels []uint32, maxDefLevel int16, numValues int) int {
	if maxDefLevel == 0 {
		return numValues
	}
	n := 0
	for _, d := range defLevels {
		if int16(d) == maxDefLevel {
			n++
		}
	}
	return n
}

func decodeValues(buf []byte, encoding format.Encoding, count int, descriptor *schema.ColumnDescriptor, pageDict *dict.Dict) (Values, error) {
	physical := descriptor.Physical()

	switch encoding {
	case format.Plain:
		return decodePlainValues(buf, count, physical)

	case format.PlainDictionary, format.RLEDictionary:
		if pageDict == nil {
			return Values{}, parquet.NewOutOfSpecError("DecodePage", "dictionary-encoded page has no dictionary")
		}
		if len(buf) < 1 {
			return Values{}, parquet.NewOutOfSpecError("DecodePage", "truncated dictionary index section")
		}
		bitWidth := uint(buf[0])
		indices := make([]uint32, count)
		rle.DecodeUint32(indices, buf[1:], bitWidth, count)
		return materializeFromDictionary(indices, pageDict, physical)

	default:
		return Values{}, parquet.NewOutOfSpecError("DecodePage", "encoding %s is not supported for physical type %s", encoding, physical)
	}
}

func decodePlainValues(buf []byte, count int, physical schema.PhysicalType) (Values, error) {
	switch physical.Kind {
	case format.Boolean:
		dst := make([]bool, count)
		plain.DecodeBoolean(dst, buf, count)
		return Values{Physical: format.Boolean, Boolean: dst}, nil

	case format.Int32:
		dst := make([]int32, count)
		plain.DecodeInt32(dst, buf)
		return Values{Physical: format.Int32, Int32: dst}, nil

	case format.Int64:
		dst := make([]int64, count)
		plain.DecodeInt64(dst, buf)
		return Values{Physical: format.Int64, Int64: dst}, nil

	case format.Int96:
		dst := make([]deprecated.Int96, count)
		plain.DecodeInt96(dst, buf)
		return Values{Physical: format.Int96, Int96: dst}, nil

	case format.Float:
		dst := make([]float32, count)
		plain.DecodeFloat32(dst, buf)
		return Values{Physical: format.Float, Float: dst}, nil

	case format.Double:
		dst := make([]float64, count)
		plain.DecodeFloat64(dst, buf)
		return Values{Physical: format.Double, Double: dst}, nil

	case format.ByteArray:
		values, offsets, err := plain.ByteArrayOffsets(buf, count)
		if err != nil {
			return Values{}, parquet.NewOutOfSpecError("DecodePage", "%v", err)
		}
		return Values{Physical: format.ByteArray, ByteArrayValues: values, ByteArrayOffsets: offsets}, nil

	case format.FixedLenByteArray:
		width := int(physical.Length)
		values := plain.FixedLenByteArray(buf, width, count)
		return Values{Physical: format.FixedLenByteArray, FixedLenByteArrayValues: values, Width: width}, nil

	default:
		return Values{}, parquet.NewOutOfSpecError("DecodePage", "unsupported physical type %s", physical)
	}
}

func materializeFromDictionary(indices []uint32, d *dict.Dict, physical schema.PhysicalType) (Values, error) {
	switch physical.Kind {
	case format.Int32:
		src := d.Int32()
		dst := make([]int32, len(indices))
		for i, idx := range indices {
			dst[i] = src[idx]
		}
		return Values{Physical: format.Int32, Int32: dst}, nil

	case format.Int64:
		src := d.Int64()
		dst := make([]int64, len(indices))
		for i, idx := range indices {
			dst[i] = src[idx]
		}
		return Values{Physical: format.Int64, Int64: dst}, nil

	case format.Int96:
		src := d.Int96()
		dst := make([]deprecated.Int96, len(indices))
		for i, idx := range indices {
			dst[i] = src[idx]
		}
		return Values{Physical: format.Int96, Int96: dst}, nil

	case format.Float:
		src := d.Float()
		dst := make([]float32, len(indices))
		for i, idx := range indices {
			dst[i] = src[idx]
		}
		return Values{Physical: format.Float, Float: dst}, nil

	case format.Double:
		src := d.Double()
		dst := make([]float64, len(indices))
		for i, idx := range indices {
			dst[i] = src[idx]
		}
		return Values{Physical: format.Double, Double: dst}, nil

	case format.ByteArray:
		values, offsets := d.ByteArray()
		outValues := make([]byte, 0, len(indices)*8)
		outOffsets := make([]uint32, len(indices)+1)
		for i, idx := range indices {
			start, end := offsets[idx], offsets[idx+1]
			outOffsets[i] = uint32(len(outValues))
			outValues = append(outValues, values[start:end]...)
		}
		outOffsets[len(indices)] = uint32(len(outValues))
		return Values{Physical: format.ByteArray, ByteArrayValues: outValues, ByteArrayOffsets: outOffsets}, nil

	case format.FixedLenByteArray:
		values, width := d.FixedLenByteArray()
		outValues := make([]byte, len(indices)*width)
		for i, idx := range indices {
			copy(outValues[i*width:], values[int(idx)*width:int(idx+1)*width])
		}
		return Values{Physical: format.FixedLenByteArray, FixedLenByteArrayValues: outValues, Width: width}, nil

	default:
		return Values{}, parquet.NewOutOfSpecError("DecodePage", "unsupported dictionary physical type %s", physical)
	}
}
