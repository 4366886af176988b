package page

import (
	"io"

	"github.com/segmentio/encoding/thrift"

	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/encoding/plain"
	"github.com/segmentio/parquet-core/encoding/rle"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/internal/bits"
)

// EncodeValues appends the PLAIN encoding of v's populated field to dst.
func EncodeValues(dst []byte, v Values) []byte {
	switch v.Physical {
	case format.Boolean:
		return plain.AppendBoolean(dst, v.Boolean)
	case format.Int32:
		return plain.AppendInt32(dst, v.Int32)
	case format.Int64:
		return plain.AppendInt64(dst, v.Int64)
	case format.Int96:
		return plain.AppendInt96(dst, v.Int96)
	case format.Float:
		return plain.AppendFloat32(dst, v.Float)
	case format.Double:
		return plain.AppendFloat64(dst, v.Double)
	case format.ByteArray:
		for i := 0; i+1 < len(v.ByteArrayOffsets); i++ {
			dst = plain.AppendByteArray(dst, v.ByteArrayValues[v.ByteArrayOffsets[i]:v.ByteArrayOffsets[i+1]])
		}
		return dst
	case format.FixedLenByteArray:
		return append(dst, v.FixedLenByteArrayValues...)
	default:
		return dst
	}
}

// EncodeLevelsV1 appends a V1 level section (absent when maxLevel is 0) to
// dst.
func EncodeLevelsV1(dst []byte, levels []uint32, maxLevel int16) []byte {
	if maxLevel == 0 {
		return dst
	}
	bitWidth := uint(bits.Log2(uint32(maxLevel) + 1))
	return rle.AppendEncodeLevelsV1(dst, levels, bitWidth)
}

// EncodeLevelsV2 appends a V2 level section (no length prefix, absent when
// maxLevel is 0) to dst.
func EncodeLevelsV2(dst []byte, levels []uint32, maxLevel int16) []byte {
	if maxLevel == 0 {
		return dst
	}
	bitWidth := uint(bits.Log2(uint32(maxLevel) + 1))
	return rle.AppendEncodeUint32(dst, levels, bitWidth)
}

// AssembleV1 builds the uncompressed [rep][def][values] buffer for a V1
// data page.
func AssembleV1(repLevels, defLevels []uint32, maxRepLevel, maxDefLevel int16, values []byte) []byte {
	buf := EncodeLevelsV1(nil, repLevels, maxRepLevel)
	buf = EncodeLevelsV1(buf, defLevels, maxDefLevel)
	return append(buf, values...)
}

// CompressedPage is a fully-assembled page ready to be appended to a column
// chunk: a Thrift page header and its (possibly compressed) body.
type CompressedPage struct {
	Header *format.PageHeader
	Data   []byte
}

// WriteTo serialises the page header (Thrift compact protocol) followed by
// the page body to w, returning the number of header bytes and body bytes
// written.
func (p *CompressedPage) WriteTo(w io.Writer) (headerSize, bodySize int64, err error) {
	var protocol thrift.CompactProtocol
	header, err := thrift.Marshal(&protocol, p.Header)
	if err != nil {
		return 0, 0, parquet.NewGeneralError("WritePage", "marshal page header: %v", err)
	}
	n, err := w.Write(header)
	if err != nil {
		return int64(n), 0, parquet.WrapIOError("WritePage", err)
	}
	m, err := w.Write(p.Data)
	if err != nil {
		return int64(n), int64(m), parquet.WrapIOError("WritePage", err)
	}
	return int64(n), int64(m), nil
}

// BuildV1 compresses an assembled V1 page buffer (the whole buffer is in
// the compression scope) and wraps it with its Thrift header.
func BuildV1(buf []byte, numValues int32, encoding format.Encoding, repEncoding, defEncoding format.Encoding, codec compress.Codec, stats *format.Statistics) (*CompressedPage, error) {
	compressed, err := compressWhole(buf, codec)
	if err != nil {
		return nil, parquet.WrapIOError("WritePage", err)
	}

	pageType := format.DataPage
	header := &format.PageHeader{
		Type:                 pageType,
		UncompressedPageSize: int32(len(buf)),
		CompressedPageSize:   int32(len(compressed)),
		DataPageHeader: &format.DataPageHeader{
			NumValues:               numValues,
			Encoding:                encoding,
			DefinitionLevelEncoding: defEncoding,
			RepetitionLevelEncoding: repEncoding,
			Statistics:              stats,
		},
	}
	return &CompressedPage{Header: header, Data: compressed}, nil
}

// BuildV2 compresses an assembled V2 page (levels uncompressed, values
// region compressed) and wraps it with its Thrift header.
func BuildV2(levels, values []byte, numValues, numNulls, numRows int32, encoding format.Encoding, repLen, defLen int32, codec compress.Codec, stats *format.Statistics) (*CompressedPage, error) {
	compressedValues, err := compressWhole(values, codec)
	if err != nil {
		return nil, parquet.WrapIOError("WritePage", err)
	}

	isCompressed := codec != nil && codec.CompressionCodec() != format.Uncompressed
	data := make([]byte, 0, len(levels)+len(compressedValues))
	data = append(data, levels...)
	data = append(data, compressedValues...)

	header := &format.PageHeader{
		Type:                 format.DataPageV2,
		UncompressedPageSize: int32(len(levels) + len(values)),
		CompressedPageSize:   int32(len(data)),
		DataPageHeaderV2: &format.DataPageHeaderV2{
			NumValues:                  numValues,
			NumNulls:                   numNulls,
			NumRows:                    numRows,
			Encoding:                   encoding,
			DefinitionLevelsByteLength: defLen,
			RepetitionLevelsByteLength: repLen,
			IsCompressed:               &isCompressed,
			Statistics:                 stats,
		},
	}
	return &CompressedPage{Header: header, Data: data}, nil
}

func compressWhole(buf []byte, codec compress.Codec) ([]byte, error) {
	if codec == nil || codec.CompressionCodec() == format.Uncompressed {
		return buf, nil
	}
	return compress.Encode(nil, buf, codec)
}
