package page

import (
	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/encoding/dict"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/schema"
)

// DecodeDictionary decompresses and materialises a dictionary page's body.
// Boolean columns cannot be dictionary-encoded; the call fails with
// dict.ErrBooleanDictionary wrapped as an out-of-spec error.
func DecodeDictionary(header *format.PageHeader, raw []byte, physical schema.PhysicalType, codec compress.Codec) (*dict.Dict, error) {
	if header.Type != format.DictionaryPage {
		return nil, parquet.NewOutOfSpecError("DecodeDictionary", "page type %s is not a dictionary page", header.Type)
	}
	buf, err := decompress(raw, codec)
	if err != nil {
		return nil, parquet.WrapIOError("DecodeDictionary", err)
	}

	numValues := int(header.DictionaryPageHeader.NumValues)

	if physical.Kind == format.FixedLenByteArray {
		return dict.DecodeFixedLenByteArray(buf, numValues, int(physical.Length)), nil
	}

	kind := dict.PhysicalType(physical.Kind)
	d, err := dict.Decode(buf, numValues, kind)
	if err != nil {
		return nil, parquet.NewOutOfSpecError("DecodeDictionary", "%w", err)
	}
	return d, nil
}

// BuildDictionary compresses a PLAIN-encoded dictionary body (built with
// EncodeValues) and wraps it with its Thrift header.
func BuildDictionary(body []byte, numValues int32, codec compress.Codec) (*CompressedPage, error) {
	compressed, err := compressWhole(body, codec)
	if err != nil {
		return nil, parquet.WrapIOError("WriteDictionaryPage", err)
	}

	header := &format.PageHeader{
		Type:                 format.DictionaryPage,
		UncompressedPageSize: int32(len(body)),
		CompressedPageSize:   int32(len(compressed)),
		DictionaryPageHeader: &format.DictionaryPageHeader{
			NumValues: numValues,
			Encoding:  format.Plain,
		},
	}
	return &CompressedPage{Header: header, Data: compressed}, nil
}
