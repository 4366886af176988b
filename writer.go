package parquet

import (
	"io"

	"github.com/segmentio/encoding/thrift"

	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/page"
	"github.com/segmentio/parquet-core/schema"
	"github.com/segmentio/parquet-core/statistics"
)

// WriteOptions is the write-option record from the data model: whether to
// merge per-page statistics into column chunk statistics, and which codec
// the column chunks' pages were compressed with. The writer records that
// codec in each column chunk's metadata; it does not compress pages itself.
type WriteOptions struct {
	WriteStatistics bool
	Compression     compress.Codec
}

// Pages is a lazy sequence of already-assembled pages for one column chunk.
// Next returns io.EOF once exhausted. An error returned with another cause
// is wrapped as Kind External by the writer, per the streaming contract.
type Pages func() (*page.CompressedPage, error)

// Columns is a lazy sequence of Pages, one per column of a row group, in
// the same depth-first order as schema.Columns.
type Columns func() (Pages, error)

// RowGroups is the outermost lazy sequence the file writer consumes.
type RowGroups func() (Columns, error)

// countingWriter tracks the number of bytes written so far without
// requiring the sink to support io.Seeker: writes are always sequential and
// append-only, so a running counter gives the same cursor Seek(0,
// io.SeekCurrent) would.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteFile writes a complete Parquet file: the magic header, one row group
// per RowGroups, and the Thrift-encoded footer.
func WriteFile(w io.Writer, root *schema.Node, options WriteOptions, rowGroups RowGroups, createdBy string, keyValueMetadata []format.KeyValue) error {
	cw := &countingWriter{w: w}

	if _, err := cw.Write([]byte(Magic)); err != nil {
		return WrapIOError("WriteFile", err)
	}

	descriptors := schema.Columns(root)

	var groups []format.RowGroup
	var totalRows int64

	for {
		columns, err := rowGroups()
		if err == io.EOF {
			break
		}
		if err != nil {
			return WrapExternalError("WriteFile", err)
		}

		group, err := writeRowGroup(cw, descriptors, options, columns)
		if err != nil {
			return err
		}
		groups = append(groups, group)
		totalRows += group.NumRows
	}

	schemaElements, err := root.ToThrift()
	if err != nil {
		return err
	}

	metadata := &format.FileMetaData{
		Version:   Version,
		Schema:    schemaElements,
		NumRows:   totalRows,
		RowGroups: groups,
	}
	if createdBy != "" {
		metadata.CreatedBy = &createdBy
	}
	if len(keyValueMetadata) > 0 {
		format.SortKeyValueMetadata(keyValueMetadata)
		metadata.KeyValueMetadata = keyValueMetadata
	}

	var protocol thrift.CompactProtocol
	metadataBytes, err := thrift.Marshal(&protocol, metadata)
	if err != nil {
		return errorf(General, "WriteFile", "marshal file metadata: %v", err)
	}
	if _, err := cw.Write(metadataBytes); err != nil {
		return WrapIOError("WriteFile", err)
	}

	footer := make([]byte, FooterLength)
	footer[0] = byte(len(metadataBytes))
	footer[1] = byte(len(metadataBytes) >> 8)
	footer[2] = byte(len(metadataBytes) >> 16)
	footer[3] = byte(len(metadataBytes) >> 24)
	copy(footer[4:], Magic)
	if _, err := cw.Write(footer); err != nil {
		return WrapIOError("WriteFile", err)
	}

	return nil
}

func writeRowGroup(cw *countingWriter, descriptors []*schema.ColumnDescriptor, options WriteOptions, columns Columns) (format.RowGroup, error) {
	var chunks []format.ColumnChunk
	var numRows int64
	haveNumRows := false

	for _, descriptor := range descriptors {
		pages, err := columns()
		if err == io.EOF {
			return format.RowGroup{}, errorf(General, "WriteRowGroup", "row group has fewer columns than the schema (%d)", len(descriptors))
		}
		if err != nil {
			return format.RowGroup{}, WrapExternalError("WriteRowGroup", err)
		}

		chunk, err := writeColumnChunk(cw, descriptor, options, pages)
		if err != nil {
			return format.RowGroup{}, err
		}

		n := chunk.MetaData.NumValues
		if !haveNumRows {
			numRows = n
			haveNumRows = true
		} else if n != numRows {
			return format.RowGroup{}, errorf(OutOfSpec, "WriteRowGroup", "column %q has %d values, expected %d to match the rest of the row group", descriptor.PathInSchema, n, numRows)
		}

		chunks = append(chunks, chunk)
	}

	if _, err := columns(); err != io.EOF {
		return format.RowGroup{}, errorf(General, "WriteRowGroup", "row group has more columns than the schema (%d)", len(descriptors))
	}

	if !haveNumRows {
		numRows = 0
	}

	var totalByteSize int64
	for _, c := range chunks {
		totalByteSize += c.MetaData.TotalCompressedSize
	}

	return format.RowGroup{
		Columns:       chunks,
		TotalByteSize: totalByteSize,
		NumRows:       numRows,
	}, nil
}

func writeColumnChunk(cw *countingWriter, descriptor *schema.ColumnDescriptor, options WriteOptions, pages Pages) (format.ColumnChunk, error) {
	physical := descriptor.Physical()
	lessFunc := statistics.LessFunc(physical)

	var (
		fileOffset           int64 = -1
		dictionaryPageOffset *int64
		dataPageOffset       int64
		haveDataPageOffset   bool
		numValues            int64
		totalUncompressed    int64
		totalCompressed      int64
		encodings            []format.Encoding
		seenEncoding         = map[format.Encoding]bool{}
		mergedStats          *statistics.Statistics
	)

	for {
		p, err := pages()
		if err == io.EOF {
			break
		}
		if err != nil {
			return format.ColumnChunk{}, WrapExternalError("WriteColumnChunk", err)
		}

		offset := cw.n
		if fileOffset < 0 {
			fileOffset = offset
		}

		headerSize, bodySize, err := p.WriteTo(cw)
		if err != nil {
			return format.ColumnChunk{}, err
		}

		totalUncompressed += int64(p.Header.UncompressedPageSize)
		totalCompressed += headerSize + bodySize

		switch p.Header.Type {
		case format.DictionaryPage:
			o := offset
			dictionaryPageOffset = &o
			if !seenEncoding[format.Plain] {
				encodings = append(encodings, format.Plain)
				seenEncoding[format.Plain] = true
			}
			continue
		case format.DataPage:
			if !haveDataPageOffset {
				dataPageOffset = offset
				haveDataPageOffset = true
			}
			numValues += int64(p.Header.DataPageHeader.NumValues)
			recordEncoding(&encodings, seenEncoding, p.Header.DataPageHeader.Encoding)
			mergePageStatistics(&mergedStats, p.Header.DataPageHeader.Statistics, physical, lessFunc, options.WriteStatistics)
		case format.DataPageV2:
			if !haveDataPageOffset {
				dataPageOffset = offset
				haveDataPageOffset = true
			}
			numValues += int64(p.Header.DataPageHeaderV2.NumValues)
			recordEncoding(&encodings, seenEncoding, p.Header.DataPageHeaderV2.Encoding)
			mergePageStatistics(&mergedStats, p.Header.DataPageHeaderV2.Statistics, physical, lessFunc, options.WriteStatistics)
		}
	}

	if fileOffset < 0 {
		fileOffset = cw.n
		dataPageOffset = cw.n
	}

	codec := format.Uncompressed
	if options.Compression != nil {
		codec = options.Compression.CompressionCodec()
	}

	metaData := &format.ColumnMetaData{
		Type:                  physical.Kind,
		Encodings:             encodings,
		PathInSchema:          descriptor.PathInSchema,
		Codec:                 codec,
		NumValues:             numValues,
		TotalUncompressedSize: totalUncompressed,
		TotalCompressedSize:   totalCompressed,
		DataPageOffset:        dataPageOffset,
		DictionaryPageOffset:  dictionaryPageOffset,
	}
	if options.WriteStatistics && mergedStats != nil {
		metaData.Statistics = mergedStats.Build()
	}

	return format.ColumnChunk{
		FileOffset: fileOffset,
		MetaData:   metaData,
	}, nil
}

func recordEncoding(encodings *[]format.Encoding, seen map[format.Encoding]bool, e format.Encoding) {
	if !seen[e] {
		seen[e] = true
		*encodings = append(*encodings, e)
	}
}

func mergePageStatistics(dst **statistics.Statistics, wire *format.Statistics, physical schema.PhysicalType, less func(a, b []byte) bool, enabled bool) {
	if !enabled || wire == nil {
		return
	}
	parsed, err := statistics.Parse(wire, physical)
	if err != nil {
		return
	}
	if *dst == nil {
		*dst = &statistics.Statistics{Physical: physical}
	}
	(*dst).Merge(parsed, less)
}
