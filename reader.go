package parquet

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/segmentio/encoding/thrift"

	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/encoding/dict"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/page"
	"github.com/segmentio/parquet-core/schema"
)

const defaultPageReaderBufferSize = 4096

// File is an opened Parquet file: its footer metadata and schema, read
// eagerly; row groups, column chunks and pages are read lazily on request.
type File struct {
	reader   io.ReaderAt
	size     int64
	metadata *format.FileMetaData
	root     *schema.Node
	columns  []*schema.ColumnDescriptor
}

// OpenFile reads the magic header/footer and Thrift metadata of the size
// bytes available through r. Row group and column chunk contents are left
// untouched until PageIterator is called.
func OpenFile(r io.ReaderAt, size int64) (*File, error) {
	if size < int64(len(Magic)*2+4) {
		return nil, errorf(OutOfSpec, "OpenFile", "file is too small to contain a parquet file (%d bytes)", size)
	}

	head := make([]byte, len(Magic))
	if _, err := r.ReadAt(head, 0); err != nil {
		return nil, WrapIOError("OpenFile", err)
	}
	if string(head) != Magic {
		return nil, errorf(OutOfSpec, "OpenFile", "invalid magic header %q", head)
	}

	tail := make([]byte, FooterLength)
	if _, err := r.ReadAt(tail, size-int64(FooterLength)); err != nil {
		return nil, WrapIOError("OpenFile", err)
	}
	if string(tail[4:]) != Magic {
		return nil, errorf(OutOfSpec, "OpenFile", "invalid magic footer %q", tail[4:])
	}

	metadataLength := int64(binary.LittleEndian.Uint32(tail[:4]))
	metadataOffset := size - int64(FooterLength) - metadataLength
	if metadataOffset < int64(len(Magic)) {
		return nil, errorf(OutOfSpec, "OpenFile", "footer metadata length %d overruns the start of the file", metadataLength)
	}

	metadataBytes := make([]byte, metadataLength)
	if _, err := r.ReadAt(metadataBytes, metadataOffset); err != nil {
		return nil, WrapIOError("OpenFile", err)
	}

	var protocol thrift.CompactProtocol
	metadata := &format.FileMetaData{}
	if err := thrift.Unmarshal(&protocol, metadataBytes, metadata); err != nil {
		return nil, errorf(General, "OpenFile", "unmarshal file metadata: %v", err)
	}
	if len(metadata.Schema) == 0 {
		return nil, errorf(OutOfSpec, "OpenFile", "file metadata has no schema")
	}

	root, err := schema.FromThrift(metadata.Schema)
	if err != nil {
		return nil, err
	}

	return &File{
		reader:   r,
		size:     size,
		metadata: metadata,
		root:     root,
		columns:  schema.Columns(root),
	}, nil
}

// Metadata returns the file's parsed Thrift footer.
func (f *File) Metadata() *format.FileMetaData { return f.metadata }

// Root returns the file's schema tree.
func (f *File) Root() *schema.Node { return f.root }

// ColumnDescriptors returns every leaf column, in schema depth-first order.
func (f *File) ColumnDescriptors() []*schema.ColumnDescriptor { return f.columns }

// NumRowGroups returns the number of row groups in the file.
func (f *File) NumRowGroups() int { return len(f.metadata.RowGroups) }

// PageIterator returns a lazy sequence of the data pages of the given
// column within the given row group, in on-disk order. A dictionary page,
// if present, is consumed internally and its materialised dictionary is
// used to resolve dictionary-encoded data pages transparently; it is never
// yielded to the caller.
func (f *File) PageIterator(rowGroup, column int) (func() (*page.DataPage, error), error) {
	if rowGroup < 0 || rowGroup >= len(f.metadata.RowGroups) {
		return nil, errorf(General, "PageIterator", "row group index %d out of range [0,%d)", rowGroup, len(f.metadata.RowGroups))
	}
	group := &f.metadata.RowGroups[rowGroup]
	if column < 0 || column >= len(group.Columns) {
		return nil, errorf(General, "PageIterator", "column index %d out of range [0,%d)", column, len(group.Columns))
	}
	chunk := &group.Columns[column]
	if chunk.MetaData == nil {
		return nil, errorf(OutOfSpec, "PageIterator", "column chunk has no metadata")
	}
	descriptor := f.columns[column]

	codec, err := lookupCodec(chunk.MetaData.Codec)
	if err != nil {
		return nil, err
	}

	offset := chunk.FileOffset
	end := offset + chunk.MetaData.TotalCompressedSize
	section := io.NewSectionReader(f.reader, offset, end-offset)

	var protocol thrift.CompactProtocol
	var decoder thrift.Decoder
	buffered := bufio.NewReaderSize(section, defaultPageReaderBufferSize)
	decoder.Reset(protocol.NewReader(buffered))

	var pageDict *dict.Dict

	return func() (*page.DataPage, error) {
		for {
			header, body, err := readNextPage(buffered, &decoder)
			if err == io.EOF {
				return nil, io.EOF
			}
			if err != nil {
				return nil, err
			}

			if header.Type == format.DictionaryPage {
				pageDict, err = page.DecodeDictionary(header, body, descriptor.Physical(), codec)
				if err != nil {
					return nil, err
				}
				continue
			}

			return page.Decode(header, body, descriptor, codec, pageDict)
		}
	}, nil
}

// readNextPage decodes one Thrift page header from r, then reads its
// declared compressed body immediately following it.
func readNextPage(r *bufio.Reader, decoder *thrift.Decoder) (*format.PageHeader, []byte, error) {
	header := &format.PageHeader{}
	if err := decoder.Decode(header); err != nil {
		if err == io.EOF {
			return nil, nil, io.EOF
		}
		return nil, nil, errorf(OutOfSpec, "ReadPage", "decoding page header: %v", err)
	}

	body := make([]byte, header.CompressedPageSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, nil, WrapIOError("ReadPage", err)
	}
	return header, body, nil
}

func lookupCodec(c format.CompressionCodec) (compress.Codec, error) {
	if c == format.Uncompressed {
		return nil, nil
	}
	factory, ok := codecRegistry[c]
	if !ok {
		return nil, errorf(OutOfSpec, "PageIterator", "unsupported compression codec %s", c)
	}
	return factory(), nil
}
