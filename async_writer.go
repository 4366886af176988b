package parquet

import (
	"io"

	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/schema"
)

// RowGroupResult is one element of the channel-based row group sequence
// consumed by WriteFileStream: either a Columns sequence for the next row
// group, or an error raised by whatever is producing row groups
// concurrently with the write.
type RowGroupResult struct {
	Columns Columns
	Err     error
}

// WriteFileStream writes a complete Parquet file whose row groups arrive
// over a channel instead of being pulled synchronously by the writer. This
// lets a producer goroutine build row groups (e.g. compress column chunks)
// while the file writer drains them strictly in arrival order, since a
// single io.Writer can only ever be appended to sequentially regardless of
// how many goroutines feed it.
//
// The channel must be closed once the producer is done; WriteFileStream
// returns after writing the final row group received. A RowGroupResult with
// a non-nil Err aborts the write and the error is wrapped as Kind External.
func WriteFileStream(w io.Writer, root *schema.Node, options WriteOptions, rowGroups <-chan RowGroupResult, createdBy string, keyValueMetadata []format.KeyValue) error {
	next := func() (Columns, error) {
		result, ok := <-rowGroups
		if !ok {
			return nil, io.EOF
		}
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Columns, nil
	}
	return WriteFile(w, root, options, next, createdBy, keyValueMetadata)
}
