package parquet_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/page"
	"github.com/segmentio/parquet-core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertNoDiff fails with a unified diff, rather than a raw string
// inequality, when want and got disagree.
func assertNoDiff(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	edits := myers.ComputeEdits(span.URIFromPath("want.txt"), want, got)
	diff := fmt.Sprint(gotextdiff.ToUnified("want.txt", "got.txt", want, edits))
	t.Errorf("\n%s", diff)
}

func optionalInt32Schema() *schema.Node {
	return schema.NewRoot("msg",
		schema.NewPrimitive("value", schema.Optional, schema.PhysicalType{Kind: format.Int32}),
	)
}

func TestWriteFileThenOpenFileRoundTrip(t *testing.T) {
	root := optionalInt32Schema()

	defLevels := []uint32{1, 0, 1, 1, 0, 1, 1}
	values := page.Values{Physical: format.Int32, Int32: []int32{1, 2, 3, 4, 5}}
	valuesBuf := page.EncodeValues(nil, values)
	buf := page.AssembleV1(nil, defLevels, 0, 1, valuesBuf)

	cp, err := page.BuildV1(buf, int32(len(defLevels)), format.Plain, format.RLE, format.RLE, nil, nil)
	require.NoError(t, err)

	sentPage := false
	pages := func() (*page.CompressedPage, error) {
		if sentPage {
			return nil, io.EOF
		}
		sentPage = true
		return cp, nil
	}

	sentColumn := false
	columns := func() (parquet.Pages, error) {
		if sentColumn {
			return nil, io.EOF
		}
		sentColumn = true
		return pages, nil
	}

	sentGroup := false
	rowGroups := func() (parquet.Columns, error) {
		if sentGroup {
			return nil, io.EOF
		}
		sentGroup = true
		return columns, nil
	}

	var out bytes.Buffer
	err = parquet.WriteFile(&out, root, parquet.WriteOptions{}, rowGroups, "", nil)
	require.NoError(t, err)

	data := out.Bytes()
	require.Equal(t, parquet.Magic, string(data[:4]))
	require.Equal(t, parquet.Magic, string(data[len(data)-4:]))

	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, 1, f.NumRowGroups())
	assert.Equal(t, int64(7), f.Metadata().NumRows)

	next, err := f.PageIterator(0, 0)
	require.NoError(t, err)

	dp, err := next()
	require.NoError(t, err)
	assertNoDiff(t, fmt.Sprintf("%v", []int32{1, 2, 3, 4, 5}), fmt.Sprintf("%v", dp.Values.Int32))
	assertNoDiff(t, fmt.Sprintf("%v", []uint32{1, 0, 1, 1, 0, 1, 1}), fmt.Sprintf("%v", dp.DefinitionLevels))
	assert.Equal(t, 7, dp.NumValues())

	_, err = next()
	assert.Equal(t, io.EOF, err)
}

func TestWriteFileStreamMatchesWriteFile(t *testing.T) {
	root := optionalInt32Schema()

	values := page.Values{Physical: format.Int32, Int32: []int32{42}}
	valuesBuf := page.EncodeValues(nil, values)
	buf := page.AssembleV1(nil, []uint32{1}, 0, 1, valuesBuf)
	cp, err := page.BuildV1(buf, 1, format.Plain, format.RLE, format.RLE, nil, nil)
	require.NoError(t, err)

	sentPage := false
	pages := func() (*page.CompressedPage, error) {
		if sentPage {
			return nil, io.EOF
		}
		sentPage = true
		return cp, nil
	}
	sentColumn := false
	columns := func() (parquet.Pages, error) {
		if sentColumn {
			return nil, io.EOF
		}
		sentColumn = true
		return pages, nil
	}

	ch := make(chan parquet.RowGroupResult, 1)
	ch <- parquet.RowGroupResult{Columns: columns}
	close(ch)

	var out bytes.Buffer
	err = parquet.WriteFileStream(&out, root, parquet.WriteOptions{}, ch, "", nil)
	require.NoError(t, err)

	f, err := parquet.OpenFile(bytes.NewReader(out.Bytes()), int64(out.Len()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.Metadata().NumRows)
}
