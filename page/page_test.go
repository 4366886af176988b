package page_test

import (
	"testing"

	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/page"
	"github.com/segmentio/parquet-core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptor(physical schema.PhysicalType, maxDef, maxRep int16) *schema.ColumnDescriptor {
	return &schema.ColumnDescriptor{
		Node:         &schema.Node{Physical: physical},
		MaxDefLevel:  maxDef,
		MaxRepLevel:  maxRep,
		PathInSchema: []string{"col"},
	}
}

func TestRoundTripPlainV1NoNulls(t *testing.T) {
	desc := descriptor(schema.PhysicalType{Kind: format.Int32}, 0, 0)

	values := page.Values{Physical: format.Int32, Int32: []int32{1, 2, 3, 4, 5}}
	valuesBuf := page.EncodeValues(nil, values)

	defLevels := make([]uint32, 5)
	repLevels := make([]uint32, 0)
	buf := page.AssembleV1(repLevels, defLevels, 0, 0, valuesBuf)

	cp, err := page.BuildV1(buf, 5, format.Plain, format.RLE, format.RLE, nil, nil)
	require.NoError(t, err)

	got, err := page.Decode(cp.Header, cp.Data, desc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, got.Values.Int32)
	assert.Equal(t, 5, got.NumValues())
}

func TestRoundTripPlainV1WithNulls(t *testing.T) {
	desc := descriptor(schema.PhysicalType{Kind: format.Int64}, 1, 0)

	values := page.Values{Physical: format.Int64, Int64: []int64{10, 20}}
	valuesBuf := page.EncodeValues(nil, values)

	defLevels := []uint32{1, 0, 1}
	buf := page.AssembleV1(nil, defLevels, 0, 1, valuesBuf)

	cp, err := page.BuildV1(buf, 3, format.Plain, format.RLE, format.RLE, nil, nil)
	require.NoError(t, err)

	got, err := page.Decode(cp.Header, cp.Data, desc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, got.Values.Int64)
	assert.Equal(t, []uint32{1, 0, 1}, got.DefinitionLevels)
}

func TestRoundTripV2(t *testing.T) {
	desc := descriptor(schema.PhysicalType{Kind: format.Float}, 1, 0)

	values := page.Values{Physical: format.Float, Float: []float32{1.5, 2.5}}
	valuesBuf := page.EncodeValues(nil, values)

	defLevels := []uint32{1, 0, 1}
	levelsBuf := page.EncodeLevelsV2(nil, nil, 0)
	levelsBuf = page.EncodeLevelsV2(levelsBuf, defLevels, 1)

	cp, err := page.BuildV2(levelsBuf, valuesBuf, 3, 1, 3, format.Plain, 0, int32(len(levelsBuf)), nil, nil)
	require.NoError(t, err)

	got, err := page.Decode(cp.Header, cp.Data, desc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, 2.5}, got.Values.Float)
	assert.Equal(t, []uint32{1, 0, 1}, got.DefinitionLevels)
}
