package schema_test

import (
	"testing"

	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32p(v int32) *int32 { return &v }

func primitiveType(k format.Type) schema.PhysicalType { return schema.PhysicalType{Kind: k} }

func TestToThriftDepthFirst(t *testing.T) {
	root := schema.NewRoot("schema",
		schema.NewPrimitive("id", schema.Required, primitiveType(format.Int64)),
		schema.NewGroup("address", schema.Optional,
			schema.NewPrimitive("street", schema.Optional, primitiveType(format.ByteArray)),
			schema.NewPrimitive("zip", schema.Required, primitiveType(format.Int32)),
		),
	)

	elements, err := root.ToThrift()
	require.NoError(t, err)
	require.Len(t, elements, 5)

	assert.Equal(t, "schema", elements[0].Name)
	assert.Nil(t, elements[0].RepetitionType)
	require.NotNil(t, elements[0].NumChildren)
	assert.Equal(t, int32(2), *elements[0].NumChildren)

	assert.Equal(t, "id", elements[1].Name)
	require.NotNil(t, elements[1].Type)
	assert.Equal(t, format.Int64, *elements[1].Type)

	assert.Equal(t, "address", elements[2].Name)
	require.NotNil(t, elements[2].NumChildren)
	assert.Equal(t, int32(2), *elements[2].NumChildren)

	assert.Equal(t, "street", elements[3].Name)
}

func TestFromThriftRoundTrip(t *testing.T) {
	root := schema.NewRoot("schema",
		schema.NewPrimitive("id", schema.Required, primitiveType(format.Int64)),
		schema.NewGroup("address", schema.Optional,
			schema.NewPrimitive("street", schema.Optional, primitiveType(format.ByteArray)),
			schema.NewPrimitive("zip", schema.Required, primitiveType(format.Int32)),
		),
	)

	elements, err := root.ToThrift()
	require.NoError(t, err)

	got, err := schema.FromThrift(elements)
	require.NoError(t, err)

	back, err := got.ToThrift()
	require.NoError(t, err)
	assert.Equal(t, elements, back)
}

func TestColumnsMaxLevels(t *testing.T) {
	root := schema.NewRoot("schema",
		schema.NewPrimitive("id", schema.Required, primitiveType(format.Int64)),
		schema.NewGroup("address", schema.Optional,
			schema.NewPrimitive("street", schema.Optional, primitiveType(format.ByteArray)),
			schema.NewPrimitive("zip", schema.Required, primitiveType(format.Int32)),
		),
		schema.NewPrimitive("tags", schema.Repeated, primitiveType(format.ByteArray)),
	)

	cols := schema.Columns(root)
	require.Len(t, cols, 4)

	assert.Equal(t, []string{"id"}, cols[0].PathInSchema)
	assert.Equal(t, int16(0), cols[0].MaxDefLevel)
	assert.Equal(t, int16(0), cols[0].MaxRepLevel)

	assert.Equal(t, []string{"address", "street"}, cols[1].PathInSchema)
	assert.Equal(t, int16(2), cols[1].MaxDefLevel)
	assert.Equal(t, int16(0), cols[1].MaxRepLevel)

	assert.Equal(t, []string{"address", "zip"}, cols[2].PathInSchema)
	assert.Equal(t, int16(1), cols[2].MaxDefLevel)
	assert.Equal(t, int16(0), cols[2].MaxRepLevel)

	assert.Equal(t, []string{"tags"}, cols[3].PathInSchema)
	assert.Equal(t, int16(1), cols[3].MaxDefLevel)
	assert.Equal(t, int16(1), cols[3].MaxRepLevel)
}

func TestFixedLenByteArrayRoundTrip(t *testing.T) {
	root := schema.NewRoot("schema",
		schema.NewPrimitive("uuid", schema.Required, schema.PhysicalType{Kind: format.FixedLenByteArray, Length: 16}),
	)

	elements, err := root.ToThrift()
	require.NoError(t, err)
	require.NotNil(t, elements[1].TypeLength)
	assert.Equal(t, int32(16), *elements[1].TypeLength)

	got, err := schema.FromThrift(elements)
	require.NoError(t, err)
	cols := schema.Columns(got)
	require.Len(t, cols, 1)
	assert.Equal(t, int32(16), cols[0].Physical().Length)
}
