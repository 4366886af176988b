package dict_test

import (
	"testing"

	"github.com/segmentio/parquet-core/encoding/dict"
	"github.com/segmentio/parquet-core/encoding/plain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInt32Dictionary(t *testing.T) {
	src := []int32{10, 20, 30}
	buf := plain.AppendInt32(nil, src)

	d, err := dict.Decode(buf, len(src), dict.Int32)
	require.NoError(t, err)
	assert.Equal(t, src, d.Int32())
	assert.Equal(t, 3, d.Len())
}

func TestDecodeByteArrayDictionary(t *testing.T) {
	var buf []byte
	buf = plain.AppendByteArray(buf, []byte("foo"))
	buf = plain.AppendByteArray(buf, []byte("x"))

	d, err := dict.Decode(buf, 2, dict.ByteArray)
	require.NoError(t, err)

	values, offsets := d.ByteArray()
	assert.Equal(t, []byte("foox"), values)
	assert.Equal(t, []uint32{0, 3, 4}, offsets)
	assert.Equal(t, 2, d.Len())
}

func TestDecodeBooleanDictionaryRejected(t *testing.T) {
	_, err := dict.Decode(nil, 0, dict.Boolean)
	assert.ErrorIs(t, err, dict.ErrBooleanDictionary)
}

func TestDecodeFixedLenByteArrayDictionary(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6}
	d := dict.DecodeFixedLenByteArray(buf, 2, 3)
	values, width := d.FixedLenByteArray()
	assert.Equal(t, buf, values)
	assert.Equal(t, 3, width)
	assert.Equal(t, 2, d.Len())
}
