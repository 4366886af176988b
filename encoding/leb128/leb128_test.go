package leb128_test

import (
	"testing"

	"github.com/segmentio/parquet-core/encoding/leb128"
	"github.com/stretchr/testify/assert"
)

func TestUvarint300(t *testing.T) {
	got := leb128.AppendUvarint(nil, 300)
	assert.Equal(t, []byte{0xAC, 0x02}, got)

	u, n := leb128.Uvarint(got)
	assert.Equal(t, uint64(300), u)
	assert.Equal(t, 2, n)
}

func TestZigZagTable(t *testing.T) {
	cases := []struct {
		u uint64
		v int64
	}{
		{0, 0},
		{1, -1},
		{2, 1},
		{3, -2},
		{4, 2},
		{5, -3},
		{6, 3},
		{7, -4},
		{8, 4},
		{9, -5},
	}
	for _, c := range cases {
		assert.Equal(t, c.v, leb128.DecodeZigZag(c.u), "u=%d", c.u)
		assert.Equal(t, c.u, leb128.EncodeZigZag(c.v), "v=%d", c.v)
	}
}

func TestAppendZigZagRoundTrip(t *testing.T) {
	for _, v := range []int64{0, -1, 1, -2, 2, 12345, -12345, 1 << 40, -(1 << 40)} {
		buf := leb128.AppendZigZag(nil, v)
		got, n := leb128.ZigZag(buf)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, v, got)
	}
}
