package rle_test

import (
	"testing"

	"github.com/segmentio/parquet-core/encoding/rle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleValueBitPackRun(t *testing.T) {
	// width 1, one group of 8 values: indicator (1<<1)|1, one byte of data.
	buf := rle.AppendEncodeUint32(nil, []uint32{1, 0, 1, 1, 1, 0, 0, 1}, 1)
	require.Equal(t, []byte{(1 << 1) | 1, 0b10011101}, buf)

	d := rle.NewDecoder(buf, 1)
	run, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, rle.BitPacked, run.Kind)
	assert.Equal(t, []byte{0b10011101}, run.Data)
	assert.Equal(t, 8, run.Count)
}

func TestTwoGroupBitPackRun(t *testing.T) {
	src := []uint32{1, 0, 1, 1, 1, 0, 0, 1, 1, 0, 1, 1, 1, 0, 0, 1}
	buf := rle.AppendEncodeUint32(nil, src, 1)
	assert.Equal(t, []byte{(2 << 1) | 1, 0b10011101, 0b10011101}, buf)

	dst := make([]uint32, len(src))
	n := rle.DecodeUint32(dst, buf, 1, len(src))
	assert.Equal(t, len(src), n)
	assert.Equal(t, src, dst)
}

func TestDecoderReadsRLERun(t *testing.T) {
	// RLE run: run-length 8, bit-width 1 -> 1 repeated byte holding value 1.
	buf := []byte{(8 << 1), 0x01}
	d := rle.NewDecoder(buf, 1)
	run, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, rle.Repeated, run.Kind)
	assert.Equal(t, 8, run.Count)
	assert.Equal(t, []byte{0x01}, run.Data)

	dst := make([]uint32, 8)
	rle.DecodeUint32(dst, buf, 1, 8)
	for _, v := range dst {
		assert.Equal(t, uint32(1), v)
	}
}

func TestLevelsV1RoundTrip(t *testing.T) {
	src := []uint32{0, 1, 1, 0, 1, 0, 0, 1, 1, 1}
	bitWidth := uint(1)

	buf := rle.AppendEncodeLevelsV1(nil, src, bitWidth)

	dst := make([]uint32, len(src))
	n := rle.DecodeLevelsV1(dst, buf, bitWidth, len(src))
	assert.Equal(t, len(buf), n)
	assert.Equal(t, src, dst)
}
