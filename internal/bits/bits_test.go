package bits_test

import (
	"testing"

	"github.com/segmentio/parquet-core/internal/bits"
	"github.com/stretchr/testify/assert"
)

func TestCeil8(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 1, 7: 1, 8: 1, 9: 2, 16: 2} {
		assert.Equal(t, want, bits.Ceil8(n), "n=%d", n)
	}
}

func TestLog2(t *testing.T) {
	for n, want := range map[uint32]int{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 256: 8, 257: 9} {
		assert.Equal(t, want, bits.Log2(n), "n=%d", n)
	}
}

func TestGetLength(t *testing.T) {
	buf := []byte{0xAC, 0x02, 0x00, 0x00}
	assert.Equal(t, uint32(0x2AC), bits.GetLength(buf))
}
