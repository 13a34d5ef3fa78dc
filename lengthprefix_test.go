package scalarval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthPrefixShortBoundary(t *testing.T) {
	buf := make([]byte, 4)
	n := EncodeLengthPrefix(buf, 63)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0x3F), buf[0])

	length, consumed := DecodeLengthPrefix(buf)
	assert.Equal(t, 63, length)
	assert.Equal(t, 1, consumed)
}

func TestLengthPrefixLongBoundary(t *testing.T) {
	buf := make([]byte, 4)
	n := EncodeLengthPrefix(buf, 64)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x40}, buf)

	length, consumed := DecodeLengthPrefix(buf)
	assert.Equal(t, 64, length)
	assert.Equal(t, 4, consumed)
}

func TestLengthPrefixNull(t *testing.T) {
	buf := make([]byte, 4)
	n := EncodeLengthPrefix(buf, -1)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0x40), buf[0])

	length, consumed := DecodeLengthPrefix(buf)
	assert.Equal(t, -1, length)
	assert.Equal(t, 1, consumed)
}

func TestLengthPrefixRoundTrip(t *testing.T) {
	for _, length := range []int{0, 1, 62, 63, 64, 1000, 1 << 20} {
		buf := make([]byte, 4)
		EncodeLengthPrefix(buf, length)
		got, _ := DecodeLengthPrefix(buf)
		assert.Equal(t, length, got)
	}
}
