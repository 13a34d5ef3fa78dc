package scalarval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIsStableAcrossEqualValues(t *testing.T) {
	h1a, h2a := Hash(FromI64(42))
	h1b, h2b := Hash(FromI64(42))
	assert.Equal(t, h1a, h1b)
	assert.Equal(t, h2a, h2b)
}

func TestHashDiffersForDifferentValues(t *testing.T) {
	h1a, h2a := Hash(FromI64(1))
	h1b, h2b := Hash(FromI64(2))
	assert.False(t, h1a == h1b && h2a == h2b)
}

func TestHashVarcharOverBytes(t *testing.T) {
	h1a, h2a := Hash(TempString([]byte("key")))
	h1b, h2b := Hash(TempString([]byte("key")))
	assert.Equal(t, h1a, h1b)
	assert.Equal(t, h2a, h2b)
}

func TestHashDecimalConsistentAcrossEqualScaled(t *testing.T) {
	a, err := Cast(TempString([]byte("1.5")), KindDecimal)
	require.NoError(t, err)
	b, err := Cast(TempString([]byte("1.500000000000")), KindDecimal)
	require.NoError(t, err)

	h1a, h2a := Hash(a)
	h1b, h2b := Hash(b)
	assert.Equal(t, h1a, h1b)
	assert.Equal(t, h2a, h2b)
}

func TestHashEqualAcrossWidenedIntegerKinds(t *testing.T) {
	// compare(a,b) == 0 implies a and b hash equal (§8 testable property);
	// TinyInt(5) and Integer(5) compare equal after promotion, so their
	// hashes (each widened to the same int64 representation) must match.
	h1a, h2a := Hash(FromI8(5))
	h1b, h2b := Hash(FromI32(5))
	assert.Equal(t, h1a, h1b)
	assert.Equal(t, h2a, h2b)
}

func TestHashCombineOrderSensitive(t *testing.T) {
	seed1 := HashCombine(HashCombine(0, FromI32(1)), FromI32(2))
	seed2 := HashCombine(HashCombine(0, FromI32(2)), FromI32(1))
	assert.NotEqual(t, seed1, seed2)
}

func TestHashArrayFoldsElements(t *testing.T) {
	arr := ArrayOf(2, KindInteger)
	require.NoError(t, arr.SetArrayElements([]Value{FromI32(1), FromI32(2)}))
	h1a, h2a := Hash(arr)

	other := ArrayOf(2, KindInteger)
	require.NoError(t, other.SetArrayElements([]Value{FromI32(2), FromI32(1)}))
	h1b, h2b := Hash(other)

	assert.False(t, h1a == h1b && h2a == h2b)
}
