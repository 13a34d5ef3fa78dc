package scalarval

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareNullOrdering(t *testing.T) {
	n, err := Compare(Null(), Null())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = Compare(Null(), FromI32(1))
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	n, err = Compare(FromI32(1), Null())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCompareIntegerFamily(t *testing.T) {
	n, err := Compare(FromI8(1), FromI64(2))
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}

func TestCompareDoubleNaNTotalOrder(t *testing.T) {
	nan := FromF64(math.NaN())
	n, err := Compare(nan, nan)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = Compare(nan, FromF64(-1e300))
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	n, err = Compare(FromF64(1), nan)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCompareDecimalAgainstInteger(t *testing.T) {
	dec, err := fromDecimalScaled(new(big.Int).Mul(big.NewInt(2), pow10_12))
	require.NoError(t, err)
	n, err := Compare(dec, FromI64(2))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCompareDecimalAgainstDouble(t *testing.T) {
	dec, err := fromDecimalScaled(new(big.Int).Mul(big.NewInt(3), pow10_12))
	require.NoError(t, err)
	n, err := Compare(dec, FromF64(3.0))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCompareVarcharLexicographic(t *testing.T) {
	n, err := Compare(TempString([]byte("abc")), TempString([]byte("abd")))
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}

func TestCompareTypeMismatch(t *testing.T) {
	_, err := Compare(TempString([]byte("x")), FromI32(1))
	assert.Error(t, err)
}

func TestOpWrappers(t *testing.T) {
	eq, err := OpEqual(FromI32(1), FromI32(1))
	require.NoError(t, err)
	assert.True(t, eq)

	lt, err := OpLess(FromI32(1), FromI32(2))
	require.NoError(t, err)
	assert.True(t, lt)

	ge, err := OpGreaterEqual(FromI32(2), FromI32(2))
	require.NoError(t, err)
	assert.True(t, ge)
}
