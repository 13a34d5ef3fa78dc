package scalarval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastIntegerWideningAndNarrowing(t *testing.T) {
	wide, err := Cast(FromI8(5), KindBigInt)
	require.NoError(t, err)
	assert.Equal(t, int64(5), wide.AsI64())

	_, err = Cast(FromI32(1000), KindTinyInt)
	assert.Error(t, err)

	narrow, err := Cast(FromI32(100), KindTinyInt)
	require.NoError(t, err)
	assert.Equal(t, int8(100), narrow.AsI8())
}

func TestCastDoubleToIntegerTruncatesTowardZero(t *testing.T) {
	v, err := Cast(FromF64(3.9), KindBigInt)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.AsI64())

	v, err = Cast(FromF64(-3.9), KindBigInt)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), v.AsI64())
}

func TestCastDoubleToIntegerOutOfRange(t *testing.T) {
	_, err := Cast(FromF64(1e300), KindBigInt)
	assert.Error(t, err)
}

func TestCastDecimalToIntegerDiscardsFraction(t *testing.T) {
	dec, err := Cast(TempString([]byte("41.999999999999")), KindDecimal)
	require.NoError(t, err)
	v, err := Cast(dec, KindInteger)
	require.NoError(t, err)
	assert.Equal(t, int32(41), v.AsI32())
}

func TestCastVarcharToIntegerTrailingWhitespace(t *testing.T) {
	v, err := Cast(TempString([]byte("42  ")), KindBigInt)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.AsI64())
}

func TestCastVarcharToIntegerRejectsGarbage(t *testing.T) {
	_, err := Cast(TempString([]byte("not a number")), KindBigInt)
	assert.Error(t, err)
}

func TestCastVarbinaryToIntegerRejected(t *testing.T) {
	_, err := Cast(TempBinary([]byte{1, 2, 3}), KindBigInt)
	assert.Error(t, err)
}

func TestCastIntegerToDouble(t *testing.T) {
	v, err := Cast(FromI32(42), KindDouble)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v.AsF64())
}

func TestCastDecimalToDoubleAndBack(t *testing.T) {
	dec, err := Cast(TempString([]byte("3.5")), KindDecimal)
	require.NoError(t, err)
	dbl, err := Cast(dec, KindDouble)
	require.NoError(t, err)
	assert.Equal(t, 3.5, dbl.AsF64())

	back, err := Cast(dbl, KindDecimal)
	require.NoError(t, err)
	assert.Equal(t, dec.AsDecimalScaled(), back.AsDecimalScaled())
}

func TestCastDoubleToDecimalPreservesPrecision(t *testing.T) {
	v, err := Cast(FromF64(0.1), KindDecimal)
	require.NoError(t, err)
	text, err := Cast(v, KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "0.1", string(text.AsBytes()))
}

func TestCastDoubleToDecimalOverflow(t *testing.T) {
	_, err := Cast(FromF64(1e30), KindDecimal)
	assert.Error(t, err)
}

func TestCastIntegerToVarchar(t *testing.T) {
	v, err := Cast(FromI64(-42), KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "-42", string(v.AsBytes()))
}

func TestCastDoubleToVarcharENotation(t *testing.T) {
	v, err := Cast(FromF64(0), KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "0E0", string(v.AsBytes()))

	v, err = Cast(FromF64(150), KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "1.5E2", string(v.AsBytes()))
}

func TestCastDecimalToVarcharTrimsTrailingZeros(t *testing.T) {
	dec, err := Cast(TempString([]byte("5.500000000000")), KindDecimal)
	require.NoError(t, err)
	v, err := Cast(dec, KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "5.5", string(v.AsBytes()))

	decWhole, err := Cast(TempString([]byte("5.000000000000")), KindDecimal)
	require.NoError(t, err)
	vWhole, err := Cast(decWhole, KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "5", string(vWhole.AsBytes()))
}

func TestCastVarcharIdentityIsTempPooled(t *testing.T) {
	src := TempString([]byte("abc"))
	v, err := Cast(src, KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v.AsBytes()))
}

func TestCastVarbinaryToVarcharReinterpretsBytes(t *testing.T) {
	v, err := Cast(TempBinary([]byte("raw")), KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "raw", string(v.AsBytes()))
}

func TestCastVarcharToVarbinaryRejected(t *testing.T) {
	_, err := Cast(TempString([]byte("x")), KindVarbinary)
	assert.Error(t, err)
}

func TestCastTimestampIdentityFromInteger(t *testing.T) {
	v, err := Cast(FromI64(123456), KindTimestamp)
	require.NoError(t, err)
	assert.Equal(t, int64(123456), v.AsTimestamp())
}

func TestCastTimestampFromVarchar(t *testing.T) {
	v, err := Cast(TempString([]byte("2024-01-02 03:04:05")), KindTimestamp)
	require.NoError(t, err)
	assert.False(t, v.IsNull())
}

func TestCastTimestampToVarcharCalendarText(t *testing.T) {
	ts, err := Cast(TempString([]byte("2024-01-02 03:04:05")), KindTimestamp)
	require.NoError(t, err)
	text, err := Cast(ts, KindVarchar)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02 03:04:05.000000", string(text.AsBytes()))
}

func TestCastDoubleToTimestampGatedByFlag(t *testing.T) {
	old := AllowNonStandardTimestampCasts
	defer func() { AllowNonStandardTimestampCasts = old }()

	AllowNonStandardTimestampCasts = false
	_, err := Cast(FromF64(123), KindTimestamp)
	assert.Error(t, err)

	AllowNonStandardTimestampCasts = true
	v, err := Cast(FromF64(123), KindTimestamp)
	require.NoError(t, err)
	assert.Equal(t, int64(123), v.AsTimestamp())
}

func TestCastNullYieldsNullOfTargetKind(t *testing.T) {
	v, err := Cast(NullOf(KindBigInt), KindInteger)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Equal(t, KindInteger, v.Kind())
}

func TestCastVarcharToBoolean(t *testing.T) {
	v, err := Cast(TempString([]byte("true")), KindBoolean)
	require.NoError(t, err)
	assert.True(t, v.IsTrue())

	v, err = Cast(TempString([]byte("0")), KindBoolean)
	require.NoError(t, err)
	assert.True(t, v.IsFalse())
}

func TestCastCharsetWindows1252(t *testing.T) {
	v, err := CastVarbinaryToVarcharCharset(TempBinary([]byte{0xE9}), "WIN1252")
	require.NoError(t, err)
	assert.Equal(t, "é", string(v.AsBytes()))
}

func TestCastCharsetUnknownRejected(t *testing.T) {
	_, err := CastVarbinaryToVarcharCharset(TempBinary([]byte("x")), "NOT_A_CHARSET")
	assert.Error(t, err)
}
