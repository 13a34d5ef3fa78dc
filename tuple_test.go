package scalarval

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTupleRoundTripFixedWidth(t *testing.T) {
	buf := make([]byte, 8)
	require.NoError(t, SerializeToTupleStorage(buf, FromI64(-42), true, 0, true, nil))

	v, err := InitFromTupleStorage(buf, KindBigInt, true)
	require.NoError(t, err)
	assert.Equal(t, int64(-42), v.AsI64())
}

func TestTupleRoundTripInlinedVarchar(t *testing.T) {
	buf := make([]byte, 16)
	require.NoError(t, SerializeToTupleStorage(buf, TempString([]byte("hi")), true, 10, true, nil))

	v, err := InitFromTupleStorage(buf, KindVarchar, true)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(v.AsBytes()))
}

func TestTupleRoundTripOutlinedVarchar(t *testing.T) {
	buf := make([]byte, 8)
	require.NoError(t, SerializeToTupleStorage(buf, TempString([]byte("outlined value")), false, 100, true, nil))

	id := binary.LittleEndian.Uint64(buf)
	assert.NotZero(t, id)

	v, err := InitFromTupleStorage(buf, KindVarchar, false)
	require.NoError(t, err)
	assert.Equal(t, "outlined value", string(v.AsBytes()))
}

func TestTupleSerializeNullInlinedObject(t *testing.T) {
	buf := make([]byte, 8)
	require.NoError(t, SerializeToTupleStorage(buf, NullOf(KindVarchar), true, 10, true, nil))

	v, err := InitFromTupleStorage(buf, KindVarchar, true)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestTupleSerializeNullOutlinedObject(t *testing.T) {
	buf := make([]byte, 8)
	require.NoError(t, SerializeToTupleStorage(buf, NullOf(KindVarbinary), false, 10, true, nil))

	v, err := InitFromTupleStorage(buf, KindVarbinary, false)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestTupleSerializeObjectTooLarge(t *testing.T) {
	buf := make([]byte, 16)
	err := SerializeToTupleStorage(buf, TempString([]byte("way too long for this column")), true, 5, true, nil)
	assert.Error(t, err)
	var tooLarge *ObjectTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestTupleArrayRejected(t *testing.T) {
	buf := make([]byte, 8)
	_, err := InitFromTupleStorage(buf, KindArray, true)
	assert.Error(t, err)
}

func TestTupleSerializeArrayRejected(t *testing.T) {
	arr := ArrayOf(2, KindInteger)
	require.NoError(t, arr.SetArrayElements([]Value{FromI32(1), FromI32(2)}))

	buf := make([]byte, 8)
	err := SerializeToTupleStorage(buf, arr, true, 0, true, nil)
	assert.Error(t, err)
}

func TestTupleRoundTripNullBoolean(t *testing.T) {
	buf := make([]byte, 1)
	require.NoError(t, SerializeToTupleStorage(buf, NullOf(KindBoolean), true, 0, true, nil))

	v, err := InitFromTupleStorage(buf, KindBoolean, true)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestTupleCodePointBoundUsesUtf8LeadBytes(t *testing.T) {
	buf := make([]byte, 16)
	// "héllo" is 6 bytes but 5 code points; a Varchar(5) column in
	// characters accepts it, but the same column bounded in bytes rejects.
	err := SerializeToTupleStorage(buf, TempString([]byte("héllo")), true, 5, false, nil)
	assert.NoError(t, err)

	err = SerializeToTupleStorage(buf, TempString([]byte("héllo")), true, 5, true, nil)
	assert.Error(t, err)
}
