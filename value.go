package scalarval

import (
	"encoding/binary"
	"math"
	"math/big"
)

// nullByte is byte 13's NULL tag bit, per §3 DATA MODEL.
const nullByte = 0x40

// int128Min is the Decimal NULL sentinel: the minimum representable
// signed 128-bit two's-complement integer.
var int128Min = new(big.Int).Lsh(big.NewInt(-1), 127)

// decimalScale is the implicit multiplier (10^12) Decimal values are
// internally scaled by (§ GLOSSARY "Scale factor").
const decimalScale = 12

var pow10_12 = new(big.Int).Exp(big.NewInt(10), big.NewInt(decimalScale), nil)

// decimalMaxWhole bounds a Decimal's whole part and decimalMaxScaled its
// scaled integer: invariant 3, "whole part fits in 26 digits", i.e.
// |v| < 10^26 * 10^12 (both bounds exclusive).
var decimalMaxWhole = new(big.Int).Exp(big.NewInt(10), big.NewInt(26), nil)
var decimalMaxScaled = new(big.Int).Mul(decimalMaxWhole, pow10_12)

// arrayRec backs Array Values: a homogeneous run of Value, plus the
// element Kind for type-checking on SetArrayElements.
type arrayRec struct {
	elemKind Kind
	elements []Value
}

// Value is the engine's uniform runtime scalar cell, per §3 DATA MODEL.
// The 16-byte data array holds every fixed-width interpretation (plain
// integers/float/bool/timestamp/address, and the 128-bit scaled Decimal
// integer) exactly as spec'd. Variable-length objects (Varchar,
// Varbinary, Array) cannot hold a raw memory address in a memory-safe
// language (§9 Design Notes); bytesInline/bytesHandle/array carry that
// payload instead, while data[8:14] still carries the spec's cached
// length / length-of-length / NULL-bit bookkeeping so the tuple and
// stream codecs work from the same fields a byte-level implementation
// would.
type Value struct {
	kind          Kind
	data          [16]byte
	sourceInlined bool

	bytesInline []byte  // Varchar/Varbinary, sourceInlined==true: borrowed tuple bytes, starting at the length prefix
	bytesHandle *Varlen // Varchar/Varbinary, sourceInlined==false: shared pool handle, payload starting at the length prefix
	array       *arrayRec
}

// Kind returns v's scalar kind.
func (v Value) Kind() Kind { return v.kind }

// SourceInlined reports whether a variable-length Value borrows its
// bytes from tuple storage (true) or shares a pool handle (false).
func (v Value) SourceInlined() bool { return v.sourceInlined }

// ---- Construction ----

// Null returns an untyped NULL Value (Kind Null), per §4.C.
func Null() Value {
	v := Value{kind: KindNull}
	v.data[13] = nullByte
	return v
}

// NullOf returns a typed NULL Value of kind, with every getter yielding
// that kind's NULL sentinel (invariant 5).
func NullOf(kind Kind) Value {
	v := Value{kind: kind}
	v.data[13] = nullByte
	switch kind {
	case KindTinyInt:
		v.data[0] = byte(NullTinyInt)
	case KindSmallInt:
		binary.LittleEndian.PutUint16(v.data[:2], uint16(NullSmallInt))
	case KindInteger:
		binary.LittleEndian.PutUint32(v.data[:4], uint32(NullInteger))
	case KindBigInt:
		binary.LittleEndian.PutUint64(v.data[:8], uint64(NullBigInt))
	case KindTimestamp:
		binary.LittleEndian.PutUint64(v.data[:8], uint64(NullTimestamp))
	case KindDouble:
		binary.LittleEndian.PutUint64(v.data[:8], math.Float64bits(NullDouble))
	case KindDecimal:
		putInt128LE(v.data[:16], int128Min)
	case KindBoolean:
		v.data[0] = NullBoolean
	case KindVarchar, KindVarbinary:
		// nil bytesInline/bytesHandle is itself the NULL signal.
	case KindArray:
		v.array = nil
	}
	return v
}

// TrueV returns the Boolean Value true.
func TrueV() Value {
	v := Value{kind: KindBoolean}
	v.data[0] = 1
	return v
}

// FalseV returns the Boolean Value false.
func FalseV() Value {
	return Value{kind: KindBoolean}
}

// FromI8 builds a TinyInt Value.
func FromI8(i int8) Value {
	v := Value{kind: KindTinyInt}
	v.data[0] = byte(i)
	return v
}

// FromI16 builds a SmallInt Value.
func FromI16(i int16) Value {
	v := Value{kind: KindSmallInt}
	binary.LittleEndian.PutUint16(v.data[:2], uint16(i))
	return v
}

// FromI32 builds an Integer Value.
func FromI32(i int32) Value {
	v := Value{kind: KindInteger}
	binary.LittleEndian.PutUint32(v.data[:4], uint32(i))
	return v
}

// FromI64 builds a BigInt Value.
func FromI64(i int64) Value {
	v := Value{kind: KindBigInt}
	binary.LittleEndian.PutUint64(v.data[:8], uint64(i))
	return v
}

// FromF64 builds a Double Value.
func FromF64(f float64) Value {
	v := Value{kind: KindDouble}
	binary.LittleEndian.PutUint64(v.data[:8], math.Float64bits(f))
	return v
}

// FromBool builds a Boolean Value.
func FromBool(b bool) Value {
	if b {
		return TrueV()
	}
	return FalseV()
}

// FromTimestamp builds a Timestamp Value from microseconds since epoch.
func FromTimestamp(us int64) Value {
	v := Value{kind: KindTimestamp}
	binary.LittleEndian.PutUint64(v.data[:8], uint64(us))
	return v
}

// FromAddress builds an Address Value: a pointer-width integer used only
// internally by the executor (§9: "expressed as a u64-valued integer
// kind with no pointer semantics" in a memory-safe target).
func FromAddress(addr uint64) Value {
	v := Value{kind: KindAddress}
	binary.LittleEndian.PutUint64(v.data[:8], addr)
	return v
}

// fromDecimalScaled builds a Decimal Value from its scaled (×10^12)
// 128-bit integer, range-checking against invariant 3.
func fromDecimalScaled(scaled *big.Int) (Value, error) {
	abs := new(big.Int).Abs(scaled)
	if abs.Cmp(decimalMaxScaled) >= 0 {
		flag := FlagOverflow
		if scaled.Sign() < 0 {
			flag = FlagUnderflow
		}
		return Value{}, NewNumericOutOfRange(scaled.String(), KindDecimal, KindDecimal, flag)
	}
	v := Value{kind: KindDecimal}
	putInt128LE(v.data[:16], scaled)
	return v, nil
}

// newVarcharKind builds a Varchar or Varbinary Value (per kind) whose
// bytes live in pool,
// the engine's normal path for constructing a fresh string value (as
// opposed to borrowing from a tuple, see InitFromTupleStorage).
func newVarcharKind(kind Kind, bytes []byte, pool Pool) Value {
	v := Value{kind: kind, sourceInlined: false}
	if bytes == nil {
		return v
	}
	lenOfLen := lengthOfLengthFor(len(bytes))
	handle := pool.Allocate(int(lenOfLen) + len(bytes))
	buf := handle.payload
	n := EncodeLengthPrefix(buf, len(bytes))
	copy(buf[n:], bytes)
	v.bytesHandle = handle
	v.cacheObjectMeta(len(bytes), lenOfLen)
	return v
}

// TempString builds a Varchar Value backed by the process-wide TempPool
// (§5 Shared-resource policy). The bytes must already be valid UTF-8
// (invariant 4).
func TempString(s []byte) Value {
	return newVarcharKind(KindVarchar, s, TempPool)
}

// TempBinary builds a Varbinary Value backed by the process-wide
// TempPool.
func TempBinary(b []byte) Value {
	return newVarcharKind(KindVarbinary, b, TempPool)
}

// NewVarcharWithPool builds a Varchar Value backed by an explicit pool,
// surviving until that pool is reset (§5).
func NewVarcharWithPool(s []byte, pool Pool) Value {
	return newVarcharKind(KindVarchar, s, pool)
}

// NewVarbinaryWithPool builds a Varbinary Value backed by an explicit
// pool.
func NewVarbinaryWithPool(b []byte, pool Pool) Value {
	return newVarcharKind(KindVarbinary, b, pool)
}

// ArrayOf allocates an Array Value of length n and element kind elemKind.
// Length is fixed at allocation (§4.C); elements start as NullOf(elemKind)
// until SetArrayElements is called.
func ArrayOf(n int, elemKind Kind) Value {
	elems := make([]Value, n)
	for i := range elems {
		elems[i] = NullOf(elemKind)
	}
	v := Value{kind: KindArray, array: &arrayRec{elemKind: elemKind, elements: elems}}
	v.cacheObjectMeta(n, lengthOfLengthFor(n))
	return v
}

// cacheObjectMeta writes the cached object length, length-of-length, and
// clears the NULL bit into data[8:14], per §3's object byte layout.
func (v *Value) cacheObjectMeta(length int, lengthOfLength byte) {
	binary.LittleEndian.PutUint32(v.data[8:12], uint32(length))
	v.data[12] = lengthOfLength
	v.data[13] = 0
}

func lengthOfLengthFor(n int) byte {
	if n <= 63 {
		return 1
	}
	return 4
}

// ---- Inspection ----

// IsNull reports whether v is NULL, using each Kind's NULL signal: the
// byte-13 tag for Address/Null, a sentinel byte/numeric value for
// Boolean and the fixed-width numeric kinds, INT128_MIN for Decimal, and
// a nil pointer/handle for objects (§3 invariant 5, §9).
func (v Value) IsNull() bool {
	switch v.kind {
	case KindNull, KindInvalid:
		return true
	case KindTinyInt:
		return int8(v.data[0]) == NullTinyInt
	case KindSmallInt:
		return int16(binary.LittleEndian.Uint16(v.data[:2])) == NullSmallInt
	case KindInteger:
		return int32(binary.LittleEndian.Uint32(v.data[:4])) == NullInteger
	case KindBigInt:
		return int64(binary.LittleEndian.Uint64(v.data[:8])) == NullBigInt
	case KindTimestamp:
		return int64(binary.LittleEndian.Uint64(v.data[:8])) == NullTimestamp
	case KindDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(v.data[:8])) <= NullDouble
	case KindDecimal:
		return v.decimalRaw().Cmp(int128Min) == 0
	case KindBoolean:
		return v.data[0] == NullBoolean
	case KindAddress:
		return v.data[13]&nullByte != 0
	case KindVarchar, KindVarbinary:
		return v.bytesInline == nil && v.bytesHandle == nil
	case KindArray:
		return v.array == nil
	}
	return false
}

// IsNaN reports whether v is a Double holding NaN.
func (v Value) IsNaN() bool {
	if v.kind != KindDouble {
		return false
	}
	return math.IsNaN(math.Float64frombits(binary.LittleEndian.Uint64(v.data[:8])))
}

// IsTrue reports whether v is the Boolean true (NULL is not true).
func (v Value) IsTrue() bool {
	return v.kind == KindBoolean && !v.IsNull() && v.data[0] != 0
}

// IsFalse reports whether v is the Boolean false (NULL is not false).
func (v Value) IsFalse() bool {
	return v.kind == KindBoolean && !v.IsNull() && v.data[0] == 0
}

// IsZero reports whether v holds the numeric value zero. NULL is never
// zero.
func (v Value) IsZero() bool {
	if v.IsNull() {
		return false
	}
	switch v.kind {
	case KindTinyInt:
		return int8(v.data[0]) == 0
	case KindSmallInt:
		return int16(binary.LittleEndian.Uint16(v.data[:2])) == 0
	case KindInteger:
		return int32(binary.LittleEndian.Uint32(v.data[:4])) == 0
	case KindBigInt, KindTimestamp:
		return int64(binary.LittleEndian.Uint64(v.data[:8])) == 0
	case KindDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(v.data[:8])) == 0
	case KindDecimal:
		return v.decimalRaw().Sign() == 0
	default:
		return false
	}
}

// ---- Mutation ----

// SetNull overwrites v in place with the NULL representation of its own
// Kind (invariant 5).
func (v *Value) SetNull() {
	*v = NullOf(v.kind)
}

// SetArrayElements replaces an Array Value's elements. len(values) must
// equal the length fixed at ArrayOf time; every element must match the
// array's element Kind.
func (v *Value) SetArrayElements(values []Value) error {
	if v.kind != KindArray || v.array == nil {
		return NewUnsupportedOperation("SetArrayElements: not an array value")
	}
	if len(values) != len(v.array.elements) {
		return NewUnsupportedOperation("SetArrayElements: length mismatch")
	}
	for _, e := range values {
		if e.kind != v.array.elemKind && !e.IsNull() {
			return NewTypeMismatch(e.kind, v.array.elemKind)
		}
	}
	copy(v.array.elements, values)
	return nil
}

// Elements returns an Array Value's elements, or nil if v is not an
// Array or is NULL.
func (v Value) Elements() []Value {
	if v.kind != KindArray || v.array == nil {
		return nil
	}
	return v.array.elements
}

// ElementKind returns an Array Value's homogeneous element Kind.
func (v Value) ElementKind() Kind {
	if v.kind != KindArray || v.array == nil {
		return KindInvalid
	}
	return v.array.elemKind
}

// ---- Scalar accessors ----
// Each getter yields the Kind's NULL sentinel when v.IsNull() (invariant
// 5); callers that need NULL-safety at the Value level should check
// IsNull() first, exactly as a native bit-level implementation would.

func (v Value) AsI8() int8    { return int8(v.data[0]) }
func (v Value) AsI16() int16  { return int16(binary.LittleEndian.Uint16(v.data[:2])) }
func (v Value) AsI32() int32  { return int32(binary.LittleEndian.Uint32(v.data[:4])) }
func (v Value) AsI64() int64  { return int64(binary.LittleEndian.Uint64(v.data[:8])) }
func (v Value) AsF64() float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(v.data[:8]))
}
func (v Value) AsBool() bool          { return v.data[0] != 0 }
func (v Value) AsTimestamp() int64    { return int64(binary.LittleEndian.Uint64(v.data[:8])) }
func (v Value) AsAddress() uint64     { return binary.LittleEndian.Uint64(v.data[:8]) }

// AsInt64Generic returns the integer-family value of v as int64,
// regardless of which fixed-width integer Kind it is, for use by the
// arithmetic/comparison engines after promotion to BigInt.
func (v Value) AsInt64Generic() int64 {
	switch v.kind {
	case KindTinyInt:
		return int64(v.AsI8())
	case KindSmallInt:
		return int64(v.AsI16())
	case KindInteger:
		return int64(v.AsI32())
	case KindBigInt, KindTimestamp:
		return v.AsI64()
	default:
		return 0
	}
}

// decimalRaw returns the scaled (×10^12) 128-bit integer a Decimal
// Value stores.
func (v Value) decimalRaw() *big.Int {
	return int128FromLE(v.data[:16])
}

// AsDecimalScaled returns a Decimal Value's scaled (×10^12) integer.
func (v Value) AsDecimalScaled() *big.Int {
	return v.decimalRaw()
}

// AsBytes returns a Varchar/Varbinary Value's object bytes (excluding
// the length prefix), or nil if v is NULL.
func (v Value) AsBytes() []byte {
	payload := v.objectPayload()
	if payload == nil {
		return nil
	}
	n, consumed := DecodeLengthPrefix(payload)
	if n < 0 {
		return nil
	}
	return payload[consumed : consumed+n]
}

// objectPayload returns the raw bytes starting at the length prefix, for
// both the inlined and outlined cases.
func (v Value) objectPayload() []byte {
	if v.sourceInlined {
		return v.bytesInline
	}
	return v.bytesHandle.Bytes()
}

// ObjectLen returns the cached object byte-length (§3 invariant 1).
func (v Value) ObjectLen() int {
	return int(binary.LittleEndian.Uint32(v.data[8:12]))
}

// LengthOfLength returns 1 or 4, per §3 invariant 2.
func (v Value) LengthOfLength() byte {
	return v.data[12]
}

// Free releases a non-inlined object Value's pool handle. It is a
// no-op on inlined Values (which must not be freed) and on already-null
// handles (idempotent, per §3 Ownership).
func (v *Value) Free(pool Pool) {
	if v.sourceInlined || v.bytesHandle == nil {
		return
	}
	pool.Free(v.bytesHandle)
	v.bytesHandle = nil
}
