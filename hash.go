package scalarval

import (
	"encoding/binary"
	"math"

	"github.com/spaolacci/murmur3"
)

// Hash computes §4.K's stable 128-bit hash of v: murmur_hash3_x64_128
// keyed with seed 0, over 8 raw bytes for fixed-width Kinds and over
// the object bytes for Varchar/Varbinary. Decimal hashes its 16-byte
// scaled integer. Array hashes are formed by folding each element's
// hash with HashCombine, seeded with the element Kind.
func Hash(v Value) (h1, h2 uint64) {
	switch v.Kind() {
	case KindVarchar, KindVarbinary:
		return murmur3.Sum128WithSeed(v.AsBytes(), 0)
	case KindDecimal:
		var b [16]byte
		putInt128LE(b[:], v.decimalRaw())
		return murmur3.Sum128WithSeed(b[:], 0)
	case KindArray:
		seed := uint64(v.ElementKind())
		for _, e := range v.Elements() {
			seed = HashCombine(seed, e)
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], seed)
		return murmur3.Sum128WithSeed(b[:], 0)
	default:
		var b [8]byte
		fixedWidthHashBytes(v, b[:])
		return murmur3.Sum128WithSeed(b[:], 0)
	}
}

// fixedWidthHashBytes writes the 8 raw bytes §4.K hashes a fixed-width
// Value over.
func fixedWidthHashBytes(v Value, dst []byte) {
	switch v.Kind() {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindTimestamp, KindAddress:
		binary.LittleEndian.PutUint64(dst, uint64(v.AsI64Widened()))
	case KindBoolean:
		b := uint64(0)
		if v.AsBool() {
			b = 1
		}
		binary.LittleEndian.PutUint64(dst, b)
	case KindDouble:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(v.AsF64()))
	default:
		binary.LittleEndian.PutUint64(dst, 0)
	}
}

// AsI64Widened widens any fixed-width integer/timestamp/address Kind to
// int64 for hashing and generic arithmetic, same as AsInt64Generic but
// also covering Address.
func (v Value) AsI64Widened() int64 {
	if v.Kind() == KindAddress {
		return int64(v.AsAddress())
	}
	return v.AsInt64Generic()
}

// HashCombine incrementally folds v's hash into seed, for composite
// keys (§4.K): integers by value, doubles by their raw 64-bit IEEE-754
// bit pattern, strings/binaries as byte sequences, decimals by their
// 128-bit scaled integer.
func HashCombine(seed uint64, v Value) uint64 {
	h1, _ := Hash(v)
	// Boost-style combine, the common incremental-hash idiom: mixes the
	// new hash into the accumulator with a fixed odd constant and
	// rotation-by-shift so order matters.
	seed ^= h1 + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2)
	return seed
}
