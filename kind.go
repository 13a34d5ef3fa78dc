package scalarval

// Kind is the closed enumeration of scalar SQL value kinds this engine
// understands. It mirrors xsqlvar.go's SQL_TYPE_* constants in spirit —
// a small fixed tag used to drive every per-value decision — but is
// independent of the Firebird wire protocol's numbering.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTinyInt
	KindSmallInt
	KindInteger
	KindBigInt
	KindTimestamp
	KindDouble
	KindDecimal
	KindBoolean
	KindVarchar
	KindVarbinary
	KindAddress
	KindArray
	KindNull
)

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// kindNames mirrors xsqlvarTypeName's shape: a flat lookup table keyed by
// the type tag.
var kindNames = map[Kind]string{
	KindInvalid:   "INVALID",
	KindTinyInt:   "TINYINT",
	KindSmallInt:  "SMALLINT",
	KindInteger:   "INTEGER",
	KindBigInt:    "BIGINT",
	KindTimestamp: "TIMESTAMP",
	KindDouble:    "DOUBLE",
	KindDecimal:   "DECIMAL",
	KindBoolean:   "BOOLEAN",
	KindVarchar:   "VARCHAR",
	KindVarbinary: "VARBINARY",
	KindAddress:   "ADDRESS",
	KindArray:     "ARRAY",
	KindNull:      "NULL",
}

// kindTupleSize mirrors xsqlvarTypeLength: the fixed number of bytes a
// Kind occupies in a tuple slot. Variable-length and Array Kinds report
// the size of the in-tuple handle/pointer (8 bytes), not the payload.
var kindTupleSize = map[Kind]int{
	KindTinyInt:   1,
	KindSmallInt:  2,
	KindInteger:   4,
	KindBigInt:    8,
	KindTimestamp: 8,
	KindDouble:    8,
	KindDecimal:   16,
	KindBoolean:   1,
	KindVarchar:   8,
	KindVarbinary: 8,
	KindAddress:   8,
	KindArray:     8,
	KindNull:      0,
}

// TupleSize returns the fixed number of bytes k occupies in a tuple slot.
func (k Kind) TupleSize() int {
	return kindTupleSize[k]
}

// IsObject reports whether k's value is a variable-length object
// (Varchar, Varbinary, Array) as opposed to an inline fixed-width value.
func (k Kind) IsObject() bool {
	return k == KindVarchar || k == KindVarbinary || k == KindArray
}

// IsNumeric reports whether k participates in numeric promotion
// (integer family, Double, Decimal). Timestamp is integer-family for
// promotion purposes (§4.A), so it is numeric here as well.
func (k Kind) IsNumeric() bool {
	return k.IsIntegerFamily() || k == KindDouble || k == KindDecimal
}

// IsIntegerFamily reports whether k is one of the fixed-width signed
// integers or Timestamp, which promotes like an integer (§4.A).
func (k Kind) IsIntegerFamily() bool {
	switch k {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindTimestamp:
		return true
	default:
		return false
	}
}

// PromoteWith resolves the Kind that both a and b convert to before a
// binary numeric operation executes, per §4.A:
//
//   - either side Decimal (and the partner numeric/timestamp) -> Decimal
//   - else either side Double -> Double
//   - else both integer-family (including Timestamp) -> BigInt
//   - anything else -> Invalid
func PromoteWith(a, b Kind) Kind {
	if a == KindDecimal || b == KindDecimal {
		if a.IsNumeric() && b.IsNumeric() {
			return KindDecimal
		}
		return KindInvalid
	}
	if a == KindDouble || b == KindDouble {
		if a.IsNumeric() && b.IsNumeric() {
			return KindDouble
		}
		return KindInvalid
	}
	if a.IsIntegerFamily() && b.IsIntegerFamily() {
		return KindBigInt
	}
	return KindInvalid
}

// NullSentinel values that a fixed-width Kind's tuple bytes must equal
// to be considered NULL (§3 DATA MODEL). Decimal uses INT128_MIN instead
// (see int128Min in value.go).
const (
	NullTinyInt   int8    = -128
	NullSmallInt  int16   = -32768
	NullInteger   int32   = -1 << 31
	NullBigInt    int64   = -1 << 63
	NullTimestamp int64   = -1 << 63
	NullDouble    float64 = -1.7976931348623157e+308

	// NullBoolean is the sentinel byte a NULL Boolean's single tuple/wire
	// byte holds: outside {0, 1}, so it survives any fixed-width
	// round trip the way the other sentinels do.
	NullBoolean byte = 2
)
