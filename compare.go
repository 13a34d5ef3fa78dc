package scalarval

import (
	"bytes"
	"math"
	"math/big"
)

// Compare is the NULL-aware comparator of §4.F: NULL < non-NULL and
// NULL == NULL. Used for sort/index/group ordering.
func Compare(a, b Value) (int, error) {
	aNull, bNull := a.IsNull(), b.IsNull()
	if aNull && bNull {
		return 0, nil
	}
	if aNull {
		return -1, nil
	}
	if bNull {
		return 1, nil
	}
	return CompareWithoutNull(a, b)
}

// CompareWithoutNull compares two known-non-NULL Values. The caller
// guarantees neither is NULL; used after short-circuit NULL handling in
// predicates (§4.F).
func CompareWithoutNull(a, b Value) (int, error) {
	ak, bk := a.Kind(), b.Kind()

	if (ak == KindVarchar || ak == KindVarbinary) && (bk == KindVarchar || bk == KindVarbinary) {
		return bytes.Compare(a.AsBytes(), b.AsBytes()), nil
	}

	if ak == KindDecimal || bk == KindDecimal {
		return compareInvolvingDecimal(a, b)
	}
	if ak == KindDouble || bk == KindDouble {
		return compareInvolvingDouble(a, b)
	}
	if ak.IsIntegerFamily() && bk.IsIntegerFamily() {
		return compareInt64(a.AsInt64Generic(), b.AsInt64Generic()), nil
	}
	if ak == KindBoolean && bk == KindBoolean {
		return compareInt64(boolToI64(a.AsBool()), boolToI64(b.AsBool())), nil
	}

	return 0, NewTypeMismatch(ak, bk)
}

func boolToI64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareInvolvingDecimal handles §4.F's Decimal cross-kind rules:
// Integer-family x Decimal widens the integer to 128 bits, scales by
// 10^12, then compares as 128-bit; Double x Decimal converts the
// Decimal to float64 and compares as double; Decimal x Decimal compares
// the signed 128-bit scaled integers directly.
func compareInvolvingDecimal(a, b Value) (int, error) {
	ak, bk := a.Kind(), b.Kind()
	if ak == KindDecimal && bk == KindDecimal {
		return a.decimalRaw().Cmp(b.decimalRaw()), nil
	}
	if ak == KindDouble || bk == KindDouble {
		return compareInvolvingDouble(a, b)
	}
	var decScaled *big.Int
	var other Value
	if ak == KindDecimal {
		decScaled, other = a.decimalRaw(), b
	} else {
		decScaled, other = b.decimalRaw(), a
	}
	if !other.Kind().IsIntegerFamily() {
		return 0, NewTypeMismatch(ak, bk)
	}
	widened := new(big.Int).Mul(big.NewInt(other.AsInt64Generic()), pow10_12)
	cmp := widened.Cmp(decScaled)
	if ak == KindDecimal {
		cmp = -cmp
	}
	return cmp, nil
}

// decimalToFloat64 converts a Decimal Value to float64 as whole +
// fractional/10^12, per §4.F.
func decimalToFloat64(v Value) float64 {
	scaled := v.decimalRaw()
	f := new(big.Float).SetInt(scaled)
	scale := new(big.Float).SetInt(pow10_12)
	f.Quo(f, scale)
	result, _ := f.Float64()
	return result
}

// compareInvolvingDouble handles Integer-family/Decimal x Double: the
// non-double side converts to float64, then compares as double, with
// NaN total ordering (NaN == NaN, NaN < every non-NaN) per §4.F/§3
// invariant 6.
func compareInvolvingDouble(a, b Value) (int, error) {
	af, err := toFloat64ForCompare(a)
	if err != nil {
		return 0, err
	}
	bf, err := toFloat64ForCompare(b)
	if err != nil {
		return 0, err
	}
	return compareFloat64NaNTotal(af, bf), nil
}

func toFloat64ForCompare(v Value) (float64, error) {
	switch v.Kind() {
	case KindDouble:
		return v.AsF64(), nil
	case KindDecimal:
		return decimalToFloat64(v), nil
	default:
		if v.Kind().IsIntegerFamily() {
			return float64(v.AsInt64Generic()), nil
		}
		return 0, NewTypeMismatch(v.Kind(), KindDouble)
	}
}

// compareFloat64NaNTotal imposes the spec's deliberately non-IEEE total
// order: NaN compares equal to NaN and less than every non-NaN value
// (§3 invariant 6).
func compareFloat64NaNTotal(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Boolean convenience wrappers over Compare, per §4.F.

func OpEqual(a, b Value) (bool, error)   { return opCompare(a, b, func(c int) bool { return c == 0 }) }
func OpNotEqual(a, b Value) (bool, error) { return opCompare(a, b, func(c int) bool { return c != 0 }) }
func OpLess(a, b Value) (bool, error)    { return opCompare(a, b, func(c int) bool { return c < 0 }) }
func OpLessEqual(a, b Value) (bool, error) {
	return opCompare(a, b, func(c int) bool { return c <= 0 })
}
func OpGreater(a, b Value) (bool, error) { return opCompare(a, b, func(c int) bool { return c > 0 }) }
func OpGreaterEqual(a, b Value) (bool, error) {
	return opCompare(a, b, func(c int) bool { return c >= 0 })
}

func opCompare(a, b Value, pred func(int) bool) (bool, error) {
	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}
	return pred(c), nil
}
