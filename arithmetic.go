package scalarval

import (
	"math"
	"math/big"
)

// Add, Sub, Mul, and Div implement §4.G's promote-then-dispatch
// arithmetic engine. If either operand is NULL, the result is NULL of
// the promoted Kind — arithmetic never raises on NULL, only on a Kind
// pair with no promotion (TypeMismatch), overflow, NaN/Inf, or division
// by zero.

func Add(a, b Value) (Value, error) { return arith(a, b, opAdd) }
func Sub(a, b Value) (Value, error) { return arith(a, b, opSub) }
func Mul(a, b Value) (Value, error) { return arith(a, b, opMul) }
func Div(a, b Value) (Value, error) { return arith(a, b, opDiv) }

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
)

func arith(a, b Value, op arithOp) (Value, error) {
	promoted := PromoteWith(a.Kind(), b.Kind())
	if promoted == KindInvalid {
		return Value{}, NewTypeMismatch(a.Kind(), b.Kind())
	}
	if a.IsNull() || b.IsNull() {
		return NullOf(promoted), nil
	}
	switch promoted {
	case KindBigInt:
		return arithInt64(a.AsInt64Generic(), b.AsInt64Generic(), op)
	case KindDouble:
		return arithFloat64(toFloat64Operand(a), toFloat64Operand(b), op)
	case KindDecimal:
		return arithDecimal(a, b, op)
	default:
		return Value{}, NewTypeMismatch(a.Kind(), b.Kind())
	}
}

func toFloat64Operand(v Value) float64 {
	switch v.Kind() {
	case KindDouble:
		return v.AsF64()
	case KindDecimal:
		return decimalToFloat64(v)
	default:
		return float64(v.AsInt64Generic())
	}
}

// arithInt64 performs overflow-checked signed 64-bit arithmetic, per
// §4.G: overflow is predicated *before* the unsafe operation runs,
// using the standard signed-overflow tests, with the extra rule that
// the canonical NULL sentinel math.MinInt64 is itself treated as a
// multiplication overflow, whether it appears as an operand or as the
// product (it would otherwise silently read back as NULL).
func arithInt64(a, b int64, op arithOp) (Value, error) {
	switch op {
	case opAdd:
		if b > 0 && a > math.MaxInt64-b {
			return Value{}, overflowI64(a, b, FlagOverflow)
		}
		if b < 0 && a < math.MinInt64-b {
			return Value{}, overflowI64(a, b, FlagUnderflow)
		}
		return FromI64(a + b), nil
	case opSub:
		if b < 0 && a > math.MaxInt64+b {
			return Value{}, overflowI64(a, b, FlagOverflow)
		}
		if b > 0 && a < math.MinInt64+b {
			return Value{}, overflowI64(a, b, FlagUnderflow)
		}
		return FromI64(a - b), nil
	case opMul:
		if a == math.MinInt64 || b == math.MinInt64 {
			return Value{}, overflowI64(a, b, FlagOverflow)
		}
		if a == 0 || b == 0 {
			return FromI64(0), nil
		}
		result := a * b
		if result/b != a {
			flag := FlagOverflow
			if (a > 0) != (b > 0) {
				flag = FlagUnderflow
			}
			return Value{}, overflowI64(a, b, flag)
		}
		if result == math.MinInt64 {
			return Value{}, overflowI64(a, b, FlagUnderflow)
		}
		return FromI64(result), nil
	case opDiv:
		if b == 0 {
			return Value{}, NewDivisionByZero()
		}
		if a == math.MinInt64 && b == -1 {
			return Value{}, overflowI64(a, b, FlagOverflow)
		}
		return FromI64(a / b), nil
	}
	return Value{}, NewUnsupportedOperation("arithInt64: unknown op")
}

func overflowI64(a, b int64, flag OutOfRangeFlag) error {
	return NewNumericOutOfRange(bigIntPairString(a, b), KindBigInt, KindBigInt, flag)
}

func bigIntPairString(a, b int64) string {
	return big.NewInt(a).String() + ", " + big.NewInt(b).String()
}

// arithFloat64 computes a binary double operation then rejects the
// result if it is NaN or infinite, per §4.G. Infinity is detected with
// `value > DBL_MAX || value < -DBL_MAX` rather than math.IsInf, the
// "robust substitute for naive tests under fast-math builds" the spec
// calls for.
func arithFloat64(a, b float64, op arithOp) (Value, error) {
	var result float64
	switch op {
	case opAdd:
		result = a + b
	case opSub:
		result = a - b
	case opMul:
		result = a * b
	case opDiv:
		result = a / b
	default:
		return Value{}, NewUnsupportedOperation("arithFloat64: unknown op")
	}
	if math.IsNaN(result) {
		return Value{}, NewNumericOutOfRange("NaN", KindDouble, KindDouble, FlagOverflow)
	}
	if result > math.MaxFloat64 || result < -math.MaxFloat64 {
		flag := FlagOverflow
		if result < 0 {
			flag = FlagUnderflow
		}
		return Value{}, NewNumericOutOfRange("Inf", KindDouble, KindDouble, flag)
	}
	return FromF64(result), nil
}

// toDecimalScaled returns v's value as a 10^12-scaled 128-bit integer,
// widening integers; a double is multiplied by 10^12 at float64
// (53-bit) precision and then truncated toward zero.
func toDecimalScaled(v Value) *big.Int {
	switch v.Kind() {
	case KindDecimal:
		return v.decimalRaw()
	case KindDouble:
		f := new(big.Float).SetFloat64(v.AsF64())
		f.Mul(f, new(big.Float).SetInt(pow10_12))
		scaled, _ := f.Int(nil)
		return scaled
	default:
		return new(big.Int).Mul(big.NewInt(v.AsInt64Generic()), pow10_12)
	}
}

// arithDecimal performs §4.G's decimal arithmetic: addition/subtraction
// on the scaled integers directly; multiplication as
// (lhs_scaled * rhs_scaled) / 10^12; division as
// (lhs_scaled * 10^12) / rhs_scaled. math/big.Int gives unbounded
// intermediate precision, covering the 256-bit headroom multiply/divide
// need.
func arithDecimal(a, b Value, op arithOp) (Value, error) {
	lhs := toDecimalScaled(a)
	rhs := toDecimalScaled(b)

	var result *big.Int
	switch op {
	case opAdd:
		result = new(big.Int).Add(lhs, rhs)
	case opSub:
		result = new(big.Int).Sub(lhs, rhs)
	case opMul:
		product := new(big.Int).Mul(lhs, rhs)
		result = new(big.Int).Quo(product, pow10_12)
	case opDiv:
		if rhs.Sign() == 0 {
			return Value{}, NewDivisionByZero()
		}
		numerator := new(big.Int).Mul(lhs, pow10_12)
		result = new(big.Int).Quo(numerator, rhs)
	default:
		return Value{}, NewUnsupportedOperation("arithDecimal: unknown op")
	}

	return fromDecimalScaled(result)
}
