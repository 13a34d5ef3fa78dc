package scalarval

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AllowNonStandardTimestampCasts gates the Double->Timestamp and
// Decimal->Timestamp conversions. §9 Open Questions flags both as
// "possibly-nonstandard" but asks that the behavior be preserved, not
// silently removed; this is the "conservative feature flag" that does
// that. Default true matches the source's own behavior.
var AllowNonStandardTimestampCasts = true

// Cast converts v to Kind to, per the §4.E cast matrix. NULL input
// yields a typed NULL output of to (the matrix applies uniformly to
// NULLs).
func Cast(v Value, to Kind) (Value, error) {
	if v.IsNull() {
		return NullOf(to), nil
	}
	switch to {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt:
		return castToIntegerFamily(v, to)
	case KindTimestamp:
		return castToTimestamp(v)
	case KindDouble:
		return castToDouble(v)
	case KindDecimal:
		return castToDecimal(v)
	case KindVarchar:
		return castToVarchar(v)
	case KindVarbinary:
		return castToVarbinary(v)
	case KindBoolean:
		return castToBoolean(v)
	}
	return Value{}, NewTypeMismatch(v.Kind(), to)
}

// ---- destination: TinyInt/SmallInt/Integer/BigInt ----

func castToIntegerFamily(v Value, to Kind) (Value, error) {
	switch v.Kind() {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindTimestamp:
		return castIntToKind(v.AsInt64Generic(), to)
	case KindDouble:
		return castDoubleToIntegerFamily(v.AsF64(), to)
	case KindDecimal:
		whole := new(big.Int).Quo(v.decimalRaw(), pow10_12)
		return castBigToIntegerFamily(whole, to)
	case KindVarchar:
		s := strings.TrimRight(string(v.AsBytes()), " \t\r\n")
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, NewInvalidFormat(s, to, err)
		}
		return castIntToKind(i, to)
	case KindVarbinary:
		return Value{}, NewTypeMismatch(KindVarbinary, to)
	}
	return Value{}, NewTypeMismatch(v.Kind(), to)
}

var int64Bounds = map[Kind][2]int64{
	KindTinyInt:  {math.MinInt8, math.MaxInt8},
	KindSmallInt: {math.MinInt16, math.MaxInt16},
	KindInteger:  {math.MinInt32, math.MaxInt32},
	KindBigInt:   {math.MinInt64, math.MaxInt64},
}

func castIntToKind(value int64, to Kind) (Value, error) {
	bounds, ok := int64Bounds[to]
	if ok {
		if value < bounds[0] {
			return Value{}, NewNumericOutOfRange(strconv.FormatInt(value, 10), KindBigInt, to, FlagUnderflow)
		}
		if value > bounds[1] {
			return Value{}, NewNumericOutOfRange(strconv.FormatInt(value, 10), KindBigInt, to, FlagOverflow)
		}
	}
	switch to {
	case KindTinyInt:
		return FromI8(int8(value)), nil
	case KindSmallInt:
		return FromI16(int16(value)), nil
	case KindInteger:
		return FromI32(int32(value)), nil
	case KindBigInt:
		return FromI64(value), nil
	case KindTimestamp:
		return FromTimestamp(value), nil
	}
	return Value{}, NewTypeMismatch(KindBigInt, to)
}

var bigBounds = map[Kind][2]*big.Int{
	KindTinyInt:  {big.NewInt(math.MinInt8), big.NewInt(math.MaxInt8)},
	KindSmallInt: {big.NewInt(math.MinInt16), big.NewInt(math.MaxInt16)},
	KindInteger:  {big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)},
	KindBigInt:   {big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)},
}

func castBigToIntegerFamily(whole *big.Int, to Kind) (Value, error) {
	bounds := bigBounds[to]
	if whole.Cmp(bounds[0]) < 0 {
		return Value{}, NewNumericOutOfRange(whole.String(), KindDecimal, to, FlagUnderflow)
	}
	if whole.Cmp(bounds[1]) > 0 {
		return Value{}, NewNumericOutOfRange(whole.String(), KindDecimal, to, FlagOverflow)
	}
	return castIntToKind(whole.Int64(), to)
}

func castDoubleToIntegerFamily(f float64, to Kind) (Value, error) {
	if math.IsNaN(f) {
		return Value{}, NewNumericOutOfRange("NaN", KindDouble, to, FlagOverflow)
	}
	trunc := math.Trunc(f)
	if trunc > math.MaxInt64 {
		return Value{}, NewNumericOutOfRange(fmt.Sprintf("%v", f), KindDouble, to, FlagOverflow)
	}
	if trunc < math.MinInt64 {
		return Value{}, NewNumericOutOfRange(fmt.Sprintf("%v", f), KindDouble, to, FlagUnderflow)
	}
	return castIntToKind(int64(trunc), to)
}

// ---- destination: Timestamp ----

func castToTimestamp(v Value) (Value, error) {
	switch v.Kind() {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindTimestamp:
		return FromTimestamp(v.AsInt64Generic()), nil
	case KindDouble:
		if !AllowNonStandardTimestampCasts {
			return Value{}, NewUnsupportedOperation("Double -> Timestamp cast disabled (AllowNonStandardTimestampCasts=false)")
		}
		asInt, err := castDoubleToIntegerFamily(v.AsF64(), KindBigInt)
		if err != nil {
			return Value{}, err
		}
		return FromTimestamp(asInt.AsI64()), nil
	case KindDecimal:
		if !AllowNonStandardTimestampCasts {
			return Value{}, NewUnsupportedOperation("Decimal -> Timestamp cast disabled (AllowNonStandardTimestampCasts=false)")
		}
		whole := new(big.Int).Quo(v.decimalRaw(), pow10_12)
		asInt, err := castBigToIntegerFamily(whole, KindBigInt)
		if err != nil {
			return Value{}, err
		}
		return FromTimestamp(asInt.AsI64()), nil
	case KindVarchar:
		s := strings.TrimSpace(string(v.AsBytes()))
		us, err := parseTimestampString(s)
		if err != nil {
			return Value{}, NewInvalidFormat(s, KindTimestamp, err)
		}
		return FromTimestamp(us), nil
	default:
		return Value{}, NewTypeMismatch(v.Kind(), KindTimestamp)
	}
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339Nano,
	"2006-01-02",
}

func parseTimestampString(s string) (int64, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMicro(), nil
		}
	}
	return 0, fmt.Errorf("no matching timestamp layout for %q", s)
}

// ---- destination: Double ----

func castToDouble(v Value) (Value, error) {
	switch v.Kind() {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindTimestamp:
		return FromF64(float64(v.AsInt64Generic())), nil
	case KindDouble:
		return v, nil
	case KindDecimal:
		return FromF64(decimalToFloat64(v)), nil
	case KindVarchar:
		s := strings.TrimRight(string(v.AsBytes()), " \t\r\n")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, NewInvalidFormat(s, KindDouble, err)
		}
		return FromF64(f), nil
	default:
		return Value{}, NewTypeMismatch(v.Kind(), KindDouble)
	}
}

// ---- destination: Decimal ----

func castToDecimal(v Value) (Value, error) {
	switch v.Kind() {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindTimestamp:
		scaled := new(big.Int).Mul(big.NewInt(v.AsInt64Generic()), pow10_12)
		return fromDecimalScaled(scaled)
	case KindDouble:
		return castDoubleToDecimal(v.AsF64())
	case KindDecimal:
		return v, nil
	case KindVarchar:
		scaled, err := decimalFromString(string(v.AsBytes()))
		if err != nil {
			return Value{}, NewInvalidFormat(string(v.AsBytes()), KindDecimal, err)
		}
		return fromDecimalScaled(scaled)
	default:
		return Value{}, NewTypeMismatch(v.Kind(), KindDecimal)
	}
}

// castDoubleToDecimal checks the whole part fits 26 digits, then
// formats with "%.12f" and reconstructs the scaled integer from that
// text — the spec's way of preserving full decimal precision instead of
// compounding float rounding error through a naive multiply.
func castDoubleToDecimal(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, NewNumericOutOfRange(fmt.Sprintf("%v", f), KindDouble, KindDecimal, FlagOverflow)
	}
	abs := math.Abs(f)
	if abs >= 1e26 {
		flag := FlagOverflow
		if f < 0 {
			flag = FlagUnderflow
		}
		return Value{}, NewNumericOutOfRange(fmt.Sprintf("%v", f), KindDouble, KindDecimal, flag)
	}
	s := fmt.Sprintf("%.12f", f)
	scaled, err := fixedStringToScaled(s)
	if err != nil {
		return Value{}, err
	}
	return fromDecimalScaled(scaled)
}

// decimalFromString parses a decimal literal into its 10^12-scaled
// 128-bit integer. Validation goes through shopspring/decimal (the
// library already wired for Decimal elsewhere) so this accepts exactly
// the same literal shapes callers using decimal.Decimal elsewhere in an
// application would; the actual scaled integer is then rebuilt from its
// fixed-point text form so the full 38 significant digits survive.
func decimalFromString(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, err
	}
	return fixedStringToScaled(d.StringFixed(decimalScale))
}

// fixedStringToScaled converts a fixed-point decimal string with
// exactly decimalScale fractional digits (or fewer/more, normalized
// here) into its scaled big.Int.
func fixedStringToScaled(s string) (*big.Int, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) < decimalScale {
		fracPart += strings.Repeat("0", decimalScale-len(fracPart))
	} else if len(fracPart) > decimalScale {
		fracPart = fracPart[:decimalScale]
	}
	digits := intPart + fracPart
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("invalid decimal digits in %q", s)
		}
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal literal %q", s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// ---- destination: Varchar ----

func castToVarchar(v Value) (Value, error) {
	switch v.Kind() {
	case KindTinyInt:
		return TempString([]byte(strconv.FormatInt(int64(v.AsI8()), 10))), nil
	case KindSmallInt:
		return TempString([]byte(strconv.FormatInt(int64(v.AsI16()), 10))), nil
	case KindInteger:
		return TempString([]byte(strconv.FormatInt(int64(v.AsI32()), 10))), nil
	case KindBigInt:
		return TempString([]byte(strconv.FormatInt(v.AsI64(), 10))), nil
	case KindTimestamp:
		return TempString([]byte(formatTimestampCalendar(v.AsTimestamp()))), nil
	case KindDouble:
		return TempString([]byte(formatDoubleENotation(v.AsF64()))), nil
	case KindDecimal:
		return TempString([]byte(formatDecimalTrimmed(v.decimalRaw()))), nil
	case KindVarchar:
		return TempString(v.AsBytes()), nil
	case KindVarbinary:
		return TempString(v.AsBytes()), nil
	default:
		return Value{}, NewTypeMismatch(v.Kind(), KindVarchar)
	}
}

func formatTimestampCalendar(us int64) string {
	t := time.UnixMicro(us).UTC()
	return t.Format("2006-01-02 15:04:05.000000")
}

// formatDoubleENotation renders f as capital-E, minimal-form scientific
// notation: zero is the literal "0E0"; otherwise the mantissa carries no
// trailing zeros and the exponent has no leading zeros or explicit '+'.
func formatDoubleENotation(f float64) string {
	if f == 0 {
		return "0E0"
	}
	s := strconv.FormatFloat(f, 'E', -1, 64)
	parts := strings.SplitN(s, "E", 2)
	mantissa, expPart := parts[0], parts[1]
	exp, _ := strconv.Atoi(expPart)
	return mantissa + "E" + strconv.Itoa(exp)
}

// formatDecimalTrimmed renders a scaled Decimal integer as fixed-point
// text, trimming trailing fractional zeros but keeping at least one
// fractional digit when the fraction is non-zero.
func formatDecimalTrimmed(scaled *big.Int) string {
	neg := scaled.Sign() < 0
	abs := new(big.Int).Abs(scaled)
	digits := abs.String()
	for len(digits) < decimalScale+1 {
		digits = "0" + digits
	}
	intPart := digits[:len(digits)-decimalScale]
	fracPart := digits[len(digits)-decimalScale:]
	trimmed := strings.TrimRight(fracPart, "0")
	out := intPart
	if trimmed != "" {
		out += "." + trimmed
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ---- destination: Varbinary ----

func castToVarbinary(v Value) (Value, error) {
	switch v.Kind() {
	case KindVarbinary:
		return TempBinary(v.AsBytes()), nil
	default:
		return Value{}, NewTypeMismatch(v.Kind(), KindVarbinary)
	}
}

// ---- destination: Boolean ----

func castToBoolean(v Value) (Value, error) {
	switch v.Kind() {
	case KindBoolean:
		return v, nil
	case KindVarchar:
		s := strings.ToLower(strings.TrimSpace(string(v.AsBytes())))
		switch s {
		case "true", "t", "1", "yes":
			return TrueV(), nil
		case "false", "f", "0", "no":
			return FalseV(), nil
		default:
			return Value{}, NewInvalidFormat(s, KindBoolean, nil)
		}
	default:
		return Value{}, NewTypeMismatch(v.Kind(), KindBoolean)
	}
}
