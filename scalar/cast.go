package scalar

import (
	"math"
	"math/big"
	"reflect"
)

// bounds returns the inclusive [min, max] range of kind as big.Ints. Float
// kinds return nil bounds; callers must special-case them.
func bounds(k Kind) (min, max *big.Int) {
	switch k {
	case I8:
		return big.NewInt(math.MinInt8), big.NewInt(math.MaxInt8)
	case U8, Char:
		return big.NewInt(0), big.NewInt(math.MaxUint8)
	case I16:
		return big.NewInt(math.MinInt16), big.NewInt(math.MaxInt16)
	case U16:
		return big.NewInt(0), big.NewInt(math.MaxUint16)
	case I32:
		return big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)
	case U32:
		return big.NewInt(0), big.NewInt(math.MaxUint32)
	case I64:
		return big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)
	case U64:
		max := new(big.Int).SetUint64(math.MaxUint64)
		return big.NewInt(0), max
	default:
		return nil, nil
	}
}

// toBigInt converts a native numeric Go value into a big.Int, reporting
// whether the source carried a non-zero fractional part (relevant only
// when the source was a float).
func toBigInt(v any) (n *big.Int, hadFraction bool, ok bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), false, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), false, true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false, false
		}
		whole, frac := math.Modf(f)
		bi, accErr := big.NewFloat(whole).Int(nil)
		if accErr == nil {
			return bi, frac != 0, true
		}
		return nil, false, false
	default:
		return nil, false, false
	}
}

func toFloat64(v any) (f float64, ok bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// TryCast coerces a native Go value into the canonical storage type for
// kind, failing rather than silently wrapping or truncating when the
// value does not fit. Floats accept integer sources via exact widening.
// Char additionally accepts a one-rune string, to let the JSON codec round
// through scalar.TryCast uniformly with the other kinds.
func TryCast(k Kind, v any) (any, error) {
	if !k.Valid() {
		return nil, &BadKindError{Kind: k}
	}
	if k == Char {
		if s, isStr := v.(string); isStr {
			runes := []rune(s)
			if len(runes) != 1 || runes[0] > 0xFF {
				return nil, &ValueOutOfRangeError{Kind: k, Value: v}
			}
			return byte(runes[0]), nil
		}
	}
	if IsFloat(k) {
		f, ok := toFloat64(v)
		if !ok {
			return nil, &TypeMismatchError{Kind: k, Value: v}
		}
		if k == F32 {
			if !math.IsInf(f, 0) && (f > math.MaxFloat32 || f < -math.MaxFloat32) {
				return nil, &ValueOutOfRangeError{Kind: k, Value: v}
			}
			return float32(f), nil
		}
		return f, nil
	}

	n, hadFraction, ok := toBigInt(v)
	if !ok {
		return nil, &TypeMismatchError{Kind: k, Value: v}
	}
	if hadFraction {
		return nil, &ValueOutOfRangeError{Kind: k, Value: v}
	}
	min, max := bounds(k)
	if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
		return nil, &ValueOutOfRangeError{Kind: k, Value: v}
	}
	return castInRange(k, n), nil
}

// castInRange converts a big.Int already known to be within kind's bounds
// into the exact Go type used to store it.
func castInRange(k Kind, n *big.Int) any {
	switch k {
	case I8:
		return int8(n.Int64())
	case U8:
		return uint8(n.Uint64())
	case Char:
		return byte(n.Uint64())
	case I16:
		return int16(n.Int64())
	case U16:
		return uint16(n.Uint64())
	case I32:
		return int32(n.Int64())
	case U32:
		return uint32(n.Uint64())
	case I64:
		return n.Int64()
	case U64:
		return n.Uint64()
	default:
		return nil
	}
}
