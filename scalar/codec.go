package scalar

import "math"

// ToBytes interprets value as a native scalar of kind k and encodes it
// using the given byte order. For 1-byte kinds endian is irrelevant.
func ToBytes(k Kind, value any, endian Endian) ([]byte, error) {
	if !k.Valid() {
		return nil, &BadKindError{Kind: k}
	}
	canonical, err := TryCast(k, value)
	if err != nil {
		return nil, err
	}
	order := byteOrder(endian)
	buf := make([]byte, Width(k))
	switch k {
	case I8:
		buf[0] = byte(canonical.(int8))
	case U8:
		buf[0] = canonical.(uint8)
	case Char:
		buf[0] = canonical.(byte)
	case I16:
		order.PutUint16(buf, uint16(canonical.(int16)))
	case U16:
		order.PutUint16(buf, canonical.(uint16))
	case I32:
		order.PutUint32(buf, uint32(canonical.(int32)))
	case U32:
		order.PutUint32(buf, canonical.(uint32))
	case F32:
		order.PutUint32(buf, math.Float32bits(canonical.(float32)))
	case I64:
		order.PutUint64(buf, uint64(canonical.(int64)))
	case U64:
		order.PutUint64(buf, canonical.(uint64))
	case F64:
		order.PutUint64(buf, math.Float64bits(canonical.(float64)))
	}
	return buf, nil
}

// FromBytes decodes data as a scalar of kind k using the given byte order.
// It fails with LengthMismatchError unless len(data) equals the kind's
// fixed width.
func FromBytes(k Kind, data []byte, endian Endian) (any, error) {
	if !k.Valid() {
		return nil, &BadKindError{Kind: k}
	}
	w := Width(k)
	if len(data) != w {
		return nil, &LengthMismatchError{Kind: k, Expected: w, Got: len(data)}
	}
	order := byteOrder(endian)
	switch k {
	case I8:
		return int8(data[0]), nil
	case U8:
		return data[0], nil
	case Char:
		return data[0], nil
	case I16:
		return int16(order.Uint16(data)), nil
	case U16:
		return order.Uint16(data), nil
	case I32:
		return int32(order.Uint32(data)), nil
	case U32:
		return order.Uint32(data), nil
	case F32:
		return math.Float32frombits(order.Uint32(data)), nil
	case I64:
		return int64(order.Uint64(data)), nil
	case U64:
		return order.Uint64(data), nil
	case F64:
		return math.Float64frombits(order.Uint64(data)), nil
	default:
		return nil, &BadKindError{Kind: k}
	}
}

// Default returns the zero value in the canonical storage type for kind k.
func Default(k Kind) any {
	switch k {
	case I8:
		return int8(0)
	case U8:
		return uint8(0)
	case Char:
		return byte(0)
	case I16:
		return int16(0)
	case U16:
		return uint16(0)
	case I32:
		return int32(0)
	case U32:
		return uint32(0)
	case I64:
		return int64(0)
	case U64:
		return uint64(0)
	case F32:
		return float32(0)
	case F64:
		return float64(0)
	default:
		return nil
	}
}
