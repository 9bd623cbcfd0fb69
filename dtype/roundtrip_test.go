package dtype

import (
	"testing"

	"github.com/FooBarShebang/com-lib/scalar"
	"github.com/stretchr/testify/require"
)

// innerStruct and outerStruct mirror literal scenarios 2/3: Struct{a: i16,
// b: f32, c: Struct{a: i16, b: f32, c: DynamicArray<i16>}}.
func innerStruct() *Descriptor {
	return StructType(
		Field{Name: "a", Type: ScalarType(scalar.I16)},
		Field{Name: "b", Type: ScalarType(scalar.F32)},
		Field{Name: "c", Type: DynamicArrayType(ScalarType(scalar.I16))},
	)
}

func outerStruct() *Descriptor {
	return StructType(
		Field{Name: "a", Type: ScalarType(scalar.I16)},
		Field{Name: "b", Type: ScalarType(scalar.F32)},
		Field{Name: "c", Type: innerStruct()},
	)
}

func TestStructRoundTripLittleEndianEmptyTail(t *testing.T) {
	d := outerStruct()
	native := map[string]any{
		"a": int16(1),
		"b": float32(1.0),
		"c": map[string]any{
			"a": int16(2),
			"b": float32(1.0),
			"c": []any{},
		},
	}
	inst, err := FromNative(d, native)
	require.NoError(t, err)

	b, err := PackBytes(inst, scalar.Little)
	require.NoError(t, err)
	require.Equal(t,
		[]byte{0x01, 0x00, 0x00, 0x00, 0x80, 0x3F, 0x02, 0x00, 0x00, 0x00, 0x80, 0x3F},
		b)

	back, err := UnpackBytes(d, b, scalar.Little)
	require.NoError(t, err)
	require.Equal(t, native, back.ToNative())
}

func TestStructRoundTripLittleEndianWithTail(t *testing.T) {
	d := outerStruct()
	native := map[string]any{
		"a": int16(1),
		"b": float32(1.0),
		"c": map[string]any{
			"a": int16(2),
			"b": float32(1.0),
			"c": []any{int16(3), int16(4)},
		},
	}
	inst, err := FromNative(d, native)
	require.NoError(t, err)

	b, err := PackBytes(inst, scalar.Little)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x01, 0x00, 0x00, 0x00, 0x80, 0x3F,
		0x02, 0x00, 0x00, 0x00, 0x80, 0x3F,
		0x03, 0x00, 0x04, 0x00,
	}, b)
	require.Len(t, b, 16)

	back, err := UnpackBytes(d, b, scalar.Little)
	require.NoError(t, err)
	require.Equal(t, native, back.ToNative())
}

func TestStructRoundTripBigEndian(t *testing.T) {
	d := outerStruct()
	native := map[string]any{
		"a": int16(1),
		"b": float32(1.0),
		"c": map[string]any{
			"a": int16(2),
			"b": float32(1.0),
			"c": []any{},
		},
	}
	inst, err := FromNative(d, native)
	require.NoError(t, err)

	b, err := PackBytes(inst, scalar.Big)
	require.NoError(t, err)
	require.Equal(t,
		[]byte{0x00, 0x01, 0x3F, 0x80, 0x00, 0x00, 0x00, 0x02, 0x3F, 0x80, 0x00, 0x00},
		b)

	back, err := UnpackBytes(d, b, scalar.Big)
	require.NoError(t, err)
	require.Equal(t, native, back.ToNative())
}

func TestFixedArrayRoundTrip(t *testing.T) {
	d := FixedArrayType(ScalarType(scalar.I16), 2)
	inst, err := FromNative(d, []any{int16(1), int16(2)})
	require.NoError(t, err)

	little, err := PackBytes(inst, scalar.Little)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00, 0x02, 0x00}, little)

	big, err := PackBytes(inst, scalar.Big)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x01, 0x00, 0x02}, big)

	back, err := UnpackBytes(d, little, scalar.Little)
	require.NoError(t, err)
	require.Equal(t, []any{int16(1), int16(2)}, back.ToNative())
}

func TestFixedArrayRejectsWrongLength(t *testing.T) {
	d := FixedArrayType(ScalarType(scalar.I16), 2)
	_, err := UnpackBytes(d, []byte{0x01, 0x00}, scalar.Little)
	var lenErr *LengthMismatchError
	require.ErrorAs(t, err, &lenErr)
}

func TestDynamicArrayRoundTripThroughJSON(t *testing.T) {
	d := DynamicArrayType(ScalarType(scalar.U8))
	inst, err := FromNative(d, []any{uint8(1), uint8(2), uint8(3)})
	require.NoError(t, err)

	text, err := PackJSON(inst)
	require.NoError(t, err)
	require.Equal(t, "[1,2,3]", text)

	back, err := UnpackJSON(d, text)
	require.NoError(t, err)
	require.Equal(t, []any{uint8(1), uint8(2), uint8(3)}, back.ToNative())
}

func TestStructJSONRoundTripPreservesFieldOrder(t *testing.T) {
	d := StructType(
		Field{Name: "z", Type: ScalarType(scalar.I16)},
		Field{Name: "a", Type: ScalarType(scalar.I16)},
	)
	native := map[string]any{"z": int16(1), "a": int16(2)}
	inst, err := FromNative(d, native)
	require.NoError(t, err)

	text, err := PackJSON(inst)
	require.NoError(t, err)
	require.Equal(t, `{"z":1,"a":2}`, text)

	back, err := UnpackJSON(d, text)
	require.NoError(t, err)
	require.Equal(t, native, back.ToNative())
}

func TestBinaryBytesRoundTripAllScalarKinds(t *testing.T) {
	kinds := []scalar.Kind{
		scalar.I8, scalar.U8, scalar.I16, scalar.U16,
		scalar.I32, scalar.U32, scalar.I64, scalar.U64,
		scalar.F32, scalar.F64, scalar.Char,
	}
	for _, k := range kinds {
		d := ScalarType(k)
		inst, err := Default(d)
		require.NoError(t, err)
		for _, e := range []scalar.Endian{scalar.Native, scalar.Little, scalar.Big} {
			b, err := PackBytes(inst, e)
			require.NoError(t, err)
			back, err := UnpackBytes(d, b, e)
			require.NoError(t, err)
			require.Equal(t, inst.ToNative(), back.ToNative())
		}
	}
}
