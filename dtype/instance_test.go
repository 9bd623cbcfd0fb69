package dtype

import (
	"testing"

	"github.com/FooBarShebang/com-lib/scalar"
	"github.com/stretchr/testify/require"
)

func TestDefaultScalarIsZero(t *testing.T) {
	inst, err := Default(ScalarType(scalar.I32))
	require.NoError(t, err)
	require.Equal(t, int32(0), inst.Value())
}

func TestDefaultStructFillsEveryField(t *testing.T) {
	d := StructType(
		Field{Name: "a", Type: ScalarType(scalar.I16)},
		Field{Name: "b", Type: ScalarType(scalar.F64)},
	)
	inst, err := Default(d)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": int16(0), "b": float64(0)}, inst.ToNative())
}

func TestDefaultFixedArrayHasDeclaredLength(t *testing.T) {
	inst, err := Default(FixedArrayType(ScalarType(scalar.U8), 4))
	require.NoError(t, err)
	require.Equal(t, 4, inst.Len())
}

func TestDefaultDynamicArrayIsEmpty(t *testing.T) {
	inst, err := Default(DynamicArrayType(ScalarType(scalar.U8)))
	require.NoError(t, err)
	require.Equal(t, 0, inst.Len())
}

func TestCurrentSizeMatchesStaticSizeWhenFixed(t *testing.T) {
	d := StructType(
		Field{Name: "a", Type: ScalarType(scalar.I16)},
		Field{Name: "b", Type: ScalarType(scalar.F32)},
	)
	inst, err := Default(d)
	require.NoError(t, err)
	size, ok, err := SizeOf(d)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, size, inst.CurrentSize())
}

func TestCurrentSizeReflectsDynamicTailContent(t *testing.T) {
	d := DynamicArrayType(ScalarType(scalar.U8))
	inst, err := FromNative(d, []any{uint8(1), uint8(2), uint8(3)})
	require.NoError(t, err)
	require.Equal(t, 3, inst.CurrentSize())
}

func TestFromNativeCopiesFromAnotherInstance(t *testing.T) {
	d := StructType(
		Field{Name: "a", Type: ScalarType(scalar.I16)},
		Field{Name: "b", Type: ScalarType(scalar.I16)},
	)
	src, err := FromNative(d, map[string]any{"a": int16(1), "b": int16(2)})
	require.NoError(t, err)

	copied, err := FromNative(d, src)
	require.NoError(t, err)
	require.Equal(t, src.ToNative(), copied.ToNative())

	require.NoError(t, copied.Set("a", int16(99)))
	require.Equal(t, int16(1), src.fields["a"].scalarVal)
}
