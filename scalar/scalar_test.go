package scalar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustBytes is the package's own t.Helper()-annotated assistant.
func mustBytes(t *testing.T, k Kind, v any, e Endian) []byte {
	t.Helper()
	b, err := ToBytes(k, v, e)
	require.NoError(t, err)
	return b
}

func TestToBytesLittleEndianU16(t *testing.T) {
	// Literal scenario 1 from the testable properties: Scalar(u16), value 1.
	b := mustBytes(t, U16, 1, Little)
	require.Equal(t, []byte{0x01, 0x00}, b)
}

func TestToBytesBigEndianU16(t *testing.T) {
	b := mustBytes(t, U16, 1, Big)
	require.Equal(t, []byte{0x00, 0x01}, b)
}

func TestRoundTripAllKinds(t *testing.T) {
	cases := []struct {
		kind Kind
		v    any
	}{
		{I8, int8(-12)},
		{U8, uint8(200)},
		{I16, int16(-1000)},
		{U16, uint16(40000)},
		{I32, int32(-70000)},
		{U32, uint32(3000000000)},
		{I64, int64(-1) << 40},
		{U64, uint64(1) << 63},
		{F32, float32(3.5)},
		{F64, float64(2.718281828)},
		{Char, byte('Q')},
	}
	for _, c := range cases {
		for _, e := range []Endian{Native, Little, Big} {
			b, err := ToBytes(c.kind, c.v, e)
			require.NoError(t, err)
			require.Len(t, b, Width(c.kind))
			back, err := FromBytes(c.kind, b, e)
			require.NoError(t, err)
			require.Equal(t, c.v, back)
		}
	}
}

func TestFromBytesLengthMismatch(t *testing.T) {
	_, err := FromBytes(U32, []byte{1, 2, 3}, Little)
	var lenErr *LengthMismatchError
	require.ErrorAs(t, err, &lenErr)
}

func TestTryCastOutOfRange(t *testing.T) {
	_, err := TryCast(U8, 256)
	var rangeErr *ValueOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)

	_, err = TryCast(I8, -129)
	require.ErrorAs(t, err, &rangeErr)
}

func TestTryCastFloatAcceptsIntWidening(t *testing.T) {
	v, err := TryCast(F64, 42)
	require.NoError(t, err)
	require.Equal(t, float64(42), v)
}

func TestTryCastIntRejectsFraction(t *testing.T) {
	_, err := TryCast(I32, 1.5)
	var rangeErr *ValueOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestTryCastCharFromString(t *testing.T) {
	v, err := TryCast(Char, "Q")
	require.NoError(t, err)
	require.Equal(t, byte('Q'), v)

	_, err = TryCast(Char, "QQ")
	require.Error(t, err)
}

func TestTryCastWrongType(t *testing.T) {
	_, err := TryCast(I32, "not a number")
	var typeErr *TypeMismatchError
	require.ErrorAs(t, err, &typeErr)
}
