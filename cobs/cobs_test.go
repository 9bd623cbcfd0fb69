package cobs

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripLiteral(t *testing.T) {
	// Literal scenario 5 from the testable properties.
	payload := []byte("test\x00case")
	block := Encode(payload)
	require.NotContains(t, block, byte(0x00))

	frame := append(append([]byte{}, block...), 0x00)
	require.True(t, bytes.HasSuffix(frame, []byte{0x00}))

	decoded, err := Decode(frame[:len(frame)-1])
	require.NoError(t, err)
	require.Equal(t, payload, decoded)
}

func TestEncodeNeverEmbedsZero(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0x00, 0x00, 0x00},
		bytes.Repeat([]byte{0x01}, 300),
		append(bytes.Repeat([]byte{0xAA}, 253), 0x00, 0xBB),
	}
	for _, payload := range cases {
		block := Encode(payload)
		require.NotContains(t, block, byte(0x00))
		decoded, err := Decode(block)
		require.NoError(t, err)
		require.Equal(t, payload, decoded)
	}
}

func TestEmptyPayloadStandardEncoding(t *testing.T) {
	require.Equal(t, []byte{0x01}, Encode(nil))
}

func TestEncodeFrameEmptyPayloadIsBareTerminator(t *testing.T) {
	require.Equal(t, []byte{0x00}, EncodeFrame(nil))
	payload, err := DecodeFrame(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{}, payload)
}

func TestDecodeFramingErrors(t *testing.T) {
	_, err := Decode([]byte{0x00})
	var fe *FramingError
	require.ErrorAs(t, err, &fe)

	_, err = Decode([]byte{0x05, 'a', 'b'})
	require.ErrorAs(t, err, &fe)
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		n := rng.Intn(600)
		payload := make([]byte, n)
		rng.Read(payload)
		block := Encode(payload)
		require.NotContains(t, block, byte(0x00))
		decoded, err := Decode(block)
		require.NoError(t, err)
		require.Equal(t, payload, decoded)
	}
}
