package scalar

import "encoding/binary"

// Endian selects the byte order used by ToBytes/FromBytes. It is carried
// through unchanged by every compound encode/decode call, so a single
// selector governs every scalar produced or consumed during one pass.
type Endian uint8

const (
	// Native uses the host platform's byte order.
	Native Endian = iota
	Little
	Big
)

func byteOrder(e Endian) binary.ByteOrder {
	switch e {
	case Little:
		return binary.LittleEndian
	case Big:
		return binary.BigEndian
	default:
		return binary.NativeEndian
	}
}
