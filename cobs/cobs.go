// Package cobs implements Consistent Overhead Byte Stuffing (Cheney &
// Williams, 1999): it removes a single chosen byte value, 0x00, from an
// arbitrary payload so the framed result can use 0x00 as an unambiguous
// package terminator. The framer is stateless; all sequencing state lives
// one layer up, in package channel.
package cobs

// Encode stuffs payload into a COBS block that contains no 0x00 byte. The
// returned slice does not include the package terminator; callers append
// it (see EncodeFrame). Encoding an empty payload yields the single byte
// {0x01}, the standard COBS encoding of zero bytes of data.
func Encode(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+len(payload)/254+2)
	out = append(out, 0) // placeholder for the first code byte
	codeIdx := 0
	code := byte(1)
	for _, b := range payload {
		if b == 0 {
			out[codeIdx] = code
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
			continue
		}
		out = append(out, b)
		code++
		if code == 0xFF {
			out[codeIdx] = code
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
		}
	}
	out[codeIdx] = code
	return out
}

// Decode reverses Encode. block must not include the package terminator.
// It fails with FramingError on malformed COBS structure: a zero code byte,
// or a code byte whose run overruns the remaining block.
func Decode(block []byte) ([]byte, error) {
	out := make([]byte, 0, len(block))
	n := len(block)
	i := 0
	for i < n {
		code := block[i]
		if code == 0 {
			return nil, &FramingError{Reason: "zero code byte inside COBS block"}
		}
		i++
		end := i + int(code) - 1
		if end > n {
			return nil, &FramingError{Reason: "code byte overruns block"}
		}
		out = append(out, block[i:end]...)
		i = end
		if code < 0xFF && i < n {
			out = append(out, 0)
		}
	}
	return out, nil
}

// EncodeFrame produces the full on-wire frame: COBS(payload) followed by
// the 0x00 terminator. An empty payload bypasses COBS entirely and is
// framed as the bare terminator {0x00} rather than the standard
// {0x01, 0x00} — see DESIGN.md for the reasoning.
func EncodeFrame(payload []byte) []byte {
	if len(payload) == 0 {
		return []byte{0x00}
	}
	block := Encode(payload)
	return append(block, 0x00)
}

// DecodeFrame reverses EncodeFrame. frameBody is the bytes between two
// consecutive 0x00 terminators in the inbound stream (terminator already
// stripped by the caller). An empty frameBody decodes to an empty payload,
// the mirror image of EncodeFrame's empty-payload special case.
func DecodeFrame(frameBody []byte) ([]byte, error) {
	if len(frameBody) == 0 {
		return []byte{}, nil
	}
	return Decode(frameBody)
}
