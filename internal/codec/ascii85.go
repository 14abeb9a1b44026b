package codec

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	a85DigitMin = 33  // '!'
	a85DigitMax = 117 // 'u'
	a85Zero     = 'z' // shorthand for a full all-zero group
)

// Ascii85 encodes payloads as length-framed ASCII85 with roughly 25% size
// overhead. Every 4-byte block maps to five digits in [33,117]; an all-zero
// block collapses to the single digit 'z' unless it is a padded final block,
// where the shorthand would hide how many padding bytes the decoder must
// strip.
type Ascii85 struct{}

func (Ascii85) Tag() Tag { return TagAscii85 }

// Encode renders payload as a frame literal <~{len}:{digits}~>. It never
// fails; the error return satisfies the Codec interface.
func (Ascii85) Encode(payload []byte) (string, error) {
	var body strings.Builder
	body.Grow((len(payload)+3)/4*5)

	for i := 0; i < len(payload); i += 4 {
		var block [4]byte
		copied := copy(block[:], payload[i:])
		value := binary.BigEndian.Uint32(block[:])

		// The z shorthand is safe only for full groups. A padded final group
		// of zeros must keep the 5-digit form so the length prefix, not the
		// digit stream, decides how much to truncate.
		if value == 0 && copied == 4 {
			body.WriteByte(a85Zero)
			continue
		}

		var digits [5]byte
		for j := 4; j >= 0; j-- {
			digits[j] = byte(a85DigitMin + value%85)
			value /= 85
		}
		body.Write(digits[:])
	}

	return buildFrame(len(payload), body.String()), nil
}

// Decode recovers the exact payload from a frame literal produced by Encode.
// Whitespace inside the digit stream is ignored so containers may wrap long
// literals across lines.
func (Ascii85) Decode(text string) ([]byte, error) {
	length, body, err := parseFrame(text)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, length+4)
	var group [5]byte
	groupLen := 0

	flush := func() {
		value := uint32(0)
		for j := 0; j < 5; j++ {
			value = value*85 + uint32(group[j]-a85DigitMin)
		}
		var block [4]byte
		binary.BigEndian.PutUint32(block[:], value)
		out = append(out, block[:]...)
		groupLen = 0
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == ' ' || c == '\n' || c == '\r' || c == '\t':
			continue
		case c == a85Zero && groupLen == 0:
			out = append(out, 0, 0, 0, 0)
		case c >= a85DigitMin && c <= a85DigitMax:
			group[groupLen] = c
			groupLen++
			if groupLen == 5 {
				flush()
			}
		default:
			return nil, Wrap(ErrDecoding, "ascii85", "decode",
				fmt.Sprintf("invalid digit %q at offset %d", c, i), nil)
		}
	}

	// A short final group decodes as if padded with the maximum digit,
	// matching the encoder's zero-byte padding convention.
	if groupLen > 0 {
		for j := groupLen; j < 5; j++ {
			group[j] = a85DigitMax
		}
		flush()
	}

	if length > len(out) {
		return nil, Wrap(ErrDecoding, "ascii85", "decode",
			fmt.Sprintf("length prefix %d exceeds %d decoded bytes", length, len(out)), nil)
	}
	return out[:length], nil
}
