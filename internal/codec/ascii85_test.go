package codec_test

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"svgvault/internal/codec"
)

func TestAscii85RoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{},
		{0x01},
		{0x01, 0x02},
		{0x01, 0x02, 0x03},
		{0x01, 0x02, 0x03, 0x04},
		{0x00, 0x00, 0x00, 0x00},
		{0xff, 0xff, 0xff, 0xff},
		[]byte("hello world"),
		bytes.Repeat([]byte{0}, 17),
	}

	var a85 codec.Ascii85
	for _, payload := range payloads {
		encoded, err := a85.Encode(payload)
		if err != nil {
			t.Fatalf("Encode(%v) returned error: %v", payload, err)
		}
		decoded, err := a85.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", encoded, err)
		}
		if !bytes.Equal(decoded, payload) {
			t.Fatalf("round trip mismatch: got %v want %v (literal %q)", decoded, payload, encoded)
		}
	}
}

func TestAscii85RoundTripLargeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	payload := make([]byte, 12345)
	rng.Read(payload)

	var a85 codec.Ascii85
	encoded, err := a85.Encode(payload)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	decoded, err := a85.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatal("large random payload did not round trip")
	}
}

func TestAscii85TrailingZerosDistinguishedByLengthPrefix(t *testing.T) {
	base := []byte{0xaa, 0xbb, 0x00, 0x00, 0x00}
	shorter := base[:len(base)-1]

	var a85 codec.Ascii85
	encodedBase, err := a85.Encode(base)
	if err != nil {
		t.Fatalf("Encode(base) returned error: %v", err)
	}
	encodedShorter, err := a85.Encode(shorter)
	if err != nil {
		t.Fatalf("Encode(shorter) returned error: %v", err)
	}

	decodedBase, err := a85.Decode(encodedBase)
	if err != nil {
		t.Fatalf("Decode(base) returned error: %v", err)
	}
	decodedShorter, err := a85.Decode(encodedShorter)
	if err != nil {
		t.Fatalf("Decode(shorter) returned error: %v", err)
	}

	if len(decodedBase) != len(base) || len(decodedShorter) != len(shorter) {
		t.Fatalf("length prefix did not control truncation: got %d and %d, want %d and %d",
			len(decodedBase), len(decodedShorter), len(base), len(shorter))
	}
	if !bytes.Equal(decodedBase, base) || !bytes.Equal(decodedShorter, shorter) {
		t.Fatal("trailing zero payloads did not round trip exactly")
	}
}

func TestAscii85ZeroShorthandNotUsedForPaddedFinalBlock(t *testing.T) {
	// Two trailing zero bytes pad out to a final all-zero block; the literal
	// must keep the 5-digit form there so the shorthand never masks padding.
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x00, 0x00}
	var a85 codec.Ascii85
	encoded, err := a85.Encode(payload)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if strings.Contains(encoded, "z") {
		t.Fatalf("padded final block used z shorthand: %q", encoded)
	}

	// A full interior zero block still collapses to z.
	interior := []byte{0x01, 0x02, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00}
	encoded, err = a85.Encode(interior)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if !strings.Contains(encoded, "z") {
		t.Fatalf("full zero block not collapsed: %q", encoded)
	}
}

func TestAscii85DecodeIgnoresWhitespaceInBody(t *testing.T) {
	payload := []byte("whitespace tolerant literal")
	var a85 codec.Ascii85
	encoded, err := a85.Encode(payload)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	// Re-wrap the digit stream across lines the way containers do.
	sep := strings.Index(encoded, ":")
	body := encoded[sep+1 : len(encoded)-2]
	var wrapped strings.Builder
	wrapped.WriteString(encoded[:sep+1])
	for i := 0; i < len(body); i += 10 {
		end := i + 10
		if end > len(body) {
			end = len(body)
		}
		wrapped.WriteString(body[i:end])
		wrapped.WriteByte('\n')
	}
	wrapped.WriteString("~>")

	decoded, err := a85.Decode(wrapped.String())
	if err != nil {
		t.Fatalf("Decode of wrapped literal returned error: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatal("wrapped literal did not round trip")
	}
}

func TestAscii85DecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"missing open delimiter", "5:abcde~>"},
		{"missing close delimiter", "<~5:abcde"},
		{"missing length prefix", "<~abcde~>"},
		{"non-numeric length", "<~xyz:abcde~>"},
		{"negative length", "<~-3:abcde~>"},
		{"digit above range", "<~4:abcd\x7f~>"},
		{"z inside group", "<~8:abzde!!!!!~>"},
		{"length exceeds body", "<~400:abcde~>"},
	}

	var a85 codec.Ascii85
	for _, tc := range cases {
		if _, err := a85.Decode(tc.text); err == nil {
			t.Fatalf("%s: expected error for %q", tc.name, tc.text)
		} else if !errors.Is(err, codec.ErrDecoding) {
			t.Fatalf("%s: error not tagged as decoding error: %v", tc.name, err)
		}
	}
}
