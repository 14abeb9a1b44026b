package codec

import (
	"strconv"
	"strings"
)

// A frame literal stores the payload's exact byte count next to its encoded
// body: <~{decimal_length}:{body}~>. Fixed-size-group encodings cannot tell a
// payload that legitimately ends in zero bytes from one padded with zeros to
// complete the last group; the explicit length resolves the ambiguity at
// decode time.
const (
	frameOpen  = "<~"
	frameClose = "~>"
)

func buildFrame(originalLength int, body string) string {
	var sb strings.Builder
	sb.Grow(len(frameOpen) + len(frameClose) + len(body) + 21)
	sb.WriteString(frameOpen)
	sb.WriteString(strconv.Itoa(originalLength))
	sb.WriteByte(':')
	sb.WriteString(body)
	sb.WriteString(frameClose)
	return sb.String()
}

// parseFrame splits a frame literal into its declared length and encoded
// body. Surrounding whitespace is tolerated; the delimiters and the decimal
// length prefix are not optional.
func parseFrame(text string) (int, string, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, frameOpen) {
		return 0, "", Wrap(ErrDecoding, "ascii85", "parse frame", "missing <~ delimiter", nil)
	}
	if !strings.HasSuffix(text, frameClose) {
		return 0, "", Wrap(ErrDecoding, "ascii85", "parse frame", "missing ~> delimiter", nil)
	}
	inner := text[len(frameOpen) : len(text)-len(frameClose)]
	sep := strings.IndexByte(inner, ':')
	if sep < 0 {
		return 0, "", Wrap(ErrDecoding, "ascii85", "parse frame", "missing length prefix", nil)
	}
	length, err := strconv.Atoi(inner[:sep])
	if err != nil || length < 0 {
		return 0, "", Wrap(ErrDecoding, "ascii85", "parse frame", "length prefix is not a non-negative decimal", nil)
	}
	return length, inner[sep+1:], nil
}
