package sniff

import (
	"strings"

	"svgvault/internal/codec"
)

// signature pairs a codec tag with its structural test. Order in the table is
// the documented precedence: polyglot, ascii85, chunked tiles, vector.
type signature struct {
	tag   codec.Tag
	match func(string) bool
}

var signatures = []signature{
	{codec.TagPolyglot, func(text string) bool {
		return strings.Contains(text, codec.BoundaryPrefix())
	}},
	{codec.TagAscii85, func(text string) bool {
		return strings.Contains(text, `encoding="ascii85"`)
	}},
	{codec.TagQRChunk, func(text string) bool {
		return strings.Contains(text, `qr-frame-`)
	}},
	{codec.TagVector, func(text string) bool {
		return strings.Contains(text, "<path d=") && strings.Contains(text, "<set attributeName=")
	}},
}

// Detect returns the tag of the first matching signature. The boolean is
// false when no known format matches. Callers must not infer from a returned
// tag that other formats' markers are absent; precedence, not exclusivity, is
// the contract.
func Detect(text string) (codec.Tag, bool) {
	for _, sig := range signatures {
		if sig.match(text) {
			return sig.tag, true
		}
	}
	return "", false
}
