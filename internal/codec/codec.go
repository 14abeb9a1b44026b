package codec

// Tag identifies one of the fixed set of container encodings. Tag values
// double as the format names surfaced in reports and CLI output.
type Tag string

const (
	// TagPolyglot marks containers that hide base64 payload sections between
	// boundary tokens inside SVG comments.
	TagPolyglot Tag = "polyglot"
	// TagAscii85 marks containers carrying a length-framed ASCII85 literal in
	// a video metadata element.
	TagAscii85 Tag = "ascii85"
	// TagQRChunk marks containers that tile chunk envelopes as rendered
	// symbols.
	TagQRChunk Tag = "qrcode"
	// TagVector marks frame-traced animation containers. The vector family is
	// one-way: it can be detected but never decoded.
	TagVector Tag = "vector"
)

// Tags returns every known tag in sniffer precedence order.
func Tags() []Tag {
	return []Tag{TagPolyglot, TagAscii85, TagQRChunk, TagVector}
}

func (t Tag) String() string { return string(t) }

// Reversible reports whether the encoding preserves the payload exactly, so
// that a successful decode implies correctness by construction.
func (t Tag) Reversible() bool {
	switch t {
	case TagPolyglot, TagAscii85, TagQRChunk:
		return true
	default:
		return false
	}
}

// Codec is a paired encode/decode transformation between a binary payload and
// its text representation inside a container. The chunk envelope codec does
// not satisfy this interface because its encoded form is a sequence of
// envelopes, not a single string; see Chunker.
type Codec interface {
	Tag() Tag
	Encode(payload []byte) (string, error)
	Decode(text string) ([]byte, error)
}

// ForTag returns the text codec for the given tag. The second return is false
// for tags without a string-to-string codec (the chunk and vector families).
func ForTag(t Tag) (Codec, bool) {
	switch t {
	case TagPolyglot:
		return NewPolyglot(nil), true
	case TagAscii85:
		return Ascii85{}, true
	default:
		return nil, false
	}
}
