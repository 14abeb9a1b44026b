package sniff_test

import (
	"testing"

	"svgvault/internal/codec"
	"svgvault/internal/sniff"
)

func TestDetectEachFormat(t *testing.T) {
	cases := []struct {
		name string
		text string
		want codec.Tag
	}{
		{"polyglot", "<!--POLYGLOT_BOUNDARY_0011223344556677 ... -->", codec.TagPolyglot},
		{"ascii85", `<video:data encoding="ascii85" originalSize="12">`, codec.TagAscii85},
		{"qrcode", `<g id="qr-frame-0" transform="translate(0,0)">`, codec.TagQRChunk},
		{"vector", `<path d="M0 0L1 1"/><set attributeName="opacity" begin="0s"/>`, codec.TagVector},
	}

	for _, tc := range cases {
		tag, ok := sniff.Detect(tc.text)
		if !ok {
			t.Fatalf("%s: Detect found nothing", tc.name)
		}
		if tag != tc.want {
			t.Fatalf("%s: got tag %q, want %q", tc.name, tag, tc.want)
		}
	}
}

func TestDetectPrecedence(t *testing.T) {
	// A document carrying both a polyglot boundary and an ascii85 marker must
	// report polyglot, the highest-precedence signature.
	text := `<!--POLYGLOT_BOUNDARY_aabbccdd--> <video:data encoding="ascii85">`
	tag, ok := sniff.Detect(text)
	if !ok {
		t.Fatal("Detect found nothing")
	}
	if tag != codec.TagPolyglot {
		t.Fatalf("precedence violated: got %q, want %q", tag, codec.TagPolyglot)
	}
}

func TestDetectVectorNeedsBothElements(t *testing.T) {
	if _, ok := sniff.Detect(`<path d="M0 0"/>`); ok {
		t.Fatal("path alone must not match the vector family")
	}
	if _, ok := sniff.Detect(`<set attributeName="opacity"/>`); ok {
		t.Fatal("timed visibility alone must not match the vector family")
	}
}

func TestDetectUnknown(t *testing.T) {
	if tag, ok := sniff.Detect("<svg><rect/></svg>"); ok {
		t.Fatalf("plain SVG detected as %q", tag)
	}
}
