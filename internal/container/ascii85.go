package container

import (
	"encoding/base64"
	"fmt"
	"strings"

	"svgvault/internal/codec"
	"svgvault/internal/media"
)

// videoNamespace is the XML namespace carrying embedded payload elements.
const videoNamespace = "http://example.org/video/2024"

const (
	ascii85DataOpen  = "<video:data"
	ascii85DataClose = "</video:data>"
)

// BuildAscii85Document encodes payload with the framed ASCII85 codec and
// wraps it in an SVG document. The frame literal is base64-wrapped inside
// CDATA because the ASCII85 alphabet collides with XML-active characters.
func BuildAscii85Document(meta media.Metadata, payload []byte) (string, error) {
	literal, err := codec.Ascii85{}.Encode(payload)
	if err != nil {
		return "", err
	}
	wrapped := wrapLines(base64.StdEncoding.EncodeToString([]byte(literal)), 80)
	width, height := meta.DisplaySize()

	var sb strings.Builder
	sb.Grow(len(wrapped) + 2048)
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg"
     xmlns:video=%q
     width="%d" height="%d">
`, videoNamespace, width, height)
	sb.WriteString(`
    <title>ASCII85 Encoded Video</title>
    <desc>Video data encoded with framed ASCII85</desc>

    <metadata>
`)
	fmt.Fprintf(&sb, `        <video:data encoding="ascii85"
                    originalSize="%d"
                    fps="%.2f"
                    frames="%d"
                    id="videoData">
            <![CDATA[
%s
            ]]>
        </video:data>
`, len(payload), meta.FPS, meta.FrameCount, wrapped)
	sb.WriteString(`    </metadata>

    <rect width="100%" height="100%" fill="#1a1a1a"/>
`)
	fmt.Fprintf(&sb, `    <text x="50%%" y="45%%" fill="#0f0" font-size="24" text-anchor="middle">ASCII85 Video Container</text>
    <text x="50%%" y="55%%" fill="#0f0" font-size="14" text-anchor="middle">Payload: %d bytes</text>
</svg>
`, len(payload))
	return sb.String(), nil
}

// ExtractAscii85Payload locates the video:data element, unwraps its base64
// CDATA body, and decodes the frame literal back to the original bytes.
func ExtractAscii85Payload(document string) ([]byte, error) {
	start := strings.Index(document, ascii85DataOpen)
	if start < 0 {
		return nil, codec.Wrap(codec.ErrDecoding, "ascii85", "extract", "video:data element not found", nil)
	}
	openEnd := strings.IndexByte(document[start:], '>')
	if openEnd < 0 {
		return nil, codec.Wrap(codec.ErrDecoding, "ascii85", "extract", "unterminated video:data tag", nil)
	}
	bodyStart := start + openEnd + 1
	end := strings.Index(document[bodyStart:], ascii85DataClose)
	if end < 0 {
		return nil, codec.Wrap(codec.ErrDecoding, "ascii85", "extract", "video:data element not closed", nil)
	}

	body := document[bodyStart : bodyStart+end]
	body = strings.ReplaceAll(body, "<![CDATA[", "")
	body = strings.ReplaceAll(body, "]]>", "")
	compact := strings.Join(strings.Fields(body), "")
	if compact == "" {
		return nil, codec.Wrap(codec.ErrDecoding, "ascii85", "extract", "video:data element is empty", nil)
	}

	literal, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, codec.Wrap(codec.ErrDecoding, "ascii85", "extract", "payload wrapper is not valid base64", err)
	}
	return codec.Ascii85{}.Decode(string(literal))
}

func wrapLines(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/width + 1)
	for start := 0; start < len(s); start += width {
		end := start + width
		if end > len(s) {
			end = len(s)
		}
		if start > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s[start:end])
	}
	return sb.String()
}
