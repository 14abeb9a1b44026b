package container

import (
	"fmt"
	"strings"

	"svgvault/internal/codec"
	"svgvault/internal/media"
)

// BuildPolyglotDocument hides the primary payload (and an optional secondary
// attachment) in comment sections around a visible SVG body. The boundary
// token comes from the codec's random source, fresh per call.
func BuildPolyglotDocument(p codec.Polyglot, meta media.Metadata, primary, secondary []byte) (string, error) {
	boundary, err := p.NewBoundary()
	if err != nil {
		return "", err
	}
	width, height := meta.DisplaySize()

	var sb strings.Builder
	sb.Grow(len(primary)*4/3 + len(secondary)*4/3 + 2048)

	sb.WriteString("<!--")
	sb.WriteString(boundary)
	sb.WriteByte('\n')
	sb.WriteString(codec.EncodeSection(codec.SectionPrimary, primary))
	if len(secondary) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(codec.EncodeSection(codec.SectionSecondary, secondary))
	}
	sb.WriteByte('\n')
	sb.WriteString(boundary)
	sb.WriteString("-->\n\n")

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg"
     width="%d" height="%d">

  <title>Polyglot Video Container</title>
  <desc>Video hidden in SVG comments</desc>

  <rect width="100%%" height="100%%" fill="#2a2a2a"/>
  <text x="50%%" y="40%%" fill="#00ff00" font-size="24" text-anchor="middle">Polyglot SVG Container</text>
  <text x="50%%" y="50%%" fill="#00ff00" font-size="14" text-anchor="middle">Video: %dx%d @ %.1f FPS</text>
  <text x="50%%" y="60%%" fill="#ffff00" font-size="12" text-anchor="middle">Payload rides in comments; open in a text editor to see it</text>
</svg>

`, width, height, width, height, meta.FPS)

	sb.WriteString("<!--")
	sb.WriteString(boundary)
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Summary: SVG Polyglot Container\n- Primary payload: %d bytes\n", len(primary))
	if len(secondary) > 0 {
		fmt.Fprintf(&sb, "- Secondary payload: %d bytes\n", len(secondary))
	}
	fmt.Fprintf(&sb, "- Total embedded: %d bytes\n", len(primary)+len(secondary))
	sb.WriteString(boundary)
	sb.WriteString("-->\n")

	return sb.String(), nil
}
