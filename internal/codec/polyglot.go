package codec

import (
	"crypto/md5"
	cryptorand "crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	// boundaryPrefix starts every boundary token. The hex suffix comes from a
	// per-encode random draw, so tokens never collide with document content
	// in practice and never repeat across containers.
	boundaryPrefix = "POLYGLOT_BOUNDARY_"
	boundarySeed   = 16

	// SectionPrimary holds the embedded video payload; SectionSecondary holds
	// an optional attachment riding in the same container.
	SectionPrimary   = "MP4"
	SectionSecondary = "PDF"

	// sectionLineWidth re-wraps the base64 stream for human legibility only.
	// Line breaks carry no meaning and are stripped before decoding.
	sectionLineWidth = 80
)

// Polyglot embeds payloads as base64 comment sections delimited by a random
// boundary token. The surrounding document stays valid SVG because generic
// readers skip comments entirely.
type Polyglot struct {
	random io.Reader
}

// NewPolyglot returns a polyglot codec drawing boundary entropy from random.
// Passing nil selects crypto/rand; tests substitute a deterministic reader.
func NewPolyglot(random io.Reader) Polyglot {
	if random == nil {
		random = cryptorand.Reader
	}
	return Polyglot{random: random}
}

func (Polyglot) Tag() Tag { return TagPolyglot }

// NewBoundary draws a fresh boundary token from the codec's random source.
func (p Polyglot) NewBoundary() (string, error) {
	seed := make([]byte, boundarySeed)
	if _, err := io.ReadFull(p.random, seed); err != nil {
		return "", Wrap(ErrEncoding, "polyglot", "new boundary", "read random source", err)
	}
	sum := md5.Sum(seed)
	return boundaryPrefix + hex.EncodeToString(sum[:]), nil
}

// Encode wraps payload as the primary section under a freshly generated
// boundary. Containers carrying a secondary attachment assemble their
// sections with EncodeSection directly.
func (p Polyglot) Encode(payload []byte) (string, error) {
	boundary, err := p.NewBoundary()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<!--")
	sb.WriteString(boundary)
	sb.WriteByte('\n')
	sb.WriteString(EncodeSection(SectionPrimary, payload))
	sb.WriteByte('\n')
	sb.WriteString(boundary)
	sb.WriteString("-->")
	return sb.String(), nil
}

// EncodeSection renders one named payload section:
// <!--{name}_DATA\n{wrapped base64}\n{name}_DATA-->.
func EncodeSection(name string, payload []byte) string {
	encoded := base64.StdEncoding.EncodeToString(payload)
	var sb strings.Builder
	sb.Grow(len(encoded) + len(encoded)/sectionLineWidth + len(name)*2 + 32)
	sb.WriteString("<!--")
	sb.WriteString(name)
	sb.WriteString("_DATA\n")
	for start := 0; start < len(encoded); start += sectionLineWidth {
		end := start + sectionLineWidth
		if end > len(encoded) {
			end = len(encoded)
		}
		if start > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(encoded[start:end])
	}
	// The newline before the end marker is part of the marker's contract and
	// must survive even when the body is empty.
	sb.WriteByte('\n')
	sb.WriteString(name)
	sb.WriteString("_DATA-->")
	return sb.String()
}

// Decode extracts the primary payload section from a full container text.
func (p Polyglot) Decode(text string) ([]byte, error) {
	return DecodeSection(text, SectionPrimary)
}

// DecodeSection locates the named section inside container text and decodes
// its base64 body. The match is positional: first start marker, then the
// first end marker after it.
func DecodeSection(text, name string) ([]byte, error) {
	startMarker := "<!--" + name + "_DATA\n"
	endMarker := "\n" + name + "_DATA-->"

	start := strings.Index(text, startMarker)
	if start < 0 {
		return nil, Wrap(ErrDecoding, "polyglot", "decode",
			fmt.Sprintf("section %s not found", name), nil)
	}
	end := strings.Index(text[start+len(startMarker):], endMarker)
	if end < 0 {
		return nil, Wrap(ErrDecoding, "polyglot", "decode",
			fmt.Sprintf("malformed section %s: end marker missing", name), nil)
	}

	body := text[start+len(startMarker) : start+len(startMarker)+end]
	compact := strings.Join(strings.Fields(body), "")
	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, Wrap(ErrDecoding, "polyglot", "decode",
			fmt.Sprintf("section %s is not valid base64", name), err)
	}
	return decoded, nil
}

// HasSection reports whether container text carries the named section.
func HasSection(text, name string) bool {
	return strings.Contains(text, "<!--"+name+"_DATA\n")
}

// BoundaryPrefix exposes the fixed boundary prefix for structural sniffing.
func BoundaryPrefix() string { return boundaryPrefix }
