package container

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"svgvault/internal/codec"
	"svgvault/internal/media"
)

// ChunkMetadata is the document-level record for a chunked container. The
// checksum is the SHA-256 of the whole payload; per-chunk digests live inside
// each envelope.
type ChunkMetadata struct {
	Format    string `json:"format"`
	Chunks    int    `json:"chunks"`
	ChunkSize int    `json:"chunk_size"`
	TotalSize int    `json:"total_size"`
	Checksum  string `json:"checksum"`
}

const chunkFormatName = "qr_memvid"

// BuildChunkDocument splits payload into envelopes and tiles one symbol per
// envelope across a grid. When renderer is nil each tile is a labeled
// placeholder rect: the document remains structurally complete and
// detectable, but extraction then depends on re-rendering elsewhere.
func BuildChunkDocument(chunker codec.Chunker, meta media.Metadata, payload []byte, renderer media.SymbolRenderer) (string, error) {
	envelopes := chunker.Split(payload)
	width, height := meta.DisplaySize()

	tile := min(width, height) / 2
	if tile <= 0 {
		tile = 240
	}
	cols := width / tile
	if cols < 1 {
		cols = 1
	}

	sum := sha256.Sum256(payload)
	metaRecord := ChunkMetadata{
		Format:    chunkFormatName,
		Chunks:    len(envelopes),
		ChunkSize: chunker.Size(),
		TotalSize: len(payload),
		Checksum:  hex.EncodeToString(sum[:]),
	}
	metaJSON, err := json.MarshalIndent(metaRecord, "", "  ")
	if err != nil {
		return "", codec.Wrap(codec.ErrEncoding, "qrcode", "build", "marshal metadata", err)
	}

	var sb strings.Builder
	sb.Grow(len(payload)*2 + 4096)
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg"
     xmlns:xlink="http://www.w3.org/1999/xlink"
     width="%d" height="%d" viewBox="0 0 %d %d">
`, width, height, width, height)
	fmt.Fprintf(&sb, "  <metadata>%s</metadata>\n", metaJSON)

	for _, env := range envelopes {
		x := (env.Index % cols) * tile
		y := (env.Index / cols) * tile
		opacity := "0.1"
		if env.Index == 0 {
			opacity = "1"
		}
		fmt.Fprintf(&sb, `  <g id="qr-frame-%d" transform="translate(%d,%d)" opacity=%q>`+"\n",
			env.Index, x, y, opacity)

		if renderer != nil {
			serialized, marshalErr := json.Marshal(env)
			if marshalErr != nil {
				return "", codec.Wrap(codec.ErrEncoding, "qrcode", "build",
					fmt.Sprintf("marshal envelope %d", env.Index), marshalErr)
			}
			image, renderErr := renderer.RenderSymbol(serialized)
			if renderErr != nil {
				return "", codec.Wrap(codec.ErrEncoding, "qrcode", "build",
					fmt.Sprintf("render symbol %d", env.Index), renderErr)
			}
			fmt.Fprintf(&sb, `    <image x="0" y="0" width="%d" height="%d" href="data:image/png;base64,%s"/>`+"\n",
				tile, tile, base64.StdEncoding.EncodeToString(image))
		} else {
			fmt.Fprintf(&sb, `    <rect x="0" y="0" width="%d" height="%d" fill="#ddd" stroke="#666"/>`+"\n", tile, tile)
			fmt.Fprintf(&sb, `    <text x="%d" y="%d" font-size="12" text-anchor="middle">chunk %d</text>`+"\n",
				tile/2, tile/2, env.Index)
		}
		sb.WriteString("  </g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// ParseChunkMetadata reads the document-level metadata record from a chunked
// container.
func ParseChunkMetadata(document string) (ChunkMetadata, error) {
	start := strings.Index(document, "<metadata>")
	if start < 0 {
		return ChunkMetadata{}, codec.Wrap(codec.ErrDecoding, "qrcode", "metadata", "metadata element not found", nil)
	}
	end := strings.Index(document[start:], "</metadata>")
	if end < 0 {
		return ChunkMetadata{}, codec.Wrap(codec.ErrDecoding, "qrcode", "metadata", "metadata element not closed", nil)
	}
	body := document[start+len("<metadata>") : start+end]

	var record ChunkMetadata
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		return ChunkMetadata{}, codec.Wrap(codec.ErrDecoding, "qrcode", "metadata", "metadata is not valid JSON", err)
	}
	return record, nil
}

// ExtractChunkPayload scans every tiled symbol, reassembles the envelopes,
// and verifies the document-level checksum. Scanning is an external
// collaborator concern: a nil scanner fails immediately.
func ExtractChunkPayload(document string, scanner media.SymbolScanner) ([]byte, error) {
	if scanner == nil {
		return nil, codec.Wrap(codec.ErrDecoding, "qrcode", "extract", "symbol scanner not configured", nil)
	}

	images, err := tileImages(document)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, codec.Wrap(codec.ErrDecoding, "qrcode", "extract", "no symbol tiles found", nil)
	}

	envelopes := make([]codec.Envelope, 0, len(images))
	for i, image := range images {
		serialized, scanErr := scanner.ScanSymbol(image)
		if scanErr != nil {
			return nil, codec.Wrap(codec.ErrDecoding, "qrcode", "extract",
				fmt.Sprintf("scan tile %d", i), scanErr)
		}
		var env codec.Envelope
		if err := json.Unmarshal(serialized, &env); err != nil {
			return nil, codec.Wrap(codec.ErrDecoding, "qrcode", "extract",
				fmt.Sprintf("tile %d does not carry an envelope", i), err)
		}
		envelopes = append(envelopes, env)
	}

	payload, err := codec.Join(envelopes)
	if err != nil {
		return nil, err
	}

	if record, metaErr := ParseChunkMetadata(document); metaErr == nil && record.Checksum != "" {
		sum := sha256.Sum256(payload)
		if hex.EncodeToString(sum[:]) != record.Checksum {
			return nil, codec.Wrap(codec.ErrDecoding, "qrcode", "extract", "payload checksum mismatch", nil)
		}
	}
	return payload, nil
}

// tileImages pulls the base64 PNG data out of every qr-frame image tile in
// document order.
func tileImages(document string) ([][]byte, error) {
	const marker = `href="data:image/png;base64,`
	var images [][]byte
	rest := document
	for {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			break
		}
		rest = rest[idx+len(marker):]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			return nil, codec.Wrap(codec.ErrDecoding, "qrcode", "extract", "unterminated image data", nil)
		}
		image, err := base64.StdEncoding.DecodeString(rest[:end])
		if err != nil {
			return nil, codec.Wrap(codec.ErrDecoding, "qrcode", "extract", "tile image is not valid base64", err)
		}
		images = append(images, image)
		rest = rest[end:]
	}
	return images, nil
}
