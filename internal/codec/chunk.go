package codec

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// DefaultChunkSize bounds each envelope's payload so the rendered symbol
// stays within comfortable QR capacity.
const DefaultChunkSize = 1024

// Envelope is one self-describing piece of a chunked payload. Envelopes are
// independent records: they may be rendered, stored, and recovered in any
// order, then reassembled by index.
type Envelope struct {
	Index    int    `json:"idx"`
	Total    int    `json:"total"`
	Checksum string `json:"checksum"`
	Data     string `json:"data"`
}

// Chunker splits payloads into checksummed envelopes and joins complete
// envelope sets back into the original bytes.
type Chunker struct {
	size int
}

// NewChunker returns a chunker producing envelopes of at most size payload
// bytes. Non-positive sizes fall back to DefaultChunkSize.
func NewChunker(size int) Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return Chunker{size: size}
}

// Size returns the configured maximum chunk payload size.
func (c Chunker) Size() int { return c.size }

// Split cuts payload into consecutive chunks and wraps each in an envelope.
// An empty payload yields no envelopes.
func (c Chunker) Split(payload []byte) []Envelope {
	if len(payload) == 0 {
		return nil
	}
	total := (len(payload) + c.size - 1) / c.size
	envelopes := make([]Envelope, 0, total)
	for i := 0; i < total; i++ {
		start := i * c.size
		end := start + c.size
		if end > len(payload) {
			end = len(payload)
		}
		chunk := payload[start:end]
		envelopes = append(envelopes, Envelope{
			Index:    i,
			Total:    total,
			Checksum: chunkDigest(chunk),
			Data:     base64.StdEncoding.EncodeToString(chunk),
		})
	}
	return envelopes
}

// Join reassembles the payload from a complete envelope set. The set may
// arrive in any order; Join sorts by index. It fails when indices are
// missing or duplicated, when envelopes disagree on the total, or when a
// chunk's content no longer matches its checksum.
func Join(envelopes []Envelope) ([]byte, error) {
	if len(envelopes) == 0 {
		return nil, nil
	}

	total := envelopes[0].Total
	for _, env := range envelopes {
		if env.Total != total {
			return nil, Wrap(ErrDecoding, "qrcode", "join",
				fmt.Sprintf("envelope %d declares total %d, expected %d", env.Index, env.Total, total), nil)
		}
	}
	if total != len(envelopes) {
		if missing, duplicate := coverage(envelopes, total); len(missing) > 0 || len(duplicate) > 0 {
			return nil, coverageError(missing, duplicate)
		}
		return nil, Wrap(ErrDecoding, "qrcode", "join",
			fmt.Sprintf("%d envelopes for declared total %d", len(envelopes), total), nil)
	}
	if missing, duplicate := coverage(envelopes, total); len(missing) > 0 || len(duplicate) > 0 {
		return nil, coverageError(missing, duplicate)
	}

	ordered := make([]Envelope, len(envelopes))
	copy(ordered, envelopes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	var out []byte
	for _, env := range ordered {
		chunk, err := base64.StdEncoding.DecodeString(env.Data)
		if err != nil {
			return nil, Wrap(ErrDecoding, "qrcode", "join",
				fmt.Sprintf("chunk %d is not valid base64", env.Index), err)
		}
		if digest := chunkDigest(chunk); digest != env.Checksum {
			return nil, Wrap(ErrDecoding, "qrcode", "join",
				fmt.Sprintf("chunk %d corrupted: checksum %s, expected %s", env.Index, digest, env.Checksum), nil)
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func coverage(envelopes []Envelope, total int) (missing, duplicate []int) {
	seen := make(map[int]int, len(envelopes))
	for _, env := range envelopes {
		seen[env.Index]++
	}
	for i := 0; i < total; i++ {
		switch seen[i] {
		case 0:
			missing = append(missing, i)
		case 1:
		default:
			duplicate = append(duplicate, i)
		}
	}
	for idx := range seen {
		if idx < 0 || idx >= total {
			duplicate = append(duplicate, idx)
		}
	}
	sort.Ints(duplicate)
	return missing, duplicate
}

func coverageError(missing, duplicate []int) error {
	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing indices %v", missing))
	}
	if len(duplicate) > 0 {
		parts = append(parts, fmt.Sprintf("duplicate or out-of-range indices %v", duplicate))
	}
	return Wrap(ErrDecoding, "qrcode", "join", strings.Join(parts, ", "), nil)
}

// chunkDigest is the 8-hex-char per-chunk content digest. It detects
// corruption of a single chunk; payload-wide integrity uses SHA-256 at the
// container level.
func chunkDigest(chunk []byte) string {
	sum := md5.Sum(chunk)
	return hex.EncodeToString(sum[:])[:8]
}
