package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"svgvault/internal/codec"
	"svgvault/internal/container"
	"svgvault/internal/media"
	"svgvault/internal/sniff"
)

// Validator performs extraction-based integrity checks. The zero value is
// usable; Scanner enables full extraction of chunked containers and may stay
// nil.
type Validator struct {
	Scanner media.SymbolScanner
}

// Validate sniffs the container, extracts through the matching codec, and
// compares against original when provided (nil means no original available).
// It always returns a report and never propagates codec errors.
func (v Validator) Validate(document string, original []byte) Report {
	var report Report

	tag, ok := sniff.Detect(document)
	if !ok {
		report.addError("format not detected")
		return report
	}
	report.FormatDetected = tag.String()

	if tag == codec.TagVector {
		report.addError("vector encoding is lossy and irreversible; no decode path exists")
		return report
	}

	extracted, err := v.extract(tag, document)
	if err != nil {
		report.addError(err.Error())
		return report
	}

	report.ExtractionSuccessful = true
	report.ExtractedSize = len(extracted)
	extractedSum := sha256.Sum256(extracted)
	report.ExtractedChecksum = hex.EncodeToString(extractedSum[:])

	if original == nil {
		report.addWarning("no original provided; confidence reduced")
		// Polyglot and ascii85 are lossless by design: a structurally
		// successful decode is the payload.
		report.DataIntegrityValid = tag == codec.TagPolyglot || tag == codec.TagAscii85
		if tag == codec.TagQRChunk {
			report.addWarning("chunk integrity verified against embedded checksums only")
			report.DataIntegrityValid = true
		}
		return report
	}

	report.OriginalSize = len(original)
	originalSum := sha256.Sum256(original)
	report.OriginalChecksum = hex.EncodeToString(originalSum[:])

	report.SizeMatch = report.ExtractedSize == report.OriginalSize
	report.ChecksumMatch = report.ExtractedChecksum == report.OriginalChecksum
	report.DataIntegrityValid = report.SizeMatch && report.ChecksumMatch

	if !report.SizeMatch {
		report.addError(fmt.Sprintf("size mismatch: extracted %d vs original %d bytes",
			report.ExtractedSize, report.OriginalSize))
	}
	if !report.ChecksumMatch {
		report.addError("checksum mismatch: data corruption detected")
	}
	return report
}

func (v Validator) extract(tag codec.Tag, document string) ([]byte, error) {
	switch tag {
	case codec.TagPolyglot:
		return codec.NewPolyglot(nil).Decode(document)
	case codec.TagAscii85:
		return container.ExtractAscii85Payload(document)
	case codec.TagQRChunk:
		return container.ExtractChunkPayload(document, v.Scanner)
	default:
		return nil, codec.Wrap(codec.ErrValidation, tag.String(), "extract", "no extraction path", nil)
	}
}
