package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEncoding marks failures to represent a payload in a container format.
	ErrEncoding = errors.New("encoding error")
	// ErrDecoding marks containers that violate the structural contract of
	// their codec: missing markers, corrupt chunks, bad digits.
	ErrDecoding = errors.New("decoding error")
	// ErrValidation marks malformed validation inputs.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes codec context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, format, operation, message string, err error) error {
	detail := buildDetail(format, operation, message)
	if marker == nil {
		marker = ErrDecoding
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(format, operation, message string) string {
	parts := make([]string, 0, 3)
	if format = strings.TrimSpace(format); format != "" {
		parts = append(parts, format)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "codec failure"
	}
	return strings.Join(parts, ": ")
}
