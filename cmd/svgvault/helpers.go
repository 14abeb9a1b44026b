package main

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"svgvault/internal/codec"
)

var titleCaser = cases.Title(language.English)

// displayName renders a format tag for humans. Tags whose capitalization
// isn't plain title case get explicit spellings.
func displayName(tag codec.Tag) string {
	switch tag {
	case codec.TagAscii85:
		return "ASCII85"
	case codec.TagQRChunk:
		return "QR Chunk"
	default:
		return titleCaser.String(tag.String())
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatBytes(size int) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := unit, 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
