package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"svgvault/internal/codec"
	"svgvault/internal/container"
	"svgvault/internal/sniff"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var section string

	cmd := &cobra.Command{
		Use:   "extract <container.svg>",
		Short: "Recover the embedded payload from an SVG container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger()

			containerPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve container path: %w", err)
			}
			raw, err := os.ReadFile(containerPath)
			if err != nil {
				return fmt.Errorf("read container: %w", err)
			}
			document := string(raw)

			tag, ok := sniff.Detect(document)
			if !ok {
				return fmt.Errorf("no known container format detected in %s", containerPath)
			}

			payload, err := extractPayload(tag, document, section)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				stem := strings.TrimSuffix(filepath.Base(containerPath), filepath.Ext(containerPath))
				ext := ".mp4"
				if strings.EqualFold(section, codec.SectionSecondary) {
					ext = ".pdf"
				}
				target = stem + ext
			}
			if err := os.WriteFile(target, payload, 0o644); err != nil {
				return fmt.Errorf("write payload: %w", err)
			}

			logger.Info("payload extracted",
				"container", containerPath, "format", tag.String(),
				"target", target, "bytes", len(payload))
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %s (%s) to %s\n",
				formatBytes(len(payload)), displayName(tag), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (defaults to the container stem)")
	cmd.Flags().StringVar(&section, "section", codec.SectionPrimary,
		fmt.Sprintf("Polyglot section to extract (%s|%s)", codec.SectionPrimary, codec.SectionSecondary))
	return cmd
}

func extractPayload(tag codec.Tag, document, section string) ([]byte, error) {
	switch tag {
	case codec.TagPolyglot:
		payload, err := codec.DecodeSection(document, section)
		if err != nil {
			return nil, fmt.Errorf("decode polyglot section %s: %w", section, err)
		}
		return payload, nil
	case codec.TagAscii85:
		payload, err := container.ExtractAscii85Payload(document)
		if err != nil {
			return nil, fmt.Errorf("decode ascii85 container: %w", err)
		}
		return payload, nil
	case codec.TagQRChunk:
		return nil, fmt.Errorf("chunked containers need a symbol scanner; none is configured")
	case codec.TagVector:
		return nil, fmt.Errorf("vector containers are lossy and cannot be extracted")
	default:
		return nil, fmt.Errorf("unsupported format %q", tag)
	}
}
