package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"svgvault/internal/codec"
	"svgvault/internal/container"
	"svgvault/internal/media"
)

var convertMethods = []string{"polyglot", "ascii85", "qr", "all"}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var method string
	var outputDir string
	var pdfPath string
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "convert <video>",
		Short: "Embed a video file into one or more SVG containers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			videoPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve video path: %w", err)
			}
			payload, err := os.ReadFile(videoPath)
			if err != nil {
				return fmt.Errorf("read video: %w", err)
			}
			if len(payload) == 0 {
				return fmt.Errorf("video file is empty: %s", videoPath)
			}

			methods, err := resolveMethods(method)
			if err != nil {
				return err
			}

			var secondary []byte
			if pdfPath != "" {
				secondary, err = os.ReadFile(pdfPath)
				if err != nil {
					return fmt.Errorf("read pdf attachment: %w", err)
				}
			}

			dir := strings.TrimSpace(outputDir)
			if dir == "" {
				dir = cfg.Paths.OutputDir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			size := chunkSize
			if size <= 0 {
				size = cfg.Encoding.ChunkSize
			}

			prober := media.FFProbe{Binary: cfg.Encoding.FFProbeBinary}
			meta, probeErr := prober.Probe(cmd.Context(), videoPath)
			if probeErr != nil {
				logger.Warn("probe failed; using display defaults",
					"video", videoPath, "error", probeErr)
				meta = media.Metadata{}
			}

			stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
			out := cmd.OutOrStdout()
			sizes := make([]int, 0, len(methods))
			for _, m := range methods {
				document, buildErr := buildDocument(m, meta, payload, secondary, size)
				if buildErr != nil {
					return fmt.Errorf("convert with %s: %w", m, buildErr)
				}
				target := filepath.Join(dir, fmt.Sprintf("%s_%s.svg", stem, m))
				if writeErr := os.WriteFile(target, []byte(document), 0o644); writeErr != nil {
					return fmt.Errorf("write container: %w", writeErr)
				}
				logger.Info("container written",
					"method", m, "target", target,
					"payload_bytes", len(payload), "container_bytes", len(document))
				fmt.Fprintf(out, "%s: %s (%s payload, %s container)\n",
					m, target, formatBytes(len(payload)), formatBytes(len(document)))
				sizes = append(sizes, len(document))
			}
			if len(methods) > 1 {
				fmt.Fprintln(out, renderSizeComparison(methods, sizes, len(payload)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "all",
		fmt.Sprintf("Conversion method (%s)", strings.Join(convertMethods, "|")))
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to configured output_dir)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "PDF file to attach as a secondary polyglot section")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Chunk payload size in bytes for the qr method")
	return cmd
}

func resolveMethods(method string) ([]string, error) {
	m := strings.ToLower(strings.TrimSpace(method))
	switch m {
	case "all":
		return []string{"polyglot", "ascii85", "qr"}, nil
	case "polyglot", "ascii85", "qr":
		return []string{m}, nil
	default:
		return nil, fmt.Errorf("unknown method %q (expected %s)", method, strings.Join(convertMethods, ", "))
	}
}

// renderSizeComparison tables every produced container against the payload
// size so the methods can be compared at a glance.
func renderSizeComparison(methods []string, sizes []int, payloadSize int) string {
	rows := make([][]string, 0, len(methods))
	for i, m := range methods {
		overhead := 0.0
		if payloadSize > 0 {
			overhead = float64(sizes[i]-payloadSize) / float64(payloadSize) * 100
		}
		rows = append(rows, []string{
			m,
			formatBytes(sizes[i]),
			fmt.Sprintf("%+.1f%%", overhead),
		})
	}
	return renderTable(
		[]string{"Method", "Container", "Overhead"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}

func buildDocument(method string, meta media.Metadata, payload, secondary []byte, chunkSize int) (string, error) {
	switch method {
	case "polyglot":
		return container.BuildPolyglotDocument(codec.NewPolyglot(nil), meta, payload, secondary)
	case "ascii85":
		return container.BuildAscii85Document(meta, payload)
	case "qr":
		return container.BuildChunkDocument(codec.NewChunker(chunkSize), meta, payload, nil)
	default:
		return "", fmt.Errorf("unknown method %q", method)
	}
}
