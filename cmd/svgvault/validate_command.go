package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svgvault/internal/integrity"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var originalPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <container.svg>",
		Short: "Check that a container's payload survived embedding intact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read container: %w", err)
			}

			var original []byte
			if originalPath != "" {
				original, err = os.ReadFile(originalPath)
				if err != nil {
					return fmt.Errorf("read original: %w", err)
				}
			}

			validator := integrity.Validator{}
			report := validator.Validate(string(raw), original)
			report.Path = args[0]

			logger.Info("validation finished",
				"container", args[0], "format", report.FormatDetected,
				"valid", report.DataIntegrityValid, "errors", len(report.Errors))

			if asJSON {
				return writeJSON(cmd, report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReportTable(report))
			printNotes(cmd, report)
			if !report.DataIntegrityValid {
				return fmt.Errorf("validation failed for %s", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&originalPath, "original", "", "Original payload to compare against")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full report as JSON")
	return cmd
}

func renderReportTable(report integrity.Report) string {
	format := report.FormatDetected
	if format == "" {
		format = "none"
	}
	rows := [][]string{
		{"Format", format},
		{"Extraction", yesNo(report.ExtractionSuccessful)},
		{"Size match", yesNo(report.SizeMatch)},
		{"Checksum match", yesNo(report.ChecksumMatch)},
		{"Integrity", yesNo(report.DataIntegrityValid)},
		{"Extracted size", formatBytes(report.ExtractedSize)},
	}
	if report.OriginalSize > 0 {
		rows = append(rows, []string{"Original size", formatBytes(report.OriginalSize)})
	}
	return renderTable([]string{"Check", "Result"}, rows, []columnAlignment{alignLeft, alignLeft})
}

func printNotes(cmd *cobra.Command, report integrity.Report) {
	out := cmd.OutOrStdout()
	for _, warning := range report.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	for _, message := range report.Errors {
		fmt.Fprintf(out, "error: %s\n", message)
	}
}
