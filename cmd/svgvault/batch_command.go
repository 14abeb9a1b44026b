package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"svgvault/internal/integrity"
	"svgvault/internal/report"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var originalsDir string
	var workers int
	var asJSON bool
	var skipStore bool

	cmd := &cobra.Command{
		Use:   "batch <containers-dir>",
		Short: "Validate every SVG container in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			containersDir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve containers directory: %w", err)
			}
			originals := originalsDir
			if originals != "" {
				if originals, err = filepath.Abs(originals); err != nil {
					return fmt.Errorf("resolve originals directory: %w", err)
				}
			}
			count := workers
			if count <= 0 {
				count = cfg.Batch.Workers
			}

			run := report.NewRun(containersDir, originals)
			validator := integrity.Validator{}
			result, err := validator.ValidateDirectory(cmd.Context(), containersDir, originals, count)
			if err != nil {
				return err
			}
			run.FinishedAt = time.Now().UTC()
			run.Totals = result.Totals

			logger.Info("batch validation finished",
				"run", run.ID, "containers", containersDir,
				"processed", result.Totals.Processed,
				"valid", result.Totals.Valid,
				"errored", result.Totals.Errored)

			if !skipStore {
				if err := persistRun(cmd, cfg.Paths.ReportDB, run, result); err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd, struct {
					RunID string `json:"run_id"`
					integrity.BatchResult
				}{RunID: run.ID, BatchResult: result})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderBatchTable(result))
			fmt.Fprintf(out, "Processed %d, valid %d, errored %d (run %s)\n",
				result.Totals.Processed, result.Totals.Valid, result.Totals.Errored, run.ID)
			if result.Totals.Errored > 0 {
				return fmt.Errorf("%d of %d containers failed validation",
					result.Totals.Errored, result.Totals.Processed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&originalsDir, "originals", "", "Directory of original payloads paired by file stem")
	cmd.Flags().IntVar(&workers, "workers", 0, "Validation worker count (defaults to configured batch.workers)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full result as JSON")
	cmd.Flags().BoolVar(&skipStore, "no-store", false, "Skip recording the run in the report database")
	return cmd
}

// persistRun records the batch outcome under a file lock so concurrent batch
// invocations don't interleave writes to the report database.
func persistRun(cmd *cobra.Command, dbPath string, run report.Run, result integrity.BatchResult) error {
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire report lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("report database %s is in use by another process", dbPath)
	}
	defer func() { _ = lock.Unlock() }()

	store, err := report.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer store.Close()
	if err := store.RecordRun(cmd.Context(), run, result); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func renderBatchTable(result integrity.BatchResult) string {
	rows := make([][]string, 0, len(result.Files))
	for _, name := range result.Files {
		rep := result.Reports[name]
		format := rep.FormatDetected
		if format == "" {
			format = "none"
		}
		note := ""
		if len(rep.Errors) > 0 {
			note = rep.Errors[0]
		} else if len(rep.Warnings) > 0 {
			note = rep.Warnings[0]
		}
		rows = append(rows, []string{
			name,
			format,
			yesNo(rep.DataIntegrityValid),
			formatBytes(rep.ExtractedSize),
			note,
		})
	}
	return renderTable(
		[]string{"File", "Format", "Valid", "Size", "Notes"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
