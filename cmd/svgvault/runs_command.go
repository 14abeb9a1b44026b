package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"svgvault/internal/report"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded batch runs, or the per-file reports of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := report.Open(cfg.Paths.ReportDB)
			if err != nil {
				return fmt.Errorf("open report store: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				reports, err := store.RunReports(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("load run reports: %w", err)
				}
				if len(reports) == 0 {
					return fmt.Errorf("no reports recorded for run %s", args[0])
				}
				if asJSON {
					return writeJSON(cmd, reports)
				}
				rows := make([][]string, 0, len(reports))
				for _, rep := range reports {
					format := rep.FormatDetected
					if format == "" {
						format = "none"
					}
					rows = append(rows, []string{
						rep.Path, format, yesNo(rep.DataIntegrityValid), formatBytes(rep.ExtractedSize),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"File", "Format", "Valid", "Size"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if asJSON {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No batch runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format(time.RFC3339),
					run.ContainersDir,
					fmt.Sprintf("%d", run.Totals.Processed),
					fmt.Sprintf("%d", run.Totals.Valid),
					fmt.Sprintf("%d", run.Totals.Errored),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Started", "Containers", "Processed", "Valid", "Errored"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	return cmd
}
