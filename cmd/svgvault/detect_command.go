package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svgvault/internal/sniff"
)

func newDetectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "detect <container.svg>",
		Short:       "Identify which container format an SVG document carries",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read container: %w", err)
			}

			tag, ok := sniff.Detect(string(raw))
			if asJSON {
				result := map[string]any{"detected": ok}
				if ok {
					result["format"] = tag.String()
					result["reversible"] = tag.Reversible()
				}
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "No known container format detected")
				return nil
			}
			note := ""
			if !tag.Reversible() {
				note = " (lossy; cannot be extracted)"
			}
			fmt.Fprintf(out, "%s%s\n", displayName(tag), note)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")
	return cmd
}
