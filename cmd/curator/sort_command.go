package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"curator/internal/engine"
	"curator/internal/preflight"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort everything currently in the source directory once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if results := preflight.RunAll(cfg); !preflight.AllPassed(results) {
				return preflightFailure(results)
			}

			logger, err := ctx.newLogger(cfg, jsonOutput)
			if err != nil {
				return err
			}
			eng, store, err := ctx.newEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := eng.SortDirectory(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeIndentedJSON(cmd.OutOrStdout(), summary)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(summary.Outcomes))
			for _, outcome := range summary.Outcomes {
				rows = append(rows, []string{
					outcome.Source,
					outcome.Status,
					categoryLabel(outcome),
					outcomeDetail(outcome),
				})
			}
			if len(rows) > 0 {
				writeTable(out, []string{"Source", "Status", "Category", "Destination / Detail"}, rows)
			}
			fmt.Fprintf(out, "Processed %d: %d moved, %d duplicates, %d quarantined, %d skipped, %d errors (%s)\n",
				summary.Processed, summary.Moved, summary.Duplicates,
				summary.Quarantined, summary.Skipped, summary.Errors,
				summary.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the summary as JSON")
	return cmd
}

func categoryLabel(outcome engine.Outcome) string {
	if outcome.Category == "" {
		return "-"
	}
	if outcome.Subcategory == "" {
		return outcome.Category
	}
	return outcome.Category + "/" + outcome.Subcategory
}

func outcomeDetail(outcome engine.Outcome) string {
	if outcome.Err != nil {
		return outcome.Err.Error()
	}
	if outcome.Destination != "" {
		return outcome.Destination
	}
	return outcome.Detail
}

func preflightFailure(results []preflight.Result) error {
	for _, r := range results {
		if !r.Passed {
			return fmt.Errorf("preflight failed: %s: %s", r.Name, r.Detail)
		}
	}
	return fmt.Errorf("preflight failed")
}
