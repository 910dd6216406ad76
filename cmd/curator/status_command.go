package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"curator/internal/engine"
	"curator/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show directory health and sorting statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			checks := preflight.RunAll(cfg)

			logger, err := ctx.newLogger(cfg, true)
			if err != nil {
				return err
			}
			eng, store, err := ctx.newEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			report := eng.GetStatistics()

			counts, err := store.CountsByStatus(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeIndentedJSON(cmd.OutOrStdout(), struct {
					Checks  []preflight.Result `json:"checks"`
					Report  engine.Report      `json:"report"`
					History map[string]int64   `json:"history"`
				}{checks, report, counts})
			}

			out := cmd.OutOrStdout()

			checkRows := make([][]string, 0, len(checks))
			for _, check := range checks {
				state := "FAIL"
				if check.Passed {
					state = "OK"
				}
				checkRows = append(checkRows, []string{check.Name, state, check.Detail})
			}
			writeTable(out, []string{"Check", "State", "Detail"}, checkRows)

			categories := make([]string, 0, len(report.CategoryCounts))
			for name := range report.CategoryCounts {
				categories = append(categories, name)
			}
			sort.Strings(categories)
			categoryRows := make([][]string, 0, len(categories))
			for _, name := range categories {
				categoryRows = append(categoryRows, []string{name, strconv.FormatInt(report.CategoryCounts[name], 10)})
			}
			if len(categoryRows) > 0 {
				writeTable(out, []string{"Category", "Files"}, categoryRows, 1)
			}

			historyRows := make([][]string, 0, len(counts))
			statuses := make([]string, 0, len(counts))
			for status := range counts {
				statuses = append(statuses, status)
			}
			sort.Strings(statuses)
			for _, status := range statuses {
				historyRows = append(historyRows, []string{status, strconv.FormatInt(counts[status], 10)})
			}
			if len(historyRows) > 0 {
				writeTable(out, []string{"Outcome", "Total"}, historyRows, 1)
			}

			fmt.Fprintf(out, "Quarantined files: %d, digest cache entries: %d\n",
				report.QuarantineFileCount, report.CacheSize)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}
