package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sorting outcomes from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg, true)
			if err != nil {
				return err
			}
			_, store, err := ctx.newEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeIndentedJSON(cmd.OutOrStdout(), records)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No history yet")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, record := range records {
				target := record.Destination
				if target == "" {
					target = record.Detail
				}
				rows = append(rows, []string{
					strconv.FormatInt(record.ID, 10),
					record.CreatedAt.Format("2006-01-02 15:04:05"),
					record.SourcePath,
					record.Status,
					target,
				})
			}
			writeTable(out, []string{"ID", "When", "Source", "Status", "Destination / Detail"}, rows, 0)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "Maximum records to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit records as JSON")
	return cmd
}
