package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newQuarantineCommand(ctx *commandContext) *cobra.Command {
	quarantineCmd := &cobra.Command{
		Use:   "quarantine",
		Short: "Inspect and manage quarantined files",
	}

	quarantineCmd.AddCommand(newQuarantineListCommand(ctx))
	quarantineCmd.AddCommand(newQuarantineRestoreCommand(ctx))

	return quarantineCmd
}

func newQuarantineListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quarantined files and why they were isolated",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg, true)
			if err != nil {
				return err
			}
			eng, store, err := ctx.newEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := eng.QuarantineEntries()
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeIndentedJSON(cmd.OutOrStdout(), entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Quarantine is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Timestamp.Format("2006-01-02 15:04:05"),
					filepath.Base(entry.QuarantineFile),
					entry.OriginalFile,
					entry.Reason,
				})
			}
			writeTable(out, []string{"Quarantined At", "File", "Original Path", "Reason"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit entries as JSON")
	return cmd
}

func newQuarantineRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <filename>",
		Short: "Move a quarantined file back to the source directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg, false)
			if err != nil {
				return err
			}
			eng, store, err := ctx.newEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			restored, err := eng.RestoreFromQuarantine(filepath.Base(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored to %s\n", restored)
			return nil
		},
	}
}
