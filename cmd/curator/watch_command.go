package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"curator/internal/logging"
	"curator/internal/preflight"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var oneShot bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor the source directory and sort files as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if results := preflight.RunAll(cfg); !preflight.AllPassed(results) {
				return preflightFailure(results)
			}

			lockPath := filepath.Join(cfg.Paths.LogDir, "curator.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another curator instance is already watching this configuration")
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := ctx.newLogger(cfg, false)
			if err != nil {
				return err
			}
			eng, store, err := ctx.newEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Drain the backlog before watching so pre-existing files are
			// not stuck waiting for an event that never comes.
			summary, err := eng.SortDirectory(runCtx)
			if err != nil {
				return err
			}
			if summary.Processed > 0 {
				logger.Info("backlog drained",
					logging.Int("processed", summary.Processed),
					logging.Int("errors", summary.Errors))
			}
			if oneShot {
				return nil
			}

			if err := eng.StartMonitoring(runCtx); err != nil {
				return err
			}
			<-runCtx.Done()
			eng.StopMonitoring()
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneShot, "once", false, "Drain the backlog and exit instead of watching")
	return cmd
}
