package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"curator/internal/config"
	"curator/internal/engine"
	"curator/internal/ledger"
	"curator/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) flagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.flagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the configured logger. Log output goes to stderr plus the
// log directory so stdout stays clean for tables and JSON.
func (c *commandContext) newLogger(cfg *config.Config, quiet bool) (*slog.Logger, error) {
	outputs := []string{filepath.Join(cfg.Paths.LogDir, "curator.log")}
	if !quiet {
		outputs = append(outputs, "stderr")
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return logger, nil
}

// newEngine assembles an engine with its ledger attached. The caller owns
// the returned store and must close it.
func (c *commandContext) newEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, *ledger.Store, error) {
	store, err := ledger.Open(cfg.Paths.LogDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}
	eng, err := engine.New(cfg, logger, engine.WithLedger(store))
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return eng, store, nil
}
