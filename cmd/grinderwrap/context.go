package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/deixis/grinderwrap/internal/config"
	"github.com/deixis/grinderwrap/internal/logging"
	"github.com/deixis/grinderwrap/internal/workflow"
)

// commandContext carries persistent flag values and the lazily loaded
// config shared by subcommands.
type commandContext struct {
	configFlag *string
	verbose    *bool

	cfg *config.Config
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{configFlag: configFlag, verbose: verbose}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	workspace, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	loaded, err := config.Load(workspace, *c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	c.cfg = loaded.Config
	return c.cfg, nil
}

func (c *commandContext) logger(stderr io.Writer) *slog.Logger {
	if *c.verbose {
		return logging.New(stderr, slog.LevelDebug)
	}
	return logging.FromEnv()
}

func (c *commandContext) engine(cmd *cobra.Command) (*workflow.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return workflow.New(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), c.logger(cmd.ErrOrStderr())), nil
}
