// Package workflow composes the runner and the classifier into the two
// operations the binaries expose, recording each as a report.RunResult.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/deixis/grinderwrap/internal/classify"
	"github.com/deixis/grinderwrap/internal/config"
	"github.com/deixis/grinderwrap/internal/logging"
	"github.com/deixis/grinderwrap/internal/report"
	"github.com/deixis/grinderwrap/internal/runner"
)

// ErrEmptyCommand is returned by Run when there is nothing to execute.
var ErrEmptyCommand = errors.New("empty command")

// CommandRunner executes command lines.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string) (*runner.Result, error)
}

// Engine holds shared dependencies for all workflow operations.
type Engine struct {
	Config *config.Config
	Runner CommandRunner
	Stdout io.Writer // command echo and "moving" lines
	Logger *slog.Logger
}

// New builds an Engine whose runner is configured from cfg and inherits
// the given stdio.
func New(cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		Config: cfg,
		Runner: &runner.Runner{
			Shell:          cfg.Shell(),
			Timeout:        cfg.Timeout(),
			MaxStderr:      cfg.MaxStderrBytes(),
			FailOnOverflow: cfg.Overflow() == config.OverflowFail,
			Stdin:          stdin,
			Stdout:         stdout,
		},
		Stdout: stdout,
		Logger: logger,
	}
}

func (e *Engine) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.NewNop()
	}
	return e.Logger
}

// Run echoes the joined command line to Stdout and executes it. A failed
// child, including one that could not be started, is recorded in the
// returned result rather than returned as an error.
func (e *Engine) Run(ctx context.Context, argv []string) (*report.RunResult, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	line := runner.CommandLine(argv)
	fmt.Fprintln(e.stdout(), line)

	log := e.logger()
	log.Debug("running", "command", line)

	res, err := e.Runner.Run(ctx, argv)

	rr := &report.RunResult{Kind: report.Run, Command: line}
	if res != nil {
		rr.ID = res.RunID
		rr.ExitCode = res.ExitCode
		rr.TimedOut = res.TimedOut
		rr.Truncated = res.Truncated
		rr.StderrBytes = res.StderrBytes
		if res.Failed() {
			rr.Stderr = string(res.Stderr)
		}
	}
	if rr.ID == "" {
		rr.ID = uuid.New().String()
	}

	switch {
	case errors.Is(err, runner.ErrStderrLimit):
		// The runner keeps exactly the capped prefix.
		var limit int
		if res != nil {
			limit = len(res.Stderr)
		}
		rr.Error = fmt.Sprintf("stderr exceeded %d bytes", limit)
	case err != nil:
		rr.ExitCode = -1
		rr.Error = err.Error()
	}

	log.Debug("finished", "run_id", rr.ID, "exit_code", rr.ExitCode,
		"stderr_bytes", rr.StderrBytes, "truncated", rr.Truncated, "error", rr.Error)
	return rr, nil
}

// Classify renames, or with dryRun only plans, the outputs of run id in
// dir. The first fatal error is returned together with a result listing
// the moves made before it.
func (e *Engine) Classify(dir, id string, dryRun bool) (*report.RunResult, error) {
	c := &classify.Classifier{
		Dir:    dir,
		ID:     id,
		DryRun: dryRun,
		Out:    e.stdout(),
		Logger: e.logger(),
	}

	rr := &report.RunResult{
		ID:       uuid.New().String(),
		Kind:     report.Classify,
		Dir:      dir,
		OutputID: id,
		DryRun:   dryRun,
	}

	res, err := c.Run()
	if res != nil {
		rr.Moves = res.Moves
		rr.Skipped = res.Skipped
	}
	if err != nil {
		rr.Error = err.Error()
		e.logger().Debug("classify halted", "dir", dir, "moved", len(rr.Moves), "error", err)
		return rr, err
	}
	return rr, nil
}
