// Command stderr-wrapper runs a command line through the shell and reports
// its standard error only if it fails.
//
// Usage:
//
//	stderr-wrapper <program> [args...]
//
// All arguments are joined with single spaces, echoed to stdout and handed
// to the shell. On a non-zero exit the wrapper writes "Error:\n" followed by
// the captured stderr and exits 1.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/deixis/grinderwrap/internal/cli"
	"github.com/deixis/grinderwrap/internal/config"
	"github.com/deixis/grinderwrap/internal/logging"
	"github.com/deixis/grinderwrap/internal/workflow"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run(ctx, os.Args[1:], os.Stdin, os.Stdout, cli.Default)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, ex *cli.Exiter) {
	if len(args) == 0 {
		return
	}

	workspace, err := os.Getwd()
	if err != nil {
		ex.Fatalf("Error:\ndetermining working directory: %v", err)
		return
	}
	loaded, err := config.Load(workspace, "")
	if err != nil {
		ex.Fatalf("Error:\nloading config: %v", err)
		return
	}

	eng := workflow.New(loaded.Config, stdin, stdout, logging.FromEnv())
	rr, err := eng.Run(ctx, args)
	if err != nil {
		ex.Fatalf("Error:\n%v", err)
		return
	}
	if rr.Failed() {
		ex.Report(rr.Failure())
		ex.Exit(cli.ExitFailure)
	}
}
