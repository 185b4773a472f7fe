// Command grinder-outputs renames the files a Grinder run wrote to
// output_dir so Galaxy collects them as typed multiple-output datasets.
//
// Usage:
//
//	grinder-outputs <output_dir> <output_id>
package main

import (
	"io"
	"os"

	"github.com/deixis/grinderwrap/internal/cli"
	"github.com/deixis/grinderwrap/internal/logging"
	"github.com/deixis/grinderwrap/internal/workflow"
)

const usage = "usage: grinder-outputs <output_dir> <output_id>\n"

func main() {
	run(os.Args[1:], os.Stdout, cli.Default)
}

func run(args []string, stdout io.Writer, ex *cli.Exiter) {
	if len(args) != 2 {
		ex.Report(usage)
		ex.Exit(cli.ExitUsage)
		return
	}

	eng := &workflow.Engine{Stdout: stdout, Logger: logging.FromEnv()}
	rr, err := eng.Classify(args[0], args[1], false)
	if err != nil {
		ex.Report(rr.Failure())
		ex.Exit(cli.ExitFailure)
	}
}
