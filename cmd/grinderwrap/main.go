// Command grinderwrap exposes the Grinder adapters as subcommands with
// dry-run and JSON reporting on top of the plain adapter behavior.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("grinderwrap: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			stop()
			os.Exit(ee.code)
		}
		if !errors.Is(err, context.Canceled) {
			log.Print(err)
		}
		stop()
		os.Exit(1)
	}
}

// exitError carries a process exit status for failures already reported
// on stderr.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return "exit status " + strconv.Itoa(e.code)
}
