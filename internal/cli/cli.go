// Package cli holds the error-exit convention shared by the adapter
// binaries: one human-readable message on stderr, then a non-zero exit.
package cli

import (
	"fmt"
	"io"
	"os"
)

// Exit codes used by the binaries.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Exiter reports messages and terminates the process. Tests swap in a
// recording Exiter so error branches can be exercised without exiting.
type Exiter struct {
	Stderr io.Writer
	Exit   func(code int)
}

// Default writes to os.Stderr and calls os.Exit.
var Default = &Exiter{Stderr: os.Stderr, Exit: os.Exit}

// Fatal writes msg and a trailing newline to stderr and exits with
// ExitFailure.
func (e *Exiter) Fatal(msg string) {
	e.Report(msg + "\n")
	e.Exit(ExitFailure)
}

// Fatalf formats according to format and calls Fatal.
func (e *Exiter) Fatalf(format string, args ...any) {
	e.Fatal(fmt.Sprintf(format, args...))
}

// Report writes msg verbatim to stderr.
func (e *Exiter) Report(msg string) {
	fmt.Fprint(e.Stderr, msg)
}
