// Package report describes the outcome of a single run or classify
// invocation and renders it for the adapters and the JSON output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/deixis/grinderwrap/internal/classify"
)

// Kind identifies the type of a run.
type Kind string

const (
	// Run is a wrapped command execution.
	Run Kind = "run"
	// Classify is a rename pass over an output directory.
	Classify Kind = "classify"
)

// RunResult holds the structured outcome of one invocation.
type RunResult struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// Run fields.
	Command     string `json:"command,omitempty"`
	ExitCode    int    `json:"exit_code"`
	TimedOut    bool   `json:"timed_out,omitempty"`
	Truncated   bool   `json:"truncated,omitempty"`
	StderrBytes int64  `json:"stderr_bytes,omitempty"`
	Stderr      string `json:"stderr,omitempty"` // kept only when the run failed

	// Classify fields.
	Dir      string          `json:"dir,omitempty"`
	OutputID string          `json:"output_id,omitempty"`
	DryRun   bool            `json:"dry_run,omitempty"`
	Moves    []classify.Move `json:"moves,omitempty"`
	Skipped  []string        `json:"skipped,omitempty"`

	// Error is set when the invocation could not complete: a spawn
	// failure, a stderr limit breach, or a fatal classification error.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the invocation goes down the error path.
func (r *RunResult) Failed() bool {
	return r.Error != "" || r.ExitCode != 0 || r.TimedOut
}

// Failure returns the exact text written to stderr on the error path, or
// "" when the invocation succeeded.
//
// Run failures are "Error:\n" followed by the captured stderr verbatim;
// classify failures are a single "Error: <message>" line.
func (r *RunResult) Failure() string {
	if !r.Failed() {
		return ""
	}
	if r.Kind == Classify {
		return "Error: " + r.Error + "\n"
	}

	if r.Error != "" {
		return "Error:\n" + r.Error
	}
	body := r.Stderr
	if r.Truncated {
		body = appendNote(body, fmt.Sprintf("[stderr truncated at %d of %d bytes]", len(r.Stderr), r.StderrBytes))
	}
	if r.TimedOut {
		body = appendNote(body, "[command timed out]")
	}
	return "Error:\n" + body
}

// appendNote adds note on its own line after body.
func appendNote(body, note string) string {
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return body + note
}

// Summary is a short human-readable description of the outcome.
func (r *RunResult) Summary() string {
	var b strings.Builder
	switch r.Kind {
	case Run:
		status := "ok"
		if r.Failed() {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s: %s (exit %d)\n", status, r.Command, r.ExitCode)
		if r.StderrBytes > 0 {
			fmt.Fprintf(&b, "stderr: %d bytes", r.StderrBytes)
			if r.Truncated {
				b.WriteString(", truncated")
			}
			b.WriteString("\n")
		}
	case Classify:
		verb := "moved"
		if r.DryRun {
			verb = "planned"
		}
		fmt.Fprintf(&b, "%s %d file(s) for %s in %s, skipped %d\n", verb, len(r.Moves), r.OutputID, r.Dir, len(r.Skipped))
	}
	if r.Error != "" {
		fmt.Fprintf(&b, "error: %s\n", r.Error)
	}
	return b.String()
}

// WriteJSON encodes the result as indented JSON.
func (r *RunResult) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
