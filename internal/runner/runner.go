// Package runner executes shell command lines, streaming stdout through
// and capturing stderr up to a size cap.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChunkSize is the read size used when draining the stderr pipe.
const ChunkSize = 1 << 20 // 1 MiB

// pipeGrace bounds how long the stderr pipe is still read after the
// context is done. A descendant that left the process group can keep the
// pipe open indefinitely.
const pipeGrace = 2 * time.Second

// ErrStderrLimit is returned alongside a Result when FailOnOverflow is set
// and the child wrote more than MaxStderr bytes to stderr.
var ErrStderrLimit = errors.New("stderr capture limit exceeded")

// Runner executes command lines through a shell.
type Runner struct {
	Shell          string        // interpreter invoked as "<Shell> -c <line>"
	Timeout        time.Duration // zero disables the timeout
	MaxStderr      int           // bytes
	FailOnOverflow bool          // treat an overflowing stderr as a failure

	Dir    string    // working directory; empty inherits ours
	Stdin  io.Reader // nil reads from the null device
	Stdout io.Writer // nil means os.Stdout
}

// CommandLine joins argv into the single line handed to the shell.
func CommandLine(argv []string) string {
	return strings.Join(argv, " ")
}

// Run joins argv with single spaces and executes it through the shell.
// A non-zero exit is reported in the Result, not as an error; errors are
// reserved for failures to start or wait on the child, and for
// ErrStderrLimit, which comes with a non-nil Result.
func (r *Runner) Run(ctx context.Context, argv []string) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	shell := r.Shell
	if shell == "" {
		shell = "/bin/sh"
	}
	line := CommandLine(argv)

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, shell, "-c", line)
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	setProcessGroup(cmd)

	pipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("executing %s: %w", shell, err)
	}

	var stderr bytes.Buffer
	capture := &limitWriter{buf: &stderr, limit: r.maxStderr()}
	drained := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		select {
		case <-time.After(pipeGrace):
			pipe.Close()
		case <-drained:
		}
	})
	// The pipe must be fully read before Wait closes it.
	readErr := drain(pipe, capture)
	close(drained)
	stop()
	waitErr := cmd.Wait()

	res := &Result{
		RunID:       uuid.New().String(),
		CommandLine: line,
		Stderr:      stderr.Bytes(),
		StderrBytes: capture.total,
		Truncated:   capture.total > int64(capture.limit),
		TimedOut:    r.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded),
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("waiting for %s: %w", shell, waitErr)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	if readErr != nil {
		return nil, fmt.Errorf("reading stderr: %w", readErr)
	}
	if res.Truncated && r.FailOnOverflow {
		return res, ErrStderrLimit
	}
	return res, nil
}

func (r *Runner) maxStderr() int {
	if r.MaxStderr > 0 {
		return r.MaxStderr
	}
	return 64 << 20
}

// drain copies src into dst in ChunkSize reads until end of stream.
func drain(src io.Reader, dst io.Writer) error {
	chunk := make([]byte, ChunkSize)
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			if _, werr := dst.Write(chunk[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF || errors.Is(err, os.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// limitWriter writes up to limit bytes to buf, then silently discards the
// rest while still counting it.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
	total int64
}

func (w *limitWriter) Write(p []byte) (int, error) {
	w.total += int64(len(p))
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Report all bytes as consumed so the drain loop keeps going.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
