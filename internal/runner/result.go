package runner

// Result holds the outcome of one command line execution.
type Result struct {
	RunID       string // unique identifier for this run
	CommandLine string // the joined command line handed to the shell
	ExitCode    int    // process exit code; -1 when killed by a signal
	Stderr      []byte // captured stderr (may be truncated)
	StderrBytes int64  // total bytes the child wrote to stderr
	Truncated   bool   // true if stderr exceeded the capture cap
	TimedOut    bool   // true if the child was killed on timeout
}

// Failed reports whether the run should go down the error path.
func (r *Result) Failed() bool {
	return r.ExitCode != 0 || r.TimedOut
}
