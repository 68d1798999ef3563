package nftexec

import "fmt"

// ExecError reports that the program could not be launched at all, e.g. the
// binary was not found on PATH.
type ExecError struct {
	Program string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("nftexec: failed to execute %s: %v", e.Program, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// OutputError reports that a process stream was not valid UTF-8 and cannot
// be interpreted as JSON text.
type OutputError struct {
	Program string
	Stream  string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("nftexec: %s produced invalid UTF-8 on %s", e.Program, e.Stream)
}

// CommandError reports a non-zero exit. Stdout and Stderr carry the process
// output verbatim; Hint names the operation that was attempted.
type CommandError struct {
	Program  string
	Hint     string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("nftexec: %s failed %s (exit %d): %s", e.Program, e.Hint, e.ExitCode, e.Stderr)
}
