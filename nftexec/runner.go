// Package nftexec drives the nft binary with JSON input and output.
//
// The package pipes documents built with the parent package to `nft -j -f -`
// and parses `nft -j list ruleset` output back into the document model. All
// process plumbing goes through the CommandRunner interface so tests can
// substitute a fake without touching the system firewall.
package nftexec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// DefaultProgram is the nft binary resolved via PATH.
const DefaultProgram = "nft"

// CommandRunner abstracts process execution. Run starts the program with the
// given arguments, feeds it stdin, and returns the captured stdout and
// stderr together with the process exit code. err is non-nil only when the
// program could not be run at all; a non-zero exit is reported through exit,
// not err.
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) (stdout, stderr []byte, exit int, err error)
}

// RealCommandRunner executes actual commands via os/exec.
type RealCommandRunner struct{}

// DefaultCommandRunner is the runner used when Options leaves Runner unset.
var DefaultCommandRunner CommandRunner = &RealCommandRunner{}

func (*RealCommandRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, nil, -1, err
	}
	return stdout.Bytes(), stderr.Bytes(), 0, nil
}
