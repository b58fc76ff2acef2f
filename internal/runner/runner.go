// Package runner assembles the final command line and hands it to an
// interactive shell. The tool is a transparent passthrough: stdio is
// inherited, the call blocks until the child exits, and the child's exit code
// becomes the process exit code.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExitError carries a child process's non-zero exit code up to main. It is a
// normal result of running a user command, not an internal failure.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// CommandLine appends the passthrough arguments to the resolved command,
// space-joined. Arguments are not shell-escaped: the whole line is handed to
// the shell verbatim, same as typing it.
func CommandLine(command string, args []string) string {
	joined := strings.Join(args, " ")
	if joined == "" {
		return command
	}
	return command + " " + joined
}

// Run executes line via `shell -c` with dir as the working directory,
// inheriting the caller's stdio. A non-zero child exit is returned as
// *ExitError; a shell that cannot be spawned at all is a distinct error.
// Never retried: a failing command is an expected outcome.
func Run(ctx context.Context, shell, line, dir string) error {
	cmd := exec.CommandContext(ctx, shell, "-c", line)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return &ExitError{Code: exit.ExitCode()}
	}
	return fmt.Errorf("runner.Run: spawn %s: %w", shell, err)
}
