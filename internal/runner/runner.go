package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external tool invocation.
type Command struct {
	// Name is the executable to invoke, resolved via PATH.
	Name string
	// Args are the command-line arguments passed to the executable.
	Args []string
	// Dir is the working directory for the invocation, empty means inherited.
	Dir string
}

// String renders the command roughly as it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}

	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands on behalf of workflow steps.
type Runner interface {
	Run(ctx context.Context, command Command) error
}

// ExecRunner runs commands through os/exec, inheriting the parent environment
// and passing tool output straight through to the operator's terminal.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, command Command) error {
	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Dir = command.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", command.Name, err)
	}

	return nil
}

// ExitCode extracts the process exit code from an error returned by Run.
// It returns 0 for nil errors and -1 when the error carries no exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
