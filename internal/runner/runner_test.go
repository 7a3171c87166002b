package runner

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestExecRunner_Run executes a real process and reports success.
func TestExecRunner_Run(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	r := NewExecRunner()
	require.NoError(t, r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 0"}}))
}

// TestExecRunner_ExitCode verifies the tool's exit status survives the error chain.
func TestExecRunner_ExitCode(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	r := NewExecRunner()
	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 7"}})
	require.Error(t, err)
	require.Equal(t, 7, ExitCode(err))
}

// TestExitCode handles nil and non-process errors.
func TestExitCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, -1, ExitCode(errors.New("no status")))
}

// TestCommandString renders name and arguments.
func TestCommandString(t *testing.T) {
	t.Parallel()

	c := Command{Name: "uv", Args: []string{"sync", "--frozen"}}
	require.Equal(t, "uv sync --frozen", c.String())
	require.Equal(t, "uv", Command{Name: "uv"}.String())
}
