// Package host executes commands against the local machine.
//
// Every provisioning stage reaches the host through the Runner interface,
// so tests can substitute a scripted fake and assert on the exact commands
// a stage would have executed without touching the real system.
package host

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"github.com/rs/zerolog"
)

// Runner abstracts local command execution.
type Runner interface {
	// Run executes a command, streaming its output to the operator console.
	Run(ctx context.Context, name string, args ...string) error

	// RunEnv is Run with additional environment variables (KEY=VALUE form).
	RunEnv(ctx context.Context, env []string, name string, args ...string) error

	// Output executes a command and returns its combined stdout and stderr.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports where a binary resolves on PATH, or an error if it
	// is not installed.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands on the local host via os/exec.
type ExecRunner struct {
	logger zerolog.Logger

	// interactive routes child output through a PTY so long-running tools
	// (apt, the Docker bootstrap script, certbot) keep their progress
	// rendering. Disabled when stdout is not a terminal.
	interactive bool
}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner(logger zerolog.Logger, interactive bool) *ExecRunner {
	return &ExecRunner{
		logger:      logger.With().Str("component", "runner").Logger(),
		interactive: interactive,
	}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	return r.RunEnv(ctx, nil, name, args...)
}

// RunEnv implements Runner.
func (r *ExecRunner) RunEnv(ctx context.Context, env []string, name string, args ...string) error {
	r.logger.Debug().Str("cmd", name).Strs("args", args).Msg("exec")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)

	if r.interactive {
		return r.runPTY(cmd)
	}

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// runPTY runs the command attached to a pseudo-terminal and mirrors its
// output to stdout. Child processes detect a TTY and emit progress bars
// and colors as they would in an interactive shell.
func (r *ExecRunner) runPTY(cmd *exec.Cmd) error {
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	defer ptmx.Close()

	// EIO on copy is expected when the child exits and the PTY closes.
	_, _ = io.Copy(os.Stdout, ptmx)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.logger.Debug().Str("cmd", name).Strs("args", args).Msg("exec (captured)")

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %s: %s: %w",
			name, strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}
	return out, nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
