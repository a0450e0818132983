// Package execx provides the process boundary used by package-manager
// clients and the host-delegation bridge.
//
// Every interaction with the outside world goes through Runner: spawn one
// external command, wait for it, and capture its exit code, stdout, and
// stderr. No other IPC mechanism is used.
package execx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/logging"
)

// Result holds the outcome of a spawned process.
type Result struct {
	// ExitCode is the process exit status. Zero means success.
	ExitCode int

	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string
}

// Success returns true if the process exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// CombinedOutput returns stdout and stderr joined, trimmed of trailing
// whitespace. Useful for surfacing process output in error messages.
func (r Result) CombinedOutput() string {
	return strings.TrimSpace(strings.TrimSpace(r.Stdout) + "\n" + strings.TrimSpace(r.Stderr))
}

// Runner runs external commands synchronously.
//
// Run returns an error only when the process could not be spawned or was
// interrupted (a transport error); a non-zero exit status is reported via
// Result.ExitCode, not via the error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
	LookPath(name string) (string, error)
}

// System returns a Runner backed by os/exec.
func System() Runner {
	return systemRunner{}
}

type systemRunner struct{}

func (systemRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	logger := logging.FromContext(ctx)
	logger.Log(ctx, logging.LevelTrace, "spawning process", "cmd", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{ExitCode: -1}, errors.Wrapf(err, "spawning %s", name)
		}
		// The process ran and failed; that's a Result, not an error.
	}

	res := Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if res.ExitCode != 0 {
		logger.Log(ctx, logging.LevelTrace, "process exited non-zero",
			"cmd", name, "exit", res.ExitCode, "stderr", strings.TrimSpace(res.Stderr))
		return res, nil
	}

	logger.Log(ctx, logging.LevelTrace, "process exited", "cmd", name, "exit", res.ExitCode)
	return res, nil
}

func (systemRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
