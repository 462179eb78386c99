// Package execx is the boundary for invoking external tools. Every call is
// bounded by an explicit timeout and reports exit status and captured
// output; a nonzero exit or a timeout is information, never a crash.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Default timeouts by operation weight.
const (
	// VersionQueryTimeout bounds compiler version queries ("cc --version").
	VersionQueryTimeout = 10 * time.Second
	// InventoryQueryTimeout bounds package-inventory tools (pacman, vswhere).
	InventoryQueryTimeout = 30 * time.Second
	// ActivationScriptTimeout bounds activation scripts, which may perform
	// long-running toolchain setup on first use.
	ActivationScriptTimeout = 300 * time.Second
)

// Result describes one completed external tool invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
	TimedOut bool
}

// Output returns stdout and stderr combined, stdout first. Compilers are
// inconsistent about which stream carries the version banner.
func (r Result) Output() string {
	return r.Stdout + r.Stderr
}

// Ok reports whether the tool ran to completion with a zero exit code.
func (r Result) Ok() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

// Runner executes external tools. The interface exists so detection and
// activation logic can be tested against a fake without spawning processes.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error)
	LookPath(name string) (string, bool)
}

// System is the Runner backed by the real OS.
type System struct{}

// Run executes name with args under the given timeout. The returned error
// is non-nil only for failures to start the process at all (binary missing,
// permission denied); exit status and timeouts are reported in Result.
func (System) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.ExitCode = -1
		return res, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// Process never started.
		return res, err
	}

	return res, nil
}

// LookPath reports whether name resolves on the search path.
func (System) LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}
