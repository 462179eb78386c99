// Package mocks provides shared test doubles for ccenv packages.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/ccenv/ccenv/internal/execx"
)

// Runner implements execx.Runner for testing.
// Use NewRunner() to create instances with a fluent builder API.
type Runner struct {
	results map[string]execx.Result
	errs    map[string]error
	tools   map[string]string

	// RunFunc, when set, overrides the canned results entirely.
	RunFunc func(ctx context.Context, timeout time.Duration, name string, args ...string) (execx.Result, error)

	mu    sync.Mutex
	calls []string
}

// NewRunner creates a mock runner with no known commands or tools.
func NewRunner() *Runner {
	return &Runner{
		results: make(map[string]execx.Result),
		errs:    make(map[string]error),
		tools:   make(map[string]string),
	}
}

// WithOutput registers successful stdout for a command name.
func (m *Runner) WithOutput(name, stdout string) *Runner {
	m.results[name] = execx.Result{ExitCode: 0, Stdout: stdout}
	return m
}

// WithResult registers a full canned result for a command name.
func (m *Runner) WithResult(name string, res execx.Result) *Runner {
	m.results[name] = res
	return m
}

// WithError makes a command name fail to start.
func (m *Runner) WithError(name string, err error) *Runner {
	m.errs[name] = err
	return m
}

// WithTool makes LookPath resolve name to path.
func (m *Runner) WithTool(name, path string) *Runner {
	m.tools[name] = path
	return m
}

// execx.Runner interface implementation

func (m *Runner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (execx.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, timeout, name, args...)
	}
	if err, ok := m.errs[name]; ok {
		return execx.Result{ExitCode: -1}, err
	}
	if res, ok := m.results[name]; ok {
		return res, nil
	}
	// Unknown commands behave like a tool that exists but reports nothing.
	return execx.Result{ExitCode: 1}, nil
}

func (m *Runner) LookPath(name string) (string, bool) {
	path, ok := m.tools[name]
	return path, ok
}

// Test inspection methods

// Calls returns the command names passed to Run, in order.
func (m *Runner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.calls))
	copy(result, m.calls)
	return result
}

// Reset clears call tracking state.
func (m *Runner) Reset() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}
