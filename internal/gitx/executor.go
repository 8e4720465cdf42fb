package gitx

import (
	"bytes"
	"context"
	"os/exec"
	"sync"
)

// Executor abstracts command execution so tests can inject recorded
// responses instead of spawning real git processes.
type Executor interface {
	// Run executes a command and returns stdout, stderr, and any error.
	Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr []byte, err error)

	// CombinedOutput executes a command and returns combined stdout+stderr.
	CombinedOutput(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// RealExecutor executes commands using os/exec.
type RealExecutor struct{}

// NewRealExecutor returns a new RealExecutor.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

// Run executes a command and returns stdout, stderr, and any error.
func (e *RealExecutor) Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()
	return stdoutBuf.Bytes(), stderrBuf.Bytes(), err
}

// CombinedOutput executes a command and returns combined stdout+stderr.
func (e *RealExecutor) CombinedOutput(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// MockResponse defines the response for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// MockCall records a command invocation for verification.
type MockCall struct {
	Dir  string
	Name string
	Args []string
}

type mockRule struct {
	name   string
	prefix []string
	resp   MockResponse
}

// MockExecutor returns pre-recorded responses for commands. Rules are
// matched in registration order; unmatched commands succeed with no output.
type MockExecutor struct {
	mu    sync.Mutex
	rules []mockRule
	calls []MockCall
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// Respond registers a response for commands whose name matches and whose
// arguments start with prefixArgs.
func (e *MockExecutor) Respond(name string, prefixArgs []string, resp MockResponse) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, mockRule{name: name, prefix: prefixArgs, resp: resp})
}

// Calls returns all recorded command invocations.
func (e *MockExecutor) Calls() []MockCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	calls := make([]MockCall, len(e.calls))
	copy(calls, e.calls)
	return calls
}

func (e *MockExecutor) match(dir, name string, args []string) MockResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, MockCall{Dir: dir, Name: name, Args: args})

	for _, rule := range e.rules {
		if rule.name != name || len(args) < len(rule.prefix) {
			continue
		}
		matched := true
		for i, p := range rule.prefix {
			if args[i] != p {
				matched = false
				break
			}
		}
		if matched {
			return rule.resp
		}
	}
	return MockResponse{}
}

// Run returns the recorded response for a matching rule.
func (e *MockExecutor) Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr []byte, err error) {
	resp := e.match(dir, name, args)
	return resp.Stdout, resp.Stderr, resp.Err
}

// CombinedOutput returns the recorded stdout+stderr for a matching rule.
func (e *MockExecutor) CombinedOutput(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	resp := e.match(dir, name, args)
	return append(resp.Stdout[:len(resp.Stdout):len(resp.Stdout)], resp.Stderr...), resp.Err
}

var _ Executor = (*RealExecutor)(nil)
var _ Executor = (*MockExecutor)(nil)
