package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbecchi/elemtrack/internal/extgen"
	"github.com/dbecchi/elemtrack/internal/gitx"
)

const publishConfig = `api:
  url: https://script.google.com/macros/s/abc/exec
generator:
  command: ["python", "v2.py"]
git:
  remote: origin
  branch: main
`

// setupPublish writes a config file and wires a mock git executor plus an
// external generator stub that creates the output file.
func setupPublish(t *testing.T, mock *gitx.MockExecutor) (*publishFlags, *Environment, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "elemtrack.yaml")
	if err := os.WriteFile(configPath, []byte(publishConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	env, stdout, _ := newTestEnv()
	env.GitExec = mock
	env.RunExtgen = func(_ context.Context, opts extgen.Options) error {
		return os.WriteFile(opts.Output, []byte("<html></html>"), 0o644)
	}

	flags := &publishFlags{}
	flags.common.config = configPath
	flags.common.plain = true
	flags.report.output = filepath.Join(dir, "report.html")
	return flags, env, stdout
}

func respondWorkTree(mock *gitx.MockExecutor) {
	mock.Respond("git", []string{"rev-parse", "--is-inside-work-tree"},
		gitx.MockResponse{Stdout: []byte("true\n")})
}

func gitArgs(calls []gitx.MockCall) []string {
	var out []string
	for _, c := range calls {
		out = append(out, strings.Join(c.Args, " "))
	}
	return out
}

func TestPublishPipeline(t *testing.T) {
	mock := gitx.NewMockExecutor()
	respondWorkTree(mock)
	mock.Respond("git", []string{"status", "--porcelain"},
		gitx.MockResponse{Stdout: []byte("M  report.html\n")})

	flags, env, _ := setupPublish(t, mock)

	if err := runPublish(context.Background(), flags, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := gitArgs(mock.Calls())
	want := []string{
		"rev-parse --is-inside-work-tree",
		"pull origin main",
		"add -- " + flags.report.output,
		"status --porcelain",
		"commit -m Update sample tracker",
		"push origin main",
	}
	if len(got) != len(want) {
		t.Fatalf("git calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPublishUnchangedSkipsCommit(t *testing.T) {
	mock := gitx.NewMockExecutor()
	respondWorkTree(mock)
	// Empty porcelain output: nothing staged after add.

	flags, env, stdout := setupPublish(t, mock)

	if err := runPublish(context.Background(), flags, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), "Report unchanged, nothing to commit") {
		t.Errorf("stdout = %q", stdout.String())
	}
	for _, call := range gitArgs(mock.Calls()) {
		if strings.HasPrefix(call, "commit") || strings.HasPrefix(call, "push") {
			t.Errorf("unexpected git call %q after unchanged report", call)
		}
	}
}

func TestPublishNoPullNoPush(t *testing.T) {
	mock := gitx.NewMockExecutor()
	respondWorkTree(mock)
	mock.Respond("git", []string{"status", "--porcelain"},
		gitx.MockResponse{Stdout: []byte("M  report.html\n")})

	flags, env, _ := setupPublish(t, mock)
	flags.git.noPull = true
	flags.git.noPush = true

	if err := runPublish(context.Background(), flags, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, call := range gitArgs(mock.Calls()) {
		if strings.HasPrefix(call, "pull") || strings.HasPrefix(call, "push") {
			t.Errorf("unexpected git call %q with --no-pull/--no-push", call)
		}
	}
}

func TestPublishNotARepo(t *testing.T) {
	mock := gitx.NewMockExecutor()
	mock.Respond("git", []string{"rev-parse", "--is-inside-work-tree"},
		gitx.MockResponse{Stderr: []byte("fatal: not a git repository"), Err: errors.New("exit status 128")})

	flags, env, _ := setupPublish(t, mock)

	err := runPublish(context.Background(), flags, env)
	if !errors.Is(err, gitx.ErrNotARepo) {
		t.Fatalf("got %v, want ErrNotARepo", err)
	}
	if len(mock.Calls()) != 1 {
		t.Errorf("pipeline continued after work tree check: %v", gitArgs(mock.Calls()))
	}
}

func TestPublishPullFailureAborts(t *testing.T) {
	mock := gitx.NewMockExecutor()
	respondWorkTree(mock)
	mock.Respond("git", []string{"pull"},
		gitx.MockResponse{Stderr: []byte("error: merge conflict"), Err: errors.New("exit status 1")})

	flags, env, _ := setupPublish(t, mock)

	err := runPublish(context.Background(), flags, env)
	if !errors.Is(err, gitx.ErrPull) {
		t.Fatalf("got %v, want ErrPull", err)
	}
	if _, statErr := os.Stat(flags.report.output); statErr == nil {
		t.Error("report was generated after pull failed")
	}
}

func TestPublishCommitMessageFlagWins(t *testing.T) {
	mock := gitx.NewMockExecutor()
	respondWorkTree(mock)
	mock.Respond("git", []string{"status", "--porcelain"},
		gitx.MockResponse{Stdout: []byte("M  report.html\n")})

	flags, env, _ := setupPublish(t, mock)
	flags.git.message = "August refresh"

	if err := runPublish(context.Background(), flags, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, call := range gitArgs(mock.Calls()) {
		if call == "commit -m August refresh" {
			found = true
		}
	}
	if !found {
		t.Errorf("commit message flag ignored: %v", gitArgs(mock.Calls()))
	}
}
