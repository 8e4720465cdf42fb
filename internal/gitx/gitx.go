// Package gitx wraps the git operations the publish pipeline needs:
// pull, stage, commit, push, and work-tree inspection. Every operation
// runs through an injectable Executor so tests never spawn git.
package gitx

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for git operations.
var (
	ErrNotARepo = errors.New("not a git repository")
	ErrPull     = errors.New("git pull failed")
	ErrAdd      = errors.New("git add failed")
	ErrCommit   = errors.New("git commit failed")
	ErrPush     = errors.New("git push failed")
	ErrStatus   = errors.New("git status failed")
)

// Service runs git operations in a single repository directory.
type Service struct {
	executor Executor
	dir      string
}

// NewService creates a Service for the repository at dir using the real
// executor.
func NewService(dir string) *Service {
	return &Service{executor: NewRealExecutor(), dir: dir}
}

// NewServiceWithExecutor creates a Service with a custom executor.
// Primarily used by tests.
func NewServiceWithExecutor(dir string, exec Executor) *Service {
	return &Service{executor: exec, dir: dir}
}

// Dir returns the repository directory the service operates in.
func (s *Service) Dir() string {
	return s.dir
}

// IsWorkTree reports whether dir is inside a git work tree.
func (s *Service) IsWorkTree(ctx context.Context) bool {
	out, _, err := s.executor.Run(ctx, s.dir, "git", "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when
// detached.
func (s *Service) CurrentBranch(ctx context.Context) (string, error) {
	out, stderr, err := s.executor.Run(ctx, s.dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", wrapGit(ErrNotARepo, stderr, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Pull runs git pull. Remote and branch are optional; empty values fall
// back to the branch's configured upstream.
func (s *Service) Pull(ctx context.Context, remote, branch string) error {
	args := []string{"pull"}
	if remote != "" {
		args = append(args, remote)
		if branch != "" {
			args = append(args, branch)
		}
	}
	out, err := s.executor.CombinedOutput(ctx, s.dir, "git", args...)
	if err != nil {
		return wrapGit(ErrPull, out, err)
	}
	return nil
}

// Add stages the given paths.
func (s *Service) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	out, err := s.executor.CombinedOutput(ctx, s.dir, "git", args...)
	if err != nil {
		return wrapGit(ErrAdd, out, err)
	}
	return nil
}

// HasStagedChanges reports whether any staged change exists. The leading
// porcelain column is the index status; a non-blank, non-"?" value there
// means something is staged.
func (s *Service) HasStagedChanges(ctx context.Context) (bool, error) {
	out, stderr, err := s.executor.Run(ctx, s.dir, "git", "status", "--porcelain")
	if err != nil {
		return false, wrapGit(ErrStatus, stderr, err)
	}
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if len(line) >= 2 && line[0] != ' ' && line[0] != '?' {
			return true, nil
		}
	}
	return false, nil
}

// Commit records the staged changes with the given message.
func (s *Service) Commit(ctx context.Context, message string) error {
	out, err := s.executor.CombinedOutput(ctx, s.dir, "git", "commit", "-m", message)
	if err != nil {
		return wrapGit(ErrCommit, out, err)
	}
	return nil
}

// Push publishes the branch. Remote and branch are optional like Pull.
func (s *Service) Push(ctx context.Context, remote, branch string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote)
		if branch != "" {
			args = append(args, branch)
		}
	}
	out, err := s.executor.CombinedOutput(ctx, s.dir, "git", args...)
	if err != nil {
		return wrapGit(ErrPush, out, err)
	}
	return nil
}

// wrapGit attaches git's own output to a sentinel, since exec errors
// alone ("exit status 1") are useless in a terminal.
func wrapGit(sentinel error, output []byte, err error) error {
	msg := strings.TrimSpace(string(output))
	if msg == "" {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
