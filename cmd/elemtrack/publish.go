package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dbecchi/elemtrack/internal/config"
	"github.com/dbecchi/elemtrack/internal/gitx"
	"github.com/dbecchi/elemtrack/internal/progress"
)

// runPublish runs the full pipeline: pull, generate, stage, commit, push.
// The pipeline is fail-fast: the first failing stage aborts the run so a
// broken report is never committed.
func runPublish(ctx context.Context, flags *publishFlags, env *Environment) error {
	cfg, err := loadAndMergeConfig(&flags.generateFlags)
	if err != nil {
		return err
	}
	mergePublishFlags(flags, cfg)

	repoDir := flags.git.repo
	if repoDir == "" {
		repoDir = "."
	}
	git := gitService(repoDir, env)
	if !git.IsWorkTree(ctx) {
		return fmt.Errorf("%w: %s", gitx.ErrNotARepo, repoDir)
	}

	rep := progress.New(env.Stderr, progressMode(&flags.common))
	defer rep.Stop()

	step := func(message string, fn func() error) error {
		t := rep.StartTask(message)
		if err := fn(); err != nil {
			t.Fail()
			return err
		}
		t.Done()
		return nil
	}

	if !flags.git.noPull {
		if err := step("Pulling latest changes", func() error {
			return git.Pull(ctx, cfg.Git.Remote, cfg.Git.Branch)
		}); err != nil {
			return err
		}
	}

	if err := step("Generating report", func() error {
		return generateReport(ctx, cfg, &flags.generateFlags, env)
	}); err != nil {
		return err
	}

	if err := step("Staging report", func() error {
		paths := []string{cfg.Report.Output}
		if flags.report.dumpJSON != "" {
			paths = append(paths, flags.report.dumpJSON)
		}
		return git.Add(ctx, paths...)
	}); err != nil {
		return err
	}

	staged, err := git.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		// A regenerated report that matches the committed one is not an
		// error; there is just nothing to publish.
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, "Report unchanged, nothing to commit")
		}
		return nil
	}

	message := cfg.Git.Message
	if message == "" {
		message = config.DefaultCommitMessage
	}
	if err := step("Committing", func() error {
		return git.Commit(ctx, message)
	}); err != nil {
		return err
	}

	if !flags.git.noPush {
		if err := step("Pushing", func() error {
			return git.Push(ctx, cfg.Git.Remote, cfg.Git.Branch)
		}); err != nil {
			return err
		}
	}

	rep.Stop()
	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "Published")
	}
	return nil
}

// mergePublishFlags merges publish-only CLI flags into config.
func mergePublishFlags(flags *publishFlags, cfg *config.Config) {
	if flags.git.remote != "" {
		cfg.Git.Remote = flags.git.remote
	}
	if flags.git.branch != "" {
		cfg.Git.Branch = flags.git.branch
	}
	if flags.git.message != "" {
		cfg.Git.Message = flags.git.message
	}
}

// gitService builds the git service, honoring an injected executor.
func gitService(dir string, env *Environment) *gitx.Service {
	if env.GitExec != nil {
		return gitx.NewServiceWithExecutor(dir, env.GitExec)
	}
	return gitx.NewService(dir)
}

// progressMode picks the rendering mode from output flags and the
// terminal state of stderr. Verbose runs use plain lines so stage output
// interleaves readably with the extra detail.
func progressMode(f *commonFlags) progress.Mode {
	switch {
	case f.quiet:
		return progress.ModeQuiet
	case f.plain || f.verbose || !progress.IsTerminal(os.Stderr):
		return progress.ModePlain
	default:
		return progress.ModeBars
	}
}
