package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/automaxprocs/maxprocs"

	elemtrack "github.com/dbecchi/elemtrack"
	"github.com/dbecchi/elemtrack/internal/assets"
	"github.com/dbecchi/elemtrack/internal/config"
	"github.com/dbecchi/elemtrack/internal/gitx"
	"github.com/dbecchi/elemtrack/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	env := DefaultEnv()
	os.Exit(run(ctx, os.Args[1:], env))
}

// run dispatches to a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "generate":
		flags, _, err := parseGenerateFlags(args[1:])
		if err != nil {
			return ExitUsage
		}
		return report(runGenerate(ctx, flags, env), env)
	case "publish":
		flags, _, err := parsePublishFlags(args[1:])
		if err != nil {
			return ExitUsage
		}
		return report(runPublish(ctx, flags, env), env)
	case "doctor":
		return runDoctorCmd(ctx, args[1:], env)
	case "completion":
		return report(runCompletion(args[1:], env), env)
	case "version", "--version", "-V":
		fmt.Fprintf(env.Stdout, "elemtrack %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(args[1:], env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// report prints err with a remediation hint, when one applies, and maps
// it to an exit code.
func report(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// hintFor maps an error to a remediation hint, or "" when none applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, elemtrack.ErrEndpoint):
		if errors.Is(err, context.DeadlineExceeded) {
			return hints.ForTimeout()
		}
		return hints.ForEndpoint()
	case errors.Is(err, elemtrack.ErrBadStatus):
		return hints.ForEndpoint()
	case errors.Is(err, gitx.ErrPull):
		return hints.ForGitPull()
	case errors.Is(err, gitx.ErrPush):
		return hints.ForGitPush()
	case errors.Is(err, gitx.ErrNotARepo):
		return hints.ForNotARepo()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.AvailableStyles())
	case errors.Is(err, elemtrack.ErrBrowserConnect),
		errors.Is(err, elemtrack.ErrPageCreate),
		errors.Is(err, elemtrack.ErrPageLoad),
		errors.Is(err, elemtrack.ErrScreenshot):
		return hints.ForBrowser()
	}
	return ""
}
