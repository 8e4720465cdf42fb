// Package extgen runs an external report generator in place of the
// built-in one. The external command receives the endpoint, output path,
// and title through a fixed flag contract, and may live inside a Python
// virtualenv whose bin directory is prepended to PATH.
package extgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Sentinel errors for external generator runs.
var (
	ErrEmptyCommand = errors.New("external generator command is empty")
	ErrVenvNotFound = errors.New("virtualenv directory not found")
	ErrRunFailed    = errors.New("external generator failed")
)

// Options describes one external generator invocation.
type Options struct {
	Command []string // argv; Command[0] is resolved against PATH (venv included)
	Venv    string   // optional virtualenv root; its bin/ joins PATH
	APIURL  string   // passed as --api-url
	Output  string   // passed as --output
	Title   string   // passed as --title, omitted when empty
	Stdout  io.Writer // generator stdout, nil discards
	Stderr  io.Writer // generator stderr, nil discards
}

// BuildArgs appends the flag contract to the configured argv.
func BuildArgs(command []string, apiURL, output, title string) []string {
	args := append([]string{}, command...)
	args = append(args, "--api-url", apiURL, "--output", output)
	if title != "" {
		args = append(args, "--title", title)
	}
	return args
}

// venvEnviron returns base with PATH rewritten so venv/bin wins lookup,
// plus VIRTUAL_ENV set. This mirrors what `source venv/bin/activate`
// does for a child process.
func venvEnviron(base []string, venv string) []string {
	bin := filepath.Join(venv, "bin")
	env := make([]string, 0, len(base)+1)
	found := false
	for _, kv := range base {
		if strings.HasPrefix(kv, "PATH=") {
			env = append(env, "PATH="+bin+string(os.PathListSeparator)+kv[len("PATH="):])
			found = true
			continue
		}
		if strings.HasPrefix(kv, "VIRTUAL_ENV=") {
			continue
		}
		env = append(env, kv)
	}
	if !found {
		env = append(env, "PATH="+bin)
	}
	return append(env, "VIRTUAL_ENV="+venv)
}

// Run executes the external generator and waits for it to finish.
func Run(ctx context.Context, opts Options) error {
	if len(opts.Command) == 0 {
		return ErrEmptyCommand
	}

	env := os.Environ()
	if opts.Venv != "" {
		info, err := os.Stat(opts.Venv)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrVenvNotFound, opts.Venv)
		}
		env = venvEnviron(env, opts.Venv)
	}

	args := BuildArgs(opts.Command, opts.APIURL, opts.Output, opts.Title)

	name := args[0]
	if opts.Venv != "" && !strings.ContainsRune(name, os.PathSeparator) {
		// exec.LookPath consults the parent's PATH, not cmd.Env, so
		// resolve against the venv bin first.
		if p, err := exec.LookPath(filepath.Join(opts.Venv, "bin", name)); err == nil {
			name = p
		}
	}

	cmd := exec.CommandContext(ctx, name, args[1:]...)
	cmd.Env = env
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s exited with code %d", ErrRunFailed, opts.Command[0], exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %v", ErrRunFailed, err)
	}
	return nil
}
