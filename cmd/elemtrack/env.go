package main

import (
	"context"
	"io"
	"os"
	"time"

	elemtrack "github.com/dbecchi/elemtrack"
	"github.com/dbecchi/elemtrack/internal/extgen"
	"github.com/dbecchi/elemtrack/internal/gitx"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, asset loading, and process execution.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader elemtrack.AssetLoader // nil = library default (embedded)
	GitExec     gitx.Executor         // nil = real git processes
	RunExtgen   func(ctx context.Context, opts extgen.Options) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		RunExtgen: extgen.Run,
	}
}
