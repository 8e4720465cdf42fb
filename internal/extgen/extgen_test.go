package extgen

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name    string
		command []string
		apiURL  string
		output  string
		title   string
		want    []string
	}{
		{
			name:    "full contract",
			command: []string{"python", "v2.py"},
			apiURL:  "https://example.com/api",
			output:  "report.html",
			title:   "Sample tracker",
			want: []string{
				"python", "v2.py",
				"--api-url", "https://example.com/api",
				"--output", "report.html",
				"--title", "Sample tracker",
			},
		},
		{
			name:    "empty title omitted",
			command: []string{"python", "v2.py"},
			apiURL:  "https://example.com/api",
			output:  "report.html",
			want: []string{
				"python", "v2.py",
				"--api-url", "https://example.com/api",
				"--output", "report.html",
			},
		},
		{
			name:    "single element command",
			command: []string{"./gen"},
			apiURL:  "u",
			output:  "o",
			want:    []string{"./gen", "--api-url", "u", "--output", "o"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildArgs(tt.command, tt.apiURL, tt.output, tt.title)
			if strings.Join(got, "\x00") != strings.Join(tt.want, "\x00") {
				t.Errorf("BuildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVenvEnviron(t *testing.T) {
	bin := filepath.Join("/opt/venv", "bin")

	t.Run("path rewritten", func(t *testing.T) {
		env := venvEnviron([]string{"HOME=/home/me", "PATH=/usr/bin:/bin"}, "/opt/venv")

		wantPath := "PATH=" + bin + string(filepath.ListSeparator) + "/usr/bin:/bin"
		if !contains(env, wantPath) {
			t.Errorf("env %v missing %q", env, wantPath)
		}
		if !contains(env, "VIRTUAL_ENV=/opt/venv") {
			t.Errorf("env %v missing VIRTUAL_ENV", env)
		}
		if !contains(env, "HOME=/home/me") {
			t.Errorf("env %v dropped unrelated variable", env)
		}
	})

	t.Run("stale virtualenv replaced", func(t *testing.T) {
		env := venvEnviron([]string{"VIRTUAL_ENV=/old", "PATH=/bin"}, "/opt/venv")

		if contains(env, "VIRTUAL_ENV=/old") {
			t.Error("old VIRTUAL_ENV survived")
		}
		if !contains(env, "VIRTUAL_ENV=/opt/venv") {
			t.Errorf("env %v missing new VIRTUAL_ENV", env)
		}
	})

	t.Run("no path in base", func(t *testing.T) {
		env := venvEnviron([]string{"HOME=/home/me"}, "/opt/venv")

		if !contains(env, "PATH="+bin) {
			t.Errorf("env %v missing synthesized PATH", env)
		}
	})
}

func TestRunEmptyCommand(t *testing.T) {
	err := Run(context.Background(), Options{})
	if !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("got %v, want ErrEmptyCommand", err)
	}
}

func TestRunVenvNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-venv")

	err := Run(context.Background(), Options{
		Command: []string{"python", "v2.py"},
		Venv:    missing,
	})
	if !errors.Is(err, ErrVenvNotFound) {
		t.Fatalf("got %v, want ErrVenvNotFound", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q does not name the missing directory", err)
	}
}

func TestRunCommandNotFound(t *testing.T) {
	err := Run(context.Background(), Options{
		Command: []string{"elemtrack-no-such-binary-xyzzy"},
	})
	if !errors.Is(err, ErrRunFailed) {
		t.Errorf("got %v, want ErrRunFailed", err)
	}
}

func contains(env []string, kv string) bool {
	for _, e := range env {
		if e == kv {
			return true
		}
	}
	return false
}
