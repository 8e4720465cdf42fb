package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	tests := []struct {
		shell Shell
		want  []string
	}{
		{ShellBash, []string{"complete -F _elemtrack elemtrack", "generate", "publish", "--api-url"}},
		{ShellZsh, []string{"#compdef elemtrack", "_describe", "--api-url"}},
		{ShellFish, []string{"complete -c elemtrack", "__fish_seen_subcommand_from generate", "-l api-url"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("powershell"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("got %v, want ErrUnsupportedShell", err)
	}
}

func TestCompletionFlagsIncludeGitGroup(t *testing.T) {
	for _, c := range getCommands() {
		if c.Name != "publish" {
			continue
		}
		joined := strings.Join(c.Flags, " ")
		for _, want := range []string{"--no-pull", "--no-push", "--message", "--repo"} {
			if !strings.Contains(joined, want) {
				t.Errorf("publish flags %v missing %s", c.Flags, want)
			}
		}
		return
	}
	t.Fatal("publish command not registered for completion")
}

func TestRunCompletionNoArgsPrintsUsage(t *testing.T) {
	env, stdout, _ := newTestEnv()

	if err := runCompletion(nil, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Supported shells") {
		t.Errorf("output %q missing shell list", stdout.String())
	}
}
