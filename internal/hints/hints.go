// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to
// error messages.
package hints

import (
	"os"
	"strings"

	"github.com/dbecchi/elemtrack/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForEndpoint returns hints for endpoint request failures.
func ForEndpoint() string {
	return format("check the Apps Script deployment URL ends with /exec and is deployed as 'Anyone'")
}

// ForTimeout returns a hint about increasing the endpoint timeout.
func ForTimeout() string {
	return format("slow spreadsheets may need a larger --timeout")
}

// ForGitPull returns hints for pull failures.
func ForGitPull() string {
	return format("resolve conflicts or stash local changes, then rerun")
}

// ForGitPush returns hints for push failures.
func ForGitPush() string {
	return format("check credentials and that the remote branch accepts pushes; rerun to pull first")
}

// ForNotARepo returns hints when publish runs outside a git work tree.
func ForNotARepo() string {
	return format("run inside the repository that tracks the report, or pass --repo")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/elemtrack") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForBrowser returns hints for preview/browser errors.
// Detects CI/Docker environments and suggests relevant environment variables.
func ForBrowser() string {
	var parts []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use a custom Chrome")
	}

	return formatAll(parts)
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatAll(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(format(p))
	}
	return b.String()
}
