package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/dbecchi/elemtrack/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Git       gitInfo       `json:"git"`
	ConfigRes configInfo    `json:"config"`
	Generator generatorInfo `json:"generator"`
	Chrome    chromeInfo    `json:"chrome"`
	Env       envInfo       `json:"environment"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// gitInfo holds git detection results.
type gitInfo struct {
	Found    bool   `json:"found"`
	Version  string `json:"version,omitempty"`
	WorkTree bool   `json:"work_tree"`
	Branch   string `json:"branch,omitempty"`
}

// configInfo holds config discovery results.
type configInfo struct {
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	APIURL   string `json:"api_url,omitempty"`
	Output   string `json:"output,omitempty"`
	External bool   `json:"external_generator"`
}

// generatorInfo holds external generator checks.
type generatorInfo struct {
	Command  string `json:"command,omitempty"`
	Resolved string `json:"resolved,omitempty"`
	Venv     string `json:"venv,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results. Chrome is only
// needed for --preview, so a missing browser is a warning, not an error.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
	NoSandbox  string `json:"rod_no_sandbox"`
	BrowserBin string `json:"rod_browser_bin"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	jsonOutput := false
	configName := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			jsonOutput = true
		case "--config", "-c":
			if i+1 < len(args) {
				i++
				configName = args[i]
			}
		}
	}

	result := runDoctor(ctx, configName, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	cfg := checkConfig(result, configName)
	checkGit(ctx, result, env)
	checkGenerator(result, cfg)
	checkChrome(result)
	checkEnvironment(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkConfig loads the config and validates the pieces a run needs.
func checkConfig(result *doctorResult, configName string) *config.Config {
	var cfg *config.Config
	var err error
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		result.ConfigRes.Path = configName
	} else {
		cfg, err = config.Discover()
		result.ConfigRes.Path = config.DefaultConfigName
	}
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return config.DefaultConfig()
	}

	result.ConfigRes.Found = true
	result.ConfigRes.APIURL = cfg.API.URL
	result.ConfigRes.Output = cfg.Report.Output
	result.ConfigRes.External = cfg.Generator.External()

	if cfg.API.URL == "" {
		result.Warnings = append(result.Warnings,
			"No api.url configured. Set it in the config file or pass --api-url")
	}
	if dir := filepath.Dir(cfg.Report.Output); dir != "" {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Output directory does not exist: %s", dir))
		}
	}
	return cfg
}

// checkGit detects git and the repository state of the working directory.
func checkGit(ctx context.Context, result *doctorResult, env *Environment) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		result.Errors = append(result.Errors, "git not found in PATH")
		return
	}
	result.Git.Found = true

	out, verErr := exec.Command(gitPath, "--version").Output()
	if verErr == nil {
		result.Git.Version = strings.TrimSpace(string(out))
	}

	git := gitService(".", env)
	if !git.IsWorkTree(ctx) {
		result.Warnings = append(result.Warnings,
			"Current directory is not a git work tree; publish needs one (or --repo)")
		return
	}
	result.Git.WorkTree = true
	if branch, err := git.CurrentBranch(ctx); err == nil {
		result.Git.Branch = branch
	}
}

// checkGenerator verifies the external generator command resolves.
func checkGenerator(result *doctorResult, cfg *config.Config) {
	if !cfg.Generator.External() {
		return
	}
	name := cfg.Generator.Command[0]
	result.Generator.Command = name
	result.Generator.Venv = cfg.Generator.Venv

	if cfg.Generator.Venv != "" {
		if info, err := os.Stat(cfg.Generator.Venv); err != nil || !info.IsDir() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Virtualenv not found: %s", cfg.Generator.Venv))
			return
		}
		if p, err := exec.LookPath(filepath.Join(cfg.Generator.Venv, "bin", name)); err == nil {
			result.Generator.Resolved = p
			return
		}
	}
	if p, err := exec.LookPath(name); err == nil {
		result.Generator.Resolved = p
		return
	}
	result.Errors = append(result.Errors,
		fmt.Sprintf("External generator not found in PATH: %s", name))
}

// checkChrome detects Chrome/Chromium. Missing Chrome only degrades the
// --preview flag, so it never fails the doctor run.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; --preview will not work. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	if out, err := exec.Command(chromePath, "--version").Output(); err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		result.Env.Container = true
	} else if os.Getenv("container") != "" || os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		result.Env.Container = true
	}

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" && result.Chrome.Found {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for --preview")
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "elemtrack doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Git")
	if r.Git.Found {
		fmt.Fprintf(w, "  [OK] %s\n", r.Git.Version)
		if r.Git.WorkTree {
			fmt.Fprintf(w, "  [OK] Work tree on branch %s\n", r.Git.Branch)
		} else {
			fmt.Fprintln(w, "  [WARN] Not inside a work tree")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.ConfigRes.Found {
		fmt.Fprintf(w, "  [OK] Loaded %s\n", r.ConfigRes.Path)
		if r.ConfigRes.APIURL != "" {
			fmt.Fprintf(w, "  [OK] Endpoint: %s\n", r.ConfigRes.APIURL)
		}
		if r.ConfigRes.External {
			fmt.Fprintln(w, "  [OK] External generator configured")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Could not load")
	}
	fmt.Fprintln(w)

	if r.Generator.Command != "" {
		fmt.Fprintln(w, "External generator")
		if r.Generator.Resolved != "" {
			fmt.Fprintf(w, "  [OK] %s -> %s\n", r.Generator.Command, r.Generator.Resolved)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s not resolvable\n", r.Generator.Command)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Chrome/Chromium (preview)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
