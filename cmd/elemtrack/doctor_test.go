package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestCheckConfigMissingFile(t *testing.T) {
	result := &doctorResult{Status: "ready"}

	cfg := checkConfig(result, "/nonexistent/elemtrack.yaml")
	if cfg == nil {
		t.Fatal("checkConfig returned nil config")
	}
	if result.ConfigRes.Found {
		t.Error("missing config reported as found")
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Config:") {
		t.Errorf("errors = %v", result.Errors)
	}
	// The fallback is usable for the remaining checks.
	if cfg.Report.Output == "" {
		t.Error("fallback config has no output default")
	}
}

func TestCheckConfigWarnsWithoutAPIURL(t *testing.T) {
	chdir(t, t.TempDir())
	result := &doctorResult{Status: "ready"}

	checkConfig(result, "")
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "api.url") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want api.url warning", result.Warnings)
	}
}

func TestPrintDoctorResult(t *testing.T) {
	r := &doctorResult{
		Status: "warnings",
		Git: gitInfo{
			Found:    true,
			Version:  "git version 2.43.0",
			WorkTree: true,
			Branch:   "main",
		},
		ConfigRes: configInfo{
			Found:  true,
			Path:   ".elemtrack.yaml",
			APIURL: "https://script.google.com/macros/s/abc/exec",
		},
		Env:      envInfo{OS: "linux", Arch: "amd64"},
		Warnings: []string{"Chrome/Chromium not found; --preview will not work"},
	}

	var buf bytes.Buffer
	printDoctorResult(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"[OK] git version 2.43.0",
		"[OK] Work tree on branch main",
		"[OK] Loaded .elemtrack.yaml",
		"[WARN] Not found",
		"[WARN] Chrome/Chromium not found",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintDoctorResultErrors(t *testing.T) {
	r := &doctorResult{
		Status: "errors",
		Errors: []string{"git not found in PATH"},
		Env:    envInfo{OS: "linux", Arch: "amd64"},
	}

	var buf bytes.Buffer
	printDoctorResult(&buf, r)

	if !strings.Contains(buf.String(), "Status: Not ready") {
		t.Errorf("output = %s", buf.String())
	}
}

func TestDoctorResultJSONShape(t *testing.T) {
	r := &doctorResult{
		Status: "ready",
		Git:    gitInfo{Found: true, WorkTree: true, Branch: "main"},
		Env:    envInfo{OS: "linux", Arch: "amd64"},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"status", "git", "config", "generator", "chrome", "environment"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing %q key", key)
		}
	}
	if _, ok := decoded["warnings"]; ok {
		t.Error("empty warnings should be omitted")
	}
}
