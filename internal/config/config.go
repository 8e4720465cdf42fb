// Package config loads and validates the elemtrack YAML configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dbecchi/elemtrack/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidURL      = errors.New("invalid api url")
	ErrInvalidCommand  = errors.New("invalid generator command")
	ErrInvalidTimeout  = errors.New("invalid timeout")
)

// DefaultConfigName is looked up in the working directory when no --config
// flag is given.
const DefaultConfigName = ".elemtrack.yaml"

// Field length limits.
const (
	MaxURLLength     = 2048 // browser limit
	MaxTitleLength   = 200
	MaxPathLength    = 4096
	MaxMessageLength = 200 // commit subject plus a short body
	MaxRefLength     = 250 // git refname limit is 255 bytes with prefix
	MaxDateLength    = 50
)

// Config holds all configuration for generation and publishing.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Report    ReportConfig    `yaml:"report"`
	Generator GeneratorConfig `yaml:"generator"`
	Git       GitConfig       `yaml:"git"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// APIConfig points at the Apps Script endpoint.
type APIConfig struct {
	URL     string `yaml:"url"`     // web app endpoint ending in /exec
	SheetID string `yaml:"sheetId"` // optional ?id= parameter
	Timeout string `yaml:"timeout"` // e.g. "30s", "2m" (empty = default)
}

// ReportConfig describes the generated document.
type ReportConfig struct {
	Output string `yaml:"output"` // output HTML path
	Title  string `yaml:"title"`  // document title (empty = built-in default)
	Notes  string `yaml:"notes"`  // markdown file for the notes panel
	Style  string `yaml:"style"`  // CSS style name (empty = built-in)
	Date   string `yaml:"date"`   // footer date: "", "auto", "auto:FORMAT", literal
}

// GeneratorConfig selects an external generator instead of the built-in one.
type GeneratorConfig struct {
	Command []string `yaml:"command"` // argv; receives --api-url/--output/--title
	Venv    string   `yaml:"venv"`    // Python virtualenv whose bin joins PATH
}

// External reports whether an external generator command is configured.
func (g *GeneratorConfig) External() bool {
	return len(g.Command) > 0
}

// GitConfig controls the publish pipeline.
type GitConfig struct {
	Remote  string `yaml:"remote"`  // empty = git's default for the branch
	Branch  string `yaml:"branch"`  // empty = current branch
	Message string `yaml:"message"` // commit message (empty = DefaultCommitMessage)
}

// DefaultCommitMessage is used when git.message is not configured.
const DefaultCommitMessage = "Update sample tracker"

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = use embedded assets
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			Output: "periodic_table.html",
		},
	}
}

// LoadConfig loads a config by name or path. A value containing a path
// separator or pointing at an existing file is used directly; otherwise the
// name is searched in the working directory and in ~/.config/elemtrack/.
// Returns ErrConfigNotFound listing the searched paths when nothing matches.
func LoadConfig(name string) (*Config, error) {
	if name == "" {
		return nil, ErrEmptyConfigName
	}

	path, searched, err := resolvePath(name)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("%w: %q (searched: %s)", ErrConfigNotFound, name, strings.Join(searched, ", "))
	}

	return loadFile(path)
}

// Discover loads DefaultConfigName from the working directory when present,
// otherwise returns defaults. Used when no --config flag is given.
func Discover() (*Config, error) {
	if _, err := os.Stat(DefaultConfigName); err != nil {
		return DefaultConfig(), nil
	}
	return loadFile(DefaultConfigName)
}

// resolvePath turns a config name into a concrete file path.
func resolvePath(name string) (path string, searched []string, err error) {
	// Explicit paths are used as-is.
	if strings.ContainsRune(name, os.PathSeparator) {
		if _, statErr := os.Stat(name); statErr != nil {
			return "", []string{name}, nil
		}
		return name, nil, nil
	}

	names := []string{name}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		names = append(names, name+".yaml")
	}
	candidates := append([]string{}, names...)
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		for _, n := range names {
			candidates = append(candidates, filepath.Join(home, ".config", "elemtrack", n))
		}
	}

	for _, c := range candidates {
		searched = append(searched, c)
		if info, statErr := os.Stat(c); statErr == nil && info.Mode().IsRegular() {
			return c, searched, nil
		}
	}
	return "", searched, nil
}

// loadFile reads, parses, and validates one config file.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigNotFound, path, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field lengths and value shapes. Called automatically by
// LoadConfig; available for consumers that assemble a Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("api.url", c.API.URL, MaxURLLength); err != nil {
		return err
	}
	if c.API.URL != "" {
		u, err := url.Parse(c.API.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: %q (must be http or https)", ErrInvalidURL, c.API.URL)
		}
	}
	if c.API.Timeout != "" {
		d, err := time.ParseDuration(c.API.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, c.API.Timeout)
		}
	}

	if err := validateFieldLength("report.output", c.Report.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.title", c.Report.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.notes", c.Report.Notes, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.date", c.Report.Date, MaxDateLength); err != nil {
		return err
	}

	for i, arg := range c.Generator.Command {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("%w: blank argv element at index %d", ErrInvalidCommand, i)
		}
	}
	if err := validateFieldLength("generator.venv", c.Generator.Venv, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("git.remote", c.Git.Remote, MaxRefLength); err != nil {
		return err
	}
	if err := validateFieldLength("git.branch", c.Git.Branch, MaxRefLength); err != nil {
		return err
	}
	if err := validateFieldLength("git.message", c.Git.Message, MaxMessageLength); err != nil {
		return err
	}

	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}
