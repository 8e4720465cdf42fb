package elemtrack

import (
	"net/http"
	"time"
)

// DefaultTitle is used when no document title is specified.
const DefaultTitle = "Periodic Table – Sample tracker"

// SamplesPerElement is the number of tracked sample slots per element,
// matching columns B-E of the source spreadsheet.
const SamplesPerElement = 4

// Input contains generation parameters.
type Input struct {
	APIURL  string // Apps Script web app endpoint ending in /exec (required)
	SheetID string // Spreadsheet ID, passed as ?id= (optional)
	Title   string // Document title (empty = DefaultTitle)
	Notes   string // Markdown for the notes panel (optional)
	Updated string // Display string for the "last updated" footer (optional)
}

// Result holds the outcome of a generation run.
type Result struct {
	HTML    []byte // Rendered report document
	RawJSON []byte // Raw payload bytes as returned by the endpoint
}

// Sample is one of the four tracked sample slots of an element.
type Sample struct {
	Value string // Original cell value, blank normalized to ""
	State string // Legend label ("da comprare", "in arrivo", ...)
	Color string // Hex color for the state, may be ""
}

// TrackedElement joins a chemical element with its sheet samples.
type TrackedElement struct {
	Z       int
	Symbol  string
	Name    string
	Samples [SamplesPerElement]Sample
}

// LegendEntry maps a state label to its color, in spreadsheet legend order.
type LegendEntry struct {
	Label string
	Color string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout    time.Duration
	style      string
	tmplSet    string
	httpClient *http.Client
}

// defaultTimeout bounds the endpoint request when the caller's context
// carries no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the endpoint request timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("elemtrack: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client used to reach the endpoint.
// Useful for tests and custom transport policies.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		s.cfg.httpClient = c
	}
}

// WithStyle selects a CSS style by name (see internal/assets/styles).
func WithStyle(name string) Option {
	return func(s *Service) {
		s.cfg.style = name
	}
}

// WithTemplateSet selects a page template set by name.
func WithTemplateSet(name string) Option {
	return func(s *Service) {
		s.cfg.tmplSet = name
	}
}

// WithAssetLoader replaces the asset loader used for styles and templates.
func WithAssetLoader(l AssetLoader) Option {
	return func(s *Service) {
		s.assets = l
	}
}
