package elemtrack

import (
	"context"
	"fmt"

	"github.com/dbecchi/elemtrack/internal/assets"
)

// Service orchestrates the payload-to-report pipeline.
type Service struct {
	cfg      serviceConfig
	fetcher  payloadFetcher
	assemble assembler
	notes    notesRenderer
	assets   AssetLoader
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			style:   assets.DefaultStyle,
			tmplSet: assets.DefaultTemplate,
		},
		assemble: sheetAssembler{},
		notes:    newGoldmarkNotes(),
		assets:   assets.NewEmbeddedLoader(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Create the endpoint client if not injected (e.g., by tests), after
	// options so WithTimeout and WithHTTPClient take effect.
	if s.fetcher == nil {
		client := newSheetClient(s.cfg.timeout)
		if s.cfg.httpClient != nil {
			client.client = s.cfg.httpClient
		}
		s.fetcher = client
	}

	return s
}

// Generate runs the full pipeline and returns the rendered report.
// The context is used for cancellation and timeout; the configured timeout
// applies on top of it for the endpoint request.
func (s *Service) Generate(ctx context.Context, input Input) (*Result, error) {
	if input.APIURL == "" {
		return nil, ErrMissingAPIURL
	}

	payload, raw, err := s.fetcher.Fetch(ctx, input.APIURL, input.SheetID)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	tracked := s.assemble.Assemble(payload)

	notesHTML, err := s.notes.RenderNotes(input.Notes)
	if err != nil {
		return nil, err
	}

	renderer := &htmlRenderer{assets: s.assets, style: s.cfg.style, tmplSet: s.cfg.tmplSet}
	html, err := renderer.Render(reportDoc{
		Title:    input.Title,
		Elements: tracked,
		Legend:   payload.LegendOrder(),
		Notes:    notesHTML,
		Updated:  input.Updated,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	return &Result{HTML: html, RawJSON: raw}, nil
}
