package elemtrack

import "errors"

// Sentinel errors for library operations.
var (
	ErrMissingAPIURL = errors.New("api url cannot be empty")
	ErrEndpoint      = errors.New("endpoint request failed")
	ErrBadStatus     = errors.New("endpoint returned non-200 status")
	ErrBadPayload    = errors.New("unexpected payload structure")
	ErrRender        = errors.New("report rendering failed")
	ErrNotesRender   = errors.New("notes rendering failed")

	// Preview (headless Chrome) errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("screenshot capture failed")
)
