package main

import (
	"errors"
	"os"

	elemtrack "github.com/dbecchi/elemtrack"
	"github.com/dbecchi/elemtrack/internal/assets"
	"github.com/dbecchi/elemtrack/internal/config"
	"github.com/dbecchi/elemtrack/internal/dateutil"
	"github.com/dbecchi/elemtrack/internal/extgen"
	"github.com/dbecchi/elemtrack/internal/gitx"
)

// Exit codes for the elemtrack CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitFetch   = 4 // Endpoint unreachable or payload rejected
	ExitGit     = 5 // Git pipeline errors
	ExitBrowser = 6 // Browser/Chrome errors (preview)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 6)
	if errors.Is(err, elemtrack.ErrBrowserConnect) ||
		errors.Is(err, elemtrack.ErrPageCreate) ||
		errors.Is(err, elemtrack.ErrPageLoad) ||
		errors.Is(err, elemtrack.ErrScreenshot) {
		return ExitBrowser
	}

	// Git errors (exit 5)
	if errors.Is(err, gitx.ErrNotARepo) ||
		errors.Is(err, gitx.ErrPull) ||
		errors.Is(err, gitx.ErrAdd) ||
		errors.Is(err, gitx.ErrCommit) ||
		errors.Is(err, gitx.ErrPush) ||
		errors.Is(err, gitx.ErrStatus) {
		return ExitGit
	}

	// Endpoint/payload errors (exit 4)
	if errors.Is(err, elemtrack.ErrEndpoint) ||
		errors.Is(err, elemtrack.ErrBadStatus) ||
		errors.Is(err, elemtrack.ErrBadPayload) {
		return ExitFetch
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadNotes) ||
		errors.Is(err, ErrWriteReport) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidURL) ||
		errors.Is(err, config.ErrInvalidCommand) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, elemtrack.ErrMissingAPIURL) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, extgen.ErrEmptyCommand) ||
		errors.Is(err, extgen.ErrVenvNotFound) ||
		errors.Is(err, ErrDumpJSONExternal) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
