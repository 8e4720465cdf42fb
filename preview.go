package elemtrack

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/dbecchi/elemtrack/internal/fileutil"
)

// Previewer captures PNG screenshots of rendered reports using headless
// Chrome via go-rod. Rod downloads a managed Chromium on first run if no
// browser is found; set ROD_BROWSER_BIN to use a pre-installed one and
// ROD_NO_SANDBOX=1 in containers and CI.
type Previewer struct {
	browser *rod.Browser
	timeout time.Duration
}

// NewPreviewer creates a Previewer. The browser is launched lazily on the
// first capture.
func NewPreviewer(timeout time.Duration) *Previewer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Previewer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (p *Previewer) ensureBrowser() error {
	if p.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	p.browser = browser
	return nil
}

// Close releases browser resources.
func (p *Previewer) Close() error {
	if p.browser != nil {
		err := p.browser.Close()
		p.browser = nil
		return err
	}
	return nil
}

// Capture renders htmlContent in headless Chrome and returns a full-page
// PNG screenshot.
func (p *Previewer) Capture(ctx context.Context, htmlContent []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(string(htmlContent), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.captureFile(ctx, tmpPath)
}

// captureFile opens a local HTML file and screenshots the full page.
func (p *Previewer) captureFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := p.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := p.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return png, nil
}
