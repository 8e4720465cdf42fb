// Package elemtrack generates an interactive periodic-table sample tracker
// as a self-contained HTML document.
//
// The data source is a Google Apps Script web app backed by a spreadsheet
// whose rows correspond to the 118 chemical elements. Each row carries four
// sample cells colored according to a legend of states ("da comprare",
// "in arrivo", ...). The generator fetches that JSON payload, joins it with
// built-in periodic table metadata, and renders an HTML page where every
// element cell shows a 2x2 grid of sample quarters colored by state, with
// click-to-filter legend buttons and per-element detail popups.
//
// # Quick Start
//
// Create a service, generate, and write the report:
//
//	svc := elemtrack.New()
//	result, err := svc.Generate(ctx, elemtrack.Input{
//	    APIURL: "https://script.google.com/macros/s/<deployment>/exec",
//	    Title:  "Periodic Table – Sample tracker",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("tracker.html", result.HTML, 0644)
//
// The result also carries the raw JSON payload (result.RawJSON) so callers
// can persist it for debugging.
//
// # Generation Pipeline
//
// Generation follows three stages:
//
//  1. Fetch the JSON payload from the Apps Script endpoint
//  2. Assemble 118 tracked elements from payload rows and table metadata
//  3. Render the HTML document from embedded templates and styles
//
// An optional markdown notes file can be rendered (via Goldmark) into a
// collapsible panel of the report, and an optional PNG preview of the
// rendered page can be captured with headless Chrome (go-rod).
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := elemtrack.New(
//	    elemtrack.WithTimeout(time.Minute),
//	    elemtrack.WithStyle("tracker"),
//	)
//
// The cmd/elemtrack CLI wraps this package with a git publish pipeline:
// pull, generate, stage, commit, push.
package elemtrack
