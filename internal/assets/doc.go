// Package assets provides the CSS styles and page templates used to render
// the tracker report. Assets can be loaded from embedded files or from a
// custom directory that overrides them, with fallback to the embedded
// defaults.
package assets
