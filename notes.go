package elemtrack

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// notesRenderer abstracts markdown rendering for the notes panel.
type notesRenderer interface {
	RenderNotes(markdown string) (template.HTML, error)
}

// goldmarkNotes renders the notes panel with goldmark (pure Go).
type goldmarkNotes struct {
	md goldmark.Markdown
}

// newGoldmarkNotes creates a goldmarkNotes with GFM extensions.
func newGoldmarkNotes() *goldmarkNotes {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, autolinks, task lists
		),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
			ghtml.WithXHTML(),
		),
	)
	return &goldmarkNotes{md: md}
}

// RenderNotes converts the notes markdown to an HTML fragment for the
// collapsible panel. Raw HTML in the markdown is not passed through
// (goldmark's default), so payload-adjacent content cannot inject markup.
func (r *goldmarkNotes) RenderNotes(markdown string) (template.HTML, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotesRender, err)
	}
	return template.HTML(buf.String()), nil
}
