package elemtrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"unicode"
)

// Report grid geometry: 7 main periods, a half-height spacer row, and the
// two f-block rows, over the conventional 18 groups.
const (
	gridColumns    = 18
	mainPeriods    = 7
	spacerRow      = 8
	lanthanideRow  = 9
	actinideRow    = 10
	fBlockStartCol = 4
)

// emptyQuarterColor fills sample quarters that carry no legend state.
const emptyQuarterColor = "#eaeaea"

// AssetLoader defines the contract for loading CSS styles and page templates.
// The library ships embedded defaults; implement this interface to load from
// a custom directory or another backend.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html extension).
	LoadTemplate(name string) (string, error)
}

// reportDoc carries everything the renderer needs for one document.
type reportDoc struct {
	Title    string
	Elements []TrackedElement
	Legend   []LegendEntry
	Notes    template.HTML // pre-rendered notes panel, "" for none
	Updated  string        // display string for the footer, "" hides it
}

// reportRenderer abstracts HTML rendering for the service pipeline.
type reportRenderer interface {
	Render(doc reportDoc) ([]byte, error)
}

// htmlRenderer renders the report from an asset-loaded page template.
type htmlRenderer struct {
	assets  AssetLoader
	style   string
	tmplSet string
}

// Template view types. The page template receives one pageData.
type pageData struct {
	Title        string
	CSS          template.CSS
	Cells        []cellData
	Legend       []legendItem
	Notes        template.HTML
	Updated      string
	ElementsJSON template.JS
}

type cellData struct {
	Kind     string // "element", "empty", "spacer"
	Z        int
	Symbol   string
	Tip      string
	Quarters []quarterData
}

type quarterData struct {
	Index      int // 1-based badge shown in the quarter corner
	Background string
	StateID    string // sanitized state for data-state filtering
	Tip        string
}

type legendItem struct {
	Label   string
	Color   string
	StateID string
}

// Render produces the complete HTML document.
func (r *htmlRenderer) Render(doc reportDoc) ([]byte, error) {
	css, err := r.assets.LoadStyle(r.style)
	if err != nil {
		return nil, err
	}
	tmplText, err := r.assets.LoadTemplate(r.tmplSet)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("page").Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", ErrRender, err)
	}

	title := doc.Title
	if title == "" {
		title = DefaultTitle
	}

	elementsJSON, err := buildElementsJSON(doc.Elements)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	data := pageData{
		Title:        title,
		CSS:          template.CSS(css),
		Cells:        buildCells(doc.Elements),
		Legend:       buildLegend(doc.Legend),
		Notes:        doc.Notes,
		Updated:      doc.Updated,
		ElementsJSON: elementsJSON,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// buildCells lays the 118 elements out on the 10x18 grid in row-major
// order: main block on rows 1-7 with the f-block anchors blank, a spacer
// row, then the lanthanide and actinide series on rows 9 and 10.
func buildCells(elements []TrackedElement) []cellData {
	byZ := make(map[int]TrackedElement, len(elements))
	for _, e := range elements {
		byZ[e.Z] = e
	}
	pos := PositionMap()
	lanths, actins := FBlock()

	var cells []cellData
	for row := 1; row <= actinideRow; row++ {
		for col := 1; col <= gridColumns; col++ {
			if row == spacerRow {
				cells = append(cells, cellData{Kind: "spacer"})
				continue
			}

			z := 0
			switch {
			case row <= mainPeriods:
				z = pos[GridPos{Period: row, Group: col}]
			case row == lanthanideRow && col >= fBlockStartCol:
				if idx := col - fBlockStartCol; idx < len(lanths) {
					z = lanths[idx]
				}
			case row == actinideRow && col >= fBlockStartCol:
				if idx := col - fBlockStartCol; idx < len(actins) {
					z = actins[idx]
				}
			}

			e, ok := byZ[z]
			if z == 0 || !ok {
				cells = append(cells, cellData{Kind: "empty"})
				continue
			}
			cells = append(cells, elementCell(e))
		}
	}
	return cells
}

// elementCell builds the cell view for one element: tooltip text plus the
// four sample quarters.
func elementCell(e TrackedElement) cellData {
	tipLines := []string{e.Name, "Z=" + strconv.Itoa(e.Z)}
	for i, s := range e.Samples {
		var parts []string
		if s.State != "" {
			parts = append(parts, s.State)
		}
		if s.Value != "" {
			parts = append(parts, s.Value)
		}
		if len(parts) > 0 {
			tipLines = append(tipLines, fmt.Sprintf("%d: %s", i+1, strings.Join(parts, "; ")))
		}
	}

	quarters := make([]quarterData, SamplesPerElement)
	for i, s := range e.Samples {
		bg := s.Color
		if bg == "" {
			bg = emptyQuarterColor
		}
		var tipParts []string
		if s.State != "" {
			tipParts = append(tipParts, s.State)
		}
		if s.Value != "" {
			tipParts = append(tipParts, s.Value)
		}
		quarters[i] = quarterData{
			Index:      i + 1,
			Background: bg,
			StateID:    SanitizeLabel(s.State),
			Tip:        strings.Join(tipParts, " | "),
		}
	}

	return cellData{
		Kind:     "element",
		Z:        e.Z,
		Symbol:   e.Symbol,
		Tip:      strings.Join(tipLines, "\n"),
		Quarters: quarters,
	}
}

// buildLegend converts legend entries to view items, dropping blank labels.
func buildLegend(entries []LegendEntry) []legendItem {
	items := make([]legendItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Label == "" {
			continue
		}
		items = append(items, legendItem{
			Label:   entry.Label,
			Color:   entry.Color,
			StateID: SanitizeLabel(entry.Label),
		})
	}
	return items
}

// buildElementsJSON encodes the per-element sample data consumed by the
// page script for detail popups. Keys are atomic numbers.
func buildElementsJSON(elements []TrackedElement) (template.JS, error) {
	type jsSample struct {
		State string `json:"state"`
		Value string `json:"value"`
	}
	type jsElement struct {
		Z       int        `json:"z"`
		Symbol  string     `json:"symbol"`
		Name    string     `json:"name"`
		Samples []jsSample `json:"samples"`
	}

	byZ := make(map[string]jsElement, len(elements))
	for _, e := range elements {
		samples := make([]jsSample, SamplesPerElement)
		for i, s := range e.Samples {
			samples[i] = jsSample{State: s.State, Value: s.Value}
		}
		byZ[strconv.Itoa(e.Z)] = jsElement{Z: e.Z, Symbol: e.Symbol, Name: e.Name, Samples: samples}
	}

	encoded, err := json.Marshal(byZ)
	if err != nil {
		return "", err
	}
	// json.Marshal escapes <, >, and & by default, so the blob is safe to
	// inline in a <script> block.
	return template.JS(encoded), nil
}

// SanitizeLabel converts a state label into a CSS-safe identifier:
// lowercased, each non-alphanumeric character becomes a dash, leading and trailing
// dashes trimmed. Used for data-state attributes and legend filtering.
func SanitizeLabel(label string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(label) {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			b.WriteRune(ch)
		} else {
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
