package elemtrack

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dbecchi/elemtrack/internal/assets"
)

func testRenderer() *htmlRenderer {
	return &htmlRenderer{
		assets:  assets.NewEmbeddedLoader(),
		style:   assets.DefaultStyle,
		tmplSet: assets.DefaultTemplate,
	}
}

func testElements() []TrackedElement {
	tracked := sheetAssembler{}.Assemble(&Payload{LabelColors: map[string]string{}})
	tracked[0].Samples[0] = Sample{Value: "x", State: "presente", Color: "#00ff00"}
	return tracked
}

func TestRenderDocument(t *testing.T) {
	html, err := testRenderer().Render(reportDoc{
		Title:    "My Tracker",
		Elements: testElements(),
		Legend: []LegendEntry{
			{Label: "presente", Color: "#00ff00"},
			{Label: "da comprare", Color: "#ff0000"},
		},
		Updated: "2026-08-30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(html)
	for _, want := range []string{
		"<title>My Tracker</title>",
		"presente",
		"da comprare",
		`data-state="da-comprare"`,
		"#00ff00",
		"Aggiornato: 2026-08-30",
		"const elementsData",
		"Hydrogen",
		"Og", // last element present
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestRenderDefaultTitle(t *testing.T) {
	html, err := testRenderer().Render(reportDoc{Elements: testElements()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(html), DefaultTitle) {
		t.Errorf("default title %q not used", DefaultTitle)
	}
}

func TestRenderNotesPanel(t *testing.T) {
	html, err := testRenderer().Render(reportDoc{
		Elements: testElements(),
		Notes:    template.HTML("<p>note body</p>"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(html), "<p>note body</p>") {
		t.Error("notes panel not rendered")
	}
}

func TestRenderUnknownStyle(t *testing.T) {
	r := testRenderer()
	r.style = "no-such-style"
	if _, err := r.Render(reportDoc{Elements: testElements()}); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestBuildCellsGeometry(t *testing.T) {
	cells := buildCells(testElements())

	if len(cells) != actinideRow*gridColumns {
		t.Fatalf("got %d cells, want %d", len(cells), actinideRow*gridColumns)
	}

	at := func(row, col int) cellData {
		return cells[(row-1)*gridColumns+(col-1)]
	}

	if c := at(1, 1); c.Kind != "element" || c.Symbol != "H" {
		t.Errorf("(1,1) = %+v, want H", c)
	}
	if c := at(1, 2); c.Kind != "empty" {
		t.Errorf("(1,2) = %+v, want empty", c)
	}
	if c := at(1, 18); c.Symbol != "He" {
		t.Errorf("(1,18) = %+v, want He", c)
	}
	// Anchor positions stay blank; the series render on their own rows.
	if c := at(6, 3); c.Kind != "empty" {
		t.Errorf("(6,3) = %+v, want empty anchor", c)
	}
	if c := at(7, 3); c.Kind != "empty" {
		t.Errorf("(7,3) = %+v, want empty anchor", c)
	}
	for col := 1; col <= gridColumns; col++ {
		if c := at(spacerRow, col); c.Kind != "spacer" {
			t.Fatalf("(8,%d) = %+v, want spacer", col, c)
		}
	}
	if c := at(lanthanideRow, fBlockStartCol); c.Symbol != "La" {
		t.Errorf("(9,%d) = %+v, want La", fBlockStartCol, c)
	}
	if c := at(actinideRow, gridColumns); c.Symbol != "Lr" {
		t.Errorf("(10,18) = %+v, want Lr", c)
	}
	if c := at(lanthanideRow, 1); c.Kind != "empty" {
		t.Errorf("(9,1) = %+v, want empty", c)
	}
}

func TestElementCell(t *testing.T) {
	e := TrackedElement{Z: 1, Symbol: "H", Name: "Hydrogen"}
	e.Samples[0] = Sample{Value: "x", State: "presente", Color: "#00ff00"}

	cell := elementCell(e)
	if cell.Kind != "element" || cell.Z != 1 {
		t.Fatalf("cell = %+v", cell)
	}
	if len(cell.Quarters) != SamplesPerElement {
		t.Fatalf("got %d quarters, want %d", len(cell.Quarters), SamplesPerElement)
	}

	q := cell.Quarters[0]
	if q.Background != "#00ff00" || q.StateID != "presente" || q.Tip != "presente | x" {
		t.Errorf("quarter 0 = %+v", q)
	}
	if empty := cell.Quarters[1]; empty.Background != emptyQuarterColor || empty.StateID != "" {
		t.Errorf("empty quarter = %+v", empty)
	}

	if !strings.Contains(cell.Tip, "Hydrogen") || !strings.Contains(cell.Tip, "Z=1") {
		t.Errorf("tooltip = %q", cell.Tip)
	}
	if !strings.Contains(cell.Tip, "1: presente; x") {
		t.Errorf("tooltip missing sample line: %q", cell.Tip)
	}
}

func TestBuildLegendDropsBlankLabels(t *testing.T) {
	items := buildLegend([]LegendEntry{
		{Label: "presente", Color: "#00ff00"},
		{Label: "", Color: "#ffffff"},
	})
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].StateID != "presente" {
		t.Errorf("StateID = %q", items[0].StateID)
	}
}

func TestBuildElementsJSONEscapes(t *testing.T) {
	e := TrackedElement{Z: 1, Symbol: "H", Name: "Hydrogen"}
	e.Samples[0] = Sample{Value: "</script><b>", State: "s"}

	js, err := buildElementsJSON([]TrackedElement{e})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(js), "</script>") {
		t.Error("JSON blob contains a raw </script>")
	}
	if !strings.Contains(string(js), `"1"`) {
		t.Error("elements not keyed by atomic number")
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"presente", "presente"},
		{"da comprare", "da-comprare"},
		{"In Arrivo!", "in-arrivo"},
		{"  spaced  ", "spaced"},
		{"a--b", "a--b"},
		{"", ""},
		{"---", ""},
		{"già ordinato", "già-ordinato"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeLabel(tt.in); got != tt.want {
				t.Errorf("SanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
