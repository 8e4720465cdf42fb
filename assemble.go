package elemtrack

import (
	"fmt"
	"strconv"
	"strings"
)

// assembler abstracts tracker assembly for the service pipeline.
type assembler interface {
	Assemble(p *Payload) []TrackedElement
}

// sheetAssembler joins payload rows with periodic table metadata.
type sheetAssembler struct{}

// Assemble returns all 118 elements in atomic number order. Payload rows
// are matched by symbol; elements missing from the sheet get four empty
// samples, short sample lists are padded, and a sample that has a state
// but no color inherits the color from LabelColors.
func (sheetAssembler) Assemble(p *Payload) []TrackedElement {
	rows := make(map[string]PayloadElement, len(p.Elements))
	for _, entry := range p.Elements {
		sym := strings.TrimSpace(entry.Symbol)
		if sym == "" {
			continue
		}
		rows[sym] = entry
	}

	tracked := make([]TrackedElement, 0, len(PeriodicTable))
	for _, meta := range PeriodicTable {
		te := TrackedElement{Z: meta.Z, Symbol: meta.Symbol, Name: meta.Name}
		if entry, ok := rows[meta.Symbol]; ok {
			for i, s := range entry.Samples {
				if i >= SamplesPerElement {
					break
				}
				sample := Sample{
					Value: cellString(s.Value),
					State: strings.TrimSpace(s.State),
					Color: strings.TrimSpace(s.Color),
				}
				if sample.State != "" && sample.Color == "" {
					sample.Color = p.LabelColors[sample.State]
				}
				te.Samples[i] = sample
			}
		}
		tracked = append(tracked, te)
	}
	return tracked
}

// cellString normalizes a spreadsheet cell value to a display string.
// JSON numbers decode as float64; integral values must not render with a
// decimal point ("42", not "42.000000").
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
