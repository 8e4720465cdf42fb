package elemtrack

import "testing"

func TestAssemble(t *testing.T) {
	p := &Payload{
		Elements: []PayloadElement{
			{Symbol: "H", Samples: []PayloadSample{
				{Value: "x", State: "presente", Color: "#00ff00"},
				{Value: float64(42), State: "in arrivo", Color: ""},
			}},
			{Symbol: " Fe ", Samples: []PayloadSample{
				{Value: "ok", State: " presente ", Color: " #00ff00 "},
			}},
			{Symbol: "", Samples: []PayloadSample{{Value: "ignored"}}},
		},
		LabelColors: map[string]string{"in arrivo": "#ffcc00"},
	}

	tracked := sheetAssembler{}.Assemble(p)
	if len(tracked) != 118 {
		t.Fatalf("got %d elements, want 118", len(tracked))
	}

	h := tracked[0]
	if h.Symbol != "H" || h.Name != "Hydrogen" {
		t.Fatalf("first element = %+v, want hydrogen", h)
	}
	if h.Samples[0].Value != "x" || h.Samples[0].State != "presente" {
		t.Errorf("sample 0 = %+v", h.Samples[0])
	}
	if h.Samples[1].Value != "42" {
		t.Errorf("numeric value = %q, want 42", h.Samples[1].Value)
	}
	if h.Samples[1].Color != "#ffcc00" {
		t.Errorf("color fallback = %q, want #ffcc00 from labelColors", h.Samples[1].Color)
	}
	if h.Samples[2].State != "" || h.Samples[3].State != "" {
		t.Error("missing samples should stay empty")
	}
}

func TestAssembleTrimsSymbolWhitespace(t *testing.T) {
	p := &Payload{
		Elements: []PayloadElement{
			{Symbol: " Fe ", Samples: []PayloadSample{{Value: "ok", State: "presente"}}},
		},
		LabelColors: map[string]string{},
	}

	tracked := sheetAssembler{}.Assemble(p)
	fe := tracked[25] // Z=26
	if fe.Symbol != "Fe" {
		t.Fatalf("element at Z=26 is %q", fe.Symbol)
	}
	if fe.Samples[0].Value != "ok" {
		t.Errorf("Fe samples not matched: %+v", fe.Samples[0])
	}
	if fe.Samples[0].State != "presente" {
		t.Errorf("state = %q, want trimmed presente", fe.Samples[0].State)
	}
}

func TestAssembleCapsExtraSamples(t *testing.T) {
	samples := make([]PayloadSample, 6)
	for i := range samples {
		samples[i] = PayloadSample{Value: "v", State: "presente"}
	}
	p := &Payload{
		Elements:    []PayloadElement{{Symbol: "H", Samples: samples}},
		LabelColors: map[string]string{},
	}

	tracked := sheetAssembler{}.Assemble(p)
	if got := len(tracked[0].Samples); got != SamplesPerElement {
		t.Errorf("samples array has %d slots, want %d", got, SamplesPerElement)
	}
}

func TestAssembleUnknownSymbolIgnored(t *testing.T) {
	p := &Payload{
		Elements:    []PayloadElement{{Symbol: "Xx", Samples: []PayloadSample{{Value: "?"}}}},
		LabelColors: map[string]string{},
	}

	tracked := sheetAssembler{}.Assemble(p)
	for _, te := range tracked {
		for _, s := range te.Samples {
			if s.Value != "" {
				t.Fatalf("unknown symbol leaked into %s: %+v", te.Symbol, s)
			}
		}
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"integral float", float64(42), "42"},
		{"decimal float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"zero", float64(0), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellString(tt.in); got != tt.want {
				t.Errorf("cellString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
