package elemtrack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// mockFetcher returns a canned payload without network access.
type mockFetcher struct {
	payload *Payload
	raw     []byte
	err     error
	calls   int
	lastURL string
	lastID  string
}

func (m *mockFetcher) Fetch(ctx context.Context, apiURL, sheetID string) (*Payload, []byte, error) {
	m.calls++
	m.lastURL = apiURL
	m.lastID = sheetID
	return m.payload, m.raw, m.err
}

func testPayload() *Payload {
	return &Payload{
		Elements: []PayloadElement{
			{Symbol: "H", Samples: []PayloadSample{{Value: "x", State: "presente", Color: "#00ff00"}}},
		},
		Legend:      []LegendEntry{{Label: "presente", Color: "#00ff00"}},
		LabelColors: map[string]string{"presente": "#00ff00"},
	}
}

func newTestService(f payloadFetcher) *Service {
	s := New()
	s.fetcher = f
	return s
}

func TestGenerate(t *testing.T) {
	fetcher := &mockFetcher{payload: testPayload(), raw: []byte(`{"elements":[]}`)}
	svc := newTestService(fetcher)

	result, err := svc.Generate(context.Background(), Input{
		APIURL:  "https://script.google.com/macros/s/x/exec",
		SheetID: "sheet-1",
		Title:   "Tracker",
		Notes:   "# Note",
		Updated: "2026-08-30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls != 1 || fetcher.lastID != "sheet-1" {
		t.Errorf("fetcher calls=%d lastID=%q", fetcher.calls, fetcher.lastID)
	}
	out := string(result.HTML)
	for _, want := range []string{"<title>Tracker</title>", "presente", "Aggiornato: 2026-08-30", "Note"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if string(result.RawJSON) != `{"elements":[]}` {
		t.Errorf("raw JSON not passed through: %q", result.RawJSON)
	}
}

func TestGenerateMissingAPIURL(t *testing.T) {
	svc := newTestService(&mockFetcher{})
	if _, err := svc.Generate(context.Background(), Input{}); !errors.Is(err, ErrMissingAPIURL) {
		t.Errorf("got %v, want ErrMissingAPIURL", err)
	}
}

func TestGenerateFetchError(t *testing.T) {
	fetchErr := errors.New("boom")
	svc := newTestService(&mockFetcher{err: fetchErr})

	_, err := svc.Generate(context.Background(), Input{APIURL: "https://example.com/exec"})
	if !errors.Is(err, fetchErr) {
		t.Errorf("got %v, want fetch error passthrough", err)
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(&mockFetcher{payload: testPayload()})
	_, err := svc.Generate(ctx, Input{APIURL: "https://example.com/exec"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestGenerateEndToEndHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	svc := New(WithTimeout(5 * time.Second))
	result, err := svc.Generate(context.Background(), Input{APIURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(result.HTML), DefaultTitle) {
		t.Error("default title missing from end-to-end report")
	}
}

func TestWithTimeoutPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive timeout")
		}
	}()
	WithTimeout(0)
}

func TestWithStyleUnknownFailsAtRender(t *testing.T) {
	svc := New(WithStyle("no-such-style"))
	svc.fetcher = &mockFetcher{payload: testPayload()}

	_, err := svc.Generate(context.Background(), Input{APIURL: "https://example.com/exec"})
	if err == nil {
		t.Fatal("expected error for unknown style")
	}
}
