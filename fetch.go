package elemtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxPayloadBytes caps the endpoint response size to prevent memory
// exhaustion on a misbehaving deployment. The real payload is a few
// hundred KB at most (118 rows, four samples each).
const maxPayloadBytes = 8 << 20 // 8MB

// statusPreviewBytes bounds how much of a non-200 response body is
// quoted in the error message.
const statusPreviewBytes = 200

// PayloadSample is one sample cell as returned by the Apps Script.
// Value is any because spreadsheet cells may hold numbers or strings.
type PayloadSample struct {
	Value any    `json:"value"`
	State string `json:"state"`
	Color string `json:"color"`
}

// PayloadElement is one element row as returned by the Apps Script.
type PayloadElement struct {
	Row     int             `json:"row"`
	Symbol  string          `json:"symbol"`
	Samples []PayloadSample `json:"samples"`
}

// Payload is the parsed endpoint response.
type Payload struct {
	Elements    []PayloadElement
	Legend      []LegendEntry     // legend range order; nil if absent
	LabelColors map[string]string // state label -> hex color

	// labelOrder preserves the labelColors key order from the payload.
	// Ranging over the map instead would randomize the legend between
	// runs and make identical data render different bytes.
	labelOrder []LegendEntry
}

// LegendOrder returns the legend entries in display order. When the payload
// carried no legend range, it falls back to labelColors in payload order.
func (p *Payload) LegendOrder() []LegendEntry {
	if len(p.Legend) > 0 {
		return p.Legend
	}
	return p.labelOrder
}

// payloadFetcher abstracts the endpoint client to enable testing without
// a live Apps Script deployment.
type payloadFetcher interface {
	Fetch(ctx context.Context, apiURL, sheetID string) (*Payload, []byte, error)
}

// sheetClient fetches the tracker payload over HTTP.
type sheetClient struct {
	client *http.Client
}

// newSheetClient creates a sheetClient with explicit transport timeouts.
// The overall timeout also bounds redirect chains; Apps Script deployments
// redirect /exec to a googleusercontent.com content URL.
func newSheetClient(timeout time.Duration) *sheetClient {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &sheetClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				ForceAttemptHTTP2:     true,
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// Compile-time interface check.
var _ payloadFetcher = (*sheetClient)(nil)

// Fetch retrieves and parses the payload. The raw response bytes are
// returned alongside so callers can dump them for debugging.
// sheetID, when non-empty, is passed as the id query parameter; the Apps
// Script may ignore it if the spreadsheet ID is hardcoded.
func (c *sheetClient) Fetch(ctx context.Context, apiURL, sheetID string) (*Payload, []byte, error) {
	if strings.TrimSpace(apiURL) == "" {
		return nil, nil, ErrMissingAPIURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrEndpoint, err)
	}
	if sheetID != "" {
		q := req.URL.Query()
		q.Set("id", sheetID)
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// Unwrap url.Error so messages read "endpoint request failed: ..."
		// instead of repeating the method and URL twice.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, nil, fmt.Errorf("%w: %v", ErrEndpoint, uerr.Err)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrEndpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, statusPreviewBytes))
		return nil, nil, fmt.Errorf("%w: %d: %s", ErrBadStatus, resp.StatusCode, strings.TrimSpace(string(preview)))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading response: %v", ErrEndpoint, err)
	}
	if len(raw) > maxPayloadBytes {
		return nil, nil, fmt.Errorf("%w: response exceeds %d bytes", ErrBadPayload, maxPayloadBytes)
	}

	payload, err := parsePayload(raw)
	if err != nil {
		return nil, nil, err
	}
	return payload, raw, nil
}

// parsePayload decodes the endpoint JSON. The top level must be an object
// with an elements key; legend and labelColors are optional.
func parsePayload(raw []byte) (*Payload, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v: %s", ErrBadPayload, err, jsonPreview(raw))
	}

	elementsRaw, ok := top["elements"]
	if !ok {
		return nil, fmt.Errorf("%w: missing elements key", ErrBadPayload)
	}

	p := &Payload{LabelColors: map[string]string{}}
	if err := json.Unmarshal(elementsRaw, &p.Elements); err != nil {
		return nil, fmt.Errorf("%w: elements: %v", ErrBadPayload, err)
	}

	if lcRaw, ok := top["labelColors"]; ok {
		pairs, err := orderedPairs(lcRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: labelColors: %v", ErrBadPayload, err)
		}
		for _, kv := range pairs {
			p.LabelColors[kv[0]] = kv[1]
			p.labelOrder = append(p.labelOrder, LegendEntry{Label: kv[0], Color: kv[1]})
		}
	}

	if legendRaw, ok := top["legend"]; ok {
		pairs, err := orderedPairs(legendRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: legend: %v", ErrBadPayload, err)
		}
		for _, kv := range pairs {
			// Legend keys are hex colors, values the state labels.
			p.Legend = append(p.Legend, LegendEntry{Label: kv[1], Color: kv[0]})
		}
	}

	return p, nil
}

// orderedPairs decodes a JSON object of string values preserving key order,
// which encoding/json maps discard. Both the legend range and labelColors
// drive on-page ordering, so the objects are walked token by token.
func orderedPairs(raw []byte) ([][2]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var pairs [][2]string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, nil
}

// jsonPreview returns the first lines of a response body for error messages.
func jsonPreview(raw []byte) string {
	const maxLines = 5
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	preview := strings.Join(lines, " ")
	if len(preview) > statusPreviewBytes {
		preview = preview[:statusPreviewBytes]
	}
	return preview
}
