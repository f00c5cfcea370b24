package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/eulerdraw/pkg/catalog"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/observability"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	s := New(pipeline.NewRunner(nil, nil, nil), WithDefaults(pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
		Labels:  true,
	}))
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response has no request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestExamples(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/v1/examples", "")
	var all []catalog.Example
	if err := json.NewDecoder(rec.Body).Decode(&all); err != nil {
		t.Fatalf("decode examples: %v", err)
	}
	if len(all) != len(catalog.All()) {
		t.Errorf("GET /v1/examples = %d examples, want %d", len(all), len(catalog.All()))
	}

	rec = do(t, h, http.MethodGet, "/v1/examples?group=venn", "")
	var venn []catalog.Example
	if err := json.NewDecoder(rec.Body).Decode(&venn); err != nil {
		t.Fatalf("decode examples: %v", err)
	}
	if len(venn) != len(catalog.Group("venn")) || len(venn) == 0 {
		t.Errorf("GET /v1/examples?group=venn = %d examples", len(venn))
	}

	rec = do(t, h, http.MethodGet, "/v1/examples/venn-3", "")
	var ex catalog.Example
	if err := json.NewDecoder(rec.Body).Decode(&ex); err != nil {
		t.Fatalf("decode example: %v", err)
	}
	if ex.Name != "Venn-3" {
		t.Errorf("GET /v1/examples/venn-3 name = %q", ex.Name)
	}
}

func TestDraw(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/v1/draw", `{"description": "a b ab", "formats": ["svg", "json"], "shading": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/draw status = %d, body %s", rec.Code, rec.Body)
	}

	var resp drawResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" {
		t.Error("run_id is empty")
	}
	if resp.Stats.Curves != 2 || resp.Stats.Zones != 3 {
		t.Errorf("stats = %+v, want 2 curves and 3 zones", resp.Stats)
	}
	if !bytes.HasPrefix(resp.Artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact = %.20q", resp.Artifacts["svg"])
	}
	if _, ok := resp.Artifacts["json"]; !ok {
		t.Error("json artifact missing")
	}
	if resp.Layout.Original != "a b ab" {
		t.Errorf("layout original = %q, want %q", resp.Layout.Original, "a b ab")
	}
}

func TestDrawErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed json", `{"description":`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"description": "a", "colour": "red"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"no input", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"repeated label", `{"description": "a aa"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", `{"description": "a", "formats": ["gif"]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown example", `{"example": "nope"}`, http.StatusNotFound, errors.ErrCodeNotFound},
	}

	h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/draw", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %s, want %s", body.Code, tt.code)
			}
			if body.RequestID == "" {
				t.Error("error body has no request_id")
			}
		})
	}
}

func TestContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/draw", strings.NewReader("a b ab"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDecompose(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/decompose", `{"description": "a b ab c d cd"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/decompose status = %d, body %s", rec.Code, rec.Body)
	}
	var resp decomposeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Components) != 2 || len(resp.Steps) != 2 {
		t.Errorf("components = %v, want 2 with steps each", resp.Components)
	}
	for i, steps := range resp.Steps {
		if len(steps) != 2 {
			t.Errorf("component %d has %d steps, want 2", i, len(steps))
		}
	}
}

func TestNotFoundRoute(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/v2/nothing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeInvariant, http.StatusUnprocessableEntity},
		{errors.ErrCodeInfeasible, http.StatusUnprocessableEntity},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.code); got != tt.want {
			t.Errorf("StatusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	responses []string
	errors    int
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, method+" "+route+" "+http.StatusText(status))
}

func (h *recordingHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	h := newTestServer(t)
	do(t, h, http.MethodGet, "/v1/examples/venn-3", "")
	do(t, h, http.MethodGet, "/v1/examples/nope", "")

	want := []string{
		"GET /v1/examples/{name} OK",
		"GET /v1/examples/{name} Not Found",
	}
	if len(rec.responses) != len(want) {
		t.Fatalf("responses = %v, want %v", rec.responses, want)
	}
	for i := range want {
		if rec.responses[i] != want[i] {
			t.Errorf("responses[%d] = %q, want %q", i, rec.responses[i], want[i])
		}
	}
	if rec.errors != 1 {
		t.Errorf("errors = %d, want 1", rec.errors)
	}
}
