package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	appmw "eventflow-backend/internal/adapter/middleware"
	"eventflow-backend/internal/domain/actor"
)

const (
	presidentID = "11111111111111111111111111111111"
	vpID        = "22222222222222222222222222222222"
	eventID     = "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
)

func mustJSON(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// call sends a request through the full router as the given actor.
func call(t *testing.T, e *echo.Echo, method, path string, body io.Reader, who actor.Actor) *httptest.ResponseRecorder {
	t.Helper()
	return callWithHeaders(t, e, method, path, body, who, nil)
}

func callWithHeaders(t *testing.T, e *echo.Echo, method, path string, body io.Reader, who actor.Actor, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if who.ID != "" {
		req.Header.Set(appmw.HeaderActorID, who.ID)
		req.Header.Set(appmw.HeaderActorRole, string(who.Role))
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad error json: %v; raw=%s", err, rec.Body.String())
	}
	return er
}

func TestHealth_ReturnsOKWithRFC3339NanoUTC(t *testing.T) {
	e := echo.New()
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	start := time.Now().UTC()

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// Status code
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// Content-Type
	ct := rec.Header().Get(echo.HeaderContentType)
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	// Body JSON
	var body struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}

	if body.Status != "ok" {
		t.Fatalf(`expected status "ok", got %q`, body.Status)
	}

	// Time is RFC3339Nano and UTC (with 'Z')
	parsed, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil {
		t.Fatalf("time not RFC3339Nano: %v (value=%q)", err, body.Time)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", parsed.Location())
	}
	// Freshness: should be close to now (within a few seconds)
	now := time.Now().UTC()
	if parsed.Before(start.Add(-2*time.Second)) || parsed.After(now.Add(2*time.Second)) {
		t.Fatalf("time not within expected window: parsed=%v start=%v now=%v", parsed, start, now)
	}
}

func TestRouter_HealthAndMetricsNeedNoActor(t *testing.T) {
	e := NewRouter(RouterDeps{})

	if rec := call(t, e, http.MethodGet, "/health", nil, actor.Actor{}); rec.Code != http.StatusOK {
		t.Fatalf("/health = %d", rec.Code)
	}
	rec := call(t, e, http.MethodGet, "/metrics", nil, actor.Actor{})
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "eventflow_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

func TestRouter_APIRequiresActor(t *testing.T) {
	e := NewRouter(RouterDeps{})
	rec := call(t, e, http.MethodGet, "/dashboard/pending", nil, actor.Actor{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestCurrentActor_MissingWrites401(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if _, ok := currentActor(c); ok {
		t.Fatalf("expected no actor")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}
