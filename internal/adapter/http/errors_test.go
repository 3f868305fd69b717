package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/workflow"
)

func TestWriteError_MapsWrappedErrors(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := fmt.Errorf("decide: %w", workflow.ErrTerminalState)
	if werr := writeError(c, nil, err); werr != nil {
		t.Fatalf("writeError: %v", werr)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d want 409", rec.Code)
	}
	if er := decodeErr(t, rec); er.Code != "terminal_state" {
		t.Fatalf("code=%q", er.Code)
	}
}

func TestWriteError_UnknownIsInternalAndLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if werr := writeError(c, zap.New(core), errors.New("db gone")); werr != nil {
		t.Fatalf("writeError: %v", werr)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Code != "internal" || er.Error == "db gone" {
		t.Fatalf("internal detail leaked: %+v", er)
	}
	if logs.Len() != 1 {
		t.Fatalf("want one error log, got %d", logs.Len())
	}
}

func TestWriteError_FirstMappingWins(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := errors.Join(event.ErrNotFound, workflow.ErrPermissionDenied)
	_ = writeError(c, nil, err)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d want 403", rec.Code)
	}
}
