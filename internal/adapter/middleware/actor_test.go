package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"eventflow-backend/internal/domain/actor"
)

func TestActorMiddleware_SetsActor(t *testing.T) {
	e := echo.New()
	var got actor.Actor
	e.GET("/me", func(c echo.Context) error {
		a, ok := ActorFrom(c)
		if !ok {
			t.Fatalf("actor missing from context")
		}
		got = a
		return c.NoContent(http.StatusNoContent)
	}, ActorMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderActorID, testActorID)
	req.Header.Set(HeaderActorRole, " senior_admin ")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got.ID != testActorID || got.Role != actor.RoleSeniorAdmin {
		t.Fatalf("unexpected actor: %+v", got)
	}
}

func TestActorFrom_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := ActorFrom(c); ok {
		t.Fatalf("expected no actor")
	}
}
