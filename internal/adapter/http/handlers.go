package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	appmw "eventflow-backend/internal/adapter/middleware"
	"eventflow-backend/internal/domain/actor"
	"eventflow-backend/pkg/id"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// currentActor writes a 401 and returns false when ActorMiddleware did not run.
func currentActor(c echo.Context) (actor.Actor, bool) {
	a, ok := appmw.ActorFrom(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing actor", Code: "unauthorized"})
	}
	return a, ok
}

// eventIDParam writes a 400 and returns false for a malformed :event_id.
func eventIDParam(c echo.Context) (string, bool) {
	eventID := c.Param("event_id")
	if eventID == "" {
		_ = badRequest(c, "missing event_id path param")
		return "", false
	}
	if !id.Valid(eventID) {
		_ = badRequest(c, "invalid event_id path param")
		return "", false
	}
	return eventID, true
}
