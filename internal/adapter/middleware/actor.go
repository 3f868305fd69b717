package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"eventflow-backend/internal/domain/actor"
	"eventflow-backend/pkg/id"
)

const (
	HeaderActorID   = "Ax-Actor-Id"
	HeaderActorRole = "Ax-Actor-Role"

	actorKey = "actor"
)

// ActorMiddleware reads the caller identity set by the upstream session layer.
// It only checks shape; trust in the headers belongs to the gateway.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header
			actorID := strings.TrimSpace(h.Get(HeaderActorID))
			if actorID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderActorID})
			}
			if !id.Valid(actorID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderActorID})
			}
			rawRole := h.Get(HeaderActorRole)
			if strings.TrimSpace(rawRole) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderActorRole})
			}
			role, err := actor.ParseRole(rawRole)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderActorRole})
			}
			c.Set(actorKey, actor.Actor{ID: actorID, Role: role})
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by ActorMiddleware.
func ActorFrom(c echo.Context) (actor.Actor, bool) {
	a, ok := c.Get(actorKey).(actor.Actor)
	return a, ok
}
