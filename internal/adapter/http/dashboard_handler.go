package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"eventflow-backend/internal/domain/actor"
	eventuc "eventflow-backend/internal/usecase/event"
)

type DashboardHandler struct {
	uc     *eventuc.Usecase
	logger *zap.Logger
}

func NewDashboardHandler(uc *eventuc.Usecase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: logger}
}

// Stats counts the caller's own events for presidents and every event for
// reviewers.
func (h *DashboardHandler) Stats(c echo.Context) error {
	who, ok := currentActor(c)
	if !ok {
		return nil
	}
	scope := ""
	if who.Role == actor.RolePresident {
		scope = who.ID
	}
	s, err := h.uc.Stats(c.Request().Context(), scope)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Pending lists what the caller's role can act on now, oldest first.
func (h *DashboardHandler) Pending(c echo.Context) error {
	who, ok := currentActor(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Pending(c.Request().Context(), who.Role)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"role": who.Role, "events": out, "count": len(out)})
}
