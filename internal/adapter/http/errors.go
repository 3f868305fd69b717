package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/ledger"
	"eventflow-backend/internal/domain/workflow"
)

type errMapping struct {
	target error
	status int
	code   string
}

// Checked in order; the first match wins.
var errMappings = []errMapping{
	{workflow.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
	{event.ErrOnlyPresident, http.StatusForbidden, "permission_denied"},
	{event.ErrNotOwner, http.StatusForbidden, "permission_denied"},
	{workflow.ErrMissingReason, http.StatusUnprocessableEntity, "missing_reason"},
	{ledger.ErrMissingComments, http.StatusUnprocessableEntity, "missing_reason"},
	{workflow.ErrTerminalState, http.StatusConflict, "terminal_state"},
	{event.ErrConflict, http.StatusConflict, "conflict"},
	{event.ErrNotesNotAllowed, http.StatusConflict, "notes_not_allowed"},
	{event.ErrNotFound, http.StatusNotFound, "not_found"},
	{event.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input"},
	{workflow.ErrUnknownAction, http.StatusUnprocessableEntity, "invalid_input"},
}

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a bare 500.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	for _, m := range errMappings {
		if errors.Is(err, m.target) {
			return c.JSON(m.status, ErrorResponse{Error: err.Error(), Code: m.code})
		}
	}
	if logger != nil {
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: "bad_request"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    "validation_failed",
		Details: ToFieldErrors(err),
	})
}
