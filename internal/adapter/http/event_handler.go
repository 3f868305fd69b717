package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"eventflow-backend/internal/domain/event"
	eventuc "eventflow-backend/internal/usecase/event"
	"eventflow-backend/pkg/id"
)

type EventHandler struct {
	uc     *eventuc.Usecase
	logger *zap.Logger
}

func NewEventHandler(uc *eventuc.Usecase, logger *zap.Logger) *EventHandler {
	return &EventHandler{uc: uc, logger: logger}
}

type createEventReq struct {
	Name        string     `json:"name"        validate:"required,nonblank,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	Venue       string     `json:"venue"       validate:"max=200"`
	EventDate   *time.Time `json:"event_date"`
	IsMonetary  bool       `json:"is_monetary"`
	Budget      float64    `json:"budget"      validate:"gte=0,dec2"`
}

type notesReq struct {
	Notes string `json:"notes" validate:"required,nonblank,max=5000"`
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	who, ok := currentActor(c)
	if !ok {
		return nil
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), who, eventuc.CreateEventInput(req))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Get(c.Request().Context(), eventID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListEvents supports ?status=A,B&created_by=<id|me>&monetary=true|false.
func (h *EventHandler) ListEvents(c echo.Context) error {
	who, ok := currentActor(c)
	if !ok {
		return nil
	}
	var in eventuc.ListInput

	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			s := event.Status(strings.ToUpper(strings.TrimSpace(part)))
			if !s.Valid() {
				return badRequest(c, "invalid status filter "+strconv.Quote(part))
			}
			in.Statuses = append(in.Statuses, s)
		}
	}
	switch by := strings.TrimSpace(c.QueryParam("created_by")); {
	case by == "":
	case by == "me":
		in.CreatedBy = who.ID
	case id.Valid(by):
		in.CreatedBy = by
	default:
		return badRequest(c, "invalid created_by filter")
	}
	if raw := strings.TrimSpace(c.QueryParam("monetary")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "invalid monetary filter")
		}
		in.Monetary = &b
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"events": out, "count": len(out)})
}

func (h *EventHandler) AddNotes(c echo.Context) error {
	who, ok := currentActor(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	var req notesReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.AddNotes(c.Request().Context(), who, eventID, req.Notes)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EventHandler) Timeline(c echo.Context) error {
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	tl, err := h.uc.Timeline(c.Request().Context(), eventID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, tl)
}
