package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"eventflow-backend/internal/domain/workflow"
	approvaluc "eventflow-backend/internal/usecase/approval"
)

type ApprovalHandler struct {
	uc     *approvaluc.Usecase
	logger *zap.Logger
}

func NewApprovalHandler(uc *approvaluc.Usecase, logger *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, logger: logger}
}

// Comments are optional in the body; a rejection without them is refused by
// the workflow so that terminal events still report TerminalState first.
type decisionReq struct {
	Comments string `json:"comments" validate:"max=2000"`
}

func (h *ApprovalHandler) Approve(c echo.Context) error {
	return h.decide(c, workflow.ActionApprove)
}

func (h *ApprovalHandler) Reject(c echo.Context) error {
	return h.decide(c, workflow.ActionReject)
}

func (h *ApprovalHandler) decide(c echo.Context, action workflow.Action) error {
	who, ok := currentActor(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	dto, err := h.uc.Decide(c.Request().Context(), approvaluc.DecideInput{
		EventID:  eventID,
		Actor:    who,
		Action:   action,
		Comments: req.Comments,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	// 202 tells the client the decision stands but its audit entry is not
	// in the ledger yet.
	if dto.Ledger != approvaluc.LedgerRecorded {
		return c.JSON(http.StatusAccepted, dto)
	}
	return c.JSON(http.StatusOK, dto)
}
