package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creditdesk/loan-system/internal/core/ports"
)

// AccessLogHandler handles access-event endpoints.
type AccessLogHandler struct {
	logs ports.AccessLogService
}

func NewAccessLogHandler(logs ports.AccessLogService) *AccessLogHandler {
	return &AccessLogHandler{logs: logs}
}

// Create records a login or logout event for the caller.
//
// @Summary      Record an access event
// @Tags         logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLogRequest  true  "Event type: login or logout"
// @Success      200   {object}  domain.AccessLog
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /logs [post]
func (h *AccessLogHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createLogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	entry, err := h.logs.Record(c.Request().Context(), userID, req.Type == "login")
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entry)
}

// ListAll returns every access event with owners resolved. Admin only.
//
// @Summary      List all access events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AccessLog
// @Failure      500  {object}  messageResponse
// @Router       /admin/logs [get]
func (h *AccessLogHandler) ListAll(c echo.Context) error {
	entries, err := h.logs.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
