package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creditdesk/loan-system/internal/core/domain"
	"github.com/creditdesk/loan-system/internal/core/ports"
)

// ApplicationHandler handles loan-application endpoints.
type ApplicationHandler struct {
	applications ports.ApplicationService
}

func NewApplicationHandler(applications ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Submit files a new loan application for the caller.
//
// @Summary      Submit a loan application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitApplicationRequest  true  "Application fields"
// @Success      200   {object}  domain.Application
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req submitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	app, err := h.applications.Submit(c.Request().Context(), ports.SubmitApplicationInput{
		UserID:    userID,
		Credit:    req.Credit,
		Period:    req.Period,
		Salary:    req.Salary,
		Expenses:  req.Expenses,
		Purpose:   req.Purpose,
		Percent:   req.Percent,
		Payment:   req.Payment,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}

// ListMine returns the caller's applications with the owner resolved.
//
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Application
// @Failure      500  {object}  messageResponse
// @Router       /applications [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	apps, err := h.applications.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apps)
}

// DeleteActive withdraws the caller's most recent pending application.
//
// @Summary      Delete the active application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /applications/active [delete]
func (h *ApplicationHandler) DeleteActive(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.applications.DeleteActive(c.Request().Context(), userID); err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "active application deleted"})
}

// ListAll returns every application with owners resolved. Admin only.
//
// @Summary      List all applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Application
// @Failure      500  {object}  messageResponse
// @Router       /admin/applications [get]
func (h *ApplicationHandler) ListAll(c echo.Context) error {
	apps, err := h.applications.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// UpdateStatus transitions all pending applications of the user matching
// the passport to the requested status. Admin only. Zero pending
// applications succeeds with updated=0.
//
// @Summary      Update application status by passport
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateStatusRequest  true  "Passport and target status"
// @Success      200   {object}  updateStatusResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /admin/applications/status [patch]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	updated, err := h.applications.UpdateStatusByPassport(
		c.Request().Context(),
		req.Passport,
		domain.ApplicationStatus(req.NewStatus),
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, messageResponse{Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, updateStatusResponse{Message: "status updated", Updated: updated})
}
