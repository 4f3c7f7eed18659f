package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/creditdesk/loan-system/internal/core/domain"
	"github.com/creditdesk/loan-system/internal/core/ports"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users ports.UserService
}

func NewAuthHandler(users ports.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register creates a new member account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	result, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Number:   req.Number,
		Passport: req.Passport,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if isConflict(err) {
			return c.JSON(http.StatusConflict, messageResponse{Message: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{User: result.User, Token: result.Token})
}

// Login authenticates by email and password and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	result, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			// Same message as a bad password so the response does not
			// reveal whether the email is registered.
			return c.JSON(http.StatusNotFound, messageResponse{Message: domain.ErrInvalidCredentials.Error()})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
		case errors.Is(err, domain.ErrUserBanned):
			return c.JSON(http.StatusForbidden, messageResponse{Message: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{User: result.User, Token: result.Token})
}

// isConflict reports whether err is one of the uniqueness violations.
func isConflict(err error) bool {
	return errors.Is(err, domain.ErrPhoneTaken) ||
		errors.Is(err, domain.ErrPassportTaken) ||
		errors.Is(err, domain.ErrEmailTaken)
}
