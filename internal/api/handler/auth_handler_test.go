package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/creditdesk/loan-system/internal/core/domain"
	"github.com/creditdesk/loan-system/internal/core/ports"
)

type stubUserService struct {
	registerFn       func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	getByIDFn        func(ctx context.Context, id string) (*domain.User, error)
	updateProfileFn  func(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error)
	updatePasswordFn func(ctx context.Context, userID, oldPassword, newPassword string) (*domain.User, error)
	toggleBanFn      func(ctx context.Context, passport string) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, input)
}

func (s *stubUserService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (*domain.User, error) {
	return s.updatePasswordFn(ctx, userID, oldPassword, newPassword)
}

func (s *stubUserService) ListAccounts(ctx context.Context) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) ToggleBan(ctx context.Context, passport string) (*domain.User, error) {
	return s.toggleBanFn(ctx, passport)
}

func (s *stubUserService) CreateAdmin(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

const registerBody = `{"name":"Ivan","surname":"Petrov","number":"1","passport":"P1","email":"a@x.io","password":"secret123"}`

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			if input.Number != "1" || input.Passport != "P1" || input.Email != "a@x.io" {
				t.Fatalf("unexpected input: %+v", input)
			}
			user := &domain.User{ID: "user_1", Email: input.Email, PasswordHash: "$2a$10$secret"}
			return &ports.AuthResult{User: user, Token: "token123"}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if strings.Contains(body, "hash") || strings.Contains(body, "$2a$10$secret") {
		t.Errorf("response leaks the password hash: %s", body)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Errorf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Register_Conflicts(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"phone", domain.ErrPhoneTaken},
		{"passport", domain.ErrPassportTaken},
		{"email", domain.ErrEmailTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubUserService{
				registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
					return nil, tc.err
				},
			}
			h := NewAuthHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerBody))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			_ = h.Register(c)

			if rec.Code != http.StatusConflict {
				t.Fatalf("expected 409, got %d", rec.Code)
			}
			var resp map[string]string
			_ = json.Unmarshal(rec.Body.Bytes(), &resp)
			if resp["message"] != tc.err.Error() {
				t.Errorf("expected message %q, got %q", tc.err.Error(), resp["message"])
			}
		})
	}
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	// Missing email and password: rejected by the validator.
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"name":"Ivan"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "a@x.io" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{User: &domain.User{ID: "user_1"}, Token: "token123"}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@x.io","password":"secret123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown email", domain.ErrUserNotFound, http.StatusNotFound},
		{"bad password", domain.ErrInvalidCredentials, http.StatusBadRequest},
		{"banned", domain.ErrUserBanned, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubUserService{
				loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
					return nil, tc.err
				},
			}
			h := NewAuthHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@x.io","password":"secret123"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			_ = h.Login(c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if tc.err == domain.ErrUserBanned && strings.Contains(rec.Body.String(), "token") {
				t.Error("banned login must not return a token")
			}
		})
	}
}

func TestAuthHandler_Login_UnknownEmailHidesReason(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@x.io","password":"secret123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.Login(c)

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != domain.ErrInvalidCredentials.Error() {
		t.Errorf("unknown email must report generic credentials message, got %q", resp["message"])
	}
}
