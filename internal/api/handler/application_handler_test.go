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

type stubApplicationService struct {
	submitFn       func(ctx context.Context, input ports.SubmitApplicationInput) (*domain.Application, error)
	listByOwnerFn  func(ctx context.Context, userID string) ([]*domain.Application, error)
	deleteActiveFn func(ctx context.Context, userID string) error
	listAllFn      func(ctx context.Context) ([]*domain.Application, error)
	updateStatusFn func(ctx context.Context, passport string, status domain.ApplicationStatus) (int64, error)
}

func (s *stubApplicationService) Submit(ctx context.Context, input ports.SubmitApplicationInput) (*domain.Application, error) {
	return s.submitFn(ctx, input)
}

func (s *stubApplicationService) ListByOwner(ctx context.Context, userID string) ([]*domain.Application, error) {
	return s.listByOwnerFn(ctx, userID)
}

func (s *stubApplicationService) DeleteActive(ctx context.Context, userID string) error {
	return s.deleteActiveFn(ctx, userID)
}

func (s *stubApplicationService) ListAll(ctx context.Context) ([]*domain.Application, error) {
	return s.listAllFn(ctx)
}

func (s *stubApplicationService) UpdateStatusByPassport(ctx context.Context, passport string, status domain.ApplicationStatus) (int64, error) {
	return s.updateStatusFn(ctx, passport, status)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")
	c.Set("role", domain.RoleMember)
	return c
}

func TestApplicationHandler_Submit_IgnoresCallerStatus(t *testing.T) {
	e := newTestEcho()
	var got ports.SubmitApplicationInput
	stub := &stubApplicationService{
		submitFn: func(ctx context.Context, input ports.SubmitApplicationInput) (*domain.Application, error) {
			got = input
			return &domain.Application{ID: "app_1", Credit: input.Credit, Status: domain.StatusPending}, nil
		},
	}
	h := NewApplicationHandler(stub)

	// A "status" field in the payload has nowhere to bind to.
	body := `{"credit":100000,"period":12,"salary":5000,"expenses":1000,"purpose":"car","status":1}`
	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.UserID != "user_1" {
		t.Errorf("expected owner from claims, got %q", got.UserID)
	}
	if got.Credit != 100000 || got.Period != 12 {
		t.Errorf("unexpected input: %+v", got)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != float64(domain.StatusPending) {
		t.Errorf("expected pending status in response, got %v", resp["status"])
	}
}

func TestApplicationHandler_Submit_MissingClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubApplicationService{
		submitFn: func(ctx context.Context, input ports.SubmitApplicationInput) (*domain.Application, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewApplicationHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(`{"credit":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no claims set

	err := h.Submit(c)
	if err == nil {
		t.Fatal("expected error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestApplicationHandler_DeleteActive(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e := newTestEcho()
		stub := &stubApplicationService{
			deleteActiveFn: func(ctx context.Context, userID string) error {
				if userID != "user_1" {
					t.Fatalf("unexpected user id %q", userID)
				}
				return nil
			},
		}
		h := NewApplicationHandler(stub)

		req := httptest.NewRequest(http.MethodDelete, "/applications/active", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec)

		if err := h.DeleteActive(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("no pending application", func(t *testing.T) {
		e := newTestEcho()
		stub := &stubApplicationService{
			deleteActiveFn: func(ctx context.Context, userID string) error {
				return domain.ErrApplicationNotFound
			},
		}
		h := NewApplicationHandler(stub)

		req := httptest.NewRequest(http.MethodDelete, "/applications/active", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec)

		_ = h.DeleteActive(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	t.Run("success reports updated count", func(t *testing.T) {
		e := newTestEcho()
		stub := &stubApplicationService{
			updateStatusFn: func(ctx context.Context, passport string, status domain.ApplicationStatus) (int64, error) {
				if passport != "P1" || status != domain.StatusApproved {
					t.Fatalf("unexpected args: %s %d", passport, status)
				}
				return 2, nil
			},
		}
		h := NewApplicationHandler(stub)

		req := httptest.NewRequest(http.MethodPatch, "/admin/applications/status",
			strings.NewReader(`{"passport":"P1","new_status":1}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.UpdateStatus(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp updateStatusResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Updated != 2 {
			t.Errorf("expected updated=2, got %d", resp.Updated)
		}
	})

	t.Run("unknown status value", func(t *testing.T) {
		e := newTestEcho()
		stub := &stubApplicationService{
			updateStatusFn: func(ctx context.Context, passport string, status domain.ApplicationStatus) (int64, error) {
				t.Fatal("service must not be called")
				return 0, nil
			},
		}
		h := NewApplicationHandler(stub)

		req := httptest.NewRequest(http.MethodPatch, "/admin/applications/status",
			strings.NewReader(`{"passport":"P1","new_status":7}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = h.UpdateStatus(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown passport", func(t *testing.T) {
		e := newTestEcho()
		stub := &stubApplicationService{
			updateStatusFn: func(ctx context.Context, passport string, status domain.ApplicationStatus) (int64, error) {
				return 0, domain.ErrUserNotFound
			},
		}
		h := NewApplicationHandler(stub)

		req := httptest.NewRequest(http.MethodPatch, "/admin/applications/status",
			strings.NewReader(`{"passport":"missing","new_status":3}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = h.UpdateStatus(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestApplicationHandler_ListMine(t *testing.T) {
	e := newTestEcho()
	stub := &stubApplicationService{
		listByOwnerFn: func(ctx context.Context, userID string) ([]*domain.Application, error) {
			return []*domain.Application{
				{ID: "app_1", Status: domain.StatusPending, User: &domain.User{ID: userID, Email: "a@x.io", PasswordHash: "$2a$10$h"}},
			}, nil
		},
	}
	h := NewApplicationHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := h.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "$2a$10$h") {
		t.Error("response leaks the owner's password hash")
	}
}
