package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

var errNotStubbed = errors.New("not stubbed")

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*domain.Session, error)
	forgotFn func(ctx context.Context, email string) error
	resetFn  func(ctx context.Context, in ports.ResetPasswordInput) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if s.loginFn == nil {
		return nil, errNotStubbed
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	if s.forgotFn == nil {
		return errNotStubbed
	}
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	if s.resetFn == nil {
		return errNotStubbed
	}
	return s.resetFn(ctx, in)
}

type stubAdminService struct {
	createFn         func(ctx context.Context, in ports.CreateAdminInput) (*domain.Admin, error)
	updateSettingsFn func(ctx context.Context, id string, u ports.ProfileUpdate) (*domain.Admin, error)
	updatePasswordFn func(ctx context.Context, id string, in ports.UpdatePasswordInput) error
	deleteFn         func(ctx context.Context, id, actorID string) error
}

func (s *stubAdminService) List(context.Context) ([]*domain.Admin, error) {
	return []*domain.Admin{}, nil
}

func (s *stubAdminService) Get(_ context.Context, id string) (*domain.Admin, error) {
	return &domain.Admin{ID: id}, nil
}

func (s *stubAdminService) Create(ctx context.Context, in ports.CreateAdminInput) (*domain.Admin, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, in)
}

func (s *stubAdminService) UpdateSettings(ctx context.Context, id string, u ports.ProfileUpdate) (*domain.Admin, error) {
	if s.updateSettingsFn == nil {
		return nil, errNotStubbed
	}
	return s.updateSettingsFn(ctx, id, u)
}

func (s *stubAdminService) UpdatePassword(ctx context.Context, id string, in ports.UpdatePasswordInput) error {
	if s.updatePasswordFn == nil {
		return errNotStubbed
	}
	return s.updatePasswordFn(ctx, id, in)
}

func (s *stubAdminService) Delete(ctx context.Context, id, actorID string) error {
	if s.deleteFn == nil {
		return errNotStubbed
	}
	return s.deleteFn(ctx, id, actorID)
}

// newContext builds an echo context with the validator installed.
func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

// httpCode returns the status carried by an *echo.HTTPError, or 0.
func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
