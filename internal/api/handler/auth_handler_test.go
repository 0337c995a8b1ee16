package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

var testCookie = CookieConfig{Name: "session-token-admin", Domain: "admin.localhost"}

func TestAuthHandler_Login_Success(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.Session, error) {
			if email != "root@stock.io" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.Session{
				Token:     "signed",
				Claims:    domain.SessionClaims{ID: "1", Email: email, Role: domain.RoleAdmin},
				ExpiresAt: expires,
			}, nil
		},
	}
	h := NewAuthHandler(stub, &stubAdminService{}, testCookie)

	c, rec := newContext(http.MethodPost, "/api/auth/login", jsonBody(`{"email":"root@stock.io","password":"secret1"}`))
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := findCookie(rec, "session-token-admin")
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if cookie.Value != "signed" || !cookie.HttpOnly || cookie.Path != "/" || cookie.Domain != "admin.localhost" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", cookie.SameSite)
	}
	if !cookie.Expires.Equal(expires) {
		t.Fatalf("cookie expiry %v does not match session %v", cookie.Expires, expires)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.ID != "1" || resp.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if resp.ExpiresAt == nil || !resp.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected expiry: %v", resp.ExpiresAt)
	}
}

func TestAuthHandler_Login_BodyOmitsToken(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, _ string) (*domain.Session, error) {
			return &domain.Session{
				Token:     "SIGNED.JWT.VALUE",
				Claims:    domain.SessionClaims{ID: "1", Email: email, Role: domain.RoleAdmin},
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	h := NewAuthHandler(stub, &stubAdminService{}, testCookie)

	c, rec := newContext(http.MethodPost, "/api/auth/login", jsonBody(`{"email":"root@stock.io","password":"secret1"}`))
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "SIGNED.JWT.VALUE") {
		t.Fatalf("session token leaked into body: %s", rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := body["token"]; ok {
		t.Fatalf("unexpected token field: %v", body)
	}
	if cookie := findCookie(rec, "session-token-admin"); cookie == nil || cookie.Value != "SIGNED.JWT.VALUE" {
		t.Fatalf("token must still be set as cookie: %+v", cookie)
	}
}

func TestAuthHandler_Login_RejectionsAreGeneric(t *testing.T) {
	for _, cause := range []error{domain.ErrInvalidCredentials, domain.ErrAdminNotFound, domain.ErrIncorrectPassword} {
		t.Run(cause.Error(), func(t *testing.T) {
			stub := &stubAuthService{
				loginFn: func(context.Context, string, string) (*domain.Session, error) { return nil, cause },
			}
			h := NewAuthHandler(stub, &stubAdminService{}, testCookie)
			c, rec := newContext(http.MethodPost, "/api/auth/login", jsonBody(`{"email":"x@y.z","password":"p"}`))

			err := h.Login(c)
			if !errors.Is(err, domain.ErrLoginFailed) {
				t.Fatalf("expected ErrLoginFailed, got %v", err)
			}
			if findCookie(rec, "session-token-admin") != nil {
				t.Fatal("no cookie may be set on rejection")
			}
		})
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Session, error) { return nil, domain.ErrTooManyAttempts },
	}
	h := NewAuthHandler(stub, &stubAdminService{}, testCookie)
	c, _ := newContext(http.MethodPost, "/api/auth/login", jsonBody(`{"email":"x@y.z","password":"p"}`))

	if err := h.Login(c); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubAdminService{}, testCookie)
	c, rec := newContext(http.MethodPost, "/api/auth/logout", nil)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cookie := findCookie(rec, "session-token-admin")
	if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubAdminService{}, testCookie)
	c, rec := newContext(http.MethodGet, "/api/auth/session", nil)

	if err := h.Session(c, &domain.SessionClaims{ID: "7", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp sessionResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.User.ID != "7" || resp.ExpiresAt != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_DeleteSessionAccount(t *testing.T) {
	var deleted, actor string
	admins := &stubAdminService{deleteFn: func(_ context.Context, id, actorID string) error {
		deleted, actor = id, actorID
		return nil
	}}
	h := NewAuthHandler(&stubAuthService{}, admins, testCookie)
	c, rec := newContext(http.MethodDelete, "/api/auth/delete-session-account", nil)

	if err := h.DeleteSessionAccount(c, &domain.SessionClaims{ID: "me"}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "me" || actor != "me" {
		t.Fatalf("expected own account deletion, got %s by %s", deleted, actor)
	}
	if cookie := findCookie(rec, "session-token-admin"); cookie == nil || cookie.MaxAge >= 0 {
		t.Fatal("session cookie must be cleared")
	}
}

func TestAuthHandler_DeleteSessionAccount_Gone(t *testing.T) {
	admins := &stubAdminService{deleteFn: func(context.Context, string, string) error { return domain.ErrAdminNotFound }}
	h := NewAuthHandler(&stubAuthService{}, admins, testCookie)
	c, _ := newContext(http.MethodDelete, "/api/auth/delete-session-account", nil)

	if err := h.DeleteSessionAccount(c, &domain.SessionClaims{ID: "me"}); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	called := false
	stub := &stubAuthService{forgotFn: func(_ context.Context, email string) error {
		called = email == "root@stock.io"
		return nil
	}}
	h := NewAuthHandler(stub, &stubAdminService{}, testCookie)

	c, rec := newContext(http.MethodPost, "/api/auth/forgot-password", jsonBody(`{"email":"root@stock.io"}`))
	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted || !called {
		t.Fatalf("expected 202 and service call, got %d called=%v", rec.Code, called)
	}

	c, _ = newContext(http.MethodPost, "/api/auth/forgot-password", jsonBody(`{"email":"nope"}`))
	if code := httpCode(t, h.ForgotPassword(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	var got ports.ResetPasswordInput
	stub := &stubAuthService{resetFn: func(_ context.Context, in ports.ResetPasswordInput) error {
		got = in
		return nil
	}}
	h := NewAuthHandler(stub, &stubAdminService{}, testCookie)

	c, rec := newContext(http.MethodPost, "/api/auth/reset-password", jsonBody(`{"token":"t","password":"abcdefg","passwordConfirm":"abcdefg"}`))
	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || got.Token != "t" {
		t.Fatalf("unexpected result: %d %+v", rec.Code, got)
	}

	c, _ = newContext(http.MethodPost, "/api/auth/reset-password", jsonBody(`{"token":"t","password":"abcdefg","passwordConfirm":"other12"}`))
	if code := httpCode(t, h.ResetPassword(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatch, got %d", code)
	}
}
