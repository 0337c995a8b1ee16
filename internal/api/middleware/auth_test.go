package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/infrastructure/session"
)

const cookieName = "session-token-admin"

func issue(t *testing.T, codec *session.Codec, claims domain.SessionClaims) string {
	t.Helper()
	s, err := codec.Issue(claims)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return s.Token
}

func runAuthenticate(t *testing.T, codec *session.Codec, prepare func(*http.Request)) (*httptest.ResponseRecorder, *domain.SessionClaims) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	prepare(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *domain.SessionClaims
	handler := Authenticate(codec, cookieName)(func(c echo.Context) error {
		got, _ = Claims(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, got
}

func TestAuthenticate_Cookie(t *testing.T) {
	codec := session.NewCodec("secret", time.Hour)
	want := domain.SessionClaims{ID: "a1", Email: "a@stock.io", Username: "a", Role: domain.RoleAdmin, Name: "A"}
	token := issue(t, codec, want)

	rec, got := runAuthenticate(t, codec, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || *got != want {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	codec := session.NewCodec("secret", time.Hour)
	token := issue(t, codec, domain.SessionClaims{ID: "a1", Role: domain.RoleAdmin})

	rec, got := runAuthenticate(t, codec, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if rec.Code != http.StatusOK || got == nil || got.ID != "a1" {
		t.Fatalf("expected 200 with claims, got %d %+v", rec.Code, got)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	codec := session.NewCodec("secret", time.Hour)
	foreign := issue(t, session.NewCodec("other-secret", time.Hour), domain.SessionClaims{ID: "a1", Role: domain.RoleAdmin})

	tests := []struct {
		name    string
		prepare func(*http.Request)
	}{
		{"no token", func(*http.Request) {}},
		{"bad header format", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-token") }},
		{"wrong secret", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieName, Value: foreign}) }},
		{"empty cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieName, Value: ""}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, got := runAuthenticate(t, codec, tt.prepare)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if got != nil {
				t.Fatal("next must not run")
			}
		})
	}
}
