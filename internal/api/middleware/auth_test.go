package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/service"
)

type stubLoader struct {
	user *domain.User
	err  error
}

func (l *stubLoader) FindByID(context.Context, string) (*domain.User, error) {
	return l.user, l.err
}

type stubDenylist struct {
	revoked bool
}

func (d *stubDenylist) Revoke(context.Context, string, time.Duration) error { return nil }
func (d *stubDenylist) IsRevoked(context.Context, string) (bool, error)     { return d.revoked, nil }

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func invokeAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	return c, mw(okHandler)(c)
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := service.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	account := &domain.User{ID: "u1", Role: domain.RoleUser, IsVerified: true}
	mw := Auth(tokens, &stubLoader{user: account}, &stubDenylist{})

	token, err := tokens.IssueAccessToken("u1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	c, err := invokeAuth(t, mw, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if got := Caller(c); got == nil || got.ID != "u1" {
		t.Fatalf("caller not injected: %+v", got)
	}
	if TokenJTI(c) == "" {
		t.Fatalf("token JTI not injected")
	}
	if TokenExpiry(c).IsZero() {
		t.Fatalf("token expiry not injected")
	}
}

func TestAuth_RejectsBadHeaders(t *testing.T) {
	tokens := service.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	mw := Auth(tokens, &stubLoader{}, &stubDenylist{})

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-jwt"} {
		_, err := invokeAuth(t, mw, header)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_RejectsRevokedToken(t *testing.T) {
	tokens := service.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	account := &domain.User{ID: "u1", IsVerified: true}
	mw := Auth(tokens, &stubLoader{user: account}, &stubDenylist{revoked: true})

	token, _ := tokens.IssueAccessToken("u1")
	_, err := invokeAuth(t, mw, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %v", err)
	}
}

func TestAuth_RejectsOrphanedToken(t *testing.T) {
	tokens := service.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	mw := Auth(tokens, &stubLoader{err: domain.ErrUserNotFound}, &stubDenylist{})

	token, _ := tokens.IssueAccessToken("gone")
	_, err := invokeAuth(t, mw, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted account, got %v", err)
	}
}

func TestAuth_RejectsUnverifiedAccount(t *testing.T) {
	tokens := service.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	account := &domain.User{ID: "u1", IsVerified: false}
	mw := Auth(tokens, &stubLoader{user: account}, &stubDenylist{})

	token, _ := tokens.IssueAccessToken("u1")
	_, err := invokeAuth(t, mw, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unverified account, got %v", err)
	}
}
