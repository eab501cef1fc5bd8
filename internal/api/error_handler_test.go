package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec.Code, rec.Body.String()
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrEmailNotVerified, http.StatusUnauthorized},
		{domain.ErrInvalidSession, http.StatusUnauthorized},
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{domain.ErrTokenInvalid, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrSelfDemotion, http.StatusForbidden},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrWeakPassword, http.StatusBadRequest},
		{domain.ErrInvalidVerifyToken, http.StatusBadRequest},
		{domain.ErrInvalidResetToken, http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrTripNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		code, body := renderError(t, tt.err)
		if code != tt.code {
			t.Errorf("%v: got %d, want %d", tt.err, code, tt.code)
		}
		if !strings.Contains(body, tt.err.Error()) {
			t.Errorf("%v: body %s missing message", tt.err, body)
		}
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Fatalf("got %d, want 418", code)
	}
	if !strings.Contains(body, "short and stout") {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, body := renderError(t, errors.New("mongo: connection pool exhausted"))
	if code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", code)
	}
	if strings.Contains(body, "mongo") {
		t.Fatalf("internal detail leaked: %s", body)
	}
	if !strings.Contains(body, "internal server error") {
		t.Fatalf("unexpected body %s", body)
	}
}
