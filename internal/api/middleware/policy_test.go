package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

type stubFinder struct {
	res *domain.Resource
	err error
}

func (f *stubFinder) FindResource(context.Context, string) (*domain.Resource, error) {
	return f.res, f.err
}

func contextWithCaller(caller *domain.User, paramName, paramValue string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if caller != nil {
		c.Set(ContextUserKey, caller)
	}
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	return c
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(domain.RoleAdmin)

	admin := contextWithCaller(&domain.User{ID: "a1", Role: domain.RoleAdmin}, "", "")
	if err := mw(okHandler)(admin); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}

	user := contextWithCaller(&domain.User{ID: "u1", Role: domain.RoleUser}, "", "")
	if err := mw(okHandler)(user); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	anonymous := contextWithCaller(nil, "", "")
	if err := mw(okHandler)(anonymous); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for anonymous, got %v", err)
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	mw := RequireSelfOrAdmin("id")

	self := contextWithCaller(&domain.User{ID: "u1", Role: domain.RoleUser}, "id", "u1")
	if err := mw(okHandler)(self); err != nil {
		t.Fatalf("self should pass: %v", err)
	}

	admin := contextWithCaller(&domain.User{ID: "a1", Role: domain.RoleAdmin}, "id", "u1")
	if err := mw(okHandler)(admin); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}

	stranger := contextWithCaller(&domain.User{ID: "u2", Role: domain.RoleUser}, "id", "u1")
	if err := mw(okHandler)(stranger); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOwnership_AllowsOwnerAndAdmin(t *testing.T) {
	res := &domain.Resource{ID: "t1", OwnerID: "u1"}
	mw := Ownership(&stubFinder{res: res}, "id")

	owner := contextWithCaller(&domain.User{ID: "u1", Role: domain.RoleUser}, "id", "t1")
	if err := mw(okHandler)(owner); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}
	if got := Resource(owner); got != res {
		t.Fatalf("resource not attached to context")
	}

	admin := contextWithCaller(&domain.User{ID: "a1", Role: domain.RoleAdmin}, "id", "t1")
	if err := mw(okHandler)(admin); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
}

func TestOwnership_DeniesStranger(t *testing.T) {
	mw := Ownership(&stubFinder{res: &domain.Resource{ID: "t1", OwnerID: "u1"}}, "id")

	stranger := contextWithCaller(&domain.User{ID: "u2", Role: domain.RoleUser}, "id", "t1")
	if err := mw(okHandler)(stranger); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOwnership_PropagatesFinderError(t *testing.T) {
	mw := Ownership(&stubFinder{err: domain.ErrTripNotFound}, "id")

	c := contextWithCaller(&domain.User{ID: "u1", Role: domain.RoleUser}, "id", "missing")
	if err := mw(okHandler)(c); !errors.Is(err, domain.ErrTripNotFound) {
		t.Fatalf("expected finder error to propagate, got %v", err)
	}
}

func TestOwnership_MissingID(t *testing.T) {
	mw := Ownership(&stubFinder{}, "id")

	c := contextWithCaller(&domain.User{ID: "u1"}, "", "")
	err := mw(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %v", err)
	}
}
