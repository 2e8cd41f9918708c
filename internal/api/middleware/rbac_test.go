package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

func TestRequireRoles_Allows(t *testing.T) {
	c, rec := newContext("")
	c.Set(PrincipalKey, &domain.Principal{ID: "a1", Role: domain.RoleAdmin})

	called := false
	handler := RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRoles_Forbids(t *testing.T) {
	c, _ := newContext("")
	c.Set(PrincipalKey, &domain.Principal{ID: "u1", Role: domain.RoleUser})

	handler := RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRequireRoles_NoPrincipal(t *testing.T) {
	c, _ := newContext("")

	handler := RequireRoles(domain.RoleUser)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
