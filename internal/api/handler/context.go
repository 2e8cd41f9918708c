package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/api/middleware"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

// caller returns the principal stored by the Auth middleware. A missing
// principal means the route was mounted without Auth.
func caller(c echo.Context) (*domain.Principal, error) {
	p := middleware.Principal(c)
	if p == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return p, nil
}

// bind decodes the request body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Validation("invalid request body")
	}
	return c.Validate(req)
}
