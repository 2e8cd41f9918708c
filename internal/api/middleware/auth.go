package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/api/metrics"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// PrincipalKey is the echo context key holding the authenticated caller.
const PrincipalKey = "principal"

// Auth resolves the bearer token to a live account and stores the principal
// in the request context. The account is reloaded on every request so a
// deactivation takes effect immediately.
func Auth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := authn.Authenticate(c.Request().Context(), bearerToken(c.Request()))
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}
			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

// Principal returns the caller stored by Auth, or nil when Auth did not run.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	return p
}

// bearerToken returns the token from "Authorization: Bearer <token>". Any
// other header shape counts as no token.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return "missing_token"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid_token"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	}
	return "error"
}
