package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/brahmakosh/admin-backend/internal/api/handler"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors and hides their detail unless diagnostics is set.
//   - Renders the standard envelope: {"success": false, "message": "...", "error": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger, diagnostics bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, detail := resolveError(err, log, c)
		if !diagnostics {
			detail = ""
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.Failure(msg, detail))
	}
}

// statusFor maps an error kind to its status code. ok is false for errors
// outside the domain taxonomy.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrInvalidOperation):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (code int, msg, detail string) {
	// Echo's own errors (unknown route, method not allowed, body too large).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	if code, ok := statusFor(err); ok {
		var de *domain.Error
		if errors.As(err, &de) {
			return code, de.Msg, ""
		}
		return code, err.Error(), ""
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", err.Error()
}
