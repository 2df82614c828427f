package http

import (
	"errors"
	"net/http"

	"foodloop/internal/jobs"
	"foodloop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps domain errors onto HTTP status codes. Expired is checked
// before the other rejections because it matches both.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrExpired):
		return http.StatusGone
	case errors.Is(err, errs.ErrTransitionRejected), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUpstreamUnavailable), errors.Is(err, jobs.ErrSupervisorNotRunning):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func newError(err error) (int, Error) {
	code := statusOf(err)
	body := Error{Code: code, Message: err.Error()}

	if rejection, ok := errs.RejectionOf(err); ok {
		body.Reason = string(rejection.Reason)
		body.Status = rejection.Status
	}
	if code == http.StatusInternalServerError {
		body.Message = http.StatusText(code)
	}
	return code, body
}

// errorHandler is installed as echo's HTTPErrorHandler so handlers can
// return domain errors directly.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, body := newError(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}
