package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/sports-facility-reservation/internal/repository"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known
// repository errors to deterministic status codes and renders every
// error inside the standard envelope. Unexpected errors are logged with
// the real cause and surface as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, Fail(msg))
	}
}

var sentinelStatus = []struct {
	err  error
	code int
}{
	{repository.ErrUserNotFound, http.StatusNotFound},
	{repository.ErrBranchNotFound, http.StatusNotFound},
	{repository.ErrSportNotFound, http.StatusNotFound},
	{repository.ErrSessionNotFound, http.StatusNotFound},
	{repository.ErrReservationNotFound, http.StatusNotFound},
	{repository.ErrEmailExists, http.StatusConflict},
	{repository.ErrQuotaFull, http.StatusConflict},
	{repository.ErrAlreadyReserved, http.StatusConflict},
	{repository.ErrInvalidCredentials, http.StatusUnauthorized},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, validator
	// messages wrapped by handlers).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The client sees the sentinel's own text, never the wrapping
	// context an intermediate layer may have added around it.
	for _, m := range sentinelStatus {
		if errors.Is(err, m.err) {
			return m.code, m.err.Error()
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
