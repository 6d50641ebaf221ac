package http

import (
	"errors"
	"net/http"

	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is installed as echo's HTTPErrorHandler. Handlers normally
// render their own errors; this catches whatever escapes them.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		echoErr *echo.HTTPError
		resErr  error
	)
	if errors.As(err, &echoErr) {
		resErr = RestErrorResponse(c, echoErr.Code, echoErr)
	} else {
		resErr = RestDomainErrorResponse(c, err)
	}

	if resErr != nil {
		xlog.Error(c.Request().Context(), "[HTTP-ERROR-HANDLER] failed to write response", xlog.Err(resErr))
		c.Response().WriteHeader(http.StatusInternalServerError)
	}
}
