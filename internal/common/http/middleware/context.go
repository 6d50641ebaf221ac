package middleware

import (
	"os"

	"github.com/sovr-labs/go-fp-clearing/internal/common/ctxdata"

	"github.com/labstack/echo/v4"
)

// Context attaches correlation id and host to the request context and echoes
// the correlation id back to the caller.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	host, _ := os.Hostname()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := ctxdata.SetContextFromHTTP(req.Context(), req)
			ctx = ctxdata.Sets(ctx, ctxdata.SetHost(host))

			c.SetRequest(req.WithContext(ctx))
			c.Response().Header().Set(ctxdata.HeaderCorrelationID, ctxdata.GetCorrelationId(ctx))

			return next(c)
		}
	}
}
