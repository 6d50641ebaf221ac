package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	commonhttp "github.com/sovr-labs/go-fp-clearing/internal/common/http"

	"github.com/labstack/echo/v4"
)

var (
	errSecretKeyRequired = errors.New("required secret key")
	errSecretKeyInvalid  = errors.New("invalid secret key")
)

// InternalAuth guards service-to-service routes with X-Secret-Key.
func (m *AppMiddleware) InternalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			secretKey := c.Request().Header.Get("X-Secret-Key")
			if secretKey == "" {
				return commonhttp.RestErrorResponse(c, http.StatusUnauthorized, errSecretKeyRequired)
			}

			if subtle.ConstantTimeCompare([]byte(secretKey), []byte(m.conf.SecretKey)) != 1 {
				return commonhttp.RestErrorResponse(c, http.StatusUnauthorized, errSecretKeyInvalid)
			}

			return next(c)
		}
	}
}
