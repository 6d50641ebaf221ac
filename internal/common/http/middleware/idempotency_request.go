package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	commonhttp "github.com/sovr-labs/go-fp-clearing/internal/common/http"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/labstack/echo/v4"
)

const HeaderIdempotencyKey = "X-Idempotency-Key"

// CheckIdempotentRequest replays the stored response for a POST that repeats
// an X-Idempotency-Key with the same body. A different body under the same key
// is rejected; a concurrent duplicate gets 409.
func (m *AppMiddleware) CheckIdempotentRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodPost {
				return next(c)
			}

			idempotencyKey := c.Request().Header.Get(HeaderIdempotencyKey)
			if idempotencyKey == "" {
				return commonhttp.RestErrorResponse(c, http.StatusBadRequest, common.ErrMissingIdempotencyKey)
			}

			// the lock outlives the request, keep it off the request deadline
			ctx := context.WithoutCancel(c.Request().Context())

			route := c.Request().Method + " " + c.Request().URL.Path
			idm, err := m.getOrCreateIdempotency(ctx, idempotencyKey, route, m.parseRequestBody(c))
			if err != nil {
				switch {
				case errors.Is(err, common.ErrInvalidFingerprint):
					return commonhttp.RestErrorResponse(c, http.StatusUnprocessableEntity, err)
				case errors.Is(err, common.ErrRequestBeingProcessed):
					return commonhttp.RestErrorResponse(c, http.StatusConflict, err)
				default:
					return commonhttp.RestErrorResponse(c, http.StatusInternalServerError, err)
				}
			}

			if idm.StatusProcess == models.IdempotencyStatusProcessFinished {
				for k, v := range idm.ResponseHeaders {
					c.Response().Header().Set(k, v)
				}
				return c.Blob(idm.HTTPStatusCode, c.Response().Header().Get(echo.HeaderContentType), []byte(idm.ResponseBody))
			}

			resBody := m.getResponseBodyBuffer(c)

			if err = next(c); err != nil {
				c.Error(err)
			}

			statusCode := c.Response().Status
			if statusCode < http.StatusOK || statusCode >= http.StatusInternalServerError {
				// let the caller retry server side failures under the same key
				if errRelease := m.releaseLock(ctx, idm); errRelease != nil {
					xlog.Warn(ctx, "[IDEMPOTENCY] failed to release lock", xlog.Err(errRelease))
				}
				return nil
			}

			headers := make(map[string]string)
			for k, v := range c.Response().Header() {
				if len(v) > 0 {
					headers[k] = v[len(v)-1]
				}
			}
			idm.SetResponse(statusCode, headers, resBody.String())

			if err = m.saveResponseToCache(ctx, idm); err != nil {
				xlog.Warn(ctx, "[IDEMPOTENCY] failed to store response", xlog.Err(err))
			}

			return nil
		}
	}
}

// getOrCreateIdempotency returns the cached record or takes a pending lock.
func (m *AppMiddleware) getOrCreateIdempotency(ctx context.Context, key, route string, requestBody []byte) (*models.Idempotency, error) {
	idm := models.NewIdempotency(key, route, requestBody)

	strIdm, err := m.cacheRepo.Get(ctx, idm.CacheKey)
	if errors.Is(err, common.ErrDataNotFound) {
		if err = m.createLock(ctx, idm); err != nil {
			return nil, err
		}
		return idm, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency data: %w", err)
	}

	var cachedIdm models.Idempotency
	if err = json.Unmarshal([]byte(strIdm), &cachedIdm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency data: %w", err)
	}

	if cachedIdm.Fingerprint != idm.Fingerprint {
		return nil, common.ErrInvalidFingerprint
	}

	if cachedIdm.StatusProcess == models.IdempotencyStatusProcessPending {
		return nil, common.ErrRequestBeingProcessed
	}

	return &cachedIdm, nil
}

func (m *AppMiddleware) saveResponseToCache(ctx context.Context, idm *models.Idempotency) error {
	raw, err := json.Marshal(idm)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency data: %w", err)
	}

	if err = m.cacheRepo.Set(ctx, idm.CacheKey, string(raw), models.TTLIdempotency); err != nil {
		return fmt.Errorf("failed to save idempotency data: %w", err)
	}

	return nil
}

func (m *AppMiddleware) createLock(ctx context.Context, idm *models.Idempotency) error {
	raw, err := json.Marshal(idm)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency data: %w", err)
	}

	set, err := m.cacheRepo.SetIfNotExists(ctx, idm.CacheKey, string(raw), models.TTLIdempotency)
	if err != nil {
		return fmt.Errorf("failed to save idempotency data: %w", err)
	}

	// another replica won the race for this key
	if !set {
		return common.ErrRequestBeingProcessed
	}

	return nil
}

func (m *AppMiddleware) releaseLock(ctx context.Context, idm *models.Idempotency) error {
	if err := m.cacheRepo.Del(ctx, idm.CacheKey); err != nil {
		return fmt.Errorf("failed to release idempotency data: %w", err)
	}

	return nil
}
