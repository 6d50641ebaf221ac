package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/http/middleware"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories/mock"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testRoute = "/api/v1/intents"
	testBody  = `{"idempotencyKey":"payrun-1"}`
)

func cachedIdempotency(t *testing.T, key, body string, finished bool) string {
	t.Helper()
	idm := models.NewIdempotency(key, http.MethodPost+" "+testRoute, []byte(body))
	if finished {
		idm.SetResponse(http.StatusCreated, map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON}, `{"transferId":"tr-1"}`)
	}
	raw, err := json.Marshal(idm)
	require.NoError(t, err)
	return string(raw)
}

func TestCheckIdempotentRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		key        string
		body       string
		handler    echo.HandlerFunc
		doMock     func(m *mock.MockCacheRepository)
		wantStatus int
		wantBody   string
		wantCalled bool
	}{
		{
			name:   "first request is stored",
			method: http.MethodPost,
			key:    "k-1",
			body:   testBody,
			doMock: func(m *mock.MockCacheRepository) {
				m.EXPECT().Get(gomock.Any(), "clearing:http:idempotency:k-1").Return("", common.ErrDataNotFound)
				m.EXPECT().SetIfNotExists(gomock.Any(), "clearing:http:idempotency:k-1", gomock.Any(), models.TTLIdempotency).Return(true, nil)
				m.EXPECT().Set(gomock.Any(), "clearing:http:idempotency:k-1", gomock.Any(), models.TTLIdempotency).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   "tr-new",
			wantCalled: true,
		},
		{
			name:   "finished request is replayed",
			method: http.MethodPost,
			key:    "k-1",
			body:   testBody,
			doMock: func(m *mock.MockCacheRepository) {
				m.EXPECT().Get(gomock.Any(), "clearing:http:idempotency:k-1").Return(cachedIdempotency(t, "k-1", testBody, true), nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   "tr-1",
		},
		{
			name:   "same key with another body",
			method: http.MethodPost,
			key:    "k-1",
			body:   `{"idempotencyKey":"payrun-2"}`,
			doMock: func(m *mock.MockCacheRepository) {
				m.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cachedIdempotency(t, "k-1", testBody, true), nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "request still pending",
			method: http.MethodPost,
			key:    "k-1",
			body:   testBody,
			doMock: func(m *mock.MockCacheRepository) {
				m.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cachedIdempotency(t, "k-1", testBody, false), nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "lost the lock race",
			method: http.MethodPost,
			key:    "k-1",
			body:   testBody,
			doMock: func(m *mock.MockCacheRepository) {
				m.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", common.ErrDataNotFound)
				m.EXPECT().SetIfNotExists(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "cache unavailable",
			method: http.MethodPost,
			key:    "k-1",
			body:   testBody,
			doMock: func(m *mock.MockCacheRepository) {
				m.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "server failure releases the lock",
			method: http.MethodPost,
			key:    "k-1",
			body:   testBody,
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusInternalServerError, map[string]string{"status": "error"})
			},
			doMock: func(m *mock.MockCacheRepository) {
				m.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", common.ErrDataNotFound)
				m.EXPECT().SetIfNotExists(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				m.EXPECT().Del(gomock.Any(), "clearing:http:idempotency:k-1").Return(nil)
			},
			wantStatus: http.StatusInternalServerError,
			wantCalled: true,
		},
		{
			name:       "missing key",
			method:     http.MethodPost,
			body:       testBody,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "reads pass through",
			method:     http.MethodGet,
			wantStatus: http.StatusCreated,
			wantBody:   "tr-new",
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cacheRepo := mock.NewMockCacheRepository(ctrl)
			if tt.doMock != nil {
				tt.doMock(cacheRepo)
			}

			called := false
			handler := tt.handler
			if handler == nil {
				handler = func(c echo.Context) error {
					return c.JSON(http.StatusCreated, map[string]string{"transferId": "tr-new"})
				}
			}

			m := middleware.NewMiddleware(config.Config{}, cacheRepo)
			e := echo.New()
			e.Any(testRoute, func(c echo.Context) error {
				called = true
				return handler(c)
			}, m.CheckIdempotentRequest())

			req := httptest.NewRequest(tt.method, testRoute, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.key != "" {
				req.Header.Set(middleware.HeaderIdempotencyKey, tt.key)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
