package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandlerTransfer(t *testing.T) {
	testHelper := getTransferTestHelper(t)
	finalizedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		method   string
		url      string
		wantRes  string
		wantCode int
		doMock   func()
	}{
		{
			name:     "lookup",
			method:   nethttp.MethodGet,
			url:      "/api/v1/transfers/tr-1",
			wantCode: nethttp.StatusOK,
			wantRes:  `{"transferId":"tr-1","intentId":"int-1","state":"POSTED","finalizedAt":"2026-03-01T09:00:00Z"}`,
			doMock: func() {
				testHelper.mockClearingSvc.EXPECT().
					Lookup(gomock.Any(), "tr-1").
					Return(&models.ClearingResult{TransferID: "tr-1", IntentID: "int-1", State: models.TransferStatePosted, FinalizedAt: &finalizedAt}, nil)
			},
		},
		{
			name:     "lookup unknown transfer",
			method:   nethttp.MethodGet,
			url:      "/api/v1/transfers/tr-404",
			wantCode: nethttp.StatusNotFound,
			wantRes:  `{"status":"error","code":"DATA_NOT_FOUND","message":"data not found"}`,
			doMock: func() {
				testHelper.mockClearingSvc.EXPECT().
					Lookup(gomock.Any(), "tr-404").
					Return(nil, common.ErrDataNotFound)
			},
		},
		{
			name:     "confirm",
			method:   nethttp.MethodPost,
			url:      "/api/v1/transfers/tr-2/confirm",
			wantCode: nethttp.StatusOK,
			wantRes:  `{"transferId":"tr-2","intentId":"int-2","state":"POSTED","finalizedAt":"2026-03-01T09:00:00Z"}`,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()
				testHelper.mockClearingSvc.EXPECT().
					Confirm(gomock.Any(), "tr-2").
					Return(&models.ClearingResult{TransferID: "tr-2", IntentID: "int-2", State: models.TransferStatePosted, FinalizedAt: &finalizedAt}, nil)
			},
		},
		{
			name:     "confirm a voided transfer",
			method:   nethttp.MethodPost,
			url:      "/api/v1/transfers/tr-3/confirm",
			wantCode: nethttp.StatusConflict,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()
				testHelper.mockClearingSvc.EXPECT().
					Confirm(gomock.Any(), "tr-3").
					Return(nil, fmt.Errorf("%w: VOIDED -> POSTED", common.ErrInvalidTransition))
			},
		},
		{
			name:     "cancel",
			method:   nethttp.MethodPost,
			url:      "/api/v1/transfers/tr-4/cancel",
			wantCode: nethttp.StatusOK,
			wantRes:  `{"transferId":"tr-4","intentId":"int-4","state":"VOIDED","finalizedAt":"2026-03-01T09:00:00Z"}`,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()
				testHelper.mockClearingSvc.EXPECT().
					Cancel(gomock.Any(), "tr-4").
					Return(&models.ClearingResult{TransferID: "tr-4", IntentID: "int-4", State: models.TransferStateVoided, FinalizedAt: &finalizedAt}, nil)
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock()
			}

			req := httptest.NewRequest(tt.method, tt.url, nil)
			req.Header.Set("X-Idempotency-Key", "idem-"+tt.name)

			rec := httptest.NewRecorder()
			testHelper.router.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantRes != "" {
				require.Equal(t, tt.wantRes, strings.TrimSuffix(string(body), "\n"))
			}
		})
	}
}

func TestHandlerTransferStatus(t *testing.T) {
	testHelper := getTransferTestHelper(t)

	record := models.TransferRecord{TransferID: "tr-1", State: models.TransferStatePosted, Honoring: &models.HonoringSpec{Rail: "ach"}}
	view := models.NewTransferStatusView(record, []models.HonoringOutcome{
		{TransferID: "tr-1", Status: models.HonoringStatusSuccess, AdapterReference: "ach-001"},
	})
	testHelper.mockClearingSvc.EXPECT().
		Status(gomock.Any(), "tr-1").
		Return(&view, nil)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/transfers/tr-1/status", nil)
	rec := httptest.NewRecorder()
	testHelper.router.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)

	var got models.TransferStatusView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.TransferDisplayHonored, got.Status)
	require.Len(t, got.Honoring, 1)
	assert.Equal(t, "ach-001", got.Honoring[0].AdapterReference)
}
