package observation

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	commonhttp "github.com/sovr-labs/go-fp-clearing/internal/common/http"
	"github.com/sovr-labs/go-fp-clearing/internal/common/pagination"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var observedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func record(id string, leg int, debit, credit string) models.ObservationRecord {
	return models.ObservationRecord{
		ID:                 id,
		ClearingTransferID: "tr-1",
		LegIndex:           leg,
		AccountID:          "acc-employer",
		Debit:              decimal.RequireFromString(debit),
		Credit:             decimal.RequireFromString(credit),
		ObservedAt:         observedAt,
		ChartVersion:       "chart-v1",
	}
}

func TestHandlerBalance(t *testing.T) {
	testHelper := getObservationTestHelper(t)

	testHelper.mockObservationSvc.EXPECT().
		BalanceOf(gomock.Any(), "acc-employer").
		Return(decimal.RequireFromString("-500"), nil)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/observations/accounts/acc-employer/balance", nil)
	rec := httptest.NewRecorder()
	testHelper.router.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)

	var got models.BalanceOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "balance", got.Kind)
	assert.Equal(t, "acc-employer", got.AccountID)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("-500")))
	assert.False(t, got.AsOf.IsZero())
}

func TestHandlerHistory(t *testing.T) {
	testHelper := getObservationTestHelper(t)
	next := pagination.NewCursor(observedAt, "obs-2").Encode()

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantLen  int
		wantNext string
		doMock   func()
	}{
		{
			name:     "first page",
			query:    "?limit=2",
			wantCode: nethttp.StatusOK,
			wantLen:  2,
			wantNext: next,
			doMock: func() {
				testHelper.mockObservationSvc.EXPECT().
					History(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, filter models.HistoryFilter) (models.HistoryPage, error) {
						assert.Equal(t, "acc-employer", filter.AccountID)
						assert.Equal(t, 2+pagination.OverFetchOffset, filter.Limit)
						assert.Nil(t, filter.Cursor)
						return models.HistoryPage{
							Records:    []models.ObservationRecord{record("obs-1", 0, "500", "0"), record("obs-2", 0, "10", "0")},
							NextCursor: next,
						}, nil
					})
			},
		},
		{
			name:     "time range with cursor",
			query:    "?from=2026-03-01T00:00:00Z&to=2026-03-02T00:00:00Z&cursor=" + next,
			wantCode: nethttp.StatusOK,
			wantLen:  0,
			doMock: func() {
				testHelper.mockObservationSvc.EXPECT().
					History(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, filter models.HistoryFilter) (models.HistoryPage, error) {
						assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), filter.From.UTC())
						assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), filter.To.UTC())
						require.NotNil(t, filter.Cursor)
						assert.Equal(t, "obs-2", filter.Cursor.ID)
						return models.HistoryPage{}, nil
					})
			},
		},
		{
			name:     "malformed cursor",
			query:    "?cursor=not-a-cursor",
			wantCode: nethttp.StatusBadRequest,
		},
		{
			name:     "malformed time",
			query:    "?from=yesterday",
			wantCode: nethttp.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock()
			}

			req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/observations/accounts/acc-employer/history"+tt.query, nil)
			rec := httptest.NewRecorder()
			testHelper.router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != nethttp.StatusOK {
				return
			}

			var got commonhttp.RestPaginationResponseModel[[]models.ObservationOut]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "collection", got.Kind)
			assert.Len(t, got.Contents, tt.wantLen)
			assert.Equal(t, tt.wantNext, got.Pagination.Next)
		})
	}
}

func TestHandlerTransferObservations(t *testing.T) {
	testHelper := getObservationTestHelper(t)

	corrects := "obs-1"
	reversal := record("obs-3", 3, "0", "500")
	reversal.CorrectsRecordID = &corrects

	testHelper.mockObservationSvc.EXPECT().
		Observations(gomock.Any(), "tr-1").
		Return(models.ObservationSet{record("obs-1", 0, "500", "0"), reversal}, nil)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/observations/transfers/tr-1", nil)
	rec := httptest.NewRecorder()
	testHelper.router.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)

	var got []models.ObservationOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Nil(t, got[0].CorrectsRecordID)
	require.NotNil(t, got[1].CorrectsRecordID)
	assert.Equal(t, "obs-1", *got[1].CorrectsRecordID)
}
