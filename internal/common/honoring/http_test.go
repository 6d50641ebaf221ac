package honoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	xlog.InitForTest()
}

const memoTemplate = `{{ .Metadata.employee | upper }} payroll {{ .Amount.Value.StringFixed 2 }} {{ .Amount.Currency }}`

func newTestAdapter(t *testing.T, handler http.HandlerFunc) Adapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	adapter, err := NewHTTPAdapter("ach", config.HTTPConfiguration{BaseURL: server.URL, Timeout: time.Second}, memoTemplate, nil)
	require.NoError(t, err)
	return adapter
}

func execute(adapter Adapter) (Result, error) {
	return adapter.Execute(context.Background(), "honor-t-1",
		&models.ExternalAccountDescriptor{Type: models.ExternalAccountBank, AccountNumber: "000123456789"},
		Amount{Value: decimal.NewFromInt(500), Currency: "USD"},
		map[string]string{"employee": "jordan"})
}

func TestHTTPAdapter_Execute(t *testing.T) {
	t.Run("accepted with idempotency key and memo", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/executions", r.URL.Path)
			assert.Equal(t, "honor-t-1", r.Header.Get(HeaderIdempotencyKey))

			var body executeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "JORDAN payroll 500.00 USD", body.Memo)
			assert.Equal(t, "honor-t-1", body.IdempotencyKey)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ACCEPTED","reference":"ach-42"}`))
		})

		res, err := execute(adapter)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, res.Status)
		assert.Equal(t, "ach-42", res.Reference)
	})

	tests := []struct {
		name       string
		status     int
		body       string
		want       Status
		transient  bool
		permanent  bool
		wantResult bool
	}{
		{name: "declined", status: http.StatusOK, body: `{"status":"DECLINED","reason":"closed account"}`, want: StatusDeclined, wantResult: true},
		{name: "accepted for later", status: http.StatusAccepted, body: `{}`, want: StatusPending, wantResult: true},
		{name: "in flight", status: http.StatusConflict, want: StatusPending, wantResult: true},
		{name: "unavailable", status: http.StatusBadGateway, transient: true},
		{name: "bad request", status: http.StatusBadRequest, permanent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := execute(adapter)
			if tt.wantResult {
				require.NoError(t, err)
				assert.Equal(t, tt.want, res.Status)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.transient, IsTransient(err))
			if tt.permanent {
				assert.ErrorIs(t, err, ErrAdapterRequest)
			}
		})
	}
}

func TestNewHTTPAdapter_InvalidTemplate(t *testing.T) {
	_, err := NewHTTPAdapter("ach", config.HTTPConfiguration{}, "{{ .Broken", nil)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg, err := NewRegistryFromConfig(config.HonoringConfig{
		Adapters: map[string]config.HTTPConfiguration{
			"ach":  {BaseURL: "http://ach.local"},
			"card": {BaseURL: "http://card.local"},
		},
		MemoTemplates: map[string]string{"ach": "{{ .IdempotencyKey }}"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"ach", "card"}, reg.Rails())

	adapter, err := reg.Get("ach")
	require.NoError(t, err)
	assert.NotNil(t, adapter)

	_, err = reg.Get("wire")
	assert.ErrorIs(t, err, common.ErrUnknownHonoringRail)
}
