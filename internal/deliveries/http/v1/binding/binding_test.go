package binding

import (
	"bytes"
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

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var bankDescriptor = models.ExternalAccountDescriptor{
	Type:          models.ExternalAccountBank,
	HolderName:    "Jordan Lee",
	RoutingNumber: "021000021",
	AccountNumber: "000123456789",
}

func bindingFixture(status models.BindingStatus) *models.RecipientAccountBinding {
	return &models.RecipientAccountBinding{
		ID:          "bnd-1",
		RecipientID: "rcp-jordan",
		AccountID:   "acc-payroll-jordan",
		Ledger:      "USD",
		Descriptor:  bankDescriptor,
		Status:      status,
	}
}

func doRequest(t *testing.T, h bindingTestHelper, method, url string, payload any) (int, string) {
	t.Helper()

	var b bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&b).Encode(payload))
	}

	req := httptest.NewRequest(method, url, &b)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", "idem-1")

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	resp := rec.Result()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, strings.TrimSuffix(string(body), "\n")
}

func TestHandlerBind(t *testing.T) {
	testHelper := getBindingTestHelper(t)

	validReq := models.BindRequest{
		AccountID:  "acc-payroll-jordan",
		Ledger:     "USD",
		Descriptor: bankDescriptor,
	}

	tests := []struct {
		name     string
		req      models.BindRequest
		wantRes  string
		wantCode int
		doMock   func()
	}{
		{
			name:     "success",
			req:      validReq,
			wantCode: nethttp.StatusCreated,
			wantRes:  `{"kind":"binding","id":"bnd-1","recipientId":"rcp-jordan","accountId":"acc-payroll-jordan","ledger":"USD","type":"bank_account","masked":"********6789","status":"UNVERIFIED","isDefault":false,"microDepositAttempts":0}`,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()

				want := validReq
				want.RecipientID = "rcp-jordan"
				testHelper.mockIdentitySvc.EXPECT().
					Bind(gomock.Any(), want).
					Return(bindingFixture(models.BindingStatusUnverified), nil)
			},
		},
		{
			name:     "limit reached",
			req:      validReq,
			wantCode: nethttp.StatusConflict,
			wantRes:  `{"status":"error","code":"RECIPIENT_BINDING_LIMIT_REACHED","message":"recipient binding limit reached: rcp-jordan"}`,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()
				testHelper.mockIdentitySvc.EXPECT().
					Bind(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: rcp-jordan", common.ErrBindingLimitReached))
			},
		},
		{
			name: "failed validation",
			req: models.BindRequest{
				Ledger:     "USD",
				Descriptor: models.ExternalAccountDescriptor{Type: models.ExternalAccountBank},
			},
			wantCode: nethttp.StatusUnprocessableEntity,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock()
			}

			code, body := doRequest(t, testHelper, nethttp.MethodPost, "/api/v1/recipients/rcp-jordan/bindings", tt.req)

			require.Equal(t, tt.wantCode, code)
			if tt.wantRes != "" {
				require.Equal(t, tt.wantRes, body)
			}
		})
	}
}

func TestHandlerBind_MissingIdempotencyKey(t *testing.T) {
	testHelper := getBindingTestHelper(t)

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/recipients/rcp-jordan/bindings", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	testHelper.router.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestHandlerVerify(t *testing.T) {
	testHelper := getBindingTestHelper(t)
	expiresAt := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		req      models.VerifyRequest
		wantRes  string
		wantCode int
		doMock   func()
	}{
		{
			name:     "micro deposit issued",
			req:      models.VerifyRequest{Method: "MICRO_DEPOSIT"},
			wantCode: nethttp.StatusOK,
			wantRes:  `{"kind":"binding","id":"bnd-1","recipientId":"rcp-jordan","accountId":"acc-payroll-jordan","ledger":"USD","type":"bank_account","masked":"********6789","status":"PENDING_VERIFICATION","method":"MICRO_DEPOSIT","isDefault":false,"microDepositAttempts":0,"microDepositExpiresAt":"2026-03-04T00:00:00Z"}`,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()

				res := bindingFixture(models.BindingStatusPendingVerification)
				res.Method = models.VerificationMicroDeposit
				res.MicroDepositExpiresAt = &expiresAt
				testHelper.mockIdentitySvc.EXPECT().
					Verify(gomock.Any(), "bnd-1", models.VerificationMicroDeposit, models.VerificationEvidence{}).
					Return(res, nil)
			},
		},
		{
			name:     "mismatch returns the binding with the attempts",
			req:      models.VerifyRequest{Method: "MICRO_DEPOSIT", Amounts: []string{"0.11", "0.22"}},
			wantCode: nethttp.StatusUnprocessableEntity,
			wantRes:  `{"kind":"binding","id":"bnd-1","recipientId":"rcp-jordan","accountId":"acc-payroll-jordan","ledger":"USD","type":"bank_account","masked":"********6789","status":"PENDING_VERIFICATION","method":"MICRO_DEPOSIT","isDefault":false,"microDepositAttempts":1,"microDepositExpiresAt":"2026-03-04T00:00:00Z"}`,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()

				res := bindingFixture(models.BindingStatusPendingVerification)
				res.Method = models.VerificationMicroDeposit
				res.MicroDepositAttempts = 1
				res.MicroDepositExpiresAt = &expiresAt
				testHelper.mockIdentitySvc.EXPECT().
					Verify(gomock.Any(), "bnd-1", models.VerificationMicroDeposit, models.VerificationEvidence{
						Amounts: []decimal.Decimal{decimal.RequireFromString("0.11"), decimal.RequireFromString("0.22")},
					}).
					Return(res, common.ErrMicroDepositMismatch)
			},
		},
		{
			name:     "binding not found",
			req:      models.VerifyRequest{Method: "INSTANT"},
			wantCode: nethttp.StatusNotFound,
			wantRes:  `{"status":"error","code":"DATA_NOT_FOUND","message":"data not found"}`,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()
				testHelper.mockIdentitySvc.EXPECT().
					Verify(gomock.Any(), "bnd-1", models.VerificationInstant, gomock.Any()).
					Return(nil, common.ErrDataNotFound)
			},
		},
		{
			name:     "unknown method",
			req:      models.VerifyRequest{Method: "CARRIER_PIGEON"},
			wantCode: nethttp.StatusUnprocessableEntity,
			doMock: func() {
				testHelper.expectFreshIdempotencyKey()
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock()
			}

			code, body := doRequest(t, testHelper, nethttp.MethodPost, "/api/v1/bindings/bnd-1/verify", tt.req)

			require.Equal(t, tt.wantCode, code)
			if tt.wantRes != "" {
				require.Equal(t, tt.wantRes, body)
			}
		})
	}
}

func TestHandlerReview(t *testing.T) {
	testHelper := getBindingTestHelper(t)

	testHelper.expectFreshIdempotencyKey()
	req := models.ManualReviewRequest{Approved: true, Reviewer: "ops@sovr"}
	res := bindingFixture(models.BindingStatusVerified)
	res.Method = models.VerificationManual
	res.Reviewer = "ops@sovr"
	testHelper.mockIdentitySvc.EXPECT().
		CompleteManualReview(gomock.Any(), "bnd-1", req).
		Return(res, nil)

	code, body := doRequest(t, testHelper, nethttp.MethodPost, "/api/v1/bindings/bnd-1/review", req)
	require.Equal(t, nethttp.StatusOK, code)
	require.Contains(t, body, `"status":"VERIFIED"`)
}

func TestHandlerListAndDefault(t *testing.T) {
	testHelper := getBindingTestHelper(t)

	t.Run("list", func(t *testing.T) {
		verified := bindingFixture(models.BindingStatusVerified)
		verified.IsDefault = true
		testHelper.mockIdentitySvc.EXPECT().
			ListBindings(gomock.Any(), "rcp-jordan").
			Return([]models.RecipientAccountBinding{*verified}, nil)

		code, body := doRequest(t, testHelper, nethttp.MethodGet, "/api/v1/recipients/rcp-jordan/bindings", nil)
		require.Equal(t, nethttp.StatusOK, code)

		var out []models.BindingOut
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		require.Len(t, out, 1)
		require.True(t, out[0].IsDefault)
	})

	t.Run("empty list", func(t *testing.T) {
		testHelper.mockIdentitySvc.EXPECT().
			ListBindings(gomock.Any(), "rcp-none").
			Return(nil, nil)

		code, body := doRequest(t, testHelper, nethttp.MethodGet, "/api/v1/recipients/rcp-none/bindings", nil)
		require.Equal(t, nethttp.StatusOK, code)
		require.Equal(t, `[]`, body)
	})

	t.Run("set default", func(t *testing.T) {
		testHelper.mockIdentitySvc.EXPECT().
			SetDefault(gomock.Any(), "rcp-jordan", "bnd-1").
			Return(nil)

		code, _ := doRequest(t, testHelper, nethttp.MethodPut, "/api/v1/recipients/rcp-jordan/bindings/bnd-1/default", nil)
		require.Equal(t, nethttp.StatusNoContent, code)
	})

	t.Run("set default on an unverified binding", func(t *testing.T) {
		testHelper.mockIdentitySvc.EXPECT().
			SetDefault(gomock.Any(), "rcp-jordan", "bnd-2").
			Return(fmt.Errorf("%w: bnd-2", common.ErrUnverifiedRecipient))

		code, _ := doRequest(t, testHelper, nethttp.MethodPut, "/api/v1/recipients/rcp-jordan/bindings/bnd-2/default", nil)
		require.Equal(t, nethttp.StatusUnprocessableEntity, code)
	})

	t.Run("get", func(t *testing.T) {
		testHelper.mockIdentitySvc.EXPECT().
			GetBinding(gomock.Any(), "bnd-1").
			Return(bindingFixture(models.BindingStatusUnverified), nil)

		code, body := doRequest(t, testHelper, nethttp.MethodGet, "/api/v1/bindings/bnd-1", nil)
		require.Equal(t, nethttp.StatusOK, code)
		require.Contains(t, body, `"id":"bnd-1"`)
	})
}
