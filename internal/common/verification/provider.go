package verification

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/common/httpclient"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	logMessage = "[VERIFICATION-PROVIDER]"

	pathInstant       = "/v1/verifications/instant"
	pathMicroDeposits = "/v1/verifications/micro-deposits"
)

var ErrProviderUnavailable = errors.New("verification provider unavailable")

// Provider verifies that an external account belongs to the recipient.
type Provider interface {
	// VerifyInstant is a single round trip with a terminal answer.
	VerifyInstant(ctx context.Context, descriptor models.ExternalAccountDescriptor, reference string) (InstantResult, error)
	// SendMicroDeposits asks the provider to credit amounts to the account.
	SendMicroDeposits(ctx context.Context, bindingID string, descriptor models.ExternalAccountDescriptor, amounts []decimal.Decimal) error
}

type InstantResult struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}

type instantRequest struct {
	Descriptor models.ExternalAccountDescriptor `json:"descriptor"`
	Reference  string                           `json:"reference,omitempty"`
}

type microDepositRequest struct {
	BindingID  string                           `json:"bindingId"`
	Descriptor models.ExternalAccountDescriptor `json:"descriptor"`
	Amounts    []decimal.Decimal                `json:"amounts"`
}

type provider struct {
	wrapper *httpclient.RequestWrapper
}

func New(cfg config.HTTPConfiguration, mtc metrics.Metrics) Provider {
	return &provider{
		wrapper: httpclient.NewRequestWrapper(httpclient.NewRestyClient(cfg), mtc, "verification-provider", logMessage),
	}
}

func (p *provider) VerifyInstant(ctx context.Context, descriptor models.ExternalAccountDescriptor, reference string) (res InstantResult, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	httpRes, err := p.wrapper.DoRequest(ctx, http.MethodPost, pathInstant, pathInstant, func(r *resty.Request) *resty.Request {
		return r.SetBody(instantRequest{Descriptor: descriptor, Reference: reference})
	})
	if err != nil {
		return InstantResult{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	if !httpRes.IsSuccess() {
		return InstantResult{}, fmt.Errorf("%w: http status %d", ErrProviderUnavailable, httpRes.StatusCode())
	}

	if err = json.Unmarshal(httpRes.Body(), &res); err != nil {
		return InstantResult{}, fmt.Errorf("error unmarshal instant verification: %w", err)
	}
	return res, nil
}

func (p *provider) SendMicroDeposits(ctx context.Context, bindingID string, descriptor models.ExternalAccountDescriptor, amounts []decimal.Decimal) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	httpRes, err := p.wrapper.DoRequest(ctx, http.MethodPost, pathMicroDeposits, pathMicroDeposits, func(r *resty.Request) *resty.Request {
		return r.
			SetHeader("Idempotency-Key", "micro-"+bindingID).
			SetBody(microDepositRequest{BindingID: bindingID, Descriptor: descriptor, Amounts: amounts})
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	if !httpRes.IsSuccess() {
		return fmt.Errorf("%w: http status %d", ErrProviderUnavailable, httpRes.StatusCode())
	}
	return nil
}

// RandomMicroDeposits draws n distinct amounts between 0.01 and 0.99.
func RandomMicroDeposits(n int) ([]decimal.Decimal, error) {
	res := make([]decimal.Decimal, 0, n)
	seen := make(map[int64]struct{}, n)
	for len(res) < n {
		v, err := rand.Int(rand.Reader, big.NewInt(99))
		if err != nil {
			return nil, err
		}
		cents := v.Int64() + 1
		if _, ok := seen[cents]; ok {
			continue
		}
		seen[cents] = struct{}{}
		res = append(res, decimal.New(cents, -2))
	}
	return res, nil
}
