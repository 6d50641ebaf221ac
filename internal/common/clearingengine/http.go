package clearingengine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/common/httpclient"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"

	"github.com/go-resty/resty/v2"
)

const (
	logMessage  = "[CLEARING-ENGINE-CLIENT]"
	serviceName = "clearing-engine"

	pathTransfers      = "/v1/transfers"
	pathTransfer       = "/v1/transfers/%s"
	pathPostTransfer   = "/v1/transfers/%s/post"
	pathVoidTransfer   = "/v1/transfers/%s/void"
	pathAccountBalance = "/v1/accounts/%s/balance"
)

type httpClient struct {
	wrapper *httpclient.RequestWrapper
}

type rejectionBody struct {
	Reason RejectReason `json:"reason"`
	Detail string       `json:"detail"`
}

func NewHTTPClient(cfg config.HTTPConfiguration, mtc metrics.Metrics) Client {
	return newHTTPClient(httpclient.NewRestyClient(cfg), mtc)
}

func newHTTPClient(client *resty.Client, mtc metrics.Metrics) *httpClient {
	return &httpClient{
		wrapper: httpclient.NewRequestWrapper(client, mtc, serviceName, logMessage),
	}
}

func (c *httpClient) CreateTransfer(ctx context.Context, transfer models.Transfer) (out Outcome, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	res, err := c.wrapper.DoRequest(ctx, http.MethodPost, pathTransfers, pathTransfers, func(r *resty.Request) *resty.Request {
		return r.SetBody(transfer)
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return decodeOutcome(ctx, res)
}

func (c *httpClient) PostPending(ctx context.Context, transferID string) (out Outcome, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	res, err := c.wrapper.DoRequest(ctx, http.MethodPost, pathPostTransfer, fmt.Sprintf(pathPostTransfer, transferID), nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return decodeOutcome(ctx, res)
}

func (c *httpClient) VoidPending(ctx context.Context, transferID string) (out Outcome, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	res, err := c.wrapper.DoRequest(ctx, http.MethodPost, pathVoidTransfer, fmt.Sprintf(pathVoidTransfer, transferID), nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return decodeOutcome(ctx, res)
}

func (c *httpClient) LookupTransfer(ctx context.Context, transferID string) (out EngineTransfer, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	res, err := c.wrapper.DoRequest(ctx, http.MethodGet, pathTransfer, fmt.Sprintf(pathTransfer, transferID), nil)
	if err != nil {
		return EngineTransfer{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if res.StatusCode() == http.StatusNotFound {
		return EngineTransfer{}, fmt.Errorf("%w: %s", ErrTransferNotFound, transferID)
	}
	if err = statusError(res); err != nil {
		return EngineTransfer{}, err
	}

	if err = json.Unmarshal(res.Body(), &out); err != nil {
		return EngineTransfer{}, fmt.Errorf("error unmarshal transfer: %w", err)
	}
	return out, nil
}

func (c *httpClient) GetAccountBalance(ctx context.Context, accountID string) (out models.AccountBalance, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	res, err := c.wrapper.DoRequest(ctx, http.MethodGet, pathAccountBalance, fmt.Sprintf(pathAccountBalance, accountID), nil)
	if err != nil {
		return models.AccountBalance{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if res.StatusCode() == http.StatusNotFound {
		return models.AccountBalance{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if err = statusError(res); err != nil {
		return models.AccountBalance{}, err
	}

	if err = json.Unmarshal(res.Body(), &out); err != nil {
		return models.AccountBalance{}, fmt.Errorf("error unmarshal balance: %w", err)
	}
	return out, nil
}

func decodeOutcome(ctx context.Context, res *resty.Response) (Outcome, error) {
	if err := statusError(res); err != nil {
		return Outcome{}, err
	}

	var out Outcome
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		xlog.Warn(ctx, logMessage, xlog.String("body", res.String()), xlog.Err(err))
		return Outcome{}, fmt.Errorf("error unmarshal outcome: %w", err)
	}
	return out, nil
}

// statusError maps a non-2xx answer. Retryable codes are transient, any
// other 4xx is a terminal rejection.
func statusError(res *resty.Response) error {
	if res.IsSuccess() {
		return nil
	}

	code := res.StatusCode()
	if models.IsRetryableHTTPCode(code) || code >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http status %d", ErrUnavailable, code)
	}

	var body rejectionBody
	if err := json.Unmarshal(res.Body(), &body); err != nil || body.Reason == "" {
		return &RejectionError{Reason: RejectReason(fmt.Sprintf("http_%d", code)), Detail: res.String()}
	}
	return &RejectionError{Reason: body.Reason, Detail: body.Detail}
}
