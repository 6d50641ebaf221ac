package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/ctxdata"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewRestyClient builds a resty client for one downstream. Retries only fire
// for transport errors and the status codes in models.RetryableHTTPCodes.
func NewRestyClient(cfg config.HTTPConfiguration) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetTransport(newrelic.NewRoundTripper(http.DefaultTransport)).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return models.IsRetryableHTTPCode(res.StatusCode())
		})

	if cfg.SecretKey != "" {
		client.SetHeader("X-Secret-Key", cfg.SecretKey)
	}

	return client
}

type RequestWrapper struct {
	client      *resty.Client
	metrics     metrics.Metrics
	serviceName string
	logPrefix   string
}

func NewRequestWrapper(client *resty.Client, metrics metrics.Metrics, serviceName, logPrefix string) *RequestWrapper {
	return &RequestWrapper{
		client:      client,
		metrics:     metrics,
		serviceName: serviceName,
		logPrefix:   logPrefix,
	}
}

// DoRequest sends one request. endpoint is the route template used as the
// metrics label, url the concrete path. Non-2xx responses are returned
// without error; callers decide what they mean.
func (w *RequestWrapper) DoRequest(ctx context.Context, method, endpoint, url string, reqFunc func(*resty.Request) *resty.Request) (*resty.Response, error) {
	startTime := time.Now()

	logFields := []xlog.Field{
		xlog.String("service", w.serviceName),
		xlog.String("url", url),
		xlog.String("method", method),
	}

	req := w.client.R().SetContext(ctx)
	if correlationID := ctxdata.GetCorrelationId(ctx); correlationID != "" {
		req.SetHeader(ctxdata.HeaderCorrelationID, correlationID)
	}
	if reqFunc != nil {
		req = reqFunc(req)
	}

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	httpRes, err := req.Execute(method, url)
	if err != nil {
		xlog.Warn(ctx, w.logPrefix, append(logFields, xlog.Err(err))...)
		return nil, fmt.Errorf("failed send request: %w", err)
	}

	if w.metrics != nil {
		w.metrics.GetHTTPClientPrometheus().Record(time.Since(startTime), w.serviceName, method, endpoint, httpRes.StatusCode())
	}

	logFields = append(logFields,
		xlog.Int("httpStatusCode", httpRes.StatusCode()),
		xlog.Duration("latency", time.Since(startTime)),
	)

	if httpRes.IsError() {
		xlog.Warn(ctx, w.logPrefix, append(logFields, xlog.String("httpResponse", httpRes.String()))...)
	} else {
		xlog.Debug(ctx, w.logPrefix, logFields...)
	}

	return httpRes, nil
}
