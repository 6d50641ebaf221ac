package honoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"

	"github.com/sovr-labs/go-fp-clearing/internal/common/httpclient"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"

	"github.com/Masterminds/sprig"
	"github.com/go-resty/resty/v2"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	pathExecute = "/v1/executions"
)

type httpAdapter struct {
	rail    string
	wrapper *httpclient.RequestWrapper
	memo    *template.Template
}

type executeRequest struct {
	IdempotencyKey string                            `json:"idempotencyKey"`
	Destination    *models.ExternalAccountDescriptor `json:"destination,omitempty"`
	Amount         Amount                            `json:"amount"`
	Memo           string                            `json:"memo,omitempty"`
	Metadata       map[string]string                 `json:"metadata,omitempty"`
}

// MemoData is what memo templates are rendered with.
type MemoData struct {
	Rail           string
	IdempotencyKey string
	Amount         Amount
	Metadata       map[string]string
}

// NewHTTPAdapter builds a resty adapter for rail. memoTemplate may be empty.
func NewHTTPAdapter(rail string, cfg config.HTTPConfiguration, memoTemplate string, mtc metrics.Metrics) (Adapter, error) {
	return newHTTPAdapter(rail, httpclient.NewRestyClient(cfg), memoTemplate, mtc)
}

func newHTTPAdapter(rail string, client *resty.Client, memoTemplate string, mtc metrics.Metrics) (*httpAdapter, error) {
	a := &httpAdapter{
		rail:    rail,
		wrapper: httpclient.NewRequestWrapper(client, mtc, "honoring-"+rail, fmt.Sprintf("[HONORING-ADAPTER-%s]", rail)),
	}

	if memoTemplate != "" {
		tmpl, err := template.New(rail).Funcs(sprig.TxtFuncMap()).Parse(memoTemplate)
		if err != nil {
			return nil, fmt.Errorf("invalid memo template for rail %s: %w", rail, err)
		}
		a.memo = tmpl
	}

	return a, nil
}

func (a *httpAdapter) Execute(ctx context.Context, idempotencyKey string, destination *models.ExternalAccountDescriptor, amount Amount, metadata map[string]string) (res Result, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("rail", a.rail))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	memo, err := a.renderMemo(MemoData{Rail: a.rail, IdempotencyKey: idempotencyKey, Amount: amount, Metadata: metadata})
	if err != nil {
		return Result{}, err
	}

	body := executeRequest{
		IdempotencyKey: idempotencyKey,
		Destination:    destination,
		Amount:         amount,
		Memo:           memo,
		Metadata:       metadata,
	}

	httpRes, err := a.wrapper.DoRequest(ctx, http.MethodPost, pathExecute, pathExecute, func(r *resty.Request) *resty.Request {
		return r.SetHeader(HeaderIdempotencyKey, idempotencyKey).SetBody(body)
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrAdapterUnavailable, err)
	}

	code := httpRes.StatusCode()
	switch {
	case httpRes.IsSuccess():
		if err = json.Unmarshal(httpRes.Body(), &res); err != nil {
			return Result{}, fmt.Errorf("error unmarshal honoring result: %w", err)
		}
		if res.Status == "" {
			res.Status = StatusPending
		}
		return res, nil
	case code == http.StatusConflict:
		// the rail is still working on an earlier call with the same key
		return Result{Status: StatusPending, Reason: "in flight"}, nil
	case models.IsRetryableHTTPCode(code) || code >= http.StatusInternalServerError:
		return Result{}, fmt.Errorf("%w: http status %d", ErrAdapterUnavailable, code)
	default:
		return Result{}, fmt.Errorf("%w: http status %d: %s", ErrAdapterRequest, code, httpRes.String())
	}
}

func (a *httpAdapter) renderMemo(data MemoData) (string, error) {
	if a.memo == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := a.memo.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render memo for rail %s: %w", a.rail, err)
	}
	return buf.String(), nil
}
