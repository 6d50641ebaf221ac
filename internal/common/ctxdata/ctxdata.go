package ctxdata

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
)

const (
	HeaderCorrelationID = "X-Correlation-Id"
	HeaderRequestID     = "X-Request-Id"
	HeaderTraceParent   = "Traceparent"
)

type ctxKey struct{}

// Data is the request scoped metadata carried in every log line.
type Data struct {
	CorrelationID string
	Host          string
	TraceParent   string
}

type Option func(*Data)

func SetCorrelationId(id string) Option {
	return func(d *Data) { d.CorrelationID = id }
}

func SetHost(host string) Option {
	return func(d *Data) { d.Host = host }
}

func SetTraceParent(tp string) Option {
	return func(d *Data) { d.TraceParent = tp }
}

// Sets copies the existing data on ctx, applies opts and stores the result.
func Sets(ctx context.Context, opts ...Option) context.Context {
	d := Get(ctx)
	for _, opt := range opts {
		opt(&d)
	}
	return context.WithValue(ctx, ctxKey{}, d)
}

func Get(ctx context.Context) Data {
	if ctx == nil {
		return Data{}
	}
	d, _ := ctx.Value(ctxKey{}).(Data)
	return d
}

func GetCorrelationId(ctx context.Context) string {
	return Get(ctx).CorrelationID
}

func GetHost(ctx context.Context) string {
	return Get(ctx).Host
}

func GetTraceParent(ctx context.Context) string {
	return Get(ctx).TraceParent
}

// SetContextFromHTTP derives the correlation id from the incoming headers,
// falling back to a fresh uuid.
func SetContextFromHTTP(ctx context.Context, r *http.Request) context.Context {
	correlationID := strings.TrimSpace(r.Header.Get(HeaderCorrelationID))
	if correlationID == "" {
		correlationID = strings.TrimSpace(r.Header.Get(HeaderRequestID))
	}
	if correlationID == "" {
		correlationID = uuid.New().String()
	}

	host, _ := os.Hostname()

	return Sets(ctx,
		SetCorrelationId(correlationID),
		SetHost(host),
		SetTraceParent(r.Header.Get(HeaderTraceParent)),
	)
}
