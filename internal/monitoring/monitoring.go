package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerRepository = "repositories"
	LayerService    = "services"
	LayerDelivery   = "deliveries"
	LayerUnknown    = "unknown"
)

// layerOrder is checked against the caller's file path.
var layerOrder = []string{LayerRepository, LayerService, LayerDelivery}

// Monitor times one unit of work, logs its outcome and, when a New Relic
// transaction is on the context, records it as a segment.
type Monitor struct {
	ctx         context.Context
	segmentName string
	layer       string
	start       time.Time
	segment     *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
	attributes  map[string]any
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

// WithAttribute adds a segment attribute such as the transfer id.
func WithAttribute(key string, value any) InitOption {
	return func(o *initOptions) {
		if o.attributes == nil {
			o.attributes = make(map[string]any)
		}
		o.attributes[key] = value
	}
}

func New(ctx context.Context, opts ...InitOption) *Monitor {
	fOpts := &initOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	if fOpts.segmentName == "" {
		// must stay a direct call from New, the skip count depends on it
		name, layer := callerInfo(2)
		fOpts.segmentName = name
		if fOpts.layer == "" {
			fOpts.layer = layer
		}
	}

	if fOpts.layer == "" {
		fOpts.layer = LayerUnknown
	}

	segment := newrelic.FromContext(ctx).StartSegment(fOpts.segmentName)
	if segment != nil {
		segment.AddAttribute("layer", fOpts.layer)
		for k, v := range fOpts.attributes {
			segment.AddAttribute(k, v)
		}
	}

	return &Monitor{
		ctx:         ctx,
		layer:       fOpts.layer,
		start:       time.Now(),
		segmentName: fOpts.segmentName,
		segment:     segment,
	}
}

func callerInfo(skip int) (segmentName, layer string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return LayerUnknown, LayerUnknown
	}

	segmentName = LayerUnknown
	if fn := runtime.FuncForPC(pc); fn != nil {
		segmentName = getSegmentName(fn.Name())
	}

	layer = LayerUnknown
	for _, l := range layerOrder {
		if strings.Contains(file, l) {
			layer = l
			break
		}
	}

	return segmentName, layer
}

func (m *Monitor) SegmentName() string {
	return m.segmentName
}

func (m *Monitor) Layer() string {
	return m.layer
}

func NewMiddlewareRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return newrelic.NewRoundTripper(next)
}
