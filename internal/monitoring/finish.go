package monitoring

import (
	"time"

	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
)

var messagePrefix = map[string]string{
	LayerRepository: "[REPOSITORY]",
	LayerService:    "[SERVICE]",
	LayerDelivery:   "[DELIVERY]",
	LayerUnknown:    "[-]",
}

type finishOptions struct {
	err        error
	xlogFields []xlog.Field
}

type FinishOption func(*finishOptions)

func WithFinishCheckError(err error) FinishOption {
	return func(o *finishOptions) {
		o.err = err
	}
}

func WithFinishXlogFields(fields ...xlog.Field) FinishOption {
	return func(o *finishOptions) {
		o.xlogFields = append(o.xlogFields, fields...)
	}
}

// Finish ends the segment. Errors are logged from every layer; successes only
// from services and deliveries so a request is not logged once per layer.
func (m *Monitor) Finish(opts ...FinishOption) {
	fOpts := &finishOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	fields := append(fOpts.xlogFields,
		xlog.String("segment", m.segmentName),
		xlog.Duration("processDuration", time.Since(m.start)))

	switch {
	case fOpts.err != nil:
		fields = append(fields, xlog.String("status", "error"), xlog.Err(fOpts.err))
		xlog.Warn(m.ctx, messagePrefix[m.layer], fields...)
	case m.layer == LayerDelivery || m.layer == LayerService:
		fields = append(fields, xlog.String("status", "success"))
		xlog.Info(m.ctx, messagePrefix[m.layer], fields...)
	}

	if m.segment != nil {
		m.segment.End()
	}
}
