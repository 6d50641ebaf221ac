package retry

import (
	"context"
	"errors"

	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/config"

	"github.com/cenkalti/backoff/v4"
)

const DefaultMaxRetries uint64 = 3

// Retryer retries an operation with a backoff policy. When the operation
// gives up, either because retries ran out or StopRetryWithErr was returned,
// onExhausted receives the last error and its result is returned to the caller.
type Retryer interface {
	Retry(ctx context.Context, operation func() error, onExhausted func(err error) error) error
	StopRetryWithErr(err error) error
}

type exponentialBackoff struct {
	cfg config.ExponentialBackOffConfig
}

/*
NewExponentialBackOff returns a Retryer backed by an exponential backoff.

Example:

	retryer.Retry(ctx,
		func() error { return engine.CreateTransfer(ctx, t) },
		func(err error) error { return publishToDLQ(err) },
	)
*/
func NewExponentialBackOff(cfg config.ExponentialBackOffConfig) Retryer {
	if cfg.MaxBackoffTime < 0 {
		cfg.MaxBackoffTime = backoff.DefaultMaxElapsedTime
	}

	if cfg.BackoffMultiplier <= 0 {
		cfg.BackoffMultiplier = backoff.DefaultMultiplier
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	return &exponentialBackoff{cfg: cfg}
}

func (r *exponentialBackoff) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = r.cfg.MaxBackoffTime
	eb.Multiplier = r.cfg.BackoffMultiplier
	if r.cfg.InitialInterval > 0 {
		eb.InitialInterval = r.cfg.InitialInterval
	}

	return backoff.WithContext(backoff.WithMaxRetries(eb, r.cfg.MaxRetries), ctx)
}

func (r *exponentialBackoff) Retry(ctx context.Context, operation func() error, onExhausted func(err error) error) error {
	err := backoff.Retry(operation, r.newBackOff(ctx))
	if err == nil {
		return nil
	}

	xlog.Debug(ctx, "[RETRY] operation gave up", xlog.Err(err))
	if onExhausted == nil {
		return err
	}

	return onExhausted(err)
}

// StopRetryWithErr marks err as permanent. Call it inside the operation.
func (r *exponentialBackoff) StopRetryWithErr(err error) error {
	return backoff.Permanent(err)
}

// IsPermanent reports whether err was produced by StopRetryWithErr.
func IsPermanent(err error) bool {
	var permanent *backoff.PermanentError
	return errors.As(err, &permanent)
}
