package cache

import (
	"context"
	"errors"
	"time"
)

// Client is a typed read-through cache. Values are stored as JSON.
type Client[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, object T, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error)
}

var (
	ErrNotExists           = errors.New("key not exists on cache storage")
	ErrCallbackNotProvided = errors.New("callback not provided")
	ErrInvalidType         = errors.New("invalid type result")
)

type GetOrSetOpts[T any] struct {
	Key      string
	TTL      time.Duration
	Callback func() (T, error)

	// ShouldCache decides whether a freshly loaded value is stored. Nil caches
	// every value.
	ShouldCache func(T) bool
}

type getSetter[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, object T, ttl time.Duration) error
}

func getOrSet[T any](ctx context.Context, c getSetter[T], opts GetOrSetOpts[T]) (result T, err error) {
	if opts.Callback == nil {
		return result, ErrCallbackNotProvided
	}

	result, err = c.Get(ctx, opts.Key)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, ErrNotExists) {
		return result, err
	}

	result, err = opts.Callback()
	if err != nil {
		return result, err
	}

	if opts.ShouldCache != nil && !opts.ShouldCache(result) {
		return result, nil
	}

	if err = c.Set(ctx, opts.Key, result, opts.TTL); err != nil {
		return result, err
	}

	return result, nil
}
