package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// InMemoryClient is a process-local Client used by tests and by the
// in-memory engine profile.
type InMemoryClient[T any] struct {
	entries   sync.Map
	done      chan struct{}
	closeOnce sync.Once
	now       func() time.Time
}

type entry struct {
	raw       []byte
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

func NewInMemoryClient[T any]() *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		done: make(chan struct{}),
		now:  time.Now,
	}

	go m.sweep(time.Minute)
	return m
}

func (m *InMemoryClient[T]) Get(_ context.Context, key string) (result T, err error) {
	v, found := m.entries.Load(key)
	if !found {
		return result, ErrNotExists
	}

	e, ok := v.(*entry)
	if !ok {
		return result, ErrInvalidType
	}

	if e.expired(m.now()) {
		m.entries.Delete(key)
		return result, ErrNotExists
	}

	err = json.Unmarshal(e.raw, &result)
	return result, err
}

func (m *InMemoryClient[T]) Set(_ context.Context, key string, object T, ttl time.Duration) error {
	raw, err := json.Marshal(object)
	if err != nil {
		return err
	}

	e := &entry{raw: raw}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.entries.Store(key, e)
	return nil
}

func (m *InMemoryClient[T]) Delete(_ context.Context, key string) error {
	m.entries.Delete(key)
	return nil
}

func (m *InMemoryClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error) {
	return getOrSet[T](ctx, m, opts)
}

func (m *InMemoryClient[T]) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := m.now()
			m.entries.Range(func(key, value any) bool {
				if e, ok := value.(*entry); !ok || e.expired(now) {
					m.entries.Delete(key)
				}
				return true
			})
		case <-m.done:
			return
		}
	}
}

// Close stops the background sweeper.
func (m *InMemoryClient[T]) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}
