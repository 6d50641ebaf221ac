package safeaccess

import (
	"sync"
)

// Value guards a document that is read far more often than it is replaced.
type Value[T any] struct {
	guard sync.RWMutex
	data  T
}

func New[T any](data T) *Value[T] {
	return &Value[T]{
		data: data,
	}
}

func (v *Value[T]) Load() T {
	v.guard.RLock()
	defer v.guard.RUnlock()

	return v.data
}

func (v *Value[T]) Store(data T) {
	v.guard.Lock()
	v.data = data
	v.guard.Unlock()
}

// Swap stores data and returns the previous value.
func (v *Value[T]) Swap(data T) T {
	v.guard.Lock()
	defer v.guard.Unlock()

	old := v.data
	v.data = data
	return old
}
