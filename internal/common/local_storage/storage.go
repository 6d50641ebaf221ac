package localstorage

import (
	"encoding/json"
)

// LocalStorage keeps single-process scratch data on disk, such as the
// engine snapshot collected by the mirror reconciliation job.
type LocalStorage[T any] interface {
	// Get returns the zero value when key is absent.
	Get(key string) (T, error)

	// Lookup reports whether key was present.
	Lookup(key string) (T, bool, error)

	Set(key string, value T) error

	Delete(key string) error

	// ForEach visits every entry whose key starts with prefix. An empty
	// prefix visits everything.
	ForEach(prefix string, f func(key string, value T) error) error

	Close() error

	// Clean removes the on-disk data. Call it after Close.
	Clean() error
}

type (
	MarshalFunc func(v any) ([]byte, error)

	UnmarshalFunc func(data []byte, v any) error
)

var (
	Marshal   MarshalFunc   = json.Marshal
	Unmarshal UnmarshalFunc = json.Unmarshal
)
