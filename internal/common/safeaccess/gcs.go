package safeaccess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"cloud.google.com/go/storage"
)

// ObjectStorageClient keeps a JSON document from object storage in memory
// and swaps it atomically on every reload.
type ObjectStorageClient[T any] interface {
	// LoadFile reads the object and replaces the in-memory value. A missing
	// object leaves the current value untouched.
	LoadFile(ctx context.Context) error

	// UpdateFile writes the in-memory value back to the object.
	UpdateFile(ctx context.Context) error

	Value() *Value[T]

	// Loaded reports whether a document was ever read or stored.
	Loaded() bool
}

type GCSJson[T any] struct {
	object     *storage.ObjectHandle
	val        Value[T]
	generation atomic.Int64
	loaded     atomic.Bool
}

func NewGCSJson[T any](object *storage.ObjectHandle) *GCSJson[T] {
	return &GCSJson[T]{
		object: object,
	}
}

func (g *GCSJson[T]) LoadFile(ctx context.Context) error {
	r, err := g.object.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}

		return fmt.Errorf("failed to init reader: %w", err)
	}
	defer r.Close()

	// same generation means the document has not been republished
	if gen := r.Attrs.Generation; gen != 0 && gen == g.generation.Load() {
		return nil
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var obj T
	if err = json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("failed to unmarshal file: %w", err)
	}

	g.val.Store(obj)
	g.generation.Store(r.Attrs.Generation)
	g.loaded.Store(true)

	return nil
}

func (g *GCSJson[T]) UpdateFile(ctx context.Context) error {
	raw, err := json.Marshal(g.val.Load())
	if err != nil {
		return fmt.Errorf("failed to marshal file: %w", err)
	}

	w := g.object.NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-store"

	if _, err = w.Write(raw); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	g.loaded.Store(true)

	return nil
}

func (g *GCSJson[T]) Value() *Value[T] {
	return &g.val
}

func (g *GCSJson[T]) Loaded() bool {
	return g.loaded.Load()
}
