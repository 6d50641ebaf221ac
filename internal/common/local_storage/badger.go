package localstorage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

type badgerStorage[T any] struct {
	db     *badger.DB
	bucket string
	pathDB string
}

// NewBadgerStorage opens a badger database under dir/bucket. An empty dir
// falls back to the OS temp directory.
func NewBadgerStorage[T any](dir, bucket string) (LocalStorage[T], error) {
	if dir == "" {
		dir = os.TempDir()
	}
	pathDB := filepath.Join(dir, bucket)

	opts := badger.DefaultOptions(pathDB)
	opts.Logger = nil

	return openBadger[T](opts, bucket, pathDB)
}

// NewInMemoryBadgerStorage keeps everything in memory. Used by tests.
func NewInMemoryBadgerStorage[T any](bucket string) (LocalStorage[T], error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return openBadger[T](opts, bucket, "")
}

func openBadger[T any](opts badger.Options, bucket, pathDB string) (LocalStorage[T], error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open localstorage %s: %w", bucket, err)
	}

	return &badgerStorage[T]{
		db:     db,
		bucket: bucket,
		pathDB: pathDB,
	}, nil
}

func (b *badgerStorage[T]) Get(key string) (T, error) {
	val, _, err := b.Lookup(key)
	return val, err
}

func (b *badgerStorage[T]) Lookup(key string) (T, bool, error) {
	var (
		val    T
		rawVal []byte
	)

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		rawVal, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return val, false, fmt.Errorf("failed to get value from localstorage: %w", err)
	}

	if rawVal == nil {
		return val, false, nil
	}

	if err = Unmarshal(rawVal, &val); err != nil {
		return val, false, fmt.Errorf("failed to unmarshal value from localstorage: %w", err)
	}

	return val, true, nil
}

func (b *badgerStorage[T]) Set(key string, value T) error {
	rawVal, err := Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), rawVal)
	})
	if err != nil {
		return fmt.Errorf("failed to set value to localstorage: %w", err)
	}

	return nil
}

func (b *badgerStorage[T]) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete value from localstorage: %w", err)
	}

	return nil
}

func (b *badgerStorage[T]) ForEach(prefix string, f func(key string, value T) error) error {
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			var val T
			if err = Unmarshal(raw, &val); err != nil {
				return fmt.Errorf("failed to unmarshal value: %w", err)
			}

			if err = f(string(item.KeyCopy(nil)), val); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to iterate over localstorage: %w", err)
	}

	return nil
}

func (b *badgerStorage[T]) Close() error {
	return b.db.Close()
}

func (b *badgerStorage[T]) Clean() error {
	if b.pathDB == "" {
		return nil
	}
	return os.RemoveAll(b.pathDB)
}
