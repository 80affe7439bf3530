// Package store implements the persistent key-value namespaces a source keeps its settings and credentials in.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/mo"
)

// ErrDecode is returned when a stored value does not have the shape the caller asked for.
var ErrDecode = errors.New("stored value has unexpected shape")

// Store is a single namespace of JSON values.
// Storing nil clears the key.
type Store interface {
	Retrieve(key string) (mo.Option[json.RawMessage], error)
	Store(key string, value any) error
}

// Get retrieves key and decodes it into T.
// A cleared key and a JSON null are both reported as None.
func Get[T any](s Store, key string) (mo.Option[T], error) {
	raw, err := s.Retrieve(key)
	if err != nil {
		return mo.None[T](), err
	}

	data, ok := raw.Get()
	if !ok || isNull(data) {
		return mo.None[T](), nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return mo.None[T](), fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}

	return mo.Some(value), nil
}

// GetOr is Get with a fallback for absent keys.
func GetOr[T any](s Store, key string, fallback T) (T, error) {
	value, err := Get[T](s, key)
	if err != nil {
		return fallback, err
	}
	return value.OrElse(fallback), nil
}

func encode(value any) (json.RawMessage, error) {
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		return nil, nil
	}
	return data, nil
}

func isNull(data []byte) bool {
	return len(data) == 0 || string(data) == "null"
}
