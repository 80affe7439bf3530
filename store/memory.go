package store

import (
	"encoding/json"
	"sync"

	"github.com/samber/mo"
)

// Memory is a volatile Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]json.RawMessage)}
}

func (m *Memory) Retrieve(key string) (mo.Option[json.RawMessage], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return mo.None[json.RawMessage](), nil
	}
	return mo.Some(value), nil
}

func (m *Memory) Store(key string, value any) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if data == nil {
		delete(m.values, key)
		return nil
	}
	m.values[key] = data
	return nil
}

// Keys returns the keys currently holding a value.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}
