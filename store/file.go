package store

import (
	"encoding/json"
	"sync"

	"github.com/metafates/gache"
	"github.com/papersrc/papersrc/filesystem"
	"github.com/samber/mo"
)

// File is the plaintext namespace, persisted as one JSON object per source.
type File struct {
	mu       sync.Mutex
	internal *gache.Cache[map[string]json.RawMessage]
}

// NewFile opens (lazily) the JSON file at path.
func NewFile(path string) *File {
	return &File{
		internal: gache.New[map[string]json.RawMessage](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (f *File) load() (map[string]json.RawMessage, error) {
	values, expired, err := f.internal.Get()
	if err != nil {
		return nil, err
	}
	if expired || values == nil {
		return make(map[string]json.RawMessage), nil
	}
	return values, nil
}

func (f *File) Retrieve(key string) (mo.Option[json.RawMessage], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return mo.None[json.RawMessage](), err
	}

	value, ok := values[key]
	if !ok {
		return mo.None[json.RawMessage](), nil
	}
	return mo.Some(value), nil
}

func (f *File) Store(key string, value any) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	if data == nil {
		delete(values, key)
	} else {
		values[key] = data
	}

	return f.internal.Set(values)
}
