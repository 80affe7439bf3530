package settings

import (
	"errors"
	"fmt"

	"github.com/papersrc/papersrc/log"
	"github.com/papersrc/papersrc/store"
)

// Write is a single key assignment of a batch.
type Write struct {
	Key   string
	Value any
}

// StoreAll performs every write independently.
// A failed write does not stop the rest; the failures are returned joined.
func StoreAll(s store.Store, writes ...Write) error {
	var errs []error
	for _, w := range writes {
		if err := s.Store(w.Key, w.Value); err != nil {
			log.Errorf("settings: store %s: %v", w.Key, err)
			errs = append(errs, fmt.Errorf("store %s: %w", w.Key, err))
		}
	}
	return errors.Join(errs...)
}

// Clear sets every key to nil so the next read returns its default.
func Clear(s store.Store, keys ...string) error {
	writes := make([]Write, len(keys))
	for i, k := range keys {
		writes[i] = Write{Key: k}
	}
	return StoreAll(s, writes...)
}

// Menu is implemented by sources with a settings menu.
type Menu interface {
	SourceMenu() (Section, error)
}
