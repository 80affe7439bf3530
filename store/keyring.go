package store

import (
	"encoding/json"
	"errors"

	"github.com/papersrc/papersrc/log"
	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

// Keyring is the secret namespace, backed by the system keyring.
// Each key is stored as a separate keyring entry under "<service>/<namespace>".
type Keyring struct {
	service string
}

// NewKeyring returns a secret store scoped to a single source.
func NewKeyring(service, namespace string) *Keyring {
	return &Keyring{service: service + "/" + namespace}
}

func (k *Keyring) Retrieve(key string) (mo.Option[json.RawMessage], error) {
	secret, err := keyring.Get(k.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return mo.None[json.RawMessage](), nil
	}
	if err != nil {
		log.Errorf("keyring: read %s: %v", key, err)
		return mo.None[json.RawMessage](), err
	}
	return mo.Some(json.RawMessage(secret)), nil
}

func (k *Keyring) Store(key string, value any) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	if data == nil {
		err = keyring.Delete(k.service, key)
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}

	if err = keyring.Set(k.service, key, string(data)); err != nil {
		log.Errorf("keyring: write %s: %v", key, err)
	}
	return err
}
