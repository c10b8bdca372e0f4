package source

import (
	"context"

	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

var TypeKeyring = "keyring"

// Keyring reads values from the OS keychain. Path is the account name under
// Service.
type Keyring struct {
	Service string `mapstructure:"service" default:"rtdb-credentials"`

	KeyEntry `mapstructure:",squash"`
	Keys     []KeyEntry `mapstructure:"keys"`
}

func (k *Keyring) Name() string {
	return TypeKeyring
}

func (k *Keyring) Fetch(_ context.Context) (Values, error) {
	defaults.SetDefaults(k)

	entries := keyEntries(k.KeyEntry, k.Keys)
	if len(entries) == 0 {
		return nil, errNoKeys
	}

	values := make(Values)
	for _, p := range entries {
		secret, err := keyring.Get(k.Service, p.Path)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.Errorf("keyring entry %s/%s not found", k.Service, p.Path)
			}
			return nil, errors.Wrap(err, "failed to read keyring")
		}
		if err := assign(values, p, secret); err != nil {
			return nil, err
		}
	}
	return values, nil
}
