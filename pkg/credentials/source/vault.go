package source

import (
	"context"

	vault "github.com/hashicorp/vault/api"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"

	"github.com/isometry/rtdb-credentials/pkg/utils"
)

var TypeVault = "vault"

// Vault reads key/value secrets. Address falls back to VAULT_ADDR and the
// token always comes from the client environment (VAULT_TOKEN).
type Vault struct {
	ctl *vault.Client

	Address string `mapstructure:"address"`
	Engine  string `mapstructure:"engine" default:"kv2"`
	Mount   string `mapstructure:"mount" default:"secret"`

	KeyEntry `mapstructure:",squash"`
	Keys     []KeyEntry `mapstructure:"keys"`
}

func (v *Vault) Name() string {
	return TypeVault
}

func (v *Vault) client() (*vault.Client, error) {
	cfg := vault.DefaultConfig()
	if v.Address != "" {
		cfg.Address = v.Address
	}
	return vault.NewClient(cfg)
}

func (v *Vault) get(ctx context.Context, path string) (*vault.KVSecret, error) {
	switch v.Engine {
	case "kv", "kv-v1", "kvv1":
		secret, err := v.ctl.KVv1(v.Mount).Get(ctx, path)
		return secret, errors.Wrap(err, "failed to get Vault kv-v1 secret")
	case "kv2", "kv-v2", "kvv2":
		secret, err := v.ctl.KVv2(v.Mount).Get(ctx, path)
		return secret, errors.Wrap(err, "failed to get Vault kv-v2 secret")
	}
	return nil, errors.Errorf("unsupported Vault engine %q", v.Engine)
}

func (v *Vault) Fetch(ctx context.Context) (values Values, err error) {
	defaults.SetDefaults(v)

	entries := keyEntries(v.KeyEntry, v.Keys)
	if len(entries) == 0 {
		return nil, errNoKeys
	}

	if v.ctl == nil {
		v.ctl, err = v.client()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create the Vault client")
		}
	}

	values = make(Values)
	for _, p := range entries {
		if p.Key == "" {
			return nil, errors.Errorf("vault entry %s requires a key", p.Path)
		}

		keyCtx, cancel := p.context(ctx)
		secret, err := v.get(keyCtx, p.Path)
		utils.CancelContext(cancel)
		if err != nil {
			return nil, err
		}
		if secret == nil || secret.Data == nil {
			return nil, errors.Errorf("vault secret %s is empty", p.Path)
		}

		value, ok := secret.Data[p.Key]
		if !ok {
			return nil, errors.Errorf("key %q not found in vault secret %s", p.Key, p.Path)
		}
		if err = assign(values, p, value); err != nil {
			return nil, err
		}
	}
	return values, nil
}
