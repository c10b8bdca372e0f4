// Package source resolves raw credential field values from the places they
// are kept: inline constants, environment variables, a downloaded
// service-account key file, AWS Secrets Manager and SSM, Vault, Kubernetes
// secrets and config maps, or the OS keyring.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/isometry/rtdb-credentials/pkg/credentials"
	"github.com/isometry/rtdb-credentials/pkg/utils"
)

var errNoKeys = errors.New("no keys configured")

// Values maps credential fields to the raw strings a source found for them.
type Values = map[credentials.Field]string

type Source interface {
	Name() string
	Fetch(ctx context.Context) (Values, error)
}

// KeyEntry selects one value from a backend. Path addresses the secret, Key
// an optional field inside a JSON document or data map, and Target the
// credential field the value feeds. Target defaults to Key, then Path.
type KeyEntry struct {
	Path    string        `mapstructure:"path"`
	Key     string        `mapstructure:"key"`
	Target  string        `mapstructure:"target"`
	Timeout time.Duration `mapstructure:"timeout" default:"10s"`
}

func (k KeyEntry) target() (credentials.Field, error) {
	dest := strings.TrimSpace(utils.CoalesceZero[string](k.Target, k.Key, k.Path))
	if dest == "" {
		return "", errors.New("key entry has no target")
	}
	return credentials.ParseField(dest)
}

func (k KeyEntry) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if k.Timeout > 0 {
		return context.WithTimeout(ctx, k.Timeout)
	}
	return ctx, nil
}

func (k *KeyEntry) SetDefaults() {
	defaults.SetDefaults(k)
}

// keyEntries returns the inline entry followed by the listed ones, skipping
// an inline entry that was left empty.
func keyEntries(inline KeyEntry, keys []KeyEntry) []KeyEntry {
	all := make([]KeyEntry, 0, len(keys)+1)
	if inline.Path != "" || inline.Key != "" || inline.Target != "" {
		all = append(all, inline)
	}
	all = append(all, keys...)
	for i := range all {
		all[i].SetDefaults()
	}
	return all
}

func decodeParams(params Params, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(params)
}

func stringValue(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case *string:
		if s == nil {
			return "", nil
		}
		return *s, nil
	case []byte:
		return string(s), nil
	case fmt.Stringer:
		return s.String(), nil
	}
	return "", fmt.Errorf("unsupported secret value type %T", v)
}

func assign(values Values, entry KeyEntry, v any) error {
	field, err := entry.target()
	if err != nil {
		return err
	}
	s, err := stringValue(v)
	if err != nil {
		return errors.Wrapf(err, "field %s", field)
	}
	if s != "" {
		values[field] = s
	}
	return nil
}
