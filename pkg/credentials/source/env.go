package source

import (
	"context"
	"strings"

	"github.com/mcuadros/go-defaults"
	"github.com/spf13/viper"

	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

var TypeEnv = "env"

// DefaultEnvPrefix prefixes the default variable names, e.g. RTDB_PROJECT_ID.
const DefaultEnvPrefix = "RTDB"

var defaultEnvNames = map[credentials.Field]string{
	credentials.FieldDatabaseURL:   "DATABASE_URL",
	credentials.FieldProjectID:     "PROJECT_ID",
	credentials.FieldClientEmail:   "CLIENT_EMAIL",
	credentials.FieldPrivateKeyPEM: "PRIVATE_KEY",
}

// DefaultEnvName returns the environment variable read for field when no
// explicit keys are configured.
func DefaultEnvName(prefix string, field credentials.Field) string {
	if prefix == "" {
		return defaultEnvNames[field]
	}
	return strings.ToUpper(prefix) + "_" + defaultEnvNames[field]
}

// Env reads environment variables. Path is the variable name; without any
// keys the four default names under Prefix are read.
type Env struct {
	Prefix string `mapstructure:"prefix" default:"RTDB"`

	KeyEntry `mapstructure:",squash"`
	Keys     []KeyEntry `mapstructure:"keys"`
}

func (e *Env) Name() string {
	return TypeEnv
}

func (e *Env) entries() []KeyEntry {
	entries := keyEntries(e.KeyEntry, e.Keys)
	if len(entries) > 0 {
		return entries
	}
	for _, f := range credentials.Fields() {
		entries = append(entries, KeyEntry{Path: DefaultEnvName(e.Prefix, f), Target: string(f)})
	}
	return entries
}

func (e *Env) Fetch(_ context.Context) (Values, error) {
	defaults.SetDefaults(e)

	v := viper.New()
	values := make(Values)
	for _, p := range e.entries() {
		name := strings.ToUpper(p.Path)
		if err := v.BindEnv(name, name); err != nil {
			return nil, err
		}
		if err := assign(values, p, v.GetString(name)); err != nil {
			return nil, err
		}
	}
	return values, nil
}
