package credctx

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
	slogctx "github.com/veqryn/slog-context"

	"github.com/isometry/rtdb-credentials/pkg/credentials/source"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = source.DefaultEnvPrefix

// Context key type - struct to avoid collisions with other packages
type contextKey struct{ name string }

var viperKey = contextKey{"viper"}

// Logger returns a logger from context with additional attributes
func Logger(ctx context.Context, args ...any) *slog.Logger {
	return slogctx.FromCtx(ctx).With(args...)
}

// NewViper creates an owned viper instance reading RTDB_-prefixed
// environment variables for bound flags.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ContextWithViper returns a context with viper instance stored
func ContextWithViper(ctx context.Context, v *viper.Viper) context.Context {
	return context.WithValue(ctx, viperKey, v)
}

// Viper returns the viper instance from context.
// Panics if viper was not set - this is a programming error.
func Viper(ctx context.Context) *viper.Viper {
	v, ok := ctx.Value(viperKey).(*viper.Viper)
	if !ok {
		panic("viper not found in context - must call ContextWithViper first")
	}
	return v
}
