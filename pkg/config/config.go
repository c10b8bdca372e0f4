// Package config reads the credential configuration file and environment
// into a credentials.Raw plus the list of sources layered over it.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/isometry/rtdb-credentials/pkg/credentials"
	"github.com/isometry/rtdb-credentials/pkg/credentials/source"
	"github.com/isometry/rtdb-credentials/pkg/utils"
)

const (
	// DefaultConfigName is the production file name, without extension.
	DefaultConfigName = "rtdb-credentials"
	templateSuffix    = ".template"

	CredentialsKey = "credentials"
	SourcesKey     = "sources"
)

// ErrTemplateHoldsSecrets is returned when the publishable template variant
// resolves to production credentials.
var ErrTemplateHoldsSecrets = errors.New("template configuration contains production credentials")

// ConfigName returns the file name for variant: the template lives next to
// the production file with a ".template" suffix.
func ConfigName(base string, variant credentials.Kind) string {
	if base == "" {
		base = DefaultConfigName
	}
	if variant == credentials.KindTemplate && !strings.HasSuffix(base, templateSuffix) {
		return base + templateSuffix
	}
	return base
}

type Config struct {
	Variant     credentials.Kind
	File        string
	Credentials credentials.Raw
	Sources     []source.Entry
}

func fieldKey(f credentials.Field) string {
	return CredentialsKey + "." + string(f)
}

// Load reads the named configuration file from the first matching path into
// v. A missing file is not an error; the environment and, for the template
// variant, the compiled-in template values still apply.
func Load(ctx context.Context, v *viper.Viper, paths []string, name string, variant credentials.Kind) (*Config, error) {
	log := utils.ContextLogger(ctx, slog.String("context", "config"), slog.String("variant", variant.String()))
	log.Debug("initializing config")

	if variant == credentials.KindTemplate {
		template := credentials.TemplateRaw()
		for _, f := range credentials.Fields() {
			v.SetDefault(fieldKey(f), template.Get(f))
		}
	}
	for _, f := range credentials.Fields() {
		if err := v.BindEnv(fieldKey(f), source.DefaultEnvName(source.DefaultEnvPrefix, f)); err != nil {
			return nil, err
		}
	}

	conf := &Config{Variant: variant}

	if name = ConfigName(name, variant); name != "" {
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		v.SetConfigName(name)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				log.Error("error reading config", "error", err)
				return nil, fmt.Errorf("reading config: %w", err)
			}
			log.Info("No configuration file found - using environment", slog.String("name", name))
		} else {
			conf.File = v.ConfigFileUsed()
			log = log.With(slog.String("configFile", conf.File))
		}
	}

	for _, f := range credentials.Fields() {
		if err := conf.Credentials.Set(f, v.GetString(fieldKey(f))); err != nil {
			return nil, err
		}
	}

	if err := v.UnmarshalKey(SourcesKey, &conf.Sources); err != nil {
		log.Error("error unmarshalling sources", "error", err)
		return nil, fmt.Errorf("decoding %s: %w", SourcesKey, err)
	}

	log.Info("config loaded", slog.Int("sources", len(conf.Sources)))
	return conf, nil
}

// Resolve applies the configured sources and validates the result.
func (c *Config) Resolve(ctx context.Context) (*credentials.CredentialSet, error) {
	log := utils.ContextLogger(ctx, slog.String("context", "config"))

	raw, err := source.Resolve(ctx, c.Credentials, c.Sources)
	if err != nil {
		return nil, fmt.Errorf("resolving sources: %w", err)
	}

	creds, err := credentials.Load(raw)
	if err != nil {
		log.Error("invalid credentials", "error", err)
		return nil, err
	}

	if c.Variant == credentials.KindTemplate && creds.Kind() == credentials.KindProduction {
		creds.Scrub()
		return nil, ErrTemplateHoldsSecrets
	}
	if c.Variant == credentials.KindProduction && creds.IsTemplate() {
		log.Warn("production configuration holds template credentials")
	}

	log.Info("credentials loaded", slog.Any("credentials", creds))
	return creds, nil
}
