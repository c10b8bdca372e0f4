// Package shared holds the configuration plumbing common to every command
// that reads credentials.
package shared

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isometry/rtdb-credentials/pkg/commands/flags"
	"github.com/isometry/rtdb-credentials/pkg/config"
	"github.com/isometry/rtdb-credentials/pkg/credctx"
	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

// LoadConfig reads the configuration selected by the config-path,
// config-name and variant flags.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := credctx.Viper(cmd.Context())

	variant, err := flags.Variant(v)
	if err != nil {
		return nil, err
	}

	paths, name := flags.ConfigPaths(v)
	conf, err := config.Load(cmd.Context(), v, paths, name, variant)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return conf, nil
}

// LoadCredentials loads the configuration and resolves it to a validated
// snapshot.
func LoadCredentials(cmd *cobra.Command) (*config.Config, *credentials.CredentialSet, error) {
	conf, err := LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	creds, err := conf.Resolve(cmd.Context())
	if err != nil {
		return conf, nil, err
	}

	return conf, creds, nil
}

// WithCredentials loads the snapshot, hands it to fn and scrubs the private
// key once fn returns.
func WithCredentials(cmd *cobra.Command, fn func(*credentials.CredentialSet) error) error {
	_, creds, err := LoadCredentials(cmd)
	if err != nil {
		return err
	}
	defer creds.Scrub()

	return fn(creds)
}

// WriteFile writes data to path with perm, refusing to replace an existing
// file unless force is set.
func WriteFile(path string, data []byte, perm os.FileMode, force bool) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flag |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}
