package source

import (
	"context"

	"github.com/pkg/errors"

	"github.com/isometry/rtdb-credentials/pkg/utils"
)

var TypeSSM = "aws_ssm"

type SSMKeyEntry struct {
	KeyEntry   `mapstructure:",squash"`
	Decryption bool `mapstructure:"decryption"`
}

// SSM reads AWS Systems Manager parameters. A top-level decryption flag
// applies to every key; a key can also enable it on its own.
type SSM struct {
	ctl awsSecrets

	Region string `mapstructure:"region"`

	SSMKeyEntry `mapstructure:",squash"`
	Keys        []SSMKeyEntry `mapstructure:"keys"`
}

func (s *SSM) Name() string {
	return TypeSSM
}

func (s *SSM) entries() []SSMKeyEntry {
	all := make([]SSMKeyEntry, 0, len(s.Keys)+1)
	if s.Path != "" || s.Key != "" || s.Target != "" {
		all = append(all, s.SSMKeyEntry)
	}
	all = append(all, s.Keys...)
	for i := range all {
		all[i].SetDefaults()
	}
	return all
}

func (s *SSM) Fetch(ctx context.Context) (values Values, err error) {
	entries := s.entries()
	if len(entries) == 0 {
		return nil, errNoKeys
	}

	if s.ctl == nil {
		s.ctl, err = newAWSController(ctx, s.Region)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
	}

	values = make(Values)
	for _, p := range entries {
		keyCtx, cancel := p.context(ctx)
		decryption := s.SSMKeyEntry.Decryption || p.Decryption

		var secret any
		if p.Key == "" {
			secret, err = s.ctl.GetSystemsManagerSecret(keyCtx, p.Path, decryption)
		} else {
			secret, err = s.ctl.GetSystemsManagerSecretKey(keyCtx, p.Path, p.Key, decryption)
		}
		utils.CancelContext(cancel)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get AWS SSM parameter")
		}

		if err = assign(values, p.KeyEntry, secret); err != nil {
			return nil, err
		}
	}
	return values, nil
}
