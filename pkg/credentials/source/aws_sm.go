package source

import (
	"context"

	"github.com/pkg/errors"

	"github.com/isometry/rtdb-credentials/pkg/controllers/aws"
	"github.com/isometry/rtdb-credentials/pkg/utils"
)

var TypeSM = "aws_sm"

type awsSecrets interface {
	GetSecretManagerSecret(ctx context.Context, path string) (*string, error)
	GetSecretManagerSecretKey(ctx context.Context, path, key string) (any, error)
	GetSystemsManagerSecret(ctx context.Context, path string, decrypt bool) (*string, error)
	GetSystemsManagerSecretKey(ctx context.Context, path, key string, decrypt bool) (any, error)
}

var newAWSController = func(ctx context.Context, region string) (awsSecrets, error) {
	return aws.NewController(ctx, aws.WithRegion(region), aws.WithLogger(utils.ContextLogger(ctx)))
}

// SM reads AWS Secrets Manager secrets. With a Key, the secret string is
// treated as a JSON document and the named member is used.
type SM struct {
	ctl awsSecrets

	Region string `mapstructure:"region"`

	KeyEntry `mapstructure:",squash"`
	Keys     []KeyEntry `mapstructure:"keys"`
}

func (s *SM) Name() string {
	return TypeSM
}

func (s *SM) Fetch(ctx context.Context) (values Values, err error) {
	entries := keyEntries(s.KeyEntry, s.Keys)
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

		var secret any
		if p.Key == "" {
			secret, err = s.ctl.GetSecretManagerSecret(keyCtx, p.Path)
		} else {
			secret, err = s.ctl.GetSecretManagerSecretKey(keyCtx, p.Path, p.Key)
		}
		utils.CancelContext(cancel)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get AWS Secrets Manager secret")
		}

		if err = assign(values, p, secret); err != nil {
			return nil, err
		}
	}
	return values, nil
}
