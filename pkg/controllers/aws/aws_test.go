package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	values  map[string]string
	decrypt bool
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.decrypt = aws.ToBool(in.WithDecryption)
	v, ok := f.values[aws.ToString(in.Name)]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(v)}}, nil
}

type fakeSM struct {
	values map[string]string
}

func (f *fakeSM) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	v, ok := f.values[aws.ToString(in.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func newTestController(t *testing.T, ssmValues, smValues map[string]string) (*Controller, *fakeSSM) {
	t.Helper()
	ssmClient := &fakeSSM{values: ssmValues}
	ctl, err := NewController(context.Background(), WithClients(ssmClient, &fakeSM{values: smValues}))
	require.NoError(t, err)
	return ctl, ssmClient
}

func TestSecretsManager(t *testing.T) {
	ctl, _ := newTestController(t, nil, map[string]string{
		"plain": "https://tomitech-id-default-rtdb.firebaseio.com/",
		"doc":   `{"project_id":"tomitech-id","client_email":"a@tomitech-id.iam.gserviceaccount.com"}`,
		"empty": `{}`,
	})
	ctx := context.Background()

	plain, err := ctl.GetSecretManagerSecret(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "https://tomitech-id-default-rtdb.firebaseio.com/", *plain)

	project, err := ctl.GetSecretManagerSecretKey(ctx, "doc", "project_id")
	require.NoError(t, err)
	assert.Equal(t, "tomitech-id", project)

	_, err = ctl.GetSecretManagerSecretKey(ctx, "doc", "private_key")
	assert.ErrorContains(t, err, `key "private_key" not found`)

	_, err = ctl.GetSecretManagerSecretKey(ctx, "empty", "project_id")
	assert.ErrorContains(t, err, "empty secret")

	_, err = ctl.GetSecretManagerSecretKey(ctx, "plain", "project_id")
	assert.ErrorContains(t, err, "failed to unmarshal")

	_, err = ctl.GetSecretManagerSecret(ctx, "missing")
	assert.ErrorContains(t, err, "failed to load Secrets Manager secret")
}

func TestSystemsManager(t *testing.T) {
	ctl, fake := newTestController(t, map[string]string{
		"/rtdb/project": "tomitech-id",
		"/rtdb/doc":     `{"client_email":"a@tomitech-id.iam.gserviceaccount.com"}`,
	}, nil)
	ctx := context.Background()

	project, err := ctl.GetSystemsManagerSecret(ctx, "/rtdb/project", true)
	require.NoError(t, err)
	assert.Equal(t, "tomitech-id", *project)
	assert.True(t, fake.decrypt)

	email, err := ctl.GetSystemsManagerSecretKey(ctx, "/rtdb/doc", "client_email", false)
	require.NoError(t, err)
	assert.Equal(t, "a@tomitech-id.iam.gserviceaccount.com", email)
	assert.False(t, fake.decrypt)

	_, err = ctl.GetSystemsManagerSecret(ctx, "/rtdb/missing", false)
	assert.ErrorContains(t, err, "failed to load SSM parameter")
}
