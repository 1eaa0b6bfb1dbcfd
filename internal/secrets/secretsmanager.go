package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretsManagerAPI is the narrow slice of the AWS Secrets Manager client
// used by this package, declared as an interface so tests can inject a fake.
type SecretsManagerAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManager is a Provider backed by AWS Secrets Manager.
type SecretsManager struct {
	client SecretsManagerAPI
}

// NewSecretsManager creates a SecretsManager using the default AWS credential
// chain (the Lambda execution role in production).
func NewSecretsManager(ctx context.Context) (*SecretsManager, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SecretsManager{client: secretsmanager.NewFromConfig(cfg)}, nil
}

// NewSecretsManagerWithClient creates a SecretsManager around an existing
// client. Used by tests and by callers that manage their own AWS config.
func NewSecretsManagerWithClient(client SecretsManagerAPI) *SecretsManager {
	return &SecretsManager{client: client}
}

// GetSecret fetches a secret value by ARN or friendly name. String secrets
// are returned as their UTF-8 bytes, binary secrets as stored (the SDK has
// already reversed the service's base64 transport encoding).
func (s *SecretsManager) GetSecret(ctx context.Context, id string) ([]byte, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		var nf *types.ResourceNotFoundException
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, id)
		}
		return nil, fmt.Errorf("failed to get secret %s: %w", id, err)
	}

	if out.SecretString != nil {
		return []byte(*out.SecretString), nil
	}
	if len(out.SecretBinary) > 0 {
		return out.SecretBinary, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrEmptySecret, id)
}
