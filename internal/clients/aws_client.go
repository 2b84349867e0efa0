package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spacesedan/subreddit-insights/config"
)

func GetAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	slog.Info("[AWSClient] Initializing AWS Config...",
		slog.String("region", cfg.Region))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("[AWSClient] Failed to load AWS config: %w", err)
	}

	slog.Info("[AWSClient] AWS Config Initialized")
	return awsCfg, nil
}

func GetSecretsManagerClient(awsCfg aws.Config, endpoint string) *secretsmanager.Client {
	return secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// SecretGetter is the part of the Secrets Manager API the credential provider uses.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerCredentials reads the Reddit credentials from a JSON secret
// with client_id, secret_key, username and password keys.
type SecretsManagerCredentials struct {
	Client   SecretGetter
	SecretID string
}

func NewSecretsManagerCredentials(ctx context.Context, cfg config.AWSConfig, secretID string) (*SecretsManagerCredentials, error) {
	awsCfg, err := GetAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &SecretsManagerCredentials{
		Client:   GetSecretsManagerClient(awsCfg, cfg.Endpoint),
		SecretID: secretID,
	}, nil
}

func (s *SecretsManagerCredentials) Credentials(ctx context.Context) (config.Credentials, error) {
	out, err := s.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.SecretID),
	})
	if err != nil {
		return config.Credentials{}, fmt.Errorf("%w: failed to read secret %q: %v", config.ErrCredentialMissing, s.SecretID, err)
	}
	if out.SecretString == nil {
		return config.Credentials{}, fmt.Errorf("%w: secret %q has no string value", config.ErrCredentialMissing, s.SecretID)
	}

	var creds config.Credentials
	if err := json.Unmarshal([]byte(*out.SecretString), &creds); err != nil {
		return config.Credentials{}, fmt.Errorf("%w: secret %q is not valid JSON: %v", config.ErrCredentialMissing, s.SecretID, err)
	}
	if err := creds.Validate(); err != nil {
		return config.Credentials{}, err
	}

	slog.Info("[AWSClient] Loaded Reddit credentials from Secrets Manager",
		slog.String("secret_id", s.SecretID))
	return creds, nil
}

// NewCredentialProvider picks the provider named by CREDENTIAL_SOURCE.
func NewCredentialProvider(ctx context.Context, cfg *config.Config) (CredentialProvider, error) {
	if cfg.CredentialSource == config.CredentialSourceSecretsManager {
		return NewSecretsManagerCredentials(ctx, cfg.AWS, cfg.Reddit.SecretID)
	}
	return config.EnvCredentials{Reddit: cfg.Reddit}, nil
}
