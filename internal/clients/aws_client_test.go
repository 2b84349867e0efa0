package clients

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spacesedan/subreddit-insights/config"
)

type fakeSecrets struct {
	value *string
	err   error
	asked string
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.asked = aws.ToString(params.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestSecretsManagerCredentials(t *testing.T) {
	tests := []struct {
		name    string
		secret  *fakeSecrets
		wantErr bool
	}{
		{
			name:   "valid secret",
			secret: &fakeSecrets{value: aws.String(`{"client_id":"id","secret_key":"key","username":"u","password":"p"}`)},
		},
		{
			name:    "missing field",
			secret:  &fakeSecrets{value: aws.String(`{"client_id":"id","secret_key":"key","username":"u"}`)},
			wantErr: true,
		},
		{
			name:    "not json",
			secret:  &fakeSecrets{value: aws.String(`client_id=id`)},
			wantErr: true,
		},
		{
			name:    "binary secret",
			secret:  &fakeSecrets{},
			wantErr: true,
		},
		{
			name:    "api error",
			secret:  &fakeSecrets{err: errors.New("AccessDeniedException")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &SecretsManagerCredentials{Client: tt.secret, SecretID: "reddit/script-app"}

			creds, err := provider.Credentials(context.Background())
			if tt.secret.asked != "reddit/script-app" {
				t.Errorf("asked for secret %q", tt.secret.asked)
			}
			if tt.wantErr {
				if !errors.Is(err, config.ErrCredentialMissing) {
					t.Fatalf("expected ErrCredentialMissing, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := config.Credentials{ClientID: "id", SecretKey: "key", Username: "u", Password: "p"}
			if creds != want {
				t.Errorf("Credentials() = %+v, want %+v", creds, want)
			}
		})
	}
}

func TestNewCredentialProvider_Env(t *testing.T) {
	cfg := &config.Config{
		CredentialSource: config.CredentialSourceEnv,
		Reddit:           config.RedditConfig{ClientID: "id", SecretKey: "k", Username: "u", Password: "p"},
	}

	provider, err := NewCredentialProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := provider.(config.EnvCredentials); !ok {
		t.Fatalf("provider = %T, want config.EnvCredentials", provider)
	}
}
