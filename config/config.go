package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const (
	CredentialSourceEnv            = "env"
	CredentialSourceSecretsManager = "secretsmanager"
)

// Config is the process configuration, read from the environment after LoadEnv.
type Config struct {
	Env              string `envconfig:"APP_ENV" default:"dev"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	OutputDir        string `envconfig:"OUTPUT_DIR" default:"."`
	ReportFile       string `envconfig:"REPORT_FILE" default:"reddit-project-output.xlsx"`
	ParallelAnalysis bool   `envconfig:"PARALLEL_ANALYSIS" default:"false"`
	CredentialSource string `envconfig:"CREDENTIAL_SOURCE" default:"env"`

	Reddit RedditConfig `envconfig:"REDDIT"`
	AWS    AWSConfig    `envconfig:"AWS"`
}

// RedditConfig holds the script-app credentials and request identity.
type RedditConfig struct {
	ClientID  string `envconfig:"REDDIT_CLIENT_ID"`
	SecretKey string `envconfig:"REDDIT_SECRET_KEY"`
	Username  string `envconfig:"REDDIT_USERNAME"`
	Password  string `envconfig:"REDDIT_PASSWORD"`
	UserAgent string `envconfig:"REDDIT_USER_AGENT" default:"myAPI/0.1"`
	SecretID  string `envconfig:"REDDIT_SECRET_ID"`
}

type AWSConfig struct {
	Region   string `envconfig:"AWS_REGION" default:"us-west-2"`
	Endpoint string `envconfig:"AWS_ENDPOINT"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.CredentialSource {
	case CredentialSourceEnv:
	case CredentialSourceSecretsManager:
		if cfg.Reddit.SecretID == "" {
			return nil, fmt.Errorf("REDDIT_SECRET_ID is required when CREDENTIAL_SOURCE=%s", CredentialSourceSecretsManager)
		}
	default:
		return nil, fmt.Errorf("unknown CREDENTIAL_SOURCE %q", cfg.CredentialSource)
	}

	return &cfg, nil
}
