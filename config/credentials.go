package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrCredentialMissing = errors.New("credential missing")

// Credentials are the four values a Reddit script app needs for the password grant.
type Credentials struct {
	ClientID  string `json:"client_id"`
	SecretKey string `json:"secret_key"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// Validate reports every empty field at once.
func (c Credentials) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client id")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrCredentialMissing, strings.Join(missing, ", "))
	}
	return nil
}

// EnvCredentials serves credentials parsed from REDDIT_* variables.
type EnvCredentials struct {
	Reddit RedditConfig
}

func (e EnvCredentials) Credentials(_ context.Context) (Credentials, error) {
	creds := Credentials{
		ClientID:  strings.TrimSpace(e.Reddit.ClientID),
		SecretKey: strings.TrimSpace(e.Reddit.SecretKey),
		Username:  strings.TrimSpace(e.Reddit.Username),
		Password:  e.Reddit.Password,
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}
