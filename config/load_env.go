package config

import (
	"log/slog"
	"path/filepath"

	"github.com/subosito/gotenv"
)

const envDir = "config/envs"

// LoadEnv loads config/envs/.env.<env>, then a plain .env in the working directory.
// Variables already set in the process environment win over both files.
func LoadEnv(env string) {
	loadEnvFrom(".", env)
}

func loadEnvFrom(root, env string) []string {
	var loaded []string
	for _, file := range []string{
		filepath.Join(root, envDir, ".env."+env),
		filepath.Join(root, ".env"),
	} {
		if err := gotenv.Load(file); err != nil {
			slog.Debug("[Config] Skipping env file",
				slog.String("file", file),
				slog.String("error", err.Error()))
			continue
		}
		loaded = append(loaded, file)
	}

	if len(loaded) == 0 {
		slog.Warn("No .env file found, using OS environment",
			slog.String("env", env))
	}
	return loaded
}
