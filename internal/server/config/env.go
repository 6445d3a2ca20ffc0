package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config fields from environment variables using the
// struct's env tags. Unset variables leave the current values untouched.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
