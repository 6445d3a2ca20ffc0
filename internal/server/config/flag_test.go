package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_OverridesAndDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("flags override", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", ":7070", "-s", "flag-secret", "-t", "60"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
		assert.Equal(t, "flag-secret", cfg.SecretKey)
		assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
	})

	t.Run("no flags keeps defaults", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	})
}
