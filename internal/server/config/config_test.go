package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, ":50051", c.HealthAddr)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.Empty(t, c.AllowedEmails)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.MintEmail)
}

func TestLoadConfig_DefaultsWithoutArgs(t *testing.T) {
	withArgs(t)

	c := LoadConfig()
	require.NotNil(t, c)
	assert.Equal(t, defaults(), c)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr":      ":9000",
		"secret_key":     "from-json",
		"allowed_emails": []string{"a@example.com"},
	})
	withArgs(t, "-c", path, "-s", "from-flag", "-t", "5")

	c := LoadConfig()
	assert.Equal(t, ":9000", c.HTTPAddr)
	assert.Equal(t, "from-flag", c.SecretKey)
	assert.Equal(t, 5*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, []string{"a@example.com"}, c.AllowedEmails)
}
