package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Init()

	assert.EqualValues(t, "https://api.renderhub.io", cfg.Upstream.URL)
	assert.EqualValues(t, 30000, cfg.Upstream.TimeoutMs)
	assert.EqualValues(t, 3, cfg.Upstream.Retries)
	assert.EqualValues(t, 1000, cfg.Upstream.RetryDelayMs)
	assert.EqualValues(t, 100, cfg.Upstream.MaxTemplateIDLength)
	assert.EqualValues(t, 256, cfg.Upstream.MaxAPIKeyLength)
	assert.True(t, cfg.Upstream.AutoMapEnabled())
	assert.EqualValues(t, []string{"*"}, cfg.Tools)
	require.NoError(t, cfg.Validate())
}

func TestConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("RENDER_API_KEY", "env_key_0123456789")
	t.Setenv("RENDER_API_URL", "https://staging.renderhub.io")

	cfg := &Config{Upstream: Upstream{APIKey: "file_key_0123456789", URL: "https://file.renderhub.io"}}
	cfg.Init()

	assert.EqualValues(t, "env_key_0123456789", cfg.Upstream.APIKey)
	assert.EqualValues(t, "https://staging.renderhub.io", cfg.Upstream.URL)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		invalid bool
	}{
		{name: "defaults pass", mutate: func(c *Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.Upstream.URL = "not-a-url" }, invalid: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Upstream.TimeoutMs = -1 }, invalid: true},
		{name: "negative retries", mutate: func(c *Config) { c.Upstream.Retries = -2 }, invalid: true},
		{name: "negative delay", mutate: func(c *Config) { c.Upstream.RetryDelayMs = -5 }, invalid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Init()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.invalid {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	location := filepath.Join(t.TempDir(), "config.yaml")
	payload := `
upstream:
  url: https://api.renderhub.io
  timeoutMs: 5000
  retries: 2
  autoMap: false
tools:
  - generate
`
	require.NoError(t, os.WriteFile(location, []byte(payload), 0o644))

	cfg, err := Load(context.Background(), location)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, cfg.Upstream.TimeoutMs)
	assert.EqualValues(t, 2, cfg.Upstream.Retries)
	assert.False(t, cfg.Upstream.AutoMapEnabled())
	assert.EqualValues(t, []string{"generate"}, cfg.Tools)
	// defaults still applied for unset values
	assert.EqualValues(t, 1000, cfg.Upstream.RetryDelayMs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
