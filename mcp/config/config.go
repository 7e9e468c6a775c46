package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	mcp "github.com/viant/mcp"
)

const (
	defaultBaseURL          = "https://api.renderhub.io"
	defaultTimeoutMs        = 30000
	defaultRetries          = 3
	defaultRetryDelayMs     = 1000
	defaultMaxTemplateIDLen = 100
	defaultMaxAPIKeyLen     = 256
	defaultHealthAddr       = ":8089"
)

// Upstream configures the render API client.
type Upstream struct {
	URL                 string `yaml:"url,omitempty" json:"url,omitempty"`
	APIKey              string `yaml:"apiKey,omitempty" json:"apiKey,omitempty"`
	TimeoutMs           int    `yaml:"timeoutMs,omitempty" json:"timeoutMs,omitempty"`
	Retries             int    `yaml:"retries,omitempty" json:"retries,omitempty"`
	RetryDelayMs        int    `yaml:"retryDelayMs,omitempty" json:"retryDelayMs,omitempty"`
	MaxTemplateIDLength int    `yaml:"maxTemplateIdLength,omitempty" json:"maxTemplateIdLength,omitempty"`
	MaxAPIKeyLength     int    `yaml:"maxApiKeyLength,omitempty" json:"maxApiKeyLength,omitempty"`
	AutoMap             *bool  `yaml:"autoMap,omitempty" json:"autoMap,omitempty"`
}

// Timeout returns the per-attempt request budget.
func (u *Upstream) Timeout() time.Duration { return time.Duration(u.TimeoutMs) * time.Millisecond }

// RetryDelay returns the backoff base delay.
func (u *Upstream) RetryDelay() time.Duration {
	return time.Duration(u.RetryDelayMs) * time.Millisecond
}

// AutoMapEnabled resolves the tri-state flag, defaulting to on.
func (u *Upstream) AutoMapEnabled() bool { return u.AutoMap == nil || *u.AutoMap }

// Health configures the liveness side listener. An empty Addr disables it.
type Health struct {
	Addr string `yaml:"addr,omitempty" json:"addr,omitempty"`
}

// Config is the root configuration model loaded at startup and injected into
// every component. There is no process-wide singleton, serve builds one
// instance and passes it down.
type Config struct {
	Server   *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`
	Upstream Upstream           `yaml:"upstream,omitempty" json:"upstream,omitempty"`
	Health   Health             `yaml:"health,omitempty" json:"health,omitempty"`
	// Tools filters the exposed tool set, "*" or name prefixes.
	Tools []string `yaml:"tools,omitempty" json:"tools,omitempty"`
}

// Load reads the configuration from a local path or URL, applies environment
// overrides and defaults.
func Load(ctx context.Context, location string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", location, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", location, err)
	}
	cfg.Init()
	return &cfg, nil
}

// Init applies environment overrides and defaults for unset options. The
// environment wins over the file so that deployments can keep secrets out of
// config files.
func (c *Config) Init() {
	if key := os.Getenv("RENDER_API_KEY"); key != "" {
		c.Upstream.APIKey = key
	}
	if baseURL := os.Getenv("RENDER_API_URL"); baseURL != "" {
		c.Upstream.URL = baseURL
	}
	if c.Upstream.URL == "" {
		c.Upstream.URL = defaultBaseURL
	}
	if c.Upstream.TimeoutMs == 0 {
		c.Upstream.TimeoutMs = defaultTimeoutMs
	}
	if c.Upstream.Retries == 0 {
		c.Upstream.Retries = defaultRetries
	}
	if c.Upstream.RetryDelayMs == 0 {
		c.Upstream.RetryDelayMs = defaultRetryDelayMs
	}
	if c.Upstream.MaxTemplateIDLength == 0 {
		c.Upstream.MaxTemplateIDLength = defaultMaxTemplateIDLen
	}
	if c.Upstream.MaxAPIKeyLength == 0 {
		c.Upstream.MaxAPIKeyLength = defaultMaxAPIKeyLen
	}
	if c.Health.Addr == "" {
		c.Health.Addr = defaultHealthAddr
	}
	if len(c.Tools) == 0 {
		c.Tools = []string{"*"}
	}
}

// Validate rejects configurations the service cannot run with. Invalid
// values fail process startup rather than being silently corrected.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Upstream.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("upstream.url %q is not an absolute URL", c.Upstream.URL)
	}
	if c.Upstream.TimeoutMs < 0 {
		return fmt.Errorf("upstream.timeoutMs must not be negative, got %d", c.Upstream.TimeoutMs)
	}
	if c.Upstream.Retries < 0 {
		return fmt.Errorf("upstream.retries must not be negative, got %d", c.Upstream.Retries)
	}
	if c.Upstream.RetryDelayMs < 0 {
		return fmt.Errorf("upstream.retryDelayMs must not be negative, got %d", c.Upstream.RetryDelayMs)
	}
	if c.Upstream.MaxTemplateIDLength < 0 {
		return fmt.Errorf("upstream.maxTemplateIdLength must not be negative, got %d", c.Upstream.MaxTemplateIDLength)
	}
	if c.Upstream.MaxAPIKeyLength < 0 {
		return fmt.Errorf("upstream.maxApiKeyLength must not be negative, got %d", c.Upstream.MaxAPIKeyLength)
	}
	return nil
}
