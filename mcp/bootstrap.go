package mcp

import (
	"context"
	"fmt"

	"github.com/renderhub/render-mcp/mcp/config"
	"github.com/renderhub/render-mcp/renderapi"
)

// init is the main bootstrap routine invoked by New once all options have
// been applied. It orchestrates the individual preparation steps so that the
// logic stays easy to read and to maintain.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.initClient()

	if err := s.buildTools(); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}
	return nil
}

// initDefaults applies fall-back values for optional dependencies that were
// not supplied through options.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	s.config.Init()
}

// initClient assembles the upstream client from configuration.
func (s *Service) initClient() {
	upstream := &s.config.Upstream
	s.client = renderapi.NewClient(renderapi.ClientOptions{
		BaseURL:    upstream.URL,
		Timeout:    upstream.Timeout(),
		Retries:    upstream.Retries,
		RetryDelay: upstream.RetryDelay(),
		AutoMap:    upstream.AutoMapEnabled(),
		HTTPClient: s.httpClient,
	}, s.logger)
}
