package mcp

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/renderhub/render-mcp/internal/syncmap"
	"github.com/renderhub/render-mcp/mcp/config"
	"github.com/renderhub/render-mcp/renderapi"
)

// Service bundles configuration, the render API client and the tool
// registry consumed by the Server adapter. All heavy lifting during
// instantiation lives in bootstrap.go to keep this file focused on the
// public surface.
type Service struct {
	config     *config.Config
	client     *renderapi.Client
	logger     zerolog.Logger
	httpClient *http.Client

	// Shared registry built once during bootstrap and reused by every
	// incoming connection.
	registry *syncmap.Map[*toolEntry]
}

// Config returns the effective configuration instance passed to the service
// at construction time. Callers must treat the returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// Client returns the upstream render API client.
func (s *Service) Client() *renderapi.Client { return s.client }

// ToolNames returns all registered MCP tool names in sorted order.
func (s *Service) ToolNames() []string {
	return s.registry.Keys()
}

// ToolMetadata returns description and input schema for a named tool when
// present. The last return value is false when the tool does not exist.
func (s *Service) ToolMetadata(name string) (string, interface{}, bool) {
	entry := s.registry.Get(name)
	if entry == nil {
		return "", nil, false
	}
	return entry.description, entry.inputSchema, true
}

// Option modifies a service instance before it is initialised. Users can
// pass an arbitrary number of options to New.
type Option func(*Service)

// WithConfig sets a custom configuration instance. When omitted a default
// configuration is assumed.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithLogger sets the logger shared by the service and the upstream client.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHTTPClient overrides the outbound HTTP client, used by tests to point
// the service at a fake upstream.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// New constructs a new service instance. The actual bootstrap is handled by
// init() in bootstrap.go so that callers do not need to care about the
// internal initialisation sequence.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{
		logger:   zerolog.Nop(),
		registry: syncmap.NewRegistry[*toolEntry](),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// NewWithConfig is a convenience constructor mirroring New with an explicit
// configuration instance.
func NewWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	return New(ctx, append([]Option{WithConfig(cfg)}, opts...)...)
}
