package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/mcp"

	"github.com/renderhub/render-mcp/health"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// ServeCmd launches the MCP server that exposes the render tools plus the
// liveness side listener.  Server configuration (port, transport, auth) is
// taken from the same config file the service uses.
type ServeCmd struct{}

func (c *ServeCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	logger := newLogger()

	cfg := svc.Config()
	mcpServer, err := mcp.NewServer(svc.NewHandler, cfg.Server)
	if err != nil {
		return err
	}

	httpSrv := mcpServer.HTTP(context.Background(), "")
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("mcp http server failed")
		}
	}()
	logger.Info().Str("addr", httpSrv.Addr).Msg("mcp server listening")

	var healthSrv *http.Server
	if cfg.Health.Addr != "" {
		healthSrv = health.NewServer(cfg.Health.Addr, "render-mcp", version, logger)
		go func() {
			if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("health listener failed")
			}
		}()
		logger.Info().Str("addr", cfg.Health.Addr).Msg("health listener started")
	}

	// Wait for SIGINT/SIGTERM
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("shutting down")

	if healthSrv != nil {
		_ = healthSrv.Close()
	}
	return httpSrv.Close()
}
