package cmd

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/renderhub/render-mcp/mcp"
	mcpconfig "github.com/renderhub/render-mcp/mcp/config"
)

var (
	cfgPath string

	svcOnce sync.Once
	svcInst *mcp.Service
	svcErr  error
)

// setConfigPath remembers the CLI-level -f/--config parameter so that the
// service singleton can be created lazily by whichever sub-command is
// executed first.
func setConfigPath(p string) { cfgPath = p }

// newLogger builds the process logger writing human-readable lines to
// stderr, keeping stdout free for command output and MCP framing.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// serviceSingleton initialises an mcp.Service only once and reuses the
// instance across sub-commands within the same CLI invocation.
func serviceSingleton() (*mcp.Service, error) {
	svcOnce.Do(func() {
		ctx := context.Background()
		var cfg *mcpconfig.Config
		if cfgPath != "" {
			cfg, svcErr = mcpconfig.Load(ctx, cfgPath)
			if svcErr != nil {
				return
			}
		}
		svcInst, svcErr = mcp.New(ctx, mcp.WithConfig(cfg), mcp.WithLogger(newLogger()))
	})
	return svcInst, svcErr
}
