// Package health exposes a small liveness listener next to the MCP server
// so that orchestrators can probe the process without speaking MCP.
package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
)

// Status is the payload returned by the liveness endpoints.
type Status struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// NewServer builds an HTTP server answering liveness probes on addr. The
// payload is static apart from the uptime, there is nothing to degrade.
func NewServer(addr, name, version string, logger zerolog.Logger) *http.Server {
	started := time.Now()
	r := chi.NewRouter()

	serve := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		payload := Status{
			Status:  "ok",
			Name:    name,
			Version: version,
			Uptime:  time.Since(started).Round(time.Second).String(),
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Warn().Err(err).Msg("failed to write health payload")
		}
	}
	r.Get("/v1/health", serve)
	r.Get("/v1/ready", serve)

	return &http.Server{Addr: addr, Handler: r}
}
