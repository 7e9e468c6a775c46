package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(":0", "render-mcp", "0.1.0", zerolog.Nop())

	for _, path := range []string{"/v1/health", "/v1/ready"} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", path, nil)
		server.Handler.ServeHTTP(recorder, request)

		require.EqualValues(t, 200, recorder.Code, path)
		var status Status
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
		assert.EqualValues(t, "ok", status.Status)
		assert.EqualValues(t, "render-mcp", status.Name)
		assert.NotEmpty(t, status.Uptime)
	}
}
