package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderhub/render-mcp/mcp/config"
)

const testKey = "rk_test_0123456789"

// fakeUpstream implements the handful of endpoints the tools exercise.
type fakeUpstream struct {
	authFailures  bool
	requestCount  int32
	generateCount int32
	lastGenerate  map[string]any
	lastStudio    map[string]any
}

func (f *fakeUpstream) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.requestCount, 1)
		if f.authFailures {
			http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/templates":
			_, _ = w.Write([]byte(`{"templates":[{"id":"website-screenshot","description":"capture a web page"}]}`))
		case "/v1/studio/templates":
			_, _ = w.Write([]byte(`{"templates":[{"id":42,"name":"Product Card"}]}`))
		case "/v1/studio/template/modifications":
			_, _ = w.Write([]byte(`{"modifications":[{"key":"productImage","description":"product photo"},{"key":"headline","description":"title text"}]}`))
		case "/v1/templates/modifications":
			_, _ = w.Write([]byte(`{"modifications":[{"key":"websiteUrl","description":"page to capture"}]}`))
		case "/v1/generate/images":
			atomic.AddInt32(&f.generateCount, 1)
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &f.lastGenerate)
			_, _ = w.Write([]byte(`{"success":true,"url":"https://cdn.example.com/shot.png","task_id":"task-9","status":"done"}`))
		case "/v1/studio/render":
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &f.lastStudio)
			_, _ = w.Write([]byte(`{"success":true,"url":"https://cdn.example.com/card.png","status":"done"}`))
		case "/v1/render/status":
			_, _ = w.Write([]byte(`{"task_id":"task-9","status":"done","url":"https://cdn.example.com/shot.png"}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestService(t *testing.T, upstream *fakeUpstream) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(upstream.handler())
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Upstream.URL = server.URL
	cfg.Upstream.APIKey = testKey
	cfg.Upstream.TimeoutMs = 2000
	cfg.Upstream.Retries = 3
	cfg.Upstream.RetryDelayMs = 1

	svc, err := New(context.Background(), WithConfig(cfg))
	require.NoError(t, err)
	return svc, server
}

func TestServiceRegistersAllTools(t *testing.T) {
	svc, _ := newTestService(t, &fakeUpstream{})

	expected := []string{
		"check_render_status",
		"fetch_api_docs",
		"generate_image",
		"generate_library_image",
		"generate_studio_image",
		"list_modifications",
		"list_studio_templates",
		"list_templates",
	}
	assert.EqualValues(t, expected, svc.ToolNames())

	// every tool resolves through the protocol representation as well
	tools := svc.Tools()
	assert.EqualValues(t, len(expected), len(tools))
	for _, tool := range tools {
		description, schema, ok := svc.ToolMetadata(tool.Metadata.Name)
		assert.True(t, ok, tool.Metadata.Name)
		assert.NotEmpty(t, description)
		assert.NotNil(t, schema)
	}
}

func TestToolPatternSelection(t *testing.T) {
	server := httptest.NewServer((&fakeUpstream{}).handler())
	defer server.Close()

	cfg := &config.Config{Tools: []string{"list"}}
	cfg.Upstream.URL = server.URL
	cfg.Upstream.APIKey = testKey

	svc, err := New(context.Background(), WithConfig(cfg))
	require.NoError(t, err)
	assert.EqualValues(t, []string{"list_modifications", "list_studio_templates", "list_templates"}, svc.ToolNames())
}

func TestGenerateImageLibraryEndToEnd(t *testing.T) {
	upstream := &fakeUpstream{}
	svc, _ := newTestService(t, upstream)

	out, err := svc.ExecuteTool(context.Background(), "generate_image", map[string]interface{}{
		"templateId":    "website-screenshot",
		"modifications": map[string]interface{}{"websiteUrl": "https://example.com"},
		"responseType":  "url",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "https://cdn.example.com/shot.png")
	assert.Contains(t, out, "task-9")

	// the library endpoint received the snake_case payload
	assert.EqualValues(t, "website-screenshot", upstream.lastGenerate["template_id"])
	mods, _ := upstream.lastGenerate["modifications"].(map[string]any)
	assert.EqualValues(t, "https://example.com", mods["websiteUrl"])
}

func TestGenerateStudioImageAutoMapsFields(t *testing.T) {
	upstream := &fakeUpstream{}
	svc, _ := newTestService(t, upstream)

	out, err := svc.ExecuteTool(context.Background(), "generate_studio_image", map[string]interface{}{
		"templateId":    "product card",
		"modifications": map[string]interface{}{"img": "https://x.com/a.jpg", "headline": "Sale"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "https://cdn.example.com/card.png")

	// name resolved to the numeric id, url re-keyed onto the image field
	assert.EqualValues(t, "42", upstream.lastStudio["templateId"])
	mods, _ := upstream.lastStudio["modifications"].(map[string]any)
	assert.EqualValues(t, "https://x.com/a.jpg", mods["productImage"])
	assert.EqualValues(t, "Sale", mods["headline"])
	assert.NotContains(t, mods, "img")
}

func TestGenerateImageInvalidKeySingleAttempt(t *testing.T) {
	upstream := &fakeUpstream{authFailures: true}
	svc, _ := newTestService(t, upstream)

	_, err := svc.ExecuteTool(context.Background(), "generate_image", map[string]interface{}{
		"templateId": "website-screenshot",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Check your API key")
	// 401 is non-retryable: one attempt per listing despite retries=3, and
	// the generation endpoint is never reached
	assert.EqualValues(t, 2, atomic.LoadInt32(&upstream.requestCount))
	assert.EqualValues(t, 0, atomic.LoadInt32(&upstream.generateCount))
}

func TestGenerateImageRejectsBadTemplateID(t *testing.T) {
	upstream := &fakeUpstream{}
	svc, _ := newTestService(t, upstream)

	_, err := svc.ExecuteTool(context.Background(), "generate_image", map[string]interface{}{
		"templateId": "bad id with spaces",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid input")
	// nothing reached the generation endpoint
	assert.EqualValues(t, 0, atomic.LoadInt32(&upstream.generateCount))
}

func TestGenerateImageUnknownTemplate(t *testing.T) {
	upstream := &fakeUpstream{}
	svc, _ := newTestService(t, upstream)

	_, err := svc.ExecuteTool(context.Background(), "generate_image", map[string]interface{}{
		"templateId": "no-such-template",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTemplatesTool(t *testing.T) {
	svc, _ := newTestService(t, &fakeUpstream{})

	out, err := svc.ExecuteTool(context.Background(), "list_templates", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "website-screenshot")
	assert.Contains(t, out, "capture a web page")
}

func TestListModificationsStudioTool(t *testing.T) {
	svc, _ := newTestService(t, &fakeUpstream{})

	out, err := svc.ExecuteTool(context.Background(), "list_modifications", map[string]interface{}{
		"templateId": "42",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "productImage")
	assert.Contains(t, out, "product photo")
}

func TestCheckRenderStatusTool(t *testing.T) {
	svc, _ := newTestService(t, &fakeUpstream{})

	out, err := svc.ExecuteTool(context.Background(), "check_render_status", map[string]interface{}{
		"taskId": "task-9",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "task-9")
	assert.Contains(t, out, "done")
}

func TestFetchAPIDocsTool(t *testing.T) {
	svc, _ := newTestService(t, &fakeUpstream{})

	out, err := svc.ExecuteTool(context.Background(), "fetch_api_docs", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "/v1/generate/images")
	assert.Contains(t, out, "Authorization: Bearer")
}

func TestExecuteToolUnknownName(t *testing.T) {
	svc, _ := newTestService(t, &fakeUpstream{})

	_, err := svc.ExecuteTool(context.Background(), "no_such_tool", nil)
	assert.Error(t, err)
}
