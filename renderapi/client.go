package renderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ClientOptions carries the tunables of the upstream client. The zero value
// is not usable, call Init to apply defaults.
type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration // per-attempt budget
	Retries    int           // total attempts for retryable failures
	RetryDelay time.Duration // backoff base, doubled after every attempt
	AutoMap    bool
	HTTPClient *http.Client
}

// Init fills in defaults for unset options.
func (o *ClientOptions) Init() {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Retries <= 0 {
		o.Retries = 3
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = time.Second
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
}

// Client talks to the hosted render API. It is safe for concurrent use, all
// state is immutable after construction.
type Client struct {
	options ClientOptions
	logger  zerolog.Logger
}

// NewClient builds a Client from the supplied options.
func NewClient(options ClientOptions, logger zerolog.Logger) *Client {
	options.Init()
	return &Client{options: options, logger: logger}
}

// AutoMapEnabled reports whether the auto-mapping heuristic is switched on.
func (c *Client) AutoMapEnabled() bool { return c.options.AutoMap }

// upstreamError is the JSON error envelope the upstream returns on non-2xx.
type upstreamError struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// do performs one upstream call with a per-attempt timeout and exponential
// backoff between attempts. 401, 403 and 404 stop immediately since they
// indicate a caller error rather than a transient fault. On success the body
// is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, apiKey string, query url.Values, body, out any) error {
	endpoint := strings.TrimSuffix(c.options.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return &Error{Kind: KindTransport, Message: fmt.Sprintf("encode request body: %v", err), Err: err}
		}
	}

	var lastErr *Error
	for attempt := 1; attempt <= c.options.Retries; attempt++ {
		lastErr = c.attempt(ctx, method, endpoint, apiKey, payload, out)
		if lastErr == nil {
			c.logger.Debug().Str("method", method).Str("url", endpoint).Int("attempt", attempt).Msg("request succeeded")
			return nil
		}

		c.logger.Warn().Str("method", method).Str("url", endpoint).
			Int("attempt", attempt).Int("status", lastErr.StatusCode).
			Str("kind", string(lastErr.Kind)).Str("error", lastErr.Message).
			Msg("request attempt failed")

		if lastErr.Kind == KindUnauthorized || lastErr.Kind == KindNotFound {
			break
		}
		if attempt == c.options.Retries {
			break
		}

		delay := c.options.RetryDelay << (attempt - 1)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return &Error{Kind: KindTimeout, Message: "request cancelled while waiting to retry", Err: ctx.Err()}
		}
	}

	c.logger.Error().Str("method", method).Str("url", endpoint).
		Str("kind", string(lastErr.Kind)).Str("error", lastErr.Message).
		Msg("request failed")
	return lastErr
}

// attempt issues a single HTTP call bounded by the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, method, endpoint, apiKey string, payload []byte, out any) *Error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, endpoint, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() == context.DeadlineExceeded {
			return &Error{Kind: KindTimeout, Message: fmt.Sprintf("request timed out after %s", c.options.Timeout), Err: err}
		}
		return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, StatusCode: resp.StatusCode, Message: fmt.Sprintf("read response body: %v", err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Kind: kindForStatus(resp.StatusCode), StatusCode: resp.StatusCode, Message: errorMessage(resp, data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Kind: KindTransport, StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response body: %v", err), Err: err}
		}
	}
	return nil
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	}
	return KindTransport
}

// errorMessage extracts a human readable message from a non-2xx response,
// preferring the JSON error envelope over the raw body and the status line.
func errorMessage(resp *http.Response, data []byte) string {
	var envelope upstreamError
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return text
	}
	return resp.Status
}

// ListTemplates fetches the library template listing.
func (c *Client) ListTemplates(ctx context.Context, apiKey string) ([]Template, error) {
	var list templateList
	if err := c.do(ctx, http.MethodGet, "/v1/templates", apiKey, nil, nil, &list); err != nil {
		return nil, err
	}
	return list.Templates, nil
}

// ListStudioTemplates fetches the studio template listing.
func (c *Client) ListStudioTemplates(ctx context.Context, apiKey string) ([]Template, error) {
	var list templateList
	if err := c.do(ctx, http.MethodGet, "/v1/studio/templates", apiKey, nil, nil, &list); err != nil {
		return nil, err
	}
	return list.Templates, nil
}

// TemplateModifications fetches the declared modification fields of a
// library template.
func (c *Client) TemplateModifications(ctx context.Context, apiKey, templateID string) ([]ModificationField, error) {
	query := url.Values{"template_id": []string{templateID}}
	var list modificationList
	if err := c.do(ctx, http.MethodGet, "/v1/templates/modifications", apiKey, query, nil, &list); err != nil {
		return nil, err
	}
	return list.Modifications, nil
}

// StudioModifications fetches the declared modification fields of a studio
// template.
func (c *Client) StudioModifications(ctx context.Context, apiKey, templateID string) ([]ModificationField, error) {
	query := url.Values{"templateId": []string{templateID}}
	var list modificationList
	if err := c.do(ctx, http.MethodGet, "/v1/studio/template/modifications", apiKey, query, nil, &list); err != nil {
		return nil, err
	}
	return list.Modifications, nil
}

// GenerateImage renders a library template.
func (c *Client) GenerateImage(ctx context.Context, apiKey string, request *GenerateRequest) (*GenerateResponse, error) {
	var response GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/v1/generate/images", apiKey, nil, request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// RenderStudio renders a studio template.
func (c *Client) RenderStudio(ctx context.Context, apiKey string, request *StudioRenderRequest) (*GenerateResponse, error) {
	var response GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/v1/studio/render", apiKey, nil, request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// RenderTaskStatus checks the state of an asynchronous render task.
func (c *Client) RenderTaskStatus(ctx context.Context, apiKey, taskID string) (*RenderStatus, error) {
	query := url.Values{"task_id": []string{taskID}}
	var status RenderStatus
	if err := c.do(ctx, http.MethodGet, "/v1/render/status", apiKey, query, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
