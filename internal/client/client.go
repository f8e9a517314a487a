// Package client is the HTTP gateway to the customer API. Each operation
// issues exactly one request and returns either the decoded payload or a
// classified error: transport failures wrap ErrConnectivity, server-reported
// failures are *models.AppError values carrying the server's code and message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// ErrConnectivity is wrapped by every error where no response reached the caller
var ErrConnectivity = errors.New("no response received from server")

// Config holds gateway configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// Client is the customer API gateway
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	headers    map[string]string
	logger     *slog.Logger
}

// New creates a new API gateway
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		headers:    headers,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// do executes one request and returns the raw body of a response whose
// envelope (if any) reports success
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrConnectivity, err)
	}

	if err := classify(resp, data); err != nil {
		c.logger.Debug("api returned error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return data, nil
}

// classify turns an error envelope or an error status into an AppError.
// Any non-SUCCESS code fails the call even on a 2xx status.
func classify(resp *http.Response, data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env models.Envelope
		if err := json.Unmarshal(trimmed, &env); err == nil {
			if err := env.Err(); err != nil {
				return err
			}
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		text := http.StatusText(resp.StatusCode)
		if text == "" {
			text = "API request failed"
		}
		return models.NewAppError(models.CodeInternalServerError, text)
	}
	return nil
}

func decode[T any](data []byte) (*T, error) {
	var out T
	if len(bytes.TrimSpace(data)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

func pageQuery(req models.PageRequest) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(req.Page))
	q.Set("size", fmt.Sprint(req.Size))
	if req.SortBy != "" {
		q.Set("sortBy", string(req.SortBy))
	}
	if req.SortDir != "" {
		q.Set("sortDir", string(req.SortDir))
	}
	return q
}
