package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/config"
	"github.com/Amanjarngal/localfix-client/internal/observability"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

const userAgent = "localfix-client"

// TokenSource supplies the current bearer token, empty when logged out.
type TokenSource func() string

// Client issues HTTP+JSON calls against the external LocalFix API. All
// state it returns is a server-authoritative snapshot; it performs no
// local merging, caching or retrying.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	metrics    *observability.Metrics
	tokenFn    TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithMetrics attaches request/error counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for the configured API origin.
func NewClient(cfg config.APIConfig, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout()},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// SetTokenSource wires the session's token accessor into outgoing
// requests. Set once during startup, after the session is constructed.
func (c *Client) SetTokenSource(fn TokenSource) {
	c.tokenFn = fn
}

// envelope is the uniform response shape of the API:
// { success, data|cart, message?, token? }. A missing success flag is
// treated the same as an explicit failure.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
	Cart    json.RawMessage `json:"cart"`
}

func (c *Client) do(ctx context.Context, method, path string, contentType string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordError(path, method, "TRANSPORT_ERROR")
		c.logger.Warn("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, apperrors.NewTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.RecordRequest(path, method, resp.StatusCode, time.Since(start))

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && decodeErr != io.EOF {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, apperrors.NewInternalError(decodeErr)
		}
	}

	if err := classify(resp.StatusCode, &env); err != nil {
		de := apperrors.ToDomainError(err)
		c.metrics.RecordError(path, method, de.Code)
		c.logger.Debug("api request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", de.Code),
		)
		return nil, err
	}
	return &env, nil
}

// classify maps a response to the error taxonomy. Any non-2xx status or a
// missing/false success flag is uniformly a failure.
func classify(status int, env *envelope) error {
	message := env.Message
	if status >= 200 && status < 300 {
		if env.Success != nil && *env.Success {
			return nil
		}
		if message == "" {
			message = "request was not successful"
		}
		return apperrors.NewDomainError("REQUEST_FAILED", message, status, nil)
	}

	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusUnauthorized:
		return apperrors.NewUnauthorized(message)
	case http.StatusForbidden:
		return apperrors.NewForbidden(message)
	case http.StatusNotFound:
		return apperrors.NewDomainError("NOT_FOUND", message, status, nil)
	case http.StatusBadRequest:
		return apperrors.NewValidationError(message, nil)
	default:
		return apperrors.NewDomainError("REQUEST_FAILED", message, status, nil)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) (*envelope, error) {
	env, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := decodeData(env, out); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) (*envelope, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		body = bytes.NewReader(payload)
	}
	env, err := c.do(ctx, method, path, "application/json", body)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := decodeData(env, out); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
