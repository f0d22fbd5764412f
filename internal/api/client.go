package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

var errMissingBaseURL = errors.New("api: base url is required")

// HTTPError reports a non-2xx response from the backend. Callers surface it
// inline near the triggering view; nothing in this client retries.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api: request failed (%d): %s", e.Status, e.Message)
}

// TokenSource supplies the bearer token for outbound requests. An empty
// token sends the request unauthenticated; the backend rejects it.
type TokenSource interface {
	Token() string
}

// ClientConfig describes the dependencies of the gateway client.
type ClientConfig struct {
	BaseURL    string
	Tokens     TokenSource
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is the single outbound HTTP gateway. Every data-fetching operation
// in the system goes through it.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  *zap.Logger
}

// NewClient constructs the gateway client.
func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errMissingBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: baseURL,
		tokens:  cfg.Tokens,
		http:    httpClient,
		logger:  logger,
	}, nil
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one JSON request. The context is the cancellation token: a
// request canceled by its view returns before any result reaches a store.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		recordRequest(operation, method, "error")
		return fmt.Errorf("api: %s: %w", operation, err)
	}
	defer resp.Body.Close()

	recordRequest(operation, method, strconv.Itoa(resp.StatusCode))
	observeDuration(operation, method, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			if payload.Message != "" {
				httpErr.Message = payload.Message
			} else if payload.Error != "" {
				httpErr.Message = payload.Error
			}
		}
		c.logger.Debug("request rejected",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", httpErr.Message))
		return httpErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", operation, err)
	}
	return nil
}
