// Package api wraps the backend HTTP surface. Every outbound request passes
// through the bearer-attach hook and every response through the global 401
// trap, so callers never manage credentials themselves.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/apperrors"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/logger"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/tokenstore"
)

const defaultRequestTimeout = 10 * time.Second

// Error is a remote business error: the backend responded with a non-2xx
// status and (usually) a message body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match 401 with errors.Is(err, apperrors.ErrUnauthorized)
func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return apperrors.ErrUnauthorized
	}
	return nil
}

type Config struct {
	// Backend base URL, e.g. https://bingmine-backend.onrender.com
	BaseURL string

	// HTTP client to use. Defaults to a plain http.Client
	HTTPClient *http.Client

	// Called after the 401 trap cleared the token store. The UI uses it to
	// force navigation to the login entry point
	OnUnauthorized func()

	Logger logger.Logger
}

type Client struct {
	baseURL string
	client  *http.Client
	store   tokenstore.Store
	logger  logger.Logger

	onUnauthorized func()
}

func NewClient(cfg Config, store tokenstore.Store) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url must not be empty")
	}
	if store == nil {
		return nil, fmt.Errorf("token store must not be nil")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		client:         httpClient,
		store:          store,
		logger:         log,
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

type RequestOption func(*http.Request)

// WithBearer sets the Authorization header explicitly, overriding the stored
// session token. Registration steps use it to authenticate with the rotating
// temp token.
func WithBearer(token string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// do issues a JSON request and decodes the response into out (when non-nil).
// Transport failures propagate as-is; they never trigger the 401 trap.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, opts ...RequestOption) error {
	ctx, cancel := context.WithTimeout(ctx, defaultRequestTimeout)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	for _, opt := range opts {
		opt(req)
	}

	// Outbound hook: attach the session token unless the caller already set
	// an identity explicitly
	if req.Header.Get("Authorization") == "" {
		if creds, err := c.store.Get(ctx); err == nil && creds.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	// Inbound hook: global de-authentication trap. Fires for any endpoint
	// and the original error is still returned to the caller
	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("Token expired or unauthorized, clearing session", "path", path)
		if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
			c.logger.Error("Failed to clear token store", "error", err)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return c.decodeError(resp)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError extracts the user facing message from an error body
func (c *Client) decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}

	apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}

	return apiErr
}
