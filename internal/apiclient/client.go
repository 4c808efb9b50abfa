// Package apiclient is the only place that talks HTTP to the planner API.
// Every endpoint goes through Client.Do so status mapping, bearer auth and
// 401 handling are applied uniformly.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/pkg/logger"
	"github.com/google/uuid"
)

const (
	DefaultTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// TokenSource is the slice of the token store the client needs.
type TokenSource interface {
	Get(ctx context.Context) string
	Clear(ctx context.Context) error
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logger.Logger

	hooksMu        sync.RWMutex
	onUnauthorized []func()
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its timeout is kept as is.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUnauthorized registers fn to run after a 401 cleared the token.
func (c *Client) OnUnauthorized(fn func()) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()

	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// Do performs an authenticated call. body is encoded as JSON when non-nil and
// the response is decoded into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// DoPublic performs a call where a 401 means bad credentials rather than an
// expired session, so the stored token is left alone.
func (c *Client) DoPublic(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if token := c.tokens.Get(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.InternalError("apiclient.do: transport failed", err)
		return &apierr.NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.InternalError("apiclient.do: read body failed", err, "status", resp.StatusCode)
		return &apierr.NetworkError{Cause: err}
	}

	log.Debug("apiclient.do: response", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		c.handleUnauthorized(ctx)
		log.BusinessError("apiclient.do: session rejected", apierr.ErrUnauthorized)
		return apierr.ErrUnauthorized
	}

	if resp.StatusCode >= http.StatusBadRequest {
		serverErr := &apierr.ServerError{Status: resp.StatusCode, Message: errorMessage(data)}
		if resp.StatusCode >= http.StatusInternalServerError {
			log.InternalError("apiclient.do: server error", serverErr)
		} else {
			log.BusinessError("apiclient.do: request rejected", serverErr)
		}
		return serverErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		decodeErr := &apierr.DecodingError{Target: fmt.Sprintf("%T", out), Cause: err}
		log.InternalError("apiclient.do: decode failed", decodeErr)
		return decodeErr
	}
	return nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.InternalError("apiclient.unauthorized: clear token failed", err)
	}

	c.hooksMu.RLock()
	hooks := append([]func(){}, c.onUnauthorized...)
	c.hooksMu.RUnlock()

	for _, hook := range hooks {
		hook()
	}
}

// errorMessage extracts the "error" or "message" string from an error body.
func errorMessage(data []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return apierr.MessageRequestFailed
	}
	for _, key := range []string{"error", "message"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var message string
		if err := json.Unmarshal(raw, &message); err == nil && message != "" {
			return message
		}
	}
	return apierr.MessageRequestFailed
}
