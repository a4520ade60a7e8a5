// Package api wraps the inventory backend's REST endpoints.
package api

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

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/inventario/internal/logger"
	"github.com/wolfeidau/inventario/internal/session"
)

// Config holds common client configuration
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheDir string

	// MaxTries bounds attempts for idempotent reads. Writes are sent once.
	MaxTries      uint
	RetryInterval time.Duration

	Logger *zerolog.Logger
}

// DefaultConfig returns a default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://127.0.0.1:8000/api/",
		Timeout:       30 * time.Second,
		MaxTries:      3,
		RetryInterval: 500 * time.Millisecond,
	}
}

// TokenSource supplies the session whose token authenticates requests.
type TokenSource interface {
	Current() session.Session
}

// Client calls the backend on behalf of the current session.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	tokens        TokenSource
	cache         responseCache
	maxTries      uint
	retryInterval time.Duration
}

// NewClient creates a backend client. GET responses are cached on disk when
// cfg.CacheDir is set, in memory otherwise.
func NewClient(cfg Config, tokens TokenSource) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if tokens == nil {
		return nil, errors.New("token source is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme %q", base.Scheme)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	if cfg.MaxTries == 0 {
		cfg.MaxTries = 1
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultConfig().RetryInterval
	}

	l := log.Logger
	if cfg.Logger != nil {
		l = *cfg.Logger
	}

	cache := newResponseCache(cfg.CacheDir)

	cached := httpcache.NewTransport(cache)
	cached.Transport = varyOnAuthorization{next: http.DefaultTransport}
	cached.MarkCachedResponses = true

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: logger.NewTransport(l, cached),
		},
		tokens:        tokens,
		cache:         cache,
		maxTries:      cfg.MaxTries,
		retryInterval: cfg.RetryInterval,
	}, nil
}

// ClearCache drops every cached response. Call it on logout: cached entries
// record the token they were fetched with.
func (c *Client) ClearCache() error {
	if err := c.cache.Flush(); err != nil {
		return fmt.Errorf("failed to clear response cache: %w", err)
	}
	return nil
}

// varyOnAuthorization marks every response as varying on the Authorization
// header so cached reads never cross sessions.
type varyOnAuthorization struct {
	next http.RoundTripper
}

func (v varyOnAuthorization) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := v.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Header.Add("Vary", "Authorization")
	return resp, nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query, auth: true}, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, request{method: method, path: path, body: body, auth: true}, out)
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var token string
	if r.auth {
		token = c.tokens.Current().Token
		if token == "" {
			return ErrNotAuthenticated
		}
	}

	var payload []byte
	if r.body != nil {
		var err error
		payload, err = json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	target := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(r.path, "/")})
	if len(r.query) > 0 {
		target.RawQuery = r.query.Encode()
	}

	requestID := uuid.NewString()

	attempt := func() (*http.Response, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, r.method, target.String(), body)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, err
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			apiErr := decodeError(resp)
			resp.Body.Close()
			if apiErr.Temporary() {
				return nil, apiErr
			}
			return nil, backoff.Permanent(apiErr)
		}

		return resp, nil
	}

	tries := uint(1)
	if r.method == http.MethodGet {
		tries = c.maxTries
	}

	resp, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(c.backoff()),
		backoff.WithMaxTries(tries),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if raw, ok := out.(*json.RawMessage); ok {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		*raw = data
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) backoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxInterval = 10 * c.retryInterval
	return b
}
