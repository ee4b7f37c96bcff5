// Package api is the HTTP client for the Socialite REST API. Every call is
// credentialed through a cookie jar that survives process restarts, request
// and response bodies are JSON (multipart for uploads), and every failure is
// collapsed into a single human-readable message for the caller to display.
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
	"time"

	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/rs/zerolog/log"
)

// Config holds client configuration.
type Config struct {
	// BaseURL is the API server root, e.g. "http://localhost:5000".
	BaseURL string

	// Timeout bounds each request round trip.
	Timeout time.Duration

	// StateDir is where the cookie jar is persisted. Empty disables
	// persistence and the session lives only as long as the process.
	StateDir string

	// CacheDir enables an RFC 7234 caching transport for GET responses
	// that carry cache headers. Empty disables caching.
	CacheDir string

	Debug bool
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:5000",
		Timeout: 30 * time.Second,
	}
}

// Client issues credentialed requests against the API.
type Client struct {
	base *url.URL
	http *http.Client
	jar  *sessionJar
}

// New creates a client from the given configuration.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing scheme or host", cfg.BaseURL)
	}

	jar, err := newSessionJar(cfg.StateDir, base)
	if err != nil {
		return nil, err
	}

	var transport http.RoundTripper
	if cfg.CacheDir != "" {
		transport = httpcache.NewTransport(diskcache.New(cfg.CacheDir))
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	log.Debug().Str("baseURL", base.String()).Msg("api client initialized")

	return &Client{
		base: base,
		jar:  jar,
		http: &http.Client{
			Jar:       jar,
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// ClearSession drops all session cookies, in memory and on disk. Called as
// part of the logout purge.
func (c *Client) ClearSession() error {
	return c.jar.purge()
}

// HasSession reports whether the jar currently holds a cookie for the API
// host.
func (c *Client) HasSession() bool {
	return len(c.jar.Cookies(c.base)) > 0
}

// doJSON performs a JSON request and decodes the response into out when out
// is non-nil. body may be nil for bodyless requests.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}
	data, err := c.do(ctx, method, path, reader, "application/json")
	if err != nil {
		return err
	}
	return decodeBody(method, path, data, out)
}

// do performs the request, returning the response body on success and a
// normalized *Error on any failure.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).Msg("transport failure")
		return nil, &Error{Message: transportMessage(method, path, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: transportMessage(method, path, err)}
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromBody(method, path, resp.StatusCode, data)
	}

	c.jar.save()
	return data, nil
}

func decodeBody(method, path string, data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: fmt.Sprintf("%s %s: malformed response body", method, path)}
	}
	return nil
}

func transportMessage(method, path string, err error) string {
	// url.Error repeats the method and URL; keep just the cause.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return fmt.Sprintf("%s %s: %s", method, path, err.Error())
}

// idFromBody extracts the id that delete endpoints echo back, falling back
// to the requested id when the server returned no usable body.
func idFromBody(data []byte, fallback string) string {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.ID != "" {
		return payload.ID
	}
	return fallback
}
