// Package api is a client for the bounty board backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	sdklog "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/log"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/session"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

// Config for a backend client
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api/.
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     sdklog.Logger
}

// Client calls the backend. Authenticated calls read the session token from the
// store on every request.
type Client struct {
	base   *url.URL
	http   *http.Client
	store  *session.Store
	logger sdklog.Logger
	now    func() time.Time
}

// New creates a backend client.
func New(cfg Config, store *session.Store) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: session store is required", types.ErrInvalidConfig)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: backend url %q", types.ErrInvalidConfig, cfg.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		base:   base,
		http:   httpClient,
		store:  store,
		logger: sdklog.OrNoop(cfg.Logger),
		now:    time.Now,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// endpoint resolves path, whose segments are already escaped, against the base.
func (c *Client) endpoint(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("bad path %q: %w", path, err)
	}
	return c.base.ResolveReference(ref).String(), nil
}

// do sends a request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, authenticated bool, body, out any) error {
	endpoint, err := c.endpoint(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		token, err := c.store.Token(ctx)
		if err != nil {
			return fmt.Errorf("read session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorf("%s %s: %v", method, endpoint, err)
		return fmt.Errorf("%w: %s %s: %v", types.ErrNetwork, method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", types.ErrNetwork, endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &types.HTTPError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       raw,
			Message:    messageFromBody(raw),
		}
		c.logger.Warnf("%v", httpErr)
		return httpErr
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// field fetches path and decodes a single top-level field of the response. A
// missing field leaves the zero value.
func field[T any](ctx context.Context, c *Client, path, name string) (T, error) {
	var (
		zero     T
		envelope map[string]json.RawMessage
	)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &envelope); err != nil {
		return zero, err
	}
	raw, ok := envelope[name]
	if !ok {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("decode %s.%s: %w", path, name, err)
	}
	return v, nil
}

func (c *Client) auth(ctx context.Context) (types.AuthContext, error) {
	a, err := c.store.Auth(ctx)
	if err != nil {
		return types.AuthContext{}, fmt.Errorf("read login state: %w", err)
	}
	return a, nil
}

func seg(v any) string {
	return url.PathEscape(fmt.Sprint(v))
}
