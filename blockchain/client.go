package blockchain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	clientconfig "github.com/Paul-Jonathan2005/AptosBountyBoard/client/config"
	waittx "github.com/Paul-Jonathan2005/AptosBountyBoard/internal/wait-tx"
	sdklog "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/log"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

// Config for blockchain client
type Config struct {
	RPCEndpoint   string
	ModuleAddress string
	CoinType      string
	Timeout       time.Duration
	WaitTx        clientconfig.WaitTxConfig
	HTTPClient    *http.Client
	Logger        sdklog.Logger
}

// Client provides read access to the fullnode REST endpoint.
type Client struct {
	config Config
	http   *http.Client
	logger sdklog.Logger
	waiter *waittx.Waiter
}

// New creates a new blockchain client
func New(cfg Config) (*Client, error) {
	if cfg.RPCEndpoint == "" {
		return nil, fmt.Errorf("%w: rpc endpoint is required", types.ErrInvalidConfig)
	}
	cfg.RPCEndpoint = strings.TrimRight(cfg.RPCEndpoint, "/")
	if cfg.CoinType == "" {
		cfg.CoinType = clientconfig.DefaultCoinType
	}
	if cfg.ModuleAddress == "" {
		cfg.ModuleAddress = clientconfig.DefaultModuleAddress
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		config: cfg,
		http:   httpClient,
		logger: sdklog.OrNoop(cfg.Logger),
	}
	waiter, err := waittx.New(cfg.WaitTx, c)
	if err != nil {
		return nil, fmt.Errorf("create tx waiter: %w", err)
	}
	c.waiter = waiter
	return c, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// get issues a GET against the node and returns status and body. Transport
// failures are wrapped in types.ErrNetwork; status handling is left to callers.
func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	url := c.config.RPCEndpoint + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: GET %s: %v", types.ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read %s: %v", types.ErrNetwork, url, err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) httpError(path string, status int, body []byte) error {
	return &types.HTTPError{
		Method:     http.MethodGet,
		URL:        c.config.RPCEndpoint + path,
		StatusCode: status,
		Body:       body,
		Message:    nodeMessage(body),
	}
}
