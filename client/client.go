package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/api"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/blockchain"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/contract"
	sdklog "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/log"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/session"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet"
)

// Client provides unified access to the bounty board backend, the chain and
// the user's wallet.
type Client struct {
	// High-level modules
	API        *api.Client
	Blockchain *blockchain.Client
	Contract   *contract.Client
	Wallet     *wallet.Manager
	Session    *session.Store

	// Configuration
	config *Config
	logger sdklog.Logger
}

// New creates a new unified client. A nil provider behaves as a missing
// wallet. A persisted wallet session is restored without prompting the wallet.
func New(ctx context.Context, cfg Config, provider wallet.Provider, opts ...Option) (*Client, error) {
	// Apply options
	for _, opt := range opts {
		opt(&cfg)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := sdklog.OrNoop(cfg.Logger)

	store, err := openStore(cfg.StorePath, logger)
	if err != nil {
		return nil, err
	}

	c := &Client{Session: store, config: &cfg, logger: logger}

	c.Blockchain, err = blockchain.New(blockchain.Config{
		RPCEndpoint:   cfg.ChainRPCURL,
		ModuleAddress: cfg.ModuleAddress,
		CoinType:      cfg.CoinType,
		Timeout:       cfg.RequestTimeout,
		WaitTx:        cfg.WaitTx,
		Logger:        logger,
	})
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("failed to initialize blockchain client: %w", err))
	}

	c.Contract, err = contract.New(contract.Config{
		ModuleAddress: cfg.ModuleAddress,
		CacheSize:     cfg.LRUSize,
		Logger:        logger,
	}, provider, c.Blockchain, store)
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("failed to initialize contract client: %w", err))
	}

	c.Wallet = wallet.NewManager(provider, c.Blockchain, store, logger)
	c.Wallet.SetStoreInitializer(c.Contract)

	c.API, err = api.New(api.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	}, store)
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("failed to initialize backend client: %w", err))
	}

	if sess, ok, err := c.Wallet.Restore(ctx); err != nil {
		return nil, c.closeAfter(fmt.Errorf("restore wallet session: %w", err))
	} else if ok {
		logger.Infof("restored wallet session for %s", sess.Address)
	}

	return c, nil
}

func openStore(path string, logger sdklog.Logger) (*session.Store, error) {
	if path == "" {
		return session.NewStore(session.NewMemoryBackend(), logger), nil
	}
	backend, err := session.OpenLevelDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return session.NewStore(backend, logger), nil
}

func (c *Client) closeAfter(err error) error {
	if closeErr := c.Close(); closeErr != nil {
		return fmt.Errorf("%w; also failed to close: %v", err, closeErr)
	}
	return err
}

// Logout ends the backend session and forgets the wallet session, locally and
// in the store, even when the backend call fails.
func (c *Client) Logout(ctx context.Context) (api.Record, error) {
	out, err := c.API.Logout(ctx)
	c.Wallet.Forget()
	return out, err
}

// Close releases all resources
func (c *Client) Close() error {
	var errs []error

	if c.API != nil {
		if err := c.API.Close(); err != nil {
			errs = append(errs, fmt.Errorf("api close: %w", err))
		}
	}

	if c.Blockchain != nil {
		if err := c.Blockchain.Close(); err != nil {
			errs = append(errs, fmt.Errorf("blockchain close: %w", err))
		}
	}

	if c.Session != nil {
		if err := c.Session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("session close: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Config returns the client configuration
func (c *Client) Config() Config {
	return *c.config
}
