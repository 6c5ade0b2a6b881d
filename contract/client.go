// Package contract submits calls to the task_bounty Move module through a
// wallet and waits for them to be committed.
package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/contract/event"
	waittx "github.com/Paul-Jonathan2005/AptosBountyBoard/internal/wait-tx"
	sdkcrypto "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/crypto"
	sdklog "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/log"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/session"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet"
)

const defaultCacheSize = 128

// Chain is the chain access the orchestrator needs.
type Chain interface {
	TaskStoreExists(ctx context.Context, address string) (bool, error)
	WaitForTransaction(ctx context.Context, hash string, timeout time.Duration) (waittx.Result, error)
}

// Config for a contract client
type Config struct {
	ModuleAddress string
	// ConfirmTimeout bounds the wait for a commit. Zero waits until ctx ends.
	ConfirmTimeout time.Duration
	// CacheSize bounds the set of accounts known to hold a TaskStore.
	CacheSize int
	Logger    sdklog.Logger
}

// Client submits bounty module calls.
type Client struct {
	config   Config
	provider wallet.Provider
	chain    Chain
	store    *session.Store
	logger   sdklog.Logger
	events   *event.Bus
	stores   *lru.Cache
	now      func() time.Time
}

// New creates a contract client.
func New(cfg Config, provider wallet.Provider, chain Chain, store *session.Store) (*Client, error) {
	if chain == nil {
		return nil, fmt.Errorf("%w: chain client is required", types.ErrInvalidConfig)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: session store is required", types.ErrInvalidConfig)
	}
	module, err := sdkcrypto.NormalizeAddress(cfg.ModuleAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: module address: %v", types.ErrInvalidConfig, err)
	}
	cfg.ModuleAddress = module

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create store cache: %w", err)
	}

	return &Client{
		config:   cfg,
		provider: wallet.OrUnavailable(provider),
		chain:    chain,
		store:    store,
		logger:   sdklog.OrNoop(cfg.Logger),
		events:   event.NewBus(),
		stores:   cache,
		now:      time.Now,
	}, nil
}

// ModuleAddress returns the normalized module account.
func (c *Client) ModuleAddress() string { return c.config.ModuleAddress }

// SubscribeToEvents registers handler for a single event type.
func (c *Client) SubscribeToEvents(eventType event.EventType, handler event.Handler) {
	c.events.Subscribe(eventType, handler)
}

// SubscribeToAllEvents registers handler for every transaction event.
func (c *Client) SubscribeToAllEvents(handler event.Handler) {
	c.events.SubscribeAll(handler)
}

// resolveSigner returns the normalized signer address. An empty active address
// connects the wallet and records the account it returns.
func (c *Client) resolveSigner(ctx context.Context, active string) (string, error) {
	if active != "" {
		return sdkcrypto.NormalizeAddress(active)
	}
	if !wallet.Available(c.provider) {
		return "", types.ErrWalletUnavailable
	}
	acct, err := c.provider.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("connect wallet: %w", err)
	}
	addr, err := sdkcrypto.NormalizeAddress(acct.Address)
	if err != nil {
		return "", err
	}
	if err := c.store.SetWalletAddress(ctx, addr); err != nil {
		return "", fmt.Errorf("persist wallet address: %w", err)
	}
	return addr, nil
}

// ensureStore makes sure signer holds a TaskStore before a call that needs
// one. A failed lookup counts as a missing store. Initialization failures are
// logged and the call proceeds.
func (c *Client) ensureStore(ctx context.Context, signer string) {
	if c.stores.Contains(signer) {
		return
	}
	exists, err := c.chain.TaskStoreExists(ctx, signer)
	if err != nil {
		c.logger.Warnf("task store lookup for %s, treating as absent: %v", signer, err)
		exists = false
	}
	if exists {
		c.stores.Add(signer, struct{}{})
		return
	}
	c.emit(ctx, event.StoreInitRequested, EntryInit, InitPayload(c.config.ModuleAddress), signer, nil)
	if _, err := c.submit(ctx, EntryInit, signer, InitPayload(c.config.ModuleAddress)); err != nil {
		c.logger.Warnf("task store initialization for %s failed: %v", signer, err)
	}
}

// call runs the common flow for every entry point except init.
func (c *Client) call(ctx context.Context, entry, active string, build func(signer string) (wallet.Payload, error)) (*types.TxResult, error) {
	signer, err := c.resolveSigner(ctx, active)
	if err != nil {
		c.logger.Errorf("%s: %v", entry, err)
		return nil, &types.TransactionError{EntryPoint: entry, Err: err}
	}
	payload, err := build(signer)
	if err != nil {
		c.logger.Errorf("%s: %v", entry, err)
		return nil, &types.TransactionError{EntryPoint: entry, Err: err}
	}
	if entry != EntryInit {
		c.ensureStore(ctx, signer)
	}
	return c.submit(ctx, entry, signer, payload)
}

// submit hands payload to the wallet and waits for the commit.
func (c *Client) submit(ctx context.Context, entry, signer string, payload wallet.Payload) (*types.TxResult, error) {
	fail := func(hash string, err error) (*types.TxResult, error) {
		txErr := &types.TransactionError{EntryPoint: entry, Hash: hash, Err: err}
		c.logger.Errorf("error in %s: %v", entry, err)
		c.emit(ctx, event.TxFailed, entry, payload, signer, event.EventData{
			event.KeyError:    err.Error(),
			event.KeyTxHash:   hash,
			event.KeyRejected: txErr.Rejected(),
		})
		return nil, txErr
	}

	if !wallet.Available(c.provider) {
		return fail("", types.ErrWalletUnavailable)
	}

	c.emit(ctx, event.TxPending, entry, payload, signer, event.EventData{
		event.KeyMessage: "awaiting wallet signature",
	})
	pending, err := c.provider.SignAndSubmitTransaction(ctx, payload)
	if err != nil {
		return fail("", fmt.Errorf("sign and submit: %w", err))
	}
	if pending.Hash == "" {
		return fail("", errors.New("wallet returned no transaction hash"))
	}
	c.emit(ctx, event.TxSubmitted, entry, payload, signer, event.EventData{
		event.KeyTxHash: pending.Hash,
	})

	res, err := c.chain.WaitForTransaction(ctx, pending.Hash, c.config.ConfirmTimeout)
	if err != nil {
		return fail(pending.Hash, err)
	}
	if entry == EntryInit {
		c.stores.Add(signer, struct{}{})
	}
	c.emit(ctx, event.TxConfirmed, entry, payload, signer, event.EventData{
		event.KeyTxHash:  pending.Hash,
		event.KeyVersion: res.Version,
	})
	c.logger.Infof("%s confirmed: %s", entry, pending.Hash)

	return &types.TxResult{
		Hash:     pending.Hash,
		Function: payload.Function,
		Sender:   signer,
		Version:  res.Version,
	}, nil
}

// emit publishes a lifecycle event. Every entry point but init carries the
// bounty id as its first argument.
func (c *Client) emit(ctx context.Context, t event.EventType, entry string, payload wallet.Payload, signer string, data event.EventData) {
	if entry != EntryInit && len(payload.Arguments) > 0 {
		if data == nil {
			data = event.EventData{}
		}
		data[event.KeyBountyID] = payload.Arguments[0]
	}
	c.events.Emit(ctx, event.Event{
		Type:       t,
		EntryPoint: entry,
		Function:   payload.Function,
		Sender:     signer,
		Timestamp:  c.now(),
		Data:       data,
	})
}
