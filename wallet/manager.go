package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/amount"
	sdkcrypto "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/crypto"
	sdklog "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/log"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/session"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

// Chain is the read side of the chain the manager needs.
type Chain interface {
	TaskStoreExists(ctx context.Context, address string) (bool, error)
	RawBalance(ctx context.Context, address string) (string, error)
}

// StoreInitializer creates the bounty store for a freshly connected account.
type StoreInitializer interface {
	InitializeStore(ctx context.Context, activeAddress string) (*types.TxResult, error)
}

// Manager owns the connected wallet session.
type Manager struct {
	provider Provider
	chain    Chain
	store    *session.Store
	logger   sdklog.Logger

	mu      sync.RWMutex
	init    StoreInitializer
	current *types.Session
}

// NewManager creates a manager. A nil provider is treated as Unavailable.
func NewManager(provider Provider, chain Chain, store *session.Store, logger sdklog.Logger) *Manager {
	return &Manager{
		provider: OrUnavailable(provider),
		chain:    chain,
		store:    store,
		logger:   sdklog.OrNoop(logger),
	}
}

// SetStoreInitializer sets the hook Connect calls when the account has no store.
func (m *Manager) SetStoreInitializer(init StoreInitializer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init = init
}

// Provider returns the wallet the manager talks to.
func (m *Manager) Provider() Provider { return m.provider }

// Session returns the current session, if any.
func (m *Manager) Session() (types.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return types.Session{}, false
	}
	return *m.current, true
}

func (m *Manager) adopt(sess *types.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = sess
}

func (m *Manager) initializer() StoreInitializer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.init
}

// Connect asks the wallet for an account, makes sure the account has a bounty
// store, reads its balance and persists the resulting session.
func (m *Manager) Connect(ctx context.Context) (types.Session, error) {
	if !Available(m.provider) {
		m.logger.Errorf("wallet connect: %v", types.ErrWalletUnavailable)
		return types.Session{}, types.ErrWalletUnavailable
	}

	if _, err := m.provider.Connect(ctx); err != nil {
		m.logger.Errorf("wallet connect failed: %v", err)
		return types.Session{}, fmt.Errorf("connect wallet: %w", err)
	}
	acct, err := m.provider.Account(ctx)
	if err != nil {
		m.logger.Errorf("wallet account lookup failed: %v", err)
		return types.Session{}, fmt.Errorf("wallet account: %w", err)
	}
	address, err := sdkcrypto.NormalizeAddress(acct.Address)
	if err != nil {
		return types.Session{}, err
	}

	m.ensureStore(ctx, address)

	sess := types.Session{Address: address, Balance: m.connectBalance(ctx, address)}
	if err := m.store.SetWalletSession(ctx, sess); err != nil {
		return types.Session{}, fmt.Errorf("persist wallet session: %w", err)
	}
	m.adopt(&sess)
	m.logger.Infof("wallet %s connected, balance %s", sess.Address, sess.Balance)
	return sess, nil
}

// ensureStore initializes the account's bounty store when it is missing. Every
// failure here is logged and swallowed.
func (m *Manager) ensureStore(ctx context.Context, address string) {
	exists, err := m.chain.TaskStoreExists(ctx, address)
	if err != nil {
		var httpErr *types.HTTPError
		if errors.As(err, &httpErr) {
			m.logger.Warnf("task store lookup for %s returned status %d", address, httpErr.StatusCode)
		} else {
			m.logger.Errorf("task store lookup for %s: %v", address, err)
		}
		exists = false
	}
	if exists {
		m.logger.Debugf("task store already exists for %s", address)
		return
	}

	init := m.initializer()
	if init == nil {
		m.logger.Warnf("task store missing for %s and no initializer configured", address)
		return
	}
	if _, err := init.InitializeStore(ctx, address); err != nil {
		m.logger.Warnf("task store initialization for %s failed: %v", address, err)
	}
}

func (m *Manager) connectBalance(ctx context.Context, address string) decimal.Decimal {
	raw, err := m.chain.RawBalance(ctx, address)
	if err != nil {
		m.logger.Warnf("balance fetch for %s failed: %v", address, err)
		return decimal.Zero
	}
	bal, err := amount.FromOctas(raw)
	if err != nil {
		m.logger.Errorf("invalid balance received for %s: %v", address, err)
		return decimal.Zero
	}
	return bal
}

// Disconnect tells the wallet to disconnect and clears the session. The local
// session is cleared even when the wallet call fails; login state is untouched.
func (m *Manager) Disconnect(ctx context.Context) error {
	var providerErr error
	if Available(m.provider) {
		if err := m.provider.Disconnect(ctx); err != nil {
			m.logger.Errorf("wallet disconnect failed: %v", err)
			providerErr = fmt.Errorf("disconnect wallet: %w", err)
		}
	}

	m.adopt(nil)
	storeErr := m.store.ClearWallet(context.WithoutCancel(ctx))
	if storeErr != nil {
		m.logger.Errorf("clear wallet session: %v", storeErr)
		storeErr = fmt.Errorf("clear wallet session: %w", storeErr)
	}
	return errors.Join(providerErr, storeErr)
}

// RefreshBalance re-reads the balance of the connected account. On a network
// failure the session is left as it was. A balance the node reports in a form
// that cannot be parsed resets the stored balance to zero.
func (m *Manager) RefreshBalance(ctx context.Context) (types.Session, error) {
	cur, ok := m.Session()
	if !ok {
		return types.Session{}, types.ErrNotConnected
	}

	raw, err := m.chain.RawBalance(ctx, cur.Address)
	if err != nil {
		m.logger.Errorf("failed to refresh balance for %s: %v", cur.Address, err)
		if !errors.Is(err, types.ErrNetwork) {
			err = fmt.Errorf("%w: %v", types.ErrNetwork, err)
		}
		return cur, fmt.Errorf("refresh balance: %w", err)
	}

	bal, err := amount.FromOctas(raw)
	if err != nil {
		m.logger.Errorf("invalid balance received for %s: %v", cur.Address, err)
		bal = decimal.Zero
	}

	next := types.Session{Address: cur.Address, Balance: bal}
	if err := m.store.SetWalletSession(ctx, next); err != nil {
		return cur, fmt.Errorf("persist wallet session: %w", err)
	}
	m.adopt(&next)
	return next, nil
}

// Restore adopts the persisted session without contacting the wallet. An
// unreadable record is logged and ignored.
func (m *Manager) Restore(ctx context.Context) (types.Session, bool, error) {
	sess, ok, err := m.store.WalletSession(ctx)
	if err != nil {
		if errors.Is(err, types.ErrStoreClosed) || ctx.Err() != nil {
			return types.Session{}, false, err
		}
		m.logger.Warnf("ignoring stored wallet session: %v", err)
		return types.Session{}, false, nil
	}
	if !ok {
		return types.Session{}, false, nil
	}
	m.adopt(&sess)
	return sess, true, nil
}

// Forget drops the in-memory session without touching the wallet or the store.
func (m *Manager) Forget() { m.adopt(nil) }
