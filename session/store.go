// Package session holds the client's persisted login and wallet state.
//
// A Store serializes every read and write through a single goroutine so that
// concurrent callers (a connect racing a disconnect, two balance refreshes) never
// interleave key by key: each operation sees and writes a whole record.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	sdklog "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/log"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

// Persisted keys.
const (
	KeyAuthToken     = "authToken"
	KeyUsername      = "username"
	KeyUserID        = "userId"
	KeyUserRole      = "userRole"
	KeyWalletAddress = "walletAddress"
	KeyWalletInfo    = "walletInfo"
)

// AuthKeys are removed together on logout.
var AuthKeys = []string{KeyAuthToken, KeyUsername, KeyUserID, KeyUserRole}

// WalletKeys are always written and removed together.
var WalletKeys = []string{KeyWalletAddress, KeyWalletInfo}

// Reader gives read access to the backend inside an Update.
type Reader interface {
	Get(key string) (string, bool, error)
}

type request struct {
	fn   func(Backend) error
	errc chan error
}

// Store is the single-writer session store.
type Store struct {
	backend Backend
	logger  sdklog.Logger

	reqs      chan request
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewStore starts a store over the given backend.
func NewStore(backend Backend, logger sdklog.Logger) *Store {
	s := &Store{
		backend: backend,
		logger:  sdklog.OrNoop(logger),
		reqs:    make(chan request),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

// NewMemoryStore returns a store backed by process memory.
func NewMemoryStore() *Store {
	return NewStore(NewMemoryBackend(), nil)
}

func (s *Store) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			return
		case r := <-s.reqs:
			r.errc <- r.fn(s.backend)
		}
	}
}

func (s *Store) do(ctx context.Context, fn func(Backend) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	errc := make(chan error, 1)
	select {
	case <-s.done:
		return types.ErrStoreClosed
	case <-ctx.Done():
		return ctx.Err()
	case s.reqs <- request{fn: fn, errc: errc}:
	}
	return <-errc
}

// Close stops the store and closes its backend.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		<-s.stopped
		err = s.backend.Close()
	})
	return err
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		v  string
		ok bool
	)
	err := s.do(ctx, func(b Backend) error {
		var err error
		v, ok, err = b.Get(key)
		return err
	})
	return v, ok, err
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.Apply(ctx, Put(key, value))
}

// Clear removes keys in one batch.
func (s *Store) Clear(ctx context.Context, keys ...string) error {
	ops := make([]Op, 0, len(keys))
	for _, k := range keys {
		ops = append(ops, Del(k))
	}
	return s.Apply(ctx, ops...)
}

// Apply writes ops atomically.
func (s *Store) Apply(ctx context.Context, ops ...Op) error {
	if len(ops) == 0 {
		return nil
	}
	return s.do(ctx, func(b Backend) error { return b.Apply(ops) })
}

// Update runs fn and applies the ops it returns within the same turn, so the
// read and the write cannot be split by another caller.
func (s *Store) Update(ctx context.Context, fn func(r Reader) ([]Op, error)) error {
	return s.do(ctx, func(b Backend) error {
		ops, err := fn(b)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			return nil
		}
		return b.Apply(ops)
	})
}

// Auth returns the persisted login state.
func (s *Store) Auth(ctx context.Context) (types.AuthContext, error) {
	var a types.AuthContext
	err := s.do(ctx, func(b Backend) error {
		for key, dst := range map[string]*string{
			KeyAuthToken: &a.Token,
			KeyUserID:    &a.UserID,
			KeyUsername:  &a.Username,
			KeyUserRole:  &a.UserRole,
		} {
			v, _, err := b.Get(key)
			if err != nil {
				return err
			}
			*dst = v
		}
		return nil
	})
	return a, err
}

// Token returns the session token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, _, err := s.Get(ctx, KeyAuthToken)
	return v, err
}

// SetAuth persists the login state.
func (s *Store) SetAuth(ctx context.Context, a types.AuthContext) error {
	return s.Apply(ctx,
		Put(KeyAuthToken, a.Token),
		Put(KeyUsername, a.Username),
		Put(KeyUserID, a.UserID),
		Put(KeyUserRole, a.UserRole),
	)
}

// ClearAuth removes the login state and leaves the wallet keys alone.
func (s *Store) ClearAuth(ctx context.Context) error {
	return s.Clear(ctx, AuthKeys...)
}

// ClearWallet removes both wallet keys and leaves the login state alone.
func (s *Store) ClearWallet(ctx context.Context) error {
	return s.Clear(ctx, WalletKeys...)
}

// ClearAll removes the login state and the wallet session in one batch.
func (s *Store) ClearAll(ctx context.Context) error {
	keys := append(append([]string{}, AuthKeys...), WalletKeys...)
	return s.Clear(ctx, keys...)
}

// WalletAddress returns the stored wallet address, or "" when none is stored.
func (s *Store) WalletAddress(ctx context.Context) (string, error) {
	v, _, err := s.Get(ctx, KeyWalletAddress)
	return v, err
}

// WalletSession returns the stored wallet session. A bare address without a
// session record yields a session with a zero balance.
func (s *Store) WalletSession(ctx context.Context) (types.Session, bool, error) {
	var (
		sess  types.Session
		found bool
	)
	err := s.do(ctx, func(b Backend) error {
		var err error
		sess, found, err = readWallet(b)
		return err
	})
	return sess, found, err
}

// SetWalletSession writes both wallet keys.
func (s *Store) SetWalletSession(ctx context.Context, sess types.Session) error {
	ops, err := walletOps(sess)
	if err != nil {
		return err
	}
	return s.Apply(ctx, ops...)
}

// SetWalletAddress records a newly connected address. The stored balance is kept
// when the address is unchanged and reset otherwise.
func (s *Store) SetWalletAddress(ctx context.Context, address string) error {
	return s.Update(ctx, func(r Reader) ([]Op, error) {
		prev, found, err := readWallet(r)
		if err != nil {
			s.logger.Warnf("discarding unreadable wallet session: %v", err)
			found = false
		}
		sess := types.Session{Address: address, Balance: decimal.Zero}
		if found && prev.Address == address {
			sess.Balance = prev.Balance
		}
		return walletOps(sess)
	})
}

func walletOps(sess types.Session) ([]Op, error) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode wallet session: %w", err)
	}
	return []Op{Put(KeyWalletAddress, sess.Address), Put(KeyWalletInfo, string(raw))}, nil
}

func readWallet(r Reader) (types.Session, bool, error) {
	info, ok, err := r.Get(KeyWalletInfo)
	if err != nil {
		return types.Session{}, false, err
	}
	if ok && info != "" {
		var sess types.Session
		if err := json.Unmarshal([]byte(info), &sess); err != nil {
			return types.Session{}, false, fmt.Errorf("decode wallet session: %w", err)
		}
		return sess, true, nil
	}
	addr, ok, err := r.Get(KeyWalletAddress)
	if err != nil || !ok || addr == "" {
		return types.Session{}, false, err
	}
	return types.Session{Address: addr, Balance: decimal.Zero}, true, nil
}
