package wallet_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/blockchain"
	clientconfig "github.com/Paul-Jonathan2005/AptosBountyBoard/client/config"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/session"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet/wallettest"
)

type stubChain struct {
	exists     bool
	existsErr  error
	balance    string
	balanceErr error
}

func (s *stubChain) TaskStoreExists(ctx context.Context, address string) (bool, error) {
	return s.exists, s.existsErr
}

func (s *stubChain) RawBalance(ctx context.Context, address string) (string, error) {
	return s.balance, s.balanceErr
}

type recordingInit struct {
	store     *session.Store
	calls     []string
	persisted []bool
	err       error
}

func (r *recordingInit) InitializeStore(ctx context.Context, active string) (*types.TxResult, error) {
	r.calls = append(r.calls, active)
	addr, _ := r.store.WalletAddress(ctx)
	r.persisted = append(r.persisted, addr != "")
	return &types.TxResult{}, r.err
}

func newManager(t *testing.T, p wallet.Provider, chain wallet.Chain) (*wallet.Manager, *session.Store) {
	t.Helper()
	store := session.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return wallet.NewManager(p, chain, store, nil), store
}

func TestConnectUnavailable(t *testing.T) {
	for _, p := range []wallet.Provider{nil, wallet.Unavailable{}} {
		m, _ := newManager(t, p, &stubChain{})
		_, err := m.Connect(context.Background())
		require.ErrorIs(t, err, types.ErrWalletUnavailable)
		_, ok := m.Session()
		require.False(t, ok)
	}
}

func TestConnectInitializesMissingStoreOnceBeforePersisting(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t, wallettest.New("AbC123"), &stubChain{exists: false, balance: "150000000"})
	init := &recordingInit{store: store}
	m.SetStoreInitializer(init)

	sess, err := m.Connect(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"0xAbC123"}, init.calls)
	require.Equal(t, []bool{false}, init.persisted)
	require.Equal(t, "0xAbC123", sess.Address)
	require.Equal(t, "1.5", sess.Balance.String())

	addr, err := store.WalletAddress(ctx)
	require.NoError(t, err)
	require.Equal(t, "0xAbC123", addr)
}

func TestConnectSkipsInitWhenStoreExists(t *testing.T) {
	m, store := newManager(t, wallettest.New("0xabc"), &stubChain{exists: true, balance: "0"})
	init := &recordingInit{store: store}
	m.SetStoreInitializer(init)

	_, err := m.Connect(context.Background())
	require.NoError(t, err)
	require.Empty(t, init.calls)
}

func TestConnectSwallowsInitAndLookupFailures(t *testing.T) {
	chain := &stubChain{existsErr: &types.HTTPError{StatusCode: 500}, balance: "100000000"}
	m, store := newManager(t, wallettest.New("0xabc"), chain)
	init := &recordingInit{store: store, err: errors.New("E_ALREADY_INITIALIZED")}
	m.SetStoreInitializer(init)

	sess, err := m.Connect(context.Background())
	require.NoError(t, err)
	require.Len(t, init.calls, 1)
	require.Equal(t, "1", sess.Balance.String())
}

func TestConnectNonNumericBalanceIsZero(t *testing.T) {
	m, store := newManager(t, wallettest.New("0xabc"), &stubChain{exists: true, balance: `"lots"`})

	sess, err := m.Connect(context.Background())
	require.NoError(t, err)
	require.True(t, sess.Balance.IsZero())

	stored, ok, err := store.WalletSession(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, stored.Balance.IsZero())
}

func TestConnectBalanceNetworkFailureIsZero(t *testing.T) {
	m, _ := newManager(t, wallettest.New("0xabc"), &stubChain{exists: true, balanceErr: types.ErrNetwork})

	sess, err := m.Connect(context.Background())
	require.NoError(t, err)
	require.True(t, sess.Balance.IsZero())
}

func TestConnectRejected(t *testing.T) {
	p := wallettest.New("0xabc")
	p.Reject = true
	m, store := newManager(t, p, &stubChain{})

	_, err := m.Connect(context.Background())
	require.ErrorIs(t, err, types.ErrWalletRejected)

	addr, err := store.WalletAddress(context.Background())
	require.NoError(t, err)
	require.Empty(t, addr)
}

func TestDisconnectClearsWalletKeysOnly(t *testing.T) {
	ctx := context.Background()
	p := wallettest.New("0xabc")
	m, store := newManager(t, p, &stubChain{exists: true, balance: "1"})
	require.NoError(t, store.SetAuth(ctx, types.AuthContext{Token: "t", UserID: "7", Username: "ann", UserRole: "CLIENT"}))

	_, err := m.Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Disconnect(ctx))

	_, ok := m.Session()
	require.False(t, ok)
	require.Equal(t, 1, p.Disconnects())

	for _, k := range session.WalletKeys {
		_, found, err := store.Get(ctx, k)
		require.NoError(t, err)
		require.False(t, found, k)
	}
	auth, err := store.Auth(ctx)
	require.NoError(t, err)
	require.Equal(t, types.AuthContext{Token: "t", UserID: "7", Username: "ann", UserRole: "CLIENT"}, auth)
}

func requireWalletKeysCleared(t *testing.T, store *session.Store) {
	t.Helper()
	for _, k := range session.WalletKeys {
		_, found, err := store.Get(context.Background(), k)
		require.NoError(t, err)
		require.False(t, found, k)
	}
}

func TestDisconnectProviderErrorStillClears(t *testing.T) {
	ctx := context.Background()
	p := wallettest.New("0xabc")
	p.DisconnectErr = errors.New("extension crashed")
	m, store := newManager(t, p, &stubChain{exists: true, balance: "1"})

	_, err := m.Connect(ctx)
	require.NoError(t, err)

	err = m.Disconnect(ctx)
	require.ErrorIs(t, err, p.DisconnectErr)
	_, ok := m.Session()
	require.False(t, ok)
	requireWalletKeysCleared(t, store)
}

func TestDisconnectWithCancelledContextClears(t *testing.T) {
	for i := 0; i < 20; i++ {
		m, store := newManager(t, wallettest.New("0xabc"), &stubChain{exists: true, balance: "1"})
		_, err := m.Connect(context.Background())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.NoError(t, m.Disconnect(ctx))
		requireWalletKeysCleared(t, store)
	}
}

func TestRefreshBalance(t *testing.T) {
	ctx := context.Background()
	chain := &stubChain{exists: true, balance: "100000000"}
	m, store := newManager(t, wallettest.New("0xabc"), chain)

	_, err := m.RefreshBalance(ctx)
	require.ErrorIs(t, err, types.ErrNotConnected)

	_, err = m.Connect(ctx)
	require.NoError(t, err)

	chain.balance = "250000000"
	sess, err := m.RefreshBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, "2.5", sess.Balance.String())

	chain.balanceErr = errors.New("connection reset")
	sess, err = m.RefreshBalance(ctx)
	require.ErrorIs(t, err, types.ErrNetwork)
	require.Equal(t, "2.5", sess.Balance.String())

	chain.balanceErr = nil
	chain.balance = "NaN-ish"
	sess, err = m.RefreshBalance(ctx)
	require.NoError(t, err)
	require.True(t, sess.Balance.IsZero())

	stored, _, err := store.WalletSession(ctx)
	require.NoError(t, err)
	require.True(t, stored.Balance.IsZero())
}

func TestRestoreAdoptsPersistedSession(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t, wallettest.New("0xabc"), &stubChain{})

	_, ok, err := m.Restore(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, session.KeyWalletInfo, "{not json"))
	_, ok, err = m.Restore(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SetWalletAddress(ctx, "0xdef"))
	sess, ok, err := m.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "0xdef", sess.Address)

	cur, ok := m.Session()
	require.True(t, ok)
	require.Equal(t, sess, cur)
}

func TestConnectThenRefreshAgainstNode(t *testing.T) {
	balance := "0"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/resource/"):
			_, _ = w.Write([]byte(`{"type":"TaskStore","data":{}}`))
		case strings.HasPrefix(r.URL.Path, "/v1/accounts/0xabc123/balance/"):
			_, _ = w.Write([]byte(balance))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	chain, err := blockchain.New(blockchain.Config{
		RPCEndpoint: srv.URL,
		Timeout:     time.Second,
		WaitTx:      clientconfig.DefaultWaitTxConfig(),
	})
	require.NoError(t, err)

	m, store := newManager(t, wallettest.New("abc123"), chain)
	ctx := context.Background()

	sess, err := m.Connect(ctx)
	require.NoError(t, err)
	require.Equal(t, "0xabc123", sess.Address)
	require.True(t, sess.Balance.IsZero())

	balance = "250000000"
	sess, err = m.RefreshBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, "2.5", sess.Balance.String())

	raw, _, err := store.Get(ctx, session.KeyWalletInfo)
	require.NoError(t, err)
	require.JSONEq(t, `{"address":"0xabc123","balance":2.5}`, raw)
}
