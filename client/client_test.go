package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/contract/event"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet/wallettest"
)

// fakeNode serves the fullnode endpoints. The account's TaskStore appears once
// an init transaction has been looked up.
type fakeNode struct {
	mu          sync.Mutex
	initialized bool
	balance     string
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch {
	case strings.Contains(r.URL.Path, "/resource/"):
		if !n.initialized {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error_code":"resource_not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	case strings.Contains(r.URL.Path, "/balance/"):
		_, _ = w.Write([]byte(n.balance))
	case strings.HasPrefix(r.URL.Path, "/v1/transactions/by_hash/"):
		n.initialized = true
		hash := strings.TrimPrefix(r.URL.Path, "/v1/transactions/by_hash/")
		_, _ = w.Write([]byte(`{"type":"user_transaction","hash":"` + hash + `","version":"77","success":true,"vm_status":"Executed successfully"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func testConfig(t *testing.T, node http.Handler) Config {
	t.Helper()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.ChainRPCURL = srv.URL
	cfg.BackendURL = "http://127.0.0.1:1/api/"
	cfg.RequestTimeout = time.Second
	cfg.WaitTx.PollInterval = time.Millisecond
	cfg.WaitTx.PollBackoffMaxInterval = time.Millisecond
	return cfg
}

func TestConnectInitializesStoreThroughContract(t *testing.T) {
	node := &fakeNode{balance: "250000000"}
	p := wallettest.New("abc123")
	ctx := context.Background()

	c, err := New(ctx, testConfig(t, node), p)
	require.NoError(t, err)
	defer c.Close()

	var confirmed []string
	c.Contract.SubscribeToEvents(event.TxConfirmed, func(ctx context.Context, e event.Event) {
		confirmed = append(confirmed, e.EntryPoint)
	})

	sess, err := c.Wallet.Connect(ctx)
	require.NoError(t, err)
	require.Equal(t, "0xabc123", sess.Address)
	require.Equal(t, "2.5", sess.Balance.String())
	require.Equal(t, []string{"init"}, confirmed)

	submitted := p.Submitted()
	require.Len(t, submitted, 1)
	require.True(t, strings.HasSuffix(submitted[0].Function, "::task_bounty::init"))

	// the store is known now, so a call goes straight to the entry point
	_, err = c.Contract.ReleaseReward(ctx, 1, sess.Address)
	require.NoError(t, err)
	require.Len(t, p.Submitted(), 2)
}

func TestSessionSurvivesRestart(t *testing.T) {
	node := &fakeNode{balance: "100000000", initialized: true}
	dir := filepath.Join(t.TempDir(), "session")
	ctx := context.Background()
	cfg := testConfig(t, node)

	c, err := New(ctx, cfg, wallettest.New("0xabc"), WithStorePath(dir))
	require.NoError(t, err)
	require.NoError(t, c.Session.SetAuth(ctx, types.AuthContext{Token: "t", UserID: "1", Username: "u", UserRole: "CLIENT"}))
	_, err = c.Wallet.Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = New(ctx, cfg, wallettest.New("0xabc"), WithStorePath(dir))
	require.NoError(t, err)
	defer c.Close()

	sess, ok := c.Wallet.Session()
	require.True(t, ok)
	require.Equal(t, "0xabc", sess.Address)
	require.Equal(t, "1", sess.Balance.String())

	// backend is unreachable; local state still goes
	_, err = c.Logout(ctx)
	require.ErrorIs(t, err, types.ErrNetwork)
	_, ok = c.Wallet.Session()
	require.False(t, ok)
	auth, err := c.Session.Auth(ctx)
	require.NoError(t, err)
	require.False(t, auth.Authenticated())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(context.Background(), Config{BackendURL: "not a url"}, nil)
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestOptionsOverrideConfig(t *testing.T) {
	cfg := testConfig(t, &fakeNode{})
	c, err := New(context.Background(), cfg, nil, WithLRUSize(4), WithRequestTimeout(2*time.Second))
	require.NoError(t, err)
	defer c.Close()

	require.Equal(t, 4, c.Config().LRUSize)
	require.Equal(t, 2*time.Second, c.Config().RequestTimeout)

	_, err = c.Wallet.Connect(context.Background())
	require.ErrorIs(t, err, types.ErrWalletUnavailable)
}

func TestFactoryRequiresProvider(t *testing.T) {
	f := NewFactory(testConfig(t, &fakeNode{}))
	_, err := f.WithProvider(context.Background(), nil)
	require.Error(t, err)

	c, err := f.WithProvider(context.Background(), wallettest.New("0x1"))
	require.NoError(t, err)
	require.NoError(t, c.Close())
}
