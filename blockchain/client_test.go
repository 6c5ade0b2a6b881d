package blockchain

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientconfig "github.com/Paul-Jonathan2005/AptosBountyBoard/client/config"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

const testModule = "0x7e6213fecd8feee9d3908368eb43825af78f6116ab922f5544574cd13272b4f8"

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		RPCEndpoint:   srv.URL + "/",
		ModuleAddress: testModule,
		Timeout:       time.Second,
		WaitTx: clientconfig.WaitTxConfig{
			PollInterval:           time.Millisecond,
			PollBackoffMaxInterval: time.Millisecond,
		},
	})
	require.NoError(t, err)
	return c
}

func TestBalanceConvertsOctas(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("250000000"))
	}))

	bal, err := c.Balance(context.Background(), "abc123")
	require.NoError(t, err)
	require.Equal(t, "2.5", bal.String())
	require.Equal(t, "/v1/accounts/0xabc123/balance/0x1::aptos_coin::AptosCoin", gotPath)
}

func TestBalanceRejectsNonNumericBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"lots"`))
	}))

	_, err := c.Balance(context.Background(), "0xabc")
	require.ErrorIs(t, err, types.ErrInvalidBalance)
}

func TestBalanceHTTPError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad address","error_code":"invalid_input"}`))
	}))

	_, err := c.Balance(context.Background(), "0xabc")
	require.ErrorIs(t, err, types.ErrNetwork)

	var httpErr *types.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	require.Equal(t, "invalid_input: bad address", httpErr.Message)
}

func TestBalanceRequiresAddress(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))

	_, err := c.Balance(context.Background(), "")
	require.ErrorIs(t, err, types.ErrMissingAddress)
	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestResourceExists(t *testing.T) {
	status := http.StatusOK
	var gotURI string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.WriteHeader(status)
	}))
	ctx := context.Background()

	ok, err := c.TaskStoreExists(ctx, "0xabc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/v1/accounts/0xabc/resource/"+testModule+"%3A%3Atask_bounty%3A%3ATaskStore", gotURI)

	status = http.StatusNotFound
	ok, err = c.TaskStoreExists(ctx, "0xabc")
	require.NoError(t, err)
	require.False(t, ok)

	status = http.StatusInternalServerError
	ok, err = c.TaskStoreExists(ctx, "0xabc")
	require.ErrorIs(t, err, types.ErrNetwork)
	require.False(t, ok)
}

func TestWaitForTransactionPollsUntilCommitted(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/transactions/by_hash/0xfeed", r.URL.Path)
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Transaction not found","error_code":"transaction_not_found"}`))
		case 2:
			_, _ = w.Write([]byte(`{"type":"pending_transaction","hash":"0xfeed"}`))
		default:
			_, _ = w.Write([]byte(`{"type":"user_transaction","hash":"0xfeed","version":"1234","success":true,"vm_status":"Executed successfully"}`))
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res, err := c.WaitForTransaction(ctx, "0xfeed", 0)
	require.NoError(t, err)
	require.Equal(t, "1234", res.Version)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWaitForTransactionReportsVMFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"user_transaction","hash":"0xbad","version":"9","success":false,"vm_status":"Move abort in task_bounty: 0x1"}`))
	}))

	res, err := c.WaitForTransaction(context.Background(), "0xbad", time.Second)
	require.ErrorIs(t, err, types.ErrTransactionFailed)
	require.Contains(t, err.Error(), "Move abort")
	require.Equal(t, "0xbad", res.Hash)
}

func TestNewRequiresEndpoint(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}
