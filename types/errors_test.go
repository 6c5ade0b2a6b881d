package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTransactionErrorKinds(t *testing.T) {
	rejected := &TransactionError{EntryPoint: "cast_vote", Err: fmt.Errorf("petra: %w", ErrWalletRejected)}
	require.ErrorIs(t, rejected, ErrTransaction)
	require.ErrorIs(t, rejected, ErrWalletRejected)
	require.True(t, rejected.Rejected())
	require.Equal(t, "cast_vote: petra: wallet request rejected by user", rejected.Error())

	failed := &TransactionError{EntryPoint: "create_task", Hash: "0x01", Err: ErrTransactionFailed}
	require.False(t, failed.Rejected())
	require.Contains(t, failed.Error(), "(tx 0x01)")

	var txErr *TransactionError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", failed), &txErr))
	require.Equal(t, "0x01", txErr.Hash)
}

func TestHTTPErrorIsNetwork(t *testing.T) {
	err := &HTTPError{Method: "POST", URL: "http://x/login/", StatusCode: 400, Message: "Invalid credentials"}
	require.ErrorIs(t, err, ErrNetwork)
	require.Equal(t, "POST http://x/login/: status 400: Invalid credentials", err.Error())

	bare := &HTTPError{Method: "GET", URL: "http://x", StatusCode: 502}
	require.Equal(t, "GET http://x: status 502", bare.Error())
}

func TestSessionJSON(t *testing.T) {
	s := Session{Address: "0xabc123", Balance: decimal.RequireFromString("2.5")}
	out, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{"address":"0xabc123","balance":2.5}`, string(out))
}
