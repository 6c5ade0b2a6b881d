package blockchain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	waittx "github.com/Paul-Jonathan2005/AptosBountyBoard/internal/wait-tx"
)

const pendingTransactionType = "pending_transaction"

// Transaction is the subset of a committed or pending transaction the SDK reads.
type Transaction struct {
	Type     string `json:"type"`
	Hash     string `json:"hash"`
	Version  string `json:"version"`
	Sender   string `json:"sender"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
}

// Pending reports whether the node still holds the transaction in its mempool.
func (t Transaction) Pending() bool { return t.Type == pendingTransactionType }

// GetTransaction fetches a transaction by hash. The bool is false when the node
// does not know the hash yet.
func (c *Client) GetTransaction(ctx context.Context, hash string) (*Transaction, bool, error) {
	path := "/v1/transactions/by_hash/" + hash
	status, body, err := c.get(ctx, path)
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusNotFound {
		return nil, false, nil
	}
	if status != http.StatusOK {
		return nil, false, c.httpError(path, status, body)
	}
	var tx Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		return nil, false, fmt.Errorf("decode transaction %s: %w", hash, err)
	}
	return &tx, true, nil
}

// TransactionStatus reports a single observation of hash for the confirmation poller.
func (c *Client) TransactionStatus(ctx context.Context, hash string) (waittx.Status, error) {
	tx, found, err := c.GetTransaction(ctx, hash)
	if err != nil {
		return waittx.Status{}, err
	}
	if !found || tx.Pending() {
		c.logger.Debugf("tx %s pending", hash)
		return waittx.Status{Hash: hash, Pending: true}, nil
	}
	return waittx.Status{
		Hash:     tx.Hash,
		Version:  tx.Version,
		Success:  tx.Success,
		VMStatus: tx.VMStatus,
	}, nil
}

// WaitForTransaction polls until hash is committed. A transaction the chain
// executed unsuccessfully returns types.ErrTransactionFailed with its vm status.
// A zero timeout leaves the wait bounded only by ctx.
func (c *Client) WaitForTransaction(ctx context.Context, hash string, timeout time.Duration) (waittx.Result, error) {
	res, err := c.waiter.Wait(ctx, hash, timeout)
	if err != nil {
		return res, fmt.Errorf("wait for tx %s: %w", hash, err)
	}
	c.logger.Infof("tx %s committed at version %s", res.Hash, res.Version)
	return res, nil
}
