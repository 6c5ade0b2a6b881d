package waittx

import (
	"context"
	"fmt"
	"time"

	clientconfig "github.com/Paul-Jonathan2005/AptosBountyBoard/client/config"
)

// Querier looks a transaction up by hash. A transaction the node does not know
// yet, or still holds as pending, is reported with Status.Pending set.
type Querier interface {
	TransactionStatus(ctx context.Context, hash string) (Status, error)
}

// Waiter polls the chain until a submitted transaction is committed.
type Waiter struct {
	poller Source
}

// New creates a waiter based on the provided config and querier.
func New(cfg clientconfig.WaitTxConfig, querier Querier) (*Waiter, error) {
	if querier == nil {
		return nil, fmt.Errorf("querier is required")
	}

	normalized := cfg
	clientconfig.ApplyWaitTxDefaults(&normalized)

	return &Waiter{poller: newPoller(querier, normalized)}, nil
}

// Wait blocks until the transaction is committed or the context ends. A zero
// timeout leaves the wait bounded only by ctx.
func (w *Waiter) Wait(ctx context.Context, txHash string, timeout time.Duration) (Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if w.poller == nil {
		return Result{}, fmt.Errorf("poller is required")
	}
	return w.poller.Wait(ctx, txHash)
}
