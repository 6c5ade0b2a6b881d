package waittx

import (
	"context"
	"time"
)

// Status is a single observation of a transaction on chain.
type Status struct {
	Hash     string
	Version  string
	Pending  bool
	Success  bool
	VMStatus string
}

// Result represents the outcome produced by waiting on a tx.
type Result struct {
	Hash     string
	Version  string
	VMStatus string
}

// Source abstracts a tx wait mechanism.
type Source interface {
	Wait(ctx context.Context, txHash string) (Result, error)
}

// Backoff controls polling cadence.
type Backoff interface {
	Next(attempt int) time.Duration
}
