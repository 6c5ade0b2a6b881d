package waittx

import (
	"context"
	"errors"
	"testing"
	"time"

	clientconfig "github.com/Paul-Jonathan2005/AptosBountyBoard/client/config"
)

type stubSource struct {
	res   Result
	err   error
	calls int
}

func (s *stubSource) Wait(ctx context.Context, txHash string) (Result, error) {
	s.calls++
	return s.res, s.err
}

func TestWaiterDelegatesToPoller(t *testing.T) {
	src := &stubSource{res: Result{Hash: "0x1", Version: "42"}}
	w := &Waiter{poller: src}

	res, err := w.Wait(context.Background(), "0x1", 0)
	if err != nil {
		t.Fatalf("wait error: %v", err)
	}
	if res.Version != "42" || src.calls != 1 {
		t.Fatalf("unexpected result %+v after %d calls", res, src.calls)
	}
}

func TestWaiterPropagatesError(t *testing.T) {
	w := &Waiter{poller: &stubSource{err: errors.New("boom")}}
	if _, err := w.Wait(context.Background(), "0x1", time.Second); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewRequiresQuerier(t *testing.T) {
	if _, err := New(clientconfig.DefaultWaitTxConfig(), nil); err == nil {
		t.Fatalf("expected error for nil querier")
	}
}

type waiterStubQuerier struct {
	pendingFor int
	calls      int
}

func (s *waiterStubQuerier) TransactionStatus(ctx context.Context, hash string) (Status, error) {
	s.calls++
	if s.calls <= s.pendingFor {
		return Status{Pending: true}, nil
	}
	return Status{Hash: hash, Version: "7", Success: true}, nil
}

func TestNewSetsDefaults(t *testing.T) {
	q := &waiterStubQuerier{pendingFor: 1}

	w, err := New(clientconfig.WaitTxConfig{PollInterval: time.Millisecond, PollBackoffMaxInterval: time.Millisecond}, q)
	if err != nil {
		t.Fatalf("new error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := w.Wait(ctx, "0xabc", 0)
	if err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
	if res.Hash != "0xabc" || q.calls != 2 {
		t.Fatalf("unexpected result %+v after %d calls", res, q.calls)
	}
}
