// Package wallettest provides a scripted wallet for tests and demos.
package wallettest

import (
	"context"
	"fmt"
	"sync"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet"
)

// Provider is an in-process wallet.Provider. It approves every request unless
// Reject is set, and hands out deterministic transaction hashes.
type Provider struct {
	mu sync.Mutex

	// Address is returned by Connect and Account.
	Address string
	// Reject makes Connect and SignAndSubmitTransaction fail with
	// types.ErrWalletRejected.
	Reject bool
	// SubmitErr, when set, is returned by SignAndSubmitTransaction.
	SubmitErr error
	// DisconnectErr, when set, is returned by Disconnect.
	DisconnectErr error

	connects    int
	disconnects int
	submitted   []wallet.Payload
}

var _ wallet.Provider = (*Provider)(nil)

// New returns a provider for address.
func New(address string) *Provider {
	return &Provider{Address: address}
}

func (p *Provider) Connect(ctx context.Context) (wallet.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return wallet.Account{}, err
	}
	if p.Reject {
		return wallet.Account{}, fmt.Errorf("connect: %w", types.ErrWalletRejected)
	}
	p.connects++
	return wallet.Account{Address: p.Address}, nil
}

func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnects++
	return p.DisconnectErr
}

func (p *Provider) Account(ctx context.Context) (wallet.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return wallet.Account{Address: p.Address}, nil
}

func (p *Provider) SignAndSubmitTransaction(ctx context.Context, payload wallet.Payload) (wallet.PendingTransaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return wallet.PendingTransaction{}, err
	}
	if p.Reject {
		return wallet.PendingTransaction{}, fmt.Errorf("sign %s: %w", payload.Function, types.ErrWalletRejected)
	}
	if p.SubmitErr != nil {
		return wallet.PendingTransaction{}, p.SubmitErr
	}
	p.submitted = append(p.submitted, payload)
	return wallet.PendingTransaction{Hash: fmt.Sprintf("0x%064x", len(p.submitted))}, nil
}

// Submitted returns the payloads signed so far, in order.
func (p *Provider) Submitted() []wallet.Payload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]wallet.Payload(nil), p.submitted...)
}

// Connects returns how many times Connect succeeded.
func (p *Provider) Connects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connects
}

// Disconnects returns how many times Disconnect was called.
func (p *Provider) Disconnects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disconnects
}
