// Package wallet connects to an external signing wallet and keeps the connected
// account's session.
package wallet

import (
	"context"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

// PayloadType is the only payload kind the bounty contract is called with.
const PayloadType = "entry_function_payload"

// Payload is an entry-function call handed to the wallet for signing.
type Payload struct {
	Type          string   `json:"type"`
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

// Account is the wallet account the user approved.
type Account struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey,omitempty"`
}

// PendingTransaction is what a wallet returns once it has submitted a payload.
type PendingTransaction struct {
	Hash string `json:"hash"`
}

// Provider is an external wallet. Connect and SignAndSubmitTransaction may
// block while the user is prompted. Implementations should wrap
// types.ErrWalletRejected when the user declines.
type Provider interface {
	Connect(ctx context.Context) (Account, error)
	Disconnect(ctx context.Context) error
	Account(ctx context.Context) (Account, error)
	SignAndSubmitTransaction(ctx context.Context, payload Payload) (PendingTransaction, error)
}

// Unavailable stands in when no wallet is installed. Every call fails with
// types.ErrWalletUnavailable.
type Unavailable struct{}

func (Unavailable) Connect(context.Context) (Account, error) {
	return Account{}, types.ErrWalletUnavailable
}

func (Unavailable) Disconnect(context.Context) error { return types.ErrWalletUnavailable }

func (Unavailable) Account(context.Context) (Account, error) {
	return Account{}, types.ErrWalletUnavailable
}

func (Unavailable) SignAndSubmitTransaction(context.Context, Payload) (PendingTransaction, error) {
	return PendingTransaction{}, types.ErrWalletUnavailable
}

// Available reports whether p can be used.
func Available(p Provider) bool {
	switch p.(type) {
	case nil, Unavailable, *Unavailable:
		return false
	}
	return true
}

// OrUnavailable returns p, or Unavailable when p is nil.
func OrUnavailable(p Provider) Provider {
	if p == nil {
		return Unavailable{}
	}
	return p
}
