package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New("operation timed out")

	// ErrMissingAddress is returned when an account address is nil or empty
	ErrMissingAddress = errors.New("wallet address is missing")

	// ErrInvalidAddress is returned when an account address is not hex
	ErrInvalidAddress = errors.New("invalid account address")

	// ErrWalletUnavailable is returned when no wallet provider is present
	ErrWalletUnavailable = errors.New("wallet provider not detected")

	// ErrWalletRejected may be wrapped by providers when the user declines a request
	ErrWalletRejected = errors.New("wallet request rejected by user")

	// ErrNotConnected is returned when an operation needs a wallet session and none exists
	ErrNotConnected = errors.New("wallet not connected")

	// ErrNetwork is returned for HTTP and RPC failures
	ErrNetwork = errors.New("network error")

	// ErrInvalidBalance is returned when the chain reports a non-numeric balance
	ErrInvalidBalance = errors.New("invalid balance")

	// ErrTransaction is the kind shared by every transaction submission or confirmation failure
	ErrTransaction = errors.New("transaction failed")

	// ErrTransactionFailed is returned when the chain executed a transaction unsuccessfully
	ErrTransactionFailed = errors.New("transaction execution failed on chain")

	// ErrStoreClosed is returned by a session store after Close
	ErrStoreClosed = errors.New("session store closed")
)

// TransactionError reports a failed contract call. The original cause is kept so
// callers can tell a user rejection from a network or chain failure.
type TransactionError struct {
	EntryPoint string
	Hash       string
	Err        error
}

func (e *TransactionError) Error() string {
	if e.Hash != "" {
		return fmt.Sprintf("%s (tx %s): %v", e.EntryPoint, e.Hash, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.EntryPoint, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

func (e *TransactionError) Is(target error) bool { return target == ErrTransaction }

// Rejected reports whether the wallet signalled that the user declined to sign.
func (e *TransactionError) Rejected() bool { return errors.Is(e.Err, ErrWalletRejected) }

// HTTPError is returned for non-2xx responses from the backend or the chain endpoint.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	// Message is a user-displayable message extracted from the body, if any.
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

func (e *HTTPError) Is(target error) bool { return target == ErrNetwork }
