package event

import (
	"context"
	"time"
)

// EventType represents the type of event emitted around a contract call.
type EventType string

// Transaction lifecycle events.
const (
	TxPending   EventType = "contract:tx_pending"
	TxSubmitted EventType = "contract:tx_submitted"
	TxConfirmed EventType = "contract:tx_confirmed"
	TxFailed    EventType = "contract:tx_failed"

	StoreInitRequested EventType = "contract:store_init_requested"
)

// EventDataKey identifies metadata entries.
type EventDataKey string

// EventData stores contextual attributes for an event.
type EventData map[EventDataKey]any

// Standard event data keys.
const (
	KeyError    EventDataKey = "error"
	KeyTxHash   EventDataKey = "txhash"
	KeyVersion  EventDataKey = "version"
	KeyMessage  EventDataKey = "message"
	KeyRejected EventDataKey = "rejected"
	KeyBountyID EventDataKey = "bounty_id"
)

// Event represents an emitted transaction event.
type Event struct {
	Type       EventType
	EntryPoint string
	Function   string
	Sender     string
	Timestamp  time.Time
	Data       EventData
}

// Handler processes events. Handlers run synchronously on the calling goroutine.
type Handler func(ctx context.Context, e Event)
