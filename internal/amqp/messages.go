package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RoutingKeyTransactionChanged is the routing key of TransactionEvent.
const RoutingKeyTransactionChanged = "transaction.changed"

// Action is the ledger write that produced an event.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionDeleted:
		return true
	}
	return false
}

// TransactionEvent notifies consumers that a user's ledger changed.
// It carries identifiers only; consumers reload the row from storage.
type TransactionEvent struct {
	EventID       string    `json:"event_id"`
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	Action        Action    `json:"action"`
	Version       int64     `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
}

var errMalformedEvent = errors.New("malformed transaction event")

// NewTransactionEvent stamps a fresh event id and timestamp.
func NewTransactionEvent(userID, transactionID string, action Action, version int64) *TransactionEvent {
	return &TransactionEvent{
		EventID:       uuid.NewString(),
		TransactionID: transactionID,
		UserID:        userID,
		Action:        action,
		Version:       version,
		Timestamp:     time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventFromJSON decodes and validates an event body.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var msg TransactionEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	if msg.TransactionID == "" || msg.UserID == "" || !msg.Action.Valid() {
		return nil, fmt.Errorf("%w: missing ids or unknown action %q", errMalformedEvent, msg.Action)
	}
	return &msg, nil
}
