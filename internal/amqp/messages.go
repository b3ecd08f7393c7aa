package amqp

import (
	"encoding/json"
	"time"
)

// Change actions carried by ledger event messages.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionBudget  = "budget_set"
)

// LedgerEventMessage is a lightweight notification that a transaction or
// budget changed. Consumers re-read the collections from storage; the message
// only says which month to look at.
type LedgerEventMessage struct {
	Action    string    `json:"action"`
	ID        string    `json:"id,omitempty"`
	Month     string    `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates an event for the given action, record id and
// affected month.
func NewLedgerEventMessage(action, id, month string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Action:    action,
		ID:        id,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
