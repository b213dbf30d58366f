package events

import (
	"context"
	"time"
)

// Receipt lifecycle event types
const (
	ReceiptCreated    = "receipt.created"
	ReceiptCheckedOut = "receipt.checked_out"
	ReceiptDeleted    = "receipt.deleted"
)

// Event is a receipt lifecycle notification
type Event struct {
	Type       string    `json:"type"`
	ReceiptID  uint      `json:"receiptId"`
	CustomerID uint      `json:"customerId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewReceiptEvent stamps a receipt event with the current time
func NewReceiptEvent(eventType string, receiptID, customerID uint) Event {
	return Event{
		Type:       eventType,
		ReceiptID:  receiptID,
		CustomerID: customerID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher
func (NopPublisher) Close() error { return nil }
