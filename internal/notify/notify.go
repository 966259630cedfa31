package notify

import (
	"context"
	"time"
)

const (
	EventTicketCreated   = "ticket_created"
	EventTicketScheduled = "ticket_scheduled"
)

type Event struct {
	Type      string     `json:"type"`
	TicketID  int64      `json:"ticket_id"`
	DonorName string     `json:"donor_name"`
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
}

// Notifier delivers ticket lifecycle events to staff and donors. Delivery
// failure is the caller's to log; it never fails the triggering request.
type Notifier interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}
