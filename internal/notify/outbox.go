package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Outbox drops one text file per outbound message into a directory that a
// separate mailer job sweeps.
type Outbox struct {
	Dir string
}

func (o Outbox) Publish(ctx context.Context, e Event) error {
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return err
	}
	switch e.Type {
	case EventTicketCreated:
		staff := fmt.Sprintf("New pickup request #%d from %s", e.TicketID, e.DonorName)
		if err := o.write(fmt.Sprintf("staff-new-%d.txt", e.TicketID), staff); err != nil {
			return err
		}
		donor := fmt.Sprintf("Thanks %s! Your pickup request #%d was received.", e.DonorName, e.TicketID)
		return o.write(fmt.Sprintf("donor-new-%d.txt", e.TicketID), donor)
	case EventTicketScheduled:
		when := ""
		if e.Start != nil {
			when = " for " + e.Start.Format(time.RFC3339)
		}
		msg := fmt.Sprintf("Pickup #%d scheduled%s", e.TicketID, when)
		return o.write(fmt.Sprintf("staff-scheduled-%d.txt", e.TicketID), msg)
	}
	return fmt.Errorf("unknown event type %q", e.Type)
}

func (o Outbox) write(name, body string) error {
	return os.WriteFile(filepath.Join(o.Dir, name), []byte(body), 0o644)
}

func (o Outbox) Close() error {
	return nil
}
