package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOutboxTicketCreated(t *testing.T) {
	dir := t.TempDir()
	o := Outbox{Dir: dir}

	err := o.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: 42, DonorName: "Pat"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	staff, err := os.ReadFile(filepath.Join(dir, "staff-new-42.txt"))
	if err != nil {
		t.Fatalf("staff file: %v", err)
	}
	if !strings.Contains(string(staff), "#42") || !strings.Contains(string(staff), "Pat") {
		t.Fatalf("staff body = %q", staff)
	}

	donor, err := os.ReadFile(filepath.Join(dir, "donor-new-42.txt"))
	if err != nil {
		t.Fatalf("donor file: %v", err)
	}
	if !strings.Contains(string(donor), "Thanks Pat") {
		t.Fatalf("donor body = %q", donor)
	}
}

func TestOutboxTicketScheduled(t *testing.T) {
	dir := t.TempDir()
	o := Outbox{Dir: dir}
	start := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

	err := o.Publish(context.Background(), Event{Type: EventTicketScheduled, TicketID: 7, Start: &start})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	body, err := os.ReadFile(filepath.Join(dir, "staff-scheduled-7.txt"))
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if !strings.Contains(string(body), "2024-06-03") {
		t.Fatalf("body = %q", body)
	}
}

func TestOutboxUnknownEvent(t *testing.T) {
	o := Outbox{Dir: t.TempDir()}
	if err := o.Publish(context.Background(), Event{Type: "mystery"}); err == nil {
		t.Fatalf("expected error for unknown event type")
	}
}
