package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/thrifthaul/backend/internal/db"
	"github.com/thrifthaul/backend/internal/models"
)

type fakeScheduleStore struct {
	blackouts map[string]bool
	entries   []models.ScheduleEntry
	nextID    int64
	scheduled []int64
}

func (f *fakeScheduleStore) IsBlackout(ctx context.Context, date string) (bool, error) {
	return f.blackouts[date], nil
}

func (f *fakeScheduleStore) BookSchedule(ctx context.Context, ticketID int64, start, end time.Time) (int64, error) {
	for _, e := range f.entries {
		if Overlaps(start, end, e.StartAt, e.EndAt) {
			return 0, db.ErrConflict
		}
	}
	f.nextID++
	f.entries = append(f.entries, models.ScheduleEntry{ID: f.nextID, TicketID: ticketID, StartAt: start, EndAt: end})
	f.scheduled = append(f.scheduled, ticketID)
	return f.nextID, nil
}

func (f *fakeScheduleStore) MoveSchedule(ctx context.Context, entryID int64, start, end time.Time) error {
	for _, e := range f.entries {
		if e.ID != entryID && Overlaps(start, end, e.StartAt, e.EndAt) {
			return db.ErrConflict
		}
	}
	for i, e := range f.entries {
		if e.ID == entryID {
			f.entries[i].StartAt = start
			f.entries[i].EndAt = end
			return nil
		}
	}
	return errors.New("entry not found")
}

func newTestScheduler(t *testing.T, store *fakeScheduleStore) *Scheduler {
	t.Helper()
	if store.blackouts == nil {
		store.blackouts = map[string]bool{}
	}
	return &Scheduler{Store: store, Zone: operatingZone(t), Logger: zerolog.Nop()}
}

func TestBookThenConflict(t *testing.T) {
	store := &fakeScheduleStore{}
	s := newTestScheduler(t, store)
	loc := s.Zone

	entryID, err := s.Book(context.Background(), 7,
		time.Date(2024, 6, 3, 9, 30, 0, 0, loc),
		time.Date(2024, 6, 3, 11, 0, 0, 0, loc))
	if err != nil {
		t.Fatalf("expected booking to succeed, got %v", err)
	}
	if entryID == 0 {
		t.Fatalf("expected entry id")
	}
	if len(store.scheduled) != 1 || store.scheduled[0] != 7 {
		t.Fatalf("expected ticket 7 to advance to scheduled, got %v", store.scheduled)
	}

	_, err = s.Book(context.Background(), 8,
		time.Date(2024, 6, 3, 10, 0, 0, 0, loc),
		time.Date(2024, 6, 3, 10, 30, 0, 0, loc))
	var be *BookingError
	if !errors.As(err, &be) || be.Code != CodeConflict {
		t.Fatalf("expected %s, got %v", CodeConflict, err)
	}
}

func TestBookBackToBackDoesNotConflict(t *testing.T) {
	store := &fakeScheduleStore{}
	s := newTestScheduler(t, store)
	loc := s.Zone

	if _, err := s.Book(context.Background(), 1,
		time.Date(2024, 6, 3, 9, 30, 0, 0, loc),
		time.Date(2024, 6, 3, 11, 0, 0, 0, loc)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := s.Book(context.Background(), 2,
		time.Date(2024, 6, 3, 11, 0, 0, 0, loc),
		time.Date(2024, 6, 3, 12, 0, 0, 0, loc)); err != nil {
		t.Fatalf("expected touching boundary to be bookable, got %v", err)
	}
}

func TestBookBlackoutRejectedRegardlessOfTime(t *testing.T) {
	store := &fakeScheduleStore{blackouts: map[string]bool{"2024-07-04": true}}
	s := newTestScheduler(t, store)
	loc := s.Zone

	_, err := s.Book(context.Background(), 1,
		time.Date(2024, 7, 4, 10, 0, 0, 0, loc),
		time.Date(2024, 7, 4, 11, 0, 0, 0, loc))
	var be *BookingError
	if !errors.As(err, &be) || be.Code != CodeBusinessHours {
		t.Fatalf("expected blackout rejection, got %v", err)
	}
	if len(store.entries) != 0 {
		t.Fatalf("expected no entry written on rejection")
	}
}

func TestBookHoursViolationNeverReachesStore(t *testing.T) {
	store := &fakeScheduleStore{}
	s := newTestScheduler(t, store)
	loc := s.Zone

	_, err := s.Book(context.Background(), 1,
		time.Date(2024, 6, 3, 8, 0, 0, 0, loc),
		time.Date(2024, 6, 3, 9, 0, 0, 0, loc))
	var be *BookingError
	if !errors.As(err, &be) || be.Code != CodeBusinessHours {
		t.Fatalf("expected business-hours rejection, got %v", err)
	}
	if len(store.entries) != 0 || len(store.scheduled) != 0 {
		t.Fatalf("expected no store writes on rejection")
	}
}

func TestMoveExcludesSelf(t *testing.T) {
	store := &fakeScheduleStore{}
	s := newTestScheduler(t, store)
	loc := s.Zone

	start := time.Date(2024, 6, 3, 9, 30, 0, 0, loc)
	end := time.Date(2024, 6, 3, 11, 0, 0, 0, loc)
	entryID, err := s.Book(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	// Moving onto its own unchanged interval must not self-conflict.
	if err := s.Move(context.Background(), entryID, start, end); err != nil {
		t.Fatalf("expected self-move to succeed, got %v", err)
	}

	if err := s.Move(context.Background(), entryID,
		time.Date(2024, 6, 3, 13, 0, 0, 0, loc),
		time.Date(2024, 6, 3, 14, 30, 0, 0, loc)); err != nil {
		t.Fatalf("expected relocation to succeed, got %v", err)
	}
	if len(store.scheduled) != 1 {
		t.Fatalf("move must not touch ticket status, got %v", store.scheduled)
	}
}

func TestMoveConflictsWithOtherEntry(t *testing.T) {
	store := &fakeScheduleStore{}
	s := newTestScheduler(t, store)
	loc := s.Zone

	if _, err := s.Book(context.Background(), 1,
		time.Date(2024, 6, 3, 9, 30, 0, 0, loc),
		time.Date(2024, 6, 3, 11, 0, 0, 0, loc)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	secondID, err := s.Book(context.Background(), 2,
		time.Date(2024, 6, 3, 13, 0, 0, 0, loc),
		time.Date(2024, 6, 3, 14, 0, 0, 0, loc))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	err = s.Move(context.Background(), secondID,
		time.Date(2024, 6, 3, 10, 0, 0, 0, loc),
		time.Date(2024, 6, 3, 11, 30, 0, 0, loc))
	var be *BookingError
	if !errors.As(err, &be) || be.Code != CodeConflict {
		t.Fatalf("expected conflict on move over another entry, got %v", err)
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	base := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(0), at(60), at(0), at(60), true},
		{"contained", at(0), at(60), at(15), at(30), true},
		{"partial overlap", at(0), at(60), at(30), at(90), true},
		{"touching end-start", at(0), at(60), at(60), at(120), false},
		{"touching start-end", at(60), at(120), at(0), at(60), false},
		{"disjoint", at(0), at(30), at(60), at(90), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// The rule is symmetric.
			if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Fatalf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}
