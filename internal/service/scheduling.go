package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/thrifthaul/backend/internal/db"
	"github.com/thrifthaul/backend/internal/tz"
)

// ScheduleStore is the slice of the persistence layer the engine needs.
// Book and Move must run their conflict check and write atomically.
type ScheduleStore interface {
	IsBlackout(ctx context.Context, date string) (bool, error)
	BookSchedule(ctx context.Context, ticketID int64, start, end time.Time) (int64, error)
	MoveSchedule(ctx context.Context, entryID int64, start, end time.Time) error
}

// Scheduler admits, moves or rejects proposed pickup intervals against
// business hours, blackout days and existing bookings.
type Scheduler struct {
	Store  ScheduleStore
	Zone   *time.Location
	Logger zerolog.Logger
}

// Book validates the interval and creates a schedule entry; on success the
// store advances the ticket to scheduled.
func (s *Scheduler) Book(ctx context.Context, ticketID int64, start, end time.Time) (int64, error) {
	if err := s.validate(ctx, start, end); err != nil {
		return 0, err
	}
	entryID, err := s.Store.BookSchedule(ctx, ticketID, start, end)
	if errors.Is(err, db.ErrConflict) {
		return 0, &BookingError{Code: CodeConflict, Message: "Conflict with existing schedule."}
	}
	if err != nil {
		return 0, err
	}
	s.Logger.Info().Int64("ticket_id", ticketID).Int64("entry_id", entryID).
		Time("start", start).Time("end", end).Msg("pickup booked")
	return entryID, nil
}

// Move replaces an existing entry's interval. The entry never conflicts
// with itself, and the owning ticket's status is untouched.
func (s *Scheduler) Move(ctx context.Context, entryID int64, start, end time.Time) error {
	if err := s.validate(ctx, start, end); err != nil {
		return err
	}
	err := s.Store.MoveSchedule(ctx, entryID, start, end)
	if errors.Is(err, db.ErrConflict) {
		return &BookingError{Code: CodeConflict, Message: "Conflict with existing schedule."}
	}
	return err
}

func (s *Scheduler) validate(ctx context.Context, start, end time.Time) error {
	date := tz.CivilDate(start, s.Zone)
	closed, err := s.Store.IsBlackout(ctx, date)
	if err != nil {
		return err
	}
	if closed {
		return &BookingError{Code: CodeBusinessHours, Message: fmt.Sprintf("Closed on %s.", date)}
	}
	if hoursErr := CheckBusinessHours(start, end, s.Zone); hoursErr != nil {
		return hoursErr
	}
	return nil
}

// Overlaps is the conflict rule for half-open intervals: [s1,e1) and
// [s2,e2) conflict unless e1 <= s2 or s1 >= e2, so back-to-back bookings
// with touching boundaries never conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return e1.After(s2) && s1.Before(e2)
}
