package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thrifthaul/backend/internal/models"
)

// ErrConflict is returned when a requested interval overlaps an existing
// schedule entry.
var ErrConflict = errors.New("schedule conflict")

// scheduleLockKey serializes conflict-check-then-write across concurrent
// booking transactions (pg_advisory_xact_lock).
const scheduleLockKey = 874251

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const ticketColumns = `id, donor_name, donor_email, donor_phone, pickup_address, city, state, zip,
	categories, condition, item_notes, preferred_date, preferred_time,
	bags_count, furniture_count, small_donation,
	crew_size, estimated_miles, drive_minutes, onsite_minutes, fuel_cost_per_mile, estimated_cost,
	images, status, created_at`

func scanTicket(row pgx.Row) (models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(
		&t.ID, &t.DonorName, &t.DonorEmail, &t.DonorPhone, &t.PickupAddress, &t.City, &t.State, &t.Zip,
		&t.Categories, &t.Condition, &t.ItemNotes, &t.PreferredDate, &t.PreferredTime,
		&t.BagsCount, &t.FurnitureCount, &t.SmallDonation,
		&t.CrewSize, &t.EstimatedMiles, &t.DriveMinutes, &t.OnsiteMinutes, &t.FuelCostPerMile, &t.EstimatedCost,
		&t.Images, &t.Status, &t.CreatedAt,
	)
	return t, err
}

func (s *Store) InsertTicket(ctx context.Context, t models.Ticket) (int64, error) {
	var id int64
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO tickets (donor_name, donor_email, donor_phone, pickup_address, city, state, zip,
			categories, condition, item_notes, preferred_date, preferred_time,
			bags_count, furniture_count, small_donation,
			crew_size, estimated_miles, drive_minutes, onsite_minutes, fuel_cost_per_mile, estimated_cost,
			images, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
		RETURNING id
	`, t.DonorName, t.DonorEmail, t.DonorPhone, t.PickupAddress, t.City, t.State, t.Zip,
		t.Categories, t.Condition, t.ItemNotes, t.PreferredDate, t.PreferredTime,
		t.BagsCount, t.FurnitureCount, t.SmallDonation,
		t.CrewSize, t.EstimatedMiles, t.DriveMinutes, t.OnsiteMinutes, t.FuelCostPerMile, t.EstimatedCost,
		t.Images, t.Status, t.CreatedAt).Scan(&id)
	return id, err
}

func (s *Store) GetTicket(ctx context.Context, id int64) (models.Ticket, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	return scanTicket(row)
}

func (s *Store) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTicketStatus(ctx context.Context, id int64, status string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE tickets SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) UpdateTicketMiles(ctx context.Context, id int64, miles float64) error {
	_, err := s.Pool.Exec(ctx, `UPDATE tickets SET estimated_miles = $1 WHERE id = $2`, miles, id)
	return err
}

func (s *Store) UpdateCrewSize(ctx context.Context, id int64, crew int) error {
	_, err := s.Pool.Exec(ctx, `UPDATE tickets SET crew_size = $1 WHERE id = $2`, crew, id)
	return err
}

func (s *Store) UpdateTimesAndCost(ctx context.Context, id int64, driveMinutes, onsiteMinutes, fuelPerMile, total float64) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE tickets SET drive_minutes = $1, onsite_minutes = $2, fuel_cost_per_mile = $3, estimated_cost = $4
		WHERE id = $5
	`, driveMinutes, onsiteMinutes, fuelPerMile, total, id)
	return err
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// findConflicts returns entries overlapping the half-open interval
// [start, end). Touching boundaries do not overlap. excludeID skips one
// entry so a move never conflicts with itself.
func findConflicts(ctx context.Context, q querier, start, end time.Time, excludeID int64) ([]models.ScheduleEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT id, ticket_id, start_at, end_at FROM schedules
		WHERE NOT (end_at <= $1 OR start_at >= $2) AND id <> $3
		ORDER BY start_at ASC
	`, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScheduleEntry
	for rows.Next() {
		var e models.ScheduleEntry
		if err := rows.Scan(&e.ID, &e.TicketID, &e.StartAt, &e.EndAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) FindConflicts(ctx context.Context, start, end time.Time, excludeID int64) ([]models.ScheduleEntry, error) {
	return findConflicts(ctx, s.Pool, start, end, excludeID)
}

// BookSchedule inserts a schedule entry for the ticket and advances the
// ticket to scheduled, after re-checking conflicts inside the same
// serialized transaction. Returns ErrConflict if the interval is taken.
func (s *Store) BookSchedule(ctx context.Context, ticketID int64, start, end time.Time) (int64, error) {
	var entryID int64
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, scheduleLockKey); err != nil {
			return err
		}
		conflicts, err := findConflicts(ctx, tx, start, end, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrConflict
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO schedules (ticket_id, start_at, end_at) VALUES ($1, $2, $3) RETURNING id
		`, ticketID, start, end).Scan(&entryID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE tickets SET status = $1 WHERE id = $2`, models.StatusScheduled, ticketID)
		return err
	})
	return entryID, err
}

// MoveSchedule replaces an entry's interval in place. Ticket status is
// untouched.
func (s *Store) MoveSchedule(ctx context.Context, entryID int64, start, end time.Time) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, scheduleLockKey); err != nil {
			return err
		}
		conflicts, err := findConflicts(ctx, tx, start, end, entryID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrConflict
		}
		tag, err := tx.Exec(ctx, `UPDATE schedules SET start_at = $1, end_at = $2 WHERE id = $3`, start, end, entryID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (s *Store) ListScheduled(ctx context.Context) ([]models.ScheduleEntry, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT s.id, s.ticket_id, s.start_at, s.end_at, t.donor_name, t.pickup_address
		FROM schedules s JOIN tickets t ON t.id = s.ticket_id
		ORDER BY s.start_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScheduleEntry
	for rows.Next() {
		var e models.ScheduleEntry
		if err := rows.Scan(&e.ID, &e.TicketID, &e.StartAt, &e.EndAt, &e.DonorName, &e.PickupAddress); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AddBlackout is idempotent: inserting an existing date is a no-op.
func (s *Store) AddBlackout(ctx context.Context, date string) error {
	_, err := s.Pool.Exec(ctx, `INSERT INTO blackout_days (date) VALUES ($1) ON CONFLICT (date) DO NOTHING`, date)
	return err
}

func (s *Store) DeleteBlackout(ctx context.Context, id int64) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM blackout_days WHERE id = $1`, id)
	return err
}

func (s *Store) ListBlackouts(ctx context.Context) ([]models.BlackoutDate, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, date FROM blackout_days ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BlackoutDate
	for rows.Next() {
		var d models.BlackoutDate
		if err := rows.Scan(&d.ID, &d.Date); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) IsBlackout(ctx context.Context, date string) (bool, error) {
	var exists bool
	err := s.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blackout_days WHERE date = $1)`, date).Scan(&exists)
	return exists, err
}
