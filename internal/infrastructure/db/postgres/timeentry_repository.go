package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pecc/timetracking/internal/core/domain"
)

// TimeEntryRepository persists time entries in PostgreSQL. Locations are
// stored as JSONB so the shape can grow without schema churn.
type TimeEntryRepository struct {
	pool *pgxpool.Pool
}

func NewTimeEntryRepository(pool *pgxpool.Pool) *TimeEntryRepository {
	return &TimeEntryRepository{pool: pool}
}

const entryColumns = `id, user_id, user_name, clock_in, clock_out,
	clock_in_location, clock_out_location, overtime_hours`

func (r *TimeEntryRepository) List(ctx context.Context) ([]domain.TimeEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM time_entries ORDER BY clock_in`)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *TimeEntryRepository) FindByID(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM time_entries WHERE id = $1`, id)

	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *TimeEntryRepository) HasOpenEntry(ctx context.Context, userID int64) (bool, error) {
	var open bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM time_entries WHERE user_id = $1 AND clock_out IS NULL
		 )`, userID).Scan(&open)
	if err != nil {
		return false, fmt.Errorf("open entry check: %w", err)
	}
	return open, nil
}

func (r *TimeEntryRepository) Create(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	inLoc, outLoc, err := marshalLocations(e)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO time_entries(user_id, user_name, clock_in, clock_out,
			clock_in_location, clock_out_location, overtime_hours)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		e.UserID, e.UserName, e.ClockIn.UTC(), nullableTime(e.ClockOut),
		inLoc, outLoc, e.OvertimeHours,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("create time entry: %w", err)
	}
	return &e, nil
}

func (r *TimeEntryRepository) Update(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	inLoc, outLoc, err := marshalLocations(e)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE time_entries
		 SET user_id = $2, user_name = $3, clock_in = $4, clock_out = $5,
		     clock_in_location = $6, clock_out_location = $7, overtime_hours = $8
		 WHERE id = $1`,
		e.ID, e.UserID, e.UserName, e.ClockIn.UTC(), nullableTime(e.ClockOut),
		inLoc, outLoc, e.OvertimeHours,
	)
	if err != nil {
		return nil, fmt.Errorf("update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func scanEntry(row pgx.Row) (domain.TimeEntry, error) {
	var e domain.TimeEntry
	var clockOut *time.Time
	var inLoc []byte
	var outLoc []byte

	err := row.Scan(&e.ID, &e.UserID, &e.UserName, &e.ClockIn, &clockOut,
		&inLoc, &outLoc, &e.OvertimeHours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TimeEntry{}, err
		}
		return domain.TimeEntry{}, fmt.Errorf("scan time entry: %w", err)
	}

	e.ClockIn = e.ClockIn.UTC()
	if clockOut != nil {
		out := clockOut.UTC()
		e.ClockOut = &out
	}
	if err := json.Unmarshal(inLoc, &e.ClockInLocation); err != nil {
		return domain.TimeEntry{}, fmt.Errorf("decode clock_in_location: %w", err)
	}
	if outLoc != nil {
		var loc domain.LocationInfo
		if err := json.Unmarshal(outLoc, &loc); err != nil {
			return domain.TimeEntry{}, fmt.Errorf("decode clock_out_location: %w", err)
		}
		e.ClockOutLocation = &loc
	}
	return e, nil
}

func marshalLocations(e domain.TimeEntry) (inLoc []byte, outLoc []byte, err error) {
	inLoc, err = json.Marshal(e.ClockInLocation)
	if err != nil {
		return nil, nil, fmt.Errorf("encode clock_in_location: %w", err)
	}
	if e.ClockOutLocation != nil {
		outLoc, err = json.Marshal(*e.ClockOutLocation)
		if err != nil {
			return nil, nil, fmt.Errorf("encode clock_out_location: %w", err)
		}
	}
	return inLoc, outLoc, nil
}

func nullableTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
