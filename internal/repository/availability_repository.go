package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mendoza-apartments/booking-api/internal/model"
)

// ErrPeriodNotFound is returned when an availability period id does not exist.
var ErrPeriodNotFound = errors.New("availability period not found")

// AvailabilityRepo manages owner-defined blocked/open periods in the
// `apartment_availability` table.  The search path only cares whether a
// row overlaps the requested window; the is_available flag is carried for
// the admin calendar.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo returns a new AvailabilityRepo bound to the given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

const periodColumns = `id, apartment_id, start_date, end_date, is_available, created_at, updated_at`

// Create inserts a new period for an apartment.
func (r *AvailabilityRepo) Create(ctx context.Context, p *model.AvailabilityPeriod) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	const q = `INSERT INTO apartment_availability
		(id, apartment_id, start_date, end_date, is_available) VALUES (?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.ApartmentID,
		p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"),
		p.IsAvailable,
	)
	if err != nil {
		return err
	}
	const sel = `SELECT ` + periodColumns + ` FROM apartment_availability WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(
		&p.ID, &p.ApartmentID, &p.StartDate, &p.EndDate, &p.IsAvailable,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

// ListByApartment returns all periods of an apartment ordered by start date.
func (r *AvailabilityRepo) ListByApartment(ctx context.Context, apartmentID string) ([]model.AvailabilityPeriod, error) {
	const q = `SELECT ` + periodColumns + ` FROM apartment_availability
		WHERE apartment_id = ? ORDER BY start_date ASC`
	rows, err := r.db.QueryContext(ctx, q, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AvailabilityPeriod, 0)
	for rows.Next() {
		var p model.AvailabilityPeriod
		if err := rows.Scan(
			&p.ID, &p.ApartmentID, &p.StartDate, &p.EndDate, &p.IsAvailable,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one period.
func (r *AvailabilityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM apartment_availability WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPeriodNotFound
	}
	return nil
}

// PurgeEndedBefore deletes periods whose end date is older than the cutoff.
// Called from the scheduled maintenance job; stale rows only add noise to
// the admin calendar and to the search exclusion lookup.
func (r *AvailabilityRepo) PurgeEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM apartment_availability WHERE end_date < ?`,
		cutoff.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
