package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mendoza-apartments/booking-api/internal/model"
)

// ErrBookingNotFound is returned when a booking id does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides CRUD access to the `bookings` table.  Bookings are
// created by the public form with status pending; only the admin dashboard
// mutates the status afterwards, and there is deliberately no transition
// guard beyond overwriting the column.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, apartment_id, guest_name, guest_email, guest_phone,
	check_in, check_out, total_guests, total_price, notes, status, created_at, updated_at`

func scanBooking(row rowScanner) (model.Booking, error) {
	var (
		b     model.Booking
		phone sql.NullString
		notes sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.ApartmentID, &b.GuestName, &b.GuestEmail, &phone,
		&b.CheckIn, &b.CheckOut, &b.TotalGuests, &b.TotalPrice, &notes,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	if phone.Valid {
		v := phone.String
		b.GuestPhone = &v
	}
	if notes.Valid {
		v := notes.String
		b.Notes = &v
	}
	return b, nil
}

// Create inserts a booking with status pending.  The total price is stored
// as supplied by the client; it is not recomputed against the nightly rate.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Status = model.BookingPending
	const q = `INSERT INTO bookings
		(id, apartment_id, guest_name, guest_email, guest_phone,
		 check_in, check_out, total_guests, total_price, notes, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.ApartmentID, b.GuestName, b.GuestEmail, b.GuestPhone,
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
		b.TotalGuests, b.TotalPrice, b.Notes, b.Status,
	)
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

// GetByID fetches one booking.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListAll returns every booking, newest first, for the admin reservations
// view.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// ListByApartment returns the bookings of one apartment, newest first.
func (r *BookingRepo) ListByApartment(ctx context.Context, apartmentID string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE apartment_id = ? ORDER BY created_at DESC`
	return r.list(ctx, q, apartmentID)
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus overwrites the booking status.  Any status may follow any
// other; the only check is that the value is one of the known three.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	switch status {
	case model.BookingPending, model.BookingConfirmed, model.BookingCancelled:
	default:
		return nil, ErrInvalidStatus
	}
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status=? WHERE id=?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can mean "missing" or "already that status"; read back
		// to tell the two apart.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete hard-removes a booking row.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CountPendingSince reports how many bookings entered pending state after
// the given time.  Used by the admin dashboard badge.
func (r *BookingRepo) CountPendingSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = 'pending' AND created_at >= ?`,
		since).Scan(&n)
	return n, err
}
