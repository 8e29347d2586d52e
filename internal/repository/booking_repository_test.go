package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendoza-apartments/booking-api/internal/model"
)

func newMockBookingRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

var bookingCols = []string{
	"id", "apartment_id", "guest_name", "guest_email", "guest_phone",
	"check_in", "check_out", "total_guests", "total_price", "notes",
	"status", "created_at", "updated_at",
}

func TestBookingCreateForcesPendingStatus(t *testing.T) {
	repo, mock := newMockBookingRepo(t)

	checkIn := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(sqlmock.AnyArg(), "apt-1", "Ana", "ana@example.com", nil,
			"2026-04-01", "2026-04-05", 2, 480.0, nil, model.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			"b-1", "apt-1", "Ana", "ana@example.com", nil,
			checkIn, checkOut, 2, 480.0, nil,
			model.BookingPending, now, now,
		))

	// A client-supplied status never survives creation.
	b := &model.Booking{
		ApartmentID: "apt-1",
		GuestName:   "Ana",
		GuestEmail:  "ana@example.com",
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalGuests: 2,
		TotalPrice:  480,
		Status:      model.BookingConfirmed,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, "b-1", b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	// The guard fires before any query, so no expectations are needed.
	repo, _ := newMockBookingRepo(t)
	b, err := repo.UpdateStatus(context.Background(), "b-1", "approved")
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusOverwrites(t *testing.T) {
	repo, mock := newMockBookingRepo(t)
	now := time.Now()

	mock.ExpectExec(`UPDATE bookings SET status=\? WHERE id=\?`).
		WithArgs(model.BookingConfirmed, "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			"b-1", "apt-1", "Ana", "ana@example.com", nil,
			now, now.AddDate(0, 0, 3), 2, 300.0, nil,
			model.BookingConfirmed, now, now,
		))

	b, err := repo.UpdateStatus(context.Background(), "b-1", model.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingDeleteMissingRow(t *testing.T) {
	repo, mock := newMockBookingRepo(t)
	mock.ExpectExec(`DELETE FROM bookings`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), ErrBookingNotFound)
}
