package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendoza-apartments/booking-api/internal/model"
)

func newMockRepo(t *testing.T) (*ApartmentRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewApartmentRepo(db), mock
}

var apartmentCols = []string{
	"id", "title", "description", "address", "latitude", "longitude", "map_url",
	"price_per_night", "max_guests", "is_active", "images", "principal_image_index",
	"characteristics", "contact_email", "contact_phone", "whatsapp", "created_at", "updated_at",
}

func apartmentRow(rows *sqlmock.Rows, id, title string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, title, "desc", "addr", nil, nil, nil,
		120.0, 4, true, `[]`, 0,
		`{"wifi":true}`, "owner@example.com", nil, nil, now, now,
	)
}

func TestSearchCapacityOnly(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := apartmentRow(sqlmock.NewRows(apartmentCols), "a1", "Loft")
	mock.ExpectQuery(`FROM apartments WHERE is_active = 1 AND max_guests >= \? ORDER BY created_at DESC`).
		WithArgs(3).
		WillReturnRows(rows)

	out, err := repo.Search(context.Background(), SearchQuery{Guests: 3})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchExcludesBlockedAndConfirmed(t *testing.T) {
	repo, mock := newMockRepo(t)

	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	// Overlap test runs with the window swapped: start <= checkOut, end >= checkIn.
	mock.ExpectQuery(`SELECT apartment_id FROM apartment_availability`).
		WithArgs(checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"apartment_id"}).AddRow("a-blocked"))
	mock.ExpectQuery(`SELECT apartment_id FROM bookings\s+WHERE status = 'confirmed'`).
		WithArgs(checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"apartment_id"}).AddRow("a-booked"))

	rows := apartmentRow(sqlmock.NewRows(apartmentCols), "a-free", "Casa Patio")
	mock.ExpectQuery(`FROM apartments WHERE is_active = 1 AND max_guests >= \? AND id NOT IN \(\?,\?\)`).
		WithArgs(2, "a-blocked", "a-booked").
		WillReturnRows(rows)

	out, err := repo.Search(context.Background(), SearchQuery{
		CheckIn: &checkIn, CheckOut: &checkOut, Guests: 2,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a-free", out[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchDeduplicatesExclusions(t *testing.T) {
	repo, mock := newMockRepo(t)

	checkIn := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)

	// The same apartment shows up in both side lookups; it must appear once
	// in the NOT IN clause.
	mock.ExpectQuery(`FROM apartment_availability`).
		WithArgs(checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"apartment_id"}).AddRow("a1"))
	mock.ExpectQuery(`FROM bookings`).
		WithArgs(checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"apartment_id"}).AddRow("a1"))

	mock.ExpectQuery(`AND id NOT IN \(\?\) ORDER BY`).
		WithArgs(1, "a1").
		WillReturnRows(sqlmock.NewRows(apartmentCols))

	out, err := repo.Search(context.Background(), SearchQuery{
		CheckIn: &checkIn, CheckOut: &checkOut, Guests: 1,
	})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchFailsOpenOnSideLookupErrors(t *testing.T) {
	repo, mock := newMockRepo(t)

	checkIn := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM apartment_availability`).
		WillReturnError(errors.New("table missing"))
	mock.ExpectQuery(`FROM bookings`).
		WillReturnError(errors.New("table missing"))

	// Both side lookups down: search degrades to capacity-only, no NOT IN.
	rows := apartmentRow(sqlmock.NewRows(apartmentCols), "a1", "Loft")
	mock.ExpectQuery(`FROM apartments WHERE is_active = 1 AND max_guests >= \? ORDER BY`).
		WithArgs(2).
		WillReturnRows(rows)

	out, err := repo.Search(context.Background(), SearchQuery{
		CheckIn: &checkIn, CheckOut: &checkOut, Guests: 2,
	})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPrimaryQueryErrorPropagates(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM apartments`).
		WillReturnError(errors.New("connection lost"))

	out, err := repo.Search(context.Background(), SearchQuery{Guests: 1})
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestSearchAppliesAmenityPostFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows(apartmentCols).
		AddRow("a1", "With wifi", "d", "ad", nil, nil, nil, 100.0, 2, true,
			`[]`, 0, `{"wifi":true,"pool":true}`, "o@x.com", nil, nil, now, now).
		AddRow("a2", "No pool", "d", "ad", nil, nil, nil, 100.0, 2, true,
			`[]`, 0, `{"wifi":true}`, "o@x.com", nil, nil, now, now)
	mock.ExpectQuery(`FROM apartments`).WillReturnRows(rows)

	out, err := repo.Search(context.Background(), SearchQuery{
		Guests: 1, Amenities: []string{"wifi", "pool"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)
}

func TestFilterByAmenities(t *testing.T) {
	apts := []model.Apartment{
		{ID: "a", Characteristics: model.CharacteristicMap{"wifi": true, "bedrooms": float64(2)}},
		{ID: "b", Characteristics: model.CharacteristicMap{"wifi": false}},
		{ID: "c", Characteristics: nil},
		{ID: "d", Characteristics: model.CharacteristicMap{"wifi": true, "bedrooms": float64(0)}},
	}

	t.Run("no requirements keeps everything", func(t *testing.T) {
		assert.Len(t, FilterByAmenities(apts, nil), 4)
	})

	t.Run("single key", func(t *testing.T) {
		out := FilterByAmenities(apts, []string{"wifi"})
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, "d", out[1].ID)
	})

	t.Run("all keys must hold", func(t *testing.T) {
		out := FilterByAmenities(apts, []string{"wifi", "bedrooms"})
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].ID)
	})

	t.Run("unknown key filters everything out", func(t *testing.T) {
		assert.Empty(t, FilterByAmenities(apts, []string{"helipad"}))
	})
}
