package repository

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mendoza-apartments/booking-api/internal/model"
)

// SearchQuery defines the filters for an availability search.  CheckIn and
// CheckOut are both required for date filtering; when either is nil the
// search is capacity-only.  Amenities are applied in memory after the query
// returns, because the characteristics map has no relational schema.
type SearchQuery struct {
	CheckIn   *time.Time
	CheckOut  *time.Time
	Guests    int
	Amenities []string
}

// Search returns active apartments that satisfy the capacity filter and are
// not blocked or booked over the requested window.
//
// Exclusion sources differ in failure policy: the two side lookups
// (availability periods and confirmed bookings) fail open so that a missing
// or broken side table degrades search instead of breaking it, while an
// error on the primary listing query is returned to the caller, which is
// expected to fail closed and show no results.
func (r *ApartmentRepo) Search(ctx context.Context, q SearchQuery) ([]model.Apartment, error) {
	where := []string{"is_active = 1", "max_guests >= ?"}
	args := []any{q.Guests}

	if q.CheckIn != nil && q.CheckOut != nil {
		excluded := r.unavailableApartmentIDs(ctx, *q.CheckIn, *q.CheckOut)
		if len(excluded) > 0 {
			placeholders := make([]string, 0, len(excluded))
			for _, id := range excluded {
				placeholders = append(placeholders, "?")
				args = append(args, id)
			}
			where = append(where, "id NOT IN ("+strings.Join(placeholders, ",")+")")
		}
	}

	query := `SELECT ` + apartmentColumns + ` FROM apartments WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY created_at DESC`

	apartments, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(q.Amenities) > 0 {
		apartments = FilterByAmenities(apartments, q.Amenities)
	}
	return apartments, nil
}

// unavailableApartmentIDs unions the apartments blocked by an availability
// period with those holding a confirmed booking over the window.  Both
// lookups use the inclusive overlap test start <= checkOut AND end >= checkIn.
// Each failure is logged and skipped: a pending side table must not take the
// whole search down.
func (r *ApartmentRepo) unavailableApartmentIDs(ctx context.Context, checkIn, checkOut time.Time) []string {
	seen := map[string]bool{}
	ids := make([]string, 0)

	// Any overlapping period blocks, regardless of the row's is_available
	// flag: presence of a row over the window is the only contract here.
	const periodsQ = `SELECT apartment_id FROM apartment_availability
		WHERE start_date <= ? AND end_date >= ?`
	if err := r.collectIDs(ctx, periodsQ, &ids, seen, checkOut, checkIn); err != nil {
		log.Printf("search: availability lookup failed, continuing without blocks: %v", err)
	}

	// Only confirmed bookings block.  Pending requests are not guaranteed
	// and must keep the apartment visible in search results.
	const bookingsQ = `SELECT apartment_id FROM bookings
		WHERE status = 'confirmed' AND check_in <= ? AND check_out >= ?`
	if err := r.collectIDs(ctx, bookingsQ, &ids, seen, checkOut, checkIn); err != nil {
		log.Printf("search: confirmed-booking lookup failed, continuing without blocks: %v", err)
	}

	return ids
}

func (r *ApartmentRepo) collectIDs(ctx context.Context, query string, ids *[]string, seen map[string]bool, args ...any) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		if !seen[id] {
			seen[id] = true
			*ids = append(*ids, id)
		}
	}
	return rows.Err()
}

// FilterByAmenities keeps an apartment iff every required amenity key is
// truthy in its characteristics map.  A missing key counts as not having
// the amenity.
func FilterByAmenities(apartments []model.Apartment, required []string) []model.Apartment {
	if len(required) == 0 {
		return apartments
	}
	out := make([]model.Apartment, 0, len(apartments))
	for _, a := range apartments {
		keep := true
		for _, key := range required {
			if !a.Characteristics.HasAmenity(key) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, a)
		}
	}
	return out
}
