package model

import "time"

// Booking status values.  A booking starts as pending and is only ever
// advanced by an admin; there is no transition guard beyond overwriting the
// column, so any status can follow any other.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking records a guest's reservation request for an apartment.  It
// corresponds to a row in the `bookings` table.
//
// Fields:
//  ID          – opaque UUID identifier.
//  ApartmentID – apartment being requested.
//  GuestName   – full name of the guest.
//  GuestEmail  – contact email, required for the confirmation mail.
//  GuestPhone  – optional phone number.
//  CheckIn     – arrival date.
//  CheckOut    – departure date, strictly after CheckIn.
//  TotalGuests – number of guests in the party.
//  TotalPrice  – total as computed by the client (nights × nightly rate).
//                It is stored as supplied and not recomputed server-side.
//  Notes       – optional free-text message from the guest.
//  Status      – pending, confirmed or cancelled.
//  CreatedAt/UpdatedAt – timestamps assigned by the database.
type Booking struct {
	ID          string    `json:"id"`
	ApartmentID string    `json:"apartment_id"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	GuestPhone  *string   `json:"guest_phone,omitempty"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	TotalGuests int       `json:"total_guests"`
	TotalPrice  float64   `json:"total_price"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Nights returns the stay length in whole nights.  Inverted ranges produce
// a negative count; callers validate the range before trusting this value.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
