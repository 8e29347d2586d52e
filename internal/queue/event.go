// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingRequestedEvent is published when the public form creates a booking.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingRequestedEvent struct {
	BookingID     string  `json:"booking_id"`
	ApartmentID   string  `json:"apartment_id"`
	ApartmentName string  `json:"apartment_name"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    string  `json:"guest_email"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	TotalGuests   int     `json:"total_guests"`
	TotalPrice    float64 `json:"total_price"`
	RequestedAt   string  `json:"requested_at"`
}

// BookingStatusChangedEvent is published when an admin moves a booking to a
// new status (confirmed or cancelled, or back to pending).
type BookingStatusChangedEvent struct {
	BookingID   string `json:"booking_id"`
	ApartmentID string `json:"apartment_id"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
	ChangedAt   string `json:"changed_at"`
}
