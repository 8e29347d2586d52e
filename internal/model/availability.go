package model

import "time"

// AvailabilityPeriod is an owner-defined blocked/open date range for an
// apartment, independent of guest bookings.  It corresponds to a row in the
// `apartment_availability` table.
//
// The search path treats any period overlapping the requested window as
// blocking, regardless of the IsAvailable flag on the row.
//
// Fields:
//  ID          – opaque UUID identifier.
//  ApartmentID – apartment the period applies to.
//  StartDate   – first day of the period.
//  EndDate     – last day of the period.
//  IsAvailable – owner intent flag carried for the admin calendar UI.
//  CreatedAt/UpdatedAt – timestamps assigned by the database.
type AvailabilityPeriod struct {
	ID          string    `json:"id"`
	ApartmentID string    `json:"apartment_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
