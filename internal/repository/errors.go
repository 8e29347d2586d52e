// Package repository implements raw-SQL data access for apartments,
// bookings, availability periods and admin accounts.  Sentinel errors let
// handlers map failure scenarios to HTTP responses without inspecting
// driver-specific error strings.
package repository

import "errors"

// ErrInvalidStatus is returned when a booking status update names a value
// outside {pending, confirmed, cancelled}.  Handlers translate this into an
// HTTP 400 response.
var ErrInvalidStatus = errors.New("invalid booking status")
