package handler

import (
	"github.com/mendoza-apartments/booking-api/internal/config"
	"github.com/mendoza-apartments/booking-api/internal/mailer"
	"github.com/mendoza-apartments/booking-api/internal/repository"
	"github.com/mendoza-apartments/booking-api/internal/storage"
)

// AdminHandler bundles the dependencies of the dashboard endpoints:
// listing CRUD, image management, reservation status control and
// availability periods.
type AdminHandler struct {
	Cfg          config.Config
	Apartments   *repository.ApartmentRepo
	Bookings     *repository.BookingRepo
	Availability *repository.AvailabilityRepo
	Store        *storage.ImageStore // nil when object storage is not configured
	Mailer       *mailer.Mailer      // nil when SMTP is not configured
}

// NewAdminHandler constructs an AdminHandler and panics if a repository is
// nil.  Store and Mailer are optional collaborators; endpoints that need
// them answer 503 when they are absent.
func NewAdminHandler(cfg config.Config, apartments *repository.ApartmentRepo, bookings *repository.BookingRepo, availability *repository.AvailabilityRepo, store *storage.ImageStore, m *mailer.Mailer) *AdminHandler {
	if apartments == nil || bookings == nil || availability == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		Cfg:          cfg,
		Apartments:   apartments,
		Bookings:     bookings,
		Availability: availability,
		Store:        store,
		Mailer:       m,
	}
}
