package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mendoza-apartments/booking-api/internal/mailer"
	"github.com/mendoza-apartments/booking-api/internal/model"
	"github.com/mendoza-apartments/booking-api/internal/queue"
	"github.com/mendoza-apartments/booking-api/internal/repository"
	queue_publisher "github.com/mendoza-apartments/booking-api/internal/service"
)

// BookingHandler serves the public booking form endpoint.
type BookingHandler struct {
	Bookings   *repository.BookingRepo
	Apartments *repository.ApartmentRepo
	Mailer     *mailer.Mailer // nil when SMTP is not configured
}

// NewBookingHandler constructs a BookingHandler.  The mailer may be nil, in
// which case booking creation still works and both notification flags come
// back false.
func NewBookingHandler(bookings *repository.BookingRepo, apartments *repository.ApartmentRepo, m *mailer.Mailer) *BookingHandler {
	if bookings == nil || apartments == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Apartments: apartments, Mailer: m}
}

type createBookingReq struct {
	ApartmentID string  `json:"apartment_id"`
	GuestName   string  `json:"guest_name"`
	GuestEmail  string  `json:"guest_email"`
	GuestPhone  string  `json:"guest_phone"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	TotalGuests int     `json:"total_guests"`
	TotalPrice  float64 `json:"total_price"`
	Notes       string  `json:"notes"`
}

// CreateBooking handles POST /v1/bookings.  The booking is persisted with
// status pending; the two notification emails and the broker event are side
// effects whose failures never undo the stored booking.  The total price is
// stored exactly as the client computed it.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	req.GuestName = strings.TrimSpace(req.GuestName)
	req.GuestEmail = strings.ToLower(strings.TrimSpace(req.GuestEmail))
	if req.ApartmentID == "" || req.GuestName == "" || req.GuestEmail == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "apartment_id, guest_name and guest_email are required"})
	}
	if req.TotalGuests < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_guests must be at least 1"})
	}

	checkIn, okIn := parseDate(req.CheckIn)
	checkOut, okOut := parseDate(req.CheckOut)
	if !okIn || !okOut {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out must be YYYY-MM-DD dates"})
	}
	if !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}

	ctx := c.Request().Context()

	apt, err := h.Apartments.GetActiveByID(ctx, req.ApartmentID)
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	b := &model.Booking{
		ApartmentID: apt.ID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalGuests: req.TotalGuests,
		TotalPrice:  req.TotalPrice,
	}
	if p := strings.TrimSpace(req.GuestPhone); p != "" {
		b.GuestPhone = &p
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		b.Notes = &n
	}

	if err := h.Bookings.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	var emails mailer.Result
	if h.Mailer != nil {
		emails = h.Mailer.SendBookingEmails(b, apt)
	}

	// Best-effort broker event for downstream consumers; errors already
	// logged by the publisher.
	_ = queue_publisher.PublishBookingRequested(ctx, queue.BookingRequestedEvent{
		BookingID:     b.ID,
		ApartmentID:   apt.ID,
		ApartmentName: apt.Title,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		CheckIn:       b.CheckIn.Format("2006-01-02"),
		CheckOut:      b.CheckOut.Format("2006-01-02"),
		TotalGuests:   b.TotalGuests,
		TotalPrice:    b.TotalPrice,
		RequestedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"booking": b,
		"emails":  emails,
	})
}
