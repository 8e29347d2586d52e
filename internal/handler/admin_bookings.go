package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mendoza-apartments/booking-api/internal/queue"
	"github.com/mendoza-apartments/booking-api/internal/repository"
	queue_publisher "github.com/mendoza-apartments/booking-api/internal/service"
)

// ListBookings handles GET /v1/admin/bookings.  An optional apartment_id
// query parameter narrows the list to one apartment.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()

	if apartmentID := c.QueryParam("apartment_id"); apartmentID != "" {
		list, err := h.Bookings.ListByApartment(ctx, apartmentID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": list})
	}
	list, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// GetBooking handles GET /v1/admin/bookings/:id.
func (h *AdminHandler) GetBooking(c echo.Context) error {
	b, err := h.Bookings.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, b)
}

// UpdateBookingStatus handles PUT /v1/admin/bookings/:id/status.  Any of the
// three statuses may be set regardless of the current one; confirming is how
// a booking starts blocking search availability.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	before, err := h.Bookings.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	b, err := h.Bookings.UpdateStatus(ctx, before.ID, body.Status)
	if err != nil {
		switch err {
		case repository.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending, confirmed or cancelled"})
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	if b.Status != before.Status {
		_ = queue_publisher.PublishBookingStatusChanged(ctx, queue.BookingStatusChangedEvent{
			BookingID:   b.ID,
			ApartmentID: b.ApartmentID,
			OldStatus:   before.Status,
			NewStatus:   b.Status,
			ChangedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, b)
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	err := h.Bookings.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// PendingBookingCount handles GET /v1/admin/bookings/pending-count and backs
// the dashboard badge.  The window defaults to the last 30 days.
func (h *AdminHandler) PendingBookingCount(c echo.Context) error {
	since := time.Now().AddDate(0, 0, -30)
	n, err := h.Bookings.CountPendingSince(c.Request().Context(), since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"pending": n})
}
