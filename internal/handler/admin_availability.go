package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mendoza-apartments/booking-api/internal/model"
	"github.com/mendoza-apartments/booking-api/internal/repository"
)

type availabilityReq struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsAvailable *bool  `json:"is_available"`
}

// CreateAvailability handles POST /v1/admin/apartments/:id/availability.
// Periods default to blocked (is_available false), which is the common case
// of the owner reserving dates off-platform.
func (h *AdminHandler) CreateAvailability(c echo.Context) error {
	var req availabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	start, okStart := parseDate(req.StartDate)
	end, okEnd := parseDate(req.EndDate)
	if !okStart || !okEnd {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date and end_date must be YYYY-MM-DD dates"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must not be before start_date"})
	}

	ctx := c.Request().Context()
	if _, err := h.Apartments.GetByID(ctx, c.Param("id")); err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	p := &model.AvailabilityPeriod{
		ApartmentID: c.Param("id"),
		StartDate:   start,
		EndDate:     end,
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}

	if err := h.Availability.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create period"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListAvailability handles GET /v1/admin/apartments/:id/availability.
func (h *AdminHandler) ListAvailability(c echo.Context) error {
	items, err := h.Availability.ListByApartment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteAvailability handles DELETE /v1/admin/availability/:id.
func (h *AdminHandler) DeleteAvailability(c echo.Context) error {
	err := h.Availability.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrPeriodNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "availability period not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
