package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mendoza-apartments/booking-api/internal/model"
	"github.com/mendoza-apartments/booking-api/internal/repository"
)

type apartmentReq struct {
	Title               string                  `json:"title"`
	Description         string                  `json:"description"`
	Address             string                  `json:"address"`
	Latitude            *float64                `json:"latitude"`
	Longitude           *float64                `json:"longitude"`
	MapURL              *string                 `json:"map_url"`
	PricePerNight       float64                 `json:"price_per_night"`
	MaxGuests           int                     `json:"max_guests"`
	IsActive            *bool                   `json:"is_active"`
	Characteristics     model.CharacteristicMap `json:"characteristics"`
	ContactEmail        string                  `json:"contact_email"`
	ContactPhone        *string                 `json:"contact_phone"`
	WhatsApp            *string                 `json:"whatsapp"`
	PrincipalImageIndex *int                    `json:"principal_image_index"`
}

func (r *apartmentReq) validate() (string, bool) {
	r.Title = strings.TrimSpace(r.Title)
	r.ContactEmail = strings.ToLower(strings.TrimSpace(r.ContactEmail))
	switch {
	case r.Title == "":
		return "title is required", false
	case r.PricePerNight <= 0:
		return "price_per_night must be positive", false
	case r.MaxGuests <= 0:
		return "max_guests must be positive", false
	case r.ContactEmail == "":
		return "contact_email is required", false
	}
	return "", true
}

// CreateApartment handles POST /v1/admin/apartments.
func (h *AdminHandler) CreateApartment(c echo.Context) error {
	var req apartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	a := &model.Apartment{
		Title:           req.Title,
		Description:     req.Description,
		Address:         req.Address,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		MapURL:          req.MapURL,
		PricePerNight:   req.PricePerNight,
		MaxGuests:       req.MaxGuests,
		IsActive:        true,
		Images:          model.ImageList{},
		Characteristics: req.Characteristics,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		WhatsApp:        req.WhatsApp,
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if a.Characteristics == nil {
		a.Characteristics = model.CharacteristicMap{}
	}

	if err := h.Apartments.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create apartment"})
	}
	return c.JSON(http.StatusCreated, a)
}

// ListApartments handles GET /v1/admin/apartments and includes unpublished
// listings.
func (h *AdminHandler) ListApartments(c echo.Context) error {
	items, err := h.Apartments.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetApartment handles GET /v1/admin/apartments/:id.
func (h *AdminHandler) GetApartment(c echo.Context) error {
	a, err := h.Apartments.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, a)
}

// UpdateApartment handles PUT /v1/admin/apartments/:id.  Images are managed
// through the dedicated image endpoints and are left untouched here.
func (h *AdminHandler) UpdateApartment(c echo.Context) error {
	var req apartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	a, err := h.Apartments.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	a.Title = req.Title
	a.Description = req.Description
	a.Address = req.Address
	a.Latitude = req.Latitude
	a.Longitude = req.Longitude
	a.MapURL = req.MapURL
	a.PricePerNight = req.PricePerNight
	a.MaxGuests = req.MaxGuests
	a.ContactEmail = req.ContactEmail
	a.ContactPhone = req.ContactPhone
	a.WhatsApp = req.WhatsApp
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if req.Characteristics != nil {
		a.Characteristics = req.Characteristics
	}
	if req.PrincipalImageIndex != nil {
		a.PrincipalImageIndex = *req.PrincipalImageIndex
	}

	if err := h.Apartments.Update(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, a)
}

// SetApartmentActive handles PUT /v1/admin/apartments/:id/active, the
// soft-delete/publish toggle.
func (h *AdminHandler) SetApartmentActive(c echo.Context) error {
	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	err := h.Apartments.SetActive(c.Request().Context(), c.Param("id"), body.IsActive)
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "is_active": body.IsActive})
}

// DeleteApartment handles DELETE /v1/admin/apartments/:id.  Stored photos
// are removed afterwards, best-effort: the row delete is not rolled back
// when object cleanup fails.
func (h *AdminHandler) DeleteApartment(c echo.Context) error {
	ctx := c.Request().Context()
	a, err := h.Apartments.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Apartments.Delete(ctx, a.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	if h.Store != nil && len(a.Images) > 0 {
		paths := make([]string, 0, len(a.Images))
		for _, u := range a.Images {
			if p := h.Store.PathFromURL(u); p != "" {
				paths = append(paths, p)
			}
		}
		if err := h.Store.Remove(ctx, paths); err != nil {
			log.Printf("admin: image cleanup for apartment %s failed: %v", a.ID, err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
