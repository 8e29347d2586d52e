package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mendoza-apartments/booking-api/internal/model"
	"github.com/mendoza-apartments/booking-api/internal/repository"
)

// PublicHandler exposes the unauthenticated browse and search endpoints.
type PublicHandler struct {
	Apartments *repository.ApartmentRepo
}

// NewPublicHandler constructs a PublicHandler and panics on a nil repository.
func NewPublicHandler(apartments *repository.ApartmentRepo) *PublicHandler {
	if apartments == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Apartments: apartments}
}

// apartmentView decorates an apartment with its resolved cover image, so
// clients never have to interpret the raw principal index themselves.
type apartmentView struct {
	model.Apartment
	PrincipalImage string `json:"principal_image"`
}

func viewOf(a model.Apartment) apartmentView {
	return apartmentView{Apartment: a, PrincipalImage: a.PrincipalImage()}
}

func viewsOf(items []model.Apartment) []apartmentView {
	out := make([]apartmentView, 0, len(items))
	for _, a := range items {
		out = append(out, viewOf(a))
	}
	return out
}

// ListApartments handles GET /v1/apartments and returns all published
// listings, newest first.
func (h *PublicHandler) ListApartments(c echo.Context) error {
	items, err := h.Apartments.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": viewsOf(items)})
}

// GetApartment handles GET /v1/apartments/:id for published listings only.
func (h *PublicHandler) GetApartment(c echo.Context) error {
	a, err := h.Apartments.GetActiveByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, viewOf(*a))
}

// SearchApartments handles GET /v1/search/apartments.  Query parameters:
// check_in/check_out (YYYY-MM-DD, both required for date filtering), guests
// (default 1) and amenities (comma-separated characteristic keys).
//
// A failure of the primary listing query is answered with an empty result
// set rather than an error: showing nothing is preferred over showing
// apartments whose availability could not be established.
func (h *PublicHandler) SearchApartments(c echo.Context) error {
	guests, _ := strconv.Atoi(c.QueryParam("guests"))
	if guests < 1 {
		guests = 1
	}

	q := repository.SearchQuery{Guests: guests}

	checkIn, okIn := parseDate(c.QueryParam("check_in"))
	checkOut, okOut := parseDate(c.QueryParam("check_out"))
	if okIn && okOut {
		q.CheckIn = &checkIn
		q.CheckOut = &checkOut
	}

	if raw := strings.TrimSpace(c.QueryParam("amenities")); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				q.Amenities = append(q.Amenities, k)
			}
		}
	}

	items, err := h.Apartments.Search(c.Request().Context(), q)
	if err != nil {
		log.Printf("search: listing query failed: %v", err)
		return c.JSON(http.StatusOK, echo.Map{"items": []apartmentView{}})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": viewsOf(items)})
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
