package handler

import (
	"io"
	"log"
	"net/http"
	"path"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mendoza-apartments/booking-api/internal/media"
	"github.com/mendoza-apartments/booking-api/internal/repository"
)

// UploadImage handles POST /v1/admin/apartments/:id/images.  The multipart
// part named "image" is validated by metadata, run through the best-effort
// optimizer and stored under apartments/<id>/.  Multiple files in one admin
// session arrive as separate sequential requests; there is no parallel
// fan-out here.
func (h *AdminHandler) UploadImage(c echo.Context) error {
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "image storage not configured"})
	}

	ctx := c.Request().Context()
	apartmentID := c.Param("id")
	if _, err := h.Apartments.GetByID(ctx, apartmentID); err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
	}

	// Validation is metadata-only and cheap; do it before reading the body.
	if err := media.Validate(fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read upload"})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read upload"})
	}

	file := &media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}
	optimized, err := media.Optimize(file, h.Cfg.ImageMaxBytes)
	if err != nil {
		// Only HEIC conversion failures reach here; the message carries
		// the remediation for the admin.
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	key := path.Join("apartments", apartmentID, uuid.NewString()+path.Ext(optimized.Name))
	if _, err := h.Store.Upload(ctx, key, optimized.ContentType, optimized.Data); err != nil {
		log.Printf("admin: upload for apartment %s failed: %v", apartmentID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	a, err := h.Apartments.AppendImage(ctx, apartmentID, h.Store.PublicURL(key))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not attach image"})
	}
	return c.JSON(http.StatusCreated, a)
}

// DeleteImage handles DELETE /v1/admin/apartments/:id/images/:index.  The
// stored object is removed best-effort after the listing row is updated;
// the principal image index is clamped by the repository.
func (h *AdminHandler) DeleteImage(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image index"})
	}

	ctx := c.Request().Context()
	apartmentID := c.Param("id")

	before, err := h.Apartments.GetByID(ctx, apartmentID)
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if index >= len(before.Images) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image index out of range"})
	}
	removedURL := before.Images[index]

	a, err := h.Apartments.RemoveImage(ctx, apartmentID, index)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not remove image"})
	}

	if h.Store != nil {
		if p := h.Store.PathFromURL(removedURL); p != "" {
			if err := h.Store.Remove(ctx, []string{p}); err != nil {
				log.Printf("admin: object cleanup for %s failed: %v", removedURL, err)
			}
		}
	}
	return c.JSON(http.StatusOK, a)
}

// SetPrincipalImage handles PUT /v1/admin/apartments/:id/principal-image.
// The index is stored as supplied; readers clamp on access.
func (h *AdminHandler) SetPrincipalImage(c echo.Context) error {
	var body struct {
		Index int `json:"index"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	err := h.Apartments.SetPrincipalImage(c.Request().Context(), c.Param("id"), body.Index)
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "principal_image_index": body.Index})
}
