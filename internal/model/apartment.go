package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ImageList is an ordered list of image URLs stored as a JSON column.
type ImageList []string

// CharacteristicMap is the open-ended amenity/attribute map of an apartment
// (e.g. wifi, bedrooms, pool), stored as a JSON column.  There is no fixed
// schema: new keys can appear at any time and readers must treat a missing
// key as the amenity being absent.
type CharacteristicMap map[string]any

// Apartment represents a rental unit listing.  It corresponds to a row in
// the `apartments` table.
//
// Fields:
//  ID                  – opaque UUID identifier.
//  Title               – listing headline.
//  Description         – free-form description text.
//  Address             – street address of the unit.
//  Latitude/Longitude  – optional geographic coordinates.
//  MapURL              – optional map-provider link.
//  PricePerNight       – nightly rate, positive.
//  MaxGuests           – maximum guest capacity, positive.
//  IsActive            – publish toggle; inactive listings are hidden.
//  Images              – ordered image URLs.
//  PrincipalImageIndex – index of the cover image.  Stored denormalized and
//                        can drift out of range when images are removed, so
//                        every reader must go through PrincipalImage().
//  Characteristics     – open-ended amenity map.
//  ContactEmail        – owner inbox for booking notifications (required).
//  ContactPhone        – optional phone number.
//  WhatsApp            – optional WhatsApp number.
//  CreatedAt/UpdatedAt – timestamps assigned by the database.
type Apartment struct {
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	Address             string            `json:"address"`
	Latitude            *float64          `json:"latitude,omitempty"`
	Longitude           *float64          `json:"longitude,omitempty"`
	MapURL              *string           `json:"map_url,omitempty"`
	PricePerNight       float64           `json:"price_per_night"`
	MaxGuests           int               `json:"max_guests"`
	IsActive            bool              `json:"is_active"`
	Images              ImageList         `json:"images"`
	PrincipalImageIndex int               `json:"principal_image_index"`
	Characteristics     CharacteristicMap `json:"characteristics"`
	ContactEmail        string            `json:"contact_email"`
	ContactPhone        *string           `json:"contact_phone,omitempty"`
	WhatsApp            *string           `json:"whatsapp,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// PrincipalImage resolves the cover image URL, clamping the stored index
// into the valid range.  Negative indexes fall back to the first image and
// indexes past the end fall back to the last one.  An apartment without
// images yields an empty string.
func (a *Apartment) PrincipalImage() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[a.ClampedPrincipalIndex()]
}

// ClampedPrincipalIndex returns the principal image index clamped to
// [0, len(Images)-1].  Returns 0 for an empty image list.
func (a *Apartment) ClampedPrincipalIndex() int {
	if len(a.Images) == 0 {
		return 0
	}
	idx := a.PrincipalImageIndex
	if idx < 0 {
		return 0
	}
	if idx >= len(a.Images) {
		return len(a.Images) - 1
	}
	return idx
}

// HasAmenity reports whether the given characteristic key is present and
// truthy.  Booleans must be true; numbers must be non-zero; strings must be
// non-empty.  A missing key counts as not having the amenity.
func (m CharacteristicMap) HasAmenity(key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	default:
		return false
	}
}

// Value implements driver.Valuer so the list can be written to a JSON column.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading the JSON column.
func (l *ImageList) Scan(src any) error {
	return scanJSON(src, l)
}

// Value implements driver.Valuer so the map can be written to a JSON column.
func (m CharacteristicMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading the JSON column.
func (m *CharacteristicMap) Scan(src any) error {
	return scanJSON(src, m)
}

func scanJSON(src, dst any) error {
	switch t := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(t) == 0 {
			return nil
		}
		return json.Unmarshal(t, dst)
	case string:
		if t == "" {
			return nil
		}
		return json.Unmarshal([]byte(t), dst)
	default:
		return errors.New("model: unsupported JSON column source type")
	}
}
