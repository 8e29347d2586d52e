package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampedPrincipalIndex(t *testing.T) {
	imgs := ImageList{"a.jpg", "b.jpg", "c.jpg"}

	t.Run("in range", func(t *testing.T) {
		a := Apartment{Images: imgs, PrincipalImageIndex: 1}
		assert.Equal(t, 1, a.ClampedPrincipalIndex())
		assert.Equal(t, "b.jpg", a.PrincipalImage())
	})

	t.Run("negative falls back to first", func(t *testing.T) {
		a := Apartment{Images: imgs, PrincipalImageIndex: -5}
		assert.Equal(t, 0, a.ClampedPrincipalIndex())
		assert.Equal(t, "a.jpg", a.PrincipalImage())
	})

	t.Run("past the end falls back to last", func(t *testing.T) {
		a := Apartment{Images: imgs, PrincipalImageIndex: 99}
		assert.Equal(t, 2, a.ClampedPrincipalIndex())
		assert.Equal(t, "c.jpg", a.PrincipalImage())
	})

	t.Run("no images", func(t *testing.T) {
		a := Apartment{PrincipalImageIndex: 3}
		assert.Equal(t, 0, a.ClampedPrincipalIndex())
		assert.Equal(t, "", a.PrincipalImage())
	})
}

func TestHasAmenity(t *testing.T) {
	// Values arrive as float64 after JSON decoding, but int is accepted for
	// maps built in code.
	m := CharacteristicMap{
		"wifi":     true,
		"pool":     false,
		"bedrooms": float64(2),
		"garage":   float64(0),
		"floors":   3,
		"view":     "sea",
		"notes":    "",
		"weird":    []any{"x"},
	}

	assert.True(t, m.HasAmenity("wifi"))
	assert.False(t, m.HasAmenity("pool"))
	assert.True(t, m.HasAmenity("bedrooms"))
	assert.False(t, m.HasAmenity("garage"))
	assert.True(t, m.HasAmenity("floors"))
	assert.True(t, m.HasAmenity("view"))
	assert.False(t, m.HasAmenity("notes"))
	assert.False(t, m.HasAmenity("weird"))
	assert.False(t, m.HasAmenity("missing"))
	assert.False(t, CharacteristicMap(nil).HasAmenity("wifi"))
}

func TestJSONColumnScan(t *testing.T) {
	t.Run("image list round trip", func(t *testing.T) {
		var l ImageList
		assert.NoError(t, l.Scan([]byte(`["x.jpg","y.jpg"]`)))
		assert.Equal(t, ImageList{"x.jpg", "y.jpg"}, l)

		v, err := l.Value()
		assert.NoError(t, err)
		assert.JSONEq(t, `["x.jpg","y.jpg"]`, v.(string))
	})

	t.Run("nil column leaves zero value", func(t *testing.T) {
		var m CharacteristicMap
		assert.NoError(t, m.Scan(nil))
		assert.Nil(t, m)
	})

	t.Run("nil map serializes as empty object", func(t *testing.T) {
		v, err := CharacteristicMap(nil).Value()
		assert.NoError(t, err)
		assert.Equal(t, "{}", v)
	})

	t.Run("string source", func(t *testing.T) {
		var m CharacteristicMap
		assert.NoError(t, m.Scan(`{"wifi":true}`))
		assert.True(t, m.HasAmenity("wifi"))
	})
}
