package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	b := Booking{CheckIn: day(10), CheckOut: day(14)}
	assert.Equal(t, 4, b.Nights())

	one := Booking{CheckIn: day(10), CheckOut: day(11)}
	assert.Equal(t, 1, one.Nights())

	inverted := Booking{CheckIn: day(14), CheckOut: day(10)}
	assert.Negative(t, inverted.Nights())
}
