package mailer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mendoza-apartments/booking-api/internal/model"
)

func bookingFixture() (*model.Booking, *model.Apartment) {
	b := &model.Booking{
		ID:          "b-1",
		ApartmentID: "a-1",
		GuestName:   "Ana Perez",
		GuestEmail:  "ana@example.com",
		CheckIn:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalGuests: 2,
		TotalPrice:  480,
		Status:      model.BookingPending,
	}
	apt := &model.Apartment{
		ID:           "a-1",
		Title:        "Loft Centro",
		Address:      "Av. San Martin 100",
		ContactEmail: "owner@example.com",
	}
	return b, apt
}

func TestDispatchIndependentOutcomes(t *testing.T) {
	owner := Message{To: "owner@example.com"}
	guest := Message{To: "guest@example.com"}

	send := func(fail map[string]bool) SendFunc {
		var mu sync.Mutex
		return func(m Message) error {
			mu.Lock()
			defer mu.Unlock()
			if fail[m.To] {
				return errors.New("relay refused")
			}
			return nil
		}
	}

	t.Run("both succeed", func(t *testing.T) {
		res := Dispatch(send(nil), owner, guest)
		assert.Equal(t, Result{OwnerSent: true, GuestSent: true}, res)
	})

	t.Run("owner failure does not stop guest", func(t *testing.T) {
		res := Dispatch(send(map[string]bool{"owner@example.com": true}), owner, guest)
		assert.Equal(t, Result{OwnerSent: false, GuestSent: true}, res)
	})

	t.Run("guest failure does not stop owner", func(t *testing.T) {
		res := Dispatch(send(map[string]bool{"guest@example.com": true}), owner, guest)
		assert.Equal(t, Result{OwnerSent: true, GuestSent: false}, res)
	})

	t.Run("both fail", func(t *testing.T) {
		res := Dispatch(send(map[string]bool{"owner@example.com": true, "guest@example.com": true}), owner, guest)
		assert.Equal(t, Result{}, res)
	})
}

func TestDispatchWaitsForBoth(t *testing.T) {
	var mu sync.Mutex
	sent := 0
	slow := func(Message) error {
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		sent++
		mu.Unlock()
		return nil
	}
	res := Dispatch(slow, Message{To: "a"}, Message{To: "b"})
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, sent)
	assert.True(t, res.OwnerSent)
	assert.True(t, res.GuestSent)
}

func TestBuildBookingEmails(t *testing.T) {
	m := New("smtp.example.com", "587", "noreply@example.com", "secret", "inbox@example.com")
	b, apt := bookingFixture()

	owner, guest := m.BuildBookingEmails(b, apt)

	assert.Equal(t, "owner@example.com", owner.To)
	assert.Contains(t, owner.Subject, "Loft Centro")
	assert.Contains(t, owner.HTML, "Ana Perez")
	assert.Contains(t, owner.HTML, "2026-03-10")
	assert.Contains(t, owner.HTML, "480.00")

	assert.Equal(t, "ana@example.com", guest.To)
	assert.Contains(t, guest.HTML, "2026-03-14")
	assert.Contains(t, guest.HTML, "pending confirmation")
}

func TestBuildBookingEmailsFallsBackToNotifyInbox(t *testing.T) {
	m := New("smtp.example.com", "587", "noreply@example.com", "secret", "inbox@example.com")
	b, apt := bookingFixture()
	apt.ContactEmail = ""

	owner, _ := m.BuildBookingEmails(b, apt)
	assert.Equal(t, "inbox@example.com", owner.To)
}
