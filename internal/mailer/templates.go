package mailer

import (
	"bytes"
	"html/template"
	"log"

	"github.com/mendoza-apartments/booking-api/internal/model"
)

var ownerTmpl = template.Must(template.New("owner").Parse(`
<h2>New booking request</h2>
<p><strong>{{.Apartment.Title}}</strong> — {{.Apartment.Address}}</p>
<ul>
  <li>Guest: {{.Booking.GuestName}} ({{.Booking.GuestEmail}}{{if .Booking.GuestPhone}}, {{.Booking.GuestPhone}}{{end}})</li>
  <li>Check-in: {{.Booking.CheckIn.Format "2006-01-02"}}</li>
  <li>Check-out: {{.Booking.CheckOut.Format "2006-01-02"}}</li>
  <li>Guests: {{.Booking.TotalGuests}}</li>
  <li>Total: ${{printf "%.2f" .Booking.TotalPrice}}</li>
</ul>
{{if .Booking.Notes}}<p>Notes: {{.Booking.Notes}}</p>{{end}}
<p>Confirm or cancel this request from the dashboard.</p>
`))

var guestTmpl = template.Must(template.New("guest").Parse(`
<h2>We received your booking request</h2>
<p>Hi {{.Booking.GuestName}},</p>
<p>Your request for <strong>{{.Apartment.Title}}</strong> from
{{.Booking.CheckIn.Format "2006-01-02"}} to {{.Booking.CheckOut.Format "2006-01-02"}}
({{.Booking.TotalGuests}} guests, ${{printf "%.2f" .Booking.TotalPrice}} total)
is pending confirmation.</p>
<p>We will contact you at {{.Booking.GuestEmail}} once the owner confirms.</p>
<p>Mendoza Apartments</p>
`))

type emailData struct {
	Booking   *model.Booking
	Apartment *model.Apartment
}

// BuildBookingEmails renders the owner notification and guest confirmation
// for a new booking request.  The owner copy goes to the apartment's contact
// email, falling back to the configured notification inbox when a listing
// has none.
func (m *Mailer) BuildBookingEmails(b *model.Booking, apt *model.Apartment) (owner, guest Message) {
	data := emailData{Booking: b, Apartment: apt}
	ownerTo := apt.ContactEmail
	if ownerTo == "" {
		ownerTo = m.OwnerInbox
	}
	owner = Message{
		To:      ownerTo,
		Subject: "New booking request: " + apt.Title,
		HTML:    render(ownerTmpl, data),
	}
	guest = Message{
		To:      b.GuestEmail,
		Subject: "Your booking request for " + apt.Title,
		HTML:    render(guestTmpl, data),
	}
	return owner, guest
}

// SendBookingEmails renders and dispatches both booking emails.
func (m *Mailer) SendBookingEmails(b *model.Booking, apt *model.Apartment) Result {
	owner, guest := m.BuildBookingEmails(b, apt)
	return Dispatch(m.Send, owner, guest)
}

func render(t *template.Template, data emailData) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Template data is our own structs; an execute failure is a bug,
		// but a broken body should not block the send entirely.
		log.Printf("mailer: render %s failed: %v", t.Name(), err)
	}
	return buf.String()
}
