// Package mailer sends booking notification emails over SMTP.  Email is a
// side effect of booking creation, not part of its transactional boundary:
// the booking row is persisted whether or not any mail goes out, and the
// owner and guest messages succeed or fail independently.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"sync"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// SendFunc delivers one message.  Tests substitute a stub.
type SendFunc func(Message) error

// Result reports the independent outcomes of the two booking emails.
type Result struct {
	OwnerSent bool `json:"owner_sent"`
	GuestSent bool `json:"guest_sent"`
}

// Mailer sends mail through an SMTP relay using a sender address and app
// password from the environment.
type Mailer struct {
	host       string
	port       string
	from       string
	password   string
	OwnerInbox string
}

// New builds a Mailer.  ownerInbox is the address that receives the owner
// copy of every booking request.
func New(host, port, from, password, ownerInbox string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password, OwnerInbox: ownerInbox}
}

// Send delivers one message via SMTP with PLAIN auth.  The net/smtp client
// upgrades to STARTTLS when the server offers it.
func (m *Mailer) Send(msg Message) error {
	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, msg.To, msg.Subject, msg.HTML)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{msg.To}, []byte(body)); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

// Dispatch sends the owner and guest messages as two independent tasks and
// waits for both.  A failure on one never cancels the other and is logged,
// not returned; callers read the per-recipient booleans.
func Dispatch(send SendFunc, owner, guest Message) Result {
	var (
		res Result
		wg  sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := send(owner); err != nil {
			log.Printf("mailer: owner notification failed: %v", err)
			return
		}
		res.OwnerSent = true
	}()
	go func() {
		defer wg.Done()
		if err := send(guest); err != nil {
			log.Printf("mailer: guest confirmation failed: %v", err)
			return
		}
		res.GuestSent = true
	}()
	wg.Wait()
	return res
}
