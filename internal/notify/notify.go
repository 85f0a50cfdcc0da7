// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify sends the studio an e-mail when a visitor submits the
// contact form. Delivery goes through Resend and runs in the background so
// a slow or failing mail provider never affects the bridge response.
package notify

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	"github.com/resendlabs/resend-go"

	"datcloude/internal/models"
)

// sendFunc delivers one prepared e-mail.
type sendFunc func(req *resend.SendEmailRequest) error

// Notifier delivers new-lead e-mails to the studio address.
type Notifier struct {
	send sendFunc
	from string
	to   string
	wg   sync.WaitGroup
}

// New returns a Notifier backed by Resend, or nil when apiKey is empty so
// the bridge can run without mail configured. A nil *Notifier is safe to use.
func New(apiKey, from, to string) *Notifier {
	if apiKey == "" || to == "" {
		return nil
	}
	client := resend.NewClient(apiKey)
	return &Notifier{
		send: func(req *resend.SendEmailRequest) error {
			_, err := client.Emails.Send(req)
			return err
		},
		from: from,
		to:   to,
	}
}

// NewLead queues a notification for msg and returns immediately.
func (n *Notifier) NewLead(msg models.Message) {
	if n == nil {
		return
	}
	req := leadEmail(n.from, n.to, msg)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(req); err != nil {
			slog.Error("lead notification failed", "message_id", msg.ID, "error", err)
			return
		}
		slog.Info("lead notification sent", "message_id", msg.ID, "to", n.to)
	}()
}

// Wait blocks until every queued notification has finished. Called on
// shutdown so in-flight mail is not dropped.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

// leadEmail builds the e-mail for a contact-form submission. The visitor's
// address is set as Reply-To so the studio can answer directly.
func leadEmail(from, to string, msg models.Message) *resend.SendEmailRequest {
	subject := "New enquiry"
	if msg.Service != "" {
		subject = fmt.Sprintf("New enquiry: %s", msg.Service)
	}

	var b strings.Builder
	b.WriteString("<h2>New message from the website</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.Email))
	if msg.Service != "" {
		fmt.Fprintf(&b, "<p><strong>Service:</strong> %s</p>", html.EscapeString(msg.Service))
	}
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Content), "\n", "<br>"))

	req := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    b.String(),
	}
	if msg.Email != "" {
		req.ReplyTo = msg.Email
	}
	return req
}
