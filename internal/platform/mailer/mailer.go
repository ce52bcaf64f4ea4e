// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

// Package mailer sends outbound notification mail through an SMTP relay.
//
// # Architecture
//
// The mailer is a thin submission client. It does not queue or retry;
// callers decide whether a failed notification is fatal (it never is for
// document completion, where the error is logged and swallowed).
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// submitTimeout bounds a single SMTP submission.
const submitTimeout = 15 * time.Second

// Mailer submits messages to a configured SMTP relay.
type Mailer struct {
	addr     string
	username string
	password string
	from     string
	logger   *slog.Logger
}

// New creates a Mailer pointed at host:port.
//
// # Parameters
//   - host, port: SMTP relay address.
//   - username, password: PLAIN credentials; empty username disables auth.
//   - from: envelope and header sender address.
//   - logger: structured logger for submission events.
func New(host string, port int, username, password, from string, logger *slog.Logger) *Mailer {
	return &Mailer{
		addr:     fmt.Sprintf("%s:%d", host, port),
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// Send submits a plain-text message to a single recipient.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	message := m.buildMessage(to, subject, body)

	done := make(chan error, 1)
	go func() {
		done <- m.submit(to, message)
	}()

	// emersion/go-smtp's dial helpers don't take a context; bound the
	// submission with our own deadline instead.
	timer := time.NewTimer(submitTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mailer: submission to %s failed: %w", to, err)
		}
		m.logger.Info("notification_mail_sent", slog.String("to", to), slog.String("subject", subject))
		return nil
	case <-timer.C:
		return fmt.Errorf("mailer: submission to %s timed out", to)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// submit performs the actual STARTTLS submission.
func (m *Mailer) submit(to string, message string) error {
	var auth sasl.Client
	if m.username != "" {
		auth = sasl.NewPlainClient("", m.username, m.password)
	}

	client, err := smtp.DialStartTLS(m.addr, nil)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	return client.SendMail(m.from, []string{to}, strings.NewReader(message))
}

// buildMessage assembles an RFC 5322 message with UTF-8 headers.
func (m *Mailer) buildMessage(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}
