// Package mail sends e-mails with attachments via SMTP.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"
)

var (
	ErrRecipientMissing = errors.New("the recipient e-mail address must be set")
	ErrRecipientInvalid = errors.New("the recipient e-mail address is invalid")
	ErrNotConfigured    = errors.New("sending e-mails is not configured on this server")
)

// Attachment is a file attached to a message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is an e-mail to be sent.
type Message struct {
	From        string
	To          string
	Subject     string
	Text        string
	Attachments []Attachment
}

// Sender sends messages and returns the ID of the sent message.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}

// SMTP sends messages via an SMTP server.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Configured reports if a host is set.
func (s SMTP) Configured() bool {
	return s.Host != ""
}

// Send delivers the message with a freshly generated Message-ID.
func (s SMTP) Send(ctx context.Context, m Message) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	msg, id, err := s.build(m)
	if err != nil {
		return "", err
	}

	opts := []gomail.Option{
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}

	if s.Port > 0 {
		opts = append(opts, gomail.WithPort(s.Port))
	}

	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}

	client, err := gomail.NewClient(s.Host, opts...)
	if err != nil {
		return "", fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("sending mail: %w", err)
	}

	log.Info().Str("message-id", id).Str("host", s.Host).Msg("sent e-mail")
	return id, nil
}

// build converts the message into a go-mail message.
func (s SMTP) build(m Message) (*gomail.Msg, string, error) {
	if strings.TrimSpace(m.To) == "" {
		return nil, "", ErrRecipientMissing
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, "", fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(m.To); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrRecipientInvalid, err)
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Text)

	for _, a := range m.Attachments {
		err := msg.AttachReader(a.Name, bytes.NewReader(a.Data), gomail.WithFileContentType(gomail.ContentType(a.ContentType)))
		if err != nil {
			return nil, "", fmt.Errorf("attaching %s: %w", a.Name, err)
		}
	}

	id := fmt.Sprintf("%s@%s", uuid.New().String(), s.Host)
	msg.SetMessageIDWithValue(id)

	return msg, fmt.Sprintf("<%s>", id), nil
}
