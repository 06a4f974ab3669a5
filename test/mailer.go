package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/fintrack/backend/pkg/mail"
)

// Mailer records messages instead of sending them.
type Mailer struct {
	// Err is returned by Send when it is set
	Err error

	mu       sync.Mutex
	messages []mail.Message
}

// Send records the message and returns a generated message id.
func (m *Mailer) Send(_ context.Context, msg mail.Message) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
	return fmt.Sprintf("<%d@test.example.com>", len(m.messages)), nil
}

// Messages returns all recorded messages.
func (m *Mailer) Messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]mail.Message(nil), m.messages...)
}
