package mail

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
)

// LogMailer is the development mailer. It logs the envelope (never the
// body, which carries invite links) and keeps every message in memory.
type LogMailer struct {
	mu   sync.Mutex
	sent []Message
}

var _ Mailer = (*LogMailer)(nil)

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()

	slogx.FromContext(ctx).Info("email captured",
		slogx.Module("mail"),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

// Sent returns a copy of the captured messages.
func (m *LogMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
