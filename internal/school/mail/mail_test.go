package mail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInviteMessage(t *testing.T) {
	msg, err := InviteMessage(Invite{
		To:         "ana@example.com",
		Name:       "Ana",
		SchoolName: "Autoescuela Sol",
		Role:       "student",
		Link:       "https://app.example.com/invitacion/abc",
		ExpiresAt:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", msg.To)
	require.Equal(t, "Te han invitado a Autoescuela Sol", msg.Subject)
	require.Contains(t, msg.Text, "https://app.example.com/invitacion/abc")
	require.Contains(t, msg.Text, "15/03/2026")
	require.Contains(t, msg.HTML, `href="https://app.example.com/invitacion/abc"`)
	require.Contains(t, msg.HTML, "Hola Ana")

	_, err = InviteMessage(Invite{SchoolName: "x"})
	require.ErrorIs(t, err, ErrNoRecipient)
}

func TestInviteMessage_EscapesHTML(t *testing.T) {
	msg, err := InviteMessage(Invite{
		To:         "a@example.com",
		SchoolName: "<script>alert(1)</script>",
		Link:       "https://app.example.com/invitacion/x",
	})
	require.NoError(t, err)
	require.NotContains(t, msg.HTML, "<script>")
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer()
	require.NoError(t, m.Send(context.Background(), Message{To: "a@example.com", Subject: "hi"}))
	require.ErrorIs(t, m.Send(context.Background(), Message{}), ErrNoRecipient)

	sent := m.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "hi", sent[0].Subject)
}

func TestSendGridMailer_Prepare(t *testing.T) {
	m := NewSendGridMailer("key", "Autoescuela", "no-reply@example.com", "[Autoescuela] ")
	out := m.prepare(Message{To: "ana@example.com", ToName: "Ana", Subject: "hola", Text: "t", HTML: "<p>h</p>"})

	require.Equal(t, "no-reply@example.com", out.From.Address)
	require.Len(t, out.Personalizations, 1)
	require.Equal(t, "[Autoescuela] hola", out.Personalizations[0].Subject)
	require.Equal(t, "ana@example.com", out.Personalizations[0].To[0].Address)
	require.Len(t, out.Content, 2)

	require.ErrorIs(t, m.Send(context.Background(), Message{}), ErrNoRecipient)
}
