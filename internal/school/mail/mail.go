// Package mail delivers transactional email for schools. The invite flow only
// depends on the Mailer interface; delivery failures are reported to the
// caller, which decides whether they matter.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

var ErrNoRecipient = errors.New("mail: message has no recipient")

// Message is a single rendered email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends rendered messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Invite holds what an invitation email needs. Link carries the raw secret
// and must never be logged.
type Invite struct {
	To         string
	Name       string
	SchoolName string
	Role       string
	Link       string
	ExpiresAt  time.Time
}

const inviteSubject = "Te han invitado a %s"

var inviteText = texttemplate.Must(texttemplate.New("invite.txt").Parse(
	`Hola{{if .Name}} {{.Name}}{{end}},

{{.SchoolName}} te ha invitado a unirte como {{.Role}}.

Acepta la invitación aquí:
{{.Link}}

El enlace caduca el {{.ExpiresAt.Format "02/01/2006"}}.
`))

var inviteHTML = htmltemplate.Must(htmltemplate.New("invite.html").Parse(
	`<p>Hola{{if .Name}} {{.Name}}{{end}},</p>
<p><strong>{{.SchoolName}}</strong> te ha invitado a unirte como {{.Role}}.</p>
<p><a href="{{.Link}}">Aceptar invitación</a></p>
<p>El enlace caduca el {{.ExpiresAt.Format "02/01/2006"}}.</p>
`))

// InviteMessage renders the invitation email.
func InviteMessage(inv Invite) (Message, error) {
	if inv.To == "" {
		return Message{}, ErrNoRecipient
	}

	var text, html bytes.Buffer
	if err := inviteText.Execute(&text, inv); err != nil {
		return Message{}, fmt.Errorf("render invite text: %w", err)
	}
	if err := inviteHTML.Execute(&html, inv); err != nil {
		return Message{}, fmt.Errorf("render invite html: %w", err)
	}

	return Message{
		To:      inv.To,
		ToName:  inv.Name,
		Subject: fmt.Sprintf(inviteSubject, inv.SchoolName),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
