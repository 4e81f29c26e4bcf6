package domain

import (
	"strings"
	"time"
)

// shareCodeDomain marks recipients that are join codes rather than emails.
const shareCodeDomain = "@code"

type Invite struct {
	ID        string // ULID
	SchoolID  string
	Recipient string // lowercased email, or "<CODE>@code" for share codes
	Role      Role
	TokenHash string // SHA-256 hex of the secret; the secret itself is never stored
	InvitedBy string
	ExpiresAt time.Time
	UsedAt    *time.Time // nil while pending
	UsedBy    string     // empty while pending
	CreatedAt time.Time
}

func (i Invite) IsUsed() bool { return i.UsedAt != nil }

// IsExpired reports whether now is at or past ExpiresAt.
func (i Invite) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsPending reports whether the invite can still be redeemed at now.
func (i Invite) IsPending(now time.Time) bool {
	return !i.IsUsed() && !i.IsExpired(now)
}

func (i Invite) IsShareCode() bool {
	return strings.HasSuffix(i.Recipient, shareCodeDomain)
}

// ShareCodeRecipient builds the placeholder recipient for a join code.
func ShareCodeRecipient(code string) string {
	return code + shareCodeDomain
}
