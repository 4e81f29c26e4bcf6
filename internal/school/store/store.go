package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it and expose one typed repository per entity.
// Repositories obtained from a Tx run inside that transaction.
type Store interface {
	Schools() Schools
	Memberships() Memberships
	Invites() Invites

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction. It commits when fn returns nil
	// and rolls back otherwise. Inside fn only use the tx argument.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Schools interface {
	// CreateSchool inserts a school; id is a UUID chosen by the caller.
	CreateSchool(ctx context.Context, s domain.School) error

	GetSchoolByID(ctx context.Context, id string) (domain.School, error)

	// GetSchoolByStripeCustomer resolves billing webhooks back to a tenant.
	GetSchoolByStripeCustomer(ctx context.Context, customerID string) (domain.School, error)

	// UpdatePlan sets plan_status and, when customerID is non-empty, the
	// billing customer id.
	UpdatePlan(ctx context.Context, schoolID string, status domain.PlanStatus, customerID string, at time.Time) error
}

type Memberships interface {
	GetMembership(ctx context.Context, schoolID, userID string) (domain.Membership, error)

	// ActivateMembership inserts an active membership, or reactivates an
	// inactive one with the new role. It returns ErrAlreadyExists when the
	// user is already active in the school.
	ActivateMembership(ctx context.Context, m domain.Membership) error

	// ListMemberships returns every membership of a school, oldest first.
	ListMemberships(ctx context.Context, schoolID string) ([]domain.Membership, error)
}

type Invites interface {
	// CreateInvite inserts an invite. A token_hash collision returns ErrAlreadyExists.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// DeleteInvitesForRecipient removes every invite, used or not, for
	// (schoolID, recipient) and reports how many rows went.
	DeleteInvitesForRecipient(ctx context.Context, schoolID, recipient string) (int64, error)

	// GetInviteByTokenHash returns the invite regardless of used/expired state
	// so callers can tell those cases apart.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	GetInviteByID(ctx context.Context, schoolID, id string) (domain.Invite, error)

	// ListInvitesForRecipient returns all invites for (schoolID, recipient).
	ListInvitesForRecipient(ctx context.Context, schoolID, recipient string) ([]domain.Invite, error)

	// ListPendingInvites returns unused invites of a school expiring after now,
	// newest first.
	ListPendingInvites(ctx context.Context, schoolID string, now time.Time) ([]domain.Invite, error)

	// ListPendingByRecipients is ListPendingInvites restricted to recipients.
	ListPendingByRecipients(ctx context.Context, schoolID string, recipients []string, now time.Time) ([]domain.Invite, error)

	// MarkInviteUsed sets used_at/used_by only if the invite is still unused.
	// It returns ErrNotFound when no unused invite with that id exists, which
	// is how a lost redemption race surfaces.
	MarkInviteUsed(ctx context.Context, inviteID, userID string, at time.Time) error

	// DeleteInvite removes one invite of a school.
	DeleteInvite(ctx context.Context, schoolID, id string) error

	// DeleteExpiredInvites removes invites whose expires_at is before cutoff.
	DeleteExpiredInvites(ctx context.Context, cutoff time.Time) (int64, error)
}
