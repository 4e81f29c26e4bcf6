package sqlrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/jmoiron/sqlx"
)

type inviteRow struct {
	ID        string         `db:"id"`
	SchoolID  string         `db:"school_id"`
	Recipient string         `db:"recipient"`
	Role      string         `db:"role"`
	TokenHash string         `db:"token_hash"`
	InvitedBy string         `db:"invited_by"`
	ExpiresAt time.Time      `db:"expires_at"`
	UsedAt    sql.NullTime   `db:"used_at"`
	UsedBy    sql.NullString `db:"used_by"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r inviteRow) domain() domain.Invite {
	return domain.Invite{
		ID:        r.ID,
		SchoolID:  r.SchoolID,
		Recipient: r.Recipient,
		Role:      domain.Role(r.Role),
		TokenHash: r.TokenHash,
		InvitedBy: r.InvitedBy,
		ExpiresAt: r.ExpiresAt.UTC(),
		UsedAt:    timePtr(r.UsedAt),
		UsedBy:    r.UsedBy.String,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func mapInvites(rows []inviteRow) []domain.Invite {
	out := make([]domain.Invite, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out
}

const inviteColumns = `id, school_id, recipient, role, token_hash, invited_by, expires_at, used_at, used_by, created_at`

type invitesRepo struct {
	c conn
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO invites (`+inviteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.SchoolID, inv.Recipient, string(inv.Role), inv.TokenHash, inv.InvitedBy,
		inv.ExpiresAt.UTC(), nullTime(inv.UsedAt), nullString(inv.UsedBy), inv.CreatedAt.UTC(),
	)
	return err
}

func (r *invitesRepo) DeleteInvitesForRecipient(ctx context.Context, schoolID, recipient string) (int64, error) {
	return r.c.exec(ctx,
		`DELETE FROM invites WHERE school_id = ? AND recipient = ?`,
		schoolID, recipient,
	)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	var row inviteRow
	if err := r.c.get(ctx, &row, `SELECT `+inviteColumns+` FROM invites WHERE token_hash = ?`, hash); err != nil {
		return domain.Invite{}, err
	}
	return row.domain(), nil
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, schoolID, id string) (domain.Invite, error) {
	var row inviteRow
	err := r.c.get(ctx, &row,
		`SELECT `+inviteColumns+` FROM invites WHERE school_id = ? AND id = ?`,
		schoolID, id,
	)
	if err != nil {
		return domain.Invite{}, err
	}
	return row.domain(), nil
}

func (r *invitesRepo) ListInvitesForRecipient(ctx context.Context, schoolID, recipient string) ([]domain.Invite, error) {
	var rows []inviteRow
	err := r.c.selectAll(ctx, &rows,
		`SELECT `+inviteColumns+` FROM invites WHERE school_id = ? AND recipient = ? ORDER BY created_at DESC`,
		schoolID, recipient,
	)
	if err != nil {
		return nil, err
	}
	return mapInvites(rows), nil
}

func (r *invitesRepo) ListPendingInvites(ctx context.Context, schoolID string, now time.Time) ([]domain.Invite, error) {
	var rows []inviteRow
	err := r.c.selectAll(ctx, &rows, `
		SELECT `+inviteColumns+` FROM invites
		WHERE school_id = ? AND used_at IS NULL AND expires_at > ?
		ORDER BY created_at DESC, id DESC`,
		schoolID, now.UTC(),
	)
	if err != nil {
		return nil, err
	}
	return mapInvites(rows), nil
}

func (r *invitesRepo) ListPendingByRecipients(
	ctx context.Context,
	schoolID string,
	recipients []string,
	now time.Time,
) ([]domain.Invite, error) {
	if len(recipients) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+inviteColumns+` FROM invites
		WHERE school_id = ? AND used_at IS NULL AND expires_at > ? AND recipient IN (?)`,
		schoolID, now.UTC(), recipients,
	)
	if err != nil {
		return nil, err
	}

	var rows []inviteRow
	if err := r.c.selectAll(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return mapInvites(rows), nil
}

func (r *invitesRepo) MarkInviteUsed(ctx context.Context, inviteID, userID string, at time.Time) error {
	n, err := r.c.exec(ctx,
		`UPDATE invites SET used_at = ?, used_by = ? WHERE id = ? AND used_at IS NULL`,
		at.UTC(), userID, inviteID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) DeleteInvite(ctx context.Context, schoolID, id string) error {
	n, err := r.c.exec(ctx, `DELETE FROM invites WHERE school_id = ? AND id = ?`, schoolID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.c.exec(ctx, `DELETE FROM invites WHERE expires_at < ?`, cutoff.UTC())
}
