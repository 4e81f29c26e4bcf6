package sqlrepo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
)

type membershipRow struct {
	SchoolID  string    `db:"school_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r membershipRow) domain() domain.Membership {
	return domain.Membership{
		SchoolID:  r.SchoolID,
		UserID:    r.UserID,
		Role:      domain.Role(r.Role),
		Status:    domain.MembershipStatus(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

const membershipColumns = `school_id, user_id, role, status, created_at, updated_at`

type membershipsRepo struct {
	c conn
}

func (r *membershipsRepo) GetMembership(ctx context.Context, schoolID, userID string) (domain.Membership, error) {
	var row membershipRow
	err := r.c.get(ctx, &row,
		`SELECT `+membershipColumns+` FROM memberships WHERE school_id = ? AND user_id = ?`,
		schoolID, userID,
	)
	if err != nil {
		return domain.Membership{}, err
	}
	return row.domain(), nil
}

func (r *membershipsRepo) ActivateMembership(ctx context.Context, m domain.Membership) error {
	// The DO UPDATE only fires for inactive rows, so an already active
	// membership affects zero rows.
	n, err := r.c.exec(ctx, `
		INSERT INTO memberships (`+membershipColumns+`)
		VALUES (?, ?, ?, 'active', ?, ?)
		ON CONFLICT (school_id, user_id) DO UPDATE
		SET role = excluded.role,
		    status = 'active',
		    updated_at = excluded.updated_at
		WHERE memberships.status <> 'active'`,
		m.SchoolID, m.UserID, string(m.Role), m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *membershipsRepo) ListMemberships(ctx context.Context, schoolID string) ([]domain.Membership, error) {
	var rows []membershipRow
	err := r.c.selectAll(ctx, &rows,
		`SELECT `+membershipColumns+` FROM memberships WHERE school_id = ? ORDER BY created_at, user_id`,
		schoolID,
	)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}
