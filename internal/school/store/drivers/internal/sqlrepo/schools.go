package sqlrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
)

type schoolRow struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	OwnerID          string         `db:"owner_id"`
	PlanStatus       string         `db:"plan_status"`
	StripeCustomerID sql.NullString `db:"stripe_customer_id"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r schoolRow) domain() domain.School {
	return domain.School{
		ID:               r.ID,
		Name:             r.Name,
		OwnerID:          r.OwnerID,
		PlanStatus:       domain.PlanStatus(r.PlanStatus),
		StripeCustomerID: r.StripeCustomerID.String,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

const schoolColumns = `id, name, owner_id, plan_status, stripe_customer_id, created_at, updated_at`

type schoolsRepo struct {
	c conn
}

func (r *schoolsRepo) CreateSchool(ctx context.Context, s domain.School) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO schools (`+schoolColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.OwnerID, string(s.PlanStatus), nullString(s.StripeCustomerID),
		s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
	)
	return err
}

func (r *schoolsRepo) GetSchoolByID(ctx context.Context, id string) (domain.School, error) {
	var row schoolRow
	if err := r.c.get(ctx, &row, `SELECT `+schoolColumns+` FROM schools WHERE id = ?`, id); err != nil {
		return domain.School{}, err
	}
	return row.domain(), nil
}

func (r *schoolsRepo) GetSchoolByStripeCustomer(ctx context.Context, customerID string) (domain.School, error) {
	var row schoolRow
	err := r.c.get(ctx, &row, `SELECT `+schoolColumns+` FROM schools WHERE stripe_customer_id = ?`, customerID)
	if err != nil {
		return domain.School{}, err
	}
	return row.domain(), nil
}

func (r *schoolsRepo) UpdatePlan(
	ctx context.Context,
	schoolID string,
	status domain.PlanStatus,
	customerID string,
	at time.Time,
) error {
	n, err := r.c.exec(ctx, `
		UPDATE schools
		SET plan_status = ?,
		    stripe_customer_id = COALESCE(?, stripe_customer_id),
		    updated_at = ?
		WHERE id = ?`,
		string(status), nullString(customerID), at.UTC(), schoolID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
