package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
	"github.com/google/uuid"
)

type SchoolService struct {
	Store store.Store
	Now   func() time.Time
}

type createSchoolInput struct {
	OwnerID string `json:"owner_id" validate:"required,uuid"`
	Name    string `json:"name" validate:"required,min=2,max=120"`
}

// CreateSchool onboards a school on the trial plan and makes ownerID its
// active owner in the same transaction.
func (s *SchoolService) CreateSchool(ctx context.Context, ownerID, name string) (domain.School, error) {
	log := slogx.FromContext(ctx)

	in := createSchoolInput{OwnerID: ownerID, Name: strings.TrimSpace(name)}
	if err := validateStruct(in); err != nil {
		return domain.School{}, err
	}

	now := clock(s.Now)
	school := domain.School{
		ID:         uuid.NewString(),
		Name:       in.Name,
		OwnerID:    in.OwnerID,
		PlanStatus: domain.PlanTrial,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := withTx(ctx, s.Store, "create school", func(tx store.Tx) error {
		if err := tx.Schools().CreateSchool(ctx, school); err != nil {
			return storageErr("create school", err)
		}
		err := tx.Memberships().ActivateMembership(ctx, domain.Membership{
			SchoolID:  school.ID,
			UserID:    in.OwnerID,
			Role:      domain.RoleOwner,
			Status:    domain.MembershipActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return storageErr("create owner membership", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create school", slogx.Err(err))
		return domain.School{}, err
	}

	log.Info("school created",
		slog.String("school_id", school.ID),
		slog.String("owner_id", school.OwnerID),
	)
	return school, nil
}

// GetSchool returns a school to any of its active members.
func (s *SchoolService) GetSchool(ctx context.Context, actorID, schoolID string) (domain.School, error) {
	if err := validateIDs(actorID, schoolID); err != nil {
		return domain.School{}, err
	}
	if _, err := activeMember(ctx, s.Store, schoolID, actorID); err != nil {
		return domain.School{}, err
	}
	return s.loadSchool(ctx, schoolID)
}

// ListMembers returns the school's memberships to its staff.
func (s *SchoolService) ListMembers(ctx context.Context, actorID, schoolID string) ([]domain.Membership, error) {
	if err := validateIDs(actorID, schoolID); err != nil {
		return nil, err
	}
	if _, err := staffRole(ctx, s.Store, schoolID, actorID); err != nil {
		return nil, err
	}

	members, err := s.Store.Memberships().ListMemberships(ctx, schoolID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list members", slogx.Err(err))
		return nil, storageErr("list memberships", err)
	}
	return members, nil
}

// AuthorizeStaff returns userID's role when they are an active admin or
// owner of the school, ErrForbidden otherwise.
func (s *SchoolService) AuthorizeStaff(ctx context.Context, schoolID, userID string) (domain.Role, error) {
	if err := validateIDs(userID, schoolID); err != nil {
		return "", err
	}
	return staffRole(ctx, s.Store, schoolID, userID)
}

func (s *SchoolService) loadSchool(ctx context.Context, schoolID string) (domain.School, error) {
	school, err := s.Store.Schools().GetSchoolByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.School{}, ErrSchoolNotFound
		}
		slogx.FromContext(ctx).Error("failed to load school", slogx.Err(err))
		return domain.School{}, storageErr("get school", err)
	}
	return school, nil
}
