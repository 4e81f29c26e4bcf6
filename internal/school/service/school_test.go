package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateSchool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.Equal(t, "Autoescuela Sol", f.school.Name)
	require.Equal(t, domain.PlanTrial, f.school.PlanStatus)

	m, err := f.st.Memberships().GetMembership(ctx, f.school.ID, f.ownerID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, m.Role)
	require.True(t, m.IsActive())

	_, err = f.schools.CreateSchool(ctx, f.ownerID, " ")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.schools.CreateSchool(ctx, "nobody", "Autoescuela Luna")
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetSchool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	studentID := uuid.NewString()
	f.addMember(t, studentID, domain.RoleStudent)

	got, err := f.schools.GetSchool(ctx, studentID, f.school.ID)
	require.NoError(t, err)
	require.Equal(t, f.school.ID, got.ID)

	_, err = f.schools.GetSchool(ctx, uuid.NewString(), f.school.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestListMembersAndAuthorizeStaff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	studentID := uuid.NewString()
	f.addMember(t, studentID, domain.RoleStudent)

	members, err := f.schools.ListMembers(ctx, f.adminID, f.school.ID)
	require.NoError(t, err)
	require.Len(t, members, 3)

	_, err = f.schools.ListMembers(ctx, studentID, f.school.ID)
	require.ErrorIs(t, err, ErrForbidden)

	role, err := f.schools.AuthorizeStaff(ctx, f.school.ID, f.ownerID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, role)

	role, err = f.schools.AuthorizeStaff(ctx, f.school.ID, f.adminID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)

	_, err = f.schools.AuthorizeStaff(ctx, f.school.ID, studentID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.schools.AuthorizeStaff(ctx, "x", studentID)
	require.ErrorIs(t, err, ErrValidation)
}
