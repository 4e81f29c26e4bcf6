package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/internal/school/store/drivers/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway Postgres and returns a migrated Store.
func setupPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "school",
			"POSTGRES_PASSWORD": "school",
			"POSTGRES_DB":       "school",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://school:school@%s:%s/school?sslmode=disable", host, port.Port())
	st, err := postgres.NewStore(ctx, dsn, postgres.Options{MaxOpenConns: 8})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestPostgresStore(t *testing.T) {
	st := setupPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	school := domain.School{
		ID:         uuid.NewString(),
		Name:       "Autoescuela Norte",
		OwnerID:    uuid.NewString(),
		PlanStatus: domain.PlanTrial,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, st.Schools().CreateSchool(ctx, school))
	require.ErrorIs(t, st.Schools().CreateSchool(ctx, school), store.ErrAlreadyExists)

	t.Run("malformed uuid is not found", func(t *testing.T) {
		_, err := st.Schools().GetSchoolByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	inv := domain.Invite{
		ID:        uuid.NewString(),
		SchoolID:  school.ID,
		Recipient: "ana@example.com",
		Role:      domain.RoleStudent,
		TokenHash: "pg-hash-1",
		InvitedBy: school.OwnerID,
		ExpiresAt: now.Add(14 * 24 * time.Hour),
		CreatedAt: now,
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, inv))

	t.Run("pending by recipients rebinds IN list", func(t *testing.T) {
		got, err := st.Invites().ListPendingByRecipients(ctx, school.ID,
			[]string{"ana@example.com", "luis@example.com"}, now)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, inv.ID, got[0].ID)
	})

	t.Run("redeem inside tx", func(t *testing.T) {
		userID := uuid.NewString()
		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Invites().MarkInviteUsed(ctx, inv.ID, userID, now); err != nil {
				return err
			}
			return tx.Memberships().ActivateMembership(ctx, domain.Membership{
				SchoolID: school.ID, UserID: userID, Role: inv.Role, CreatedAt: now, UpdatedAt: now,
			})
		})
		require.NoError(t, err)

		require.ErrorIs(t, st.Invites().MarkInviteUsed(ctx, inv.ID, userID, now), store.ErrNotFound)

		m, err := st.Memberships().GetMembership(ctx, school.ID, userID)
		require.NoError(t, err)
		require.True(t, m.IsActive())

		err = st.Memberships().ActivateMembership(ctx, m)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("housekeeping", func(t *testing.T) {
		n, err := st.Invites().DeleteExpiredInvites(ctx, now.Add(15*24*time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})
}
