package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/internal/school/store/drivers/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedSchool(t *testing.T, st store.Store, now time.Time) domain.School {
	t.Helper()
	s := domain.School{
		ID:         uuid.NewString(),
		Name:       "Autoescuela Sol",
		OwnerID:    uuid.NewString(),
		PlanStatus: domain.PlanTrial,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, st.Schools().CreateSchool(context.Background(), s))
	return s
}

func newInvite(schoolID, recipient, hash string, now time.Time, ttl time.Duration) domain.Invite {
	return domain.Invite{
		ID:        uuid.NewString(),
		SchoolID:  schoolID,
		Recipient: recipient,
		Role:      domain.RoleStudent,
		TokenHash: hash,
		InvitedBy: uuid.NewString(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func TestSchools(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC().Truncate(time.Millisecond)
	s := seedSchool(t, st, now)

	got, err := st.Schools().GetSchoolByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, s.Name, got.Name)
	require.Equal(t, domain.PlanTrial, got.PlanStatus)
	require.True(t, got.CreatedAt.Equal(now))

	t.Run("duplicate id", func(t *testing.T) {
		err := st.Schools().CreateSchool(ctx, s)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := st.Schools().GetSchoolByID(ctx, uuid.NewString())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update plan keeps customer when empty", func(t *testing.T) {
		require.NoError(t, st.Schools().UpdatePlan(ctx, s.ID, domain.PlanActive, "cus_123", now))
		require.NoError(t, st.Schools().UpdatePlan(ctx, s.ID, domain.PlanPastDue, "", now))

		got, err := st.Schools().GetSchoolByStripeCustomer(ctx, "cus_123")
		require.NoError(t, err)
		require.Equal(t, s.ID, got.ID)
		require.Equal(t, domain.PlanPastDue, got.PlanStatus)

		err = st.Schools().UpdatePlan(ctx, uuid.NewString(), domain.PlanActive, "", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestMemberships(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC()
	s := seedSchool(t, st, now)
	userID := uuid.NewString()

	m := domain.Membership{SchoolID: s.ID, UserID: userID, Role: domain.RoleStudent, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Memberships().ActivateMembership(ctx, m))

	got, err := st.Memberships().GetMembership(ctx, s.ID, userID)
	require.NoError(t, err)
	require.Equal(t, domain.MembershipActive, got.Status)
	require.Equal(t, domain.RoleStudent, got.Role)

	t.Run("already active", func(t *testing.T) {
		m.Role = domain.RoleAdmin
		err := st.Memberships().ActivateMembership(ctx, m)
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		got, err := st.Memberships().GetMembership(ctx, s.ID, userID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleStudent, got.Role, "active membership must not be rewritten")
	})

	t.Run("reactivates inactive", func(t *testing.T) {
		other := uuid.NewString()
		_, err := st.DB.ExecContext(ctx,
			`INSERT INTO memberships (school_id, user_id, role, status, created_at, updated_at)
			 VALUES (?, ?, 'student', 'inactive', ?, ?)`, s.ID, other, now, now)
		require.NoError(t, err)

		require.NoError(t, st.Memberships().ActivateMembership(ctx, domain.Membership{
			SchoolID: s.ID, UserID: other, Role: domain.RoleAdmin, CreatedAt: now, UpdatedAt: now,
		}))
		got, err := st.Memberships().GetMembership(ctx, s.ID, other)
		require.NoError(t, err)
		require.True(t, got.IsActive())
		require.Equal(t, domain.RoleAdmin, got.Role)
	})

	list, err := st.Memberships().ListMemberships(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestInvites(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC()
	s := seedSchool(t, st, now)

	inv := newInvite(s.ID, "ana@example.com", "hash-1", now, 7*24*time.Hour)
	require.NoError(t, st.Invites().CreateInvite(ctx, inv))

	t.Run("lookup by hash", func(t *testing.T) {
		got, err := st.Invites().GetInviteByTokenHash(ctx, "hash-1")
		require.NoError(t, err)
		require.Equal(t, inv.ID, got.ID)
		require.Nil(t, got.UsedAt)
		require.WithinDuration(t, inv.ExpiresAt, got.ExpiresAt, time.Millisecond)

		_, err = st.Invites().GetInviteByTokenHash(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("hash is unique", func(t *testing.T) {
		dup := newInvite(s.ID, "otro@example.com", "hash-1", now, time.Hour)
		require.ErrorIs(t, st.Invites().CreateInvite(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("pending filters", func(t *testing.T) {
		expired := newInvite(s.ID, "old@example.com", "hash-old", now.Add(-48*time.Hour), 24*time.Hour)
		require.NoError(t, st.Invites().CreateInvite(ctx, expired))

		pending, err := st.Invites().ListPendingInvites(ctx, s.ID, now)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.Equal(t, inv.ID, pending[0].ID)

		byRecipient, err := st.Invites().ListPendingByRecipients(ctx, s.ID,
			[]string{"ana@example.com", "old@example.com", "nadie@example.com"}, now)
		require.NoError(t, err)
		require.Len(t, byRecipient, 1)

		none, err := st.Invites().ListPendingByRecipients(ctx, s.ID, nil, now)
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("mark used is conditional", func(t *testing.T) {
		user := uuid.NewString()
		require.NoError(t, st.Invites().MarkInviteUsed(ctx, inv.ID, user, now))
		require.ErrorIs(t, st.Invites().MarkInviteUsed(ctx, inv.ID, uuid.NewString(), now), store.ErrNotFound)

		got, err := st.Invites().GetInviteByTokenHash(ctx, "hash-1")
		require.NoError(t, err)
		require.NotNil(t, got.UsedAt)
		require.Equal(t, user, got.UsedBy)
	})

	t.Run("delete for recipient", func(t *testing.T) {
		n, err := st.Invites().DeleteInvitesForRecipient(ctx, s.ID, "ana@example.com")
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		list, err := st.Invites().ListInvitesForRecipient(ctx, s.ID, "ana@example.com")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("delete expired", func(t *testing.T) {
		n, err := st.Invites().DeleteExpiredInvites(ctx, now)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("delete one", func(t *testing.T) {
		one := newInvite(s.ID, "uno@example.com", "hash-uno", now, time.Hour)
		require.NoError(t, st.Invites().CreateInvite(ctx, one))

		_, err := st.Invites().GetInviteByID(ctx, s.ID, one.ID)
		require.NoError(t, err)

		require.NoError(t, st.Invites().DeleteInvite(ctx, s.ID, one.ID))
		require.ErrorIs(t, st.Invites().DeleteInvite(ctx, s.ID, one.ID), store.ErrNotFound)
	})
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC()
	s := seedSchool(t, st, now)

	inv := newInvite(s.ID, "tx@example.com", "hash-tx", now, time.Hour)
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Invites().CreateInvite(ctx, inv))
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Invites().GetInviteByTokenHash(ctx, "hash-tx")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Invites().CreateInvite(ctx, inv)
	}))
	_, err = st.Invites().GetInviteByTokenHash(ctx, "hash-tx")
	require.NoError(t, err)
}

func TestFileDatabaseSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "school.db")

	st, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	s := seedSchool(t, st, time.Now().UTC())
	require.NoError(t, st.Close())

	st, err = sqlite.NewStore(path)
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.ApplyMigrations(), "re-applying migrations is a no-op")

	_, err = st.Schools().GetSchoolByID(ctx, s.ID)
	require.NoError(t, err)
	require.NoError(t, st.Ping(ctx))
}
