package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
)

// known lists the errors a caller is expected to switch on. Anything else
// surfacing from a transaction is a storage failure.
var known = []error{
	ErrValidation, ErrInvalidCode, ErrExpired, ErrAlreadyUsed, ErrAlreadyMember,
	ErrDuplicatePending, ErrDuplicateInBatch, ErrStorage, ErrForbidden,
	ErrSchoolNotFound, ErrInviteNotFound, errHashTaken,
}

func classified(err error) bool {
	for _, k := range known {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// withTx runs fn in one transaction and classifies begin/commit failures.
func withTx(ctx context.Context, st store.Store, op string, fn func(tx store.Tx) error) error {
	err := st.WithTx(ctx, fn)
	if err == nil || classified(err) {
		return err
	}
	return storageErr(op, err)
}

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}

// staffRole returns the actor's role when they are active staff of the school.
func staffRole(ctx context.Context, st store.Store, schoolID, userID string) (domain.Role, error) {
	m, err := activeMember(ctx, st, schoolID, userID)
	if err != nil {
		return "", err
	}
	if !m.Role.IsStaff() {
		return "", ErrForbidden
	}
	return m.Role, nil
}

func activeMember(ctx context.Context, st store.Store, schoolID, userID string) (domain.Membership, error) {
	m, err := st.Memberships().GetMembership(ctx, schoolID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrForbidden
		}
		return domain.Membership{}, storageErr("get membership", err)
	}
	if !m.IsActive() {
		return domain.Membership{}, ErrForbidden
	}
	return m, nil
}

func isActiveMember(ctx context.Context, st store.Store, schoolID, userID string) (bool, error) {
	m, err := st.Memberships().GetMembership(ctx, schoolID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.IsActive(), nil
}
