package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/billing"
	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
)

type BillingService struct {
	Store store.Store
	// Provider is nil when billing is not configured.
	Provider billing.Provider
	Now      func() time.Time
}

// CreateCheckout starts a subscription checkout for the school. Owner only.
func (s *BillingService) CreateCheckout(ctx context.Context, actorID, actorEmail, schoolID string) (string, error) {
	school, err := s.ownedSchool(ctx, actorID, schoolID)
	if err != nil {
		return "", err
	}

	url, err := s.Provider.CreateCheckout(ctx, billing.CheckoutRequest{
		SchoolID:   school.ID,
		CustomerID: school.StripeCustomerID,
		Email:      actorEmail,
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create checkout session",
			slog.String("school_id", school.ID),
			slogx.Err(err),
		)
		return "", err
	}
	return url, nil
}

// CreatePortal opens the billing portal for a school that has already paid
// once. Owner only.
func (s *BillingService) CreatePortal(ctx context.Context, actorID, schoolID string) (string, error) {
	school, err := s.ownedSchool(ctx, actorID, schoolID)
	if err != nil {
		return "", err
	}
	if school.StripeCustomerID == "" {
		return "", ErrNoBillingAccount
	}

	url, err := s.Provider.CreatePortal(ctx, school.StripeCustomerID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create portal session",
			slog.String("school_id", school.ID),
			slogx.Err(err),
		)
		return "", err
	}
	return url, nil
}

// HandleWebhook verifies a processor webhook and applies any plan change it
// carries. Events that do not affect plans are acknowledged and ignored.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	log := slogx.FromContext(ctx)

	if s.Provider == nil {
		return ErrBillingDisabled
	}

	evt, err := s.Provider.ParseEvent(payload, signature)
	if err != nil {
		log.Warn("rejected billing webhook", slogx.Err(err))
		return err
	}
	log = log.With(slog.String("event_id", evt.ID), slog.String("event_type", evt.Type))

	if evt.Status == "" {
		log.Debug("ignoring billing event")
		return nil
	}

	school, err := s.resolveSchool(ctx, evt)
	if err != nil {
		log.Warn("billing event for unknown school",
			slog.String("school_id", evt.SchoolID),
			slogx.Secret("customer_id", evt.CustomerID),
		)
		return err
	}

	if err := s.Store.Schools().UpdatePlan(ctx, school.ID, evt.Status, evt.CustomerID, clock(s.Now)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSchoolNotFound
		}
		log.Error("failed to update plan", slogx.Err(err))
		return storageErr("update plan", err)
	}

	log.Info("plan updated",
		slog.String("school_id", school.ID),
		slog.String("from", string(school.PlanStatus)),
		slog.String("to", string(evt.Status)),
	)
	return nil
}

func (s *BillingService) resolveSchool(ctx context.Context, evt billing.Event) (domain.School, error) {
	var (
		school domain.School
		err    error
	)
	switch {
	case evt.SchoolID != "":
		school, err = s.Store.Schools().GetSchoolByID(ctx, evt.SchoolID)
	case evt.CustomerID != "":
		school, err = s.Store.Schools().GetSchoolByStripeCustomer(ctx, evt.CustomerID)
	default:
		return domain.School{}, ErrSchoolNotFound
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.School{}, ErrSchoolNotFound
		}
		return domain.School{}, storageErr("get school", err)
	}
	return school, nil
}

func (s *BillingService) ownedSchool(ctx context.Context, actorID, schoolID string) (domain.School, error) {
	if s.Provider == nil {
		return domain.School{}, ErrBillingDisabled
	}
	if err := validateIDs(actorID, schoolID); err != nil {
		return domain.School{}, err
	}

	m, err := activeMember(ctx, s.Store, schoolID, actorID)
	if err != nil {
		return domain.School{}, err
	}
	if m.Role != domain.RoleOwner {
		return domain.School{}, ErrForbidden
	}

	school, err := s.Store.Schools().GetSchoolByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.School{}, ErrSchoolNotFound
		}
		return domain.School{}, storageErr("get school", err)
	}
	return school, nil
}
