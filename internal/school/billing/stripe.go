package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// WebhookTolerance is how old a signed webhook may be.
const WebhookTolerance = 5 * time.Minute

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	PriceID       string
	SuccessURL    string
	CancelURL     string
	ReturnURL     string
}

// Stripe implements Provider on top of the Stripe API.
type Stripe struct {
	sc  *client.API
	cfg StripeConfig
}

var _ Provider = (*Stripe)(nil)

func NewStripe(cfg StripeConfig) *Stripe {
	sc := &client.API{}
	sc.Init(cfg.APIKey, nil)
	return &Stripe{sc: sc, cfg: cfg}
}

func (s *Stripe) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ClientReferenceID: stripe.String(req.SchoolID),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.cfg.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"school_id": req.SchoolID},
		},
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx

	sess, err := s.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout: %w", err)
	}
	return sess.URL, nil
}

func (s *Stripe) CreatePortal(ctx context.Context, customerID string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(s.cfg.ReturnURL),
	}
	params.Context = ctx

	sess, err := s.sc.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe portal: %w", err)
	}
	return sess.URL, nil
}

// ParseEvent verifies the Stripe-Signature header and decodes the event.
func (s *Stripe) ParseEvent(payload []byte, signature string) (Event, error) {
	if err := webhook.ValidatePayloadWithTolerance(payload, signature, s.cfg.WebhookSecret, WebhookTolerance); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	// The event API version is not checked; only the fields read below matter.
	var evt stripe.Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	return decodeEvent(evt)
}

func decodeEvent(evt stripe.Event) (Event, error) {
	out := Event{ID: evt.ID, Type: string(evt.Type)}
	if evt.Data == nil {
		return out, ErrMalformedEvent
	}

	switch evt.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &sess); err != nil {
			return out, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		out.SchoolID = sess.ClientReferenceID
		if sess.Customer != nil {
			out.CustomerID = sess.Customer.ID
		}
		out.Status = domain.PlanActive

	case stripe.EventTypeCustomerSubscriptionUpdated, stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(evt.Data.Raw, &sub); err != nil {
			return out, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		out.SchoolID = sub.Metadata["school_id"]
		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
		out.Status = planStatus(sub.Status)
		if evt.Type == stripe.EventTypeCustomerSubscriptionDeleted {
			out.Status = domain.PlanCanceled
		}
	}
	return out, nil
}

func planStatus(s stripe.SubscriptionStatus) domain.PlanStatus {
	switch s {
	case stripe.SubscriptionStatusActive:
		return domain.PlanActive
	case stripe.SubscriptionStatusTrialing:
		return domain.PlanTrial
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid,
		stripe.SubscriptionStatusIncomplete, stripe.SubscriptionStatusPaused:
		return domain.PlanPastDue
	default:
		return domain.PlanCanceled
	}
}
