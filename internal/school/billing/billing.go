// Package billing talks to the payment processor for school plans.
package billing

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
)

var (
	ErrInvalidSignature = errors.New("billing: invalid webhook signature")
	ErrMalformedEvent   = errors.New("billing: malformed webhook event")
)

// CheckoutRequest describes a subscription checkout for one school.
type CheckoutRequest struct {
	SchoolID string
	// CustomerID reuses an existing billing customer; otherwise Email seeds
	// a new one.
	CustomerID string
	Email      string
}

// Event is a webhook event reduced to what the plan state machine needs.
// Status is empty for event types that do not affect a plan.
type Event struct {
	ID         string
	Type       string
	SchoolID   string
	CustomerID string
	Status     domain.PlanStatus
}

// Provider is the payment processor collaborator.
type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)
	CreatePortal(ctx context.Context, customerID string) (string, error)
	ParseEvent(payload []byte, signature string) (Event, error)
}
