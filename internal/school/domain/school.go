package domain

import "time"

// PlanStatus mirrors the billing subscription state of a school.
type PlanStatus string

const (
	PlanTrial    PlanStatus = "trial"
	PlanActive   PlanStatus = "active"
	PlanPastDue  PlanStatus = "past_due"
	PlanCanceled PlanStatus = "canceled"
)

type School struct {
	ID               string // UUID
	Name             string
	OwnerID          string // auth provider user id
	PlanStatus       PlanStatus
	StripeCustomerID string // empty until the first checkout completes
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
