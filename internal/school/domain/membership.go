package domain

import "time"

type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
)

// Membership is unique per (SchoolID, UserID).
type Membership struct {
	SchoolID  string
	UserID    string
	Role      Role
	Status    MembershipStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Membership) IsActive() bool { return m.Status == MembershipActive }
