package domain

// Role is the membership role an invite grants.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleOwner   Role = "owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// IsStaff reports whether the role may manage invites for its school.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleOwner
}
