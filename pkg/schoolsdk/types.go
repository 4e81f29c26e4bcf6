package schoolsdk

import "time"

// ============================================================================
// Common
// ============================================================================

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	// Error is a machine readable code, see the ErrorCode* constants.
	Error string `json:"error"`

	// ErrorDescription is a human readable message.
	ErrorDescription string `json:"error_description"`

	// Details maps offending fields to messages on validation failures.
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Mailer   string `json:"mailer"`
	Billing  string `json:"billing"`
}

// ============================================================================
// Schools
// ============================================================================

type CreateSchoolRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

type SchoolResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerID    string    `json:"owner_id"`
	PlanStatus string    `json:"plan_status"`
	CreatedAt  time.Time `json:"created_at"`
}

type MemberResponse struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ============================================================================
// Invites
// ============================================================================

type CreateInviteRequest struct {
	// Recipient email address.
	Recipient string `json:"recipient" validate:"required,email,max=254"`

	// Role defaults to "student".
	Role string `json:"role,omitempty" validate:"omitempty,oneof=student admin owner"`

	// TTLDays defaults to 7.
	TTLDays int `json:"ttl_days,omitempty" validate:"omitempty,min=1,max=90"`
}

type CreateInviteResponse struct {
	InviteID  string    `json:"invite_id"`
	SchoolID  string    `json:"school_id"`
	Recipient string    `json:"recipient"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`

	// Secret is returned once and never stored by the service.
	Secret string `json:"secret"`
	Link   string `json:"link"`
}

type ShareCodeRequest struct {
	// TTLDays defaults to 7.
	TTLDays int `json:"ttl_days,omitempty" validate:"omitempty,min=1,max=90"`
}

type ShareCodeResponse struct {
	InviteID      string    `json:"invite_id"`
	Code          string    `json:"code"`
	ExpiresAt     time.Time `json:"expires_at"`
	ShareableLink string    `json:"shareable_link"`
}

type RedeemInviteRequest struct {
	// Code is either an emailed secret or a 6 character join code.
	Code string `json:"code" validate:"required,max=128"`
}

type RedeemInviteResponse struct {
	SchoolID string `json:"school_id"`
	Role     string `json:"role"`
}

// PendingInvite is an unused, unexpired invite as listed to staff. The
// secret is never part of it.
type PendingInvite struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Role      string    `json:"role"`
	ShareCode bool      `json:"share_code"`
	InvitedBy string    `json:"invited_by"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type ListInvitesResponse struct {
	Invites []PendingInvite `json:"invites"`
}

// ============================================================================
// Bulk import
// ============================================================================

type BulkImportRow struct {
	Name      string `json:"name"`
	Recipient string `json:"recipient"`
	Phone     string `json:"phone,omitempty"`
}

type BulkImportRequest struct {
	Rows []BulkImportRow `json:"rows" validate:"required,min=1,max=1000"`

	// TTLDays defaults to 30.
	TTLDays int `json:"ttl_days,omitempty" validate:"omitempty,min=1,max=90"`
}

// BulkImportRowError reports a rejected row. Row is 1-based in input order.
type BulkImportRowError struct {
	Row   int           `json:"row"`
	Data  BulkImportRow `json:"data"`
	Code  string        `json:"code"`
	Error string        `json:"error"`
}

type BulkImportResponse struct {
	CreatedCount int                  `json:"created_count"`
	Errors       []BulkImportRowError `json:"errors"`
}

// RosterCheckResponse is the dry-run result of parsing a CSV roster.
type RosterCheckResponse struct {
	Rows       []BulkImportRow      `json:"rows"`
	Errors     []BulkImportRowError `json:"errors"`
	Duplicates map[string][]int     `json:"duplicates,omitempty"`
}

// ============================================================================
// Billing
// ============================================================================

type RedirectResponse struct {
	URL string `json:"url"`
}
