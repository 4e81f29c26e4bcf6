package schoolsdk

import (
	"fmt"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeValidation       = "validation_failed"
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeForbidden        = "forbidden"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeInvalidCode      = "invalid_code"
	ErrorCodeAlreadyMember    = "already_member"
	ErrorCodeDuplicatePending = "duplicate_pending"
	ErrorCodeDuplicateInBatch = "duplicate_in_batch"
	ErrorCodeBillingDisabled  = "billing_disabled"
	ErrorCodeServerError      = "server_error"
)

// APIError is a non-2xx response decoded from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string

	// Details holds per-field messages for validation failures.
	Details map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("schoolsdk: %d %s: %s", e.StatusCode, e.Code, e.Description)
}
