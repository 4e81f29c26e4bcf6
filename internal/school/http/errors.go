package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
)

// invalidCodeDescription is shared by unknown, used and expired codes so a
// caller cannot probe which one it hit.
const invalidCodeDescription = "Invalid or expired code"

// writeServiceError maps service errors onto the wire. Unknown errors are
// logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeValidation,
			ErrorDescription: verr.Field + " " + verr.Message,
			Details:          map[string]string{verr.Field: verr.Message},
		})
	case errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrExpired),
		errors.Is(err, service.ErrAlreadyUsed):
		httpx.WriteJSON(w, http.StatusBadRequest, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeInvalidCode,
			ErrorDescription: invalidCodeDescription,
		})
	case errors.Is(err, service.ErrAlreadyMember):
		httpx.WriteJSON(w, http.StatusConflict, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeAlreadyMember,
			ErrorDescription: "You are already a member of this school",
		})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeForbidden,
			ErrorDescription: "You do not have permission for this school",
		})
	case errors.Is(err, service.ErrSchoolNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeNotFound,
			ErrorDescription: "School not found",
		})
	case errors.Is(err, service.ErrInviteNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeNotFound,
			ErrorDescription: "Invite not found",
		})
	case errors.Is(err, service.ErrBillingDisabled):
		httpx.WriteJSON(w, http.StatusServiceUnavailable, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeBillingDisabled,
			ErrorDescription: "Billing is not available",
		})
	case errors.Is(err, service.ErrNoBillingAccount):
		httpx.WriteJSON(w, http.StatusConflict, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Complete a checkout before opening the billing portal",
		})
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			slogx.Err(err),
			slogx.Module(op),
		)
		httpx.WriteJSON(w, http.StatusInternalServerError, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeServerError,
			ErrorDescription: "Internal server error",
		})
	}
}

func writeBadJSON(w http.ResponseWriter, err error) {
	desc := "Invalid JSON body"
	if errors.Is(err, httpx.ErrEmptyBody) {
		desc = "Request body is required"
	}
	httpx.WriteJSON(w, http.StatusBadRequest, schoolsdk.ErrorResponse{
		Error:            schoolsdk.ErrorCodeInvalidRequest,
		ErrorDescription: desc,
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusUnauthorized, schoolsdk.ErrorResponse{
		Error:            schoolsdk.ErrorCodeUnauthorized,
		ErrorDescription: "Authentication required",
	})
}

// rowErrorCode names a bulk import row failure on the wire.
func rowErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrValidation):
		return schoolsdk.ErrorCodeValidation
	case errors.Is(err, service.ErrDuplicatePending):
		return schoolsdk.ErrorCodeDuplicatePending
	case errors.Is(err, service.ErrDuplicateInBatch):
		return schoolsdk.ErrorCodeDuplicateInBatch
	}
	return schoolsdk.ErrorCodeServerError
}
