package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/autoescuela/internal/school/billing"
	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
)

// BillingHandler serves subscription checkout, the customer portal and the
// provider webhook.
type BillingHandler struct {
	BillingService *service.BillingService
}

// HandleCheckout handles POST /v1/schools/{schoolID}/billing/checkout
//
//	@Summary		Start Checkout
//	@Description	Creates a subscription checkout session for the school. Owner only.
//	@Tags			Billing
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string	true	"School ID"
//	@Success		200			{object}	schoolsdk.RedirectResponse	"url to redirect the browser to"
//	@Failure		403			{object}	schoolsdk.ErrorResponse		"error, error_description"
//	@Failure		503			{object}	schoolsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/schools/{schoolID}/billing/checkout [post].
func (h *BillingHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	url, err := h.BillingService.CreateCheckout(r.Context(), userID, httpx.EmailFromContext(r.Context()), r.PathValue("schoolID"))
	if err != nil {
		writeServiceError(w, r, err, "billing.checkout")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, schoolsdk.RedirectResponse{URL: url})
}

// HandlePortal handles POST /v1/schools/{schoolID}/billing/portal
//
//	@Summary		Open Billing Portal
//	@Description	Creates a customer portal session for a school that completed checkout. Owner only.
//	@Tags			Billing
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string	true	"School ID"
//	@Success		200			{object}	schoolsdk.RedirectResponse	"url to redirect the browser to"
//	@Failure		403			{object}	schoolsdk.ErrorResponse		"error, error_description"
//	@Failure		409			{object}	schoolsdk.ErrorResponse		"error, error_description"
//	@Failure		503			{object}	schoolsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/schools/{schoolID}/billing/portal [post].
func (h *BillingHandler) HandlePortal(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	url, err := h.BillingService.CreatePortal(r.Context(), userID, r.PathValue("schoolID"))
	if err != nil {
		writeServiceError(w, r, err, "billing.portal")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, schoolsdk.RedirectResponse{URL: url})
}

// HandleWebhook handles POST /v1/billing/webhook
//
//	@Summary		Billing Webhook
//	@Description	Receives signed subscription events and updates the school's plan status.
//	@Tags			Billing
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header	string	true	"Webhook signature"
//	@Success		204
//	@Failure		400	{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		503	{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/billing/webhook [post].
func (h *BillingHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Could not read body",
		})
		return
	}

	err = h.BillingService.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	switch {
	case err == nil:
	case errors.Is(err, billing.ErrInvalidSignature):
		log.Warn("webhook signature rejected", slogx.Err(err))
		httpx.WriteJSON(w, http.StatusBadRequest, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid signature",
		})
		return
	case errors.Is(err, billing.ErrMalformedEvent):
		httpx.WriteJSON(w, http.StatusBadRequest, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Malformed event",
		})
		return
	case errors.Is(err, service.ErrSchoolNotFound):
		// Not ours to retry; acknowledge so the provider stops resending.
		log.Warn("webhook for unknown school", slogx.Err(err))
	default:
		writeServiceError(w, r, err, "billing.webhook")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
