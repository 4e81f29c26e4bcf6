package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
)

type InviteRedeemHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Redeem Invitation
//	@Description	Consumes an emailed secret or a 6 character join code and makes the
//	@Description	caller a member of the school. Unknown, used and expired codes all get
//	@Description	the same invalid_code reply.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		schoolsdk.RedeemInviteRequest	true	"Secret or join code"
//	@Success		200		{object}	schoolsdk.RedeemInviteResponse	"school_id, role"
//	@Failure		400		{object}	schoolsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	schoolsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	schoolsdk.ErrorResponse			"error, error_description"
//	@Failure		429		{object}	schoolsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	schoolsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/invites/redeem [post].
func (h *InviteRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req schoolsdk.RedeemInviteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	red, err := h.InviteService.RedeemInvite(ctx, req.Code, userID)
	if err != nil {
		writeServiceError(w, r, err, "invites.redeem")
		return
	}

	slogx.FromContext(ctx).Info("invite redeemed",
		slog.String("school_id", red.SchoolID),
		slog.String("role", string(red.Role)),
	)

	httpx.WriteJSON(w, http.StatusOK, schoolsdk.RedeemInviteResponse{
		SchoolID: red.SchoolID,
		Role:     string(red.Role),
	})
}
