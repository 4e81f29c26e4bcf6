package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
)

// InvitesHandler serves the staff side of invite management.
type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleCreate handles POST /v1/schools/{schoolID}/invites
//
//	@Summary		Create Invite
//	@Description	Issues an email invite and sends it. Any earlier invite for the same
//	@Description	recipient in this school, used or not, is replaced. The secret is only
//	@Description	returned here and is never stored.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string							true	"School ID"
//	@Param			request		body		schoolsdk.CreateInviteRequest	true	"Invite request"
//	@Success		201			{object}	schoolsdk.CreateInviteResponse
//	@Failure		400			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		500			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools/{schoolID}/invites [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req schoolsdk.CreateInviteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	issued, err := h.InviteService.CreateInvite(r.Context(), service.CreateInviteInput{
		ActorID:   userID,
		SchoolID:  r.PathValue("schoolID"),
		Recipient: req.Recipient,
		Role:      domain.Role(req.Role),
		TTLDays:   req.TTLDays,
	})
	if err != nil {
		writeServiceError(w, r, err, "invites.create")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, schoolsdk.CreateInviteResponse{
		InviteID:  issued.Invite.ID,
		SchoolID:  issued.Invite.SchoolID,
		Recipient: issued.Invite.Recipient,
		Role:      string(issued.Invite.Role),
		ExpiresAt: issued.Invite.ExpiresAt,
		Secret:    issued.Secret,
		Link:      issued.Link,
	})
}

// HandleShareCode handles POST /v1/schools/{schoolID}/invites/share-code
//
//	@Summary		Generate Join Code
//	@Description	Issues a single-use 6 character student join code for the school.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string						true	"School ID"
//	@Param			request		body		schoolsdk.ShareCodeRequest	false	"Optional TTL"
//	@Success		201			{object}	schoolsdk.ShareCodeResponse
//	@Failure		400			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		500			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools/{schoolID}/invites/share-code [post].
func (h *InvitesHandler) HandleShareCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	// The body is optional here.
	var req schoolsdk.ShareCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		writeBadJSON(w, err)
		return
	}

	code, err := h.InviteService.GenerateShareCode(r.Context(), userID, r.PathValue("schoolID"), req.TTLDays)
	if err != nil {
		writeServiceError(w, r, err, "invites.share_code")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, schoolsdk.ShareCodeResponse{
		InviteID:      code.Invite.ID,
		Code:          code.Code,
		ExpiresAt:     code.Invite.ExpiresAt,
		ShareableLink: code.Link,
	})
}

// HandleList handles GET /v1/schools/{schoolID}/invites
//
//	@Summary		List Pending Invites
//	@Description	Lists unused, unexpired invites of the school, newest first. Secrets are never included.
//	@Tags			Invites
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string	true	"School ID"
//	@Success		200			{object}	schoolsdk.ListInvitesResponse
//	@Failure		403			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools/{schoolID}/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	invites, err := h.InviteService.ListPendingInvites(r.Context(), userID, r.PathValue("schoolID"))
	if err != nil {
		writeServiceError(w, r, err, "invites.list")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, schoolsdk.ListInvitesResponse{Invites: toPendingInvites(invites)})
}

// HandleRevoke handles DELETE /v1/schools/{schoolID}/invites/{inviteID}
//
//	@Summary		Revoke Invite
//	@Description	Deletes a pending invite so its secret or code stops working. Used invites answer 404.
//	@Tags			Invites
//	@Security		BearerAuth
//	@Param			schoolID	path	string	true	"School ID"
//	@Param			inviteID	path	string	true	"Invite ID"
//	@Success		204
//	@Failure		403	{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools/{schoolID}/invites/{inviteID} [delete].
func (h *InvitesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	err := h.InviteService.RevokeInvite(r.Context(), userID, r.PathValue("schoolID"), r.PathValue("inviteID"))
	if err != nil {
		writeServiceError(w, r, err, "invites.revoke")
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
