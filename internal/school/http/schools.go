package http

import (
	"net/http"

	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
)

// SchoolsHandler serves school creation and membership reads.
type SchoolsHandler struct {
	SchoolService *service.SchoolService
}

// HandleCreate handles POST /v1/schools
//
//	@Summary		Create School
//	@Description	Registers a school on a trial plan. The caller becomes its owner.
//	@Tags			Schools
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		schoolsdk.CreateSchoolRequest	true	"School name"
//	@Success		201		{object}	schoolsdk.SchoolResponse
//	@Failure		400		{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools [post].
func (h *SchoolsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req schoolsdk.CreateSchoolRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	school, err := h.SchoolService.CreateSchool(r.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(w, r, err, "schools.create")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSchoolResponse(school))
}

// HandleGet handles GET /v1/schools/{schoolID}
//
//	@Summary		Get School
//	@Description	Returns a school the caller is an active member of.
//	@Tags			Schools
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string	true	"School ID"
//	@Success		200			{object}	schoolsdk.SchoolResponse
//	@Failure		401			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools/{schoolID} [get].
func (h *SchoolsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	school, err := h.SchoolService.GetSchool(r.Context(), userID, r.PathValue("schoolID"))
	if err != nil {
		writeServiceError(w, r, err, "schools.get")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSchoolResponse(school))
}

// HandleListMembers handles GET /v1/schools/{schoolID}/members
//
//	@Summary		List Members
//	@Description	Lists every membership of the school. Staff only.
//	@Tags			Schools
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string	true	"School ID"
//	@Success		200			{object}	schoolsdk.ListMembersResponse
//	@Failure		401			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools/{schoolID}/members [get].
func (h *SchoolsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	members, err := h.SchoolService.ListMembers(r.Context(), userID, r.PathValue("schoolID"))
	if err != nil {
		writeServiceError(w, r, err, "schools.members")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, schoolsdk.ListMembersResponse{Members: toMembers(members)})
}
