package http

import (
	"cmp"
	"errors"
	"mime"
	"net/http"
	"slices"
	"strconv"

	"github.com/aussiebroadwan/autoescuela/internal/school/roster"
	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
)

// InviteImportHandler serves roster imports, either as JSON rows or as an
// uploaded CSV file.
type InviteImportHandler struct {
	InviteService *service.InviteService
	SchoolService *service.SchoolService
}

// HandleImport handles POST /v1/schools/{schoolID}/invites/import
//
//	@Summary		Bulk Import Students
//	@Description	Issues student invites for every valid row. A bad row never aborts the
//	@Description	batch. Recipients that already hold a pending invite are reported as
//	@Description	duplicate_pending. JSON rows are numbered from 1 in request order; for
//	@Description	text/csv uploads the row number is the line in the file.
//	@Tags			Invites
//	@Accept			json
//	@Accept			text/csv
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string						true	"School ID"
//	@Param			ttl_days	query		int							false	"Invite lifetime for CSV uploads (default 30)"
//	@Param			request		body		schoolsdk.BulkImportRequest	true	"Rows to import"
//	@Success		200			{object}	schoolsdk.BulkImportResponse
//	@Failure		400			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		413			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools/{schoolID}/invites/import [post].
func (h *InviteImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	in := service.BulkImportInput{ActorID: userID, SchoolID: r.PathValue("schoolID")}

	if !isCSV(r) {
		var req schoolsdk.BulkImportRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			writeBadJSON(w, err)
			return
		}
		in.Rows = toImportRows(req.Rows)
		in.TTLDays = req.TTLDays

		res, err := h.InviteService.BulkImport(r.Context(), in)
		if err != nil {
			writeServiceError(w, r, err, "invites.import")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, schoolsdk.BulkImportResponse{
			CreatedCount: res.CreatedCount,
			Errors:       toRowErrors(res.Errors),
		})
		return
	}

	ttl, err := ttlQuery(r)
	if err != nil {
		writeServiceError(w, r, err, "invites.import")
		return
	}
	in.TTLDays = ttl

	if _, err := h.SchoolService.AuthorizeStaff(r.Context(), in.SchoolID, userID); err != nil {
		writeServiceError(w, r, err, "invites.import")
		return
	}

	parsed, ok := parseRoster(w, r)
	if !ok {
		return
	}
	rowErrs := rosterErrors(parsed.Errors)
	if len(parsed.Rows) == 0 {
		httpx.WriteJSON(w, http.StatusOK, schoolsdk.BulkImportResponse{Errors: rowErrs})
		return
	}

	in.Rows = make([]service.ImportRow, len(parsed.Rows))
	for i, row := range parsed.Rows {
		in.Rows[i] = service.ImportRow{Name: row.Name, Recipient: row.Recipient, Phone: row.Phone}
	}

	res, err := h.InviteService.BulkImport(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "invites.import")
		return
	}

	// Service rows are positions in parsed.Rows; report file lines instead.
	svcErrs := toRowErrors(res.Errors)
	for i := range svcErrs {
		svcErrs[i].Row = parsed.Rows[svcErrs[i].Row-1].Line
	}
	rowErrs = append(rowErrs, svcErrs...)
	slices.SortStableFunc(rowErrs, func(a, b schoolsdk.BulkImportRowError) int {
		return cmp.Compare(a.Row, b.Row)
	})

	httpx.WriteJSON(w, http.StatusOK, schoolsdk.BulkImportResponse{
		CreatedCount: res.CreatedCount,
		Errors:       rowErrs,
	})
}

// HandleCheck handles POST /v1/schools/{schoolID}/invites/import/check
//
//	@Summary		Check Roster
//	@Description	Parses a CSV roster and reports valid rows, rejected rows and repeated
//	@Description	emails without issuing any invite.
//	@Tags			Invites
//	@Accept			text/csv
//	@Produce		json
//	@Security		BearerAuth
//	@Param			schoolID	path		string	true	"School ID"
//	@Success		200			{object}	schoolsdk.RosterCheckResponse
//	@Failure		400			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Failure		413			{object}	schoolsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/schools/{schoolID}/invites/import/check [post].
func (h *InviteImportHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if _, err := h.SchoolService.AuthorizeStaff(r.Context(), r.PathValue("schoolID"), userID); err != nil {
		writeServiceError(w, r, err, "invites.import_check")
		return
	}

	parsed, ok := parseRoster(w, r)
	if !ok {
		return
	}

	rows := make([]schoolsdk.BulkImportRow, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		rows = append(rows, schoolsdk.BulkImportRow{Name: row.Name, Recipient: row.Recipient, Phone: row.Phone})
	}

	httpx.WriteJSON(w, http.StatusOK, schoolsdk.RosterCheckResponse{
		Rows:       rows,
		Errors:     rosterErrors(parsed.Errors),
		Duplicates: roster.FindDuplicates(parsed.Rows),
	})
}

func isCSV(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "text/csv"
}

func ttlQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("ttl_days")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.ValidationError{Field: "ttl_days", Message: "must be a number"}
	}
	return n, nil
}

// parseRoster reads the CSV body and writes the error reply itself when the
// file cannot be used at all.
func parseRoster(w http.ResponseWriter, r *http.Request) (roster.Result, bool) {
	res, err := roster.Parse(r.Body)
	if err == nil {
		return res, true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, roster.ErrTooLarge), errors.As(err, &maxErr):
		httpx.WriteJSON(w, http.StatusRequestEntityTooLarge, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Roster file is too large",
		})
	case errors.Is(err, roster.ErrEmpty):
		httpx.WriteJSON(w, http.StatusBadRequest, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Roster has no rows",
		})
	default:
		httpx.WriteJSON(w, http.StatusBadRequest, schoolsdk.ErrorResponse{
			Error:            schoolsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Roster is not valid CSV",
		})
	}
	return roster.Result{}, false
}

func rosterErrors(errs []roster.RowError) []schoolsdk.BulkImportRowError {
	out := make([]schoolsdk.BulkImportRowError, 0, len(errs))
	for _, e := range errs {
		out = append(out, schoolsdk.BulkImportRowError{
			Row: e.Line,
			Data: schoolsdk.BulkImportRow{
				Name:      e.Row.Name,
				Recipient: e.Row.Recipient,
				Phone:     e.Row.Phone,
			},
			Code:  schoolsdk.ErrorCodeValidation,
			Error: e.Field + " " + e.Message,
		})
	}
	return out
}
