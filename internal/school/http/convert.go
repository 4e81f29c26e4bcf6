package http

import (
	"github.com/aussiebroadwan/autoescuela/internal/school/domain"
	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
)

func toSchoolResponse(s domain.School) schoolsdk.SchoolResponse {
	return schoolsdk.SchoolResponse{
		ID:         s.ID,
		Name:       s.Name,
		OwnerID:    s.OwnerID,
		PlanStatus: string(s.PlanStatus),
		CreatedAt:  s.CreatedAt,
	}
}

func toMembers(ms []domain.Membership) []schoolsdk.MemberResponse {
	out := make([]schoolsdk.MemberResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, schoolsdk.MemberResponse{
			UserID:    m.UserID,
			Role:      string(m.Role),
			Status:    string(m.Status),
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func toPendingInvites(invs []domain.Invite) []schoolsdk.PendingInvite {
	out := make([]schoolsdk.PendingInvite, 0, len(invs))
	for _, inv := range invs {
		out = append(out, schoolsdk.PendingInvite{
			ID:        inv.ID,
			Recipient: inv.Recipient,
			Role:      string(inv.Role),
			ShareCode: inv.IsShareCode(),
			InvitedBy: inv.InvitedBy,
			ExpiresAt: inv.ExpiresAt,
			CreatedAt: inv.CreatedAt,
		})
	}
	return out
}

func toImportRows(rows []schoolsdk.BulkImportRow) []service.ImportRow {
	out := make([]service.ImportRow, len(rows))
	for i, r := range rows {
		out[i] = service.ImportRow{Name: r.Name, Recipient: r.Recipient, Phone: r.Phone}
	}
	return out
}

func toRowErrors(errs []service.RowError) []schoolsdk.BulkImportRowError {
	out := make([]schoolsdk.BulkImportRowError, 0, len(errs))
	for _, e := range errs {
		out = append(out, schoolsdk.BulkImportRowError{
			Row: e.Row,
			Data: schoolsdk.BulkImportRow{
				Name:      e.Data.Name,
				Recipient: e.Data.Recipient,
				Phone:     e.Data.Phone,
			},
			Code:  rowErrorCode(e.Err),
			Error: rowErrorMessage(e.Err),
		})
	}
	return out
}

// rowErrorMessage keeps storage details out of the response.
func rowErrorMessage(err error) string {
	if rowErrorCode(err) == schoolsdk.ErrorCodeServerError {
		return "internal error"
	}
	return err.Error()
}
