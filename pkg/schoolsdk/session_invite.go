package schoolsdk

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
)

func invitesPath(schoolID string) string {
	return "/v1/schools/" + url.PathEscape(schoolID) + "/invites"
}

// CreateInvite issues an email invite. Any previous invite for the same
// recipient in the school is replaced.
func (s *Session) CreateInvite(ctx context.Context, schoolID string, req CreateInviteRequest) (*CreateInviteResponse, error) {
	var out CreateInviteResponse
	if err := s.doJSON(ctx, http.MethodPost, invitesPath(schoolID), req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateShareCode issues a 6 character join code for the school.
func (s *Session) GenerateShareCode(ctx context.Context, schoolID string, req ShareCodeRequest) (*ShareCodeResponse, error) {
	var out ShareCodeResponse
	if err := s.doJSON(ctx, http.MethodPost, invitesPath(schoolID)+"/share-code", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkImport issues invites for many recipients. Row failures are reported
// in the response, not as an error.
func (s *Session) BulkImport(ctx context.Context, schoolID string, req BulkImportRequest) (*BulkImportResponse, error) {
	var out BulkImportResponse
	if err := s.doJSON(ctx, http.MethodPost, invitesPath(schoolID)+"/import", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckRoster parses a CSV roster server-side without issuing anything.
func (s *Session) CheckRoster(ctx context.Context, schoolID string, csv []byte) (*RosterCheckResponse, error) {
	resp, err := s.client.do(ctx, http.MethodPost, invitesPath(schoolID)+"/import/check",
		s.accessToken, "text/csv", bytes.NewReader(csv))
	if err != nil {
		return nil, err
	}

	var out RosterCheckResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvites returns the school's pending invites.
func (s *Session) ListInvites(ctx context.Context, schoolID string) (*ListInvitesResponse, error) {
	var out ListInvitesResponse
	if err := s.doJSON(ctx, http.MethodGet, invitesPath(schoolID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeInvite deletes a pending invite.
func (s *Session) RevokeInvite(ctx context.Context, schoolID, inviteID string) error {
	path := invitesPath(schoolID) + "/" + url.PathEscape(inviteID)
	return s.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

// RedeemInvite consumes an emailed secret or a join code and makes the
// session's user a member of the school.
func (s *Session) RedeemInvite(ctx context.Context, req RedeemInviteRequest) (*RedeemInviteResponse, error) {
	var out RedeemInviteResponse
	if err := s.doJSON(ctx, http.MethodPost, "/v1/invites/redeem", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
