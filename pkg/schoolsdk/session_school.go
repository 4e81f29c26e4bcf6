package schoolsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateSchool registers a new school owned by the session's user.
func (s *Session) CreateSchool(ctx context.Context, req CreateSchoolRequest) (*SchoolResponse, error) {
	var out SchoolResponse
	if err := s.doJSON(ctx, http.MethodPost, "/v1/schools", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSchool returns a school the session's user is a member of.
func (s *Session) GetSchool(ctx context.Context, schoolID string) (*SchoolResponse, error) {
	var out SchoolResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/schools/"+url.PathEscape(schoolID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMembers lists the memberships of a school. Staff only.
func (s *Session) ListMembers(ctx context.Context, schoolID string) (*ListMembersResponse, error) {
	var out ListMembersResponse
	path := "/v1/schools/" + url.PathEscape(schoolID) + "/members"
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCheckout starts a subscription checkout for the school. Owner only.
func (s *Session) CreateCheckout(ctx context.Context, schoolID string) (*RedirectResponse, error) {
	var out RedirectResponse
	path := "/v1/schools/" + url.PathEscape(schoolID) + "/billing/checkout"
	if err := s.doJSON(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
