/*
Package schoolsdk provides the wire types and a Go client for the autoescuela
school service.

# Overview

The service is multi-tenant: every school is a tenant, staff (owners and
admins) invite students, and students redeem invites to become members.
Authentication is delegated to the hosted auth provider; the client only
forwards its access token.

	client := schoolsdk.NewSDKClient("https://api.example.com")

	// Public probes
	health, err := client.GetLiveness(ctx)

	// Authenticated calls go through a Session
	session := client.NewSession(accessToken)

	school, err := session.CreateSchool(ctx, schoolsdk.CreateSchoolRequest{Name: "Autoescuela Sol"})

	invite, err := session.CreateInvite(ctx, school.ID, schoolsdk.CreateInviteRequest{
		Recipient: "ana@example.com",
		TTLDays:   14,
	})

The invite secret is only returned once, in CreateInviteResponse.Secret and
inside Link. The service stores a hash of it and cannot show it again.

# Redemption

	res, err := studentSession.RedeemInvite(ctx, schoolsdk.RedeemInviteRequest{Code: secret})

Unknown, used and expired codes are indistinguishable on the wire: all three
come back as an *APIError with Code ErrorCodeInvalidCode.

# Error Handling

Non-2xx responses are returned as *APIError:

	var apiErr *schoolsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == schoolsdk.ErrorCodeAlreadyMember {
		// already in the school
	}
*/
package schoolsdk
