package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/mail"
	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/internal/school/store/drivers/sqlite"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/jwtx"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://auth.example.com"
	testAudience = "authenticated"
)

var testSecret = []byte("router-test-secret-router-test-secret")

type testEnv struct {
	srv    *httptest.Server
	st     *sqlite.Store
	mailer *mail.LogMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	verifier, err := jwtx.NewHS256Verifier(testSecret, jwtx.VerifyOptions{
		Issuer:   testIssuer,
		Audience: []string{testAudience},
	})
	require.NoError(t, err)

	// Generous limits so functional tests never trip them.
	open := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	limits := httpx.Profiles{Strict: open, Moderate: open, Lenient: open, Public: open}

	mailer := mail.NewLogMailer()
	r := NewRouter(verifier, limits, "test", st, slogx.Discard())
	r.SchoolService = &service.SchoolService{Store: st}
	r.InviteService = &service.InviteService{Store: st, Mailer: mailer, BaseURL: "https://app.example.com"}
	r.BillingService = &service.BillingService{Store: st}
	r.MailerEnabled = true
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, st: st, mailer: mailer}
}

func token(t *testing.T, userID, email string) string {
	t.Helper()
	c := jwtx.NewAccessClaims(userID, email, time.Hour, testIssuer, []string{testAudience}, time.Now())
	tok, err := jwtx.SignHS256(testSecret, c)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, tok, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.srv.URL+path, body)
	require.NoError(t, err)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) doJSON(t *testing.T, method, path, tok string, v any) *http.Response {
	t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = strings.NewReader(string(b))
	}
	return e.do(t, method, path, tok, "application/json", body)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// createSchool registers a school owned by a fresh user and returns the
// school and the owner's token.
func (e *testEnv) createSchool(t *testing.T) (schoolsdk.SchoolResponse, string) {
	t.Helper()
	ownerTok := token(t, uuid.NewString(), "owner@example.com")
	resp := e.doJSON(t, http.MethodPost, "/v1/schools", ownerTok, schoolsdk.CreateSchoolRequest{Name: "Autoescuela Sol"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[schoolsdk.SchoolResponse](t, resp), ownerTok
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, http.MethodGet, "/livez", "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	live := decode[schoolsdk.HealthResponse](t, resp)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	resp = e.do(t, http.MethodGet, "/readyz", "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ready := decode[schoolsdk.HealthResponse](t, resp)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Mailer)
	require.Equal(t, "disabled", ready.Checks.Billing)

	require.NoError(t, e.st.Close())
	resp = e.do(t, http.MethodGet, "/readyz", "", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, "degraded", decode[schoolsdk.HealthResponse](t, resp).Status)
}

func TestAuthenticationRequired(t *testing.T) {
	e := newTestEnv(t)

	resp := e.doJSON(t, http.MethodPost, "/v1/invites/redeem", "", schoolsdk.RedeemInviteRequest{Code: "ABC234"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", "not-a-jwt", schoolsdk.RedeemInviteRequest{Code: "ABC234"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSchoolEndpoints(t *testing.T) {
	e := newTestEnv(t)
	school, ownerTok := e.createSchool(t)
	require.Equal(t, "trial", school.PlanStatus)

	resp := e.do(t, http.MethodGet, "/v1/schools/"+school.ID, ownerTok, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, school.ID, decode[schoolsdk.SchoolResponse](t, resp).ID)

	resp = e.do(t, http.MethodGet, "/v1/schools/"+school.ID+"/members", ownerTok, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	members := decode[schoolsdk.ListMembersResponse](t, resp)
	require.Len(t, members.Members, 1)
	require.Equal(t, "owner", members.Members[0].Role)

	stranger := token(t, uuid.NewString(), "")
	resp = e.do(t, http.MethodGet, "/v1/schools/"+school.ID, stranger, "", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = e.doJSON(t, http.MethodPost, "/v1/schools", ownerTok, schoolsdk.CreateSchoolRequest{Name: ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[schoolsdk.ErrorResponse](t, resp)
	require.Equal(t, schoolsdk.ErrorCodeValidation, body.Error)
	require.Contains(t, body.Details, "name")

	resp = e.do(t, http.MethodPost, "/v1/schools", ownerTok, "application/json", strings.NewReader("{"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, schoolsdk.ErrorCodeInvalidRequest, decode[schoolsdk.ErrorResponse](t, resp).Error)
}

func TestInviteAndRedeem(t *testing.T) {
	e := newTestEnv(t)
	school, ownerTok := e.createSchool(t)
	invites := "/v1/schools/" + school.ID + "/invites"

	resp := e.doJSON(t, http.MethodPost, invites, ownerTok, schoolsdk.CreateInviteRequest{Recipient: "Ana@Example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	issued := decode[schoolsdk.CreateInviteResponse](t, resp)
	require.Equal(t, "ana@example.com", issued.Recipient)
	require.Equal(t, "student", issued.Role)
	require.NotEmpty(t, issued.Secret)
	require.Equal(t, "https://app.example.com/invitacion/"+issued.Secret, issued.Link)

	sent := e.mailer.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "ana@example.com", sent[0].To)

	resp = e.do(t, http.MethodGet, invites, ownerTok, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pending := decode[schoolsdk.ListInvitesResponse](t, resp)
	require.Len(t, pending.Invites, 1)
	require.Equal(t, issued.InviteID, pending.Invites[0].ID)

	anaTok := token(t, uuid.NewString(), "ana@example.com")
	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", anaTok, schoolsdk.RedeemInviteRequest{Code: issued.Secret})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	red := decode[schoolsdk.RedeemInviteResponse](t, resp)
	require.Equal(t, school.ID, red.SchoolID)
	require.Equal(t, "student", red.Role)

	// Ana is now a member and can read the school but not manage it.
	resp = e.do(t, http.MethodGet, "/v1/schools/"+school.ID, anaTok, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = e.do(t, http.MethodGet, invites, anaTok, "", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Reuse and unknown codes are indistinguishable.
	other := token(t, uuid.NewString(), "")
	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", other, schoolsdk.RedeemInviteRequest{Code: issued.Secret})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	used := decode[schoolsdk.ErrorResponse](t, resp)

	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", other, schoolsdk.RedeemInviteRequest{Code: strings.Repeat("ab", 32)})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	unknown := decode[schoolsdk.ErrorResponse](t, resp)
	require.Equal(t, used, unknown)
	require.Equal(t, schoolsdk.ErrorCodeInvalidCode, unknown.Error)
}

func TestRedeemAlreadyMember(t *testing.T) {
	e := newTestEnv(t)
	school, ownerTok := e.createSchool(t)

	resp := e.doJSON(t, http.MethodPost, "/v1/schools/"+school.ID+"/invites", ownerTok,
		schoolsdk.CreateInviteRequest{Recipient: "owner@example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	issued := decode[schoolsdk.CreateInviteResponse](t, resp)

	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", ownerTok, schoolsdk.RedeemInviteRequest{Code: issued.Secret})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, schoolsdk.ErrorCodeAlreadyMember, decode[schoolsdk.ErrorResponse](t, resp).Error)

	// A student opening their own link a second time gets the same answer.
	resp = e.doJSON(t, http.MethodPost, "/v1/schools/"+school.ID+"/invites", ownerTok,
		schoolsdk.CreateInviteRequest{Recipient: "ana@example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	anaInvite := decode[schoolsdk.CreateInviteResponse](t, resp)

	anaTok := token(t, uuid.NewString(), "ana@example.com")
	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", anaTok, schoolsdk.RedeemInviteRequest{Code: anaInvite.Secret})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", anaTok, schoolsdk.RedeemInviteRequest{Code: anaInvite.Secret})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, schoolsdk.ErrorCodeAlreadyMember, decode[schoolsdk.ErrorResponse](t, resp).Error)
}

func TestShareCodeAndRevoke(t *testing.T) {
	e := newTestEnv(t)
	school, ownerTok := e.createSchool(t)
	invites := "/v1/schools/" + school.ID + "/invites"

	resp := e.do(t, http.MethodPost, invites+"/share-code", ownerTok, "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	code := decode[schoolsdk.ShareCodeResponse](t, resp)
	require.Len(t, code.Code, 6)
	require.Contains(t, code.ShareableLink, code.Code)

	resp = e.doJSON(t, http.MethodPost, invites+"/share-code", ownerTok, schoolsdk.ShareCodeRequest{TTLDays: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := decode[schoolsdk.ShareCodeResponse](t, resp)

	// Join codes are accepted in lower case.
	studentTok := token(t, uuid.NewString(), "")
	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", studentTok,
		schoolsdk.RedeemInviteRequest{Code: strings.ToLower(code.Code)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodDelete, invites+"/"+second.InviteID, ownerTok, "", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = e.do(t, http.MethodDelete, invites+"/"+second.InviteID, ownerTok, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = e.doJSON(t, http.MethodPost, "/v1/invites/redeem", token(t, uuid.NewString(), ""),
		schoolsdk.RedeemInviteRequest{Code: second.Code})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBulkImportJSON(t *testing.T) {
	e := newTestEnv(t)
	school, ownerTok := e.createSchool(t)

	resp := e.doJSON(t, http.MethodPost, "/v1/schools/"+school.ID+"/invites/import", ownerTok, schoolsdk.BulkImportRequest{
		Rows: []schoolsdk.BulkImportRow{
			{Name: "Ana", Recipient: "ana@example.com"},
			{Name: "Luis", Recipient: "not-an-email"},
			{Name: "Ana otra vez", Recipient: "ANA@example.com"},
			{Name: "Marta", Recipient: "marta@example.com", Phone: "+34600000000"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[schoolsdk.BulkImportResponse](t, resp)
	require.Equal(t, 2, res.CreatedCount)
	require.Len(t, res.Errors, 2)
	require.Equal(t, 2, res.Errors[0].Row)
	require.Equal(t, schoolsdk.ErrorCodeValidation, res.Errors[0].Code)
	require.Equal(t, 3, res.Errors[1].Row)
	require.Equal(t, schoolsdk.ErrorCodeDuplicateInBatch, res.Errors[1].Code)

	// A second run reports the recipients that are still pending.
	resp = e.doJSON(t, http.MethodPost, "/v1/schools/"+school.ID+"/invites/import", ownerTok, schoolsdk.BulkImportRequest{
		Rows: []schoolsdk.BulkImportRow{{Name: "Ana", Recipient: "ana@example.com"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = decode[schoolsdk.BulkImportResponse](t, resp)
	require.Zero(t, res.CreatedCount)
	require.Len(t, res.Errors, 1)
	require.Equal(t, schoolsdk.ErrorCodeDuplicatePending, res.Errors[0].Code)

	stranger := token(t, uuid.NewString(), "")
	resp = e.doJSON(t, http.MethodPost, "/v1/schools/"+school.ID+"/invites/import", stranger, schoolsdk.BulkImportRequest{
		Rows: []schoolsdk.BulkImportRow{{Name: "Eva", Recipient: "eva@example.com"}},
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBulkImportCSV(t *testing.T) {
	e := newTestEnv(t)
	school, ownerTok := e.createSchool(t)
	base := "/v1/schools/" + school.ID + "/invites/import"

	csv := "nombre;correo;telefono\n" +
		"Ana;ana@example.com;600000001\n" +
		"Luis;luis@;600000002\n" +
		"Marta;marta@example.com;\n" +
		"Ana B;ana@example.com;\n"

	resp := e.do(t, http.MethodPost, base+"/check", ownerTok, "text/csv", strings.NewReader(csv))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	check := decode[schoolsdk.RosterCheckResponse](t, resp)
	require.Len(t, check.Rows, 3)
	require.Len(t, check.Errors, 1)
	require.Equal(t, 3, check.Errors[0].Row)
	require.Equal(t, []int{2, 5}, check.Duplicates["ana@example.com"])
	require.Empty(t, e.mailer.Sent())

	resp = e.do(t, http.MethodPost, base+"?ttl_days=10", ownerTok, "text/csv; charset=utf-8", strings.NewReader(csv))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[schoolsdk.BulkImportResponse](t, resp)
	require.Equal(t, 2, res.CreatedCount)
	require.Len(t, res.Errors, 2)
	require.Equal(t, 3, res.Errors[0].Row)
	require.Equal(t, 5, res.Errors[1].Row)
	require.Equal(t, schoolsdk.ErrorCodeDuplicateInBatch, res.Errors[1].Code)

	resp = e.do(t, http.MethodPost, base+"/check", ownerTok, "text/csv", strings.NewReader(""))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, http.MethodPost, base+"?ttl_days=abc", ownerTok, "text/csv", strings.NewReader(csv))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBillingDisabled(t *testing.T) {
	e := newTestEnv(t)
	school, ownerTok := e.createSchool(t)

	resp := e.do(t, http.MethodPost, "/v1/schools/"+school.ID+"/billing/checkout", ownerTok, "", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, schoolsdk.ErrorCodeBillingDisabled, decode[schoolsdk.ErrorResponse](t, resp).Error)

	resp = e.do(t, http.MethodPost, "/v1/billing/webhook", "", "application/json", strings.NewReader("{}"))
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
