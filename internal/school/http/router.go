package http

//go:generate swag init -g router.go -d ./,../../../pkg/schoolsdk -o ../../../api/school --packageName school --outputTypes go

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/roster"
	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/jwtx"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"

	_ "github.com/aussiebroadwan/autoescuela/api/school" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// maxJSONBody caps JSON request bodies. Roster uploads use roster.MaxBytes.
const maxJSONBody = 256 << 10

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	limits       httpx.Profiles
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SchoolService  *service.SchoolService
	InviteService  *service.InviteService
	BillingService *service.BillingService

	// MailerEnabled and BillingEnabled are reported by /readyz.
	MailerEnabled  bool
	BillingEnabled bool
}

func NewRouter(
	verifier jwtx.Verifier,
	limits httpx.Profiles,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		limits:       limits.WithDefaults(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSchools()
	r.registerInvites()
	r.registerBilling()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Autoescuela School Service API
//	@version		0.1.0
//	@description	Multi-tenant driving school backend: schools, memberships, invitations and billing.
//	@description
//	@description				Callers authenticate with access tokens from the hosted auth provider.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/autoescuela
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps h with bearer authentication, a per-user rate limit and a
// body size cap.
func (r *Router) authed(h http.HandlerFunc, limit httpx.RateLimitConfig, maxBody int64) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
		httpx.MaxBodyBytes(maxBody),
	)
}

func (r *Router) registerSchools() {
	h := &SchoolsHandler{SchoolService: r.SchoolService}

	r.Mux.Handle("POST /v1/schools", r.authed(h.HandleCreate, r.limits.Moderate, maxJSONBody))
	r.Mux.Handle("GET /v1/schools/{schoolID}", r.authed(h.HandleGet, r.limits.Lenient, maxJSONBody))
	r.Mux.Handle("GET /v1/schools/{schoolID}/members", r.authed(h.HandleListMembers, r.limits.Lenient, maxJSONBody))
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}
	imp := &InviteImportHandler{InviteService: r.InviteService, SchoolService: r.SchoolService}
	redeemHandler := &InviteRedeemHandler{InviteService: r.InviteService}

	// Staff operations - moderate rate limit by user
	r.Mux.Handle("POST /v1/schools/{schoolID}/invites", r.authed(h.HandleCreate, r.limits.Moderate, maxJSONBody))
	r.Mux.Handle("GET /v1/schools/{schoolID}/invites", r.authed(h.HandleList, r.limits.Lenient, maxJSONBody))
	r.Mux.Handle("DELETE /v1/schools/{schoolID}/invites/{inviteID}", r.authed(h.HandleRevoke, r.limits.Moderate, maxJSONBody))
	r.Mux.Handle("POST /v1/schools/{schoolID}/invites/share-code", r.authed(h.HandleShareCode, r.limits.Moderate, maxJSONBody))
	r.Mux.Handle("POST /v1/schools/{schoolID}/invites/import", r.authed(imp.HandleImport, r.limits.Moderate, roster.MaxBytes))
	r.Mux.Handle("POST /v1/schools/{schoolID}/invites/import/check", r.authed(imp.HandleCheck, r.limits.Moderate, roster.MaxBytes))

	// POST /invites/redeem - strict rate limit by user (join codes are short)
	r.Mux.Handle("POST /v1/invites/redeem",
		httpx.Chain(redeemHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(r.limits.Strict),
			httpx.MaxBodyBytes(maxJSONBody),
		),
	)
}

func (r *Router) registerBilling() {
	h := &BillingHandler{BillingService: r.BillingService}

	r.Mux.Handle("POST /v1/schools/{schoolID}/billing/checkout", r.authed(h.HandleCheckout, r.limits.Moderate, maxJSONBody))
	r.Mux.Handle("POST /v1/schools/{schoolID}/billing/portal", r.authed(h.HandlePortal, r.limits.Moderate, maxJSONBody))

	// Webhook is authenticated by its signature, not a bearer token.
	r.Mux.Handle("POST /v1/billing/webhook",
		httpx.Chain(http.HandlerFunc(h.HandleWebhook),
			httpx.RateLimitByIP(r.limits.Public),
			httpx.MaxBodyBytes(maxJSONBody),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.MailerEnabled, r.BillingEnabled),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}
