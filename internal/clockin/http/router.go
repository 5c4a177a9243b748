package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"

	_ "github.com/aussiebroadwan/clockin/api/clockin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	// Location decides where "today" starts for the activity listing.
	Location *time.Location

	store                  store.Store
	LoginService           *service.LoginService
	TokenService           *service.TokenService
	ProfileService         *service.ProfileService
	StaffService           *service.StaffService
	DepartmentService      *service.DepartmentService
	AttendanceService      *service.AttendanceService
	PasswordRequestService *service.PasswordRequestService
	ActivityService        *service.ActivityService
	BootstrapService       *service.BootstrapService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	m *metrics.Metrics,
	corsOrigin string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      m,
	}

	// CORS first so preflights and errors carry the headers
	r.middlewares = []httpx.Middleware{
		httpx.CORS(corsOrigin),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerAccount()
	r.registerProfile()
	r.registerAttendance()
	r.registerPasswordRequests()
	r.registerDepartments()
	r.registerAdmin()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Clockin Staff Attendance API
//	@version		0.1.0
//	@description	Staff sign in with a badge QR code, a staff number or a password, clock in and out
//	@description	of activities, and ask admins for password resets.
//	@description
//	@description				Access tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/clockin
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
	// Instrument sits directly on the mux so the matched pattern is visible
	httpx.Chain(r.metrics.Instrument(r.Mux), r.middlewares...).ServeHTTP(w, req)
}

// authed requires a valid access token and resolves the caller's session.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier, http.StatusUnauthorized),
		SessionMiddleware(r.store.Roles(), http.StatusUnauthorized),
		httpx.RateLimitByUser(limit),
	}
	return httpx.Chain(h, append(mws, extra...)...)
}

// admin is authed plus the admin role.
func (r *Router) admin(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return r.authed(h, limit, RequireRole(domain.RoleAdmin))
}

func (r *Router) registerLogin() {
	h := &LoginHandler{LoginService: r.LoginService}

	// Credential checks - strict rate limit by IP
	r.Mux.Handle("POST /v1/login/qr",
		httpx.Chain(http.HandlerFunc(h.HandleQR), httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /v1/login/staff-number",
		httpx.Chain(http.HandlerFunc(h.HandleStaffNumber), httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /v1/login/password",
		httpx.Chain(http.HandlerFunc(h.HandlePassword), httpx.RateLimitByIP(httpx.StrictLimit)),
	)

	// Redemption needs a freshly minted token, moderate is enough
	r.Mux.Handle("POST /v1/login/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify), httpx.RateLimitByIP(httpx.ModerateLimit)),
	)
}

func (r *Router) registerAccount() {
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(&RegisterHandler{ProfileService: r.ProfileService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	h := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/token/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh), httpx.RateLimitByIP(httpx.ModerateLimit)),
	)
	r.Mux.Handle("POST /v1/logout", r.authed(http.HandlerFunc(h.HandleLogout), httpx.ModerateLimit))
}

func (r *Router) registerProfile() {
	h := &MeHandler{ProfileService: r.ProfileService}

	r.Mux.Handle("GET /v1/me", r.authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/me", r.authed(http.HandlerFunc(h.HandlePatch), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/me/badge.png", r.authed(http.HandlerFunc(h.HandleBadge), httpx.LenientLimit))
}

func (r *Router) registerAttendance() {
	h := &AttendanceHandler{AttendanceService: r.AttendanceService}

	r.Mux.Handle("GET /v1/attendance/status", r.authed(http.HandlerFunc(h.HandleStatus), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/attendance/clock-in", r.authed(http.HandlerFunc(h.HandleClockIn), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/attendance/clock-out", r.authed(http.HandlerFunc(h.HandleClockOut), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/attendance/history", r.authed(http.HandlerFunc(h.HandleHistory), httpx.LenientLimit))
}

func (r *Router) registerPasswordRequests() {
	h := &PasswordRequestHandler{PasswordRequestService: r.PasswordRequestService}

	r.Mux.Handle("POST /v1/password-requests", r.authed(http.HandlerFunc(h.HandleCreate), httpx.StrictLimit))
	r.Mux.Handle("GET /v1/password-requests", r.authed(http.HandlerFunc(h.HandleListMine), httpx.LenientLimit))

	// Recovery links are single use, strict by IP like the other credentials
	r.Mux.Handle("POST /v1/password/reset",
		httpx.Chain(http.HandlerFunc(h.HandleReset), httpx.RateLimitByIP(httpx.StrictLimit)),
	)

	// Every failure of the admin decision answers 400, authentication included
	r.Mux.Handle("POST /v1/admin/password-requests/process",
		httpx.Chain(http.HandlerFunc(h.HandleProcess),
			httpx.AuthnMiddleware(r.verifier, http.StatusBadRequest),
			SessionMiddleware(r.store.Roles(), http.StatusBadRequest),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/admin/password-requests", r.admin(http.HandlerFunc(h.HandleListAll), httpx.ModerateLimit))
}

func (r *Router) registerDepartments() {
	h := &DepartmentHandler{DepartmentService: r.DepartmentService}

	// Public, the registration form needs it
	r.Mux.Handle("GET /v1/departments",
		httpx.Chain(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("POST /v1/admin/departments", r.admin(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/admin/departments/{id}", r.admin(http.HandlerFunc(h.HandleRename), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/admin/departments/{id}", r.admin(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerAdmin() {
	h := &StaffHandler{StaffService: r.StaffService}

	r.Mux.Handle("GET /v1/admin/staff", r.admin(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/admin/staff/{id}/approve", r.admin(http.HandlerFunc(h.HandleApprove), httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/admin/staff/{id}/work-status", r.admin(http.HandlerFunc(h.HandleWorkStatus), httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/admin/staff/{id}/role", r.admin(http.HandlerFunc(h.HandleRole), httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/admin/staff/{id}", r.admin(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/admin/staff/{id}/qr/rotate", r.admin(http.HandlerFunc(h.HandleRotateQR), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/admin/staff/{id}", r.admin(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/admin/staff/{id}/attendance", r.admin(http.HandlerFunc(h.HandleAttendance), httpx.LenientLimit))

	activity := &LoginActivityHandler{ActivityService: r.ActivityService, Location: r.Location}
	r.Mux.Handle("GET /v1/admin/login-activity", r.admin(activity, httpx.LenientLimit))
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(&BootstrapHandler{BootstrapService: r.BootstrapService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys), httpx.RateLimitByIP(httpx.PublicLimit)),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), httpx.RateLimitByIP(httpx.LenientLimit)),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys), httpx.RateLimitByIP(httpx.LenientLimit)),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
