package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/planfuse/planfuse/internal/planfuse/service"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/planfuse/planfuse/pkg/httpx"
	"github.com/planfuse/planfuse/pkg/slogx"

	_ "github.com/planfuse/planfuse/api/planfuse" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService    *service.AuthService
	SessionService *service.SessionService
	UserService    *service.UserService
	PlanService    *service.PlanService
	MFAService     *service.MFAService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
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
	r.registerAuth()
	r.registerUsers()
	r.registerPlans()
	r.registerMFA()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PlanFuse Authentication Service API
//	@version		0.1.0
//	@description	Password authentication with progressive account lockout and bearer session tokens.
//	@description
//	@description				Session tokens are HS256-signed JWTs backed by a server-side session row;
//	@description				logout revokes the session immediately even while the signature still verifies.
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
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{AuthService: r.AuthService}

	// POST /auth/login - strict rate limit by IP + username to slow brute
	// force before the lockout policy even engages
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(loginHandler.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)

	// POST /auth/mfa - strict rate limit by IP (TOTP codes are guessable)
	r.Mux.Handle("POST /v1/auth/mfa",
		httpx.Chain(http.HandlerFunc(loginHandler.HandleCompleteMFA),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	sessionHandler := &SessionHandler{SessionService: r.SessionService}

	// POST /auth/logout - authenticated, moderate rate limit by user
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(sessionHandler.HandleLogout),
			httpx.AuthnMiddleware(r.SessionService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /auth/refresh - authenticated, moderate rate limit by user
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(sessionHandler.HandleRefresh),
			httpx.AuthnMiddleware(r.SessionService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// POST /users - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /users/username/{username} - public profile lookup, lenient limit
	r.Mux.Handle("GET /v1/users/username/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleGetByUsername),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// PUT /users/{id} - authenticated self-only password change
	securedChange := httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
		httpx.AuthnMiddleware(r.SessionService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.Mux.Handle("PUT /v1/users/{id}", securedChange)

	// GET /userinfo - authenticated, lenient rate limit by user
	userInfo := &UserInfoHandler{UserService: r.UserService}
	secured := httpx.Chain(userInfo,
		httpx.AuthnMiddleware(r.SessionService),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.Mux.Handle("GET /v1/userinfo", secured)
}

func (r *Router) registerPlans() {
	h := &PlansHandler{PlanService: r.PlanService}

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.SessionService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.SessionService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.SessionService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/plans", securedList)
	r.Mux.Handle("POST /v1/plans/{name}", securedCreate)
	r.Mux.Handle("DELETE /v1/plans/{name}", securedDelete)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	// POST /mfa/totp/enroll - moderate rate limit by user
	securedEnroll := httpx.Chain(http.HandlerFunc(h.HandleEnroll),
		httpx.AuthnMiddleware(r.SessionService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// POST /mfa/totp/activate - strict rate limit by user (prevent brute force of TOTP codes)
	securedActivate := httpx.Chain(http.HandlerFunc(h.HandleActivate),
		httpx.AuthnMiddleware(r.SessionService),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)

	// DELETE /mfa/totp - strict rate limit by user (disable also takes a code)
	securedDisable := httpx.Chain(http.HandlerFunc(h.HandleDisable),
		httpx.AuthnMiddleware(r.SessionService),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)

	r.Mux.Handle("POST /v1/mfa/totp/enroll", securedEnroll)
	r.Mux.Handle("POST /v1/mfa/totp/activate", securedActivate)
	r.Mux.Handle("DELETE /v1/mfa/totp", securedDisable)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
