package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/antonybholmes/go-auth/internal/auth/service"
	"github.com/antonybholmes/go-auth/internal/auth/store"
	"github.com/antonybholmes/go-auth/pkg/httpx"
	"github.com/antonybholmes/go-auth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	TokenService      *service.TokenService
	CredentialService *service.CredentialService
	AccountService    *service.AccountService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every endpoint. Credential endpoints sit behind the
// strict per-IP rate limit to slow brute forcing and enumeration probes.
func (r *Router) ApplyRoutes() {
	// Each route gets its own bucket so hammering one endpoint cannot starve
	// the others.
	strict := func() httpx.Middleware {
		return httpx.RateLimitMiddleware(httpx.StrictLimit, httpx.IPKeyExtractor)
	}
	lenient := func() httpx.Middleware {
		return httpx.RateLimitMiddleware(httpx.LenientLimit, httpx.IPKeyExtractor)
	}
	authn := AuthnMiddleware(r.TokenService)

	r.Mux.Handle("POST /auth/register", httpx.Chain(&RegisterHandler{
		Credentials: r.CredentialService,
		Accounts:    r.AccountService,
	}, strict()))

	r.Mux.Handle("POST /auth/login", httpx.Chain(&LoginHandler{
		Credentials: r.CredentialService,
		Tokens:      r.TokenService,
	}, strict()))

	r.Mux.Handle("POST /auth/refresh", httpx.Chain(&RefreshHandler{
		Tokens: r.TokenService,
	}, lenient()))

	r.Mux.Handle("POST /auth/passwordless", httpx.Chain(
		requestHandler(r.AccountService.RequestPasswordless), strict()))
	r.Mux.Handle("POST /auth/passwordless/complete", httpx.Chain(&PasswordlessCompleteHandler{
		Accounts: r.AccountService,
	}, strict()))

	r.Mux.Handle("POST /auth/verify", httpx.Chain(
		requestHandler(r.AccountService.RequestEmailVerification), strict()))
	r.Mux.Handle("POST /auth/verify/confirm", httpx.Chain(&VerifyConfirmHandler{
		Accounts: r.AccountService,
	}, strict()))

	r.Mux.Handle("POST /auth/reset", httpx.Chain(
		requestHandler(r.AccountService.RequestPasswordReset), strict()))
	r.Mux.Handle("POST /auth/reset/complete", httpx.Chain(&ResetCompleteHandler{
		Accounts: r.AccountService,
	}, strict()))

	r.Mux.Handle("GET /auth/userinfo", httpx.Chain(&UserInfoHandler{
		Store: r.store,
	}, lenient(), authn))

	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService))
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
