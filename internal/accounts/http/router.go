package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/reelhouse/accounts/internal/accounts/service"
	"github.com/reelhouse/accounts/internal/accounts/store"
	"github.com/reelhouse/accounts/pkg/httpx"
	"github.com/reelhouse/accounts/pkg/jwtx"
	"github.com/reelhouse/accounts/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	Accounts *service.AccountService
}

func NewRouter(
	signer *jwtx.Signer,
	buildVersion string,
	st store.Store,
	accounts *service.AccountService,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		Accounts:     accounts,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	authn := httpx.AuthnMiddleware(r.signer)

	// Credential endpoints sit behind the strict profile to slow brute force.
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(&SignupHandler{Accounts: r.Accounts, Signer: r.signer},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(&LoginHandler{Accounts: r.Accounts, Signer: r.signer},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(&LogoutHandler{Accounts: r.Accounts},
			authn,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	profile := &ProfileHandler{Accounts: r.Accounts}
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(http.HandlerFunc(profile.HandleGet),
			authn,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/me",
		httpx.Chain(http.HandlerFunc(profile.HandleDelete),
			authn,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/me/preferences",
		httpx.Chain(&PreferencesHandler{Accounts: r.Accounts},
			authn,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.HandleFunc("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.HandleFunc("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
