// Package api assembles the HTTP surface: routing, middleware order, and
// the wiring between handlers and domain services.
package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/prajayganiga-design/Mini-project/internal/api/handlers"
	"github.com/prajayganiga-design/Mini-project/internal/api/middleware"
	"github.com/prajayganiga-design/Mini-project/internal/auth"
	"github.com/prajayganiga-design/Mini-project/internal/config"
	"github.com/prajayganiga-design/Mini-project/internal/domain/accounts"
	"github.com/prajayganiga-design/Mini-project/internal/domain/events"
	"github.com/prajayganiga-design/Mini-project/internal/domain/registrations"
	"github.com/prajayganiga-design/Mini-project/internal/metrics"
)

// Deps carries the constructed services the router wires to handlers.
type Deps struct {
	Events        *events.Service
	Registrations *registrations.Service
	Accounts      *accounts.Service
	JWT           *auth.JWTManager
	Pool          *pgxpool.Pool
}

func NewRouter(cfg config.Config, deps Deps, logger zerolog.Logger) http.Handler {
	authHandler := handlers.NewAuthHandler(deps.Accounts)
	eventsHandler := handlers.NewEventsHandler(deps.Events)
	registrationsHandler := handlers.NewRegistrationsHandler(deps.Registrations)

	authenticate := middleware.Authenticate(deps.JWT)
	adminOnly := func(h http.Handler) http.Handler {
		return authenticate(middleware.RequireAdmin(h))
	}

	// One limiter store shared by every route. The tier setter must run
	// before the limiter so the limiter sees the route's tier.
	rateLimit := middleware.RateLimit(cfg.RateLimit)
	tiered := func(tier middleware.RateLimitTier) func(http.Handler) http.Handler {
		setTier := middleware.WithRateLimitTierHandler(tier)
		return func(h http.Handler) http.Handler {
			return setTier(rateLimit(h))
		}
	}
	publicTier := tiered(middleware.TierPublic)
	loginTier := tiered(middleware.TierLogin)
	userTier := tiered(middleware.TierUser)
	adminTier := tiered(middleware.TierAdmin)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(deps.Pool))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/auth/register", methodMux(map[string]http.Handler{
		http.MethodPost: loginTier(http.HandlerFunc(authHandler.Register)),
	}))
	mux.Handle("/api/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: loginTier(http.HandlerFunc(authHandler.Login)),
	}))
	mux.Handle("/api/auth/me", methodMux(map[string]http.Handler{
		http.MethodGet: publicTier(authenticate(http.HandlerFunc(authHandler.Me))),
	}))

	mux.Handle("/api/events", methodMux(map[string]http.Handler{
		http.MethodGet:  publicTier(http.HandlerFunc(eventsHandler.List)),
		http.MethodPost: adminTier(adminOnly(http.HandlerFunc(eventsHandler.Create))),
	}))
	mux.Handle("/api/events/{eventId}", methodMux(map[string]http.Handler{
		http.MethodGet:    publicTier(http.HandlerFunc(eventsHandler.Get)),
		http.MethodPut:    adminTier(adminOnly(http.HandlerFunc(eventsHandler.Update))),
		http.MethodDelete: adminTier(adminOnly(http.HandlerFunc(eventsHandler.Delete))),
	}))
	mux.Handle("/api/events/{eventId}/register", methodMux(map[string]http.Handler{
		http.MethodPost: userTier(authenticate(http.HandlerFunc(registrationsHandler.Register))),
	}))
	mux.Handle("/api/events/{eventId}/registrations", methodMux(map[string]http.Handler{
		http.MethodGet: adminTier(adminOnly(http.HandlerFunc(registrationsHandler.ListForEvent))),
	}))
	mux.Handle("/api/events/{eventId}/registrations/count", methodMux(map[string]http.Handler{
		http.MethodGet: publicTier(http.HandlerFunc(registrationsHandler.Count)),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	if cfg.Tracing.Enabled {
		handler = middleware.Tracing(handler)
	}
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
