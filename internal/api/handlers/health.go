package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prajayganiga-design/Mini-project/internal/api/respond"
)

// Healthz reports process liveness only.
func Healthz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Readyz pings the database; not ready means load balancers should stop
// routing here.
func Readyz(pool *pgxpool.Pool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if pool == nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		if err := pool.Ping(ctx); err != nil {
			respond.Error(w, r, http.StatusServiceUnavailable, "database unreachable", err)
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
}
