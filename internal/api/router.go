package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/worklog-app/server/internal/api/handlers"
	"github.com/worklog-app/server/internal/api/middleware"
	"github.com/worklog-app/server/internal/config"
	"github.com/worklog-app/server/internal/domain/entries"
	"github.com/worklog-app/server/internal/metrics"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, service *entries.Service, enqueuer handlers.JobEnqueuer) http.Handler {
	entriesHandler := handlers.NewEntriesHandler(service, cfg.Environment)
	notificationsHandler := handlers.NewNotificationsHandler(service, enqueuer, cfg.Environment)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/v1/entries", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(entriesHandler.List),
		http.MethodPost: http.HandlerFunc(entriesHandler.Create),
	}))
	mux.Handle("/api/v1/entries/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(entriesHandler.Get),
	}))
	mux.Handle("/api/v1/entries/summary-email", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(notificationsHandler.Create),
	}))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
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
