package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/massfitdev/massfit-bot/api/handlers"
	"github.com/massfitdev/massfit-bot/api/middleware"
	"github.com/massfitdev/massfit-bot/pkg/config"
	"github.com/massfitdev/massfit-bot/pkg/logger"
)

// NewRouter builds the operational HTTP surface: liveness, readiness, and
// Prometheus metrics. The storefront itself lives entirely inside Telegram.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	deps map[string]handlers.Pinger,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", handlers.HealthLive(cfg))
		r.Get("/ready", handlers.HealthReady(cfg, logg, deps))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
