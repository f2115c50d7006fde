package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/massfitdev/massfit-bot/api/responses"
	"github.com/massfitdev/massfit-bot/pkg/config"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
	"github.com/massfitdev/massfit-bot/pkg/logger"
)

const pingTimeout = 2 * time.Second

// Pinger is the health-check surface shared by the database and Redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MassFit-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each dependency and reports the first set of failures.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MassFit-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		failed := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(failed)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
