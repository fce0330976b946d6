package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rohandesai/brandline-backend/api/responses"
	"github.com/rohandesai/brandline-backend/pkg/config"
	"github.com/rohandesai/brandline-backend/pkg/db"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
	"github.com/rohandesai/brandline-backend/pkg/logger"
	"github.com/rohandesai/brandline-backend/pkg/storage/gcs"
)

const readyCheckTimeout = 5 * time.Second

type redisPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Brandline-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redisPinger, gcsP gcs.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Brandline-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		check := func(name string, ping func(context.Context) error) {
			if ping == nil {
				checks[name] = "skipped"
				return
			}
			if err := ping(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "health.dependency", err)
				}
				return
			}
			checks[name] = "up"
		}

		if dbP != nil {
			check("db", dbP.Ping)
		} else {
			checks["db"] = "skipped"
		}
		if redisP != nil {
			check("redis", redisP.Ping)
		} else {
			checks["redis"] = "skipped"
		}
		if gcsP != nil {
			check("gcs", gcsP.Ping)
		} else {
			checks["gcs"] = "skipped"
		}

		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
