package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mvaldez/beautyshelf-backend/pkg/config"
	"github.com/mvaldez/beautyshelf-backend/pkg/logger"
)

// Pinger is anything whose connectivity the readiness probe verifies.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, map[string]string{
			"status": "live",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady verifies the database and Redis before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, database Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if database == nil {
			checks["database"] = "unconfigured"
			healthy = false
		} else if err := database.Ping(ctx); err != nil {
			checks["database"] = "unreachable"
			healthy = false
			if logg != nil {
				logg.Error(ctx, "health.database_unreachable", err)
			}
		} else {
			checks["database"] = "ok"
		}

		if cache == nil {
			checks["redis"] = "unconfigured"
			healthy = false
		} else if err := cache.Ping(ctx); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
			if logg != nil {
				logg.Error(ctx, "health.redis_unreachable", err)
			}
		} else {
			checks["redis"] = "ok"
		}

		status := http.StatusOK
		payload := map[string]any{"status": "ready", "env": cfg.App.Env, "checks": checks}
		if !healthy {
			status = http.StatusServiceUnavailable
			payload["status"] = "degraded"
		}
		writeHealth(w, status, payload)
	}
}

func writeHealth(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
