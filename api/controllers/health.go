package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/harikrishnagadicharla/unicart/api/responses"
	"github.com/harikrishnagadicharla/unicart/pkg/config"
	pkgerrors "github.com/harikrishnagadicharla/unicart/pkg/errors"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"success": true, "status": "live", "env": cfg.App.Env})
	}
}

// HealthReady checks the database and redis dependencies.
func HealthReady(cfg *config.Config, deps ...pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]any{"success": true, "status": "ready", "env": cfg.App.Env})
	}
}
