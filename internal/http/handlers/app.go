package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"globalfund/internal/domain"
	"globalfund/internal/engine"
	"globalfund/internal/infra"
)

// PledgeService is the slice of the pledge engine the HTTP layer needs.
type PledgeService interface {
	Pledge(ctx context.Context, in engine.PledgeInput) (engine.PledgeResult, error)
}

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	UoW     domain.UnitOfWork
	Pledges PledgeService
	Logger  zerolog.Logger
	Cfg     *infra.Config
}

func NewApp(uow domain.UnitOfWork, pledges PledgeService, logger zerolog.Logger, cfg *infra.Config) *App {
	return &App{UoW: uow, Pledges: pledges, Logger: logger, Cfg: cfg}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes a stable machine-readable code plus a short message; internal
// detail never leaks into the body.
func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}
