package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"globalfund/internal/http/handlers"
	"globalfund/internal/infra"
	"globalfund/internal/middleware"
)

// NewRouter wires the HTTP surface: public auth and campaign reads, and the
// authenticated pledge, wallet and campaign-create routes.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N(cfg.DefaultLocale, lookup),
	)

	auth := middleware.AuthJWT(cfg.JWTSecret)
	limit := middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)

	r.Get("/v1/healthz", app.Health)
	r.Method(stdhttp.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(limit)
			r.Post("/register", app.Register)
			r.Post("/login", app.Login)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", app.CampaignsList)
			r.Get("/{id}", app.CampaignShow)
			r.With(auth).Post("/", app.CampaignsCreate)
		})

		r.Route("/pledges", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", app.PledgesCreate)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(auth)
			r.Get("/me", app.Me)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", app.WalletShow)
		})
	})

	return r
}
