package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Hrishi1717/shrimp/api/controllers"
	"github.com/Hrishi1717/shrimp/api/middleware"
	"github.com/Hrishi1717/shrimp/internal/auth"
	"github.com/Hrishi1717/shrimp/internal/batches"
	"github.com/Hrishi1717/shrimp/internal/dashboard"
	"github.com/Hrishi1717/shrimp/internal/dispatch"
	"github.com/Hrishi1717/shrimp/internal/exports"
	"github.com/Hrishi1717/shrimp/internal/farmers"
	"github.com/Hrishi1717/shrimp/internal/inventory"
	"github.com/Hrishi1717/shrimp/internal/payments"
	"github.com/Hrishi1717/shrimp/internal/processing"
	"github.com/Hrishi1717/shrimp/internal/users"
	"github.com/Hrishi1717/shrimp/pkg/config"
	"github.com/Hrishi1717/shrimp/pkg/enums"
	"github.com/Hrishi1717/shrimp/pkg/logger"
	"github.com/Hrishi1717/shrimp/pkg/metrics"
	"github.com/Hrishi1717/shrimp/pkg/redis"
)

// Dependencies is everything the HTTP surface is wired from. Nil stores turn
// the matching middleware into a pass-through.
type Dependencies struct {
	Config *config.Config
	Logger *logger.Logger

	Pingers        map[string]controllers.Pinger
	RateLimiter    middleware.RateLimiterStore
	Idempotency    redis.IdempotencyStore
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Auth       auth.Service
	Users      users.Service
	Farmers    farmers.Service
	Batches    batches.Service
	Processing processing.Service
	Inventory  inventory.Service
	Dispatch   dispatch.Service
	Payments   payments.Service
	Dashboard  dashboard.Service
	Exports    exports.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS.Origins),
	)

	sessionPolicy := middleware.NewRateLimitPolicy(
		"session",
		cfg.RateLimit.SessionWindow,
		cfg.RateLimit.SessionIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Pingers, logg))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	ownerOrAdmin := middleware.RequireRole(middleware.MessageOwnerOrAdmin, logg, enums.RoleOwner, enums.RoleAdmin)
	adminOnly := middleware.RequireRole(middleware.MessageAdmin, logg, enums.RoleAdmin)
	farmerOnly := middleware.RequireRole(middleware.MessageNotFarmer, logg, enums.RoleFarmer)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimit(sessionPolicy, deps.RateLimiter, logg)).
			Post("/auth/session", controllers.AuthSession(deps.Auth, cfg.Session, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Auth, cfg.Session.CookieName, logg))
			r.Use(middleware.Idempotency(deps.Idempotency, logg))

			r.Get("/auth/me", controllers.AuthMe(logg))
			r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, cfg.Session, logg))

			r.Route("/users", func(r chi.Router) {
				r.With(ownerOrAdmin).Post("/invite", controllers.UsersInvite(deps.Users, logg))
				r.With(ownerOrAdmin).Get("/", controllers.UsersList(deps.Users, logg))
				r.With(adminOnly).Put("/{userID}/role", controllers.UsersUpdateRole(deps.Users, logg))
			})

			r.Route("/farmers", func(r chi.Router) {
				r.With(adminOnly).Post("/link", controllers.FarmersLink(deps.Farmers, logg))
				r.With(farmerOnly).Get("/me/stats", controllers.FarmerStats(deps.Dashboard, logg))
				r.Post("/", controllers.FarmersCreate(deps.Farmers, logg))
				r.Get("/", controllers.FarmersList(deps.Farmers, logg))
				r.Get("/{farmerID}", controllers.FarmerGet(deps.Farmers, logg))
			})

			r.Route("/batches", func(r chi.Router) {
				r.Post("/", controllers.BatchesCreate(deps.Batches, logg))
				r.Get("/", controllers.BatchesList(deps.Batches, logg))
				r.Get("/{batchID}", controllers.BatchGet(deps.Batches, logg))
			})

			r.Route("/processing", func(r chi.Router) {
				r.Post("/", controllers.ProcessingCreate(deps.Processing, logg))
				r.Get("/batch/{batchID}", controllers.ProcessingListByBatch(deps.Processing, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Post("/", controllers.InventoryCreate(deps.Inventory, logg))
				r.Get("/", controllers.InventoryList(deps.Inventory, logg))
			})

			r.Route("/dispatch", func(r chi.Router) {
				r.Post("/", controllers.DispatchCreate(deps.Dispatch, logg))
				r.Get("/", controllers.DispatchList(deps.Dispatch, logg))
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", controllers.PaymentsCreate(deps.Payments, logg))
				r.Get("/", controllers.PaymentsList(deps.Payments, logg))
				r.Put("/{paymentID}/status", controllers.PaymentsUpdateStatus(deps.Payments, logg))
			})

			r.Get("/dashboard/admin", controllers.DashboardAdmin(deps.Dashboard, logg))
			r.Post("/export/{kind}", controllers.Export(deps.Exports, logg))
		})
	})

	return r
}
