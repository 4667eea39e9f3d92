package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/Hrishi1717/shrimp/api/controllers"
	"github.com/Hrishi1717/shrimp/api/routes"
	"github.com/Hrishi1717/shrimp/internal/auth"
	"github.com/Hrishi1717/shrimp/internal/batches"
	"github.com/Hrishi1717/shrimp/internal/dashboard"
	"github.com/Hrishi1717/shrimp/internal/dispatch"
	"github.com/Hrishi1717/shrimp/internal/exports"
	"github.com/Hrishi1717/shrimp/internal/farmers"
	"github.com/Hrishi1717/shrimp/internal/inventory"
	"github.com/Hrishi1717/shrimp/internal/payments"
	"github.com/Hrishi1717/shrimp/internal/processing"
	"github.com/Hrishi1717/shrimp/internal/sessions"
	"github.com/Hrishi1717/shrimp/internal/users"
	"github.com/Hrishi1717/shrimp/pkg/config"
	"github.com/Hrishi1717/shrimp/pkg/db"
	"github.com/Hrishi1717/shrimp/pkg/identityprovider"
	"github.com/Hrishi1717/shrimp/pkg/instance"
	"github.com/Hrishi1717/shrimp/pkg/logger"
	"github.com/Hrishi1717/shrimp/pkg/metrics"
	"github.com/Hrishi1717/shrimp/pkg/migrate"
	"github.com/Hrishi1717/shrimp/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	deps, err := buildDependencies(cfg, logg, dbClient, redisClient)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "api server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildDependencies(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (routes.Dependencies, error) {
	conn := dbClient.DB()
	lifecycle := metrics.NewLifecycleMetrics(prometheus.DefaultRegisterer)

	usersRepo := users.NewRepository(conn)
	farmersRepo := farmers.NewRepository(conn)
	stagesRepo := processing.NewRepository(conn)
	paymentsRepo := payments.NewRepository(conn)

	var errs error
	must := func(err error) { errs = multierr.Append(errs, err) }

	userSvc, err := users.NewService(users.ServiceParams{Repository: usersRepo, Logger: logg})
	must(err)
	authSvc, err := auth.NewService(auth.ServiceParams{
		Users:    usersRepo,
		Sessions: sessions.NewRepository(conn),
		Provider: identityprovider.NewClient(nil),
		Logger:   logg,
	})
	must(err)
	farmerSvc, err := farmers.NewService(farmers.ServiceParams{Repository: farmersRepo, Users: userSvc, Logger: logg, Metrics: lifecycle})
	must(err)
	batchSvc, err := batches.NewService(batches.ServiceParams{Repository: batches.NewRepository(conn), Logger: logg, Metrics: lifecycle})
	must(err)
	processingSvc, err := processing.NewService(processing.ServiceParams{Repository: stagesRepo, Batches: batchSvc, Logger: logg, Metrics: lifecycle})
	must(err)
	inventorySvc, err := inventory.NewService(inventory.ServiceParams{Repository: inventory.NewRepository(conn), Batches: batchSvc, Logger: logg, Metrics: lifecycle})
	must(err)
	dispatchSvc, err := dispatch.NewService(dispatch.ServiceParams{Repository: dispatch.NewRepository(conn), Batches: batchSvc, Logger: logg, Metrics: lifecycle})
	must(err)
	paymentSvc, err := payments.NewService(payments.ServiceParams{Repository: paymentsRepo, Batches: batchSvc, Logger: logg, Metrics: lifecycle})
	must(err)
	dashboardSvc, err := dashboard.NewService(dashboard.ServiceParams{
		Repository: dashboard.NewRepository(conn),
		Farmers:    farmersRepo,
		Payments:   paymentsRepo,
	})
	must(err)
	exportSvc, err := exports.NewService(exports.ServiceParams{Batches: batchSvc, Payments: paymentSvc, Stages: stagesRepo, Logger: logg})
	must(err)

	if errs != nil {
		return routes.Dependencies{}, errs
	}

	return routes.Dependencies{
		Config: cfg,
		Logger: logg,
		Pingers: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		RateLimiter:    redisClient,
		Idempotency:    redisClient,
		HTTPMetrics:    metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		MetricsHandler: promhttp.Handler(),
		Auth:           authSvc,
		Users:          userSvc,
		Farmers:        farmerSvc,
		Batches:        batchSvc,
		Processing:     processingSvc,
		Inventory:      inventorySvc,
		Dispatch:       dispatchSvc,
		Payments:       paymentSvc,
		Dashboard:      dashboardSvc,
		Exports:        exportSvc,
	}, nil
}
