// Command schoolauthd runs the school management authentication service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/schoolauth/auth/jwt"
	"github.com/kbukum/schoolauth/auth/password"
	"github.com/kbukum/schoolauth/config"
	"github.com/kbukum/schoolauth/logger"
	"github.com/kbukum/schoolauth/observability"
	"github.com/kbukum/schoolauth/school"
	"github.com/kbukum/schoolauth/server"
	"github.com/kbukum/schoolauth/server/endpoint"
	"github.com/kbukum/schoolauth/server/middleware"
	"github.com/kbukum/schoolauth/store"
	"github.com/kbukum/schoolauth/version"
)

func main() {
	if err := run(); err != nil {
		logger.Fatal("Service failed", logger.Fields(logger.FieldError, err.Error()))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting service", logger.Fields(
		"name", cfg.Name,
		"version", version.GetShortVersion(),
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Otel.Enabled() {
		tp, err := observability.InitTracer(ctx, cfg.Otel.TracerConfig(cfg.Name, version.Version))
		if err != nil {
			return err
		}
		defer tp.Shutdown(context.Background())

		mp, err := observability.InitMeter(ctx, cfg.Otel.MeterConfig(cfg.Name, version.Version))
		if err != nil {
			return err
		}
		defer mp.Shutdown(context.Background())

		metrics, err = observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return err
		}
	}

	db, err := store.Connect(ctx, &cfg.Mongo, log)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	hasher, err := password.NewFromConfig(&cfg.Auth.Password)
	if err != nil {
		return err
	}
	tokens, err := jwt.NewService(&cfg.Auth.JWT)
	if err != nil {
		return err
	}

	svc := school.NewService(db.Students(), db.Parents(), hasher, tokens, log).WithMetrics(metrics)
	handler := school.NewHandler(svc, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, func(ctx context.Context) []endpoint.ComponentHealth {
		health := endpoint.ComponentHealth{Name: "mongodb", Status: endpoint.StatusHealthy}
		if err := db.Ping(ctx); err != nil {
			health.Status = endpoint.StatusUnhealthy
			health.Message = "ping failed"
		}
		return []endpoint.ComponentHealth{health}
	})
	handler.Register(srv.GinEngine(), middleware.BearerAuth(tokens))

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")
	return srv.Stop(context.Background())
}
