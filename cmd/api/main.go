package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ankaa/payroll-backend-go/internal/config"
	appHTTP "github.com/ankaa/payroll-backend-go/internal/handler/http"
	"github.com/ankaa/payroll-backend-go/internal/pkg/database"
	"github.com/ankaa/payroll-backend-go/internal/pkg/jwt"
	"github.com/ankaa/payroll-backend-go/internal/pkg/metrics"
	"github.com/ankaa/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/ankaa/payroll-backend-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("payroll api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logLevel := parseLogLevel(cfg.App.LogLevel)
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	policy, err := config.LoadPolicy(cfg.Payroll.PolicyFile)
	if err != nil {
		return fmt.Errorf("load payroll policy: %w", err)
	}
	batchConcurrency := policy.BatchConcurrency
	if cfg.Payroll.BatchConcurrency > 0 {
		batchConcurrency = cfg.Payroll.BatchConcurrency
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	payrollMetrics := metrics.New(registry)

	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	payrollRepo := postgresql.NewPayrollRepository(db)
	earningsRepo := postgresql.NewEarningsRepository(db)

	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, earningsRepo, payrollService.Options{
		GraceDays:        policy.EditGraceDays,
		BatchConcurrency: batchConcurrency,
		DefaultDiscounts: policy.CompanyDiscounts(""),
		Metrics:          payrollMetrics,
	})
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	routerOpts := appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       logLevel,
		AllowedOrigins: cfg.App.AllowedOrigins,
		Health:         db,
	}
	if cfg.Metrics.Enabled {
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}
	router := appHTTP.NewRouter(jwtService.JWTAuth(), payrollHandler, routerOpts)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server running",
			"addr", server.Addr,
			"grace_days", policy.EditGraceDays,
			"batch_concurrency", batchConcurrency,
			"default_discounts", len(policy.DefaultDiscounts),
		)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
