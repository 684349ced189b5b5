package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/handlers"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/SscSPs/association_manager_app/internal/platform/config"
	"github.com/SscSPs/association_manager_app/internal/platform/messaging"
	"github.com/SscSPs/association_manager_app/internal/platform/pdf"
	"github.com/SscSPs/association_manager_app/internal/platform/storage"
	"github.com/SscSPs/association_manager_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/association_manager_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Association Manager API
// @version 1.0
// @description Cash flow, monthly closures, members and audit trail for associations.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := dto.RegisterValidators(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	uploads, err := storage.NewLocalStore(cfg.UploadsDir)
	if err != nil {
		return err
	}

	options := []services.ContainerOption{services.WithUploadStore(uploads)}
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := messaging.NewAuditPublisher(logger, cfg.KafkaBrokers, cfg.KafkaAuditTopic, cfg.AuditWorkers)
		if err != nil {
			return err
		}
		defer func() {
			if err := publisher.Close(5 * time.Second); err != nil {
				logger.Error("Failed to close audit publisher", slog.String("error", err.Error()))
			}
		}()
		options = append(options, services.WithAuditEventPublisher(publisher))
		logger.Info("Streaming audit events to Kafka", slog.String("topic", cfg.KafkaAuditTopic))
	}

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), options...)

	// The stored feature toggle wins over AUDIT_ENABLED.
	features, err := container.Settings.GetFeatures(ctx)
	if err != nil {
		logger.Warn("Could not load SaaS features, keeping AUDIT_ENABLED", slog.String("error", err.Error()))
	} else {
		container.Audit.SetEnabled(features.Auditoria)
	}
	logger.Info("Financial audit", slog.Bool("enabled", container.Audit.Enabled()))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.TenantHeader},
		ExposeHeaders:    []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	r.MaxMultipartMemory = 2 * cfg.UploadMaxBytes
	r.Static("/uploads", uploads.Dir())

	if err := handlers.RegisterRoutes(r, cfg, container, pdf.NewClosureReportRenderer()); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
