package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vrajamarii/database"
	"vrajamarii/docs"
	"vrajamarii/internal/cache"
	"vrajamarii/internal/controllers"
	"vrajamarii/internal/evaluation"
	"vrajamarii/internal/mail"
	"vrajamarii/internal/metrics"
	"vrajamarii/internal/middleware"
	"vrajamarii/internal/repository"
	"vrajamarii/routes"
)

func newServeCommand(envFile *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *envFile, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run database migrations before serving")
	return cmd
}

func serve(ctx context.Context, envFile string, migrate bool) error {
	cfg, log, err := bootstrap(envFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	// The record layout is checked once at startup instead of per request.
	if err := evaluation.CheckSchema(); err != nil {
		log.Error("evaluation schema check failed", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDatabase(cfg.Database, log)
	if err != nil {
		return err
	}
	if migrate {
		if err := database.MigrateDatabase(db, log); err != nil {
			return err
		}
	}
	database.MonitorDBConnections(ctx, db, log, time.Minute)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	drafts := cache.NewDraftStore(redisClient.Client(), cfg.Draft.TTL)

	mailer, err := mail.New(cfg.Mail, log)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(serviceName, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

	evaluationRepo := repository.NewEvaluationRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)

	evaluationController := controllers.NewEvaluationController(
		evaluationRepo, waitlistRepo, profileRepo, drafts, collector, log.Named("evaluation"), cfg.Draft.SubmitLock,
	)
	waitlistController := controllers.NewWaitlistController(waitlistRepo, log.Named("waitlist"))
	profileController := controllers.NewUserProfileController(profileRepo, waitlistRepo, evaluationRepo, log.Named("profile"))
	webhookController := controllers.NewWebhookController(
		waitlistRepo, mailer, collector, log.Named("webhook"), cfg.Mail.From, cfg.SiteURL,
	)
	healthController := controllers.NewHealthController(sqlDB, redisClient)

	docs.SwaggerInfo.Version = Version
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log.Named("http")), middleware.MetricsMiddleware(collector))

	auth := middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	routes.RegisterSystemRoutes(router, healthController, collector)
	routes.RegisterSwaggerRoutes(router)
	routes.RegisterWaitlistRoutes(router, waitlistController)
	routes.RegisterUserProfileRoutes(router, profileController, auth)
	routes.RegisterEvaluationRoutes(router, evaluationController, auth)
	routes.RegisterWebhookRoutes(router, webhookController, cfg.Auth.WebhookSecret)

	server := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("docs", "/swagger/index.html"),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
