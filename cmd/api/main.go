package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"scholarhub/internal/app"
	"scholarhub/internal/config"
	"scholarhub/internal/database"
	"scholarhub/internal/email"
	apphttp "scholarhub/internal/http"
	"scholarhub/internal/http/handlers"
	"scholarhub/internal/http/metrics"
	httpmw "scholarhub/internal/http/middleware"
	"scholarhub/internal/http/response"
	"scholarhub/internal/notify"
	"scholarhub/internal/observability"
	"scholarhub/internal/repository/postgres"
	"scholarhub/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewStudentProfileRepository(db)
	scholarshipRepo := postgres.NewScholarshipRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		limiter = httpmw.NewRedisLimiter(redisClient)
	}

	hub := notify.NewHub()
	var mailer notify.Mailer
	if cfg.SMTP.Enabled {
		mailer = email.NewService(cfg.SMTP)
	}
	notifier := notify.NewService(notificationRepo, hub, mailer, userRepo, logger)

	authService := app.NewAuthService(userRepo, jwtProvider, cfg.AccessTokenTTL)
	profileService := app.NewProfileService(profileRepo)
	scholarshipService := app.NewScholarshipService(scholarshipRepo, profileRepo)
	applicationService := app.NewApplicationService(applicationRepo, scholarshipRepo, profileRepo, notifier)
	documentService := app.NewDocumentService(documentRepo, notifier)
	notificationService := app.NewNotificationService(notificationRepo)

	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)
	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService, limiter),
		ProfileHandler:      handlers.NewProfileHandler(profileService),
		ScholarshipHandler:  handlers.NewScholarshipHandler(scholarshipService),
		ApplicationHandler:  handlers.NewApplicationHandler(applicationService, limiter),
		DocumentHandler:     handlers.NewDocumentHandler(documentService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		WSHandler:           handlers.NewWSHandler(hub, logger),
		MetricsHandler:      metrics.NewHandler(collector),
		AuthMiddleware:      authMiddleware,
		Metrics:             collector,
		RequestTimeout:      cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
