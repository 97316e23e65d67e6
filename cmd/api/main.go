package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/linskybing/genie-forms/docs"
	"github.com/linskybing/genie-forms/internal/api/handlers"
	"github.com/linskybing/genie-forms/internal/api/middleware"
	"github.com/linskybing/genie-forms/internal/api/routes"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/archive"
	"github.com/linskybing/genie-forms/internal/config"
	"github.com/linskybing/genie-forms/internal/config/db"
	"github.com/linskybing/genie-forms/internal/cron"
	"github.com/linskybing/genie-forms/internal/feed"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/notify"
	"github.com/linskybing/genie-forms/internal/repository"
	"github.com/linskybing/genie-forms/pkg/llm"
	"github.com/linskybing/genie-forms/pkg/logger"
	"go.uber.org/zap"
)

const feedBuffer = 32

// @title Genie Forms API
// @version 1.0
// @description Dynamic forms with validation, suggestions and notifications.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	log, err := logger.Init(config.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize JWT signing key
	middleware.Init()
	handlers.SecureCookies = config.CookieSecure

	db.Init()
	repos := repository.NewRepositories(db.DB)
	if err := repos.Migrate(); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	registry := forms.NewRegistry(config.EnabledForms, log.Named("forms"))
	if config.FormsDir != "" {
		if err := registry.Reload(config.FormsDir); err != nil {
			log.Fatal("failed to load form definitions", zap.String("dir", config.FormsDir), zap.Error(err))
		}
		if err := registry.Watch(ctx, config.FormsDir); err != nil {
			log.Warn("form definitions will not be reloaded", zap.Error(err))
		}
	}

	deps := application.Deps{
		Registry:   registry,
		Teams:      notify.NewTeamsClient(config.TeamsWebhookURL, nil),
		AdminNames: config.AdminUsernames,
		Log:        log,
		Email: notify.EmailSettings{
			From:     firstNonEmpty(config.EmailFormFrom, config.EmailFrom),
			To:       config.EmailTo,
			Bcc:      config.EmailBcc,
			DemoMode: config.DemoMode,
			DemoTo:   config.DemoEmailTo,
			DemoBcc:  config.DemoEmailBcc,
		},
	}

	if config.ResendAPIKey != "" {
		deps.Mailer = notify.NewResendMailer(config.ResendAPIKey)
	} else {
		log.Warn("RESEND_API_KEY not set, marketing emails are disabled")
	}

	client, err := llm.New(ctx, llm.Config{
		Provider: config.LLMProvider,
		APIKey:   config.LLMAPIKey(),
		Model:    config.LLMModel,
	})
	if err != nil {
		log.Fatal("failed to initialize llm client", zap.Error(err))
	}
	if client != nil {
		deps.LLM = client
	} else {
		log.Warn("no llm api key set, AI assistance is disabled", zap.String("provider", config.LLMProvider))
	}

	arch, err := archive.Open(ctx, archive.Config{
		Endpoint:  config.MinioEndpoint,
		AccessKey: config.MinioAccessKey,
		SecretKey: config.MinioSecretKey,
		UseSSL:    config.MinioUseSSL,
		Bucket:    config.MinioBucket,
	}, log.Named("archive"))
	if err != nil {
		log.Warn("submission archive unavailable", zap.Error(err))
	}
	if arch != nil {
		deps.Archive = arch
	}

	hub := feed.NewHub(feedBuffer, log.Named("feed"))
	defer hub.Close()
	deps.Feed = hub

	services := application.New(repos, deps)

	cron.StartCleanupTask(ctx, services.Audit, config.AuditRetentionDays, log.Named("cron"))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(log.Named("http")))

	routes.RegisterRoutes(router, handlers.New(services, repos, hub))

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting API server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
