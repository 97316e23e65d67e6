package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/application/scheduler"
	"github.com/linskybing/genie-forms/internal/config"
	"github.com/linskybing/genie-forms/internal/config/db"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/notify"
	"github.com/linskybing/genie-forms/internal/repository"
	"github.com/linskybing/genie-forms/pkg/llm"
	"github.com/linskybing/genie-forms/pkg/logger"
	"go.uber.org/zap"
)

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
	}

	deps := application.Deps{
		Registry: registry,
		Teams:    notify.NewTeamsClient(config.TeamsWebhookURL, nil),
		Log:      log,
		Email: notify.EmailSettings{
			From:     config.EmailFormFrom,
			To:       config.EmailTo,
			Bcc:      config.EmailBcc,
			DemoMode: config.DemoMode,
			DemoTo:   config.DemoEmailTo,
			DemoBcc:  config.DemoEmailBcc,
		},
	}
	if deps.Email.From == "" {
		deps.Email.From = config.EmailFrom
	}
	if config.ResendAPIKey != "" {
		deps.Mailer = notify.NewResendMailer(config.ResendAPIKey)
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
	}

	services := application.New(repos, deps)
	sched := scheduler.NewScheduler(
		repos.Submission,
		services,
		time.Duration(config.NotifyRetryInterval)*time.Second,
		config.NotifyRetryMaxAttempts,
		log.Named("retry"),
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("scheduler error", zap.Error(err))
	}
}
