package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thegrowthaccelerators/consulting-crm/internal/api/router"
	"github.com/thegrowthaccelerators/consulting-crm/internal/clients"
	appconfig "github.com/thegrowthaccelerators/consulting-crm/internal/config"
	"github.com/thegrowthaccelerators/consulting-crm/internal/dashboard"
	"github.com/thegrowthaccelerators/consulting-crm/internal/interactions"
	"github.com/thegrowthaccelerators/consulting-crm/internal/notify"
	"github.com/thegrowthaccelerators/consulting-crm/internal/observability/metrics"
	"github.com/thegrowthaccelerators/consulting-crm/internal/pipeline"
	"github.com/thegrowthaccelerators/consulting-crm/internal/prospects"
	"github.com/thegrowthaccelerators/consulting-crm/internal/seed"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
	"github.com/thegrowthaccelerators/consulting-crm/internal/users"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting consulting-crm API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	intakeMetrics := metrics.NewIntakeMetrics(registry)

	// Repositories (in-memory; all state is rebuilt from seed data on boot)
	submissionRepo := submissions.NewInMemoryRepository()
	prospectRepo := prospects.NewInMemoryRepository()
	clientRepo := clients.NewInMemoryRepository()
	interactionRepo := interactions.NewInMemoryRepository()
	userRepo := users.NewInMemoryRepository()

	sender, provider := buildEmailSender(cfg, logger)
	notifier := notify.NewService(sender, provider, cfg.NotifyEmail, intakeMetrics, logger)

	pipelineSvc := pipeline.NewService(submissionRepo, prospectRepo, clientRepo, logger)

	if cfg.SeedDemoData {
		if err := seed.Apply(context.Background(), seed.Stores{
			Submissions:  submissionRepo,
			Prospects:    prospectRepo,
			Clients:      clientRepo,
			Interactions: interactionRepo,
			Users:        userRepo,
		}, logger); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	routerCfg := &router.Config{
		Logger:              logger,
		SubmissionsHandler:  submissions.NewHandler(submissionRepo, notifier, intakeMetrics, logger),
		ProspectsHandler:    prospects.NewHandler(prospectRepo, logger),
		InteractionsHandler: interactions.NewHandler(interactionRepo, logger),
		ClientsHandler:      clients.NewHandler(clientRepo, logger),
		PipelineHandler:     pipeline.NewHandler(pipelineSvc, logger),
		DashboardHandler: dashboard.NewHandler(dashboard.Repositories{
			Submissions:  submissionRepo,
			Prospects:    prospectRepo,
			Clients:      clientRepo,
			Interactions: interactionRepo,
		}, registry, logger),
		NotifyHandler:      notify.NewHandler(notifier, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildEmailSender picks the notification provider from config. Anything
// unrecognised or unconfigured falls back to the stub.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, string) {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender != nil {
			return sender, "sendgrid"
		}
		logger.Warn("sendgrid selected but not configured, using stub sender")
	case "ses":
		awsCfg, err := loadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config, using stub sender", "error", err)
			break
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender != nil {
			return sender, "ses"
		}
	}
	return notify.NewStubEmailSender(logger), "stub"
}

// loadAWSConfig centralizes AWS SDK initialization for the SES sender.
func loadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, loaders...)
}
