// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"estate-assistant/internal/api"
	"estate-assistant/internal/common/auth"
	"estate-assistant/internal/common/aws"
	"estate-assistant/internal/common/config"
	"estate-assistant/internal/common/database"
	"estate-assistant/internal/common/logger"
	"estate-assistant/internal/common/observability"
	"estate-assistant/internal/engine/respond"
	"estate-assistant/internal/engine/session"
	"estate-assistant/internal/notify"
	"estate-assistant/internal/store/snapshot"
	"estate-assistant/internal/store/turnlog"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	recorder := turnlog.NewMulti(log)

	// --- Init PostgreSQL with retry ---
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		recorder.Add("postgres", turnlog.NewPostgresRecorder(pg))
	}

	// --- Init Elasticsearch with retry ---
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		recorder.Add("elasticsearch", turnlog.NewElasticsearchRecorder(esClient, cfg.Database.Elasticsearch.Index))
	}

	// --- Init Redis with retry ---
	var snapshots session.SnapshotStore
	if cfg.Database.Redis.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		snapshots = snapshot.NewStore(redis.Client, time.Duration(cfg.Engine.SnapshotTTL)*time.Second)
	}

	// --- Init External Service Clients ---
	var verifier api.TokenVerifier
	if cfg.Auth.Keycloak.URL != "" {
		verifier = auth.NewKeycloakClient(
			cfg.Auth.Keycloak.URL,
			cfg.Auth.Keycloak.Realm,
			cfg.Auth.Keycloak.ClientID,
			cfg.Auth.Keycloak.ClientSecret,
		)
		zapLog.Info("Keycloak verifier initialized")
	}

	var sesClient notify.SESService
	if cfg.Integrations.AWS.SES.Enabled {
		client, err := aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("SES client init failed", zap.Error(err))
		}
		sesClient = client
	}
	var snsClient notify.SNSService
	if cfg.Integrations.AWS.SNS.Enabled {
		client, err := aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("SNS client init failed", zap.Error(err))
		}
		snsClient = client
	}
	notifier := notify.NewService(cfg.Integrations, log, sesClient, snsClient)

	// --- Build the engine ---
	registry := respond.DefaultRegistry()
	if cfg.Engine.TemplateRegistryPath != "" {
		registry, err = respond.LoadRegistry(cfg.Engine.TemplateRegistryPath)
		if err != nil {
			zapLog.Fatal("template registry load failed", zap.Error(err))
		}
		zapLog.Info("Template registry loaded", zap.String("path", cfg.Engine.TemplateRegistryPath))
	}

	manager := session.NewManager(
		session.Config{
			Greeting:   cfg.Engine.Greeting,
			ReplyDelay: time.Duration(cfg.Engine.ReplyDelay) * time.Millisecond,
		},
		session.Deps{
			Synthesizer: respond.NewSynthesizer(registry),
			Recorder:    recorder,
			Snapshots:   snapshots,
			Notifier:    notifier,
			Obs:         obs,
			Logger:      log,
		},
	)

	apiServer := api.NewServer(cfg.Server, manager, verifier, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      apiServer.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown error", zap.Error(err))
	}

	zapLog.Info("Assistant server stopped gracefully")
}
