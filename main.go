package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/config"
	httpapi "github.com/NileMind-Team/pahray-sub001/internal/http"
	"github.com/NileMind-Team/pahray-sub001/internal/logger"
	"github.com/NileMind-Team/pahray-sub001/internal/printer"
	"github.com/NileMind-Team/pahray-sub001/internal/queue"
	"github.com/NileMind-Team/pahray-sub001/internal/report"
	"github.com/NileMind-Team/pahray-sub001/internal/storage"
	"github.com/NileMind-Team/pahray-sub001/internal/upstream"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.BackendBaseURL == "" {
		log.Fatal("BACKEND_BASE_URL is required")
	}

	backend := upstream.New(cfg.BackendBaseURL, cfg.BackendAPIKey, cfg.UpstreamTimeout, log)
	printSink := printer.New(cfg.PrintSinkURL, log)
	if !printSink.Configured() {
		log.Warn("print sink disabled (PRINT_SINK_URL is empty)")
	}

	var archive *storage.ReportArchive
	if cfg.ObjectStoreEndpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		archive, err = storage.NewReportArchive(ctx, storage.Config{
			Endpoint:        cfg.ObjectStoreEndpoint,
			Region:          cfg.ObjectStoreRegion,
			AccessKeyID:     cfg.ObjectStoreAccessKeyID,
			SecretAccessKey: cfg.ObjectStoreSecretAccessKey,
			Bucket:          cfg.ObjectStoreBucket,
			PublicBaseURL:   cfg.ObjectStorePublicBaseURL,
			StorageClass:    cfg.ObjectStoreStorageClass,
		})
		cancel()
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("report archive setup failed", zap.Error(err))
			}
			log.Warn("report archive setup failed; continuing without archive", zap.Error(err))
			archive = nil
		}
	} else {
		log.Info("report archive disabled (OBJECT_STORE_ENDPOINT is empty)")
	}

	var queueClient *queue.Client
	if cfg.RabbitMQURL != "" {
		qc, err := queue.New(cfg.RabbitMQURL)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq connection failed", zap.Error(err))
			}
			log.Warn("rabbitmq connection failed; continuing without events", zap.Error(err))
			qc = nil
		}
		if qc != nil {
			if err := qc.EnsureExchange(queue.EventsExchange); err != nil {
				if cfg.Env == "production" {
					log.Fatal("rabbitmq exchange failed", zap.Error(err))
				}
				log.Warn("rabbitmq exchange failed; continuing without events", zap.Error(err))
				_ = qc.Close()
				qc = nil
			}
		}
		queueClient = qc
		if qc != nil {
			defer qc.Close()
			log.Info("report events enabled", zap.String("exchange", queue.EventsExchange))
		}
	} else {
		log.Info("report events disabled (RABBITMQ_URL is empty)")
	}

	builder := &report.DocumentBuilder{TimeOffsetHours: cfg.TimeOffsetHours}
	reports := report.NewController(backend, backend, printSink, builder, log)

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(reports, backend, archive, queueClient, log, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("admin report api ready", zap.String("base", "/api/admin"))
		log.Info("admin report service listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
