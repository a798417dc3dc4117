package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/items-api/internal/config"
	"github.com/tuanvumaihuynh/items-api/internal/event"
	"github.com/tuanvumaihuynh/items-api/internal/http"
	"github.com/tuanvumaihuynh/items-api/internal/log"
	"github.com/tuanvumaihuynh/items-api/internal/repository"
	"github.com/tuanvumaihuynh/items-api/internal/service"
	"github.com/tuanvumaihuynh/items-api/internal/storage/db"
	"github.com/tuanvumaihuynh/items-api/internal/storage/mq"
	"github.com/tuanvumaihuynh/items-api/internal/telemetry"
	"github.com/tuanvumaihuynh/items-api/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running items api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	if cfg.Postgres.AutoMigrate {
		results, err := db.Migrate(ctx, pgxPool)
		if err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
		logger.InfoContext(ctx, "database schema is up to date", slog.Int("applied", len(results)))
	}

	dbClient := db.NewClient(pgxPool)
	itemRepository := repository.NewItemRepository(dbClient)

	var publisher event.Publisher = event.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return fmt.Errorf("error creating kafka producer: %w", err)
		}
		defer kafkaProducer.Close()

		publisher = event.NewMQPublisher(kafkaProducer, cfg.Kafka.PublishTimeout)
		logger.InfoContext(ctx, "item events enabled", slog.Any("addresses", cfg.Kafka.Addresses))
	}

	itemService := service.NewItemService(logger, itemRepository, publisher)

	svc := http.New(cfg.HTTP, logger, itemService, dbClient)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}
	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
