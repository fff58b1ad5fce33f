package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-portal/internal/logger"
	"github.com/jonathan/career-portal/internal/queue"
	"github.com/jonathan/career-portal/internal/recommend"
)

var workerCount int

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume recommendation refresh events",
	Long:  "Consumes the recommendation_refresh RabbitMQ queue with a pool of workers and recomputes the requested students' recommendations.",
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().IntVarP(&workerCount, "workers", "w", 4, "Number of concurrent queue consumers")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.RabbitMQURL == "" {
		return fmt.Errorf("RABBITMQ_URL environment variable is required")
	}
	if workerCount <= 0 {
		return fmt.Errorf("--workers must be positive")
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cleanup closer
	defer cleanup.close()

	_, service, err := buildRecommendService(ctx, cfg, log, &cleanup)
	if err != nil {
		return err
	}

	consumer := queue.NewConsumer(cfg.RabbitMQURL, log)
	log.WithField("workers", workerCount).Info("refresh worker starting")
	if err := consumer.Run(ctx, workerCount, refreshHandler(service, log)); err != nil {
		return fmt.Errorf("refresh worker stopped: %w", err)
	}
	log.Info("refresh worker stopped")
	return nil
}

// refresher is the part of recommend.Service the worker needs
type refresher interface {
	Handle(ctx context.Context, userID uuid.UUID) error
}

// refreshHandler adapts the recommendation service to queue events
func refreshHandler(service refresher, log logrus.FieldLogger) queue.Handler {
	return func(ctx context.Context, event queue.RefreshEvent) error {
		userID, err := event.Target()
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"user_id": userID,
			"reason":  event.Reason,
		}).Debug("refresh event received")
		return service.Handle(ctx, userID)
	}
}

var _ refresher = (*recommend.Service)(nil)
