package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-portal/internal/logger"
	"github.com/jonathan/career-portal/internal/queue"
	"github.com/jonathan/career-portal/internal/recommend"
	"github.com/jonathan/career-portal/internal/server"
	"github.com/jonathan/career-portal/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the career portal REST API. Recommendation refreshes go to RabbitMQ when RABBITMQ_URL is set and run in-process otherwise.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var cleanup closer
	defer cleanup.close()

	database, service, err := buildRecommendService(ctx, cfg, log, &cleanup)
	if err != nil {
		return err
	}

	var trigger recommend.Trigger
	if cfg.RabbitMQURL != "" {
		publisher, err := queue.NewPublisher(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		cleanup.add(func() { _ = publisher.Close() })
		trigger = publisher
		log.Info("recommendation refreshes published to RabbitMQ")
	} else {
		inProcess := recommend.NewInProcessTrigger(service, 0, log)
		cleanup.add(inProcess.Wait)
		trigger = inProcess
		log.Info("RABBITMQ_URL not set, refreshing recommendations in-process")
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Store:          database,
		Recommender:    service,
		Trigger:        trigger,
		RateLimit:      ratelimit.LoadConfig(),
		Logger:         log,
		MaxUploadBytes: cfg.MaxUploadBytes,
		FetchTimeout:   cfg.FetchTimeout.Std(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
