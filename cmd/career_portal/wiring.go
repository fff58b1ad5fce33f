package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/career-portal/internal/cache"
	"github.com/jonathan/career-portal/internal/config"
	"github.com/jonathan/career-portal/internal/db"
	"github.com/jonathan/career-portal/internal/llm"
	"github.com/jonathan/career-portal/internal/ranking"
	"github.com/jonathan/career-portal/internal/recommend"
	"github.com/jonathan/career-portal/internal/similarity"
)

// closer collects cleanup functions to run in reverse order
type closer []func()

func (c *closer) add(fn func()) { *c = append(*c, fn) }

func (c closer) close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// openDatabase connects to PostgreSQL and applies the schema
func openDatabase(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// buildRanker wires the optional career predictor and its cache into a Ranker.
// Without GEMINI_API_KEY the ranker runs on skills and text similarity alone.
func buildRanker(ctx context.Context, cfg *config.Config, database *db.DB, log logrus.FieldLogger, cleanup *closer) (*ranking.Ranker, error) {
	rankerCfg := ranking.RankerConfig{
		Similarity: similarity.Cosine{},
		Logger:     log,
	}

	if cfg.GeminiAPIKey == "" {
		log.Info("GEMINI_API_KEY not set, career prediction disabled")
		return ranking.NewRanker(rankerCfg), nil
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	cleanup.add(func() { _ = client.Close() })

	var labelCache cache.Cache = cache.NewMemoryCache()
	if cfg.RedisURL != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		cleanup.add(func() { _ = rdb.Close() })
		labelCache = cache.NewRedisCache(rdb, "career_portal:")
	}

	rankerCfg.Predictor = llm.NewCareerPredictor(client, llm.PredictorConfig{
		Labels:      cfg.CareerLabels,
		LabelSource: database.ListJobTitles,
		Cache:       labelCache,
		CacheTTL:    cfg.LabelCacheTTL.Std(),
		Logger:      log,
	})
	return ranking.NewRanker(rankerCfg), nil
}

// buildRecommendService opens the database and assembles the recommendation service
func buildRecommendService(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, cleanup *closer) (*db.DB, *recommend.Service, error) {
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup.add(database.Close)

	ranker, err := buildRanker(ctx, cfg, database, log, cleanup)
	if err != nil {
		return nil, nil, err
	}

	service := recommend.NewService(database, ranker, recommend.Config{
		TopK:        cfg.TopK,
		Concurrency: cfg.RefreshConcurrency,
		Logger:      log,
	})
	return database, service, nil
}
