package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-portal/internal/logger"
	"github.com/jonathan/career-portal/internal/schemas"
	"github.com/jonathan/career-portal/internal/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load jobs, courses, videos and trends from a catalog file",
	Long:  "Validates a catalog JSON file against its schema and inserts its job postings, courses, videos and market trends into the database.",
	RunE:  runSeed,
}

var seedCatalogPath string

func init() {
	seedCmd.Flags().StringVarP(&seedCatalogPath, "catalog", "c", "", "Path to catalog JSON file (required)")
	if err := seedCmd.MarkFlagRequired("catalog"); err != nil {
		panic(fmt.Sprintf("failed to mark catalog flag as required: %v", err))
	}
	rootCmd.AddCommand(seedCmd)
}

// catalogStore is the subset of the database the seeder writes to
type catalogStore interface {
	CreateJobPosting(ctx context.Context, req *types.JobRequest) (*types.JobPosting, error)
	CreateCourse(ctx context.Context, req *types.CourseRequest) (*types.Course, error)
	CreateVideo(ctx context.Context, req *types.VideoRequest) (*types.Video, error)
	CreateTrend(ctx context.Context, req *types.TrendRequest) (*types.Trend, error)
}

type seedCounts struct {
	Jobs    int
	Courses int
	Videos  int
	Trends  int
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	catalog, err := loadCatalog(seedCatalogPath)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	counts, err := seedCatalog(ctx, database, catalog)
	if err != nil {
		return err
	}

	logger.NewWithLevel(cfg.LogLevel).WithField("catalog", seedCatalogPath).Info("catalog seeded")
	_, _ = fmt.Fprintf(os.Stdout, "Seeded %d jobs, %d courses, %d videos, %d trends\n",
		counts.Jobs, counts.Courses, counts.Videos, counts.Trends)
	return nil
}

// loadCatalog reads a catalog file and validates it against the schema and the request rules
func loadCatalog(path string) (*types.Catalog, error) {
	content, err := schemas.ValidateFile(schemas.Catalog, path)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}

	var catalog types.Catalog
	if err := json.Unmarshal(content, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}

	for i := range catalog.Jobs {
		if err := catalog.Jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
	}
	for i := range catalog.Courses {
		if err := catalog.Courses[i].Validate(); err != nil {
			return nil, fmt.Errorf("courses[%d]: %w", i, err)
		}
	}
	for i := range catalog.Videos {
		if err := catalog.Videos[i].Validate(); err != nil {
			return nil, fmt.Errorf("videos[%d]: %w", i, err)
		}
	}
	for i := range catalog.Trends {
		if err := catalog.Trends[i].Validate(); err != nil {
			return nil, fmt.Errorf("trends[%d]: %w", i, err)
		}
	}
	return &catalog, nil
}

// seedCatalog inserts every catalog entry, stopping at the first failure
func seedCatalog(ctx context.Context, store catalogStore, catalog *types.Catalog) (seedCounts, error) {
	var counts seedCounts
	for i := range catalog.Jobs {
		if _, err := store.CreateJobPosting(ctx, &catalog.Jobs[i]); err != nil {
			return counts, fmt.Errorf("failed to create job %q: %w", catalog.Jobs[i].Title, err)
		}
		counts.Jobs++
	}
	for i := range catalog.Courses {
		if _, err := store.CreateCourse(ctx, &catalog.Courses[i]); err != nil {
			return counts, fmt.Errorf("failed to create course %q: %w", catalog.Courses[i].Title, err)
		}
		counts.Courses++
	}
	for i := range catalog.Videos {
		if _, err := store.CreateVideo(ctx, &catalog.Videos[i]); err != nil {
			return counts, fmt.Errorf("failed to create video %q: %w", catalog.Videos[i].Title, err)
		}
		counts.Videos++
	}
	for i := range catalog.Trends {
		if _, err := store.CreateTrend(ctx, &catalog.Trends[i]); err != nil {
			return counts, fmt.Errorf("failed to create trend %q: %w", catalog.Trends[i].JobRole, err)
		}
		counts.Trends++
	}
	return counts, nil
}
