package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-portal/internal/logger"
	"github.com/jonathan/career-portal/internal/observability"
	"github.com/jonathan/career-portal/internal/ranking"
	"github.com/jonathan/career-portal/internal/schemas"
	"github.com/jonathan/career-portal/internal/similarity"
	"github.com/jonathan/career-portal/internal/types"
)

var rankJobsCmd = &cobra.Command{
	Use:   "rank-jobs",
	Short: "Rank job postings for a student profile",
	Long:  "Ranks the job postings in a JSON file for the student profile in another JSON file, using skill match and text similarity, and writes the recommendations as JSON. Both inputs are validated against their schemas.",
	RunE:  runRankJobs,
}

var (
	rankJobsProfile string
	rankJobsJobs    string
	rankJobsTopK    int
	rankJobsOutput  string
	rankJobsVerbose bool
)

func init() {
	rankJobsCmd.Flags().StringVarP(&rankJobsProfile, "profile", "p", "", "Path to student profile JSON file (required)")
	rankJobsCmd.Flags().StringVarP(&rankJobsJobs, "jobs", "j", "", "Path to job postings JSON array file (required)")
	rankJobsCmd.Flags().IntVarP(&rankJobsTopK, "top-k", "k", ranking.DefaultTopK, "Maximum number of recommendations")
	rankJobsCmd.Flags().StringVarP(&rankJobsOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	rankJobsCmd.Flags().BoolVarP(&rankJobsVerbose, "verbose", "v", false, "Print the profile and top recommendations to stderr")

	if err := rankJobsCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	if err := rankJobsCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}

	rootCmd.AddCommand(rankJobsCmd)
}

func runRankJobs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	profile, jobs, recs, err := rankJobsFromFiles(ctx, rankJobsProfile, rankJobsJobs, rankJobsTopK)
	if err != nil {
		return err
	}

	if rankJobsVerbose {
		titles := make(map[uuid.UUID]string, len(jobs))
		for _, j := range jobs {
			titles[j.ID] = j.Title
		}
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintProfile(profile)
		printer.PrintRecommendations(recs, titles)
	}

	jsonOutput, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations to JSON: %w", err)
	}

	// Generated output must satisfy its own schema
	if err := schemas.Validate(schemas.Recommendations, jsonOutput); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("generated recommendations are invalid: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
	}

	if rankJobsOutput == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonOutput))
		return nil
	}

	outputDir := filepath.Dir(rankJobsOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(rankJobsOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write recommendations to output file %s: %w", rankJobsOutput, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Wrote %d recommendations to %s\n", len(recs.Results), rankJobsOutput)
	return nil
}

// rankJobsFromFiles loads and validates the inputs and ranks offline, without a predictor.
func rankJobsFromFiles(ctx context.Context, profilePath, jobsPath string, topK int) (*types.StudentProfile, []types.JobPosting, *types.Recommendations, error) {
	profileContent, err := schemas.ValidateFile(schemas.Profile, profilePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid profile file %s: %w", profilePath, err)
	}
	var profile types.StudentProfile
	if err := json.Unmarshal(profileContent, &profile); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}

	jobsContent, err := schemas.ValidateFile(schemas.Jobs, jobsPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid jobs file %s: %w", jobsPath, err)
	}
	var jobs []types.JobPosting
	if err := json.Unmarshal(jobsContent, &jobs); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to unmarshal jobs JSON: %w", err)
	}
	assignJobIDs(jobs)

	ranker := ranking.NewRanker(ranking.RankerConfig{
		Similarity: similarity.Cosine{},
		Logger:     logger.Discard(),
	})
	recs, err := ranker.RankJobs(ctx, &profile, jobs, topK)
	if err != nil {
		return nil, nil, nil, err
	}
	return &profile, jobs, recs, nil
}

// assignJobIDs gives jobs without an id a stable one derived from their position and title
func assignJobIDs(jobs []types.JobPosting) {
	for i := range jobs {
		if jobs[i].ID == uuid.Nil {
			jobs[i].ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(i)+":"+jobs[i].Title))
		}
	}
}
