package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-portal/internal/observability"
	"github.com/jonathan/career-portal/internal/ranking"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a skill profile against one job's required skills",
	Long:  "Scores comma-separated profile skills and ratings against semicolon-separated job skills and prints the match as JSON.",
	RunE:  runScore,
}

var (
	scoreSkills        string
	scoreRatings       string
	scoreJobSkills     string
	scoreExperience    string
	scoreMinExperience string
	scoreVerbose       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreSkills, "skills", "s", "", "Comma-separated profile skills (required)")
	scoreCmd.Flags().StringVarP(&scoreRatings, "ratings", "r", "", "Comma-separated 1-5 ratings aligned with --skills")
	scoreCmd.Flags().StringVarP(&scoreJobSkills, "job-skills", "j", "", "Semicolon-separated required job skills (required)")
	scoreCmd.Flags().StringVar(&scoreExperience, "experience", "", "Student years of experience")
	scoreCmd.Flags().StringVar(&scoreMinExperience, "min-experience", "", "Job minimum years of experience")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	if err := scoreCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("job-skills"); err != nil {
		panic(fmt.Sprintf("failed to mark job-skills flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	match := ranking.ScoreSkillMatch(scoreSkills, scoreRatings, scoreJobSkills, scoreExperience, scoreMinExperience)

	out, err := json.MarshalIndent(match, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match to JSON: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))

	if scoreVerbose {
		observability.NewPrinter(os.Stderr).PrintMatch(match)
	}
	return nil
}
