// Package main provides the career_portal CLI: the HTTP API server, the refresh worker and
// offline scoring tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-portal/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "career_portal",
	Short: "Student career portal server and tools",
	Long:  "Career portal matches student skill profiles against job postings, stores ranked recommendations and serves the student dashboard over a REST API.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (environment variables take precedence)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
