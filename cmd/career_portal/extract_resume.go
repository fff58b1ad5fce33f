package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-portal/internal/ingestion"
)

var extractResumeCmd = &cobra.Command{
	Use:   "extract-resume",
	Short: "Print the cleaned text of a resume file",
	Long:  "Extracts text from a plain text, PDF or DOCX resume and prints it normalized the way uploaded resumes are stored.",
	RunE:  runExtractResume,
}

var extractResumeFile string

func init() {
	extractResumeCmd.Flags().StringVarP(&extractResumeFile, "file", "f", "", "Path to resume file (required)")
	if err := extractResumeCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	rootCmd.AddCommand(extractResumeCmd)
}

func runExtractResume(_ *cobra.Command, _ []string) error {
	text, err := ingestion.ReadResumeFile(extractResumeFile)
	if err != nil {
		return fmt.Errorf("failed to extract resume %s: %w", extractResumeFile, err)
	}
	_, _ = fmt.Fprintln(os.Stdout, text)
	return nil
}
