package fetch

import (
	"context"
	"fmt"
)

// MaxDescriptionRunes bounds imported descriptions to what a job posting stores.
const MaxDescriptionRunes = 20000

// JobPage is the text extracted from a job posting page.
type JobPage struct {
	URL         string
	Platform    Platform
	Title       string
	Description string
}

// JobPosting fetches a posting page and extracts its description using the
// selectors for the detected job board.
func JobPosting(ctx context.Context, rawURL string, opts *Options) (*JobPage, error) {
	result, err := URL(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(rawURL)
	text, err := ExtractMainText(result.HTML, ContentSelectors(platform), NoiseSelectors(platform)...)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job description: %w", err)
	}
	if text == "" {
		return nil, &Error{URL: rawURL, Message: "page has no readable text"}
	}

	return &JobPage{
		URL:         rawURL,
		Platform:    platform,
		Title:       PageTitle(result.HTML),
		Description: truncateRunes(text, MaxDescriptionRunes),
	}, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
