package ranking

import (
	"fmt"
	"strings"
)

// Reason suffix appended when the predicted career label lines up with the job title
const careerAlignmentNote = " + AI career alignment bonus"

// generateReason creates a brief explanation of a skill match.
func generateReason(matchedCount int, missing []string) string {
	switch {
	case len(missing) == 0:
		return fmt.Sprintf("Excellent match! All %d required skills present", matchedCount)
	case len(missing) <= 2:
		return fmt.Sprintf("Good match with %d skill gap(s): %s", len(missing), strings.Join(firstN(missing, 2), ", "))
	default:
		return fmt.Sprintf("Moderate match - %d missing skills including %s", len(missing), strings.Join(firstN(missing, 3), ", "))
	}
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
