// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/career-portal/internal/insights"
	"github.com/jonathan/career-portal/internal/parsing"
	"github.com/jonathan/career-portal/internal/ranking"
	"github.com/jonathan/career-portal/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the inner box width, counting runes
func pad(line string) string {
	width := boxWidth - 4
	if n := utf8.RuneCountInString(line); n > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	} else if n < width {
		return line + strings.Repeat(" ", width-n)
	}
	return line
}

// PrintProfile outputs a summary of the student profile as the scorer sees it.
func (p *Printer) PrintProfile(profile *types.StudentProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.FullName != "" {
		sb.WriteString(fmt.Sprintf("Student:       %s\n", profile.FullName))
	}
	sb.WriteString(fmt.Sprintf("Completeness:  %d%%\n", insights.ProfileCompleteness(profile)))

	ratings := parsing.ParseSkillRatings(profile.Skills, profile.SkillRatings)
	if len(ratings) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(ratings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s (%d/5)\n", ratings[i].Name, ratings[i].Rating))
		}
		if len(ratings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ratings)-maxItemsToShow))
		}
	}

	p.printBox("STUDENT PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs one skill match with its matched and missing skills.
func (p *Printer) PrintMatch(match ranking.Match) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:       %.2f\n", match.Score))
	sb.WriteString(fmt.Sprintf("Coverage:    %.0f%%\n", match.MatchRatio*100))
	if match.ExperienceFactor != 1.0 {
		sb.WriteString(fmt.Sprintf("Experience:  x%.2f\n", match.ExperienceFactor))
	}
	sb.WriteString(fmt.Sprintf("Reason:      %s\n", match.Reason))

	if len(match.Matched) > 0 {
		sb.WriteString("\nMatched:\n")
		for _, m := range match.Matched {
			if m.Profile == m.Required {
				sb.WriteString(fmt.Sprintf("  ✓ %s (%d/5)\n", m.Required, m.Rating))
			} else {
				sb.WriteString(fmt.Sprintf("  ✓ %s via %s (%d/5)\n", m.Required, m.Profile, m.Rating))
			}
		}
	}
	if len(match.Missing) > 0 {
		sb.WriteString("\nMissing:\n")
		for _, m := range match.Missing {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", m))
		}
	}

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the top recommendations. titles maps job ids to display names;
// jobs without a title are shown by id.
func (p *Printer) PrintRecommendations(recs *types.Recommendations, titles map[uuid.UUID]string) {
	if recs == nil {
		return
	}

	var sb strings.Builder
	if recs.PredictedLabel != "" {
		sb.WriteString(fmt.Sprintf("Predicted career: %s\n", recs.PredictedLabel))
	}
	sb.WriteString(fmt.Sprintf("Recommendations: %d\n", len(recs.Results)))

	count := min(len(recs.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := recs.Results[i]
		name := titles[r.JobID]
		if name == "" {
			name = r.JobID.String()
		}
		sb.WriteString(fmt.Sprintf("\n#%d  %s\n", i+1, name))
		sb.WriteString(fmt.Sprintf("    Score: %.3f\n", r.Score))
		sb.WriteString(fmt.Sprintf("    %s\n", r.Reason))
	}
	if len(recs.Results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(recs.Results)-maxItemsToShow))
	}

	p.printBox("JOB RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
