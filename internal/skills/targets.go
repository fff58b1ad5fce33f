// Package skills classifies a job's required skills and assigns their scoring weights.
package skills

import (
	"strings"

	"github.com/jonathan/career-portal/internal/parsing"
)

const (
	// Weight constants for skill categories
	weightTechnical = 2.0
	weightGeneral   = 1.0

	// Category constants
	CategoryTechnical = "technical"
	CategoryGeneral   = "general"
)

// technicalKeywords mark a required skill as technical when any of them occurs as a substring.
// Short entries such as "ai" and "ml" match inside longer words too ("email", "html").
var technicalKeywords = []string{
	"python", "java", "javascript", "sql", "react", "node", "aws", "docker",
	"kubernetes", "git", "linux", "tensorflow", "pytorch", "ml", "ai",
}

// Target is one required skill of a job with its scoring weight.
type Target struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Category string  `json:"category"`
}

// IsTechnical reports whether a normalized skill name contains a technical keyword.
func IsTechnical(skill string) bool {
	for _, kw := range technicalKeywords {
		if strings.Contains(skill, kw) {
			return true
		}
	}
	return false
}

// BuildSkillTargets builds the weighted target list for a job's semicolon-separated
// required skills. Input order is preserved and repeated skills count once per occurrence.
func BuildSkillTargets(requiredSkills string) []Target {
	return BuildSkillTargetsFromList(parsing.SplitRequiredSkills(requiredSkills))
}

// BuildSkillTargetsFromList weights an already parsed list of required skills.
func BuildSkillTargetsFromList(required []string) []Target {
	targets := make([]Target, 0, len(required))
	for _, name := range required {
		name = parsing.NormalizeSkillName(name)
		if name == "" {
			continue
		}
		if IsTechnical(name) {
			targets = append(targets, Target{Name: name, Weight: weightTechnical, Category: CategoryTechnical})
		} else {
			targets = append(targets, Target{Name: name, Weight: weightGeneral, Category: CategoryGeneral})
		}
	}
	return targets
}

// TotalWeight sums the weights of all targets.
func TotalWeight(targets []Target) float64 {
	total := 0.0
	for _, t := range targets {
		total += t.Weight
	}
	return total
}
