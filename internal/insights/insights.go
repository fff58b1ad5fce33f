// Package insights derives the student dashboard: profile completeness, ATS
// hints, skill gaps and the learning content worth showing.
package insights

import (
	"math"
	"strings"

	"github.com/jonathan/career-portal/internal/parsing"
	"github.com/jonathan/career-portal/internal/types"
)

// Messages shown on the dashboard
const (
	msgStrongSkills    = "Strong skills profile with multiple technologies"
	msgAddSkills       = "Add more skills to improve ATS matching"
	msgDiverseStack    = "Diverse tech stack increases job opportunities"
	msgExpandStack     = "Expand your tech stack for better matches"
	msgDetailedExp     = "Detailed experience description helps ATS parsing"
	msgAddExpDetail    = "Add more details to your experience section"
	msgManyMatches     = "Multiple job matches found - good profile strength"
	msgSomeMatches     = "Some job matches generated"
	msgFewMatches      = "Limited job matches - consider broadening skills"
	msgCompleteProfile = "Complete your profile to get personalized insights"
)

const (
	strongSkillsMin  = 3
	diverseStackMin  = 2
	detailedExpWords = 10
	manyMatchesMin   = 5
	someMatchesMin   = 2

	completenessFields = 11
)

var defaultInsights = []string{
	"Complete your profile for better recommendations",
	"Add skills, experience, and tech stack details",
	"Include specific technologies and tools you know",
}

// ProfileCompleteness returns the percentage (rounded down) of the eleven
// profile fields that hold a non-blank value. A nil profile is 0.
func ProfileCompleteness(p *types.StudentProfile) int {
	if p == nil {
		return 0
	}
	fields := []string{
		p.FullName, p.RegisterNumber, p.College, p.BatchYear, p.Semester,
		p.Skills, p.SkillRatings, p.Experience, p.Interests, p.TechStack, p.Location,
	}
	filled := 0
	for _, f := range fields {
		if filledValue(f) {
			filled++
		}
	}
	return filled * 100 / completenessFields
}

// ATSInsights lists hints about how well the profile will match postings
func ATSInsights(p *types.StudentProfile, recommendationCount int) []string {
	if p == nil {
		return []string{msgCompleteProfile}
	}

	var out []string
	if skills := parsing.SplitProfileList(p.Skills); len(skills) >= strongSkillsMin {
		out = append(out, msgStrongSkills)
	} else if filledValue(p.Skills) {
		out = append(out, msgAddSkills)
	}

	if stack := parsing.SplitProfileList(p.TechStack); len(stack) >= diverseStackMin {
		out = append(out, msgDiverseStack)
	} else if filledValue(p.TechStack) {
		out = append(out, msgExpandStack)
	}

	if len(strings.Fields(p.Experience)) >= detailedExpWords {
		out = append(out, msgDetailedExp)
	} else if filledValue(p.Experience) {
		out = append(out, msgAddExpDetail)
	}

	switch {
	case recommendationCount >= manyMatchesMin:
		out = append(out, msgManyMatches)
	case recommendationCount >= someMatchesMin:
		out = append(out, msgSomeMatches)
	case recommendationCount >= 1:
		out = append(out, msgFewMatches)
	}

	if len(out) == 0 {
		return append([]string(nil), defaultInsights...)
	}
	return out
}

// TopConfidence is the best stored recommendation score as a whole percentage
func TopConfidence(recs []types.StoredRecommendation) int {
	best := 0.0
	for _, r := range recs {
		if r.Score > best {
			best = r.Score
		}
	}
	// epsilon absorbs float error such as 0.29*100 = 28.999...
	return int(math.Floor(best*100 + 1e-9))
}

// filledValue treats the literal "None" left by older imports as empty
func filledValue(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "None"
}
