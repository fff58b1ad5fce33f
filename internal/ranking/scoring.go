// Package ranking scores student skill profiles against job requirements and ranks job
// recommendations.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/career-portal/internal/parsing"
	"github.com/jonathan/career-portal/internal/skills"
	"github.com/jonathan/career-portal/internal/types"
)

// Score caps by the share of required skills matched
const (
	capStrongCoverage   = 0.85 // >= 80% matched
	capGoodCoverage     = 0.75 // >= 60% matched
	capModerateCoverage = 0.65 // >= 40% matched
	capWeakCoverage     = 0.45
)

// Experience adjustment
const (
	experienceFloor        = 0.3
	experienceBonus        = 1.1
	experienceBonusPastMin = 1.5
)

// Reasons for scores that could not be computed
const (
	ReasonInsufficientData = "Insufficient profile data"
	ReasonUnanalyzable     = "Unable to analyze skills"
)

// Match is the outcome of scoring one student against one job.
type Match struct {
	Score            float64        `json:"score"`
	Reason           string         `json:"reason"`
	Matched          []MatchedSkill `json:"matched,omitempty"`
	Missing          []string       `json:"missing,omitempty"`
	MatchRatio       float64        `json:"match_ratio"`
	ExperienceFactor float64        `json:"experience_factor"`
}

// MatchedSkill records which profile skill satisfied a required skill.
type MatchedSkill struct {
	Required string `json:"required"`
	Profile  string `json:"profile"`
	Rating   int    `json:"rating"`
}

// ScoreSkillMatch scores raw stored fields: comma-separated profile skills and ratings,
// semicolon-separated job skills, and optional numeric experience values.
func ScoreSkillMatch(profileSkills, profileRatings, jobSkills, experienceYears, minExperience string) Match {
	if profileSkills == "" || jobSkills == "" {
		return Match{Reason: ReasonInsufficientData, ExperienceFactor: 1.0}
	}

	return ScoreSkills(
		parsing.ParseSkillRatings(profileSkills, profileRatings),
		parsing.SplitRequiredSkills(jobSkills),
		optionalYears(experienceYears),
		optionalYears(minExperience),
	)
}

// ScoreProfile scores a stored student profile against a stored job posting.
func ScoreProfile(profile *types.StudentProfile, job *types.JobPosting) Match {
	if profile == nil || job == nil || profile.Skills == "" || job.RequiredSkills == "" {
		return Match{Reason: ReasonInsufficientData, ExperienceFactor: 1.0}
	}

	return ScoreSkills(
		parsing.ParseSkillRatings(profile.Skills, profile.SkillRatings),
		parsing.SplitRequiredSkills(job.RequiredSkills),
		optionalYears(profile.Experience),
		job.MinExperience,
	)
}

// ScoreSkills scores already parsed skill ratings against a job's required skills.
// years and minYears are nil when unknown.
func ScoreSkills(ratings []types.SkillRating, required []string, years, minYears *float64) Match {
	targets := skills.BuildSkillTargetsFromList(required)
	totalWeight := skills.TotalWeight(targets)
	if len(targets) == 0 || totalWeight == 0 {
		return Match{Reason: ReasonUnanalyzable, ExperienceFactor: 1.0}
	}

	matched := make([]MatchedSkill, 0, len(targets))
	missing := make([]string, 0)
	skillScore := 0.0
	for _, target := range targets {
		best, ok := bestProfileMatch(target.Name, ratings)
		if !ok {
			missing = append(missing, target.Name)
			continue
		}
		matched = append(matched, best)
		normalizedRating := float64(best.Rating-1) / 4.0
		skillScore += normalizedRating * target.Weight
	}

	expFactor := computeExperienceFactor(years, minYears)
	baseScore := skillScore / totalWeight * expFactor

	matchRatio := float64(len(matched)) / float64(len(targets))
	finalScore := math.Min(baseScore, coverageCap(matchRatio))
	if finalScore < 0 {
		finalScore = 0
	}

	return Match{
		Score:            finalScore,
		Reason:           generateReason(len(matched), missing),
		Matched:          matched,
		Missing:          missing,
		MatchRatio:       matchRatio,
		ExperienceFactor: expFactor,
	}
}

// bestProfileMatch finds the profile skill that satisfies a required skill. An exact name
// match wins outright; otherwise the highest-rated profile skill that contains, or is
// contained in, the required skill wins, with earlier skills winning ties.
func bestProfileMatch(required string, ratings []types.SkillRating) (MatchedSkill, bool) {
	var best MatchedSkill
	found := false
	for _, sr := range ratings {
		if sr.Name == "" {
			continue
		}
		if sr.Name == required {
			return MatchedSkill{Required: required, Profile: sr.Name, Rating: sr.Rating}, true
		}
		if strings.Contains(required, sr.Name) || strings.Contains(sr.Name, required) {
			if !found || sr.Rating > best.Rating {
				best = MatchedSkill{Required: required, Profile: sr.Name, Rating: sr.Rating}
				found = true
			}
		}
	}
	return best, found
}

// computeExperienceFactor penalizes students below the job minimum and rewards those well
// past it. Unknown values leave the score unchanged.
func computeExperienceFactor(years, minYears *float64) float64 {
	if years == nil || minYears == nil {
		return 1.0
	}
	y, m := *years, *minYears
	if !isFinite(y) || !isFinite(m) {
		return 1.0
	}

	switch {
	case y < m:
		if m <= 0 {
			return 1.0
		}
		return math.Max(experienceFloor, y/m)
	case y > m*experienceBonusPastMin:
		return experienceBonus
	default:
		return 1.0
	}
}

// coverageCap returns the maximum score allowed for a given match ratio.
func coverageCap(matchRatio float64) float64 {
	switch {
	case matchRatio >= 0.8:
		return capStrongCoverage
	case matchRatio >= 0.6:
		return capGoodCoverage
	case matchRatio >= 0.4:
		return capModerateCoverage
	default:
		return capWeakCoverage
	}
}

func optionalYears(s string) *float64 {
	v, ok := parsing.ParseYears(s)
	if !ok || !isFinite(v) {
		return nil
	}
	return &v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
