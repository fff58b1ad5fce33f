package insights

import (
	"sort"
	"strings"

	"github.com/jonathan/career-portal/internal/parsing"
	"github.com/jonathan/career-portal/internal/types"
)

// Video categories
const (
	CategoryRecommended   = "Recommended Videos"
	CategoryCommunication = "Communication Training"
	CategoryPlacement     = "Placement Preparation"
)

// SkillGaps returns the normalized skills required by recommended jobs that
// the student does not list, sorted and de-duplicated.
func SkillGaps(profileSkills string, recommendedJobSkills []string) []string {
	have := make(map[string]bool)
	for _, s := range parsing.SplitProfileList(profileSkills) {
		have[parsing.NormalizeSkillName(s)] = true
	}

	seen := make(map[string]bool)
	var gaps []string
	for _, required := range recommendedJobSkills {
		for _, s := range parsing.SplitRequiredSkills(required) {
			name := parsing.NormalizeSkillName(s)
			if name == "" || have[name] || seen[name] {
				continue
			}
			seen[name] = true
			gaps = append(gaps, name)
		}
	}
	sort.Strings(gaps)
	return gaps
}

// FilterCourses keeps courses whose title or category mentions one of the
// student's skills or a skill from a recommended job. With no skills on
// either side every course is returned.
func FilterCourses(courses []types.Course, profileSkills string, recommendedJobSkills []string) []types.Course {
	terms := skillTerms(profileSkills, recommendedJobSkills)
	if len(terms) == 0 {
		return courses
	}

	out := make([]types.Course, 0, len(courses))
	for _, c := range courses {
		if mentionsAny(c.Title+" "+c.Category, terms) {
			out = append(out, c)
		}
	}
	return out
}

// FilterVideos keeps communication and placement videos unconditionally.
// Recommended videos are kept when their title mentions a skill gap, or for
// everyone when the student has no skills or no recommendations yet.
func FilterVideos(videos []types.Video, profileSkills string, recommendedJobSkills []string, hasRecommendations bool) []types.Video {
	showAllRecommended := !hasRecommendations || len(parsing.SplitProfileList(profileSkills)) == 0
	gaps := SkillGaps(profileSkills, recommendedJobSkills)

	out := make([]types.Video, 0, len(videos))
	for _, v := range videos {
		switch v.Category {
		case CategoryCommunication, CategoryPlacement:
			out = append(out, v)
		case CategoryRecommended:
			if showAllRecommended || mentionsAny(v.Title, gaps) {
				out = append(out, v)
			}
		}
	}
	return out
}

// CourseCategories lists distinct non-empty categories in first-seen order
func CourseCategories(courses []types.Course) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range courses {
		if c.Category == "" || seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		out = append(out, c.Category)
	}
	return out
}

func skillTerms(profileSkills string, recommendedJobSkills []string) []string {
	var terms []string
	for _, s := range parsing.SplitProfileList(profileSkills) {
		terms = append(terms, parsing.NormalizeSkillName(s))
	}
	for _, required := range recommendedJobSkills {
		for _, s := range parsing.SplitRequiredSkills(required) {
			terms = append(terms, parsing.NormalizeSkillName(s))
		}
	}
	return terms
}

func mentionsAny(text string, terms []string) bool {
	text = strings.ToLower(text)
	for _, t := range terms {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}
