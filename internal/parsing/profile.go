package parsing

import (
	"strconv"
	"strings"

	"github.com/jonathan/career-portal/internal/types"
)

// ParseSkillRatings turns the stored comma-separated skills and ratings strings into one
// ordered collection. Ratings are aligned with skills by position. A missing or malformed
// rating becomes types.DefaultSkillRating and out-of-range ratings are clamped into 1..5.
// Repeated skills keep their first position and take the last rating given.
func ParseSkillRatings(skills, ratings string) []types.SkillRating {
	names := SplitProfileList(skills)
	if len(names) == 0 {
		return nil
	}

	rawRatings := make([]string, 0)
	for _, r := range strings.Split(ratings, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rawRatings = append(rawRatings, r)
		}
	}

	out := make([]types.SkillRating, 0, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		rating := types.DefaultSkillRating
		if i < len(rawRatings) {
			rating = parseRating(rawRatings[i])
		}
		if idx, ok := index[name]; ok {
			out[idx].Rating = rating
			continue
		}
		index[name] = len(out)
		out = append(out, types.SkillRating{Name: name, Rating: rating})
	}
	return out
}

// NormalizeSkillRatings normalizes names and clamps ratings of an already structured list,
// applying the same duplicate rule as ParseSkillRatings.
func NormalizeSkillRatings(in []types.SkillRating) []types.SkillRating {
	out := make([]types.SkillRating, 0, len(in))
	index := make(map[string]int, len(in))
	for _, sr := range in {
		name := NormalizeSkillName(sr.Name)
		if name == "" {
			continue
		}
		rating := ClampRating(sr.Rating)
		if idx, ok := index[name]; ok {
			out[idx].Rating = rating
			continue
		}
		index[name] = len(out)
		out = append(out, types.SkillRating{Name: name, Rating: rating})
	}
	return out
}

// FormatSkillRatings serializes a structured list back into the stored string pair.
func FormatSkillRatings(ratings []types.SkillRating) (skills, skillRatings string) {
	names := make([]string, 0, len(ratings))
	values := make([]string, 0, len(ratings))
	for _, sr := range ratings {
		names = append(names, sr.Name)
		values = append(values, strconv.Itoa(sr.Rating))
	}
	return strings.Join(names, ", "), strings.Join(values, ",")
}

// ParseYears parses a years-of-experience value. ok is false when the value is absent or
// not numeric.
func ParseYears(s string) (years float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ClampRating forces a rating into the 1..5 self-assessment scale.
func ClampRating(r int) int {
	if r < types.MinSkillRating {
		return types.MinSkillRating
	}
	if r > types.MaxSkillRating {
		return types.MaxSkillRating
	}
	return r
}

func parseRating(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return types.DefaultSkillRating
	}
	return ClampRating(v)
}
