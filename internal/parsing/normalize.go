package parsing

import (
	"strings"
)

// NormalizeSkillName lower-cases a skill name and collapses surrounding and inner whitespace.
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(skillName)), " ")
}

// SplitList splits a delimited free-text list, normalizing each entry and dropping empties.
// Order is preserved.
func SplitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := NormalizeSkillName(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SplitRequiredSkills parses a job's semicolon-separated required skills.
func SplitRequiredSkills(s string) []string {
	return SplitList(s, ";")
}

// SplitProfileList parses a comma-separated profile field (skills, interests, tech stack).
func SplitProfileList(s string) []string {
	return SplitList(s, ",")
}
