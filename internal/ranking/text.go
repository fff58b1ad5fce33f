package ranking

import (
	"strings"

	"github.com/jonathan/career-portal/internal/types"
)

// BuildProfileText joins the profile fields used by the predictor and text similarity
// into one lower-cased blob.
func BuildProfileText(profile *types.StudentProfile) string {
	if profile == nil {
		return ""
	}
	return joinText(
		profile.Skills,
		profile.SkillRatings,
		profile.Interests,
		profile.TechStack,
		profile.Experience,
		profile.ResumeText,
	)
}

// BuildJobText joins a job's title, description and required skills into one lower-cased blob.
func BuildJobText(job *types.JobPosting) string {
	if job == nil {
		return ""
	}
	return joinText(job.Title, job.Description, job.RequiredSkills)
}

func joinText(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}
