package insights

import "github.com/jonathan/career-portal/internal/types"

// Content is the learning material and market data available to the dashboard
type Content struct {
	Courses []types.Course
	Videos  []types.Video
	Trends  []types.Trend
}

// Dashboard is everything the student dashboard shows
type Dashboard struct {
	Profile          *types.StudentProfile        `json:"profile"`
	NeedsProfile     bool                         `json:"needs_profile"`
	Recommendations  []types.StoredRecommendation `json:"recommendations"`
	Completeness     int                          `json:"profile_completeness"`
	MatchConfidence  int                          `json:"match_confidence"`
	Insights         []string                     `json:"ats_insights"`
	SkillGaps        []string                     `json:"skill_gaps"`
	Courses          []types.Course               `json:"courses"`
	CourseCategories []string                     `json:"course_categories"`
	Videos           []types.Video                `json:"videos"`
	Trends           []types.Trend                `json:"trends"`
}

// BuildDashboard assembles the dashboard for one student. A nil profile
// yields a dashboard that only asks the student to fill one in.
func BuildDashboard(p *types.StudentProfile, recs []types.StoredRecommendation, content Content) *Dashboard {
	if p == nil {
		return &Dashboard{
			NeedsProfile:     true,
			Recommendations:  []types.StoredRecommendation{},
			Insights:         ATSInsights(nil, 0),
			Courses:          content.Courses,
			CourseCategories: CourseCategories(content.Courses),
			Videos:           FilterVideos(content.Videos, "", nil, false),
			Trends:           content.Trends,
		}
	}

	recommended := make([]string, 0, len(recs))
	for _, r := range recs {
		recommended = append(recommended, r.RequiredSkills)
	}

	courses := FilterCourses(content.Courses, p.Skills, recommended)
	return &Dashboard{
		Profile:          p,
		Recommendations:  recs,
		Completeness:     ProfileCompleteness(p),
		MatchConfidence:  TopConfidence(recs),
		Insights:         ATSInsights(p, len(recs)),
		SkillGaps:        SkillGaps(p.Skills, recommended),
		Courses:          courses,
		CourseCategories: CourseCategories(content.Courses),
		Videos:           FilterVideos(content.Videos, p.Skills, recommended, len(recs) > 0),
		Trends:           content.Trends,
	}
}
