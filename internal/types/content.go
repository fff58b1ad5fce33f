//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Course is a learning resource curated by administrators.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Link        string    `json:"link,omitempty"`
	AddedBy     string    `json:"added_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CourseRequest is the payload for creating or updating a course.
type CourseRequest struct {
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"max=100"`
	Link        string `json:"link" validate:"omitempty,url"`
	AddedBy     string `json:"added_by" validate:"max=200"`
}

// Validate validates the CourseRequest using the validator.
func (r *CourseRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Video is a course video. Category drives dashboard grouping.
type Video struct {
	ID          uuid.UUID  `json:"id"`
	CourseID    *uuid.UUID `json:"course_id,omitempty"`
	CourseTitle string     `json:"course_title,omitempty"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Category    string     `json:"category"`
}

// VideoRequest is the payload for creating a video.
type VideoRequest struct {
	CourseID *uuid.UUID `json:"course_id,omitempty"`
	Title    string     `json:"title" validate:"required,max=300"`
	URL      string     `json:"url" validate:"required,url"`
	Category string     `json:"category" validate:"max=100"`
}

// Validate validates the VideoRequest using the validator.
func (r *VideoRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Trend describes a job-market trend entry.
type Trend struct {
	ID             uuid.UUID `json:"id"`
	JobRole        string    `json:"job_role"`
	Industry       string    `json:"industry"`
	TrendingSkills string    `json:"trending_skills"`
	Year           string    `json:"year"`
	AddedBy        string    `json:"added_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TrendRequest is the payload for creating a trend.
type TrendRequest struct {
	JobRole        string `json:"job_role" validate:"required,max=200"`
	Industry       string `json:"industry" validate:"max=200"`
	TrendingSkills string `json:"trending_skills" validate:"max=2000"`
	Year           string `json:"year" validate:"omitempty,numeric,len=4"`
	AddedBy        string `json:"added_by" validate:"max=200"`
}

// Validate validates the TrendRequest using the validator.
func (r *TrendRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Catalog is a bulk set of portal content used for seeding.
type Catalog struct {
	Jobs    []JobRequest    `json:"jobs"`
	Courses []CourseRequest `json:"courses"`
	Videos  []VideoRequest  `json:"videos"`
	Trends  []TrendRequest  `json:"trends"`
}
