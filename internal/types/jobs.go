//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobPosting represents a job posted by an administrator.
// RequiredSkills is semicolon-separated.
type JobPosting struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RequiredSkills  string    `json:"required_skills"`
	MinExperience   *float64  `json:"min_experience,omitempty"`
	PostedBy        string    `json:"posted_by,omitempty"`
	ApplicationLink string    `json:"application_link,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// JobRequest is the payload for creating or updating a job posting.
type JobRequest struct {
	Title           string   `json:"title" validate:"required,max=300"`
	Description     string   `json:"description" validate:"max=20000"`
	RequiredSkills  string   `json:"required_skills" validate:"required,max=2000"`
	MinExperience   *float64 `json:"min_experience,omitempty" validate:"omitempty,min=0,max=50"`
	PostedBy        string   `json:"posted_by" validate:"max=200"`
	ApplicationLink string   `json:"application_link" validate:"omitempty,url"`
}

// Validate validates the JobRequest using the validator.
func (r *JobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ImportJobRequest asks the portal to create a posting from a public job page.
type ImportJobRequest struct {
	URL            string   `json:"url" validate:"required,url"`
	Title          string   `json:"title" validate:"required,max=300"`
	RequiredSkills string   `json:"required_skills" validate:"required,max=2000"`
	MinExperience  *float64 `json:"min_experience,omitempty" validate:"omitempty,min=0,max=50"`
	PostedBy       string   `json:"posted_by" validate:"max=200"`
}

// Validate validates the ImportJobRequest using the validator.
func (r *ImportJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ToJobRequest converts an import request into a regular job request once the description is known.
func (r *ImportJobRequest) ToJobRequest(description string) JobRequest {
	return JobRequest{
		Title:           r.Title,
		Description:     description,
		RequiredSkills:  r.RequiredSkills,
		MinExperience:   r.MinExperience,
		PostedBy:        r.PostedBy,
		ApplicationLink: r.URL,
	}
}
