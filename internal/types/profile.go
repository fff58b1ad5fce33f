// Package types provides type definitions for structured data used throughout the career portal.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultSkillRating is used when a skill has no usable self-rating.
const DefaultSkillRating = 3

// Rating bounds for student self-assessment.
const (
	MinSkillRating = 1
	MaxSkillRating = 5
)

// SkillRating pairs a normalized skill name with the student's self-rating.
type SkillRating struct {
	Name   string `json:"name" validate:"required"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

// StudentProfile represents the stored profile of a student.
// Skills and SkillRatings keep the comma-separated form used for storage and display.
type StudentProfile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	FullName       string    `json:"full_name"`
	RegisterNumber string    `json:"register_number"`
	College        string    `json:"college"`
	BatchYear      string    `json:"batch_year"`
	Semester       string    `json:"semester"`
	Skills         string    `json:"skills"`
	SkillRatings   string    `json:"skill_ratings"`
	Experience     string    `json:"experience"`
	Interests      string    `json:"interests"`
	TechStack      string    `json:"tech_stack"`
	Location       string    `json:"location"`
	ResumeText     string    `json:"resume_text,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileRequest is the payload for creating or replacing a student profile.
// Either the raw Skills/SkillRatings strings or the structured Ratings list may be sent;
// Ratings wins when both are present.
type ProfileRequest struct {
	FullName       string        `json:"full_name" validate:"required,max=200"`
	RegisterNumber string        `json:"register_number" validate:"max=64"`
	College        string        `json:"college" validate:"max=200"`
	BatchYear      string        `json:"batch_year" validate:"omitempty,numeric,len=4"`
	Semester       string        `json:"semester" validate:"max=16"`
	Skills         string        `json:"skills" validate:"max=2000"`
	SkillRatings   string        `json:"skill_ratings" validate:"max=500"`
	Ratings        []SkillRating `json:"ratings,omitempty" validate:"omitempty,dive"`
	Experience     string        `json:"experience" validate:"max=5000"`
	Interests      string        `json:"interests" validate:"max=2000"`
	TechStack      string        `json:"tech_stack" validate:"max=2000"`
	Location       string        `json:"location" validate:"max=200"`
}

// Validate validates the ProfileRequest using the validator.
func (r *ProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
