//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Portal roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a portal account for API responses (avoids import cycle with db package).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest represents the request to create a new portal account.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=student admin"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ScoreRequest asks for a stateless skill match on raw profile and job fields.
type ScoreRequest struct {
	Skills          string `json:"skills"`
	SkillRatings    string `json:"skill_ratings"`
	RequiredSkills  string `json:"required_skills"`
	ExperienceYears string `json:"experience_years"`
	MinExperience   string `json:"min_experience"`
}

// ChatRequest is a message for the portal assistant.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
