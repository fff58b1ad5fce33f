//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// MatchResult is one scored job for one student.
type MatchResult struct {
	JobID  uuid.UUID `json:"job_id"`
	Score  float64   `json:"score"`
	Reason string    `json:"reason"`
}

// Recommendations is the outcome of a single ranking pass.
type Recommendations struct {
	// PredictedLabel is the career label from the predictor, empty when unavailable
	PredictedLabel string        `json:"predicted_label,omitempty"`
	Results        []MatchResult `json:"results"`
}

// StoredRecommendation is a persisted recommendation joined with its job posting.
type StoredRecommendation struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	JobID           uuid.UUID `json:"job_id"`
	JobTitle        string    `json:"job_title"`
	RequiredSkills  string    `json:"required_skills"`
	ApplicationLink string    `json:"application_link,omitempty"`
	Score           float64   `json:"score"`
	Reason          string    `json:"reason"`
	CreatedAt       time.Time `json:"created_at"`
}
