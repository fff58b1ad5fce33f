// Package queue carries recommendation refresh requests over RabbitMQ so the
// API can hand the ranking work to separate worker processes.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RefreshQueue is the durable queue refresh events are published to.
const RefreshQueue = "recommendation_refresh"

// RefreshEvent asks for a student's recommendations to be recomputed. An
// empty UserID means every student.
type RefreshEvent struct {
	UserID      string    `json:"user_id,omitempty"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewRefreshEvent builds an event for userID; uuid.Nil targets everyone.
func NewRefreshEvent(userID uuid.UUID, reason string) RefreshEvent {
	e := RefreshEvent{Reason: reason, RequestedAt: time.Now().UTC()}
	if userID != uuid.Nil {
		e.UserID = userID.String()
	}
	return e
}

// Target returns the student to refresh, or uuid.Nil for all of them.
func (e RefreshEvent) Target() (uuid.UUID, error) {
	if e.UserID == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(e.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id %q: %w", e.UserID, err)
	}
	return id, nil
}

// Encode serializes the event as a message body.
func (e RefreshEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeRefreshEvent parses a message body.
func DecodeRefreshEvent(body []byte) (RefreshEvent, error) {
	var e RefreshEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return RefreshEvent{}, fmt.Errorf("failed to decode refresh event: %w", err)
	}
	if _, err := e.Target(); err != nil {
		return RefreshEvent{}, err
	}
	return e, nil
}
