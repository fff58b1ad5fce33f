package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// validatable is implemented by the request types in internal/types.
type validatable interface {
	Validate() error
}

// pathID parses the {id} path value. It writes a 400 and returns false when the value is not a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeRequest reads a JSON body into req and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return false
	}
	return true
}

// requestRefresh asks for a recommendation refresh. Failures are logged and never fail the request.
func (s *Server) requestRefresh(ctx context.Context, userID uuid.UUID, reason string) {
	if s.trigger == nil {
		return
	}
	if err := s.trigger.RequestRefresh(ctx, userID, reason); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"reason":  reason,
		}).Warn("failed to request recommendation refresh")
	}
}
