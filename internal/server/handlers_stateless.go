package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/career-portal/internal/insights"
	"github.com/jonathan/career-portal/internal/ranking"
	"github.com/jonathan/career-portal/internal/types"
)

// handleScore runs the skill match scorer on raw profile and job fields
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	match := ranking.ScoreSkillMatch(req.Skills, req.SkillRatings, req.RequiredSkills, req.ExperienceYears, req.MinExperience)
	s.jsonResponse(w, http.StatusOK, match)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"reply": insights.ChatReply(req.Message)})
}
