package server

import (
	"net/http"

	"github.com/jonathan/career-portal/internal/insights"
	"github.com/jonathan/career-portal/internal/types"
)

func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "user")
	if !ok {
		return
	}

	recs, err := s.store.ListRecommendations(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []types.StoredRecommendation{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// handleRefreshRecommendations recomputes the student's recommendations synchronously
func (s *Server) handleRefreshRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "user")
	if !ok {
		return
	}
	if !s.userExists(w, r, userID) {
		return
	}

	result, err := s.recommender.Refresh(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "user")
	if !ok {
		return
	}
	if !s.userExists(w, r, userID) {
		return
	}

	ctx := r.Context()
	profile, err := s.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var recs []types.StoredRecommendation
	if profile != nil {
		recs, err = s.store.ListRecommendations(ctx, userID)
		if err != nil {
			s.writeError(w, err)
			return
		}
	}

	var content insights.Content
	if content.Courses, err = s.store.ListCourses(ctx); err != nil {
		s.writeError(w, err)
		return
	}
	if content.Videos, err = s.store.ListVideos(ctx); err != nil {
		s.writeError(w, err)
		return
	}
	if content.Trends, err = s.store.ListTrends(ctx); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, insights.BuildDashboard(profile, recs, content))
}
