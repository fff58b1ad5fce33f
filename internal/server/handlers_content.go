package server

import (
	"net/http"

	"github.com/jonathan/career-portal/internal/types"
)

// ---------------------------------------------------------------------
// Courses
// ---------------------------------------------------------------------

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.store.ListCourses(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if courses == nil {
		courses = []types.Course{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"courses": courses, "count": len(courses)})
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req types.CourseRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	course, err := s.store.CreateCourse(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, course)
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := s.pathID(w, r, "course")
	if !ok {
		return
	}

	var req types.CourseRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	course, err := s.store.UpdateCourse(r.Context(), courseID, &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, course)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := s.pathID(w, r, "course")
	if !ok {
		return
	}

	if err := s.store.DeleteCourse(r.Context(), courseID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------
// Videos
// ---------------------------------------------------------------------

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.store.ListVideos(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if videos == nil {
		videos = []types.Video{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"videos": videos, "count": len(videos)})
}

func (s *Server) handleCreateVideo(w http.ResponseWriter, r *http.Request) {
	var req types.VideoRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	video, err := s.store.CreateVideo(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, video)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	videoID, ok := s.pathID(w, r, "video")
	if !ok {
		return
	}

	if err := s.store.DeleteVideo(r.Context(), videoID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------
// Trends
// ---------------------------------------------------------------------

func (s *Server) handleListTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.store.ListTrends(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if trends == nil {
		trends = []types.Trend{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"trends": trends, "count": len(trends)})
}

func (s *Server) handleCreateTrend(w http.ResponseWriter, r *http.Request) {
	var req types.TrendRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	trend, err := s.store.CreateTrend(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, trend)
}

func (s *Server) handleDeleteTrend(w http.ResponseWriter, r *http.Request) {
	trendID, ok := s.pathID(w, r, "trend")
	if !ok {
		return
	}

	if err := s.store.DeleteTrend(r.Context(), trendID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
