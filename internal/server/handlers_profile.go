package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/career-portal/internal/ingestion"
	"github.com/jonathan/career-portal/internal/parsing"
	"github.com/jonathan/career-portal/internal/types"
)

// resumeFormField is the multipart field carrying the resume file
const resumeFormField = "resume"

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "user")
	if !ok {
		return
	}

	profile, err := s.store.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "user")
	if !ok {
		return
	}

	var req types.ProfileRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	if !s.userExists(w, r, userID) {
		return
	}

	profile := profileFromRequest(userID, &req)
	saved, err := s.store.UpsertProfile(r.Context(), profile)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.requestRefresh(r.Context(), userID, "profile_updated")
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "user")
	if !ok {
		return
	}

	if err := s.store.DeleteProfile(r.Context(), userID); err != nil {
		s.writeError(w, err)
		return
	}
	s.requestRefresh(r.Context(), userID, "profile_deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "user")
	if !ok {
		return
	}

	if r.ContentLength > s.maxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Resume file is too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile(resumeFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Resume file is too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Missing resume file")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read resume file")
		return
	}

	mime := ingestion.DetectMIME(header.Filename, header.Header.Get("Content-Type"), data)
	raw, err := ingestion.ExtractResumeText(mime, data)
	if err != nil {
		var unsupported *ingestion.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			s.errorResponse(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		s.log.WithError(err).WithField("user_id", userID).Warn("resume extraction failed")
		s.errorResponse(w, http.StatusUnprocessableEntity, "Could not read text from resume")
		return
	}

	text := ingestion.CleanText(raw)
	if err := s.store.SetResumeText(r.Context(), userID, text); err != nil {
		s.writeError(w, err)
		return
	}

	s.requestRefresh(r.Context(), userID, "resume_uploaded")
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"user_id":    userID,
		"mime_type":  mime,
		"characters": len(text),
	})
}

// userExists writes a 404 and returns false when the user is unknown.
func (s *Server) userExists(w http.ResponseWriter, r *http.Request, userID uuid.UUID) bool {
	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return false
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return false
	}
	return true
}

// profileFromRequest builds the stored profile. Structured ratings, when sent, replace
// the raw skill strings with their normalized form.
func profileFromRequest(userID uuid.UUID, req *types.ProfileRequest) *types.StudentProfile {
	p := &types.StudentProfile{
		UserID:         userID,
		FullName:       req.FullName,
		RegisterNumber: req.RegisterNumber,
		College:        req.College,
		BatchYear:      req.BatchYear,
		Semester:       req.Semester,
		Skills:         req.Skills,
		SkillRatings:   req.SkillRatings,
		Experience:     req.Experience,
		Interests:      req.Interests,
		TechStack:      req.TechStack,
		Location:       req.Location,
	}
	if len(req.Ratings) > 0 {
		p.Skills, p.SkillRatings = parsing.FormatSkillRatings(parsing.NormalizeSkillRatings(req.Ratings))
	}
	return p
}
