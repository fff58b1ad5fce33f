package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/career-portal/internal/types"
)

// Job changes affect every student, so they refresh all recommendations.

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobPostings(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []types.JobPosting{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathID(w, r, "job")
	if !ok {
		return
	}

	job, err := s.store.GetJobPosting(r.Context(), jobID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job posting not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.JobRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	job, err := s.store.CreateJobPosting(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.requestRefresh(r.Context(), uuid.Nil, "job_created")
	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathID(w, r, "job")
	if !ok {
		return
	}

	var req types.JobRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	job, err := s.store.UpdateJobPosting(r.Context(), jobID, &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.requestRefresh(r.Context(), uuid.Nil, "job_updated")
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathID(w, r, "job")
	if !ok {
		return
	}

	if err := s.store.DeleteJobPosting(r.Context(), jobID); err != nil {
		s.writeError(w, err)
		return
	}
	s.requestRefresh(r.Context(), uuid.Nil, "job_deleted")
	w.WriteHeader(http.StatusNoContent)
}

// handleImportJob creates a posting whose description is the main text of a public job page
func (s *Server) handleImportJob(w http.ResponseWriter, r *http.Request) {
	var req types.ImportJobRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	page, err := s.fetchJob(r.Context(), req.URL)
	if err != nil {
		s.log.WithError(err).WithField("url", req.URL).Warn("job import fetch failed")
		s.errorResponse(w, http.StatusBadGateway, "Failed to fetch job page: "+err.Error())
		return
	}

	jobReq := req.ToJobRequest(page.Description)
	if err := jobReq.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	job, err := s.store.CreateJobPosting(r.Context(), &jobReq)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.requestRefresh(r.Context(), uuid.Nil, "job_imported")
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"job":      job,
		"platform": page.Platform,
	})
}
