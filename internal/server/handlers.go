package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/fit-scorer/internal/logger"
	"github.com/jonathan/fit-scorer/internal/ranking"
	"github.com/jonathan/fit-scorer/internal/types"
	"go.uber.org/zap"
)

// AssessmentIDHeader carries the stored row id when an assessment was persisted.
const AssessmentIDHeader = "X-Assessment-ID"

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields and trailing data.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrBodyTooLarge{Limit: tooLarge.Limit}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &ErrValidation{Field: "body", Message: "unexpected data after JSON object"}
	}
	return nil
}

// handleAssess scores one applicant against one job.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req types.AssessRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, r, &ErrValidation{Field: "request", Message: err.Error()})
		return
	}

	assessment := s.assessor.Assess(req.Applicant, req.Job)

	if s.store != nil && req.JobID != "" && req.ApplicantID != "" {
		id, err := s.store.SaveAssessment(r.Context(), req.JobID, req.ApplicantID, assessment)
		if err != nil {
			s.errorFromErr(w, r, &ErrStorage{Op: "save", Cause: err})
			return
		}
		w.Header().Set(AssessmentIDHeader, id.String())
	}

	s.log.Debug("assessed applicant",
		append(logger.IDFields(req.JobID, req.ApplicantID), zap.Int("fit_score", assessment.FitScore))...)
	s.jsonResponse(w, http.StatusOK, assessment)
}

// handleRank scores a batch of applicants and returns them best first.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req types.RankRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, r, &ErrValidation{Field: "request", Message: err.Error()})
		return
	}

	ranked, err := ranking.RankApplicants(r.Context(), s.assessor, req.Job, req.Applicants, ranking.RankOptions{
		Workers:  s.workers,
		MinScore: req.MinScore,
	})
	if err != nil {
		s.errorFromErr(w, r, fmt.Errorf("failed to rank applicants: %w", err))
		return
	}

	if s.store != nil && req.JobID != "" {
		for _, entry := range ranked.Ranked {
			if _, err := s.store.SaveAssessment(r.Context(), req.JobID, entry.ApplicantID, entry.Assessment); err != nil {
				s.errorFromErr(w, r, &ErrStorage{Op: "save", Cause: err})
				return
			}
		}
	}

	s.log.Debug("ranked applicants",
		append(logger.IDFields(req.JobID, ""),
			zap.Int("submitted", len(req.Applicants)),
			zap.Int("returned", len(ranked.Ranked)))...)
	s.jsonResponse(w, http.StatusOK, ranked)
}

// handleListAssessments returns stored assessments of a job, best first.
func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.errorFromErr(w, r, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	stored, err := s.store.ListAssessments(r.Context(), jobID, limit)
	if err != nil {
		s.errorFromErr(w, r, &ErrStorage{Op: "list", Cause: err})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":      jobID,
		"assessments": stored,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"store":  s.store != nil,
	})
}
