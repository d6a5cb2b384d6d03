package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/store"
	"go.uber.org/zap"
)

// JobDescriptionRequest represents the request body for POST /generate/job-description.
// With section_id and item_id the entry's own fields are used and the result is stored
// in the entry; otherwise job_title, company and years are required.
type JobDescriptionRequest struct {
	SectionID string `json:"section_id,omitempty"`
	ItemID    string `json:"item_id,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
	Company   string `json:"company,omitempty"`
	Years     int    `json:"years,omitempty"`
}

// SummaryRequest represents the request body for POST /generate/summary.
// With section_id the result is stored in that summary section. Empty skills default
// to the skills listed in the document.
type SummaryRequest struct {
	SectionID string   `json:"section_id,omitempty"`
	JobTitle  string   `json:"job_title"`
	Years     int      `json:"years"`
	Skills    []string `json:"skills,omitempty"`
}

// CoverLetterRequest represents the request body for POST /generate/cover-letter.
// Name and experience default to the document's contact name and experience entries.
type CoverLetterRequest struct {
	Name           string `json:"name,omitempty"`
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	Experience     string `json:"experience,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
}

// GeneratedResponse represents the response of every /generate endpoint. Error is set
// when the text was written into the document but the document could not be saved.
type GeneratedResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleGenerateJobDescription(w http.ResponseWriter, r *http.Request) {
	var req JobDescriptionRequest
	if !s.requireGenerator(w) || !s.decodeBody(w, r, &req) {
		return
	}

	var (
		text string
		err  error
	)
	if req.SectionID != "" && req.ItemID != "" {
		text, err = llm.DraftJobDescription(r.Context(), s.generator, s.store, req.SectionID, req.ItemID, s.now())
	} else {
		text, err = s.generator.JobDescription(r.Context(), llm.JobDescriptionRequest{
			JobTitle: req.JobTitle,
			Company:  req.Company,
			Years:    req.Years,
		})
	}
	s.generated(w, text, err)
}

func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if !s.requireGenerator(w) || !s.decodeBody(w, r, &req) {
		return
	}

	params := llm.SummaryRequest{JobTitle: req.JobTitle, Years: req.Years, Skills: req.Skills}

	var (
		text string
		err  error
	)
	if req.SectionID != "" {
		text, err = llm.DraftSummary(r.Context(), s.generator, s.store, req.SectionID, params)
	} else {
		if len(params.Skills) == 0 {
			params.Skills = llm.DocumentSkills(s.store.State())
		}
		text, err = s.generator.Summary(r.Context(), params)
	}
	s.generated(w, text, err)
}

func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req CoverLetterRequest
	if !s.requireGenerator(w) || !s.decodeBody(w, r, &req) {
		return
	}

	text, err := llm.DraftCoverLetter(r.Context(), s.generator, s.store.State(), llm.CoverLetterRequest{
		Name:           req.Name,
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		Experience:     req.Experience,
		JobDescription: req.JobDescription,
	})
	s.generated(w, text, err)
}

func (s *Server) requireGenerator(w http.ResponseWriter) bool {
	if s.generator == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "text generation is not configured")
		return false
	}
	return true
}

func (s *Server) generated(w http.ResponseWriter, text string, err error) {
	if errors.Is(err, store.ErrNotSaved) && text != "" {
		s.logger.Error("generated text not saved", zap.Error(err))
		s.jsonResponse(w, http.StatusInternalServerError, GeneratedResponse{Text: text, Error: err.Error()})
		return
	}
	if err != nil {
		s.failWith(w, serviceStatus(err), err)
		return
	}
	s.jsonResponse(w, http.StatusOK, GeneratedResponse{Text: text})
}
