package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/types"
)

// ActiveSectionRequest represents the request body for PUT /active-section.
// A null or missing id clears the cursor.
type ActiveSectionRequest struct {
	ID *string `json:"id"`
}

// TemplateRequest represents the request body for PUT /template
type TemplateRequest struct {
	Template string `json:"template"`
}

// NameRequest represents the request body for PUT /name
type NameRequest struct {
	Name string `json:"name"`
}

// handleGetResume returns the whole document with sections in display order
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

func (s *Server) handleSetActiveSection(w http.ResponseWriter, r *http.Request) {
	var req ActiveSectionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.store.SetActiveSection(req.ID); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	t, err := types.ParseTemplate(req.Template)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.SetTemplate(t); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

func (s *Server) handleSetName(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.store.SetResumeName(req.Name); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

// handleReset replaces the document with the default one
func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.Reset(); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State())
}
