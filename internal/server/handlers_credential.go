package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/config"
)

// CredentialRequest represents the request body for PUT /credential
type CredentialRequest struct {
	APIKey string `json:"api_key"`
}

// CredentialResponse reports whether an API key is configured and where it came from.
// The key itself is never returned.
type CredentialResponse struct {
	Configured bool                    `json:"configured"`
	Source     config.CredentialSource `json:"source"`
}

func (s *Server) handleCredentialStatus(w http.ResponseWriter, _ *http.Request) {
	if !s.requireCredentials(w) {
		return
	}
	s.credentialResponse(w)
}

// handleSaveCredential stores the key in plain text on the server host
func (s *Server) handleSaveCredential(w http.ResponseWriter, r *http.Request) {
	var req CredentialRequest
	if !s.requireCredentials(w) || !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.credentials.Save(req.APIKey); err != nil {
		s.fail(w, err)
		return
	}
	s.credentialResponse(w)
}

func (s *Server) handleRemoveCredential(w http.ResponseWriter, _ *http.Request) {
	if !s.requireCredentials(w) {
		return
	}
	if err := s.credentials.Remove(); err != nil {
		s.fail(w, err)
		return
	}
	s.credentialResponse(w)
}

func (s *Server) credentialResponse(w http.ResponseWriter) {
	source, err := s.credentials.Status()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, CredentialResponse{
		Configured: source != config.CredentialNone,
		Source:     source,
	})
}

func (s *Server) requireCredentials(w http.ResponseWriter) bool {
	if s.credentials == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "credential storage is not configured")
		return false
	}
	return true
}
