package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// CreateSectionRequest represents the request body for POST /sections.
// Content defaults to the empty content of the type and Order to the end of the list.
type CreateSectionRequest struct {
	Type    string          `json:"type"`
	Title   string          `json:"title,omitempty"`
	Order   *int            `json:"order,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// UpdateSectionRequest represents the request body for PATCH /sections/{id}.
// Absent fields are left untouched.
type UpdateSectionRequest struct {
	Title   *string         `json:"title,omitempty"`
	Order   *int            `json:"order,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// MoveRequest represents the request body for POST /sections/{id}/move
type MoveRequest struct {
	Order *int `json:"order"`
}

// ItemResponse represents the response for POST /sections/{id}/items
type ItemResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	var req CreateSectionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	t, err := types.ParseSectionType(req.Type)
	if err != nil {
		s.fail(w, err)
		return
	}
	content, err := types.DecodeContent(t, req.Content)
	if err != nil {
		s.fail(w, &ErrValidation{Field: "content", Message: err.Error()})
		return
	}

	title := req.Title
	if title == "" {
		title = store.DefaultTitle(t)
	}
	order := len(s.store.Sections())
	if req.Order != nil {
		order = *req.Order
	}

	section := types.Section{
		ID:      types.NewSectionID(t),
		Type:    t,
		Title:   title,
		Content: content,
		Order:   order,
	}
	if err := s.store.AddSection(section); err != nil {
		s.fail(w, err)
		return
	}

	created, _ := s.store.Section(section.ID)
	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	section, ok := s.store.Section(id)
	if !ok {
		s.fail(w, fmt.Errorf("%w: %s", store.ErrSectionNotFound, id))
		return
	}
	s.jsonResponse(w, http.StatusOK, section)
}

// handleUpdateSection patches a section. Unknown ids are a no-op answered with 204.
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req UpdateSectionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	section, ok := s.store.Section(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	patch := store.SectionPatch{Title: req.Title, Order: req.Order}
	if len(req.Content) > 0 {
		content, err := types.DecodeContent(section.Type, req.Content)
		if err != nil {
			s.fail(w, &ErrValidation{Field: "content", Message: err.Error()})
			return
		}
		patch.Content = content
	}

	if err := s.store.UpdateSection(id, patch); err != nil {
		s.fail(w, err)
		return
	}

	updated, _ := s.store.Section(id)
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveSection(r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Order == nil {
		s.fail(w, &ErrValidation{Field: "order", Message: "order is required"})
		return
	}
	if err := s.store.MoveSection(r.PathValue("id"), *req.Order); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Sections())
}

func (s *Server) handleMoveUp(w http.ResponseWriter, r *http.Request) {
	if err := s.store.MoveUp(r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Sections())
}

func (s *Server) handleMoveDown(w http.ResponseWriter, r *http.Request) {
	if err := s.store.MoveDown(r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Sections())
}

// handleAddItem appends a blank entry to a list section
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	id, err := s.store.AddItem(r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, ItemResponse{ID: id})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveItem(r.PathValue("id"), r.PathValue("item_id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
