package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"go.uber.org/zap"
)

// handlePreview renders the document with its template
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	page, err := rendering.RenderHTML(s.store.State())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (s *Server) handlePreviewMarkdown(w http.ResponseWriter, _ *http.Request) {
	md, err := rendering.RenderMarkdown(s.store.State())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(md))
}

// handleExportPDF prints the preview element and returns it as an attachment named
// after the document.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "PDF export is not configured")
		return
	}

	state := s.store.State()
	page, err := rendering.RenderHTML(state)
	if err != nil {
		s.fail(w, err)
		return
	}

	pdf, err := s.exporter.PDF(r.Context(), page, rendering.PreviewElementID)
	if err != nil {
		s.logger.Warn("PDF export failed", zap.Error(err))
		s.errorResponse(w, serviceStatus(err), "Failed to generate PDF. Please try again.")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(state.ResumeName, "pdf")))
	_, _ = w.Write(pdf)
}
