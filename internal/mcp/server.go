// Package mcp exposes the resume store to MCP clients: reading the document, editing
// the summary, reordering sections and rendering Markdown.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// UpdateSummaryRequest sets the text of a summary section. An empty SectionID selects
// the first summary section of the document.
type UpdateSummaryRequest struct {
	SectionID string `json:"section_id"`
	Summary   string `json:"summary"`
}

// MoveSectionRequest moves a section to a display position.
type MoveSectionRequest struct {
	SectionID string `json:"section_id"`
	Order     int    `json:"order"`
}

// SetTemplateRequest selects the visual template.
type SetTemplateRequest struct {
	Template string `json:"template"`
}

// NewServer creates an MCP server whose tools operate on s.
func NewServer(s *store.Store) *server.MCPServer {
	srv := server.NewMCPServer(
		"Resume Builder MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	srv.AddTool(mcp.NewTool("get_resume",
		mcp.WithDescription("Get the resume document: sections in display order, active section, template and name"),
	), getResumeHandler(s))

	srv.AddTool(mcp.NewTool("update_summary",
		mcp.WithDescription("Replace the professional summary text"),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("The new summary text"),
		),
		mcp.WithString("section_id",
			mcp.Description("Id of the summary section; defaults to the first summary section"),
		),
	), mcp.NewTypedToolHandler(updateSummaryHandler(s)))

	srv.AddTool(mcp.NewTool("move_section",
		mcp.WithDescription("Move a section to a zero-based display position. Out-of-range positions are clamped"),
		mcp.WithString("section_id",
			mcp.Required(),
			mcp.Description("Id of the section to move"),
		),
		mcp.WithNumber("order",
			mcp.Required(),
			mcp.Description("Target position, 0 is the top of the resume"),
		),
	), mcp.NewTypedToolHandler(moveSectionHandler(s)))

	srv.AddTool(mcp.NewTool("set_template",
		mcp.WithDescription("Select the visual template"),
		mcp.WithString("template",
			mcp.Required(),
			mcp.Enum("modern", "professional", "creative", "simple"),
		),
	), mcp.NewTypedToolHandler(setTemplateHandler(s)))

	srv.AddTool(mcp.NewTool("render_markdown",
		mcp.WithDescription("Render the resume preview as Markdown"),
	), renderMarkdownHandler(s))

	return srv
}

func getResumeHandler(s *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(s.State())
	}
}

func updateSummaryHandler(s *store.Store) func(context.Context, mcp.CallToolRequest, UpdateSummaryRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, _ mcp.CallToolRequest, args UpdateSummaryRequest) (*mcp.CallToolResult, error) {
		id := args.SectionID
		if id == "" {
			id = firstOfType(s, types.SectionSummary)
		}
		if id == "" {
			return mcp.NewToolResultError("the resume has no summary section"), nil
		}

		err := s.EditContent(id, func(c types.Content) error {
			summary, ok := c.(*types.SummaryContent)
			if !ok {
				return fmt.Errorf("section %s: %w: expected a summary section", id, types.ErrContentMismatch)
			}
			summary.Summary = args.Summary
			return nil
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to update summary: %v", err)), nil
		}

		section, _ := s.Section(id)
		return jsonResult(section)
	}
}

func moveSectionHandler(s *store.Store) func(context.Context, mcp.CallToolRequest, MoveSectionRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, _ mcp.CallToolRequest, args MoveSectionRequest) (*mcp.CallToolResult, error) {
		if args.SectionID == "" {
			return mcp.NewToolResultError("section_id is required"), nil
		}
		if _, ok := s.Section(args.SectionID); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%v: %s", store.ErrSectionNotFound, args.SectionID)), nil
		}
		if err := s.MoveSection(args.SectionID, args.Order); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to move section: %v", err)), nil
		}
		return jsonResult(s.Sections())
	}
}

func setTemplateHandler(s *store.Store) func(context.Context, mcp.CallToolRequest, SetTemplateRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, _ mcp.CallToolRequest, args SetTemplateRequest) (*mcp.CallToolResult, error) {
		t, err := types.ParseTemplate(args.Template)
		if err == nil {
			err = s.SetTemplate(t)
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("template set to %s", t)), nil
	}
}

func renderMarkdownHandler(s *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		md, err := rendering.RenderMarkdown(s.State())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render markdown: %v", err)), nil
		}
		return mcp.NewToolResultText(md), nil
	}
}

func firstOfType(s *store.Store, t types.SectionType) string {
	for _, section := range s.Sections() {
		if section.Type == t {
			return section.ID
		}
	}
	return ""
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
