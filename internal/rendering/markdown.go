package rendering

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/types"
)

// RenderMarkdown renders the document and converts its preview element to markdown,
// for terminal previews and MCP clients.
func RenderMarkdown(state types.DocumentState) (string, error) {
	page, err := RenderHTML(state)
	if err != nil {
		return "", err
	}
	return ElementMarkdown(page, PreviewElementID)
}

// ElementMarkdown converts the element with the given id in page to markdown.
func ElementMarkdown(page, elementID string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", &RenderError{Message: "failed to parse rendered page", Cause: err}
	}

	selection := doc.Find("#" + elementID)
	if selection.Length() == 0 {
		return "", &RenderError{Message: fmt.Sprintf("Element with ID %s not found", elementID)}
	}

	markdown, err := htmltomarkdown.ConvertNode(selection.Get(0))
	if err != nil {
		return "", &RenderError{Message: "failed to convert page to markdown", Cause: err}
	}
	return strings.TrimSpace(string(markdown)) + "\n", nil
}
