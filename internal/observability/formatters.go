// Package observability provides logging setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs the document metadata and its sections in order.
func (p *Printer) PrintDocument(state types.DocumentState) {
	var sb strings.Builder

	active := "(none)"
	if state.ActiveSection != nil {
		active = *state.ActiveSection
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", state.ResumeName))
	sb.WriteString(fmt.Sprintf("Template:  %s\n", state.Template))
	sb.WriteString(fmt.Sprintf("Active:    %s\n", active))
	sb.WriteString("\n")

	for _, section := range state.SortedSections() {
		marker := " "
		if state.ActiveSection != nil && *state.ActiveSection == section.ID {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %2d  %-12s %s", marker, section.Order, section.Type, section.Title))
		if n := itemCount(section.Content); n >= 0 {
			sb.WriteString(fmt.Sprintf(" (%d)", n))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("       id: %s\n", section.ID))
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSection outputs one section's content.
func (p *Printer) PrintSection(section types.Section) {
	var sb strings.Builder

	switch c := section.Content.(type) {
	case *types.ContactContent:
		sb.WriteString(fmt.Sprintf("Name:      %s\n", c.Name))
		sb.WriteString(fmt.Sprintf("Email:     %s\n", c.Email))
		sb.WriteString(fmt.Sprintf("Phone:     %s\n", c.Phone))
		sb.WriteString(fmt.Sprintf("Location:  %s\n", c.Location))
		if c.LinkedIn != "" {
			sb.WriteString(fmt.Sprintf("LinkedIn:  %s\n", c.LinkedIn))
		}
		if c.Website != "" {
			sb.WriteString(fmt.Sprintf("Website:   %s\n", c.Website))
		}
	case *types.SummaryContent:
		sb.WriteString(wrap(c.Summary, boxWidth-4))
	case *types.CustomContent:
		sb.WriteString(wrap(c.Text, boxWidth-4))
	case *types.ExperienceContent:
		entries := make([]string, len(c.Items))
		for i, item := range c.Items {
			entries[i] = fmt.Sprintf("• %s, %s\n    %s\n    id: %s", item.Position, item.Company,
				types.DateRange(item.StartDate, item.EndDate, item.Current), item.ID)
		}
		sb.WriteString(listing(entries))
	case *types.EducationContent:
		entries := make([]string, len(c.Items))
		for i, item := range c.Items {
			entries[i] = fmt.Sprintf("• %s: %s %s\n    %s\n    id: %s", item.Institution, item.Degree, item.Field,
				types.DateRange(item.StartDate, item.EndDate, item.Current), item.ID)
		}
		sb.WriteString(listing(entries))
	case *types.ProjectsContent:
		entries := make([]string, len(c.Items))
		for i, item := range c.Items {
			entries[i] = fmt.Sprintf("• %s\n    id: %s", item.Title, item.ID)
		}
		sb.WriteString(listing(entries))
	case *types.SkillsContent:
		entries := make([]string, len(c.Categories))
		for i, category := range c.Categories {
			entries[i] = fmt.Sprintf("• %s: %s\n    id: %s", category.Name, strings.Join(category.Skills, ", "), category.ID)
		}
		sb.WriteString(listing(entries))
	}

	title := strings.ToUpper(section.Title)
	if title == "" {
		title = strings.ToUpper(string(section.Type))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGenerated outputs text returned by the text-generation service.
func (p *Printer) PrintGenerated(kind, text string) {
	p.printBox("GENERATED "+strings.ToUpper(kind), wrap(text, boxWidth-4))
}

// listing joins entries, eliding everything after maxItemsToShow.
func listing(entries []string) string {
	if len(entries) == 0 {
		return "(empty)"
	}
	shown := entries[:min(len(entries), maxItemsToShow)]
	out := strings.Join(shown, "\n")
	if len(entries) > maxItemsToShow {
		out += fmt.Sprintf("\n... and %d more", len(entries)-maxItemsToShow)
	}
	return out
}

// itemCount returns the number of entries of list-valued content, or -1.
func itemCount(c types.Content) int {
	switch v := c.(type) {
	case *types.ExperienceContent:
		return len(v.Items)
	case *types.EducationContent:
		return len(v.Items)
	case *types.ProjectsContent:
		return len(v.Items)
	case *types.SkillsContent:
		return len(v.Categories)
	default:
		return -1
	}
}

// wrap breaks text into lines of at most width runes on word boundaries. Existing
// line breaks are kept.
func wrap(text string, width int) string {
	var lines []string
	for _, paragraph := range strings.Split(strings.TrimSpace(text), "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
