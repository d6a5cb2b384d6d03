package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(types.DefaultDocument())
	output := buf.String()

	assert.Contains(t, output, "RESUME")
	assert.Contains(t, output, "My Resume")
	assert.Contains(t, output, "modern")
	assert.Contains(t, output, "*  0  contact")
	assert.Contains(t, output, "Skills (1)")
	assert.Less(t, strings.Index(output, "Professional Summary"), strings.Index(output, "Work Experience"))
}

func TestPrintDocument_NoActiveSection(t *testing.T) {
	var buf bytes.Buffer
	state := types.DefaultDocument()
	state.ActiveSection = nil

	NewPrinter(&buf).PrintDocument(state)

	assert.Contains(t, buf.String(), "(none)")
	assert.NotContains(t, buf.String(), "*")
}

func TestPrintSection_Experience(t *testing.T) {
	var buf bytes.Buffer
	section := types.Section{
		ID: "experience", Type: types.SectionExperience, Title: "Work Experience",
		Content: &types.ExperienceContent{Items: []types.ExperienceItem{
			{ID: "exp-1", Company: "Acme", Position: "Engineer", StartDate: "2020-01", Current: true},
		}},
	}

	NewPrinter(&buf).PrintSection(section)
	output := buf.String()

	assert.Contains(t, output, "WORK EXPERIENCE")
	assert.Contains(t, output, "Engineer, Acme")
	assert.Contains(t, output, "Jan 2020 - Present")
	assert.Contains(t, output, "id: exp-1")
}

func TestPrintSection_ListTruncation(t *testing.T) {
	var buf bytes.Buffer
	categories := make([]types.SkillCategory, 8)
	for i := range categories {
		categories[i] = types.SkillCategory{ID: "skill", Name: "Cat", Skills: []string{}}
	}

	NewPrinter(&buf).PrintSection(types.Section{
		ID: "skills", Type: types.SectionSkills, Title: "Skills",
		Content: &types.SkillsContent{Categories: categories},
	})

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintSection_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSection(types.Section{
		ID: "education", Type: types.SectionEducation,
		Content: &types.EducationContent{},
	})

	assert.Contains(t, buf.String(), "EDUCATION")
	assert.Contains(t, buf.String(), "(empty)")
}

func TestPrintGenerated_WrapsLongText(t *testing.T) {
	var buf bytes.Buffer
	text := strings.Repeat("experienced engineer ", 20)

	NewPrinter(&buf).PrintGenerated("summary", text)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines[1], "GENERATED SUMMARY")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.NotContains(t, buf.String(), "...")
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "éé...", truncate("éééééééé", 5))
	assert.Equal(t, "ab   ", pad("ab", 5))
}
