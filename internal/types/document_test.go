package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()

	require.Len(t, doc.Sections, 5)
	wantIDs := []string{"contact", "summary", "experience", "education", "skills"}
	for i, s := range doc.Sections {
		assert.Equal(t, wantIDs[i], s.ID)
		assert.Equal(t, SectionType(wantIDs[i]), s.Type)
		assert.Equal(t, i, s.Order)
		assert.NoError(t, s.Validate())
	}

	require.NotNil(t, doc.ActiveSection)
	assert.Equal(t, ContactSectionID, *doc.ActiveSection)
	assert.Equal(t, TemplateModern, doc.Template)
	assert.Equal(t, "My Resume", doc.ResumeName)

	skills := doc.Sections[4].Content.(*SkillsContent)
	require.Len(t, skills.Categories, 1)
	assert.Equal(t, "technical", skills.Categories[0].ID)
}

func TestDefaultDocument_Independent(t *testing.T) {
	a := DefaultDocument()
	b := DefaultDocument()
	a.Sections[1].Content.(*SummaryContent).Summary = "changed"

	assert.Empty(t, b.Sections[1].Content.(*SummaryContent).Summary)
}

func TestDocumentState_JSONRoundTrip(t *testing.T) {
	doc := DefaultDocument()
	doc.Sections[0].Content = &ContactContent{Name: "Ada Lovelace", Email: "ada@example.com", Website: "ada.dev"}
	doc.Sections = append(doc.Sections, Section{
		ID:    "projects-1",
		Type:  SectionProjects,
		Title: "Projects",
		Content: &ProjectsContent{Items: []ProjectItem{
			{ID: "proj-1", Title: "Analytical Engine", Link: "https://example.com", StartDate: "1842", EndDate: "1843"},
		}},
		Order: 5,
	})
	doc.ActiveSection = nil

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"activeSection":null`))

	var decoded DocumentState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc, decoded)

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestDocumentState_Contact(t *testing.T) {
	doc := DefaultDocument()
	doc.Sections[0].Content = &ContactContent{Name: "Ada"}
	assert.Equal(t, "Ada", doc.Contact().Name)

	assert.Equal(t, ContactContent{}, DocumentState{}.Contact())
}

func TestParseTemplate(t *testing.T) {
	tmpl, err := ParseTemplate("creative")
	require.NoError(t, err)
	assert.Equal(t, TemplateCreative, tmpl)

	_, err = ParseTemplate("fancy")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestNewIDs(t *testing.T) {
	a := NewSectionID(SectionCustom)
	b := NewSectionID(SectionCustom)
	assert.True(t, strings.HasPrefix(a, "custom-"))
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(NewItemID(ExperienceItemPrefix), "exp-"))
}
