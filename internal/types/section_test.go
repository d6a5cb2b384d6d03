package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionType(t *testing.T) {
	for _, st := range AllSectionTypes {
		parsed, err := ParseSectionType(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}

	_, err := ParseSectionType("hobbies")
	assert.ErrorIs(t, err, ErrUnknownSectionType)
}

func TestSection_JSONDispatchesOnType(t *testing.T) {
	data := `{
		"id": "exp-1",
		"type": "experience",
		"title": "Work Experience",
		"content": {"items": [{"id": "exp-a", "company": "Acme", "position": "Engineer",
			"startDate": "2020-01", "endDate": "", "current": true, "description": "Built things"}]},
		"order": 2
	}`

	var s Section
	require.NoError(t, json.Unmarshal([]byte(data), &s))

	assert.Equal(t, "exp-1", s.ID)
	assert.Equal(t, SectionExperience, s.Type)
	assert.Equal(t, 2, s.Order)

	content, ok := s.Content.(*ExperienceContent)
	require.True(t, ok, "expected *ExperienceContent, got %T", s.Content)
	require.Len(t, content.Items, 1)
	assert.Equal(t, "Acme", content.Items[0].Company)
	assert.True(t, content.Items[0].Current)
}

func TestSection_NullContentDecodesToEmpty(t *testing.T) {
	var s Section
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p","type":"projects","title":"Projects","content":null,"order":5}`), &s))

	content, ok := s.Content.(*ProjectsContent)
	require.True(t, ok)
	assert.NotNil(t, content.Items)
	assert.Empty(t, content.Items)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"items":[]`)
}

func TestSection_UnknownTypeFails(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"id":"x","type":"hobbies","title":"Hobbies","content":{},"order":0}`), &s)
	assert.ErrorIs(t, err, ErrUnknownSectionType)
}

func TestSection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		wantErr error
	}{
		{
			name:    "valid custom",
			section: Section{ID: "c", Type: SectionCustom, Title: "Awards", Content: &CustomContent{Text: "x"}},
		},
		{
			name:    "mismatched content",
			section: Section{ID: "c", Type: SectionCustom, Content: &SummaryContent{}},
			wantErr: ErrContentMismatch,
		},
		{
			name:    "unknown type",
			section: Section{ID: "c", Type: "hobbies", Content: &CustomContent{}},
			wantErr: ErrUnknownSectionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.section.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSection_ValidateMissingContent(t *testing.T) {
	err := Section{ID: "c", Type: SectionCustom}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content is required")
}

func TestContent_ValidateDuplicateItemIDs(t *testing.T) {
	content := &ExperienceContent{Items: []ExperienceItem{{ID: "exp-1"}, {ID: "exp-1"}}}
	err := content.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid experience content")

	content.Items[1].ID = "exp-2"
	assert.NoError(t, content.Validate())
}

func TestContent_ValidateMissingItemID(t *testing.T) {
	content := &SkillsContent{Categories: []SkillCategory{{Name: "Languages"}}}
	assert.Error(t, content.Validate())
}

func TestSection_CloneIsDeep(t *testing.T) {
	original := Section{
		ID:   "skills",
		Type: SectionSkills,
		Content: &SkillsContent{Categories: []SkillCategory{
			{ID: "technical", Name: "Technical Skills", Skills: []string{"Go"}},
		}},
	}

	clone := original.Clone()
	clone.Content.(*SkillsContent).Categories[0].Skills[0] = "Rust"

	assert.Equal(t, "Go", original.Content.(*SkillsContent).Categories[0].Skills[0])
}

func TestSortSections_Stable(t *testing.T) {
	sections := []Section{
		{ID: "b", Order: 1},
		{ID: "a", Order: 0},
		{ID: "c", Order: 1},
	}
	SortSections(sections)

	assert.Equal(t, []string{"a", "b", "c"}, []string{sections[0].ID, sections[1].ID, sections[2].ID})
}
