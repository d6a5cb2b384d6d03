package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Content is the typed payload of a section. The set of implementations is closed and
// mirrors SectionType one to one.
type Content interface {
	// Type returns the section type this payload belongs to
	Type() SectionType
	// Validate checks structural invariants such as unique item ids
	Validate() error
	// IsEmpty reports whether there is nothing to render
	IsEmpty() bool

	clone() Content
}

// ContactContent holds the candidate's contact details.
type ContactContent struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// SummaryContent is the professional summary paragraph.
type SummaryContent struct {
	Summary string `json:"summary"`
}

// ExperienceItem is a single position held.
type ExperienceItem struct {
	ID          string `json:"id" validate:"required"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ExperienceContent is the ordered list of positions.
type ExperienceContent struct {
	Items []ExperienceItem `json:"items" validate:"unique=ID,dive"`
}

// EducationItem is a single degree or course of study.
type EducationItem struct {
	ID          string `json:"id" validate:"required"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationContent is the ordered list of education entries.
type EducationContent struct {
	Items []EducationItem `json:"items" validate:"unique=ID,dive"`
}

// SkillCategory groups skills under a heading.
type SkillCategory struct {
	ID     string   `json:"id" validate:"required"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// SkillsContent is the ordered list of skill categories.
type SkillsContent struct {
	Categories []SkillCategory `json:"categories" validate:"unique=ID,dive"`
}

// ProjectItem is a single project entry.
type ProjectItem struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	Link        string `json:"link,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// ProjectsContent is the ordered list of projects.
type ProjectsContent struct {
	Items []ProjectItem `json:"items" validate:"unique=ID,dive"`
}

// CustomContent is free text under a user-chosen title.
type CustomContent struct {
	Text string `json:"text"`
}

func (c *ContactContent) Type() SectionType    { return SectionContact }
func (c *SummaryContent) Type() SectionType    { return SectionSummary }
func (c *ExperienceContent) Type() SectionType { return SectionExperience }
func (c *EducationContent) Type() SectionType  { return SectionEducation }
func (c *SkillsContent) Type() SectionType     { return SectionSkills }
func (c *ProjectsContent) Type() SectionType   { return SectionProjects }
func (c *CustomContent) Type() SectionType     { return SectionCustom }

func (c *ContactContent) Validate() error    { return validateContent(c) }
func (c *SummaryContent) Validate() error    { return validateContent(c) }
func (c *ExperienceContent) Validate() error { return validateContent(c) }
func (c *EducationContent) Validate() error  { return validateContent(c) }
func (c *SkillsContent) Validate() error     { return validateContent(c) }
func (c *ProjectsContent) Validate() error   { return validateContent(c) }
func (c *CustomContent) Validate() error     { return validateContent(c) }

// IsEmpty is always false for contact: the header is rendered even when blank.
func (c *ContactContent) IsEmpty() bool    { return false }
func (c *SummaryContent) IsEmpty() bool    { return strings.TrimSpace(c.Summary) == "" }
func (c *ExperienceContent) IsEmpty() bool { return len(c.Items) == 0 }
func (c *EducationContent) IsEmpty() bool  { return len(c.Items) == 0 }
func (c *SkillsContent) IsEmpty() bool     { return len(c.Categories) == 0 }
func (c *ProjectsContent) IsEmpty() bool   { return len(c.Items) == 0 }
func (c *CustomContent) IsEmpty() bool     { return strings.TrimSpace(c.Text) == "" }

func (c *ContactContent) clone() Content {
	out := *c
	return &out
}

func (c *SummaryContent) clone() Content {
	out := *c
	return &out
}

func (c *ExperienceContent) clone() Content {
	return &ExperienceContent{Items: append(make([]ExperienceItem, 0, len(c.Items)), c.Items...)}
}

func (c *EducationContent) clone() Content {
	return &EducationContent{Items: append(make([]EducationItem, 0, len(c.Items)), c.Items...)}
}

func (c *SkillsContent) clone() Content {
	categories := make([]SkillCategory, len(c.Categories))
	for i, cat := range c.Categories {
		categories[i] = SkillCategory{
			ID:     cat.ID,
			Name:   cat.Name,
			Skills: append(make([]string, 0, len(cat.Skills)), cat.Skills...),
		}
	}
	return &SkillsContent{Categories: categories}
}

func (c *ProjectsContent) clone() Content {
	return &ProjectsContent{Items: append(make([]ProjectItem, 0, len(c.Items)), c.Items...)}
}

func (c *CustomContent) clone() Content {
	out := *c
	return &out
}

func validateContent(c Content) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid %s content: %w", c.Type(), err)
	}
	return nil
}

// EmptyContent returns the blank payload for a section type, or nil for unknown types.
func EmptyContent(t SectionType) Content {
	switch t {
	case SectionContact:
		return &ContactContent{}
	case SectionSummary:
		return &SummaryContent{}
	case SectionExperience:
		return &ExperienceContent{Items: []ExperienceItem{}}
	case SectionEducation:
		return &EducationContent{Items: []EducationItem{}}
	case SectionSkills:
		return &SkillsContent{Categories: []SkillCategory{}}
	case SectionProjects:
		return &ProjectsContent{Items: []ProjectItem{}}
	case SectionCustom:
		return &CustomContent{}
	default:
		return nil
	}
}

// DecodeContent decodes a JSON payload into the content variant selected by t.
// A missing or null payload yields the empty content for t.
func DecodeContent(t SectionType, data []byte) (Content, error) {
	content := EmptyContent(t)
	if content == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, t)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return content, nil
	}
	if err := json.Unmarshal(trimmed, content); err != nil {
		return nil, fmt.Errorf("failed to decode %s content: %w", t, err)
	}
	// Normalise null lists so that the persisted form never carries null arrays.
	return content.clone(), nil
}
