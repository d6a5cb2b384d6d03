// Package types provides type definitions for the resume document: sections, their
// typed content, templates and the aggregate document state.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// SectionType identifies the kind of a section and therefore the shape of its content.
type SectionType string

// Section types. The set is closed.
const (
	SectionContact    SectionType = "contact"
	SectionSummary    SectionType = "summary"
	SectionExperience SectionType = "experience"
	SectionEducation  SectionType = "education"
	SectionSkills     SectionType = "skills"
	SectionProjects   SectionType = "projects"
	SectionCustom     SectionType = "custom"
)

// ContactSectionID is the id of the protected contact section.
const ContactSectionID = "contact"

// AllSectionTypes lists every section type in display order of the default document.
var AllSectionTypes = []SectionType{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCustom,
}

// ErrUnknownSectionType is returned when a section type is not one of AllSectionTypes.
var ErrUnknownSectionType = errors.New("unknown section type")

// ErrContentMismatch is returned when a section's content does not match its type.
var ErrContentMismatch = errors.New("section content does not match section type")

// Valid reports whether t is one of the enumerated section types.
func (t SectionType) Valid() bool {
	for _, known := range AllSectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseSectionType converts a string to a SectionType.
func ParseSectionType(s string) (SectionType, error) {
	t := SectionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSectionType, s)
	}
	return t, nil
}

// Section is one named, typed block of resume content.
type Section struct {
	ID      string
	Type    SectionType
	Title   string
	Content Content
	Order   int
}

// sectionJSON is the persisted layout of a Section.
type sectionJSON struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
	Order   int             `json:"order"`
}

// MarshalJSON encodes the section with its content inline.
func (s Section) MarshalJSON() ([]byte, error) {
	content := s.Content
	if content == nil {
		content = EmptyContent(s.Type)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content of section %s: %w", s.ID, err)
	}
	return json.Marshal(sectionJSON{
		ID:      s.ID,
		Type:    s.Type,
		Title:   s.Title,
		Content: raw,
		Order:   s.Order,
	})
}

// UnmarshalJSON decodes a section, dispatching the content payload on the type tag.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	content, err := DecodeContent(raw.Type, raw.Content)
	if err != nil {
		return fmt.Errorf("section %s: %w", raw.ID, err)
	}
	*s = Section{
		ID:      raw.ID,
		Type:    raw.Type,
		Title:   raw.Title,
		Content: content,
		Order:   raw.Order,
	}
	return nil
}

// Validate checks the section's structural invariants: a known type, content of the
// matching variant and unique item ids inside list-valued content.
func (s Section) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("section id is required")
	}
	if !s.Type.Valid() {
		return fmt.Errorf("section %s: %w: %q", s.ID, ErrUnknownSectionType, s.Type)
	}
	if s.Content == nil {
		return fmt.Errorf("section %s: content is required", s.ID)
	}
	if s.Content.Type() != s.Type {
		return fmt.Errorf("section %s: %w: %s content in %s section", s.ID, ErrContentMismatch, s.Content.Type(), s.Type)
	}
	if err := s.Content.Validate(); err != nil {
		return fmt.Errorf("section %s: %w", s.ID, err)
	}
	return nil
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	if s.Content != nil {
		out.Content = s.Content.clone()
	}
	return out
}

// SortSections orders sections by ascending Order. The sort is stable so sections
// sharing an order keep their relative position.
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
}
