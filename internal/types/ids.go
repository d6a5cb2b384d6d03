package types

import "github.com/google/uuid"

// Item id prefixes, one per list-valued content.
const (
	ExperienceItemPrefix = "exp"
	EducationItemPrefix  = "edu"
	SkillCategoryPrefix  = "skill"
	ProjectItemPrefix    = "proj"
)

// NewSectionID returns a fresh id for a section of type t.
func NewSectionID(t SectionType) string {
	return string(t) + "-" + uuid.NewString()
}

// NewItemID returns a fresh id for an entry inside list-valued content.
func NewItemID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
