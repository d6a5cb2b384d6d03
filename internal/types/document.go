package types

// DefaultResumeName is the document name of a fresh document.
const DefaultResumeName = "My Resume"

// DocumentState is the aggregate root: every section plus document metadata.
type DocumentState struct {
	Sections      []Section `json:"sections"`
	ActiveSection *string   `json:"activeSection"`
	Template      Template  `json:"template"`
	ResumeName    string    `json:"resumeName"`
}

// DefaultDocument returns the document every new resume starts from: the five default
// sections in order, the contact section selected, the modern template.
func DefaultDocument() DocumentState {
	active := ContactSectionID
	return DocumentState{
		Sections: []Section{
			{
				ID:      ContactSectionID,
				Type:    SectionContact,
				Title:   "Contact Information",
				Content: &ContactContent{},
				Order:   0,
			},
			{
				ID:      "summary",
				Type:    SectionSummary,
				Title:   "Professional Summary",
				Content: &SummaryContent{},
				Order:   1,
			},
			{
				ID:      "experience",
				Type:    SectionExperience,
				Title:   "Work Experience",
				Content: &ExperienceContent{Items: []ExperienceItem{}},
				Order:   2,
			},
			{
				ID:      "education",
				Type:    SectionEducation,
				Title:   "Education",
				Content: &EducationContent{Items: []EducationItem{}},
				Order:   3,
			},
			{
				ID:    "skills",
				Type:  SectionSkills,
				Title: "Skills",
				Content: &SkillsContent{Categories: []SkillCategory{
					{ID: "technical", Name: "Technical Skills", Skills: []string{}},
				}},
				Order: 4,
			},
		},
		ActiveSection: &active,
		Template:      TemplateModern,
		ResumeName:    DefaultResumeName,
	}
}

// Clone returns a deep copy of the document.
func (d DocumentState) Clone() DocumentState {
	out := DocumentState{
		Sections:   make([]Section, len(d.Sections)),
		Template:   d.Template,
		ResumeName: d.ResumeName,
	}
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	if d.ActiveSection != nil {
		active := *d.ActiveSection
		out.ActiveSection = &active
	}
	return out
}

// FindSection returns the index of the section with the given id, or -1.
func (d DocumentState) FindSection(id string) int {
	for i, s := range d.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// SortedSections returns a copy of the sections ordered by Order.
func (d DocumentState) SortedSections() []Section {
	out := make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.Clone()
	}
	SortSections(out)
	return out
}

// Contact returns the contact details, or an empty value when the contact section is
// missing.
func (d DocumentState) Contact() ContactContent {
	if i := d.FindSection(ContactSectionID); i >= 0 {
		if c, ok := d.Sections[i].Content.(*ContactContent); ok {
			return *c
		}
	}
	return ContactContent{}
}
