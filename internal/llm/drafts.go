package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// DraftJobDescription generates the description of one experience entry from its
// position, company and dates and writes it into the entry. The store is untouched
// when generation fails. When the entry is updated but not saved, the text is returned
// with an error wrapping store.ErrNotSaved.
func DraftJobDescription(ctx context.Context, g *Generator, s *store.Store, sectionID, itemID string, now time.Time) (string, error) {
	item, err := store.FindItem[types.ExperienceItem](s, sectionID, itemID)
	if err != nil {
		return "", err
	}

	text, err := g.JobDescription(ctx, JobDescriptionRequest{
		JobTitle: item.Position,
		Company:  item.Company,
		Years:    YearsOfExperience(item.StartDate, item.EndDate, item.Current, now),
	})
	if err != nil {
		return "", err
	}

	err = store.UpdateItem(s, sectionID, itemID, func(e *types.ExperienceItem) {
		e.Description = text
	})
	if err != nil {
		if errors.Is(err, store.ErrNotSaved) {
			return text, err
		}
		return "", err
	}
	return text, nil
}

// DraftSummary generates a professional summary and stores it in the summary section.
// When req.Skills is empty the skills of every skills section are used.
func DraftSummary(ctx context.Context, g *Generator, s *store.Store, sectionID string, req SummaryRequest) (string, error) {
	section, ok := s.Section(sectionID)
	if !ok {
		return "", fmt.Errorf("%w: %s", store.ErrSectionNotFound, sectionID)
	}
	if section.Type != types.SectionSummary {
		return "", fmt.Errorf("section %s: %w: expected a summary section", sectionID, types.ErrContentMismatch)
	}
	if len(nonBlank(req.Skills)) == 0 {
		req.Skills = DocumentSkills(s.State())
	}

	text, err := g.Summary(ctx, req)
	if err != nil {
		return "", err
	}

	if err := s.UpdateSection(sectionID, store.SectionPatch{Content: &types.SummaryContent{Summary: text}}); err != nil {
		if errors.Is(err, store.ErrNotSaved) {
			return text, err
		}
		return "", err
	}
	return text, nil
}

// DraftCoverLetter generates a cover letter. Name and experience default to the
// contact name and the document's experience entries. The letter is not stored.
func DraftCoverLetter(ctx context.Context, g *Generator, state types.DocumentState, req CoverLetterRequest) (string, error) {
	if blank(req.Name) {
		req.Name = state.Contact().Name
	}
	if blank(req.Experience) {
		req.Experience = ExperienceDigest(state)
	}
	return g.CoverLetter(ctx, req)
}

// DocumentSkills lists the skills of every skills section in document order.
func DocumentSkills(state types.DocumentState) []string {
	var skills []string
	for _, section := range state.SortedSections() {
		content, ok := section.Content.(*types.SkillsContent)
		if !ok {
			continue
		}
		for _, category := range content.Categories {
			skills = append(skills, nonBlank(category.Skills)...)
		}
	}
	return skills
}

// ExperienceDigest summarises the experience entries as "Position at Company" clauses.
func ExperienceDigest(state types.DocumentState) string {
	var parts []string
	for _, section := range state.SortedSections() {
		content, ok := section.Content.(*types.ExperienceContent)
		if !ok {
			continue
		}
		for _, item := range content.Items {
			switch {
			case !blank(item.Position) && !blank(item.Company):
				parts = append(parts, item.Position+" at "+item.Company)
			case !blank(item.Position):
				parts = append(parts, item.Position)
			case !blank(item.Company):
				parts = append(parts, item.Company)
			}
		}
	}
	return strings.Join(parts, "; ")
}
