package store

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// EditContent applies fn to a copy of the section's content and writes the result back
// while holding the store lock, so concurrent edits of one section never overwrite each
// other. Unlike UpdateSection it reports ErrSectionNotFound. Nothing is written when fn
// fails.
func (s *Store) EditContent(sectionID string, fn func(types.Content) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.FindSection(sectionID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	content := s.state.Sections[i].Clone().Content
	if err := fn(content); err != nil {
		return err
	}
	if err := content.Validate(); err != nil {
		return err
	}
	return s.updateLocked(i, SectionPatch{Content: content})
}

// AddItem appends a blank entry with a fresh id to a list-valued section and returns
// the new id.
func (s *Store) AddItem(sectionID string) (string, error) {
	var id string
	err := s.EditContent(sectionID, func(c types.Content) error {
		switch v := c.(type) {
		case *types.ExperienceContent:
			id = types.NewItemID(types.ExperienceItemPrefix)
			v.Items = append(v.Items, types.ExperienceItem{ID: id})
		case *types.EducationContent:
			id = types.NewItemID(types.EducationItemPrefix)
			v.Items = append(v.Items, types.EducationItem{ID: id})
		case *types.ProjectsContent:
			id = types.NewItemID(types.ProjectItemPrefix)
			v.Items = append(v.Items, types.ProjectItem{ID: id})
		case *types.SkillsContent:
			id = types.NewItemID(types.SkillCategoryPrefix)
			v.Categories = append(v.Categories, types.SkillCategory{ID: id, Skills: []string{}})
		default:
			return fmt.Errorf("%w: %s", ErrNotListSection, sectionID)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// RemoveItem deletes an entry from a list-valued section.
func (s *Store) RemoveItem(sectionID, itemID string) error {
	return s.EditContent(sectionID, func(c types.Content) error {
		var removed bool
		switch v := c.(type) {
		case *types.ExperienceContent:
			v.Items, removed = removeByID(v.Items, itemID, func(i types.ExperienceItem) string { return i.ID })
		case *types.EducationContent:
			v.Items, removed = removeByID(v.Items, itemID, func(i types.EducationItem) string { return i.ID })
		case *types.ProjectsContent:
			v.Items, removed = removeByID(v.Items, itemID, func(i types.ProjectItem) string { return i.ID })
		case *types.SkillsContent:
			v.Categories, removed = removeByID(v.Categories, itemID, func(i types.SkillCategory) string { return i.ID })
		default:
			return fmt.Errorf("%w: %s", ErrNotListSection, sectionID)
		}
		if !removed {
			return fmt.Errorf("%w: %s in %s", ErrItemNotFound, itemID, sectionID)
		}
		return nil
	})
}

// UpdateItem applies fn to the entry with the given id. T must be the entry type of
// the section's content, e.g. types.ExperienceItem for an experience section.
func UpdateItem[T any](s *Store, sectionID, itemID string, fn func(*T)) error {
	return s.EditContent(sectionID, func(c types.Content) error {
		items, ok := itemsOf[T](c)
		if !ok {
			return fmt.Errorf("%w: %s does not hold %T entries", ErrNotListSection, sectionID, *new(T))
		}
		for k := range *items {
			if entryID((*items)[k]) == itemID {
				fn(&(*items)[k])
				return nil
			}
		}
		return fmt.Errorf("%w: %s in %s", ErrItemNotFound, itemID, sectionID)
	})
}

// FindItem returns a copy of the entry with the given id.
func FindItem[T any](s *Store, sectionID, itemID string) (T, error) {
	var zero T
	section, ok := s.Section(sectionID)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	items, ok := itemsOf[T](section.Content)
	if !ok {
		return zero, fmt.Errorf("%w: %s does not hold %T entries", ErrNotListSection, sectionID, zero)
	}
	for _, item := range *items {
		if entryID(item) == itemID {
			return item, nil
		}
	}
	return zero, fmt.Errorf("%w: %s in %s", ErrItemNotFound, itemID, sectionID)
}

func itemsOf[T any](c types.Content) (*[]T, bool) {
	switch v := c.(type) {
	case *types.ExperienceContent:
		items, ok := any(&v.Items).(*[]T)
		return items, ok
	case *types.EducationContent:
		items, ok := any(&v.Items).(*[]T)
		return items, ok
	case *types.ProjectsContent:
		items, ok := any(&v.Items).(*[]T)
		return items, ok
	case *types.SkillsContent:
		items, ok := any(&v.Categories).(*[]T)
		return items, ok
	default:
		return nil, false
	}
}

func entryID(item any) string {
	switch v := item.(type) {
	case types.ExperienceItem:
		return v.ID
	case types.EducationItem:
		return v.ID
	case types.ProjectItem:
		return v.ID
	case types.SkillCategory:
		return v.ID
	default:
		return ""
	}
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	out := items[:0]
	removed := false
	for _, item := range items {
		if idOf(item) == id {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
