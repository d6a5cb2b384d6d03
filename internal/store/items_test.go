package store

import (
	"sync"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem_GeneratesUniqueIDs(t *testing.T) {
	s := New()

	first, err := s.AddItem("experience")
	require.NoError(t, err)
	second, err := s.AddItem("experience")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Contains(t, first, "exp-")

	section, _ := s.Section("experience")
	items := section.Content.(*types.ExperienceContent).Items
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0].ID)
	assert.Equal(t, second, items[1].ID)
}

func TestAddItem_PerContentPrefix(t *testing.T) {
	s := New()
	projects, err := s.NewSection(types.SectionProjects, "")
	require.NoError(t, err)

	tests := []struct {
		sectionID string
		prefix    string
	}{
		{"experience", "exp-"},
		{"education", "edu-"},
		{"skills", "skill-"},
		{projects.ID, "proj-"},
	}
	for _, tt := range tests {
		id, err := s.AddItem(tt.sectionID)
		require.NoError(t, err)
		assert.Contains(t, id, tt.prefix)
	}
}

func TestAddItem_Errors(t *testing.T) {
	s := New()

	_, err := s.AddItem("summary")
	assert.ErrorIs(t, err, ErrNotListSection)

	_, err = s.AddItem("missing")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestUpdateItem(t *testing.T) {
	s := New()
	id, err := s.AddItem("education")
	require.NoError(t, err)

	err = UpdateItem(s, "education", id, func(item *types.EducationItem) {
		item.Institution = "University of London"
		item.Degree = "BSc"
	})
	require.NoError(t, err)

	item, err := FindItem[types.EducationItem](s, "education", id)
	require.NoError(t, err)
	assert.Equal(t, "University of London", item.Institution)
	assert.Equal(t, "BSc", item.Degree)
}

func TestUpdateItem_Errors(t *testing.T) {
	s := New()
	id, err := s.AddItem("experience")
	require.NoError(t, err)

	err = UpdateItem(s, "experience", "exp-unknown", func(*types.ExperienceItem) {})
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = UpdateItem(s, "experience", id, func(*types.EducationItem) {})
	assert.ErrorIs(t, err, ErrNotListSection)

	_, err = FindItem[types.ExperienceItem](s, "nope", id)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestRemoveItem(t *testing.T) {
	s := New()

	require.NoError(t, s.RemoveItem("skills", "technical"))
	section, _ := s.Section("skills")
	assert.Empty(t, section.Content.(*types.SkillsContent).Categories)

	assert.ErrorIs(t, s.RemoveItem("skills", "technical"), ErrItemNotFound)
	assert.ErrorIs(t, s.RemoveItem("summary", "x"), ErrNotListSection)
}

func TestEditContent_SkillCategory(t *testing.T) {
	s := New()
	err := UpdateItem(s, "skills", "technical", func(c *types.SkillCategory) {
		c.Skills = append(c.Skills, "Go", "PostgreSQL")
	})
	require.NoError(t, err)

	category, err := FindItem[types.SkillCategory](s, "skills", "technical")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, category.Skills)
}

func TestItems_ConcurrentEditsAreNotLost(t *testing.T) {
	s := New()

	const workers = 64
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids[w], errs[w] = s.AddItem("experience")
		}(w)
	}
	wg.Wait()

	section, _ := s.Section("experience")
	stored := make(map[string]bool)
	for _, item := range section.Content.(*types.ExperienceContent).Items {
		stored[item.ID] = true
	}
	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		assert.True(t, stored[ids[w]], "item %s was reported as added but is missing", ids[w])
	}
	assert.Len(t, stored, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			errs[w] = UpdateItem(s, "experience", ids[w], func(e *types.ExperienceItem) {
				e.Company = ids[w]
			})
		}(w)
	}
	wg.Wait()

	section, _ = s.Section("experience")
	for _, item := range section.Content.(*types.ExperienceContent).Items {
		assert.Equal(t, item.ID, item.Company)
	}
}

func TestEditContent_FailedEditLeavesSectionUntouched(t *testing.T) {
	s := New()
	id, err := s.AddItem("experience")
	require.NoError(t, err)

	err = UpdateItem(s, "experience", id, func(e *types.ExperienceItem) {
		e.Company = "changed"
	})
	require.NoError(t, err)

	err = s.RemoveItem("experience", "exp-unknown")
	assert.ErrorIs(t, err, ErrItemNotFound)
	item, err := FindItem[types.ExperienceItem](s, "experience", id)
	require.NoError(t, err)
	assert.Equal(t, "changed", item.Company)
}
