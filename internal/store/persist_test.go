package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStorage fails every operation with err.
type failingStorage struct {
	err error
}

func (f *failingStorage) Load(context.Context) ([]byte, error) { return nil, f.err }
func (f *failingStorage) Save(context.Context, []byte) error   { return f.err }
func (f *failingStorage) Clear(context.Context) error          { return f.err }
func (f *failingStorage) Close() error                         { return nil }

func populated(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.UpdateSection(types.ContactSectionID, SectionPatch{
		Content: &types.ContactContent{Name: "Ada Lovelace", Email: "ada@example.com", LinkedIn: "in/ada"},
	}))
	id, err := s.AddItem("experience")
	require.NoError(t, err)
	require.NoError(t, UpdateItem(s, "experience", id, func(item *types.ExperienceItem) {
		item.Company = "Analytical Engines Ltd"
		item.Position = "Programmer"
		item.StartDate = "1842-01"
		item.Current = true
	}))
	_, err = s.NewSection(types.SectionProjects, "")
	require.NoError(t, err)
	s.MoveSection("skills", 1)
	return s
}

func TestEncodeHydrate_RoundTrip(t *testing.T) {
	s := populated(t)
	state := s.State()

	data, err := Encode(state)
	require.NoError(t, err)

	restored, err := Hydrate(data)
	require.NoError(t, err)
	assert.Equal(t, state.Sections, restored.Sections)
	assert.Equal(t, state, restored)

	again, err := Encode(restored)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestHydrate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{{{`},
		{name: "schema violation", data: `{"sections": "nope", "activeSection": null, "template": "modern", "resumeName": ""}`},
		{
			name: "missing contact",
			data: `{"sections": [{"id": "summary", "type": "summary", "title": "", "content": {"summary": ""}, "order": 0}],
				"activeSection": null, "template": "modern", "resumeName": ""}`,
		},
		{
			name: "duplicate ids",
			data: `{"sections": [
				{"id": "contact", "type": "contact", "title": "", "content": {"name": "", "email": "", "phone": "", "location": ""}, "order": 0},
				{"id": "x", "type": "custom", "title": "", "content": {"text": ""}, "order": 1},
				{"id": "x", "type": "custom", "title": "", "content": {"text": ""}, "order": 2}],
				"activeSection": null, "template": "modern", "resumeName": ""}`,
		},
		{
			name: "duplicate item ids",
			data: `{"sections": [
				{"id": "contact", "type": "contact", "title": "", "content": {"name": "", "email": "", "phone": "", "location": ""}, "order": 0},
				{"id": "skills", "type": "skills", "title": "", "content": {"categories": [
					{"id": "a", "name": "", "skills": []}, {"id": "a", "name": "", "skills": []}]}, "order": 1}],
				"activeSection": null, "template": "modern", "resumeName": ""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Hydrate([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestHydrate_RepairsOrdersAndCursor(t *testing.T) {
	data := `{"sections": [
		{"id": "custom-1", "type": "custom", "title": "Awards", "content": {"text": "x"}, "order": 9},
		{"id": "contact", "type": "contact", "title": "Contact", "content": {"name": "", "email": "", "phone": "", "location": ""}, "order": 3}],
		"activeSection": "gone", "template": "simple", "resumeName": "CV"}`

	state, err := Hydrate([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"contact", "custom-1"}, ids(state.Sections))
	assert.Equal(t, []int{0, 1}, orders(state.Sections))
	assert.Nil(t, state.ActiveSection)
	assert.Equal(t, types.TemplateSimple, state.Template)
}

func TestOpen_EmptyStorageUsesDefault(t *testing.T) {
	mem := storage.NewMemoryStorage()

	s, err := Open(context.Background(), mem)
	require.NoError(t, err)

	assert.Equal(t, types.DefaultDocument(), s.State())
	assert.Equal(t, 0, mem.Saves(), "opening does not write")
}

func TestOpen_RehydratesIdenticalState(t *testing.T) {
	ctx := context.Background()
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	first, err := Open(ctx, fs)
	require.NoError(t, err)
	require.NoError(t, first.UpdateSection("summary", SectionPatch{Content: &types.SummaryContent{Summary: "Poet of science"}}))
	require.NoError(t, first.SetTemplate(types.TemplateProfessional))
	require.NoError(t, first.SetActiveSection(ptr("summary")))

	second, err := Open(ctx, fs)
	require.NoError(t, err)
	assert.Equal(t, first.State(), second.State())
}

func TestOpen_UnreadableStateFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	require.NoError(t, mem.Save(ctx, []byte(`{"sections": 12}`)))

	s, err := Open(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultDocument(), s.State())
}

func TestOpen_BackendErrorIsReturned(t *testing.T) {
	_, err := Open(context.Background(), &failingStorage{err: errors.New("connection refused")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPersistenceObserver_WritesEveryMutation(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	s, err := Open(ctx, mem)
	require.NoError(t, err)

	require.NoError(t, s.SetResumeName("CV"))
	require.NoError(t, s.MoveSection("skills", 0))
	require.NoError(t, s.Reset())

	assert.Equal(t, 3, mem.Saves())
	data, err := mem.Load(ctx)
	require.NoError(t, err)
	restored, err := Hydrate(data)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultDocument(), restored)
}

func TestPersistenceObserver_FailureSurfacesWithoutRollback(t *testing.T) {
	s := New(WithObserver(PersistenceObserver(&failingStorage{err: errors.New("read-only")}, 0)))

	err := s.SetResumeName("CV")

	require.ErrorIs(t, err, ErrNotSaved)
	assert.Contains(t, err.Error(), "failed to persist document")
	assert.Equal(t, "CV", s.State().ResumeName)
}

func TestReplace(t *testing.T) {
	s := New()
	other := populated(t).State()

	require.NoError(t, s.Replace(other))
	assert.Equal(t, other, s.State())

	broken := types.DocumentState{Template: types.TemplateModern}
	assert.ErrorIs(t, s.Replace(broken), ErrInvalidState)
	assert.Equal(t, other, s.State())
}
