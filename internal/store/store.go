// Package store implements the resume store: the ordered collection of sections, the
// active-section cursor and document metadata, together with the operations that
// mutate them. Observers are notified after every committed mutation; persistence is
// one such observer. A mutation whose observers fail stays applied and returns an
// error wrapping ErrNotSaved.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// Errors returned by store operations.
var (
	// ErrProtectedSection is returned when removing the contact section
	ErrProtectedSection = errors.New("the contact section cannot be removed")
	// ErrDuplicateSection is returned when adding a section whose id already exists
	ErrDuplicateSection = errors.New("section id already exists")
	// ErrSectionNotFound is returned by helpers that need an existing section
	ErrSectionNotFound = errors.New("section not found")
	// ErrItemNotFound is returned by item helpers for unknown entry ids
	ErrItemNotFound = errors.New("item not found")
	// ErrNotListSection is returned by item helpers on scalar sections
	ErrNotListSection = errors.New("section has no list of items")
	// ErrNotSaved is returned when a mutation was applied but an observer failed
	ErrNotSaved = errors.New("change applied but not saved")
)

// Observer is notified with a snapshot of the state after each committed mutation.
// Observers run while the store lock is held and must not call back into the store.
type Observer func(state types.DocumentState) error

// SectionPatch is a shallow update to a section. Nil fields are left untouched and
// Content, when set, replaces the existing content wholesale.
type SectionPatch struct {
	Title   *string
	Content types.Content
	Order   *int
}

// Store owns the document state.
type Store struct {
	mu        sync.Mutex
	state     types.DocumentState
	observers []Observer
	logger    *zap.Logger

	gapTolerantRemoval bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report observer failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

// WithGapTolerantRemoval keeps the order values of the remaining sections untouched
// on removal, leaving a gap until the next move renumbers them.
func WithGapTolerantRemoval() Option {
	return func(s *Store) {
		s.gapTolerantRemoval = true
	}
}

// New returns a store holding the default document.
func New(opts ...Option) *Store {
	s := &Store{
		state:  types.DefaultDocument(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe registers an observer for subsequent mutations.
func (s *Store) Observe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// commit notifies observers and returns their joined errors wrapped in ErrNotSaved.
// Callers hold s.mu.
func (s *Store) commit(op string) error {
	if len(s.observers) == 0 {
		return nil
	}
	snapshot := s.state.Clone()
	var errs []error
	for _, o := range s.observers {
		if err := o(snapshot); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	err := errors.Join(errs...)
	s.logger.Warn("observer failed after mutation", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrNotSaved, err)
}

// State returns a deep copy of the current document with sections sorted by order.
func (s *Store) State() types.DocumentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state.Clone()
	types.SortSections(state.Sections)
	return state
}

// Sections returns a deep copy of the sections sorted by order.
func (s *Store) Sections() []types.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SortedSections()
}

// Section returns a copy of the section with the given id.
func (s *Store) Section(id string) (types.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.FindSection(id)
	if i < 0 {
		return types.Section{}, false
	}
	return s.state.Sections[i].Clone(), true
}

// ActiveSection returns the section under the cursor, if the cursor is set and points
// at an existing section.
func (s *Store) ActiveSection() (types.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.ActiveSection == nil {
		return types.Section{}, false
	}
	i := s.state.FindSection(*s.state.ActiveSection)
	if i < 0 {
		return types.Section{}, false
	}
	return s.state.Sections[i].Clone(), true
}

// AddSection inserts a fully formed section at its Order, shifting sections at or after
// that order down by one. An order past the end appends. The caller supplies the id;
// a duplicate id is rejected.
func (s *Store) AddSection(section types.Section) error {
	if err := section.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.FindSection(section.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateSection, section.ID)
	}
	if section.Type == types.SectionContact || section.ID == types.ContactSectionID {
		return fmt.Errorf("%w: %s", ErrDuplicateSection, types.ContactSectionID)
	}

	s.state.Sections = append(s.state.Sections, section.Clone())
	s.placeLocked(len(s.state.Sections)-1, section.Order)
	return s.commit("add_section")
}

// NewSection builds a section of type t with a generated id and empty content,
// appends it after the last section and returns a copy. On ErrNotSaved the section is
// returned alongside the error.
func (s *Store) NewSection(t types.SectionType, title string) (types.Section, error) {
	if !t.Valid() {
		return types.Section{}, fmt.Errorf("%w: %q", types.ErrUnknownSectionType, t)
	}
	if title == "" {
		title = DefaultTitle(t)
	}

	s.mu.Lock()
	order := len(s.state.Sections)
	s.mu.Unlock()

	section := types.Section{
		ID:      types.NewSectionID(t),
		Type:    t,
		Title:   title,
		Content: types.EmptyContent(t),
		Order:   order,
	}
	if err := s.AddSection(section); err != nil {
		if errors.Is(err, ErrNotSaved) {
			return section, err
		}
		return types.Section{}, err
	}
	return section, nil
}

// UpdateSection merges patch into the section with the given id. Unknown ids are a
// silent no-op. Content must match the section's type. Order, when present, relocates
// the section the same way MoveSection does.
func (s *Store) UpdateSection(id string, patch SectionPatch) error {
	if patch.Content != nil {
		if err := patch.Content.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.FindSection(id)
	if i < 0 {
		return nil
	}
	return s.updateLocked(i, patch)
}

// updateLocked applies patch to the section at index i. Callers hold s.mu and have
// validated patch.Content.
func (s *Store) updateLocked(i int, patch SectionPatch) error {
	section := &s.state.Sections[i]
	id := section.ID

	if patch.Content != nil && patch.Content.Type() != section.Type {
		return fmt.Errorf("section %s: %w: %s content in %s section",
			id, types.ErrContentMismatch, patch.Content.Type(), section.Type)
	}

	if patch.Title != nil {
		section.Title = *patch.Title
	}
	if patch.Content != nil {
		section.Content = types.Section{Content: patch.Content}.Clone().Content
	}
	if patch.Order != nil {
		s.placeLocked(i, *patch.Order)
	}
	return s.commit("update_section")
}

// RemoveSection deletes the section with the given id. The contact section is
// protected. The cursor is cleared if it pointed at the removed section. Unknown ids are
// a silent no-op.
func (s *Store) RemoveSection(id string) error {
	if id == types.ContactSectionID {
		return ErrProtectedSection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.FindSection(id)
	if i < 0 {
		return nil
	}

	s.state.Sections = append(s.state.Sections[:i], s.state.Sections[i+1:]...)
	if s.state.ActiveSection != nil && *s.state.ActiveSection == id {
		s.state.ActiveSection = nil
	}
	if !s.gapTolerantRemoval {
		s.renumberLocked()
	}
	return s.commit("remove_section")
}

// SetActiveSection moves the cursor. Nil clears it. The id is not checked.
func (s *Store) SetActiveSection(id *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil {
		s.state.ActiveSection = nil
	} else {
		active := *id
		s.state.ActiveSection = &active
	}
	return s.commit("set_active_section")
}

// MoveSection relocates a section so that it occupies newOrder. Targets outside
// [0, count-1] are clamped. Unknown ids are a silent no-op.
func (s *Store) MoveSection(id string, newOrder int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.FindSection(id)
	if i < 0 {
		return nil
	}
	s.placeLocked(i, newOrder)
	return s.commit("move_section")
}

// MoveUp swaps a section with its predecessor. No-op for the first section.
func (s *Store) MoveUp(id string) error {
	return s.shift(id, -1, "move_up")
}

// MoveDown swaps a section with its successor. No-op for the last section.
func (s *Store) MoveDown(id string) error {
	return s.shift(id, 1, "move_down")
}

// shift moves a section delta positions in display order, doing nothing when that
// would leave the list.
func (s *Store) shift(id string, delta int, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.FindSection(id)
	if i < 0 {
		return nil
	}
	rank := 0
	for _, other := range s.state.Sections {
		if other.Order < s.state.Sections[i].Order {
			rank++
		}
	}
	target := rank + delta
	if target < 0 || target > len(s.state.Sections)-1 {
		return nil
	}
	s.placeLocked(i, target)
	return s.commit(op)
}

// SetTemplate selects the visual template.
func (s *Store) SetTemplate(t types.Template) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownTemplate, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Template = t
	return s.commit("set_template")
}

// SetResumeName sets the document name, which is also the export filename stem.
func (s *Store) SetResumeName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ResumeName = name
	return s.commit("set_resume_name")
}

// Reset discards the document and replaces it with the default one.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = types.DefaultDocument()
	return s.commit("reset")
}

// Replace swaps in a whole document, for example one read from an import file. The
// document must pass Hydrate's checks.
func (s *Store) Replace(state types.DocumentState) error {
	normalized, err := normalize(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = normalized
	return s.commit("replace")
}

// placeLocked assigns newOrder to the section at index i. The other sections are first
// compacted to 0..n-2, then every one at or after newOrder shifts up by one, and the
// whole set is sorted and renumbered. Callers hold s.mu.
func (s *Store) placeLocked(i, newOrder int) {
	sections := s.state.Sections
	n := len(sections)
	newOrder = clamp(newOrder, 0, n-1)

	moved := sections[i]
	others := make([]types.Section, 0, n-1)
	others = append(others, sections[:i]...)
	others = append(others, sections[i+1:]...)
	types.SortSections(others)

	for k := range others {
		others[k].Order = k
		if others[k].Order >= newOrder {
			others[k].Order++
		}
	}
	moved.Order = newOrder

	s.state.Sections = append(others, moved)
	s.renumberLocked()
}

// renumberLocked sorts the sections and rewrites their orders as 0..n-1.
func (s *Store) renumberLocked() {
	types.SortSections(s.state.Sections)
	for k := range s.state.Sections {
		s.state.Sections[k].Order = k
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DefaultTitle returns the display title used for new sections of type t.
func DefaultTitle(t types.SectionType) string {
	switch t {
	case types.SectionContact:
		return "Contact Information"
	case types.SectionSummary:
		return "Professional Summary"
	case types.SectionExperience:
		return "Work Experience"
	case types.SectionEducation:
		return "Education"
	case types.SectionSkills:
		return "Skills"
	case types.SectionProjects:
		return "Projects"
	default:
		return "Custom Section"
	}
}
