package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// DefaultPersistTimeout bounds a single write to the storage slot.
const DefaultPersistTimeout = 10 * time.Second

// ErrInvalidState is returned when a document breaks the store's invariants.
var ErrInvalidState = errors.New("invalid document state")

// Encode serializes a document in the persisted layout, sections sorted by order.
func Encode(state types.DocumentState) ([]byte, error) {
	state = state.Clone()
	types.SortSections(state.Sections)
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Hydrate decodes persisted bytes, validates them against the document schema and the
// store invariants, and returns the normalised state.
func Hydrate(data []byte) (types.DocumentState, error) {
	if err := schemas.ValidateDocument(data); err != nil {
		return types.DocumentState{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	var state types.DocumentState
	if err := json.Unmarshal(data, &state); err != nil {
		return types.DocumentState{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return normalize(state)
}

// normalize checks invariants that the schema cannot express and repairs the ones that
// are safe to repair: a dangling cursor is cleared and orders are renumbered.
func normalize(state types.DocumentState) (types.DocumentState, error) {
	state = state.Clone()

	seen := make(map[string]bool, len(state.Sections))
	contacts := 0
	for _, section := range state.Sections {
		if err := section.Validate(); err != nil {
			return types.DocumentState{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
		if seen[section.ID] {
			return types.DocumentState{}, fmt.Errorf("%w: duplicate section id %s", ErrInvalidState, section.ID)
		}
		seen[section.ID] = true
		if section.Type == types.SectionContact {
			if section.ID != types.ContactSectionID {
				return types.DocumentState{}, fmt.Errorf("%w: contact section must have id %q", ErrInvalidState, types.ContactSectionID)
			}
			contacts++
		}
	}
	if contacts != 1 {
		return types.DocumentState{}, fmt.Errorf("%w: expected exactly one contact section, found %d", ErrInvalidState, contacts)
	}
	if !state.Template.Valid() {
		return types.DocumentState{}, fmt.Errorf("%w: %w: %q", ErrInvalidState, types.ErrUnknownTemplate, state.Template)
	}
	if state.ActiveSection != nil && !seen[*state.ActiveSection] {
		state.ActiveSection = nil
	}

	types.SortSections(state.Sections)
	for k := range state.Sections {
		state.Sections[k].Order = k
	}
	return state, nil
}

// PersistenceObserver returns an observer that writes every committed state to st.
func PersistenceObserver(st storage.Storage, timeout time.Duration) Observer {
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	return func(state types.DocumentState) error {
		data, err := Encode(state)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := st.Save(ctx, data); err != nil {
			return fmt.Errorf("failed to persist document: %w", err)
		}
		return nil
	}
}

// Open rehydrates a store from st and attaches the persistence observer. Stored state
// that is missing, undecodable or breaks an invariant is replaced by the default
// document. Errors reading the backend itself are returned.
func Open(ctx context.Context, st storage.Storage, opts ...Option) (*Store, error) {
	s := New(opts...)

	data, err := st.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("no stored resume, starting from the default document")
	case err != nil:
		return nil, fmt.Errorf("failed to load stored resume: %w", err)
	default:
		state, hydrateErr := Hydrate(data)
		if hydrateErr != nil {
			s.logger.Warn("stored resume is unreadable, starting from the default document", zap.Error(hydrateErr))
		} else {
			s.state = state
		}
	}

	s.Observe(PersistenceObserver(st, DefaultPersistTimeout))
	return s, nil
}
