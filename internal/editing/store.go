// Package editing holds the inline-edit state for one visitor session: the
// global edit-mode flag and the overrides an operator saved for each
// editable element.  Values are either plain text or one of the two style
// records.  Nothing here validates the shape of a value; callers in the
// editable package write the correct shape for the element kind.
package editing

import (
	"context"
	"errors"
	"sync"
)

// ErrNoStore is returned when a store is requested from a context that was
// never given one.  Handlers that hit this are mounted outside the session
// middleware.
var ErrNoStore = errors.New("editing: store accessed outside an editing scope")

// ValueKind tags which field of a Value is populated.
type ValueKind string

const (
	KindText       ValueKind = "text"
	KindTypography ValueKind = "typography"
	KindButton     ValueKind = "button"
)

// Value is a single override.  Exactly one of Text, Typography or Button is
// meaningful, selected by Kind.
type Value struct {
	Kind       ValueKind        `json:"kind"`
	Text       string           `json:"text,omitempty"`
	Typography *TypographyStyle `json:"typography,omitempty"`
	Button     *ButtonStyle     `json:"button,omitempty"`
}

// TextValue wraps a string override.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// TypographyValue wraps a copy of a typography record.
func TypographyValue(s TypographyStyle) Value {
	cp := s.Clone()
	return Value{Kind: KindTypography, Typography: &cp}
}

// ButtonValue wraps a copy of a button record.
func ButtonValue(s ButtonStyle) Value {
	cp := s
	return Value{Kind: KindButton, Button: &cp}
}

// StylesKey is the store key of the typography record for a text element.
func StylesKey(id string) string { return id + "_styles" }

// ButtonStylesKey is the store key of the button record for a button element.
func ButtonStylesKey(id string) string { return id + "_button_styles" }

// Store is the per-session map from element id to override value plus the
// edit-mode flag.  The zero value is not usable; call NewStore.
type Store struct {
	mu       sync.RWMutex
	editMode bool
	elements map[string]Value

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(id string)
}

// NewStore returns an empty store with edit mode off.
func NewStore() *Store {
	return &Store{
		elements: make(map[string]Value),
		subs:     make(map[int]func(string)),
	}
}

// EditMode reports whether inline editing is switched on.
func (s *Store) EditMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editMode
}

// SetEditMode switches inline editing on or off.  Subscribers are notified
// with an empty id.
func (s *Store) SetEditMode(on bool) {
	s.mu.Lock()
	s.editMode = on
	s.mu.Unlock()
	s.notify("")
}

// Get returns the override stored under id.
func (s *Store) Get(id string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.elements[id]
	return v, ok
}

// Text returns the text override for id.  A value of another kind is
// reported as absent.
func (s *Store) Text(id string) (string, bool) {
	v, ok := s.Get(id)
	if !ok || v.Kind != KindText {
		return "", false
	}
	return v.Text, true
}

// Typography returns a copy of the typography record saved for element id,
// or the zero record.
func (s *Store) Typography(id string) TypographyStyle {
	v, ok := s.Get(StylesKey(id))
	if !ok || v.Typography == nil {
		return TypographyStyle{}
	}
	return v.Typography.Clone()
}

// ButtonStyle returns a copy of the button record saved for element id, or
// the zero record.
func (s *Store) ButtonStyle(id string) ButtonStyle {
	v, ok := s.Get(ButtonStylesKey(id))
	if !ok || v.Button == nil {
		return ButtonStyle{}
	}
	return *v.Button
}

// Set inserts or overwrites the value under id.  Last write wins.
func (s *Store) Set(id string, v Value) {
	s.mu.Lock()
	s.elements[id] = v
	s.mu.Unlock()
	s.notify(id)
}

// SetMany writes every entry of values.  Subscribers are notified once per
// key after all writes are visible.
func (s *Store) SetMany(values map[string]Value) {
	if len(values) == 0 {
		return
	}
	s.mu.Lock()
	for id, v := range values {
		s.elements[id] = v
	}
	s.mu.Unlock()
	for id := range values {
		s.notify(id)
	}
}

// Len reports the number of stored overrides.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

// Subscribe registers fn to be called after every write.  The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(id string)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(id string) {
	s.subMu.Lock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(id)
	}
}

// Snapshot is the serialisable form of a store used by registries.
type Snapshot struct {
	EditMode bool             `json:"edit_mode"`
	Elements map[string]Value `json:"elements"`
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Snapshot{EditMode: s.editMode, Elements: make(map[string]Value, len(s.elements))}
	for k, v := range s.elements {
		out.Elements[k] = v
	}
	return out
}

// Restore replaces the current state with snap without notifying
// subscribers.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editMode = snap.EditMode
	s.elements = make(map[string]Value, len(snap.Elements))
	for k, v := range snap.Elements {
		s.elements[k] = v
	}
}

type ctxKey struct{}

// WithStore returns a context carrying s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store in scope, or ErrNoStore.
func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoStore
	}
	return s, nil
}

// MustFromContext is FromContext for callers that cannot continue without
// a store.  It panics with ErrNoStore.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
