// Package overlay stores per-page, per-slot content overrides and the
// per-page edit-mode flag. Overrides survive partial markup changes by
// design: entries are additive and never pruned, so a slot removed from the
// markup keeps its stored override until the whole page map is reset.
package overlay

import (
	"context"

	"curator/internal/kv"
	"curator/internal/platform/metrics"
)

const (
	// PageKeyPrefix partitions overlay maps by normalized page path.
	PageKeyPrefix = "page:"
	// EditStateKey holds the page-path → bool edit-mode map.
	EditStateKey = "edit-state"
)

// NormalizePath canonicalizes a request path into the partition key shared
// by the overlay map and the edit-mode flag. The root path resolves to the
// index document so both always agree.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/index.html"
	}
	return path
}

// PageKey returns the storage key for a page's overlay map.
func PageKey(path string) string {
	return PageKeyPrefix + NormalizePath(path)
}

// Renderer is the rendering-layer collaborator. It exposes the editable
// slots present in the current markup, lets the store read and replace each
// slot's serialized content, and toggles the editable affordance rendering.
type Renderer interface {
	// Slots lists the stable identifiers of editable slots in the markup.
	Slots() []string
	// Content returns a slot's current serialized content.
	Content(slot string) (string, bool)
	// SetContent replaces a slot's rendered content.
	SetContent(slot, content string)
	// ResetContent restores a slot's shipped default content.
	ResetContent(slot string)
	// SetEditable toggles interactive editing affordances on every slot.
	SetEditable(on bool)
}

// SessionChecker gates edit-mode transitions on an active login.
type SessionChecker interface {
	IsLoggedIn(ctx context.Context) bool
}

// Store owns overlay maps and edit-mode flags, both keyed by normalized
// page path.
type Store struct {
	store    *kv.Adapter
	sessions SessionChecker
	metrics  *metrics.Metrics
}

// New wires the store. metrics may be nil.
func New(store *kv.Adapter, sessions SessionChecker, m *metrics.Metrics) *Store {
	return &Store{store: store, sessions: sessions, metrics: m}
}

// Edits returns the stored overlay map for a page. Absence reads as an
// empty map.
func (s *Store) Edits(ctx context.Context, path string) map[string]string {
	edits := map[string]string{}
	s.store.Get(ctx, PageKey(path), &edits)
	return edits
}

// Apply replaces the content of every editable slot that has a stored
// override. Slots without an override keep their current content; stored
// entries without a matching slot are inert. Applying twice in a row yields
// the same rendered state.
func (s *Store) Apply(ctx context.Context, path string, r Renderer) {
	edits := s.Edits(ctx, path)
	for _, slot := range r.Slots() {
		if content, ok := edits[slot]; ok {
			r.SetContent(slot, content)
		}
	}
	if s.metrics != nil {
		s.metrics.OverlayApplies.Inc()
	}
}

// Capture writes the live content of every slot currently present into the
// page's overlay map and persists the whole map. This is a full-overwrite
// save for present slots; entries for slots absent from the markup are left
// untouched.
func (s *Store) Capture(ctx context.Context, path string, r Renderer) {
	edits := s.Edits(ctx, path)
	for _, slot := range r.Slots() {
		if content, ok := r.Content(slot); ok {
			edits[slot] = content
		}
	}
	s.store.Set(ctx, PageKey(path), edits)
	if s.metrics != nil {
		s.metrics.OverlayCaptures.Inc()
	}
}

// Reset deletes the page's entire overlay map, restores shipped defaults on
// every present slot, and forces edit-mode off. Other pages' maps are not
// touched.
func (s *Store) Reset(ctx context.Context, path string, r Renderer) {
	s.store.Delete(ctx, PageKey(path))
	for _, slot := range r.Slots() {
		r.ResetContent(slot)
	}
	s.Apply(ctx, path, r)
	s.setEditMode(ctx, path, false)
	r.SetEditable(false)
	if s.metrics != nil {
		s.metrics.OverlayResets.Inc()
	}
}

// EditMode reports the stored edit-mode flag for a page. The flag persists
// across reloads but is only honored while a session is active.
func (s *Store) EditMode(ctx context.Context, path string) bool {
	flags := map[string]bool{}
	if !s.store.Get(ctx, EditStateKey, &flags) {
		return false
	}
	return flags[NormalizePath(path)]
}

// ToggleEdit flips a page's edit-mode flag. Turning editing on requires an
// active session and at least one editable slot in the markup; a toggle
// that fails the precondition is rejected as a no-op and reported via ok.
// Turning editing off is always allowed.
func (s *Store) ToggleEdit(ctx context.Context, path string, r Renderer) (on bool, ok bool) {
	current := s.EditMode(ctx, path)
	next := !current
	if next {
		if !s.sessions.IsLoggedIn(ctx) || len(r.Slots()) == 0 {
			return current, false
		}
	}
	s.setEditMode(ctx, path, next)
	r.SetEditable(next)
	return next, true
}

// ForceEditOff clears a page's edit-mode flag unconditionally, used by
// logout and reset paths.
func (s *Store) ForceEditOff(ctx context.Context, path string) {
	s.setEditMode(ctx, path, false)
}

func (s *Store) setEditMode(ctx context.Context, path string, on bool) {
	flags := map[string]bool{}
	s.store.Get(ctx, EditStateKey, &flags)
	flags[NormalizePath(path)] = on
	s.store.Set(ctx, EditStateKey, flags)
}
