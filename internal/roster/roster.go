// Package roster owns the leadership roster record: a versioned nested
// document with forward-compatible schema migration. Old records are
// normalized field by field on load; unknown extra fields round-trip
// unchanged so newer writers can coexist with this reader.
package roster

import (
	"context"
	"encoding/json"
	"strings"

	"curator/internal/kv"
	"curator/internal/platform/metrics"
)

// Key is the persistent-store key holding the roster record.
const Key = "leadership"

// Placeholder is the glyph substituted for blank fields.
const Placeholder = "—"

// Entry is a single named role.
type Entry struct {
	Title string `json:"title"`
	Name  string `json:"name"`
	Meta  string `json:"meta"`
}

// History holds the ordered free-text history lists.
type History struct {
	Leaders []string `json:"leaders"`
	Hall    []string `json:"hall"`
}

// Roster is the full leadership record. Extra carries top-level fields this
// version does not know about; they survive migrate + save verbatim.
type Roster struct {
	PrisonCommand   []Entry
	DepartmentHeads []Entry
	Academy         Entry
	History         History
	Extra           map[string]json.RawMessage
}

// legacyTitles maps renamed department titles to their current canonical
// names. Replacement is first-occurrence substring replacement; canonical
// titles contain no legacy name, so re-running the table is a no-op.
var legacyTitles = []struct {
	legacy, canonical string
}{
	{"Facility Administration Service", "Federal Advanced Squad"},
	{"Human Resources Division", "Human Resource Department"},
	{"Medical Department", "Medical Events Department"},
	{"Prisoner Control Division", "Prisoners Control Department"},
}

// MarshalJSON writes known fields over the preserved extra fields.
func (r Roster) MarshalJSON() ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(r.Extra)+4)
	for k, v := range r.Extra {
		doc[k] = v
	}
	for key, value := range map[string]any{
		"prisonCommand":   r.PrisonCommand,
		"departmentHeads": r.DepartmentHeads,
		"academy":         r.Academy,
		"history":         r.History,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		doc[key] = raw
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes leniently: malformed known fields are left zero for
// Migrate to backfill, never an error.
func (r *Roster) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = fromDocument(doc)
	return nil
}

func fromDocument(doc map[string]json.RawMessage) Roster {
	var r Roster
	for key, raw := range doc {
		switch key {
		case "prisonCommand":
			_ = json.Unmarshal(raw, &r.PrisonCommand)
		case "departmentHeads":
			_ = json.Unmarshal(raw, &r.DepartmentHeads)
		case "academy":
			_ = json.Unmarshal(raw, &r.Academy)
		case "history":
			_ = json.Unmarshal(raw, &r.History)
		default:
			if r.Extra == nil {
				r.Extra = map[string]json.RawMessage{}
			}
			r.Extra[key] = raw
		}
	}
	return r
}

// Migrate normalizes a possibly stale or malformed raw record into the
// current shape. Each top-level field falls back to the seed independently;
// a malformed prisonCommand does not cost the caller their departmentHeads.
// Migrate is idempotent: already-canonical data passes through unchanged.
func Migrate(raw map[string]json.RawMessage) Roster {
	seed := Default()
	r := fromDocument(raw)

	if !isList(raw["prisonCommand"]) || r.PrisonCommand == nil {
		r.PrisonCommand = seed.PrisonCommand
	}
	if !isList(raw["departmentHeads"]) || r.DepartmentHeads == nil {
		r.DepartmentHeads = seed.DepartmentHeads
	}
	if !isObject(raw["academy"]) {
		r.Academy = seed.Academy
	}
	if !isObject(raw["history"]) {
		r.History = seed.History
	}

	for i := range r.PrisonCommand {
		r.PrisonCommand[i] = normalizeEntry(r.PrisonCommand[i])
	}
	for i := range r.DepartmentHeads {
		entry := r.DepartmentHeads[i]
		for _, m := range legacyTitles {
			entry.Title = strings.Replace(entry.Title, m.legacy, m.canonical, 1)
		}
		r.DepartmentHeads[i] = normalizeEntry(entry)
	}
	r.Academy = normalizeEntry(r.Academy)

	// Inner history lists are never left null; absence reads as empty, not
	// as the seed, so an intentionally cleared list stays cleared.
	if r.History.Leaders == nil {
		r.History.Leaders = []string{}
	}
	if r.History.Hall == nil {
		r.History.Hall = []string{}
	}

	return r
}

func normalizeEntry(e Entry) Entry {
	return Entry{
		Title: orPlaceholder(e.Title),
		Name:  orPlaceholder(e.Name),
		Meta:  orPlaceholder(e.Meta),
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func isList(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}

func isObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{")
}

// Store loads and saves the roster record. Mutation happens only through
// the explicit admin save path; the record is never deleted.
type Store struct {
	store   *kv.Adapter
	metrics *metrics.Metrics
}

// NewStore wires the persistent adapter. metrics may be nil.
func NewStore(store *kv.Adapter, m *metrics.Metrics) *Store {
	return &Store{store: store, metrics: m}
}

// Load returns the stored roster run through Migrate, or the compiled-in
// seed when no record exists yet.
func (s *Store) Load(ctx context.Context) Roster {
	var doc map[string]json.RawMessage
	if !s.store.Get(ctx, Key, &doc) {
		return Default()
	}
	if s.metrics != nil {
		s.metrics.RosterMigrations.Inc()
	}
	return Migrate(doc)
}

// Save writes the full record verbatim. There is no partial update path:
// callers always supply a complete, already-migrated roster.
func (s *Store) Save(ctx context.Context, r Roster) {
	s.store.Set(ctx, Key, r)
}
