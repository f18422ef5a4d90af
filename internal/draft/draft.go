// Package draft snapshots in-progress form values. Every input or change
// event overwrites the whole draft for that form; restore is best-effort
// and tolerates markup drift in both directions.
package draft

import (
	"context"
	"encoding/json"

	"curator/internal/kv"
	"curator/internal/platform/metrics"
)

// KeyPrefix partitions drafts by form identifier.
const KeyPrefix = "draft:"

// Control is a named, value-bearing form control as exposed by the host's
// form collaborator. Checkbox-like controls carry Checked; everything else
// carries Value.
type Control struct {
	Name     string
	Checkbox bool
	Value    string
	Checked  bool
}

// Form is the form collaborator contract. Controls returns the named
// controls in markup order; the setters report whether a control with that
// name exists. Valid mirrors the native validity check consulted before
// submission.
type Form interface {
	Controls() []Control
	SetValue(name, value string) bool
	SetChecked(name string, checked bool) bool
	Valid() bool
}

// Value is one captured field: a string for ordinary controls, a boolean
// for checkbox-like ones. It serializes as a bare JSON string or bool so
// drafts stay readable and compatible with hand-edited records.
type Value struct {
	Bool    bool
	Checked bool
	Text    string
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Bool {
		return json.Marshal(v.Checked)
	}
	return json.Marshal(v.Text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Value{Bool: true, Checked: b}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Value{Text: s}
	return nil
}

// Values is a captured draft keyed by control name.
type Values map[string]Value

// Capture snapshots a form's named controls. Unnamed controls are skipped.
func Capture(form Form) Values {
	values := Values{}
	for _, c := range form.Controls() {
		if c.Name == "" {
			continue
		}
		if c.Checkbox {
			values[c.Name] = Value{Bool: true, Checked: c.Checked}
		} else {
			values[c.Name] = Value{Text: c.Value}
		}
	}
	return values
}

// Store persists drafts, one per form key, last write wins.
type Store struct {
	store   *kv.Adapter
	metrics *metrics.Metrics
}

// NewStore wires the persistent adapter. metrics may be nil.
func NewStore(store *kv.Adapter, m *metrics.Metrics) *Store {
	return &Store{store: store, metrics: m}
}

// Save overwrites the draft for formKey wholesale.
func (s *Store) Save(ctx context.Context, formKey string, values Values) {
	s.store.Set(ctx, KeyPrefix+formKey, values)
	if s.metrics != nil {
		s.metrics.DraftSaves.Inc()
	}
}

// Load returns the stored draft, or nil when none exists.
func (s *Store) Load(ctx context.Context, formKey string) Values {
	var values Values
	if !s.store.Get(ctx, KeyPrefix+formKey, &values) {
		return nil
	}
	return values
}

// Restore pushes a draft back into a form. Draft keys without a matching
// control are silently ignored; controls without a draft key keep their
// markup defaults. A nil or empty draft is a no-op.
func Restore(form Form, values Values) {
	for name, v := range values {
		if v.Bool {
			form.SetChecked(name, v.Checked)
		} else {
			form.SetValue(name, v.Text)
		}
	}
}
