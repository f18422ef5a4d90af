package testutil

import (
	"context"
	"sort"

	"curator/internal/draft"
)

// Page is an in-memory renderer double. Slots carry a shipped default and
// a current content string; ResetContent restores the default.
type Page struct {
	defaults map[string]string
	content  map[string]string
	Editable bool
}

// NewPage builds a page whose slots start at their shipped defaults.
func NewPage(defaults map[string]string) *Page {
	content := make(map[string]string, len(defaults))
	for slot, def := range defaults {
		content[slot] = def
	}
	return &Page{defaults: defaults, content: content}
}

// NewEmptyPage builds a page with no editable slots.
func NewEmptyPage() *Page {
	return NewPage(nil)
}

func (p *Page) Slots() []string {
	slots := make([]string, 0, len(p.defaults))
	for slot := range p.defaults {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots
}

func (p *Page) Content(slot string) (string, bool) {
	content, ok := p.content[slot]
	return content, ok
}

func (p *Page) SetContent(slot, content string) {
	p.content[slot] = content
}

func (p *Page) ResetContent(slot string) {
	p.content[slot] = p.defaults[slot]
}

func (p *Page) SetEditable(on bool) {
	p.Editable = on
}

// Form is a form double over a fixed control list.
type Form struct {
	controls []draft.Control
	Invalid  bool
}

// NewForm builds a form from the given controls, in order.
func NewForm(controls ...draft.Control) *Form {
	return &Form{controls: controls}
}

func (f *Form) Controls() []draft.Control {
	out := make([]draft.Control, len(f.controls))
	copy(out, f.controls)
	return out
}

func (f *Form) SetValue(name, value string) bool {
	for i := range f.controls {
		if f.controls[i].Name == name && !f.controls[i].Checkbox {
			f.controls[i].Value = value
			return true
		}
	}
	return false
}

func (f *Form) SetChecked(name string, checked bool) bool {
	for i := range f.controls {
		if f.controls[i].Name == name && f.controls[i].Checkbox {
			f.controls[i].Checked = checked
			return true
		}
	}
	return false
}

func (f *Form) Valid() bool {
	return !f.Invalid
}

// Clipboard records copied text. Err, when set, makes every copy fail.
type Clipboard struct {
	Copied []string
	Err    error
}

func (c *Clipboard) Copy(_ context.Context, text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Copied = append(c.Copied, text)
	return nil
}

// Last returns the most recently copied text, or "" when nothing was
// copied.
func (c *Clipboard) Last() string {
	if len(c.Copied) == 0 {
		return ""
	}
	return c.Copied[len(c.Copied)-1]
}
