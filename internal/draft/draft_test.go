package draft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/internal/kv"
)

// fakeForm is an ordered set of controls with markup defaults.
type fakeForm struct {
	controls []Control
	valid    bool
}

func (f *fakeForm) Controls() []Control { return f.controls }

func (f *fakeForm) SetValue(name, value string) bool {
	for i := range f.controls {
		if f.controls[i].Name == name && !f.controls[i].Checkbox {
			f.controls[i].Value = value
			return true
		}
	}
	return false
}

func (f *fakeForm) SetChecked(name string, checked bool) bool {
	for i := range f.controls {
		if f.controls[i].Name == name && f.controls[i].Checkbox {
			f.controls[i].Checked = checked
			return true
		}
	}
	return false
}

func (f *fakeForm) Valid() bool { return f.valid }

func (f *fakeForm) value(name string) string {
	for _, c := range f.controls {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func applicationForm() *fakeForm {
	return &fakeForm{
		valid: true,
		controls: []Control{
			{Name: "icName", Value: ""},
			{Name: "discord", Value: ""},
			{Name: "rules", Checkbox: true, Checked: false},
			{Name: "", Value: "unnamed controls are skipped"},
		},
	}
}

func TestCapture(t *testing.T) {
	t.Run("named controls are captured, unnamed skipped", func(t *testing.T) {
		form := applicationForm()
		form.SetValue("icName", "John Marston")
		form.SetChecked("rules", true)

		values := Capture(form)
		assert.Equal(t, Values{
			"icName":  {Text: "John Marston"},
			"discord": {Text: ""},
			"rules":   {Bool: true, Checked: true},
		}, values)
	})
}

func TestRestore(t *testing.T) {
	t.Run("nil draft leaves markup defaults", func(t *testing.T) {
		form := applicationForm()
		Restore(form, nil)
		assert.Equal(t, applicationForm().controls, form.controls)
	})

	t.Run("empty draft leaves markup defaults", func(t *testing.T) {
		form := applicationForm()
		Restore(form, Values{})
		assert.Equal(t, applicationForm().controls, form.controls)
	})

	t.Run("draft keys without a control are ignored", func(t *testing.T) {
		form := applicationForm()
		Restore(form, Values{"removedField": {Text: "stale"}})
		assert.Equal(t, applicationForm().controls, form.controls)
	})

	t.Run("string and checkbox values restore by kind", func(t *testing.T) {
		form := applicationForm()
		Restore(form, Values{
			"icName": {Text: "John Marston"},
			"rules":  {Bool: true, Checked: true},
		})
		assert.Equal(t, "John Marston", form.value("icName"))
		assert.True(t, form.controls[2].Checked)
	})

	t.Run("controls absent from the draft keep defaults", func(t *testing.T) {
		form := applicationForm()
		form.controls[1].Value = "markup default"
		Restore(form, Values{"icName": {Text: "set"}})
		assert.Equal(t, "markup default", form.value("discord"))
	})
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load with no draft returns nil", func(t *testing.T) {
		store := NewStore(kv.New(kv.NewMemory()), nil)
		assert.Nil(t, store.Load(ctx, "application"))
	})

	t.Run("save then load round-trips both value kinds", func(t *testing.T) {
		store := NewStore(kv.New(kv.NewMemory()), nil)
		store.Save(ctx, "application", Values{
			"icName": {Text: "John"},
			"rules":  {Bool: true, Checked: true},
		})

		got := store.Load(ctx, "application")
		require.NotNil(t, got)
		assert.Equal(t, Value{Text: "John"}, got["icName"])
		assert.Equal(t, Value{Bool: true, Checked: true}, got["rules"])
	})

	t.Run("saves overwrite wholesale, last write wins", func(t *testing.T) {
		store := NewStore(kv.New(kv.NewMemory()), nil)
		store.Save(ctx, "complaint", Values{"summary": {Text: "first"}, "evidence": {Text: "link"}})
		store.Save(ctx, "complaint", Values{"summary": {Text: "second"}})

		got := store.Load(ctx, "complaint")
		assert.Equal(t, Values{"summary": {Text: "second"}}, got, "no merge with the prior draft")
	})

	t.Run("drafts are partitioned by form key", func(t *testing.T) {
		store := NewStore(kv.New(kv.NewMemory()), nil)
		store.Save(ctx, "application", Values{"icName": {Text: "a"}})
		store.Save(ctx, "complaint", Values{"summary": {Text: "b"}})

		assert.Equal(t, Values{"icName": {Text: "a"}}, store.Load(ctx, "application"))
		assert.Equal(t, Values{"summary": {Text: "b"}}, store.Load(ctx, "complaint"))
	})

	t.Run("stored drafts use the original wire shape", func(t *testing.T) {
		backend := kv.NewMemory()
		store := NewStore(kv.New(backend), nil)
		store.Save(ctx, "application", Values{"icName": {Text: "John"}, "rules": {Bool: true, Checked: false}})

		raw, err := backend.Get(ctx, "draft:application")
		require.NoError(t, err)
		assert.JSONEq(t, `{"icName":"John","rules":false}`, string(raw))
	})
}
