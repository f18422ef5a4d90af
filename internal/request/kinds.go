package request

import "strings"

// placeholder marks fields the submitter left blank.
const placeholder = "—"

// Label pairs a form field name with the human caption used when the
// request is rendered as shareable text. Order matters: the rendered text
// lists fields in declaration order regardless of what the form supplied.
type Label struct {
	Field string
	Text  string
}

// Kind describes one request category: its wire name, how the text header
// is chosen and which fields appear in the rendered text.
type Kind struct {
	Name   string
	header func(values map[string]string) string
	Labels []Label
}

// Header returns the caption for the rendered text. Some kinds pick the
// header from the submitted values.
func (k Kind) Header(values map[string]string) string {
	return k.header(values)
}

// Application covers join, transfer and reinstatement requests. The header
// follows the "type" field; anything unrecognized is treated as a join
// request.
var Application = Kind{
	Name: "application",
	header: func(values map[string]string) string {
		switch values["type"] {
		case "transfer":
			return "ЗАЯВКА НА ПЕРЕВОД"
		case "reinstatement":
			return "ЗАЯВКА НА ВОССТАНОВЛЕНИЕ"
		default:
			return "ЗАЯВКА НА ВСТУПЛЕНИЕ"
		}
	},
	Labels: []Label{
		{Field: "icName", Text: "Имя Фамилия (IC)"},
		{Field: "staticId", Text: "Статик / ID"},
		{Field: "icAge", Text: "Возраст (IC)"},
		{Field: "oocAge", Text: "Возраст (OOC)"},
		{Field: "discord", Text: "Discord"},
		{Field: "motivation", Text: "Почему SASPA?"},
		{Field: "experience", Text: "Опыт в гос. структурах"},
		{Field: "onlineTime", Text: "Время в онлайне (MSK)"},
	},
}

// Complaint covers complaints against staff.
var Complaint = Kind{
	Name:   "complaint",
	header: func(map[string]string) string { return "ЖАЛОБА" },
	Labels: []Label{
		{Field: "authorIc", Text: "Заявитель (IC)"},
		{Field: "authorDiscord", Text: "Discord"},
		{Field: "targetIc", Text: "Сотрудник (IC)"},
		{Field: "when", Text: "Дата/время"},
		{Field: "summary", Text: "Суть жалобы"},
		{Field: "evidence", Text: "Доказательства"},
	},
}

// FormatText renders a request as the text block users paste into Discord.
// Fields missing from values render as the placeholder glyph so readers
// can tell "left blank" from "cut off".
func FormatText(k Kind, id string, values map[string]string) string {
	var b strings.Builder
	b.WriteString("【")
	b.WriteString(k.Header(values))
	b.WriteString("】\nID: ")
	b.WriteString(id)
	b.WriteString("\n")
	for _, l := range k.Labels {
		v := values[l.Field]
		if v == "" {
			v = placeholder
		}
		b.WriteString("\n")
		b.WriteString(l.Text)
		b.WriteString(": ")
		b.WriteString(v)
	}
	return b.String()
}
