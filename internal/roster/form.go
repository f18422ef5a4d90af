package roster

import (
	"fmt"
	"strings"
)

// Field naming scheme shared with the admin edit panel: the panel renders
// one input per name/meta pair, keyed by position, plus one textarea per
// history list with one line per item.
//
//	pc-<i>-name / pc-<i>-meta         prison command entries
//	dh-<i>-name / dh-<i>-meta         department head entries
//	academy-name / academy-meta       academy entry
//	history-leaders / history-hall    newline-joined history lists

// FormSeed flattens a roster into the field values used to populate the
// admin edit panel.
func FormSeed(r Roster) map[string]string {
	values := map[string]string{}
	for i, e := range r.PrisonCommand {
		values[fmt.Sprintf("pc-%d-name", i)] = e.Name
		values[fmt.Sprintf("pc-%d-meta", i)] = e.Meta
	}
	for i, e := range r.DepartmentHeads {
		values[fmt.Sprintf("dh-%d-name", i)] = e.Name
		values[fmt.Sprintf("dh-%d-meta", i)] = e.Meta
	}
	values["academy-name"] = r.Academy.Name
	values["academy-meta"] = r.Academy.Meta
	values["history-leaders"] = strings.Join(r.History.Leaders, "\n")
	values["history-hall"] = strings.Join(r.History.Hall, "\n")
	return values
}

// ApplyForm reconstructs a complete roster from the current record plus the
// panel's field values. Titles are never edited through the panel; blank
// inputs coerce to the placeholder glyph. Missing fields read as blank, so
// a partial values map still yields a complete record.
func ApplyForm(current Roster, values map[string]string) Roster {
	next := current

	next.PrisonCommand = make([]Entry, len(current.PrisonCommand))
	for i, e := range current.PrisonCommand {
		next.PrisonCommand[i] = Entry{
			Title: e.Title,
			Name:  fieldValue(values, fmt.Sprintf("pc-%d-name", i)),
			Meta:  fieldValue(values, fmt.Sprintf("pc-%d-meta", i)),
		}
	}

	next.DepartmentHeads = make([]Entry, len(current.DepartmentHeads))
	for i, e := range current.DepartmentHeads {
		next.DepartmentHeads[i] = Entry{
			Title: e.Title,
			Name:  fieldValue(values, fmt.Sprintf("dh-%d-name", i)),
			Meta:  fieldValue(values, fmt.Sprintf("dh-%d-meta", i)),
		}
	}

	next.Academy = Entry{
		Title: current.Academy.Title,
		Name:  fieldValue(values, "academy-name"),
		Meta:  fieldValue(values, "academy-meta"),
	}

	next.History = History{
		Leaders: splitLines(values["history-leaders"]),
		Hall:    splitLines(values["history-hall"]),
	}

	return next
}

func fieldValue(values map[string]string, name string) string {
	return orPlaceholder(strings.TrimSpace(values[name]))
}

func splitLines(raw string) []string {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
