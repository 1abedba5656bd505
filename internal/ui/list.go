package ui

import (
	"fmt"

	"github.com/idilsaglam/todolist/internal/model"
)

const maxTitleWidth = 80

// Header summarizes a list: title, done and pending counts, total.
func Header(l *model.List) string {
	t := Current()
	d, p := l.Stats()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, l.Title()),
		C(t.Success, t.SymDone), d,
		C(t.Pending, t.SymPending), p,
		C(t.Accent, "Total"), l.Len(),
	)
}

// TodoLine renders one row; pos is the 1-based position shown to users.
func TodoLine(pos int, td model.Todo) string {
	t := Current()
	box, color := t.BoxUnchecked, t.Muted
	if td.Done {
		box, color = t.BoxChecked, t.Success
	}
	title := td.Title
	if r := []rune(title); len(r) > maxTitleWidth {
		title = string(r[:maxTitleWidth-3]) + "..."
	}
	return fmt.Sprintf("%s %s %s", Dim(fmt.Sprintf("%2d.", pos)), C(color, box), title)
}

// ListLines renders the panel body for l, flat or grouped by pending/done.
// Positions always refer to the original list.
func ListLines(l *model.List, group bool) []string {
	t := Current()
	lines := []string{
		Header(l),
		C(t.Muted, ProgressBar(doneCount(l), l.Len(), 28)),
		"",
	}
	if l.Len() == 0 {
		return append(lines, C(t.Muted, "no items"))
	}
	if !group {
		for i, td := range l.All() {
			lines = append(lines, TodoLine(i+1, td))
		}
		return lines
	}

	section := func(name string, want bool) {
		lines = append(lines, C(t.Accent, name))
		n := 0
		for i, td := range l.All() {
			if td.Done == want {
				lines = append(lines, TodoLine(i+1, td))
				n++
			}
		}
		if n == 0 {
			lines = append(lines, C(t.Muted, "(none)"))
		}
	}
	section("Pending", false)
	lines = append(lines, "")
	section("Done", true)
	return lines
}

func doneCount(l *model.List) int {
	d, _ := l.Stats()
	return d
}
