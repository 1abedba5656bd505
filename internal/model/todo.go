package model

import "github.com/google/uuid"

const (
	doneMarker   = "X"
	undoneMarker = " "
)

// Todo is the domain model for a single todo entry.
// ID identifies an entry across saves; it does not take part in Equal.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// New returns a pending Todo. The optional description defaults to empty.
func New(title string, description ...string) Todo {
	t := Todo{ID: uuid.NewString(), Title: title}
	if len(description) > 0 {
		t.Description = description[0]
	}
	return t
}

func (t *Todo) MarkDone()   { t.Done = true }
func (t *Todo) MarkUndone() { t.Done = false }

func (t Todo) IsDone() bool { return t.Done }

// String renders the todo as "[X] title" or "[ ] title".
func (t Todo) String() string {
	marker := undoneMarker
	if t.Done {
		marker = doneMarker
	}
	return "[" + marker + "] " + t.Title
}

// Equal reports value equality on title, description and done flag.
func (t Todo) Equal(other Todo) bool {
	return t.Title == other.Title &&
		t.Description == other.Description &&
		t.Done == other.Done
}
