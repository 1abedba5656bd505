package model

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

const (
	// DefaultTitle is used for lists created without an explicit title.
	DefaultTitle = "Today's Todos"
	// SelectionTitle is the title of every list returned by Select.
	SelectionTitle = "Selected Todos"

	displayHeader = "---- Today's Todos ----"
)

// ErrIndexOutOfRange is wrapped by every index-based operation that is
// handed a position outside the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// List is an ordered collection of todos. Insertion order is preserved.
//
// Queries hand out copies; changes go through the List's own methods.
// A List is not safe for concurrent use.
type List struct {
	title string
	todos []Todo
}

func NewList(title string) *List {
	return &List{title: title}
}

func (l *List) Title() string         { return l.title }
func (l *List) SetTitle(title string) { l.title = title }

// Add appends t and returns the list so calls can be chained.
func (l *List) Add(t Todo) *List {
	l.todos = append(l.todos, t)
	return l
}

func (l *List) Len() int { return len(l.todos) }

// First returns the first todo, or false when the list is empty.
func (l *List) First() (Todo, bool) {
	if len(l.todos) == 0 {
		return Todo{}, false
	}
	return l.todos[0], true
}

// Last returns the last todo, or false when the list is empty.
func (l *List) Last() (Todo, bool) {
	if len(l.todos) == 0 {
		return Todo{}, false
	}
	return l.todos[len(l.todos)-1], true
}

// ToSlice returns a fresh slice holding copies of every todo.
func (l *List) ToSlice() []Todo {
	out := make([]Todo, len(l.todos))
	copy(out, l.todos)
	return out
}

// AllDone reports whether every todo is done. An empty list is all done.
func (l *List) AllDone() bool {
	for _, t := range l.todos {
		if !t.Done {
			return false
		}
	}
	return true
}

func (l *List) checkIndex(i int) error {
	if i < 0 || i >= len(l.todos) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(l.todos), i)
	}
	return nil
}

func (l *List) ItemAt(i int) (Todo, error) {
	if err := l.checkIndex(i); err != nil {
		return Todo{}, err
	}
	return l.todos[i], nil
}

// RemoveAt removes and returns the todo at position i.
func (l *List) RemoveAt(i int) (Todo, error) {
	if err := l.checkIndex(i); err != nil {
		return Todo{}, err
	}
	t := l.todos[i]
	l.todos = append(l.todos[:i], l.todos[i+1:]...)
	return t, nil
}

// InsertAt places t at position i, shifting later todos right.
// i may equal Len() to append.
func (l *List) InsertAt(i int, t Todo) error {
	if i < 0 || i > len(l.todos) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(l.todos), i)
	}
	l.todos = append(l.todos, Todo{})
	copy(l.todos[i+1:], l.todos[i:])
	l.todos[i] = t
	return nil
}

// Update applies fn to the todo stored at position i.
func (l *List) Update(i int, fn func(*Todo)) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	fn(&l.todos[i])
	return nil
}

func (l *List) MarkDoneAt(i int) error {
	return l.Update(i, (*Todo).MarkDone)
}

func (l *List) MarkUndoneAt(i int) error {
	return l.Update(i, (*Todo).MarkUndone)
}

func (l *List) MarkAllDone() {
	for i := range l.todos {
		l.todos[i].MarkDone()
	}
}

func (l *List) MarkAllUndone() {
	for i := range l.todos {
		l.todos[i].MarkUndone()
	}
}

// Shift removes and returns the first todo, or false when the list is empty.
func (l *List) Shift() (Todo, bool) {
	if len(l.todos) == 0 {
		return Todo{}, false
	}
	t := l.todos[0]
	l.todos = l.todos[1:]
	return t, true
}

// Pop removes and returns the last todo, or false when the list is empty.
func (l *List) Pop() (Todo, bool) {
	if len(l.todos) == 0 {
		return Todo{}, false
	}
	last := len(l.todos) - 1
	t := l.todos[last]
	l.todos = l.todos[:last]
	return t, true
}

// All yields each position and a copy of its todo, in order.
func (l *List) All() iter.Seq2[int, Todo] {
	return func(yield func(int, Todo) bool) {
		for i, t := range l.todos {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Each calls visit with every todo in order and returns the list.
func (l *List) Each(visit func(Todo)) *List {
	for _, t := range l.All() {
		visit(t)
	}
	return l
}

// Select returns a new list holding the todos that satisfy keep, in order.
func (l *List) Select(keep func(Todo) bool) *List {
	selection := NewList(SelectionTitle)
	l.Each(func(t Todo) {
		if keep(t) {
			selection.Add(t)
		}
	})
	return selection
}

// IndexOf returns the position of the first todo titled title, or -1.
func (l *List) IndexOf(title string) int {
	for i, t := range l.todos {
		if t.Title == title {
			return i
		}
	}
	return -1
}

// FindByTitle returns the first todo whose title matches exactly.
func (l *List) FindByTitle(title string) (Todo, bool) {
	i := l.IndexOf(title)
	if i < 0 {
		return Todo{}, false
	}
	return l.todos[i], true
}

func (l *List) DoneItems() *List {
	return l.Select(Todo.IsDone)
}

func (l *List) PendingItems() *List {
	return l.Select(func(t Todo) bool { return !t.IsDone() })
}

// MarkDone marks the first todo titled title as done and reports whether
// one was found.
func (l *List) MarkDone(title string) bool {
	i := l.IndexOf(title)
	if i < 0 {
		return false
	}
	l.todos[i].MarkDone()
	return true
}

// MarkUndone is the inverse of MarkDone.
func (l *List) MarkUndone(title string) bool {
	i := l.IndexOf(title)
	if i < 0 {
		return false
	}
	l.todos[i].MarkUndone()
	return true
}

// Stats counts done and pending todos.
func (l *List) Stats() (done, pending int) {
	for _, t := range l.todos {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func (l *List) String() string {
	lines := make([]string, 0, len(l.todos)+1)
	lines = append(lines, displayHeader)
	for _, t := range l.todos {
		lines = append(lines, t.String())
	}
	return strings.Join(lines, "\n")
}
