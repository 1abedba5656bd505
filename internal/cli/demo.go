package cli

import (
	"fmt"
	"io"

	"github.com/idilsaglam/todolist/internal/model"
)

// Demo builds a throwaway list and prints it after each step.
// Nothing is read from or written to disk.
func Demo(w io.Writer) {
	l := model.NewList(model.DefaultTitle)
	l.Add(model.New("Buy milk")).
		Add(model.New("Clean room")).
		Add(model.New("Go to gym"))

	_ = l.MarkDoneAt(1)

	if td, ok := l.FindByTitle("Buy milk"); ok {
		fmt.Fprintln(w, td)
	}
	fmt.Fprintln(w, l.DoneItems())
	fmt.Fprintln(w, l.PendingItems())

	l.MarkDone("Go to gym")
	fmt.Fprintln(w, l)

	l.MarkAllDone()
	fmt.Fprintln(w, l)

	l.MarkAllUndone()
	fmt.Fprintln(w, l)
}
