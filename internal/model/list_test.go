package model

import (
	"errors"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func groceryList() *List {
	l := NewList(DefaultTitle)
	l.Add(New("Buy milk")).Add(New("Clean room")).Add(New("Go to gym"))
	return l
}

func titles(l *List) []string {
	var out []string
	l.Each(func(t Todo) { out = append(out, t.Title) })
	return out
}

func TestListDisplay(t *testing.T) {
	l := groceryList()
	if !l.MarkDone("Clean room") {
		t.Fatal("MarkDone did not find Clean room")
	}

	want := "---- Today's Todos ----\n" +
		"[ ] Buy milk\n" +
		"[X] Clean room\n" +
		"[ ] Go to gym"
	if got := l.String(); got != want {
		t.Errorf("String:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFindByTitle(t *testing.T) {
	l := groceryList()

	got, ok := l.FindByTitle("Go to gym")
	if !ok {
		t.Fatal("FindByTitle(Go to gym) reported absent")
	}
	third, _ := l.ItemAt(2)
	if got.ID != third.ID {
		t.Errorf("FindByTitle returned %q, want the third item %q", got.ID, third.ID)
	}

	if _, ok := l.FindByTitle("missing"); ok {
		t.Error("FindByTitle(missing) should report absent")
	}
}

func TestTitleLookupsUseFirstMatch(t *testing.T) {
	first := New("dup", "one")
	second := New("dup", "two")
	l := NewList(DefaultTitle)
	l.Add(New("other")).Add(first).Add(second)

	if i := l.IndexOf("dup"); i != 1 {
		t.Errorf("IndexOf: got %d, want 1", i)
	}
	got, ok := l.FindByTitle("dup")
	if !ok || got.ID != first.ID {
		t.Errorf("FindByTitle: got %q, want first match %q", got.ID, first.ID)
	}

	if !l.MarkDone("dup") {
		t.Fatal("MarkDone(dup) reported not found")
	}
	if td, _ := l.ItemAt(1); !td.Done {
		t.Error("first match not marked done")
	}
	if td, _ := l.ItemAt(2); td.Done {
		t.Error("second match should stay pending")
	}

	l.MarkAllDone()
	if !l.MarkUndone("dup") {
		t.Fatal("MarkUndone(dup) reported not found")
	}
	if td, _ := l.ItemAt(1); td.Done {
		t.Error("first match still done after MarkUndone")
	}
	if td, _ := l.ItemAt(2); !td.Done {
		t.Error("second match should stay done")
	}
}

func TestFirstLastOnEmpty(t *testing.T) {
	l := NewList("empty")
	if _, ok := l.First(); ok {
		t.Error("First on empty list should report absent")
	}
	if _, ok := l.Last(); ok {
		t.Error("Last on empty list should report absent")
	}
	if _, ok := l.Shift(); ok {
		t.Error("Shift on empty list should report absent")
	}
	if _, ok := l.Pop(); ok {
		t.Error("Pop on empty list should report absent")
	}
}

func TestShiftAndPop(t *testing.T) {
	l := groceryList()

	first, ok := l.Shift()
	if !ok || first.Title != "Buy milk" {
		t.Fatalf("Shift: got %q, %v", first.Title, ok)
	}
	last, ok := l.Pop()
	if !ok || last.Title != "Go to gym" {
		t.Fatalf("Pop: got %q, %v", last.Title, ok)
	}
	if !slices.Equal(titles(l), []string{"Clean room"}) {
		t.Errorf("remaining: got %v", titles(l))
	}
}

func TestIndexErrors(t *testing.T) {
	l := groceryList()

	tests := []struct {
		name string
		call func() error
	}{
		{"ItemAt negative", func() error { _, err := l.ItemAt(-1); return err }},
		{"ItemAt past end", func() error { _, err := l.ItemAt(3); return err }},
		{"RemoveAt past end", func() error { _, err := l.RemoveAt(100); return err }},
		{"MarkDoneAt past end", func() error { return l.MarkDoneAt(100) }},
		{"MarkUndoneAt negative", func() error { return l.MarkUndoneAt(-5) }},
		{"InsertAt past end", func() error { return l.InsertAt(4, New("x")) }},
		{"Update past end", func() error { return l.Update(3, func(*Todo) {}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("got %v, want ErrIndexOutOfRange", err)
			}
		})
	}
	if l.Len() != 3 {
		t.Errorf("failed calls changed the list: Len %d", l.Len())
	}
}

func TestRemoveAtIsPositional(t *testing.T) {
	l := NewList(DefaultTitle)
	dup1 := New("Buy milk")
	dup2 := New("Buy milk")
	l.Add(dup1).Add(dup2)

	removed, err := l.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if removed.ID != dup2.ID {
		t.Errorf("RemoveAt(1) removed %q, want the second slot %q", removed.ID, dup2.ID)
	}
	left, _ := l.ItemAt(0)
	if left.ID != dup1.ID {
		t.Errorf("remaining item: got %q, want %q", left.ID, dup1.ID)
	}
}

func TestInsertAt(t *testing.T) {
	l := groceryList()
	if err := l.InsertAt(1, New("Call mom")); err != nil {
		t.Fatalf("InsertAt failed: %v", err)
	}
	if err := l.InsertAt(l.Len(), New("Sleep")); err != nil {
		t.Fatalf("InsertAt end failed: %v", err)
	}
	want := []string{"Buy milk", "Call mom", "Clean room", "Go to gym", "Sleep"}
	if got := titles(l); !slices.Equal(got, want) {
		t.Errorf("titles: got %v, want %v", got, want)
	}
}

func TestQueriesReturnCopies(t *testing.T) {
	l := groceryList()

	got, _ := l.ItemAt(0)
	got.MarkDone()
	got.Title = "changed"

	stored, _ := l.ItemAt(0)
	if stored.Done || stored.Title != "Buy milk" {
		t.Errorf("mutating a returned todo leaked into the list: %+v", stored)
	}

	snapshot := l.ToSlice()
	snapshot[1].Title = "changed"
	if second, _ := l.ItemAt(1); second.Title != "Clean room" {
		t.Errorf("mutating ToSlice leaked into the list: %q", second.Title)
	}
}

func TestMarkAll(t *testing.T) {
	l := groceryList()
	if l.AllDone() {
		t.Fatal("fresh list should not be all done")
	}
	l.MarkAllDone()
	if !l.AllDone() {
		t.Fatal("expected all done after MarkAllDone")
	}
	l.MarkAllUndone()
	if d, p := l.Stats(); d != 0 || p != 3 {
		t.Errorf("Stats after MarkAllUndone: got %d/%d, want 0/3", d, p)
	}
}

func TestAllDoneEmpty(t *testing.T) {
	if !NewList("empty").AllDone() {
		t.Error("empty list should be all done")
	}
}

func TestMarkByTitleMissing(t *testing.T) {
	l := groceryList()
	if l.MarkDone("missing") {
		t.Error("MarkDone(missing) should report not found")
	}
	if l.MarkUndone("missing") {
		t.Error("MarkUndone(missing) should report not found")
	}
	if d, _ := l.Stats(); d != 0 {
		t.Errorf("missing title changed state: %d done", d)
	}
}

func TestSelectTitleAndOrder(t *testing.T) {
	l := groceryList()
	_ = l.MarkDoneAt(0)
	_ = l.MarkDoneAt(2)

	done := l.DoneItems()
	if done.Title() != SelectionTitle {
		t.Errorf("Title: got %q, want %q", done.Title(), SelectionTitle)
	}
	if got := titles(done); !slices.Equal(got, []string{"Buy milk", "Go to gym"}) {
		t.Errorf("DoneItems: got %v", got)
	}
	if got := titles(l.PendingItems()); !slices.Equal(got, []string{"Clean room"}) {
		t.Errorf("PendingItems: got %v", got)
	}
}

func TestAllStopsEarly(t *testing.T) {
	l := groceryList()
	var seen []int
	for i := range l.All() {
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	if len(seen) != 2 {
		t.Errorf("All: visited %v, want [0 1]", seen)
	}
}

func TestUpdate(t *testing.T) {
	l := groceryList()
	err := l.Update(1, func(td *Todo) {
		td.Title = "Tidy room"
		td.Description = "before guests"
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := l.ItemAt(1)
	if got.Title != "Tidy room" || got.Description != "before guests" {
		t.Errorf("Update: got %+v", got)
	}
}

// Property checks.

func todoGen() *rapid.Generator[Todo] {
	return rapid.Custom(func(t *rapid.T) Todo {
		td := New(
			rapid.StringMatching(`[A-Za-z ]{1,20}`).Draw(t, "title"),
			rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "description"),
		)
		td.Done = rapid.Bool().Draw(t, "done")
		return td
	})
}

func TestLenTracksAddsAndRemovals(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewList(DefaultTitle)
		adds := rapid.IntRange(0, 30).Draw(t, "adds")
		for range adds {
			l.Add(todoGen().Draw(t, "todo"))
		}
		removals := 0
		attempts := rapid.IntRange(0, 40).Draw(t, "attempts")
		for range attempts {
			i := rapid.IntRange(-2, 32).Draw(t, "index")
			if _, err := l.RemoveAt(i); err == nil {
				removals++
			} else if !errors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("RemoveAt(%d): unexpected error %v", i, err)
			}
		}
		if l.Len() != adds-removals {
			t.Fatalf("Len: got %d, want %d", l.Len(), adds-removals)
		}
	})
}

func TestMarkAtRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewList(DefaultTitle)
		items := rapid.SliceOfN(todoGen(), 1, 20).Draw(t, "items")
		for _, td := range items {
			l.Add(td)
		}
		i := rapid.IntRange(0, l.Len()-1).Draw(t, "index")

		if err := l.MarkDoneAt(i); err != nil {
			t.Fatalf("MarkDoneAt(%d): %v", i, err)
		}
		if got, _ := l.ItemAt(i); !got.IsDone() {
			t.Fatalf("item %d not done after MarkDoneAt", i)
		}
		if err := l.MarkUndoneAt(i); err != nil {
			t.Fatalf("MarkUndoneAt(%d): %v", i, err)
		}
		if got, _ := l.ItemAt(i); got.IsDone() {
			t.Fatalf("item %d still done after MarkUndoneAt", i)
		}
	})
}

func TestAllDoneMatchesItems(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewList(DefaultTitle)
		items := rapid.SliceOf(todoGen()).Draw(t, "items")
		want := true
		for _, td := range items {
			l.Add(td)
			want = want && td.Done
		}
		if got := l.AllDone(); got != want {
			t.Fatalf("AllDone: got %v, want %v", got, want)
		}
	})
}

func TestSelectPreservesOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewList(DefaultTitle)
		items := rapid.SliceOf(todoGen()).Draw(t, "items")
		for _, td := range items {
			l.Add(td)
		}

		var want []string
		for _, td := range items {
			if td.Done {
				want = append(want, td.ID)
			}
		}

		ids := func(sel *List) []string {
			var out []string
			sel.Each(func(td Todo) { out = append(out, td.ID) })
			return out
		}
		if got := ids(l.Select(Todo.IsDone)); !slices.Equal(got, want) {
			t.Fatalf("Select(IsDone): got %v, want %v", got, want)
		}
		if got := ids(l.DoneItems()); !slices.Equal(got, want) {
			t.Fatalf("DoneItems: got %v, want %v", got, want)
		}
	})
}
