package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pvdberg/listmotion/internal/model"
)

func filterTasks(texts ...string) []*model.Task {
	tasks := make([]*model.Task, len(texts))
	for i, text := range texts {
		tasks[i] = model.NewTask(text)
	}
	return tasks
}

func typeString(f *Filter, s string) {
	for _, r := range s {
		f.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestFilterEmptyQueryMatchesAll(t *testing.T) {
	f := NewFilter(filterTasks("buy milk", "write report"))
	f.Start()

	if f.MatchCount() != 2 {
		t.Errorf("MatchCount = %d, want 2", f.MatchCount())
	}
	if f.HasQuery() {
		t.Error("HasQuery should be false for empty query")
	}
}

func TestFilterFuzzyMatch(t *testing.T) {
	f := NewFilter(filterTasks("buy milk", "write report", "review milestones"))
	f.Start()
	typeString(f, "mil")

	results := f.Results()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: fuzzy mil matches milk and milestones", len(results))
	}
	if results[0].Text != "buy milk" || results[1].Text != "review milestones" {
		t.Errorf("results out of source order: %q, %q", results[0].Text, results[1].Text)
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	f := NewFilter(filterTasks("Buy Milk"))
	f.Start()
	typeString(f, "milk")

	if f.MatchCount() != 1 {
		t.Errorf("MatchCount = %d, want 1", f.MatchCount())
	}
}

func TestFilterBackspaceWidens(t *testing.T) {
	f := NewFilter(filterTasks("alpha", "beta"))
	f.Start()
	typeString(f, "alx")

	if f.MatchCount() != 0 {
		t.Fatalf("MatchCount = %d, want 0", f.MatchCount())
	}

	f.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if f.MatchCount() != 1 {
		t.Errorf("after backspace MatchCount = %d, want 1", f.MatchCount())
	}
	if f.Query() != "al" {
		t.Errorf("Query = %q, want %q", f.Query(), "al")
	}
}

func TestFilterEnterKeepsQueryApplied(t *testing.T) {
	f := NewFilter(filterTasks("alpha", "beta"))
	f.Start()
	typeString(f, "alpha")

	if cont := f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); cont {
		t.Error("Enter should end filter input")
	}
	f.Stop()

	if !f.HasQuery() {
		t.Error("query should survive Stop")
	}
	if f.MatchCount() != 1 {
		t.Errorf("MatchCount = %d, want 1", f.MatchCount())
	}
}

func TestFilterClearRestoresAll(t *testing.T) {
	f := NewFilter(filterTasks("alpha", "beta"))
	f.Start()
	typeString(f, "alpha")
	f.Clear()

	if f.HasQuery() {
		t.Error("HasQuery should be false after Clear")
	}
	if len(f.Results()) != 2 {
		t.Errorf("got %d results after Clear, want 2", len(f.Results()))
	}
}

func TestFilterSetAllTasksRefilters(t *testing.T) {
	f := NewFilter(filterTasks("alpha"))
	f.Start()
	typeString(f, "al")

	f.SetAllTasks(filterTasks("alpha", "almond", "beta"))
	if f.MatchCount() != 2 {
		t.Errorf("MatchCount = %d, want 2 after SetAllTasks", f.MatchCount())
	}
}
