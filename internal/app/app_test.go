package app

import (
	"testing"

	"github.com/pvdberg/listmotion/internal/anim"
	"github.com/pvdberg/listmotion/internal/drag"
	"github.com/pvdberg/listmotion/internal/model"
	"github.com/pvdberg/listmotion/internal/reconcile"
	"github.com/pvdberg/listmotion/internal/ui"
)

func TestParseSwapPolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected drag.SwapPolicy
	}{
		{"half-neighbor", drag.HalfNeighbor},
		{"half-own", drag.HalfOwn},
		{"half-average", drag.HalfAverage},
		{"", drag.HalfNeighbor},
		{"nonsense", drag.HalfNeighbor},
	}
	for _, tt := range tests {
		if got := parseSwapPolicy(tt.input); got != tt.expected {
			t.Errorf("parseSwapPolicy(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func newAppForOrderTest(t *testing.T, texts ...string) (*App, []*model.Task) {
	t.Helper()

	list := model.NewTaskList()
	tasks := make([]*model.Task, len(texts))
	for i, text := range texts {
		tasks[i] = model.NewTask(text)
		list.Add(tasks[i])
	}

	pool := anim.NewPool()
	rec := reconcile.New(func(task *model.Task) string { return task.ID }, pool, reconcile.Durations{}, reconcile.Hooks[*model.Task]{})

	return &App{taskList: list, rec: rec}, tasks
}

func displayedIDs(rec *reconcile.Reconciler[*model.Task]) []string {
	tasks := rec.Displayed()
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

func TestApplyDisplayedOrderFullList(t *testing.T) {
	a, tasks := newAppForOrderTest(t, "a", "b", "c")
	if err := a.rec.SetInitial(a.taskList.Tasks); err != nil {
		t.Fatal(err)
	}

	// Simulate a drag of row 0 past row 1
	a.rec.Swap(0, 1)
	a.applyDisplayedOrder(displayedIDs(a.rec))

	want := []*model.Task{tasks[1], tasks[0], tasks[2]}
	for i, task := range want {
		if a.taskList.Tasks[i].ID != task.ID {
			t.Errorf("position %d: got %q, want %q", i, a.taskList.Tasks[i].Text, task.Text)
		}
	}
}

func TestApplyDisplayedOrderUnderFilterKeepsHiddenPositions(t *testing.T) {
	a, tasks := newAppForOrderTest(t, "milk", "bread", "mile", "more")

	// Display only the tasks matching a query; bread stays hidden
	visible := []*model.Task{tasks[0], tasks[2], tasks[3]}
	if err := a.rec.SetInitial(visible); err != nil {
		t.Fatal(err)
	}

	// Reorder the visible subset: milk moves past mile
	a.rec.Swap(0, 1)
	a.applyDisplayedOrder(displayedIDs(a.rec))

	got := make([]string, len(a.taskList.Tasks))
	for i, task := range a.taskList.Tasks {
		got[i] = task.Text
	}
	want := []string{"mile", "bread", "milk", "more"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after filtered reorder = %v, want %v", got, want)
		}
	}
}

// Moving a row with J and dragging it one slot down must look identical to
// anyone watching OrderChanged.
func TestKeyboardReorderMatchesDragNotifications(t *testing.T) {
	build := func(orders *[][]string) *App {
		list := model.NewTaskList()
		for _, text := range []string{"a", "b", "c"} {
			list.Add(model.NewTask(text))
		}
		pool := anim.NewPool()
		rec := reconcile.New(func(task *model.Task) string { return task.ID }, pool, reconcile.Durations{}, reconcile.Hooks[*model.Task]{
			OrderChanged: func(tasks []*model.Task) {
				texts := make([]string, len(tasks))
				for i, task := range tasks {
					texts[i] = task.Text
				}
				*orders = append(*orders, texts)
			},
		})
		if err := rec.SetInitial(list.Tasks); err != nil {
			t.Fatal(err)
		}
		a := &App{taskList: list, rec: rec}
		a.list = ui.NewListView(rec, pool)
		a.filter = ui.NewFilter(list.Tasks)
		return a
	}

	var viaKeys [][]string
	a := build(&viaKeys)
	a.list.Select(0)
	a.moveSelection(1)

	var viaDrag [][]string
	b := build(&viaDrag)
	m := drag.New(drag.Config{}, b.rec, nil, func(int) float64 { return 1 }, drag.Hooks{
		OnFinished: func(_ string, _, _ int, order []string) { b.applyDisplayedOrder(order) },
	})
	m.PointerDown(0, 0)
	if err := m.PointerMove(0.6); err != nil {
		t.Fatal(err)
	}
	if err := m.PointerUp(); err != nil {
		t.Fatal(err)
	}

	if len(viaKeys) != 1 || len(viaDrag) != 1 {
		t.Fatalf("expected one order notification each, got %d and %d", len(viaKeys), len(viaDrag))
	}
	for i := range viaKeys[0] {
		if viaKeys[0][i] != viaDrag[0][i] {
			t.Fatalf("keyboard order %v != drag order %v", viaKeys[0], viaDrag[0])
		}
	}
}
