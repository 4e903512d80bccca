package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pvdberg/listmotion/internal/model"
)

// Filter manages the live filter bar. Typing narrows the visible tasks to
// fuzzy matches of the query; the host reconciles the list toward the
// filtered subset so rows animate in and out as the query changes.
type Filter struct {
	query      string
	results    []*model.Task
	cursorPos  int
	active     bool
	allTasks   []*model.Task
	matchCount int
}

// NewFilter creates a new Filter over the given tasks
func NewFilter(tasks []*model.Task) *Filter {
	return &Filter{
		results:  tasks,
		allTasks: tasks,
	}
}

// Start starts filter mode
func (f *Filter) Start() {
	f.active = true
	f.query = ""
	f.cursorPos = 0
	f.updateResults()
}

// Stop stops filter mode, keeping the query applied
func (f *Filter) Stop() {
	f.active = false
}

// Clear drops the query so every task shows again
func (f *Filter) Clear() {
	f.active = false
	f.query = ""
	f.cursorPos = 0
	f.updateResults()
}

// IsActive returns whether the filter bar has input focus
func (f *Filter) IsActive() bool {
	return f.active
}

// HandleKey handles a key press while the filter bar is focused. Returns
// false when the key ends filter input (Enter keeps the filter applied,
// Escape is the caller's cue to clear it).
func (f *Filter) HandleKey(ev *tcell.EventKey) bool {
	if !f.active {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyEnter:
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.cursorPos > 0 {
			f.query = f.query[:f.cursorPos-1] + f.query[f.cursorPos:]
			f.cursorPos--
			f.updateResults()
		}
	case tcell.KeyDelete:
		if f.cursorPos < len(f.query) {
			f.query = f.query[:f.cursorPos] + f.query[f.cursorPos+1:]
			f.updateResults()
		}
	case tcell.KeyLeft:
		if f.cursorPos > 0 {
			f.cursorPos--
		}
	case tcell.KeyRight:
		if f.cursorPos < len(f.query) {
			f.cursorPos++
		}
	case tcell.KeyHome:
		f.cursorPos = 0
	case tcell.KeyEnd:
		f.cursorPos = len(f.query)
	case tcell.KeyCtrlU:
		f.query = ""
		f.cursorPos = 0
		f.updateResults()
	default:
		ch := ev.Rune()
		if ch > 0 && ch < 127 {
			f.query = f.query[:f.cursorPos] + string(ch) + f.query[f.cursorPos:]
			f.cursorPos++
			f.updateResults()
		}
	}
	return true
}

// updateResults recomputes the filtered subset. Order of the source list is
// preserved; fuzzy matching is fold- and diacritic-insensitive.
func (f *Filter) updateResults() {
	if f.query == "" {
		f.results = f.allTasks
		f.matchCount = len(f.allTasks)
		return
	}

	var filtered []*model.Task
	for _, task := range f.allTasks {
		if fuzzy.MatchNormalizedFold(f.query, task.Text) {
			filtered = append(filtered, task)
		}
	}
	f.results = filtered
	f.matchCount = len(filtered)
}

// Results returns the tasks matching the current query
func (f *Filter) Results() []*model.Task {
	return f.results
}

// Query returns the current query
func (f *Filter) Query() string {
	return f.query
}

// HasQuery reports whether a non-empty filter is applied
func (f *Filter) HasQuery() bool {
	return f.query != ""
}

// SetAllTasks sets the tasks to filter and recomputes results
func (f *Filter) SetAllTasks(tasks []*model.Task) {
	f.allTasks = tasks
	f.updateResults()
}

// MatchCount returns the number of matching tasks
func (f *Filter) MatchCount() int {
	return f.matchCount
}

// Render renders the filter bar on the screen
func (f *Filter) Render(screen *Screen, y int) {
	labelStyle := screen.FilterLabelStyle()
	textStyle := screen.FilterTextStyle()
	cursorStyle := screen.FilterCursorStyle()
	countStyle := screen.FilterCountStyle()

	screen.DrawString(0, y, "Filter: ", labelStyle)

	x := 8
	maxWidth := screen.GetWidth() - x
	displayQuery := f.query
	if len(displayQuery) > maxWidth {
		displayQuery = displayQuery[len(displayQuery)-maxWidth:]
	}

	for i, r := range displayQuery {
		charStyle := textStyle
		if f.active && i == f.cursorPos {
			charStyle = cursorStyle
		}
		screen.SetCell(x+i, y, r, charStyle)
	}

	if f.active && f.cursorPos >= len(displayQuery) {
		screen.SetCell(x+len(displayQuery), y, ' ', cursorStyle)
	}

	// Clear remainder
	for i := len(displayQuery); i < maxWidth; i++ {
		if x+i < screen.GetWidth() {
			screen.SetCell(x+i, y, ' ', textStyle)
		}
	}

	var countText string
	if f.matchCount == 0 {
		countText = " (no matches)"
	} else {
		countText = fmt.Sprintf(" (%d of %d)", f.matchCount, len(f.allTasks))
	}
	screen.DrawString(screen.GetWidth()-len(countText), y, countText, countStyle)
}
