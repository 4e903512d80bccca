package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/pvdberg/listmotion/internal/model"
)

// Editor manages inline text editing of a single task. The cursor is a rune
// index, not a byte index, so multi-byte input stays intact.
type Editor struct {
	task      *model.Task
	text      []rune
	cursorPos int
	active    bool
}

// NewEditor creates a new Editor over a task
func NewEditor(task *model.Task) *Editor {
	text := []rune(task.Text)
	return &Editor{
		task:      task,
		text:      text,
		cursorPos: len(text),
		active:    false,
	}
}

// Start starts editing mode
func (e *Editor) Start() {
	e.active = true
	e.cursorPos = len(e.text)
}

// Stop stops editing mode, commits the text to the task and returns it
func (e *Editor) Stop() string {
	e.active = false
	e.task.Text = string(e.text)
	e.task.Touch()
	return e.task.Text
}

// Cancel cancels editing and discards changes
func (e *Editor) Cancel() string {
	e.active = false
	return e.task.Text
}

// IsActive returns whether the editor is active
func (e *Editor) IsActive() bool {
	return e.active
}

// Task returns the task being edited
func (e *Editor) Task() *model.Task {
	return e.task
}

// HandleKey handles a key press during editing. Returns false when the key
// ends the editing session (Enter commits, Escape is the caller's cue to
// cancel).
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	if !e.active {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyEnter:
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursorPos > 0 {
			e.text = append(e.text[:e.cursorPos-1], e.text[e.cursorPos:]...)
			e.cursorPos--
		}
	case tcell.KeyDelete:
		if e.cursorPos < len(e.text) {
			e.text = append(e.text[:e.cursorPos], e.text[e.cursorPos+1:]...)
		}
	case tcell.KeyLeft:
		if e.cursorPos > 0 {
			e.cursorPos--
		}
	case tcell.KeyRight:
		if e.cursorPos < len(e.text) {
			e.cursorPos++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		e.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		e.cursorPos = len(e.text)
	case tcell.KeyCtrlU:
		// Delete from start to cursor
		e.text = append([]rune{}, e.text[e.cursorPos:]...)
		e.cursorPos = 0
	case tcell.KeyCtrlK:
		// Delete from cursor to end
		e.text = e.text[:e.cursorPos]
	default:
		ch := ev.Rune()
		if ch != 0 && unicode.IsPrint(ch) {
			e.text = append(e.text[:e.cursorPos], append([]rune{ch}, e.text[e.cursorPos:]...)...)
			e.cursorPos++
		}
	}

	return true
}

// SetCursorToScreenX moves the cursor to the rune under screen column
// screenX, where textX is the column the text starts at. Used for mouse
// clicks inside the editor.
func (e *Editor) SetCursorToScreenX(textX, screenX int) {
	e.cursorPos = FindRuneIndexAtWidth(string(e.text), screenX-textX)
}

// Render renders the editor on the screen
func (e *Editor) Render(screen *Screen, x, y int, maxWidth int) {
	style := screen.EditorStyle()
	cursorStyle := screen.EditorCursorStyle()

	// Window the text around the cursor when it does not fit
	display := e.text
	cursor := e.cursorPos
	if len(display) > maxWidth {
		start := cursor - maxWidth/2
		if start < 0 {
			start = 0
		}
		if start+maxWidth > len(display) {
			start = len(display) - maxWidth
		}
		display = display[start:]
		cursor -= start
	}

	col := x
	for i, r := range display {
		if col >= x+maxWidth {
			break
		}
		charStyle := style
		if i == cursor {
			charStyle = cursorStyle
		}
		screen.SetCell(col, y, r, charStyle)
		col += RuneWidth(r)
	}

	// Cursor sits one past the last rune
	if cursor >= len(display) && col < x+maxWidth {
		screen.SetCell(col, y, ' ', cursorStyle)
		col++
	}

	for ; col < x+maxWidth && col < screen.GetWidth(); col++ {
		screen.SetCell(col, y, ' ', style)
	}
}

// GetText returns the current text
func (e *Editor) GetText() string {
	return string(e.text)
}

// SetText sets the text
func (e *Editor) SetText(text string) {
	e.text = []rune(text)
	if e.cursorPos > len(e.text) {
		e.cursorPos = len(e.text)
	}
}

// GetCursorPos returns the cursor rune position
func (e *Editor) GetCursorPos() int {
	return e.cursorPos
}
