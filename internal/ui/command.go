package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// CommandMode manages command line input (`:command`). The line is held as
// runes so cursor movement and deletion never split multi-byte characters.
type CommandMode struct {
	active  bool
	input   []rune
	cursor  int
	history *History
}

// NewCommandMode creates a new CommandMode
func NewCommandMode() *CommandMode {
	return &CommandMode{history: NewHistory(50)}
}

// Start enters command mode with an empty line
func (c *CommandMode) Start() {
	c.active = true
	c.input = c.input[:0]
	c.cursor = 0
	c.history.Reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press. done reports that command mode ended;
// command carries the entered line on Enter and is empty on Escape.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(string(c.input))
		c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		// Stash the current input on the first Up press so Down past the
		// newest entry restores it.
		if !c.history.IsNavigating() {
			c.history.SetTemporary(string(c.input))
		}
		if prev, ok := c.history.Previous(); ok {
			c.setInput(prev)
		}
	case tcell.KeyDown:
		if next, ok := c.history.Next(); ok {
			c.setInput(next)
		}
	case tcell.KeyCtrlW:
		c.deleteWordBack()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursor > 0 {
			c.input = append(c.input[:c.cursor-1], c.input[c.cursor:]...)
			c.cursor--
		} else if len(c.input) == 0 {
			// Backspace on an empty command line exits command mode
			c.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if c.cursor < len(c.input) {
			c.input = append(c.input[:c.cursor], c.input[c.cursor+1:]...)
		}
	case tcell.KeyLeft:
		if c.cursor > 0 {
			c.cursor--
		}
	case tcell.KeyRight:
		if c.cursor < len(c.input) {
			c.cursor++
		}
	case tcell.KeyHome:
		c.cursor = 0
	case tcell.KeyEnd:
		c.cursor = len(c.input)
	case tcell.KeyCtrlU:
		c.input = append([]rune(nil), c.input[c.cursor:]...)
		c.cursor = 0
	case tcell.KeyCtrlK:
		c.input = c.input[:c.cursor]
	default:
		if ch := ev.Rune(); ch > 0 {
			c.input = append(c.input[:c.cursor], append([]rune{ch}, c.input[c.cursor:]...)...)
			c.cursor++
		}
	}

	return "", false
}

func (c *CommandMode) setInput(s string) {
	c.input = []rune(s)
	c.cursor = len(c.input)
}

// deleteWordBack removes the word before the cursor along with the
// whitespace between it and the cursor.
func (c *CommandMode) deleteWordBack() {
	pos := c.cursor
	for pos > 0 && (c.input[pos-1] == ' ' || c.input[pos-1] == '\t') {
		pos--
	}
	for pos > 0 && c.input[pos-1] != ' ' && c.input[pos-1] != '\t' {
		pos--
	}
	c.input = append(c.input[:pos], c.input[c.cursor:]...)
	c.cursor = pos
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	textStyle := screen.CommandTextStyle()
	cursorStyle := screen.CommandCursorStyle()
	screenWidth := screen.GetWidth()

	screen.SetCell(0, y, ':', screen.CommandPromptStyle())
	x := 1
	for i, r := range c.input {
		if x >= screenWidth {
			break
		}
		style := textStyle
		if i == c.cursor {
			style = cursorStyle
		}
		screen.SetCell(x, y, r, style)
		x++
	}

	if c.cursor >= len(c.input) && x < screenWidth {
		screen.SetCell(x, y, ' ', cursorStyle)
		x++
	}

	for ; x < screenWidth; x++ {
		screen.SetCell(x, y, ' ', textStyle)
	}
}
