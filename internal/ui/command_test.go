package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func typeCommand(c *CommandMode, s string) {
	for _, r := range s {
		c.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func pressKey(c *CommandMode, key tcell.Key) (string, bool) {
	return c.HandleKey(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func TestCommandEnterReturnsTrimmedInput(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	typeCommand(c, "  theme tokyo-night ")

	cmd, done := pressKey(c, tcell.KeyEnter)
	if !done {
		t.Fatal("Enter should end command mode")
	}
	if cmd != "theme tokyo-night" {
		t.Errorf("command = %q, want %q", cmd, "theme tokyo-night")
	}
	if c.IsActive() {
		t.Error("command mode should be inactive after Enter")
	}
}

func TestCommandEscapeDiscards(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	typeCommand(c, "q!")

	cmd, done := pressKey(c, tcell.KeyEscape)
	if !done || cmd != "" {
		t.Errorf("Escape should end command mode with no command, got (%q, %v)", cmd, done)
	}
}

func TestCommandBackspaceOnEmptyExits(t *testing.T) {
	c := NewCommandMode()
	c.Start()

	_, done := pressKey(c, tcell.KeyBackspace2)
	if !done {
		t.Error("backspace on an empty line should exit command mode")
	}
}

func TestCommandBackspaceDeletesWholeRune(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	typeCommand(c, "set 名前")

	pressKey(c, tcell.KeyBackspace2)
	cmd, _ := pressKey(c, tcell.KeyEnter)
	if cmd != "set 名" {
		t.Errorf("command = %q, want %q", cmd, "set 名")
	}
}

func TestCommandCtrlWDeletesWord(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	typeCommand(c, "delay 200")

	pressKey(c, tcell.KeyCtrlW)
	cmd, _ := pressKey(c, tcell.KeyEnter)
	if cmd != "delay" {
		t.Errorf("command = %q, want %q", cmd, "delay")
	}
}

func TestCommandHistoryNavigation(t *testing.T) {
	c := NewCommandMode()
	for _, cmd := range []string{"w", "theme default"} {
		c.Start()
		typeCommand(c, cmd)
		pressKey(c, tcell.KeyEnter)
	}

	c.Start()
	typeCommand(c, "del")

	// Up walks back through history, Down past the newest entry restores
	// the in-progress input.
	pressKey(c, tcell.KeyUp)
	pressKey(c, tcell.KeyUp)
	pressKey(c, tcell.KeyDown)
	pressKey(c, tcell.KeyDown)
	cmd, _ := pressKey(c, tcell.KeyEnter)
	if cmd != "del" {
		t.Errorf("command = %q, want the stashed input %q", cmd, "del")
	}
}

func TestCommandHistorySkipsConsecutiveDuplicates(t *testing.T) {
	c := NewCommandMode()
	for i := 0; i < 2; i++ {
		c.Start()
		typeCommand(c, "w")
		pressKey(c, tcell.KeyEnter)
	}

	if len(c.history.entries) != 1 {
		t.Errorf("history has %d entries, want 1", len(c.history.entries))
	}
}

func TestCommandCursorEditing(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	typeCommand(c, "qw")

	pressKey(c, tcell.KeyLeft)
	typeCommand(c, "x")
	cmd, _ := pressKey(c, tcell.KeyEnter)
	if cmd != "qxw" {
		t.Errorf("command = %q, want %q", cmd, "qxw")
	}
}

func TestCommandCtrlUAndCtrlK(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	typeCommand(c, "abcdef")
	pressKey(c, tcell.KeyHome)
	pressKey(c, tcell.KeyRight)
	pressKey(c, tcell.KeyRight)

	pressKey(c, tcell.KeyCtrlK) // drop "cdef"
	cmd, _ := pressKey(c, tcell.KeyEnter)
	if cmd != "ab" {
		t.Errorf("after Ctrl+K: command = %q, want %q", cmd, "ab")
	}

	c.Start()
	typeCommand(c, "abcdef")
	pressKey(c, tcell.KeyHome)
	pressKey(c, tcell.KeyRight)
	pressKey(c, tcell.KeyRight)

	pressKey(c, tcell.KeyCtrlU) // drop "ab"
	cmd, _ = pressKey(c, tcell.KeyEnter)
	if cmd != "cdef" {
		t.Errorf("after Ctrl+U: command = %q, want %q", cmd, "cdef")
	}
}
