package ui

import (
	"fmt"
	"sync"
	"time"
)

// Event is one line of the event log
type Event struct {
	Text      string
	Timestamp time.Time
}

// EventLog tracks the last N list events (reconcile scripts, drag pickups
// and drops, saves). The debug overlay renders it newest first.
type EventLog struct {
	events  []*Event
	maxSize int
	mu      sync.Mutex
}

// NewEventLog creates a new event log with the specified max size
func NewEventLog(maxSize int) *EventLog {
	return &EventLog{
		events:  make([]*Event, 0, maxSize),
		maxSize: maxSize,
	}
}

// Add appends an event to the log
func (el *EventLog) Add(text string) {
	el.mu.Lock()
	defer el.mu.Unlock()

	if text == "" {
		return
	}

	el.events = append(el.events, &Event{
		Text:      text,
		Timestamp: time.Now(),
	})

	if len(el.events) > el.maxSize {
		el.events = el.events[len(el.events)-el.maxSize:]
	}
}

// Addf appends a formatted event to the log
func (el *EventLog) Addf(format string, args ...any) {
	el.Add(fmt.Sprintf(format, args...))
}

// Recent returns up to n events, newest first
func (el *EventLog) Recent(n int) []*Event {
	el.mu.Lock()
	defer el.mu.Unlock()

	if n > len(el.events) {
		n = len(el.events)
	}
	result := make([]*Event, n)
	for i := 0; i < n; i++ {
		result[i] = el.events[len(el.events)-1-i]
	}
	return result
}

// Clear clears all events
func (el *EventLog) Clear() {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = el.events[:0]
}

// Count returns the number of events in the log
func (el *EventLog) Count() int {
	el.mu.Lock()
	defer el.mu.Unlock()
	return len(el.events)
}

// Render draws the newest events into a panel anchored to the bottom of the
// list area, one event per line with a timestamp.
func (el *EventLog) Render(screen *Screen, lines int) {
	if lines <= 0 {
		return
	}

	style := screen.StatusMessageStyle()
	screenWidth := screen.GetWidth()
	bottom := screen.GetHeight() - 2 // above the status bar

	events := el.Recent(lines)
	for i, ev := range events {
		y := bottom - i
		if y < 0 {
			break
		}
		line := ev.Timestamp.Format("15:04:05") + " " + ev.Text
		line = TruncateToWidth(line, screenWidth)
		for x := 0; x < screenWidth; x++ {
			screen.SetCell(x, y, ' ', style)
		}
		screen.DrawString(0, y, line, style)
	}
}
