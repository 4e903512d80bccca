package diff

import (
	"fmt"
	"strings"
)

// FormatScript renders an edit script as display lines, one operation per
// line plus a trailing summary. label extracts the text shown for an item;
// pass nil to use fmt's default formatting. Suitable for both CLI output and
// the in-app event log.
func FormatScript[T any](ops []Op[T], label func(T) string) []string {
	if label == nil {
		label = func(item T) string { return fmt.Sprintf("%v", item) }
	}

	lines := make([]string, 0, len(ops)+1)
	var inserts, removes, moves int
	for _, op := range ops {
		switch op.Kind {
		case OpInsert:
			inserts++
			lines = append(lines, fmt.Sprintf("insert %s at %d", truncateText(label(op.Item), 40), op.To))
		case OpRemove:
			removes++
			lines = append(lines, fmt.Sprintf("remove %s from %d", truncateText(label(op.Item), 40), op.From))
		case OpMove:
			moves++
			lines = append(lines, fmt.Sprintf("move %s %d -> %d", truncateText(label(op.Item), 40), op.From, op.To))
		}
	}
	lines = append(lines, fmt.Sprintf("%d inserted, %d removed, %d moved", inserts, removes, moves))
	return lines
}

// truncateText limits text length for display, keeping only the first line.
func truncateText(text string, maxLen int) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + " ..."
	}
	if len(text) > maxLen {
		return text[:maxLen] + "..."
	}
	return text
}
