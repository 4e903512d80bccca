package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pvdberg/listmotion/internal/anim"
	"github.com/pvdberg/listmotion/internal/model"
	"github.com/pvdberg/listmotion/internal/reconcile"
)

// ListView renders the animated task list and maps terminal coordinates to
// rows for mouse interaction. Every row is exactly one terminal line tall,
// which keeps the drag geometry trivial: offsets and extents are row counts.
type ListView struct {
	rec  *reconcile.Reconciler[*model.Task]
	pool *anim.Pool

	selectedIdx    int
	viewportOffset int

	// startY and viewportHeight are captured on every Render so hit testing
	// agrees with what is actually on screen.
	startY         int
	viewportHeight int

	dragKey string // key of the row under the pointer, "" when not dragging
}

// NewListView creates a list view over the reconciler's displayed sequence
func NewListView(rec *reconcile.Reconciler[*model.Task], pool *anim.Pool) *ListView {
	return &ListView{
		rec:  rec,
		pool: pool,
	}
}

// RowCount returns the number of displayed rows, leaving rows included
func (lv *ListView) RowCount() int {
	return lv.rec.Len()
}

// SelectNext moves selection down
func (lv *ListView) SelectNext() {
	if lv.selectedIdx < lv.rec.Len()-1 {
		lv.selectedIdx++
	}
}

// SelectPrev moves selection up
func (lv *ListView) SelectPrev() {
	if lv.selectedIdx > 0 {
		lv.selectedIdx--
	}
}

// SelectFirst moves selection to the first row
func (lv *ListView) SelectFirst() {
	lv.selectedIdx = 0
}

// SelectLast moves selection to the last row
func (lv *ListView) SelectLast() {
	if n := lv.rec.Len(); n > 0 {
		lv.selectedIdx = n - 1
	}
}

// ScrollPageUp scrolls the viewport up by pageSize rows and moves selection
func (lv *ListView) ScrollPageUp(pageSize int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	lv.selectedIdx -= pageSize
	if lv.selectedIdx < 0 {
		lv.selectedIdx = 0
	}
	lv.viewportOffset = lv.selectedIdx
}

// ScrollPageDown scrolls the viewport down by pageSize rows and moves selection
func (lv *ListView) ScrollPageDown(pageSize int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	lv.selectedIdx += pageSize
	if maxIdx := lv.rec.Len() - 1; lv.selectedIdx > maxIdx {
		lv.selectedIdx = maxIdx
	}
	if lv.selectedIdx < 0 {
		lv.selectedIdx = 0
	}
	lv.viewportOffset = lv.selectedIdx - pageSize + 1
	if lv.viewportOffset < 0 {
		lv.viewportOffset = 0
	}
}

// SelectedIndex returns the selected displayed index
func (lv *ListView) SelectedIndex() int {
	return lv.selectedIdx
}

// Select selects a row by displayed index
func (lv *ListView) Select(idx int) {
	if idx >= 0 && idx < lv.rec.Len() {
		lv.selectedIdx = idx
	}
}

// SelectedTask returns the task at the selected row, skipping nothing; a
// leaving row can still be selected until it disappears
func (lv *ListView) SelectedTask() *model.Task {
	displayed := lv.rec.Displayed()
	if lv.selectedIdx >= 0 && lv.selectedIdx < len(displayed) {
		return displayed[lv.selectedIdx]
	}
	return nil
}

// SelectKey moves selection to the row with the given identity, if present
func (lv *ListView) SelectKey(key string) {
	for i := 0; i < lv.rec.Len(); i++ {
		if lv.rec.KeyAt(i) == key {
			lv.selectedIdx = i
			return
		}
	}
}

// ClampSelection keeps the selection inside the displayed range after rows
// disappear
func (lv *ListView) ClampSelection() {
	if n := lv.rec.Len(); lv.selectedIdx >= n {
		lv.selectedIdx = n - 1
	}
	if lv.selectedIdx < 0 {
		lv.selectedIdx = 0
	}
}

// SetDragKey marks the row rendered with the drag style. Empty clears it.
func (lv *ListView) SetDragKey(key string) {
	lv.dragKey = key
}

// RowAt maps a terminal y coordinate to a displayed row index, or -1 when
// the coordinate is outside the list area
func (lv *ListView) RowAt(y int) int {
	if y < lv.startY || y >= lv.startY+lv.viewportHeight {
		return -1
	}
	idx := y - lv.startY + lv.viewportOffset
	if idx < 0 || idx >= lv.rec.Len() {
		return -1
	}
	return idx
}

// ViewportStart returns the first visible row index as a drag-axis position
func (lv *ListView) ViewportStart() float64 {
	return float64(lv.viewportOffset)
}

// ViewportExtent returns the viewport height in rows
func (lv *ListView) ViewportExtent() float64 {
	return float64(lv.viewportHeight)
}

// ScrollBy scrolls the viewport by delta rows and returns the rows actually
// scrolled, which can be less at either end of the list
func (lv *ListView) ScrollBy(delta int) int {
	maxOffset := lv.rec.Len() - lv.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	old := lv.viewportOffset
	lv.viewportOffset += delta
	if lv.viewportOffset > maxOffset {
		lv.viewportOffset = maxOffset
	}
	if lv.viewportOffset < 0 {
		lv.viewportOffset = 0
	}
	return lv.viewportOffset - old
}

// Render renders the list to the screen. filterQuery, when non-empty, gets
// its matches highlighted inside row text.
func (lv *ListView) Render(screen *Screen, startY int, filterQuery string) {
	screenWidth := screen.GetWidth()
	screenHeight := screen.GetHeight()

	lv.startY = startY
	// Reserve 1 line for status bar
	lv.viewportHeight = max(screenHeight-startY-1, 1)

	displayed := lv.rec.Displayed()

	// Keep the selected row visible
	lv.ClampSelection()
	if lv.selectedIdx < lv.viewportOffset {
		lv.viewportOffset = lv.selectedIdx
	} else if lv.selectedIdx >= lv.viewportOffset+lv.viewportHeight {
		lv.viewportOffset = lv.selectedIdx - lv.viewportHeight + 1
	}

	// Clamp viewport offset
	maxOffset := max(len(displayed)-lv.viewportHeight, 0)
	if lv.viewportOffset > maxOffset {
		lv.viewportOffset = maxOffset
	}
	if lv.viewportOffset < 0 {
		lv.viewportOffset = 0
	}

	bgStyle := screen.BackgroundStyle()

	// Clear the list area first. Moving rows paint over it at interpolated
	// positions, so stale cells must not survive a frame.
	for y := startY; y < screenHeight-1; y++ {
		for x := 0; x < screenWidth; x++ {
			screen.SetCell(x, y, ' ', bgStyle)
		}
	}

	// Static rows first, then rows that are mid-move on top, so a sliding
	// row is never hidden under a settled one.
	type deferredRow struct {
		idx int
		y   int
	}
	var moving []deferredRow

	for i := lv.viewportOffset; i < len(displayed) && i-lv.viewportOffset < lv.viewportHeight; i++ {
		y := startY + i - lv.viewportOffset
		key := lv.rec.KeyAt(i)
		if e, ok := lv.pool.Get(key); ok && e.Kind == anim.KindMoving && key != lv.dragKey {
			visual := float64(e.FromPos) + (float64(e.ToPos)-float64(e.FromPos))*e.Progress
			my := startY + int(visual+0.5) - lv.viewportOffset
			if my >= startY && my < startY+lv.viewportHeight {
				moving = append(moving, deferredRow{idx: i, y: my})
				continue
			}
		}
		lv.renderRow(screen, i, y, screenWidth, filterQuery)
	}
	for _, m := range moving {
		lv.renderRow(screen, m.idx, m.y, screenWidth, filterQuery)
	}
}

// renderRow draws one task row at terminal line y
func (lv *ListView) renderRow(screen *Screen, idx, y, screenWidth int, filterQuery string) {
	displayed := lv.rec.Displayed()
	task := displayed[idx]
	key := lv.rec.KeyAt(idx)

	style := screen.ListNormalStyle()
	markerStyle := screen.ListMarkerStyle()

	switch {
	case key == lv.dragKey:
		style = screen.ListDraggingStyle()
		markerStyle = style
	case lv.rec.IsLeaving(idx):
		progress := 0.0
		if e, ok := lv.pool.Get(key); ok {
			progress = e.Progress
		}
		style = screen.ListLeavingStyle(progress)
		markerStyle = style
	case idx == lv.selectedIdx:
		style = screen.ListSelectedStyle()
		markerStyle = style
	case task.Done:
		style = screen.ListDoneStyle()
		markerStyle = style
	default:
		if e, ok := lv.pool.Get(key); ok && e.Kind == anim.KindEntering {
			style = screen.ListEnteringStyle(e.Progress)
			markerStyle = style
		}
	}

	marker := "[ ]"
	if task.Done {
		marker = "[x]"
	}
	screen.DrawString(0, y, marker, markerStyle)

	textX := 4
	maxWidth := screenWidth - textX
	text := TruncateToWidthWithEllipsis(task.Text, maxWidth)

	if filterQuery != "" {
		lv.drawTextWithHighlight(screen, textX, y, text, style, StyleReverse(), filterQuery)
	} else {
		screen.DrawString(textX, y, text, style)
	}
}

// drawTextWithHighlight draws text while highlighting case-insensitive
// substring matches of the filter query
func (lv *ListView) drawTextWithHighlight(screen *Screen, x int, y int, text string, defaultStyle tcell.Style, highlightStyle tcell.Style, query string) {
	if query == "" {
		screen.DrawString(x, y, text, defaultStyle)
		return
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	currentX := x
	lastIdx := 0

	for {
		matchIdx := strings.Index(lowerText[lastIdx:], lowerQuery)
		if matchIdx == -1 {
			if lastIdx < len(text) {
				screen.DrawString(currentX, y, text[lastIdx:], defaultStyle)
			}
			break
		}

		matchIdx += lastIdx

		if matchIdx > lastIdx {
			beforeText := text[lastIdx:matchIdx]
			screen.DrawString(currentX, y, beforeText, defaultStyle)
			currentX += StringWidth(beforeText)
		}

		matchedText := text[matchIdx : matchIdx+len(query)]
		screen.DrawString(currentX, y, matchedText, highlightStyle)
		currentX += StringWidth(matchedText)

		lastIdx = matchIdx + len(query)
	}
}
