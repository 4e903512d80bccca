package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pvdberg/listmotion/internal/config"
	"github.com/pvdberg/listmotion/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a new Screen instance with the configured theme
func NewScreen() (*Screen, error) {
	// Load config to get the theme name
	cfg, err := config.Load()
	if err != nil {
		// If config fails to load, use Default as fallback
		return NewScreenWithTheme(theme.Default())
	}

	// Load the theme based on config
	// Try to load from TOML files first, fall back to built-in Default
	t := theme.LoadThemeOrDefault(cfg.Theme)
	return NewScreenWithTheme(t)
}

// NewScreenWithTheme creates a new Screen instance with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position with the given style
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		s.SetCell(x+i, y, r, style)
	}
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	text = TruncateToWidth(text, maxWidth)
	s.DrawString(x, y, text, style)
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// HasMouse returns true if mouse is supported
func (s *Screen) HasMouse() bool {
	return s.tcellScreen.HasMouse()
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// Beep sounds the terminal bell; the closest thing a terminal has to a
// haptic pickup cue.
func (s *Screen) Beep() {
	_ = s.tcellScreen.Beep()
}

// DefaultStyle returns the default terminal style
func DefaultStyle() tcell.Style {
	return tcell.StyleDefault
}

// StyleBold returns a bold style
func StyleBold() tcell.Style {
	return tcell.StyleDefault.Bold(true)
}

// StyleReverse returns a reverse video style
func StyleReverse() tcell.Style {
	return tcell.StyleDefault.Reverse(true)
}

// StyleDim returns a dim style
func StyleDim() tcell.Style {
	return tcell.StyleDefault.Dim(true)
}

// Theme-aware style methods

// ListNormalStyle returns the style for normal list rows
func (s *Screen) ListNormalStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListText, s.Theme.Colors.Background)
}

// ListSelectedStyle returns the style for the selected row
func (s *Screen) ListSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListSelected, s.Theme.Colors.Background).Bold(true)
}

// ListDoneStyle returns the style for completed tasks
func (s *Screen) ListDoneStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListDone, s.Theme.Colors.Background).Dim(true)
}

// ListMarkerStyle returns the style for the checkbox marker
func (s *Screen) ListMarkerStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ListMarker)
}

// ListEnteringStyle fades an inserted row in. progress runs 0..1.
func (s *Screen) ListEnteringStyle(progress float64) tcell.Style {
	fg := theme.Blend(s.Theme.Colors.ListEntering, s.Theme.Colors.ListText, progress)
	return theme.ColorPairToStyle(fg, s.Theme.Colors.Background)
}

// ListLeavingStyle fades a removed row out toward the background.
func (s *Screen) ListLeavingStyle(progress float64) tcell.Style {
	fg := theme.Blend(s.Theme.Colors.ListLeaving, s.Theme.Colors.Background, progress)
	return theme.ColorPairToStyle(fg, s.Theme.Colors.Background)
}

// ListDraggingStyle returns the style for the row under the pointer
func (s *Screen) ListDraggingStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListDragging, s.Theme.Colors.Background).Bold(true)
}

// DropSlotStyle returns the style for the slot a dragged row would land in
func (s *Screen) DropSlotStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ListDropSlot).Dim(true)
}

// EditorStyle returns the style for editor text
func (s *Screen) EditorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.EditorText)
}

// EditorCursorStyle returns the style for editor cursor
func (s *Screen) EditorCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.EditorCursor).Reverse(true)
}

// FilterLabelStyle returns the style for the filter bar label
func (s *Screen) FilterLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterLabel)
}

// FilterTextStyle returns the style for filter text
func (s *Screen) FilterTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterText)
}

// FilterCursorStyle returns the style for the filter cursor
func (s *Screen) FilterCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterCursor).Reverse(true)
}

// FilterCountStyle returns the style for the filter match count
func (s *Screen) FilterCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterCount)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandText)
}

// CommandCursorStyle returns the style for command cursor
func (s *Screen) CommandCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandCursor).Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusModified)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}
