package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// List view colors
	ListText     tcell.Color
	ListSelected tcell.Color
	ListDone     tcell.Color
	ListMarker   tcell.Color
	ListEntering tcell.Color
	ListLeaving  tcell.Color
	ListDragging tcell.Color
	ListDropSlot tcell.Color
	Background   tcell.Color

	// Editor colors
	EditorText   tcell.Color
	EditorCursor tcell.Color

	// Filter bar colors
	FilterLabel  tcell.Color
	FilterText   tcell.Color
	FilterCursor tcell.Color
	FilterCount  tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color
	CommandCursor tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			ListText:       tcell.ColorDefault,
			ListSelected:   tcell.ColorDefault,
			ListDone:       tcell.ColorDefault,
			ListMarker:     tcell.ColorDefault,
			ListEntering:   tcell.ColorDefault,
			ListLeaving:    tcell.ColorDefault,
			ListDragging:   tcell.ColorDefault,
			ListDropSlot:   tcell.ColorDefault,
			Background:     tcell.ColorDefault,
			EditorText:     tcell.ColorDefault,
			EditorCursor:   tcell.ColorDefault,
			FilterLabel:    tcell.ColorDefault,
			FilterText:     tcell.ColorDefault,
			FilterCursor:   tcell.ColorDefault,
			FilterCount:    tcell.ColorDefault,
			CommandPrompt:  tcell.ColorDefault,
			CommandText:    tcell.ColorDefault,
			CommandCursor:  tcell.ColorDefault,
			HelpBackground: tcell.ColorDefault,
			HelpBorder:     tcell.ColorDefault,
			HelpTitle:      tcell.ColorDefault,
			HelpContent:    tcell.ColorDefault,
			StatusMode:     tcell.ColorDefault,
			StatusMessage:  tcell.ColorDefault,
			StatusModified: tcell.ColorDefault,
			HeaderTitle:    tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			// Tokyo Night palette
			ListText:       HexToColor("#c0caf5"), // Light gray-blue
			ListSelected:   HexToColor("#7aa2f7"), // Blue
			ListDone:       HexToColor("#565f89"), // Comment gray
			ListMarker:     HexToColor("#7dcfff"), // Cyan
			ListEntering:   HexToColor("#9ece6a"), // Green
			ListLeaving:    HexToColor("#f7768e"), // Red
			ListDragging:   HexToColor("#e0af68"), // Yellow
			ListDropSlot:   HexToColor("#565f89"), // Comment gray
			Background:     HexToColor("#1a1b26"), // Dark background
			EditorText:     HexToColor("#c0caf5"), // Light gray-blue
			EditorCursor:   HexToColor("#7aa2f7"), // Blue
			FilterLabel:    HexToColor("#bb9af7"), // Magenta
			FilterText:     HexToColor("#c0caf5"), // Light gray-blue
			FilterCursor:   HexToColor("#7aa2f7"), // Blue
			FilterCount:    HexToColor("#9ece6a"), // Green
			CommandPrompt:  HexToColor("#bb9af7"), // Magenta
			CommandText:    HexToColor("#c0caf5"), // Light gray-blue
			CommandCursor:  HexToColor("#7aa2f7"), // Blue
			HelpBackground: HexToColor("#1a1b26"), // Dark background
			HelpBorder:     HexToColor("#7dcfff"), // Cyan
			HelpTitle:      HexToColor("#bb9af7"), // Magenta
			HelpContent:    HexToColor("#c0caf5"), // Light gray-blue
			StatusMode:     HexToColor("#bb9af7"), // Magenta
			StatusMessage:  HexToColor("#9ece6a"), // Green
			StatusModified: HexToColor("#f7768e"), // Red
			HeaderTitle:    HexToColor("#bb9af7"), // Magenta
		},
	}
}
