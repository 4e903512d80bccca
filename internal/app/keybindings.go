package app

import (
	"github.com/pvdberg/listmotion/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// InitializeKeybindings sets up all the normal-mode key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Move down",
			Handler: func(app *App) {
				app.list.SelectNext()
			},
		},
		{
			Key:         'k',
			Description: "Move up",
			Handler: func(app *App) {
				app.list.SelectPrev()
			},
		},
		{
			Key:         'g',
			Description: "Go to first task",
			Handler: func(app *App) {
				app.list.SelectFirst()
			},
		},
		{
			Key:         'G',
			Description: "Go to last task",
			Handler: func(app *App) {
				app.list.SelectLast()
			},
		},
		{
			Key:         'J',
			Description: "Move task down",
			Handler: func(app *App) {
				app.moveSelection(1)
			},
		},
		{
			Key:         'K',
			Description: "Move task up",
			Handler: func(app *App) {
				app.moveSelection(-1)
			},
		},
		{
			Key:         'o',
			Description: "Add task after",
			Handler: func(app *App) {
				app.addTaskAfterSelection()
			},
		},
		{
			Key:         'i',
			Description: "Edit task",
			Handler: func(app *App) {
				if task := app.selectedVisibleTask(); task != nil {
					app.editor = ui.NewEditor(task)
					app.editor.Start()
					app.mode = InsertMode
				}
			},
		},
		{
			Key:         'c',
			Description: "Change (replace) task text",
			Handler: func(app *App) {
				if task := app.selectedVisibleTask(); task != nil {
					app.editor = ui.NewEditor(task)
					app.editor.SetText("")
					app.editor.Start()
					app.mode = InsertMode
				}
			},
		},
		{
			Key:         'd',
			Description: "Delete task",
			Handler: func(app *App) {
				app.deleteSelection()
			},
		},
		{
			Key:         'x',
			Description: "Toggle done",
			Handler: func(app *App) {
				app.toggleDone()
			},
		},
		{
			Key:         'S',
			Description: "Shuffle tasks",
			Handler: func(app *App) {
				app.shuffleTasks()
			},
		},
		{
			Key:         '/',
			Description: "Filter tasks",
			Handler: func(app *App) {
				app.filter.Start()
				app.mode = FilterMode
				app.reconcile()
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         ':',
			Description: "Command mode",
			Handler: func(app *App) {
				app.command.Start()
				app.mode = CommandMode
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.handleCommand("q")
			},
		},
	}
}

// GetKeybindingByKey returns a keybinding for a given key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}

// helpBindings converts the keybinding table to help overlay rows
func (a *App) helpBindings() []ui.KeyBinding {
	rows := make([]ui.KeyBinding, 0, len(a.keybindings))
	for _, kb := range a.keybindings {
		rows = append(rows, ui.KeyBinding{Key: string(kb.Key), Description: kb.Description})
	}
	return rows
}
