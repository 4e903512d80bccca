package app

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"

	"github.com/pvdberg/listmotion/internal/anim"
	"github.com/pvdberg/listmotion/internal/config"
	"github.com/pvdberg/listmotion/internal/drag"
	"github.com/pvdberg/listmotion/internal/model"
	"github.com/pvdberg/listmotion/internal/reconcile"
	"github.com/pvdberg/listmotion/internal/scrollfollow"
	"github.com/pvdberg/listmotion/internal/storage"
	"github.com/pvdberg/listmotion/internal/theme"
	"github.com/pvdberg/listmotion/internal/ui"
)

// Editing modes shown in the status line
const (
	NormalMode  = "NORMAL"
	InsertMode  = "INSERT"
	FilterMode  = "FILTER"
	CommandMode = "COMMAND"
)

// listStartY is the first row of the list area; row 0 is the header.
const listStartY = 1

// frameInterval drives animation progress and auto-scroll. ~20 FPS is
// plenty for a terminal.
const frameInterval = 50 * time.Millisecond

// App is the main application controller. Everything runs on one event
// loop; goroutines hand work back through the post channel.
type App struct {
	screen   *ui.Screen
	cfg      *config.Config
	taskList *model.TaskList
	store    *storage.JSONStore

	pool    *anim.Pool
	rec     *reconcile.Reconciler[*model.Task]
	list    *ui.ListView
	machine *drag.Machine

	editor  *ui.Editor
	filter  *ui.Filter
	help    *ui.HelpScreen
	command *ui.CommandMode
	events  *ui.EventLog

	keybindings []KeyBinding

	post chan func()

	// Pending auto-scroll requested by the edge follower, in rows per
	// second. Applied a whole row at a time each frame.
	autoDir scrollfollow.Direction
	autoVel float64
	autoAcc float64

	mouseDown bool

	statusMsg    string
	statusTime   time.Time
	dirty        bool
	autoSaveTime time.Time
	quit         bool
	debugMode    bool
	mode         string
}

// NewApp creates a new App instance
func NewApp(filePath string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	store := storage.NewJSONStore(filePath)
	taskList, err := store.Load()
	if err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	if len(taskList.Tasks) == 0 {
		taskList.Add(model.NewTask("Welcome to listmotion"))
	}

	a := &App{
		screen:       screen,
		cfg:          cfg,
		taskList:     taskList,
		store:        store,
		pool:         anim.NewPool(),
		help:         ui.NewHelpScreen(),
		command:      ui.NewCommandMode(),
		events:       ui.NewEventLog(100),
		post:         make(chan func(), 64),
		statusMsg:    "Ready",
		statusTime:   time.Now(),
		autoSaveTime: time.Now(),
		mode:         NormalMode,
	}

	durations := reconcile.Durations{
		Insert: time.Duration(cfg.Animations.InsertMs) * time.Millisecond,
		Remove: time.Duration(cfg.Animations.RemoveMs) * time.Millisecond,
		Move:   time.Duration(cfg.Animations.MoveMs) * time.Millisecond,
	}
	a.rec = reconcile.New(func(t *model.Task) string { return t.ID }, a.pool, durations, reconcile.Hooks[*model.Task]{
		ItemEntering: func(t *model.Task, index int) {
			a.events.Addf("insert %q at %d", t.Text, index)
		},
		ItemLeaving: func(t *model.Task, index int) {
			a.events.Addf("remove %q from %d", t.Text, index)
		},
		ItemMoved: func(t *model.Task, from, to int) {
			a.events.Addf("move %q %d -> %d", t.Text, from, to)
		},
	})
	a.rec.SetAsyncThreshold(cfg.Animations.AsyncThreshold, a.postFunc)
	if err := a.rec.SetInitial(taskList.Tasks); err != nil {
		screen.Close()
		return nil, fmt.Errorf("duplicate task ids in %s: %w", filePath, err)
	}

	a.list = ui.NewListView(a.rec, a.pool)
	a.filter = ui.NewFilter(taskList.Tasks)

	follower := scrollfollow.New(
		float64(cfg.Scroll.EdgeZone),
		cfg.Scroll.MaxVelocity,
		func(dir scrollfollow.Direction, vel float64) {
			a.autoDir = dir
			a.autoVel = vel
		},
		func() {
			a.autoDir = scrollfollow.None
			a.autoVel = 0
			a.autoAcc = 0
		},
	)

	a.machine = drag.New(
		drag.Config{
			Delay:            time.Duration(cfg.Drag.DelayMs) * time.Millisecond,
			Policy:           parseSwapPolicy(cfg.Drag.SwapPolicy),
			VibrateOnPickup:  cfg.Drag.VibrateOnPickup,
			ExclusiveCapture: cfg.Drag.ExclusiveCapture,
			StaticParent:     cfg.Drag.StaticParent,
		},
		a.rec,
		follower,
		func(int) float64 { return 1 }, // every row is one line tall
		drag.Hooks{
			OnPickup: func(key string, index int) {
				a.screen.Beep()
				a.list.SetDragKey(key)
				a.list.SelectKey(key)
				a.events.Addf("pickup %s at %d", key, index)
			},
			OnFinished: func(key string, from, to int, order []string) {
				a.list.SetDragKey("")
				if from != to {
					a.applyDisplayedOrder(order)
					a.dirty = true
					a.SetStatus(fmt.Sprintf("Moved task %d -> %d", from, to))
				}
				a.events.Addf("drop %s %d -> %d", key, from, to)
			},
			OnCancelled: func(key string) {
				a.list.SetDragKey("")
				a.events.Addf("drag cancelled %s", key)
				a.SetStatus("Drag cancelled")
			},
		},
	)
	a.machine.SetPost(a.postFunc)

	a.keybindings = a.InitializeKeybindings()
	a.help.SetKeybindings(a.helpBindings())

	if screen.HasMouse() {
		screen.EnableMouse()
	}

	return a, nil
}

// parseSwapPolicy maps the config string to a drag.SwapPolicy
func parseSwapPolicy(s string) drag.SwapPolicy {
	switch s {
	case "half-own":
		return drag.HalfOwn
	case "half-average":
		return drag.HalfAverage
	default:
		return drag.HalfNeighbor
	}
}

// postFunc queues f onto the event loop. Safe to call from any goroutine.
func (a *App) postFunc(f func()) {
	a.post <- f
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)

	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev != nil {
				a.handleRawEvent(ev)
			}
		case f := <-a.post:
			f()
		case <-ticker.C:
			a.pool.Advance(time.Now())
			a.stepAutoScroll()
			a.render()

			// Auto-save every 5 seconds if dirty
			if a.dirty && time.Since(a.autoSaveTime) > 5*time.Second {
				if err := a.Save(); err != nil {
					a.SetStatus("Failed to save: " + err.Error())
				} else {
					a.SetStatus("Saved")
				}
			}
		}
	}

	return nil
}

// Close closes the application
func (a *App) Close() error {
	a.machine.Close()
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// stepAutoScroll applies edge-follow scrolling one whole row at a time and
// folds the content movement back into the drag.
func (a *App) stepAutoScroll() {
	if a.autoDir == scrollfollow.None || a.machine.State() != drag.Dragging {
		return
	}

	a.autoAcc += a.autoVel * frameInterval.Seconds()
	rows := int(a.autoAcc)
	if rows == 0 {
		return
	}
	a.autoAcc -= float64(rows)

	if a.autoDir == scrollfollow.Backward {
		rows = -rows
	}
	moved := a.list.ScrollBy(rows)
	if moved == 0 {
		return
	}
	a.machine.SetViewport(a.list.ViewportStart(), a.list.ViewportExtent())
	if err := a.machine.AutoScrolled(float64(moved)); err != nil {
		a.events.Addf("autoscroll: %v", err)
	}
}

// reconcile animates the displayed list toward the current target: the
// filtered subset while a query is applied, the whole list otherwise.
func (a *App) reconcile() {
	a.filter.SetAllTasks(a.taskList.Tasks)

	target := a.taskList.Tasks
	if a.filter.HasQuery() {
		target = a.filter.Results()
	}
	if err := a.rec.Reconcile(target); err != nil {
		a.SetStatus("Reconcile failed: " + err.Error())
	}
}

// applyDisplayedOrder writes a dropped drag's order back into the task list.
// Keys with no task behind them (rows still animating out) are skipped.
// Under a filter only the matching tasks trade places; hidden tasks keep
// their positions.
func (a *App) applyDisplayedOrder(order []string) {
	inOrder := make(map[string]bool, len(order))
	visible := make([]*model.Task, 0, len(order))
	for _, key := range order {
		if t := a.taskList.FindByID(key); t != nil {
			inOrder[key] = true
			visible = append(visible, t)
		}
	}

	next := 0
	for i, t := range a.taskList.Tasks {
		if inOrder[t.ID] {
			a.taskList.Tasks[i] = visible[next]
			next++
		}
	}
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	width := a.screen.GetWidth()
	height := a.screen.GetHeight()

	header := fmt.Sprintf(" %s ", a.store.FilePath)
	a.screen.DrawString(0, 0, header, a.screen.HeaderStyle())

	a.list.Render(a.screen, listStartY, a.filter.Query())

	// Inline editor draws over the selected row
	if a.editor != nil && a.editor.IsActive() {
		itemY := listStartY + a.list.SelectedIndex() - int(a.list.ViewportStart())
		editorX := 4 // after the checkbox marker
		if maxWidth := width - editorX; maxWidth > 0 && itemY >= listStartY {
			a.editor.Render(a.screen, editorX, itemY, maxWidth)
		}
	}

	if a.debugMode {
		a.events.Render(a.screen, 8)
	}

	if a.filter.IsActive() || a.filter.HasQuery() {
		a.filter.Render(a.screen, height-3)
	}

	if a.command.IsActive() {
		a.command.Render(a.screen, height-2)
	}

	statusLine := "-- " + a.mode + " --"
	if a.statusMsg != "Ready" && time.Since(a.statusTime) <= 3*time.Second {
		statusLine += " " + a.statusMsg
	}
	if a.dirty {
		statusLine += " (modified)"
	}
	a.screen.DrawString(0, height-1, statusLine, a.screen.StatusModeStyle())

	a.help.Render(a.screen)

	a.screen.Show()
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	if mouseEv, ok := ev.(*tcell.EventMouse); ok {
		a.handleMouse(mouseEv)
		return
	}

	if a.command.IsActive() {
		if keyEv, ok := ev.(*tcell.EventKey); ok {
			cmd, done := a.command.HandleKey(keyEv)
			if done {
				a.mode = NormalMode
				a.handleCommand(cmd)
			}
		}
		return
	}

	if a.filter.IsActive() {
		if keyEv, ok := ev.(*tcell.EventKey); ok {
			if keyEv.Key() == tcell.KeyEscape {
				a.filter.Clear()
				a.mode = NormalMode
				a.reconcile()
			} else if !a.filter.HandleKey(keyEv) {
				// Enter keeps the query applied
				a.filter.Stop()
				a.mode = NormalMode
			} else {
				a.reconcile()
			}
		}
		return
	}

	if a.editor != nil && a.editor.IsActive() {
		if keyEv, ok := ev.(*tcell.EventKey); ok {
			if !a.editor.HandleKey(keyEv) {
				if keyEv.Key() == tcell.KeyEscape {
					a.editor.Cancel()
				} else {
					a.editor.Stop()
					a.dirty = true
				}
				a.editor = nil
				a.mode = NormalMode
			}
		}
		return
	}

	if a.help.IsVisible() {
		if keyEv, ok := ev.(*tcell.EventKey); ok {
			if keyEv.Key() == tcell.KeyEscape || keyEv.Rune() == '?' {
				a.help.Toggle()
			}
		}
		return
	}

	if keyEv, ok := ev.(*tcell.EventKey); ok {
		a.handleKeypress(keyEv)
	}
}

// handleMouse routes mouse events to the drag machine and the list
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	// Wheel scrolling. During the armed window it abandons the pending
	// drag; during a drag the content shift feeds back into the session.
	if buttons&tcell.WheelUp != 0 || buttons&tcell.WheelDown != 0 {
		delta := 1
		if buttons&tcell.WheelUp != 0 {
			delta = -1
		}
		moved := a.list.ScrollBy(delta)
		if moved != 0 {
			a.machine.ScrollChanged()
			a.machine.SetViewport(a.list.ViewportStart(), a.list.ViewportExtent())
			if a.machine.State() == drag.Dragging {
				_ = a.machine.AutoScrolled(float64(moved))
			}
		}
		return
	}

	pressed := buttons&tcell.Button1 != 0

	switch {
	case pressed && !a.mouseDown:
		a.mouseDown = true
		if a.editor != nil && a.editor.IsActive() {
			// Click inside the row being edited repositions the cursor
			if a.list.RowAt(y) == a.list.SelectedIndex() {
				a.editor.SetCursorToScreenX(4, x)
			}
			return
		}
		row := a.list.RowAt(y)
		if row >= 0 {
			a.list.Select(row)
			a.machine.SetViewport(a.list.ViewportStart(), a.list.ViewportExtent())
			a.machine.PointerDown(row, a.pointerOffset(y))
		}
	case pressed && a.mouseDown:
		if a.machine.State() != drag.Idle {
			_ = a.machine.PointerMove(a.pointerOffset(y))
		}
	case !pressed && a.mouseDown:
		a.mouseDown = false
		if a.machine.State() != drag.Idle {
			_ = a.machine.PointerUp()
		}
	}
}

// pointerOffset converts a terminal y coordinate to a position along the
// list axis, in row units
func (a *App) pointerOffset(y int) float64 {
	return a.list.ViewportStart() + float64(y-listStartY)
}

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.events.Addf("key: %v rune: %q", ev.Key(), ev.Rune())
	}

	switch ev.Key() {
	case tcell.KeyDown:
		a.list.SelectNext()
		return
	case tcell.KeyUp:
		a.list.SelectPrev()
		return
	case tcell.KeyPgUp:
		a.list.ScrollPageUp(a.screen.GetHeight() - 3)
		return
	case tcell.KeyPgDn:
		a.list.ScrollPageDown(a.screen.GetHeight() - 3)
		return
	case tcell.KeyCtrlS:
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.SetStatus("Saved")
		}
		return
	case tcell.KeyF2:
		a.toggleDebug()
		return
	case tcell.KeyEscape:
		if a.filter.HasQuery() {
			a.filter.Clear()
			a.reconcile()
		}
		return
	}

	if kb := a.GetKeybindingByKey(ev.Rune()); kb != nil {
		kb.Handler(a)
	}
}

// selectedVisibleTask returns the selected task, or nil when the selection
// sits on a row that is already animating out
func (a *App) selectedVisibleTask() *model.Task {
	idx := a.list.SelectedIndex()
	if idx < 0 || idx >= a.rec.Len() || a.rec.IsLeaving(idx) {
		return nil
	}
	return a.list.SelectedTask()
}

// addTaskAfterSelection inserts an empty task after the selected one and
// opens the editor on it
func (a *App) addTaskAfterSelection() {
	task := model.NewTask("")

	pos := len(a.taskList.Tasks)
	if sel := a.selectedVisibleTask(); sel != nil {
		pos = a.taskList.IndexOf(sel.ID) + 1
	}
	a.taskList.InsertAt(pos, task)
	a.dirty = true
	a.reconcile()

	a.list.SelectKey(task.ID)
	a.editor = ui.NewEditor(task)
	a.editor.Start()
	a.mode = InsertMode
}

// deleteSelection removes the selected task. The row animates out; the
// model drops it immediately.
func (a *App) deleteSelection() {
	task := a.selectedVisibleTask()
	if task == nil {
		return
	}
	if a.taskList.Remove(task.ID) {
		a.dirty = true
		a.SetStatus("Deleted task")
		a.reconcile()
		a.list.ClampSelection()
	}
}

// toggleDone flips the Done flag of the selected task
func (a *App) toggleDone() {
	task := a.selectedVisibleTask()
	if task == nil {
		return
	}
	task.Done = !task.Done
	task.Touch()
	a.dirty = true
	a.reconcile()
}

// moveSelection moves the selected task up or down by one position in the
// full list, letting the reconciler animate the displayed move
func (a *App) moveSelection(delta int) {
	task := a.selectedVisibleTask()
	if task == nil {
		return
	}
	idx := a.taskList.IndexOf(task.ID)
	other := idx + delta
	if idx < 0 || other < 0 || other >= len(a.taskList.Tasks) {
		return
	}
	a.taskList.Tasks[idx], a.taskList.Tasks[other] = a.taskList.Tasks[other], a.taskList.Tasks[idx]
	a.dirty = true
	a.reconcile()
	a.list.SelectKey(task.ID)
}

// shuffleTasks randomizes the order. Exists to show many simultaneous move
// animations from a single reconcile.
func (a *App) shuffleTasks() {
	rand.Shuffle(len(a.taskList.Tasks), func(i, j int) {
		a.taskList.Tasks[i], a.taskList.Tasks[j] = a.taskList.Tasks[j], a.taskList.Tasks[i]
	})
	a.dirty = true
	a.SetStatus("Shuffled")
	a.reconcile()
}

func (a *App) toggleDebug() {
	a.debugMode = !a.debugMode
	if a.debugMode {
		a.SetStatus("Debug mode ON")
		if s, ok := a.machine.Session(); ok {
			a.events.Add("session " + spew.Sprintf("%+v", s))
		}
	} else {
		a.SetStatus("Debug mode OFF")
	}
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	if cmd == "" {
		return
	}

	parts := strings.Fields(cmd)
	switch parts[0] {
	case "q", "quit":
		if a.dirty {
			a.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
		} else {
			a.quit = true
		}
	case "q!", "quit!":
		a.quit = true
	case "w", "write":
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.SetStatus("Saved")
		}
	case "wq":
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.quit = true
		}
	case "help":
		a.help.Toggle()
	case "debug":
		a.toggleDebug()
	case "theme":
		if len(parts) < 2 {
			a.SetStatus("Usage: :theme <name>")
			return
		}
		a.screen.Theme = theme.LoadThemeOrDefault(parts[1])
		a.cfg.Theme = parts[1]
		a.SetStatus("Theme: " + parts[1])
	case "delay":
		if len(parts) < 2 {
			a.SetStatus("Usage: :delay <ms>")
			return
		}
		ms, err := strconv.Atoi(parts[1])
		if err != nil || ms < 0 {
			a.SetStatus("Invalid delay: " + parts[1])
			return
		}
		a.cfg.Drag.DelayMs = ms
		a.SetStatus(fmt.Sprintf("Drag delay %dms takes effect on restart", ms))
	case "set":
		if len(parts) < 3 {
			a.SetStatus("Usage: :set <key> <value>")
			return
		}
		a.cfg.Set(parts[1], parts[2])
		a.SetStatus("Set " + parts[1])
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

// Save saves the task list to disk
func (a *App) Save() error {
	if err := a.store.Save(a.taskList); err != nil {
		return err
	}
	a.dirty = false
	a.autoSaveTime = time.Now()
	a.events.Add("saved")
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
